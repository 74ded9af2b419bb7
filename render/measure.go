package render

import (
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/blockstage/constants"
)

// CellMeasurer sizes labels by their terminal column width
type CellMeasurer struct{}

// MeasureLabel returns the width of text in workspace units
func (CellMeasurer) MeasureLabel(text string) int {
	return runewidth.StringWidth(text) * constants.CellWidth
}
