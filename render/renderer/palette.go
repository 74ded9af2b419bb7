package renderer

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/blockstage/render"
)

// PaletteRenderer draws the category tabs and the spawnable blocks of the
// selected category
type PaletteRenderer struct{}

// NewPaletteRenderer creates a palette renderer
func NewPaletteRenderer() *PaletteRenderer {
	return &PaletteRenderer{}
}

// Render implements render.SystemRenderer
func (r *PaletteRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	area := ctx.Frame.Palette
	if area.Empty() {
		return
	}
	buf.Fill(area, render.RgbPaletteBg)

	for _, tab := range render.PaletteTabs(area) {
		color := render.CategoryColor(tab.Kind)
		bg, fg, attrs := render.RgbPaletteBg, color, tcell.AttrNone
		if tab.Kind == ctx.Category {
			bg, fg, attrs = color, render.Contrast(color), tcell.AttrBold
		}
		buf.Fill(tab.Rect, bg)
		buf.Text(tab.Rect.Min.X, tab.Rect.Min.Y, tab.Label, fg, attrs, tab.Rect)
	}

	color := render.CategoryColor(ctx.Category)
	for _, e := range render.PaletteEntries(area, ctx.Category) {
		span := e.Rect
		span.Max.X = min(span.Max.X, span.Min.X+runewidth.StringWidth(e.Label)+2)
		buf.Fill(span, color)
		buf.Text(span.Min.X+1, span.Min.Y, e.Label, render.Contrast(color), tcell.AttrNone, e.Rect)
	}
}
