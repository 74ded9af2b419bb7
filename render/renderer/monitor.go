package renderer

import (
	"image"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/blockstage/block"
	"github.com/lixenwraith/blockstage/render"
)

// MonitorRenderer lists project variables under the stage
type MonitorRenderer struct{}

// NewMonitorRenderer creates a monitor renderer
func NewMonitorRenderer() *MonitorRenderer {
	return &MonitorRenderer{}
}

// Render implements render.SystemRenderer
func (r *MonitorRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	area := ctx.Frame.Monitors
	if area.Empty() || ctx.Project == nil || ctx.Stage == nil {
		return
	}
	color := render.CategoryColor(block.KindVariables)
	for i, name := range ctx.Project.Variables {
		y := area.Min.Y + i
		if y >= area.Max.Y {
			return
		}
		x := buf.Text(area.Min.X+1, y, name, render.RgbToolbarText, tcell.AttrNone, area) + 1
		value := " " + ctx.Stage.Var(name) + " "
		span := image.Rect(x, y, x+runewidth.StringWidth(value), y+1).Intersect(area)
		buf.Fill(span, color)
		buf.Text(x, y, value, render.Contrast(color), tcell.AttrBold, span)
	}
}
