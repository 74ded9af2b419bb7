package renderer

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/blockstage/render"
)

// ToolbarRenderer draws the command buttons, actor tabs and status text
type ToolbarRenderer struct{}

// NewToolbarRenderer creates a toolbar renderer
func NewToolbarRenderer() *ToolbarRenderer {
	return &ToolbarRenderer{}
}

// Render implements render.SystemRenderer
func (r *ToolbarRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	bar := ctx.Frame.Toolbar
	if bar.Empty() {
		return
	}
	buf.Fill(bar, render.RgbToolbarBg)

	var names []string
	if ctx.Project != nil {
		for _, a := range ctx.Project.Actors {
			names = append(names, a.Name())
		}
	}

	end := bar.Min.X
	for _, b := range render.ToolbarButtons(bar, names, ctx.Paused) {
		bg, fg := render.Darken(render.RgbToolbarBg, 0.3), render.RgbToolbarText
		switch b.Action {
		case render.ActionFlag:
			if ctx.Running && !ctx.Paused {
				bg, fg = render.RgbButtonActive, render.RGBBlack
			}
		case render.ActionStop:
			fg = render.RgbButtonStop
		case render.ActionActor:
			if ctx.Actor != nil && names[b.Index] == ctx.Actor.Name() {
				bg, fg = render.RgbToolbarText, render.RgbToolbarBg
			}
		}
		buf.Fill(b.Rect, bg)
		buf.Text(b.Rect.Min.X, b.Rect.Min.Y, b.Label, fg, tcell.AttrNone, b.Rect)
		end = b.Rect.Max.X
	}

	status := ctx.Status
	if status == "" && ctx.Project != nil {
		status = ctx.Project.Name
	}
	if status == "" {
		return
	}
	room := bar.Max.X - end - 2
	if room <= 0 {
		return
	}
	status = runewidth.Truncate(strings.TrimSpace(status), room, "…")
	x := bar.Max.X - runewidth.StringWidth(status) - 1
	buf.Text(x, bar.Min.Y, status, render.RgbStatusText, tcell.AttrItalic, bar)
}
