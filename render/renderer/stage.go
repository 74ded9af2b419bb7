package renderer

import (
	"image"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/blockstage/render"
	"github.com/lixenwraith/blockstage/vmath"
)

// costumeGlyphs gives each costume index a distinct sprite glyph
var costumeGlyphs = []rune{'◆', '●', '▲', '■', '★', '♥'}

// headingArrows are indexed by direction in 45 degree steps from up
var headingArrows = []rune{'↑', '↗', '→', '↘', '↓', '↙', '←', '↖'}

// StageRenderer draws the stage frame and background
type StageRenderer struct{}

// NewStageRenderer creates a stage renderer
func NewStageRenderer() *StageRenderer {
	return &StageRenderer{}
}

// Render implements render.SystemRenderer
func (r *StageRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	s := ctx.Frame.Stage
	if s.Empty() {
		return
	}
	border := s.Inset(-1)
	buf.Fill(border, render.RgbStageBorder)
	for x := border.Min.X + 1; x < border.Max.X-1; x++ {
		buf.SetFgOnly(x, border.Min.Y, '─', render.RgbToolbarText, tcell.AttrNone)
		buf.SetFgOnly(x, border.Max.Y-1, '─', render.RgbToolbarText, tcell.AttrNone)
	}
	for y := border.Min.Y + 1; y < border.Max.Y-1; y++ {
		buf.SetFgOnly(border.Min.X, y, '│', render.RgbToolbarText, tcell.AttrNone)
		buf.SetFgOnly(border.Max.X-1, y, '│', render.RgbToolbarText, tcell.AttrNone)
	}
	buf.SetFgOnly(border.Min.X, border.Min.Y, '┌', render.RgbToolbarText, tcell.AttrNone)
	buf.SetFgOnly(border.Max.X-1, border.Min.Y, '┐', render.RgbToolbarText, tcell.AttrNone)
	buf.SetFgOnly(border.Min.X, border.Max.Y-1, '└', render.RgbToolbarText, tcell.AttrNone)
	buf.SetFgOnly(border.Max.X-1, border.Max.Y-1, '┘', render.RgbToolbarText, tcell.AttrNone)
	buf.Fill(s, render.RgbStageBg)
}

// PenRenderer rasterizes pen trails with a grid traversal per segment
type PenRenderer struct{}

// NewPenRenderer creates a pen renderer
func NewPenRenderer() *PenRenderer {
	return &PenRenderer{}
}

// Render implements render.SystemRenderer
func (r *PenRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	s := ctx.Frame.Stage
	if s.Empty() || ctx.Stage == nil {
		return
	}
	for _, line := range ctx.Stage.Lines() {
		x1, y1 := ctx.Frame.StageToScreen(line.X1, line.Y1)
		x2, y2 := ctx.Frame.StageToScreen(line.X2, line.Y2)
		color := render.FromTriple(line.Color)
		glyph := '•'
		if line.Size >= 3 {
			glyph = '█'
		}
		t := vmath.NewGridTraverser(x1, y1, x2, y2)
		for t.Next() {
			x, y := t.Pos()
			if image.Pt(x, y).In(s) {
				buf.SetFgOnly(x, y, glyph, color, tcell.AttrNone)
			}
		}
	}
}

// SpriteRenderer draws every visible actor's sprite with its heading
type SpriteRenderer struct{}

// NewSpriteRenderer creates a sprite renderer
func NewSpriteRenderer() *SpriteRenderer {
	return &SpriteRenderer{}
}

// Render implements render.SystemRenderer
func (r *SpriteRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	if ctx.Frame.Stage.Empty() || ctx.Project == nil {
		return
	}
	for i, a := range ctx.Project.Actors {
		sp := a.Sprite()
		if !sp.Visible {
			continue
		}
		x, y, _ := ctx.Frame.StageCell(sp.X, sp.Y)
		color := render.SpriteColor(i)
		attrs := tcell.AttrNone
		if sp.Size >= 150 {
			attrs = tcell.AttrBold
		}
		buf.SetFgOnly(x, y, costumeGlyphs[sp.Costume%len(costumeGlyphs)], color, attrs)

		if ax := x + 1; ax < ctx.Frame.Stage.Max.X {
			buf.SetFgOnly(ax, y, HeadingArrow(sp.Direction), render.Darken(color, 0.3), tcell.AttrNone)
		}
	}
}

// HeadingArrow returns the arrow closest to a direction in degrees
func HeadingArrow(deg float64) rune {
	n := vmath.NormalizeDegrees(deg)
	if n < 0 {
		n += 360
	}
	i := int(math.Round(n/45)) % len(headingArrows)
	return headingArrows[i]
}

// BubbleRenderer draws say bubbles above their sprites, kept inside the stage
type BubbleRenderer struct{}

// NewBubbleRenderer creates a bubble renderer
func NewBubbleRenderer() *BubbleRenderer {
	return &BubbleRenderer{}
}

// Render implements render.SystemRenderer
func (r *BubbleRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	s := ctx.Frame.Stage
	if s.Empty() || ctx.Project == nil {
		return
	}
	for _, a := range ctx.Project.Actors {
		sp := a.Sprite()
		text := sp.BubbleText(ctx.Now)
		if text == "" || !sp.Visible {
			continue
		}
		x, y, _ := ctx.Frame.StageCell(sp.X, sp.Y)
		label := " " + text + " "
		w := runewidth.StringWidth(label)
		row := max(y-1, s.Min.Y)
		left := min(max(x, s.Min.X), max(s.Max.X-w, s.Min.X))
		span := image.Rect(left, row, min(left+w, s.Max.X), row+1)
		buf.Fill(span, render.RgbBubbleBg)
		buf.Text(left, row, label, render.RgbBubbleText, tcell.AttrNone, span)
	}
}
