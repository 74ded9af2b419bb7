package renderer

import (
	"image"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/blockstage/block"
	"github.com/lixenwraith/blockstage/constants"
	"github.com/lixenwraith/blockstage/geometry"
	"github.com/lixenwraith/blockstage/render"
	"github.com/lixenwraith/blockstage/snap"
)

// WorkspaceRenderer draws the selected actor's scripts, the floating drag
// ghost and the snap preview. It reads the same Layout the editor hit-tests.
type WorkspaceRenderer struct{}

// NewWorkspaceRenderer creates a workspace renderer
func NewWorkspaceRenderer() *WorkspaceRenderer {
	return &WorkspaceRenderer{}
}

// blockStyle carries per-tree tinting
type blockStyle struct {
	ghost   bool
	discard bool
}

// Render implements render.SystemRenderer
func (r *WorkspaceRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	clip := ctx.Frame.Workspace
	if clip.Empty() {
		return
	}
	buf.Fill(clip, render.RgbWorkspaceBg)
	r.drawGrid(ctx, buf)

	if ctx.Actor == nil || ctx.Editor == nil {
		return
	}
	g := ctx.Actor.Blocks()
	o := ctx.Editor.Oracle()
	if o.Choices() != ctx.Actor {
		o.SetChoices(ctx.Actor)
	}

	for _, id := range g.Roots() {
		r.drawTree(ctx, buf, g, o, id, blockStyle{}, make(map[block.ID]bool))
	}

	id, dragging := ctx.Editor.Dragging()
	if !dragging {
		return
	}
	if p := ctx.Editor.Preview(); p.OK && !ctx.Editor.Discarding() {
		r.drawPreview(ctx, buf, g, o, id, p)
	}
	r.drawTree(ctx, buf, g, o, id, blockStyle{ghost: true, discard: ctx.Editor.Discarding()}, make(map[block.ID]bool))
}

// drawGrid dots every fourth column of every other row, anchored to scroll
func (r *WorkspaceRenderer) drawGrid(ctx render.RenderContext, buf *render.RenderBuffer) {
	clip := ctx.Frame.Workspace
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		for x := clip.Min.X; x < clip.Max.X; x++ {
			p := ctx.ScreenToWorkspace(x, y)
			if p.X/constants.CellWidth%8 == 0 && p.Y/constants.CellHeight%4 == 0 {
				buf.SetFgOnly(x, y, '·', render.RgbWorkspaceDot, tcell.AttrNone)
			}
		}
	}
}

// drawTree draws a chain and everything nested in it, parents first so
// nested blocks cover their slot
func (r *WorkspaceRenderer) drawTree(ctx render.RenderContext, buf *render.RenderBuffer, g *block.Graph, o *geometry.Oracle, id block.ID, st blockStyle, seen map[block.ID]bool) {
	for b := g.Get(id); b != nil && !seen[b.ID]; b = g.Get(b.Next) {
		seen[b.ID] = true
		l := o.Layout(g, b)
		if l.Def == nil {
			continue
		}
		r.drawBlock(ctx, buf, l, st)

		for _, p := range l.Elements {
			if p.Plugged != block.None {
				r.drawTree(ctx, buf, g, o, p.Plugged, st, seen)
			}
		}
		for i, body := range []block.ID{b.Child, b.Child2} {
			if i < l.Def.Bodies() && body != block.None {
				r.drawTree(ctx, buf, g, o, body, st, seen)
			}
		}
	}
}

func (r *WorkspaceRenderer) fill(base render.RGB, st blockStyle) render.RGB {
	if st.discard {
		base = render.Blend(base, render.RgbDiscardTint, 0.6)
	}
	if st.ghost {
		base = render.Blend(render.RgbWorkspaceBg, base, 0.7)
	}
	return base
}

func (r *WorkspaceRenderer) drawBlock(ctx render.RenderContext, buf *render.RenderBuffer, l geometry.Layout, st blockStyle) {
	clip := ctx.Frame.Workspace
	b := l.Block
	bg := r.fill(render.CategoryColor(b.Kind), st)
	fg := render.Contrast(bg)
	cells := ctx.WorkspaceRectToScreen(l.Box).Intersect(clip)

	for y := cells.Min.Y; y < cells.Max.Y; y++ {
		for x := cells.Min.X; x < cells.Max.X; x++ {
			if inMouth(l, ctx.ScreenToWorkspace(x, y)) {
				continue
			}
			buf.SetWithBg(x, y, ' ', fg, bg)
		}
	}

	box := ctx.WorkspaceRectToScreen(l.Box)
	_, mid := ctx.WorkspaceToScreen(image.Pt(0, (l.Header.Min.Y+l.Header.Max.Y)/2))
	switch l.Def.Shape {
	case block.ShapeReporter:
		r.caps(buf, box, mid, '(', ')', render.Darken(bg, 0.4), clip)
	case block.ShapeBoolean:
		r.caps(buf, box, mid, '‹', '›', render.Darken(bg, 0.4), clip)
	case block.ShapeHat:
		r.hatBrim(buf, box, bg, clip)
	}
	if !l.Else.Empty() {
		_, ey := ctx.WorkspaceToScreen(image.Pt(0, (l.Else.Min.Y+l.Else.Max.Y)/2))
		x, _ := ctx.WorkspaceToScreen(image.Pt(l.Else.Min.X+constants.BlockPadX, 0))
		buf.Text(x, ey, "else", fg, tcell.AttrBold, clip)
	}

	for _, p := range l.Elements {
		if p.Plugged == block.None {
			r.drawElement(ctx, buf, b, p, bg, fg)
		}
	}
}

// caps marks the rounded or pointed ends of reporter and boolean blocks
func (r *WorkspaceRenderer) caps(buf *render.RenderBuffer, box image.Rectangle, row int, left, right rune, fg render.RGB, clip image.Rectangle) {
	if row < clip.Min.Y || row >= clip.Max.Y {
		return
	}
	if box.Min.X >= clip.Min.X && box.Min.X < clip.Max.X {
		buf.SetFgOnly(box.Min.X, row, left, fg, tcell.AttrNone)
	}
	if x := box.Max.X - 1; x >= clip.Min.X && x < clip.Max.X {
		buf.SetFgOnly(x, row, right, fg, tcell.AttrNone)
	}
}

// hatBrim rounds the top row of an event hat
func (r *WorkspaceRenderer) hatBrim(buf *render.RenderBuffer, box image.Rectangle, bg render.RGB, clip image.Rectangle) {
	y := box.Min.Y
	if y < clip.Min.Y || y >= clip.Max.Y {
		return
	}
	for x := max(box.Min.X, clip.Min.X); x < min(box.Max.X, clip.Max.X); x++ {
		buf.SetWithBg(x, y, '▄', bg, render.RgbWorkspaceBg)
	}
}

func (r *WorkspaceRenderer) drawElement(ctx render.RenderContext, buf *render.RenderBuffer, b *block.Block, p geometry.Placed, bg, fg render.RGB) {
	clip := ctx.Frame.Workspace
	rect := ctx.WorkspaceRectToScreen(p.Rect)
	_, row := ctx.WorkspaceToScreen(image.Pt(0, (p.Rect.Min.Y+p.Rect.Max.Y)/2))
	span := image.Rect(rect.Min.X, row, rect.Max.X, row+1).Intersect(clip)

	switch p.Element.Kind {
	case block.ElemLabel:
		buf.Text(rect.Min.X, row, p.Text, fg, tcell.AttrBold, clip)

	case block.ElemNumber, block.ElemText:
		buf.Fill(span, render.RgbCapsuleBg)
		pad := constants.CapsulePadX / constants.CellWidth
		end := buf.Text(rect.Min.X+pad, row, p.Text, render.RgbCapsuleText, tcell.AttrNone, span)
		if id, f, ok := ctx.Editor.Focus(); ok && id == b.ID && f == p.Element.Field {
			if image.Pt(end, row).In(clip) {
				buf.SetWithBg(end, row, '▏', render.RgbCapsuleText, render.RgbFocusCursor)
			}
		}

	case block.ElemDropdown:
		slot := render.Darken(bg, 0.25)
		buf.Fill(span, slot)
		buf.Text(rect.Min.X+1, row, p.Text, render.Contrast(slot), tcell.AttrNone, span)
		caret := rect.Max.X - constants.DropdownCaretWidth/constants.CellWidth
		buf.Text(caret, row, "▾", render.Contrast(slot), tcell.AttrNone, span)

	case block.ElemBoolean:
		buf.Fill(span, render.Darken(bg, 0.35))

	case block.ElemColor:
		buf.Fill(span, render.FromTriple([3]float64{b.D, b.E, b.F}))
	}
}

// drawPreview marks where the ghost would attach
func (r *WorkspaceRenderer) drawPreview(ctx render.RenderContext, buf *render.RenderBuffer, g *block.Graph, o *geometry.Oracle, dragged block.ID, p snap.Target) {
	clip := ctx.Frame.Workspace
	t := g.Get(p.ID)
	if t == nil {
		return
	}

	switch p.Kind {
	case geometry.SlotCondition, geometry.Arg0, geometry.Arg1, geometry.Arg2:
		rect, ok := o.Layout(g, t).SlotRect(p.Kind.Slot())
		if !ok {
			return
		}
		cells := ctx.WorkspaceRectToScreen(rect).Intersect(clip)
		for y := cells.Min.Y; y < cells.Max.Y; y++ {
			for x := cells.Min.X; x < cells.Max.X; x++ {
				buf.SetBgOnly(x, y, render.RgbSnapMarker)
			}
		}
		return
	}

	seam := p.Anchor
	if p.Kind == geometry.SlotBefore {
		seam = image.Pt(t.X, t.Y)
	}
	width := 0
	if root := g.Get(dragged); root != nil {
		width = o.Layout(g, root).Header.Dx()
	}
	x0, y := ctx.WorkspaceToScreen(seam)
	x1, _ := ctx.WorkspaceToScreen(image.Pt(seam.X+max(width, constants.StackMinWidth)-1, seam.Y))
	if y < clip.Min.Y || y >= clip.Max.Y {
		return
	}
	for x := max(x0, clip.Min.X); x <= min(x1, clip.Max.X-1); x++ {
		buf.SetFgOnly(x, y, '━', render.RgbSnapMarker, tcell.AttrBold)
	}
}

// inMouth reports whether pt falls in an open body of the block
func inMouth(l geometry.Layout, pt image.Point) bool {
	for _, m := range l.Mouths {
		if !m.Empty() && pt.In(m) {
			return true
		}
	}
	return false
}
