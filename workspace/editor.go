// Package workspace owns every change to a block graph: the four link
// mutators, layout propagation and the input-driven editor built on them
package workspace

import (
	"image"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/lixenwraith/blockstage/block"
	"github.com/lixenwraith/blockstage/constants"
	"github.com/lixenwraith/blockstage/geometry"
	"github.com/lixenwraith/blockstage/snap"
)

// Scope is the actor an event edits: its graph and its dropdown lists
type Scope interface {
	block.Choices
	Blocks() *block.Graph
}

// EventKind discriminates editor input
type EventKind uint8

const (
	EventPointerDown EventKind = iota
	EventPointerMove
	EventPointerUp
	EventText
	EventKey
)

// Key is a non-text key the editor reacts to
type Key uint8

const (
	KeyNone Key = iota
	KeyBackspace
	KeyDelete
	KeyEnter
	KeyEscape
)

// Event is one input event in workspace coordinates
type Event struct {
	Kind EventKind
	Pos  image.Point
	Rune rune
	Key  Key
}

// press is a pointer-down that has not moved past ClickSlop yet
type press struct {
	id     block.ID
	start  image.Point
	offset image.Point
}

type drag struct {
	root    block.ID
	offset  image.Point // pointer minus root origin
	discard bool
	preview snap.Target
}

type focus struct {
	id    block.ID
	field block.Field
	text  string
}

// Editor turns pointer and text events into graph mutations
type Editor struct {
	oracle    *geometry.Oracle
	press     *press
	drag      *drag
	focus     *focus
	activated []block.ID
}

// NewEditor creates an editor measuring through o
func NewEditor(o *geometry.Oracle) *Editor {
	return &Editor{oracle: o}
}

// Oracle returns the geometry oracle shared with the renderer
func (e *Editor) Oracle() *geometry.Oracle {
	return e.oracle
}

// HandleEvent applies ev to the scope's graph and reports whether it was
// consumed
func (e *Editor) HandleEvent(s Scope, ev Event) bool {
	e.oracle.SetChoices(s)
	g := s.Blocks()

	switch ev.Kind {
	case EventPointerDown:
		return e.pointerDown(s, g, ev.Pos)
	case EventPointerMove:
		return e.pointerMove(g, ev.Pos)
	case EventPointerUp:
		return e.pointerUp(g, ev.Pos)
	case EventText:
		if e.focus == nil {
			return false
		}
		e.editText(g, e.focus.text+string(ev.Rune))
		return true
	case EventKey:
		return e.key(g, ev.Key)
	}
	return false
}

// ===== POINTER =====

func (e *Editor) pointerDown(s Scope, g *block.Graph, pt image.Point) bool {
	id, _ := e.BlockAt(g, pt)
	if e.focus != nil {
		if b := g.Get(id); b != nil && b.ID == e.focus.id && e.onFocusedField(g, b, pt) {
			return true
		}
		e.commit(g)
		id, _ = e.BlockAt(g, pt)
	}
	b := g.Get(id)
	if b == nil {
		return false
	}

	l := e.oracle.Layout(g, b)
	if p, ok := l.ElementAt(pt); ok && p.Plugged == block.None {
		switch {
		case p.Element.Editable():
			e.beginEdit(g, b, p.Element.Field)
			return true
		case p.Element.Kind == block.ElemDropdown:
			if n := len(s.Choices(p.Element.Source)); n > 0 {
				b.Opt = (block.ClampOpt(b.Opt, n) + 1) % n
				Propagate(g, e.oracle)
			}
			return true
		case p.Element.Kind == block.ElemColor:
			next := block.NextSwatch([3]float64{b.D, b.E, b.F})
			b.D, b.E, b.F = next[0], next[1], next[2]
			return true
		}
	}

	e.press = &press{id: b.ID, start: pt, offset: pt.Sub(image.Pt(b.X, b.Y))}
	return true
}

func (e *Editor) pointerMove(g *block.Graph, pt image.Point) bool {
	if e.press != nil && e.drag == nil {
		d := pt.Sub(e.press.start)
		if abs(d.X) <= constants.ClickSlop && abs(d.Y) <= constants.ClickSlop {
			return true
		}
		e.beginDrag(g, e.press.id, e.press.offset)
		e.press = nil
	}
	if e.drag == nil {
		return false
	}

	root := g.Get(e.drag.root)
	if root == nil {
		e.drag = nil
		return true
	}
	origin := pt.Sub(e.drag.offset)
	root.X, root.Y = origin.X, origin.Y
	PropagateFrom(g, e.oracle, root.ID)
	e.drag.preview = snap.Resolve(g, e.oracle, snap.Drag{Root: root.ID, Pos: origin, Pointer: pt})
	return true
}

func (e *Editor) pointerUp(g *block.Graph, pt image.Point) bool {
	if e.press != nil {
		// Released without moving: click to run the script under the press
		if b := g.Get(e.press.id); b != nil {
			e.activated = append(e.activated, g.RootOf(b.ID))
		}
		e.press = nil
		return true
	}
	if e.drag == nil {
		return false
	}

	if e.pointerMove(g, pt); e.drag == nil {
		return true
	}
	d := e.drag
	e.drag = nil
	if d.discard {
		if _, err := Delete(g, d.root); err != nil {
			log.Printf("workspace: discard %d: %v", d.root, err)
		}
		e.dropFocusIfGone(g)
		Propagate(g, e.oracle)
		return true
	}

	if d.preview.OK {
		if err := e.apply(g, d.root, d.preview, pt); err != nil {
			log.Printf("workspace: drop %d on %d %s: %v", d.root, d.preview.ID, d.preview.Kind, err)
			g.AddRoot(d.root)
		}
	} else {
		g.AddRoot(d.root)
	}
	Propagate(g, e.oracle)
	return true
}

// apply performs the mutation a snap target stands for
func (e *Editor) apply(g *block.Graph, root block.ID, t snap.Target, pt image.Point) error {
	target := g.Get(t.ID)
	if target == nil {
		return ErrNotFound
	}
	evictAt := pt.Add(image.Pt(constants.EvictOffsetX, constants.EvictOffsetY))

	switch t.Kind {
	case geometry.SlotAfter:
		if target.Next != block.None {
			return InsertBefore(g, target.Next, root)
		}
		return AppendAfter(g, target.ID, root)

	case geometry.SlotBefore:
		if r := g.Get(root); r != nil {
			r.X, r.Y = t.Anchor.X, t.Anchor.Y
		}
		return InsertBefore(g, target.ID, root)

	case geometry.SlotBody1, geometry.SlotBody2:
		slot := t.Kind.Slot()
		tail := g.Get(g.Last(root))
		if occupant := target.Link(slot); occupant != block.None && tail != nil && tail.Def().HasAfter() {
			return InsertBefore(g, occupant, root)
		}
		_, err := PlugInto(g, target.ID, slot, root, evictAt)
		return err
	}

	_, err := PlugInto(g, target.ID, t.Kind.Slot(), root, evictAt)
	return err
}

func (e *Editor) beginDrag(g *block.Graph, id block.ID, offset image.Point) {
	b := g.Get(id)
	if b == nil {
		return
	}
	if _, err := Detach(g, id); err != nil {
		log.Printf("workspace: drag %d: %v", id, err)
		return
	}
	e.drag = &drag{root: id, offset: offset}
	// the chain it left closes up while the ghost floats
	Propagate(g, e.oracle)
	PropagateFrom(g, e.oracle, id)
}

// BlockAt returns the innermost block under pt, searching the topmost root
// first, and the region hit within it
func (e *Editor) BlockAt(g *block.Graph, pt image.Point) (block.ID, geometry.Region) {
	roots := g.Roots()
	seen := make(map[block.ID]bool)
	var visit func(id block.ID) (block.ID, geometry.Region)
	visit = func(id block.ID) (block.ID, geometry.Region) {
		b := g.Get(id)
		if b == nil || seen[id] {
			return block.None, geometry.None
		}
		seen[id] = true
		var hit block.ID
		var region geometry.Region
		b.ForEachLink(func(_ block.Slot, child block.ID) {
			if hit == block.None {
				hit, region = visit(child)
			}
		})
		if hit != block.None {
			return hit, region
		}
		if r := e.oracle.HitTest(g, b, pt); r != geometry.None {
			return b.ID, r
		}
		return block.None, geometry.None
	}
	for i := len(roots) - 1; i >= 0; i-- {
		if id, r := visit(roots[i]); id != block.None {
			return id, r
		}
	}
	return block.None, geometry.None
}

// ===== PALETTE AND DELETE =====

// Spawn creates a palette block at pt and starts dragging it
func (e *Editor) Spawn(s Scope, k block.Kind, sub block.Subtype, pt image.Point) block.ID {
	g := s.Blocks()
	e.commit(g)
	b := g.Spawn(k, sub)
	offset := image.Pt(constants.BlockPadX, constants.BlockPadX)
	b.X, b.Y = pt.X-offset.X, pt.Y-offset.Y
	e.press = nil
	e.drag = &drag{root: b.ID, offset: offset}
	PropagateFrom(g, e.oracle, b.ID)
	return b.ID
}

// Delete removes id and everything beneath it, clearing edit focus on any
// removed block
func (e *Editor) Delete(s Scope, id block.ID) ([]block.ID, error) {
	g := s.Blocks()
	if e.drag != nil && g.Contains(id, e.drag.root) {
		e.drag = nil
	}
	if e.press != nil && g.Contains(id, e.press.id) {
		e.press = nil
	}
	removed, err := Delete(g, id)
	if err != nil {
		return nil, err
	}
	e.dropFocusIfGone(g)
	Propagate(g, e.oracle)
	return removed, nil
}

// Cancel ends any drag or edit in progress, dropping a dragged subgraph as a
// free root. Used before switching actors.
func (e *Editor) Cancel(s Scope) {
	g := s.Blocks()
	e.commit(g)
	e.press = nil
	if e.drag != nil {
		if g.Get(e.drag.root) != nil {
			g.AddRoot(e.drag.root)
		}
		e.drag = nil
	}
	Propagate(g, e.oracle)
}

// TakeActivated returns and clears the roots clicked since the last call
func (e *Editor) TakeActivated() []block.ID {
	out := e.activated
	e.activated = nil
	return out
}

// Dragging returns the floating root, if a drag is active
func (e *Editor) Dragging() (block.ID, bool) {
	if e.drag == nil {
		return block.None, false
	}
	return e.drag.root, true
}

// Preview returns the live snap target of the active drag
func (e *Editor) Preview() snap.Target {
	if e.drag == nil {
		return snap.Target{}
	}
	return e.drag.preview
}

// Discarding reports whether the active drag will be deleted on release
func (e *Editor) Discarding() bool {
	return e.drag != nil && e.drag.discard
}

// Focus returns the block and field under text edit
func (e *Editor) Focus() (block.ID, block.Field, bool) {
	if e.focus == nil {
		return block.None, block.FieldNone, false
	}
	return e.focus.id, e.focus.field, true
}

// ===== TEXT EDITING =====

func (e *Editor) key(g *block.Graph, k Key) bool {
	if e.drag != nil {
		if k == KeyDelete || k == KeyBackspace {
			e.drag.discard = true
			return true
		}
		return false
	}
	if e.focus == nil {
		return false
	}

	switch k {
	case KeyBackspace:
		e.editText(g, dropLastGrapheme(e.focus.text))
	case KeyEnter, KeyEscape:
		e.commit(g)
	default:
		return false
	}
	return true
}

func (e *Editor) beginEdit(g *block.Graph, b *block.Block, f block.Field) {
	text := b.TextField(f)
	if f.IsNumeric() {
		text = block.FormatNumber(b.Number(f))
	}
	e.focus = &focus{id: b.ID, field: f, text: text}
	e.oracle.SetEdit(b.ID, f, text)
}

// editText stores the in-progress text and writes its value through, so the
// block reads consistently while typing
func (e *Editor) editText(g *block.Graph, text string) {
	b := g.Get(e.focus.id)
	if b == nil {
		e.clearFocus()
		return
	}
	e.focus.text = text
	store(b, e.focus.field, text)
	e.oracle.SetEdit(b.ID, e.focus.field, text)
	Propagate(g, e.oracle)
}

func (e *Editor) commit(g *block.Graph) {
	if e.focus == nil {
		return
	}
	if b := g.Get(e.focus.id); b != nil {
		store(b, e.focus.field, e.focus.text)
	}
	e.clearFocus()
	Propagate(g, e.oracle)
}

func (e *Editor) clearFocus() {
	e.focus = nil
	e.oracle.ClearEdit()
}

func (e *Editor) dropFocusIfGone(g *block.Graph) {
	if e.focus != nil && g.Get(e.focus.id) == nil {
		e.clearFocus()
	}
}

func (e *Editor) onFocusedField(g *block.Graph, b *block.Block, pt image.Point) bool {
	p, ok := e.oracle.Layout(g, b).ElementAt(pt)
	return ok && p.Element.Field == e.focus.field
}

func store(b *block.Block, f block.Field, text string) {
	if f.IsNumeric() {
		b.SetNumber(f, ParseNumber(text))
		return
	}
	b.SetTextField(f, text)
}

// ParseNumber converts committed field text. Anything unparsable, including
// a lone "-", is zero.
func ParseNumber(text string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// dropLastGrapheme removes one user-perceived character
func dropLastGrapheme(s string) string {
	last := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		last, _ = gr.Positions()
	}
	return s[:last]
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
