// Package geometry lays out block elements left to right and answers
// shape and hit-test queries. Drawing and hit testing both consume the same
// Layout, so a click target always matches what is on screen.
package geometry

import (
	"image"

	"github.com/lixenwraith/blockstage/block"
	"github.com/lixenwraith/blockstage/constants"
)

// Measurer returns the rendered width of a label in workspace units
type Measurer interface {
	MeasureLabel(text string) int
}

// Region is a hit-test result code
type Region uint8

const (
	None Region = iota
	Body
	SlotAfter
	SlotBefore
	SlotCondition
	SlotBody1
	SlotBody2
	Arg0
	Arg1
	Arg2
)

var regionNames = [...]string{"none", "body", "after", "before", "condition", "body1", "body2", "arg0", "arg1", "arg2"}

func (r Region) String() string {
	if int(r) < len(regionNames) {
		return regionNames[r]
	}
	return "invalid"
}

// ArgRegion returns the region code of argument slot i
func ArgRegion(i int) Region {
	return Arg0 + Region(i)
}

// Slot maps a region to the link field it addresses
func (r Region) Slot() block.Slot {
	switch r {
	case SlotAfter:
		return block.SlotNext
	case SlotCondition:
		return block.SlotCondition
	case SlotBody1:
		return block.SlotChild
	case SlotBody2:
		return block.SlotChild2
	case Arg0, Arg1, Arg2:
		return block.ArgSlot(int(r - Arg0))
	}
	return block.SlotNone
}

// RegionOf maps a link slot back to its region code
func RegionOf(s block.Slot) Region {
	switch s {
	case block.SlotNext:
		return SlotAfter
	case block.SlotCondition:
		return SlotCondition
	case block.SlotChild:
		return SlotBody1
	case block.SlotChild2:
		return SlotBody2
	case block.SlotArg0, block.SlotArg1, block.SlotArg2:
		return ArgRegion(s.ArgIndex())
	}
	return None
}

// Oracle computes sizes and layouts. Sizes are memoized until Reset; call
// Reset after any mutation before the next query.
type Oracle struct {
	measure Measurer
	choices block.Choices
	sizes   map[block.ID]image.Point

	editID    block.ID
	editField block.Field
	editText  string
}

// New creates an oracle
func New(m Measurer, c block.Choices) *Oracle {
	return &Oracle{
		measure: m,
		choices: c,
		sizes:   make(map[block.ID]image.Point),
	}
}

// Reset drops memoized sizes
func (o *Oracle) Reset() {
	clear(o.sizes)
}

// SetChoices swaps the dropdown source (actor selection changed)
func (o *Oracle) SetChoices(c block.Choices) {
	o.choices = c
	o.Reset()
}

// Choices returns the current dropdown source
func (o *Oracle) Choices() block.Choices {
	return o.choices
}

// SetEdit shows text in place of the literal of (id, field) while it is being typed
func (o *Oracle) SetEdit(id block.ID, f block.Field, text string) {
	o.editID, o.editField, o.editText = id, f, text
	delete(o.sizes, id)
}

// ClearEdit ends the in-progress text override
func (o *Oracle) ClearEdit() {
	if o.editID != block.None {
		delete(o.sizes, o.editID)
	}
	o.editID, o.editField, o.editText = block.None, block.FieldNone, ""
}

// Size returns the bounding box size of b including nested bodies
func (o *Oracle) Size(g *block.Graph, id block.ID) image.Point {
	if sz, ok := o.sizes[id]; ok {
		return sz
	}
	b := g.Get(id)
	if b == nil {
		return image.Point{}
	}
	d := b.Def()
	if d == nil {
		return image.Point{}
	}
	w, hh := o.headerSize(g, b, d)
	h := hh
	switch d.Bodies() {
	case 1:
		h += o.mouthHeight(g, b.Child) + constants.ArmHeight
	case 2:
		h += o.mouthHeight(g, b.Child) + constants.ElseRowHeight + o.mouthHeight(g, b.Child2) + constants.ArmHeight
	}
	sz := image.Pt(w, h)
	o.sizes[id] = sz
	return sz
}

// ChainHeight returns the visual height of the next-chain starting at id
func (o *Oracle) ChainHeight(g *block.Graph, id block.ID) int {
	total, n := 0, 0
	for b := g.Get(id); b != nil && n <= g.Len(); b = g.Get(b.Next) {
		total += o.Size(g, b.ID).Y
		n++
	}
	if n > 1 {
		total -= (n - 1) * constants.StackOverlap
	}
	return total
}

// Box returns b's absolute bounding rectangle
func (o *Oracle) Box(g *block.Graph, b *block.Block) image.Rectangle {
	sz := o.Size(g, b.ID)
	return image.Rect(b.X, b.Y, b.X+sz.X, b.Y+sz.Y)
}

func (o *Oracle) mouthHeight(g *block.Graph, child block.ID) int {
	return max(constants.EmptyBodyHeight, o.ChainHeight(g, child))
}
