package geometry

import (
	"image"

	"github.com/lixenwraith/blockstage/block"
	"github.com/lixenwraith/blockstage/constants"
)

// HitTest classifies pt against b's layout. Outside the box is None; inside
// the box over no labelled sub-element is Body.
func (o *Oracle) HitTest(g *block.Graph, b *block.Block, pt image.Point) Region {
	l := o.Layout(g, b)
	return l.HitTest(pt)
}

// HitTest classifies pt against a computed layout
func (l Layout) HitTest(pt image.Point) Region {
	if l.Def == nil || !pt.In(l.Box) {
		return None
	}

	for _, p := range l.Elements {
		if !pt.In(p.Rect) {
			continue
		}
		switch s := p.Element.Slot; {
		case s == block.SlotCondition:
			return SlotCondition
		case s.ArgIndex() >= 0:
			return ArgRegion(s.ArgIndex())
		}
	}

	for i := 0; i < l.Def.Bodies(); i++ {
		if pt.In(l.Mouths[i]) {
			return SlotBody1 + Region(i)
		}
	}

	if l.Def.Class() == block.ClassStack {
		if l.Def.HasBefore() && pt.Y < l.Box.Min.Y+constants.SlotBand {
			return SlotBefore
		}
		if l.Def.HasAfter() && pt.Y >= l.Box.Max.Y-constants.SlotBand {
			return SlotAfter
		}
	}
	return Body
}

// ElementAt returns the element under pt, if any
func (l Layout) ElementAt(pt image.Point) (Placed, bool) {
	for _, p := range l.Elements {
		if pt.In(p.Rect) {
			return p, true
		}
	}
	return Placed{}, false
}
