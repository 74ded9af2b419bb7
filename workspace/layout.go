package workspace

import (
	"github.com/lixenwraith/blockstage/block"
	"github.com/lixenwraith/blockstage/constants"
	"github.com/lixenwraith/blockstage/geometry"
)

// Propagate positions every block of every root tree from the root's stored
// position. Running it twice yields the same positions.
func Propagate(g *block.Graph, o *geometry.Oracle) {
	o.Reset()
	seen := make(map[block.ID]bool)
	for _, r := range g.Roots() {
		place(g, o, r, seen)
	}
}

// PropagateFrom positions the tree under id alone, used for a floating drag
func PropagateFrom(g *block.Graph, o *geometry.Oracle, id block.ID) {
	o.Reset()
	place(g, o, id, make(map[block.ID]bool))
}

// place walks a next-chain from id, placing nested blocks depth first.
// Sizes come from the oracle, which measures bodies before their parents.
func place(g *block.Graph, o *geometry.Oracle, id block.ID, seen map[block.ID]bool) {
	for b := g.Get(id); b != nil && !seen[b.ID]; {
		seen[b.ID] = true
		l := o.Layout(g, b)

		for _, p := range l.Elements {
			if child := g.Get(p.Plugged); child != nil {
				child.X, child.Y = p.Rect.Min.X, p.Rect.Min.Y
				place(g, o, child.ID, seen)
			}
		}
		for i, body := range []block.ID{b.Child, b.Child2} {
			if child := g.Get(body); child != nil && l.Def != nil && i < l.Def.Bodies() {
				at := l.MouthOrigin(i)
				child.X, child.Y = at.X, at.Y
				place(g, o, child.ID, seen)
			}
		}

		next := g.Get(b.Next)
		if next == nil {
			return
		}
		next.X = b.X
		next.Y = b.Y + l.Box.Dy() - constants.StackOverlap
		b = next
	}
}
