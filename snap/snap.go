// Package snap resolves where a dragged block would attach if dropped now
package snap

import (
	"image"

	"github.com/lixenwraith/blockstage/block"
	"github.com/lixenwraith/blockstage/constants"
	"github.com/lixenwraith/blockstage/geometry"
)

// Drag describes the floating subgraph
type Drag struct {
	Root    block.ID
	Pos     image.Point // floating top-left of Root
	Pointer image.Point // live pointer position
}

// Target is a resolved attachment. Kind is one of SlotAfter, SlotBefore,
// SlotCondition, SlotBody1, SlotBody2, Arg0..Arg2. OK is false for no snap.
type Target struct {
	ID       block.ID
	Kind     geometry.Region
	Anchor   image.Point
	Distance int
	OK       bool
}

// Resolve scans every root tree except the dragged one and returns the best
// attachment for the drag's shape class
func Resolve(g *block.Graph, o *geometry.Oracle, d Drag) Target {
	root := g.Get(d.Root)
	if root == nil || root.Def() == nil {
		return Target{}
	}

	r := &resolver{
		g:        g,
		o:        o,
		drag:     d,
		def:      root.Def(),
		excluded: make(map[block.ID]bool),
	}
	for _, id := range g.Subtree(d.Root) {
		r.excluded[id] = true
	}

	switch r.def.Class() {
	case block.ClassReporter:
		return r.reporter()
	case block.ClassBoolean:
		r.boolean()
	default:
		r.stack()
	}
	return r.best
}

type resolver struct {
	g        *block.Graph
	o        *geometry.Oracle
	drag     Drag
	def      *block.Def
	excluded map[block.ID]bool
	best     Target
}

// consider accepts a candidate within the per-axis threshold; the smallest
// Manhattan distance wins and ties keep the earlier candidate
func (r *resolver) consider(id block.ID, kind geometry.Region, anchor image.Point) {
	dx := abs(r.drag.Pos.X - anchor.X)
	dy := abs(r.drag.Pos.Y - anchor.Y)
	if dx > constants.SnapThreshold || dy > constants.SnapThreshold {
		return
	}
	dist := dx + dy
	if r.best.OK && dist >= r.best.Distance {
		return
	}
	r.best = Target{ID: id, Kind: kind, Anchor: anchor, Distance: dist, OK: true}
}

// candidates yields every non-excluded block, innermost first, topmost root first
func (r *resolver) candidates(fn func(*block.Block) bool) {
	roots := r.g.Roots()
	seen := make(map[block.ID]bool)
	var visit func(id block.ID) bool
	visit = func(id block.ID) bool {
		b := r.g.Get(id)
		if b == nil || seen[id] || r.excluded[id] {
			return true
		}
		seen[id] = true
		cont := true
		b.ForEachLink(func(_ block.Slot, child block.ID) {
			if cont {
				cont = visit(child)
			}
		})
		if !cont {
			return false
		}
		return fn(b)
	}
	for i := len(roots) - 1; i >= 0; i-- {
		if !visit(roots[i]) {
			return
		}
	}
}

func (r *resolver) stack() {
	dragHeight := r.o.ChainHeight(r.g, r.drag.Root)
	tail := r.g.Get(r.g.Last(r.drag.Root))
	tailOpen := tail != nil && tail.Def() != nil && tail.Def().HasAfter()
	isHat := r.def.Shape == block.ShapeHat

	r.candidates(func(b *block.Block) bool {
		d := b.Def()
		if d == nil || d.Class() != block.ClassStack {
			return true
		}
		box := r.o.Box(r.g, b)

		if !isHat && d.HasAfter() && (b.Next == block.None || tailOpen) {
			r.consider(b.ID, geometry.SlotAfter, image.Pt(b.X, box.Max.Y-constants.StackOverlap))
		}
		if d.HasBefore() && tailOpen && (!isHat || b.Parent == block.None) {
			r.consider(b.ID, geometry.SlotBefore, image.Pt(b.X, b.Y-dragHeight+constants.StackOverlap))
		}
		if !isHat && d.Bodies() > 0 {
			l := r.o.Layout(r.g, b)
			for i := 0; i < d.Bodies(); i++ {
				r.consider(b.ID, geometry.SlotBody1+geometry.Region(i), l.MouthOrigin(i))
			}
		}
		return true
	})
}

func (r *resolver) boolean() {
	r.candidates(func(b *block.Block) bool {
		if b.Def() == nil {
			return true
		}
		l := r.o.Layout(r.g, b)
		for _, p := range l.Elements {
			if p.Element.Kind == block.ElemBoolean {
				r.consider(b.ID, geometry.RegionOf(p.Element.Slot), p.Rect.Min)
			}
		}
		return true
	})
}

// reporter hit-tests the live pointer; the first slot found wins outright
func (r *resolver) reporter() Target {
	var found Target
	r.candidates(func(b *block.Block) bool {
		if b.Def() == nil {
			return true
		}
		l := r.o.Layout(r.g, b)
		region := l.HitTest(r.drag.Pointer)
		s := region.Slot()
		if s.ArgIndex() < 0 {
			return true
		}
		e, ok := l.Def.SlotElement(s)
		if !ok || e.Kind == block.ElemBoolean {
			return true
		}
		rect, _ := l.SlotRect(s)
		found = Target{ID: b.ID, Kind: region, Anchor: rect.Min, OK: true}
		return false
	})
	return found
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
