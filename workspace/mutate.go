package workspace

import (
	"errors"
	"fmt"
	"image"

	"github.com/lixenwraith/blockstage/block"
)

var (
	ErrNotFound      = errors.New("block not found")
	ErrShapeMismatch = errors.New("shape mismatch")
	ErrCycle         = errors.New("block would contain itself")
	ErrNotRoot       = errors.New("block is still attached")
)

// Detach unlinks id from its parent link or the root list. Its own chain and
// nested blocks stay attached to it. The returned id is id itself.
func Detach(g *block.Graph, id block.ID) (block.ID, error) {
	b := g.Get(id)
	if b == nil {
		return block.None, fmt.Errorf("detach %d: %w", id, ErrNotFound)
	}
	if s := g.SlotOf(b.Parent, id); s != block.SlotNone {
		g.Get(b.Parent).SetLink(s, block.None)
	}
	b.Parent = block.None
	g.RemoveRoot(id)
	return id, nil
}

// InsertBefore splices newRoot's chain above target. Whatever referenced
// target (a parent link or the root list) references newRoot afterwards, and
// the tail of newRoot's chain links to target.
func InsertBefore(g *block.Graph, target, newRoot block.ID) error {
	t, n, err := pair(g, target, newRoot)
	if err != nil {
		return fmt.Errorf("insert %d before %d: %w", newRoot, target, err)
	}
	if !t.Def().HasBefore() || n.Def().Class() != block.ClassStack {
		return fmt.Errorf("insert %d before %d: %w", newRoot, target, ErrShapeMismatch)
	}
	tail := g.Get(g.Last(newRoot))
	if tail.Def() == nil || !tail.Def().HasAfter() {
		return fmt.Errorf("insert %d before %d: tail %d is a cap: %w", newRoot, target, tail.ID, ErrShapeMismatch)
	}
	if n.Def().Shape == block.ShapeHat && t.Parent != block.None {
		return fmt.Errorf("insert hat %d mid-chain: %w", newRoot, ErrShapeMismatch)
	}

	if p := g.Get(t.Parent); p != nil {
		s := g.SlotOf(p.ID, target)
		p.SetLink(s, newRoot)
		n.Parent = p.ID
		g.RemoveRoot(newRoot)
	} else if !g.ReplaceRoot(target, newRoot) {
		g.RemoveRoot(newRoot)
	}

	tail.Next = target
	t.Parent = tail.ID
	return nil
}

// AppendAfter links newRoot below the last block of target's chain
func AppendAfter(g *block.Graph, target, newRoot block.ID) error {
	_, n, err := pair(g, target, newRoot)
	if err != nil {
		return fmt.Errorf("append %d after %d: %w", newRoot, target, err)
	}
	tail := g.Get(g.Last(target))
	if tail.Def() == nil || !tail.Def().HasAfter() || n.Def().Class() != block.ClassStack || n.Def().Shape == block.ShapeHat {
		return fmt.Errorf("append %d after %d: %w", newRoot, tail.ID, ErrShapeMismatch)
	}

	tail.Next = newRoot
	n.Parent = tail.ID
	g.RemoveRoot(newRoot)
	return nil
}

// PlugInto stores newRoot in a body, condition or argument slot of target. A
// previous occupant is evicted to a free root at evictAt with its subgraph
// intact; its id is returned, block.None when the slot was empty.
func PlugInto(g *block.Graph, target block.ID, s block.Slot, newRoot block.ID, evictAt image.Point) (block.ID, error) {
	t, n, err := pair(g, target, newRoot)
	if err != nil {
		return block.None, fmt.Errorf("plug %d into %d %s: %w", newRoot, target, s, err)
	}
	if s == block.SlotNone || s == block.SlotNext || !t.Def().Accepts(s, n.Def().Class()) {
		return block.None, fmt.Errorf("plug %d into %d %s: %w", newRoot, target, s, ErrShapeMismatch)
	}
	if n.Def().Shape == block.ShapeHat {
		return block.None, fmt.Errorf("plug hat %d into %d: %w", newRoot, target, ErrShapeMismatch)
	}

	evicted := block.None
	if old := g.Get(t.Link(s)); old != nil {
		old.Parent = block.None
		old.X, old.Y = evictAt.X, evictAt.Y
		g.AddRoot(old.ID)
		evicted = old.ID
	}

	t.SetLink(s, newRoot)
	n.Parent = target
	g.RemoveRoot(newRoot)
	return evicted, nil
}

// Delete detaches id and removes it and everything beneath it. Returns the
// removed ids.
func Delete(g *block.Graph, id block.ID) ([]block.ID, error) {
	if _, err := Detach(g, id); err != nil {
		return nil, fmt.Errorf("delete: %w", err)
	}
	removed := g.Subtree(id)
	for _, rid := range removed {
		g.Remove(rid)
	}
	return removed, nil
}

// pair resolves an attachment target and a free, known-kind subgraph root
func pair(g *block.Graph, target, newRoot block.ID) (*block.Block, *block.Block, error) {
	t, n := g.Get(target), g.Get(newRoot)
	if t == nil || n == nil {
		return nil, nil, ErrNotFound
	}
	if t.Def() == nil || n.Def() == nil {
		return nil, nil, ErrShapeMismatch
	}
	if n.Parent != block.None {
		return nil, nil, ErrNotRoot
	}
	if g.Contains(newRoot, target) {
		return nil, nil, ErrCycle
	}
	return t, n, nil
}
