package block

import (
	"errors"
	"fmt"
)

// ErrInvalidGraph is wrapped by every Validate failure
var ErrInvalidGraph = errors.New("invalid block graph")

// Graph is one actor's block collection and its top-level root list
type Graph struct {
	blocks map[ID]*Block
	order  []ID // creation order for deterministic iteration
	roots  []ID // draw order, last is topmost
	nextID ID
}

// NewGraph creates an empty graph
func NewGraph() *Graph {
	return &Graph{
		blocks: make(map[ID]*Block),
		nextID: 1,
	}
}

// Add inserts b. A zero b.ID is assigned from the counter; an explicit ID
// (decoding) is kept and the counter moves past it. Returns the id.
func (g *Graph) Add(b *Block) ID {
	if b.ID == None {
		b.ID = g.nextID
	}
	if _, exists := g.blocks[b.ID]; exists {
		b.ID = g.nextID
	}
	if b.ID >= g.nextID {
		g.nextID = b.ID + 1
	}
	g.blocks[b.ID] = b
	g.order = append(g.order, b.ID)
	return b.ID
}

// Spawn creates a palette block with catalog defaults. It is not a root.
func (g *Graph) Spawn(k Kind, s Subtype) *Block {
	b := &Block{Kind: k, Subtype: s}
	if d := Lookup(k, s); d != nil {
		b.A, b.B, b.C = d.Defaults.A, d.Defaults.B, d.Defaults.C
		b.D, b.E, b.F = d.Defaults.D, d.Defaults.E, d.Defaults.F
		b.Text, b.Text2 = d.Defaults.Text, d.Defaults.Text2
		b.Opt = d.Defaults.Opt
	}
	g.Add(b)
	return b
}

// Get returns the block for id, nil for None or a dangling id
func (g *Graph) Get(id ID) *Block {
	if id == None {
		return nil
	}
	return g.blocks[id]
}

// Len returns the number of blocks
func (g *Graph) Len() int {
	return len(g.blocks)
}

// NextID returns the id the next Add will assign
func (g *Graph) NextID() ID {
	return g.nextID
}

// Blocks returns every block in creation order
func (g *Graph) Blocks() []*Block {
	out := make([]*Block, 0, len(g.blocks))
	for _, id := range g.order {
		if b, ok := g.blocks[id]; ok {
			out = append(out, b)
		}
	}
	return out
}

// Remove deletes the record for id. Links into or out of it are not touched.
func (g *Graph) Remove(id ID) {
	if _, ok := g.blocks[id]; !ok {
		return
	}
	delete(g.blocks, id)
	for i, oid := range g.order {
		if oid == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	g.RemoveRoot(id)
}

// ===== ROOT LIST =====

// Roots returns a copy of the root list in draw order
func (g *Graph) Roots() []ID {
	out := make([]ID, len(g.roots))
	copy(out, g.roots)
	return out
}

// IsRoot reports whether id is on the root list
func (g *Graph) IsRoot(id ID) bool {
	return g.rootIndex(id) >= 0
}

func (g *Graph) rootIndex(id ID) int {
	for i, r := range g.roots {
		if r == id {
			return i
		}
	}
	return -1
}

// AddRoot appends id to the root list if absent
func (g *Graph) AddRoot(id ID) {
	if id == None || g.IsRoot(id) {
		return
	}
	g.roots = append(g.roots, id)
}

// RemoveRoot drops id from the root list, reports whether it was present
func (g *Graph) RemoveRoot(id ID) bool {
	i := g.rootIndex(id)
	if i < 0 {
		return false
	}
	g.roots = append(g.roots[:i], g.roots[i+1:]...)
	return true
}

// ReplaceRoot puts repl in old's root-list position
func (g *Graph) ReplaceRoot(old, repl ID) bool {
	i := g.rootIndex(old)
	if i < 0 {
		return false
	}
	g.RemoveRoot(repl)
	i = g.rootIndex(old)
	g.roots[i] = repl
	return true
}

// RaiseRoot moves id to the top of the draw order
func (g *Graph) RaiseRoot(id ID) {
	if g.RemoveRoot(id) {
		g.roots = append(g.roots, id)
	}
}

// ===== STRUCTURAL QUERIES =====

// Last returns the final block of the next-chain starting at id
func (g *Graph) Last(id ID) ID {
	b := g.Get(id)
	if b == nil {
		return None
	}
	for steps := 0; steps <= len(g.blocks); steps++ {
		nb := g.Get(b.Next)
		if nb == nil {
			return b.ID
		}
		b = nb
	}
	return b.ID
}

// RootOf walks parent links to the top block containing id
func (g *Graph) RootOf(id ID) ID {
	b := g.Get(id)
	if b == nil {
		return None
	}
	for steps := 0; steps <= len(g.blocks); steps++ {
		p := g.Get(b.Parent)
		if p == nil {
			return b.ID
		}
		b = p
	}
	return b.ID
}

// SlotOf returns which of parent's link fields references child
func (g *Graph) SlotOf(parent, child ID) Slot {
	p := g.Get(parent)
	if p == nil || child == None {
		return SlotNone
	}
	slot := SlotNone
	p.ForEachLink(func(s Slot, id ID) {
		if id == child && slot == SlotNone {
			slot = s
		}
	})
	return slot
}

// Walk visits id and everything linked beneath it in pre-order. Returning
// false from fn skips that block's links. Dangling links are skipped.
func (g *Graph) Walk(id ID, fn func(*Block) bool) {
	seen := make(map[ID]bool)
	var visit func(ID)
	visit = func(cur ID) {
		b := g.Get(cur)
		if b == nil || seen[cur] {
			return
		}
		seen[cur] = true
		if !fn(b) {
			return
		}
		b.ForEachLink(func(_ Slot, child ID) {
			visit(child)
		})
	}
	visit(id)
}

// Subtree returns id and every block linked beneath it
func (g *Graph) Subtree(id ID) []ID {
	var out []ID
	g.Walk(id, func(b *Block) bool {
		out = append(out, b.ID)
		return true
	})
	return out
}

// Contains reports whether id is root or linked beneath root
func (g *Graph) Contains(root, id ID) bool {
	found := false
	g.Walk(root, func(b *Block) bool {
		if b.ID == id {
			found = true
		}
		return !found
	})
	return found
}

// Validate checks every structural invariant and reports the first violation.
// Floating lists blocks allowed to be parentless without a root-list entry
// (an in-flight drag).
func (g *Graph) Validate(floating ...ID) error {
	referenced := make(map[ID]ID)
	for _, b := range g.Blocks() {
		d := b.Def()
		if d == nil {
			return fmt.Errorf("%w: block %d has unknown kind %s/%d", ErrInvalidGraph, b.ID, b.Kind, b.Subtype)
		}
		var err error
		b.ForEachLink(func(s Slot, id ID) {
			if err != nil {
				return
			}
			child := g.Get(id)
			switch {
			case child == nil:
				err = fmt.Errorf("%w: block %d %s links missing %d", ErrInvalidGraph, b.ID, s, id)
			case child.Parent != b.ID:
				err = fmt.Errorf("%w: block %d %s -> %d but parent is %d", ErrInvalidGraph, b.ID, s, id, child.Parent)
			case referenced[id] != None:
				err = fmt.Errorf("%w: block %d referenced by %d and %d", ErrInvalidGraph, id, referenced[id], b.ID)
			case child.Def() == nil || !d.Accepts(s, child.Def().Class()):
				err = fmt.Errorf("%w: block %d %s cannot hold block %d", ErrInvalidGraph, b.ID, s, id)
			case s != SlotCondition && s.ArgIndex() < 0 && child.Def().Shape == ShapeHat:
				err = fmt.Errorf("%w: hat %d linked below block %d", ErrInvalidGraph, id, b.ID)
			}
			referenced[id] = b.ID
		})
		if err != nil {
			return err
		}
		if b.Parent != None {
			if g.Get(b.Parent) == nil {
				return fmt.Errorf("%w: block %d parent %d missing", ErrInvalidGraph, b.ID, b.Parent)
			}
			if g.SlotOf(b.Parent, b.ID) == SlotNone {
				return fmt.Errorf("%w: block %d parent %d has no link back", ErrInvalidGraph, b.ID, b.Parent)
			}
		}
	}

	free := make(map[ID]bool, len(floating))
	for _, id := range floating {
		free[id] = true
	}
	seenRoot := make(map[ID]bool)
	for _, r := range g.roots {
		b := g.Get(r)
		if b == nil {
			return fmt.Errorf("%w: root %d missing", ErrInvalidGraph, r)
		}
		if b.Parent != None {
			return fmt.Errorf("%w: root %d has parent %d", ErrInvalidGraph, r, b.Parent)
		}
		if seenRoot[r] {
			return fmt.Errorf("%w: root %d listed twice", ErrInvalidGraph, r)
		}
		seenRoot[r] = true
	}
	for _, b := range g.Blocks() {
		if b.Parent == None && !seenRoot[b.ID] && !free[b.ID] {
			return fmt.Errorf("%w: block %d is orphaned", ErrInvalidGraph, b.ID)
		}
	}

	// Parent links can form a loop that no root reaches
	reached := 0
	for _, top := range append(g.Roots(), floating...) {
		reached += len(g.Subtree(top))
	}
	if reached != g.Len() {
		return fmt.Errorf("%w: %d of %d blocks reachable from roots", ErrInvalidGraph, reached, g.Len())
	}
	return nil
}
