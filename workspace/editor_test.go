package workspace

import (
	"image"
	"testing"

	"github.com/lixenwraith/blockstage/block"
)

func pressPath(e *Editor, s Scope, path ...image.Point) {
	e.HandleEvent(s, Event{Kind: EventPointerDown, Pos: path[0]})
	for _, p := range path[1:] {
		e.HandleEvent(s, Event{Kind: EventPointerMove, Pos: p})
	}
	e.HandleEvent(s, Event{Kind: EventPointerUp, Pos: path[len(path)-1]})
}

func TestDropWithoutSnapBecomesRoot(t *testing.T) {
	s := newScope()
	e := NewEditor(newOracle())
	hat := root(s.g, block.KindEvents, block.EventsFlagClicked, 0, 0)
	move := s.g.Spawn(block.KindMotion, block.MotionMove)
	if err := AppendAfter(s.g, hat.ID, move.ID); err != nil {
		t.Fatal(err)
	}
	Propagate(s.g, e.Oracle())

	// move sits at (0,40); (4,52) is inside it over no element
	pressPath(e, s, image.Pt(4, 52), image.Pt(150, 200), image.Pt(304, 412))

	if !s.g.IsRoot(move.ID) || hat.Next != block.None {
		t.Fatal("Dropped block must be a free root")
	}
	if move.X != 300 || move.Y != 400 {
		t.Errorf("Dropped at (%d,%d), want (300,400)", move.X, move.Y)
	}
	mustValid(t, s.g)

	Propagate(s.g, e.Oracle())
	if move.X != 300 || move.Y != 400 || hat.X != 0 || hat.Y != 0 {
		t.Error("Propagation after a drop must not move roots")
	}
}

func TestDragSnapsAfterHat(t *testing.T) {
	s := newScope()
	e := NewEditor(newOracle())
	hat := root(s.g, block.KindEvents, block.EventsFlagClicked, 0, 0)
	move := root(s.g, block.KindMotion, block.MotionMove, 200, 200)

	e.HandleEvent(s, Event{Kind: EventPointerDown, Pos: image.Pt(210, 210)})
	e.HandleEvent(s, Event{Kind: EventPointerMove, Pos: image.Pt(10, 50)})

	if id, ok := e.Dragging(); !ok || id != move.ID {
		t.Fatal("Move past click slop must start a drag")
	}
	if p := e.Preview(); !p.OK || p.ID != hat.ID {
		t.Fatalf("Preview = %+v, want after hat", p)
	}

	e.HandleEvent(s, Event{Kind: EventPointerUp, Pos: image.Pt(10, 50)})
	if hat.Next != move.ID || move.Parent != hat.ID {
		t.Fatal("Drop must attach below the hat")
	}
	if move.X != 0 || move.Y != 40 {
		t.Errorf("Snapped block at (%d,%d), want (0,40)", move.X, move.Y)
	}
	if len(s.g.Roots()) != 1 {
		t.Errorf("Roots = %v, want only the hat", s.g.Roots())
	}
	mustValid(t, s.g)
}

func TestDragFromChainTakesFollowers(t *testing.T) {
	s := newScope()
	e := NewEditor(newOracle())
	hat := root(s.g, block.KindEvents, block.EventsFlagClicked, 0, 0)
	a := s.g.Spawn(block.KindMotion, block.MotionMove)
	b := s.g.Spawn(block.KindMotion, block.MotionMove)
	if err := AppendAfter(s.g, hat.ID, a.ID); err != nil {
		t.Fatal(err)
	}
	if err := AppendAfter(s.g, hat.ID, b.ID); err != nil {
		t.Fatal(err)
	}
	Propagate(s.g, e.Oracle())

	e.HandleEvent(s, Event{Kind: EventPointerDown, Pos: image.Pt(4, 52)})
	e.HandleEvent(s, Event{Kind: EventPointerMove, Pos: image.Pt(400, 52)})
	mustValid(t, s.g, a.ID)
	if a.Next != b.ID || hat.Next != block.None {
		t.Error("Dragging a mid-chain block must carry the rest of the chain")
	}
	if b.X != a.X {
		t.Error("Followers must move with the ghost")
	}
}

func TestDragOutOfBodyClosesChain(t *testing.T) {
	s := newScope()
	e := NewEditor(newOracle())
	rep := root(s.g, block.KindControl, block.ControlRepeat, 0, 0)
	body := s.g.Spawn(block.KindMotion, block.MotionMove)
	follower := s.g.Spawn(block.KindLooks, block.LooksShow)
	if _, err := PlugInto(s.g, rep.ID, block.SlotChild, body.ID, image.Point{}); err != nil {
		t.Fatal(err)
	}
	if err := AppendAfter(s.g, rep.ID, follower.ID); err != nil {
		t.Fatal(err)
	}
	Propagate(s.g, e.Oracle())
	before := follower.Y

	start := image.Pt(body.X+4, body.Y+12)
	e.HandleEvent(s, Event{Kind: EventPointerDown, Pos: start})
	e.HandleEvent(s, Event{Kind: EventPointerMove, Pos: start.Add(image.Pt(200, 300))})
	if id, ok := e.Dragging(); !ok || id != body.ID {
		t.Fatal("Expected the body block to be dragged")
	}

	during := follower.Y
	if during >= before {
		t.Fatalf("Follower stayed at y=%d while its sibling body was dragged out", during)
	}
	Propagate(s.g, e.Oracle())
	if follower.Y != during {
		t.Errorf("Follower y=%d during drag, fresh layout gives %d", during, follower.Y)
	}
	if p := e.Preview(); p.OK && p.ID == rep.ID {
		t.Error("Ghost far from the chain must not preview a snap onto it")
	}
}

func TestReporterDropEvictsOccupant(t *testing.T) {
	s := newScope()
	e := NewEditor(newOracle())
	add := root(s.g, block.KindOperators, block.OpAdd, 0, 0)
	xpos := root(s.g, block.KindMotion, block.MotionXPosition, 0, 0)
	if _, err := PlugInto(s.g, add.ID, block.SlotArg0, xpos.ID, image.Point{}); err != nil {
		t.Fatal(err)
	}
	Propagate(s.g, e.Oracle())

	timer := e.Spawn(s, block.KindSensing, block.SensingTimer, image.Pt(300, 300))
	e.HandleEvent(s, Event{Kind: EventPointerMove, Pos: image.Pt(50, 20)})
	e.HandleEvent(s, Event{Kind: EventPointerUp, Pos: image.Pt(50, 20)})

	if add.Args[0] != timer {
		t.Fatalf("Slot holds %d, want spawned timer %d", add.Args[0], timer)
	}
	if !s.g.IsRoot(xpos.ID) {
		t.Error("Evicted reporter must become a root")
	}
	if xpos.X != 74 || xpos.Y != 68 {
		t.Errorf("Evicted reporter at (%d,%d), want (74,68)", xpos.X, xpos.Y)
	}
	mustValid(t, s.g)
}

func TestClickActivatesScript(t *testing.T) {
	s := newScope()
	e := NewEditor(newOracle())
	hat := root(s.g, block.KindEvents, block.EventsFlagClicked, 0, 0)
	move := s.g.Spawn(block.KindMotion, block.MotionMove)
	if err := AppendAfter(s.g, hat.ID, move.ID); err != nil {
		t.Fatal(err)
	}
	Propagate(s.g, e.Oracle())

	pressPath(e, s, image.Pt(4, 52), image.Pt(5, 53))
	got := e.TakeActivated()
	if len(got) != 1 || got[0] != hat.ID {
		t.Fatalf("Activated = %v, want [%d]", got, hat.ID)
	}
	if hat.Next != move.ID {
		t.Error("A click must not detach anything")
	}
	if len(e.TakeActivated()) != 0 {
		t.Error("TakeActivated must clear the list")
	}
}

func TestNumericFieldEditing(t *testing.T) {
	s := newScope()
	e := NewEditor(newOracle())
	move := root(s.g, block.KindMotion, block.MotionMove, 0, 0)

	// value capsule spans (48,16)-(80,32)
	e.HandleEvent(s, Event{Kind: EventPointerDown, Pos: image.Pt(60, 20)})
	if id, f, ok := e.Focus(); !ok || id != move.ID || f != block.FieldA {
		t.Fatal("Capsule press must focus the field")
	}

	e.HandleEvent(s, Event{Kind: EventKey, Key: KeyBackspace})
	e.HandleEvent(s, Event{Kind: EventKey, Key: KeyBackspace})
	e.HandleEvent(s, Event{Kind: EventText, Rune: '-'})
	if move.A != 0 {
		t.Errorf("Lone minus value = %v, want 0", move.A)
	}
	if got := e.Oracle().Layout(s.g, move).Elements[1].Text; got != "-" {
		t.Errorf("In-progress text = %q, want -", got)
	}

	e.HandleEvent(s, Event{Kind: EventText, Rune: '5'})
	e.HandleEvent(s, Event{Kind: EventKey, Key: KeyEnter})
	if move.A != -5 {
		t.Errorf("Committed value = %v, want -5", move.A)
	}
	if _, _, ok := e.Focus(); ok {
		t.Error("Enter must release focus")
	}

	e.HandleEvent(s, Event{Kind: EventPointerDown, Pos: image.Pt(60, 20)})
	e.HandleEvent(s, Event{Kind: EventText, Rune: 'x'})
	e.HandleEvent(s, Event{Kind: EventPointerDown, Pos: image.Pt(500, 500)})
	if move.A != 0 {
		t.Errorf("Malformed number = %v, want 0", move.A)
	}
}

func TestDeleteClearsFocus(t *testing.T) {
	s := newScope()
	e := NewEditor(newOracle())
	move := root(s.g, block.KindMotion, block.MotionMove, 0, 0)

	e.HandleEvent(s, Event{Kind: EventPointerDown, Pos: image.Pt(60, 20)})
	if _, _, ok := e.Focus(); !ok {
		t.Fatal("Expected focus")
	}
	if _, err := e.Delete(s, move.ID); err != nil {
		t.Fatal(err)
	}
	if _, _, ok := e.Focus(); ok {
		t.Error("Deleting the focused block must clear focus")
	}
	if e.HandleEvent(s, Event{Kind: EventText, Rune: '1'}) {
		t.Error("Text must not be consumed without focus")
	}
}

func TestDeleteKeyDiscardsDrag(t *testing.T) {
	s := newScope()
	e := NewEditor(newOracle())
	id := e.Spawn(s, block.KindLooks, block.LooksShow, image.Pt(100, 100))

	e.HandleEvent(s, Event{Kind: EventKey, Key: KeyDelete})
	if !e.Discarding() {
		t.Fatal("Delete during drag must mark it for discard")
	}
	e.HandleEvent(s, Event{Kind: EventPointerUp, Pos: image.Pt(120, 120)})
	if s.g.Get(id) != nil || s.g.Len() != 0 {
		t.Error("Discarded drag must remove the block")
	}
}

func TestDropdownCyclesOption(t *testing.T) {
	s := newScope()
	e := NewEditor(newOracle())
	recv := root(s.g, block.KindEvents, block.EventsReceive, 0, 0)

	// dropdown follows the 112-unit label at x=128
	e.HandleEvent(s, Event{Kind: EventPointerDown, Pos: image.Pt(130, 20)})
	if recv.Opt != 1 {
		t.Errorf("Opt = %d, want 1", recv.Opt)
	}
	e.HandleEvent(s, Event{Kind: EventPointerUp, Pos: image.Pt(130, 20)})
	if len(e.TakeActivated()) != 0 {
		t.Error("Dropdown press must not run the script")
	}

	recv.Opt = 7
	e.HandleEvent(s, Event{Kind: EventPointerDown, Pos: image.Pt(130, 20)})
	if recv.Opt != 1 {
		t.Errorf("Stale option must clamp to 0 then advance, got %d", recv.Opt)
	}
}

func TestDropLastGrapheme(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", ""},
		{"12", "1"},
		{"café", "caf"},
		{"a🇯🇵", "a"},
	}
	for _, tt := range tests {
		if got := dropLastGrapheme(tt.in); got != tt.want {
			t.Errorf("dropLastGrapheme(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0}, {"-", 0}, {"abc", 0}, {"12.5", 12.5}, {" -3 ", -3}, {"NaN", 0}, {"1e999", 0},
	}
	for _, tt := range tests {
		if got := ParseNumber(tt.in); got != tt.want {
			t.Errorf("ParseNumber(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
