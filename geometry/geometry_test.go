package geometry

import (
	"image"
	"testing"
	"unicode/utf8"

	"github.com/lixenwraith/blockstage/block"
)

// monoMeasurer reports 8 units per rune, matching one terminal column
type monoMeasurer struct{}

func (monoMeasurer) MeasureLabel(s string) int {
	return utf8.RuneCountInString(s) * 8
}

func newOracle() *Oracle {
	return New(monoMeasurer{}, block.StaticChoices{Messages: []string{"go"}, Variables: []string{"score"}})
}

func attach(parent *block.Block, s block.Slot, child *block.Block) {
	parent.SetLink(s, child.ID)
	child.Parent = parent.ID
}

func TestStackBlockLayout(t *testing.T) {
	g := block.NewGraph()
	o := newOracle()
	move := g.Spawn(block.KindMotion, block.MotionMove)

	if got := o.Size(g, move.ID); got != image.Pt(136, 48) {
		t.Fatalf("move size = %v, want (136,48)", got)
	}

	l := o.Layout(g, move)
	if len(l.Elements) != 3 {
		t.Fatalf("Expected 3 elements, got %d", len(l.Elements))
	}
	wantRects := []image.Rectangle{
		image.Rect(8, 16, 40, 32),
		image.Rect(48, 16, 80, 32),
		image.Rect(88, 16, 128, 32),
	}
	for i, want := range wantRects {
		if l.Elements[i].Rect != want {
			t.Errorf("Element %d rect = %v, want %v", i, l.Elements[i].Rect, want)
		}
	}
	if l.Elements[1].Text != "10" {
		t.Errorf("Capsule text = %q, want 10", l.Elements[1].Text)
	}
}

func TestStackBlockHitRegions(t *testing.T) {
	g := block.NewGraph()
	o := newOracle()
	move := g.Spawn(block.KindMotion, block.MotionMove)
	move.X, move.Y = 100, 200

	tests := []struct {
		name string
		pt   image.Point
		want Region
	}{
		{"outside right", image.Pt(300, 220), None},
		{"outside above", image.Pt(110, 199), None},
		{"label is body", image.Pt(120, 220), Body},
		{"capsule is arg0", image.Pt(160, 220), Arg0},
		{"top band", image.Pt(110, 202), SlotBefore},
		{"bottom band", image.Pt(110, 245), SlotAfter},
		{"plain body", image.Pt(110, 210), Body},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := o.HitTest(g, move, tt.pt); got != tt.want {
				t.Errorf("HitTest(%v) = %s, want %s", tt.pt, got, tt.want)
			}
		})
	}
}

func TestHatAndCapHaveNoBands(t *testing.T) {
	g := block.NewGraph()
	o := newOracle()
	hat := g.Spawn(block.KindEvents, block.EventsFlagClicked)
	stop := g.Spawn(block.KindControl, block.ControlStopAll)

	if got := o.HitTest(g, hat, image.Pt(2, 1)); got != Body {
		t.Errorf("Hat top band = %s, want body", got)
	}
	h := o.Size(g, stop.ID).Y
	if got := o.HitTest(g, stop, image.Pt(2, h-1)); got != Body {
		t.Errorf("Cap bottom band = %s, want body", got)
	}
}

func TestCBlockHeightFollowsBody(t *testing.T) {
	g := block.NewGraph()
	o := newOracle()
	rep := g.Spawn(block.KindControl, block.ControlRepeat)

	if got := o.Size(g, rep.ID); got != image.Pt(104, 96) {
		t.Fatalf("Empty repeat size = %v, want (104,96)", got)
	}

	a := g.Spawn(block.KindMotion, block.MotionMove)
	attach(rep, block.SlotChild, a)
	o.Reset()
	if got := o.Size(g, rep.ID).Y; got != 112 {
		t.Errorf("Repeat with one child height = %d, want 112", got)
	}

	b := g.Spawn(block.KindMotion, block.MotionMove)
	attach(a, block.SlotNext, b)
	o.Reset()
	if got := o.ChainHeight(g, a.ID); got != 88 {
		t.Errorf("Two-block chain height = %d, want 88", got)
	}
	if got := o.Size(g, rep.ID).Y; got != 152 {
		t.Errorf("Repeat with two children height = %d, want 152", got)
	}
}

func TestIfElseRegions(t *testing.T) {
	g := block.NewGraph()
	o := newOracle()
	ife := g.Spawn(block.KindControl, block.ControlIfElse)

	if got := o.Size(g, ife.ID); got != image.Pt(112, 160) {
		t.Fatalf("if-else size = %v, want (112,160)", got)
	}

	tests := []struct {
		pt   image.Point
		want Region
	}{
		{image.Pt(40, 20), SlotCondition},
		{image.Pt(50, 60), SlotBody1},
		{image.Pt(50, 90), Body},
		{image.Pt(50, 120), SlotBody2},
		{image.Pt(4, 60), Body},
		{image.Pt(50, 155), SlotAfter},
	}
	for _, tt := range tests {
		if got := o.HitTest(g, ife, tt.pt); got != tt.want {
			t.Errorf("HitTest(%v) = %s, want %s", tt.pt, got, tt.want)
		}
	}

	l := o.Layout(g, ife)
	if l.MouthOrigin(1) != image.Pt(16, 112) {
		t.Errorf("Second mouth origin = %v, want (16,112)", l.MouthOrigin(1))
	}
}

func TestReporterGrowsAroundPluggedArgument(t *testing.T) {
	g := block.NewGraph()
	o := newOracle()
	outer := g.Spawn(block.KindOperators, block.OpAdd)
	outer.A, outer.B = 1, 2

	if got := o.Size(g, outer.ID); got != image.Pt(88, 32) {
		t.Fatalf("add size = %v, want (88,32)", got)
	}

	inner := g.Spawn(block.KindOperators, block.OpAdd)
	inner.A, inner.B = 3, 4
	attach(outer, block.SlotArg0, inner)
	o.Reset()

	if got := o.Size(g, outer.ID); got != image.Pt(152, 48) {
		t.Fatalf("Nested add size = %v, want (152,48)", got)
	}
	l := o.Layout(g, outer)
	if l.Elements[0].Plugged != inner.ID {
		t.Error("Slot 0 should report its occupant")
	}
	r, ok := l.SlotRect(block.SlotArg0)
	if !ok || r != image.Rect(8, 8, 96, 40) {
		t.Errorf("Arg0 rect = %v, want (8,8)-(96,40)", r)
	}
}

func TestEditOverrideAndDropdownClamp(t *testing.T) {
	g := block.NewGraph()
	o := newOracle()
	move := g.Spawn(block.KindMotion, block.MotionMove)

	o.SetEdit(move.ID, block.FieldA, "-")
	if got := o.Layout(g, move).Elements[1].Text; got != "-" {
		t.Errorf("Edit override text = %q, want -", got)
	}
	o.ClearEdit()
	if got := o.Layout(g, move).Elements[1].Text; got != "10" {
		t.Errorf("Text after ClearEdit = %q, want 10", got)
	}

	recv := g.Spawn(block.KindEvents, block.EventsReceive)
	recv.Opt = 5
	if got := o.Layout(g, recv).Elements[1].Text; got != "go" {
		t.Errorf("Out-of-range option label = %q, want go", got)
	}
	if recv.Opt != 5 {
		t.Error("Reading must not rewrite the stored option")
	}
}

func TestRegionSlotMapping(t *testing.T) {
	for _, r := range []Region{SlotAfter, SlotCondition, SlotBody1, SlotBody2, Arg0, Arg1, Arg2} {
		if back := RegionOf(r.Slot()); back != r {
			t.Errorf("RegionOf(%s.Slot()) = %s", r, back)
		}
	}
	if Body.Slot() != block.SlotNone {
		t.Error("Body addresses no slot")
	}
}
