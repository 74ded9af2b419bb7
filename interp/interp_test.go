package interp

import (
	"image"
	"testing"
	"time"

	"github.com/lixenwraith/blockstage/block"
	"github.com/lixenwraith/blockstage/engine"
	"github.com/lixenwraith/blockstage/stage"
	"github.com/lixenwraith/blockstage/workspace"
)

type testActor struct {
	block.StaticChoices
	name   string
	graph  *block.Graph
	sprite *stage.Sprite
}

func (a *testActor) Name() string { return a.name }
func (a *testActor) Blocks() *block.Graph { return a.graph }
func (a *testActor) Sprite() *stage.Sprite { return a.sprite }

func newActor(name string) *testActor {
	return &testActor{
		StaticChoices: block.StaticChoices{
			Costumes:  []string{"cat-a", "cat-b"},
			Messages:  []string{"go", "stop"},
			Variables: []string{"score"},
		},
		name:   name,
		graph:  block.NewGraph(),
		sprite: stage.NewSprite(),
	}
}

type fakeSound struct {
	played  []string
	playing bool
	stops   int
}

func (f *fakeSound) Play(name string, volume float64) {
	f.played = append(f.played, name)
	f.playing = true
}
func (f *fakeSound) IsPlaying() bool { return f.playing }
func (f *fakeSound) StopAll() {
	f.stops++
	f.playing = false
}

func newInterp() (*Interpreter, *engine.MockTimeProvider, *fakeSound) {
	clock := engine.NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	snd := &fakeSound{}
	i := New(stage.New(clock), snd)
	i.Seed(1, 2)
	return i, clock, snd
}

// script makes blocks[0] a root and chains the rest below it
func script(t *testing.T, g *block.Graph, blocks ...*block.Block) *block.Block {
	t.Helper()
	g.AddRoot(blocks[0].ID)
	for _, b := range blocks[1:] {
		if err := workspace.AppendAfter(g, blocks[0].ID, b.ID); err != nil {
			t.Fatal(err)
		}
	}
	return blocks[0]
}

func plug(t *testing.T, g *block.Graph, target *block.Block, s block.Slot, child *block.Block) {
	t.Helper()
	if _, err := workspace.PlugInto(g, target.ID, s, child.ID, image.Point{}); err != nil {
		t.Fatal(err)
	}
}

func flag(g *block.Graph) *block.Block {
	return g.Spawn(block.KindEvents, block.EventsFlagClicked)
}

func TestScriptRunsToCompletionInOneTick(t *testing.T) {
	i, _, _ := newInterp()
	a := newActor("cat")
	g := a.graph

	setX := g.Spawn(block.KindMotion, block.MotionSetX)
	setX.A = 5
	script(t, g, flag(g),
		g.Spawn(block.KindMotion, block.MotionMove),
		g.Spawn(block.KindMotion, block.MotionTurnRight),
		setX,
	)

	if n := i.GreenFlag(a); n != 1 {
		t.Fatalf("GreenFlag started %d threads, want 1", n)
	}
	i.Tick()

	if a.sprite.X != 5 || a.sprite.Direction != 105 {
		t.Errorf("Sprite at x=%v dir=%v, want x=5 dir=105", a.sprite.X, a.sprite.Direction)
	}
	if i.Running() {
		t.Error("Finished script must leave the pool")
	}
}

func TestWaitResumesAfterDuration(t *testing.T) {
	i, clock, _ := newInterp()
	a := newActor("cat")
	g := a.graph

	wait := g.Spawn(block.KindControl, block.ControlWait)
	wait.A = 2
	setX := g.Spawn(block.KindMotion, block.MotionSetX)
	setX.A = 50
	script(t, g, flag(g), wait, setX)

	i.GreenFlag(a)
	i.Tick()
	ts := i.Threads()
	if len(ts) != 1 || ts[0].Wait != WaitTimer || ts[0].Cursor != setX.ID {
		t.Fatalf("Thread after wait = %+v, want timer wait at set x", ts)
	}

	clock.Advance(1999 * time.Millisecond)
	i.Tick()
	if a.sprite.X != 0 {
		t.Fatal("Wait resumed early")
	}

	clock.Advance(time.Millisecond)
	i.Tick()
	if a.sprite.X != 50 {
		t.Errorf("x = %v after the wait, want 50", a.sprite.X)
	}
	if i.Running() {
		t.Error("Script must finish after the wait")
	}
}

func TestRepeatRunsInlineInOneTick(t *testing.T) {
	i, _, _ := newInterp()
	a := newActor("cat")
	g := a.graph

	rep := g.Spawn(block.KindControl, block.ControlRepeat)
	rep.A = 3
	setY := g.Spawn(block.KindMotion, block.MotionSetY)
	setY.A = 7
	script(t, g, flag(g), rep, setY)
	plug(t, g, rep, block.SlotChild, g.Spawn(block.KindMotion, block.MotionChangeX))

	i.GreenFlag(a)
	i.Tick()
	if a.sprite.X != 30 || a.sprite.Y != 7 {
		t.Errorf("After one tick sprite at (%v,%v), want (30,7)", a.sprite.X, a.sprite.Y)
	}
	if i.Running() {
		t.Error("Repeat without a yielding block must finish in one tick")
	}
}

func TestRepeatUntilRunsInline(t *testing.T) {
	i, _, _ := newInterp()
	a := newActor("cat")
	g := a.graph

	loop := g.Spawn(block.KindControl, block.ControlRepeatUntil)
	gt := g.Spawn(block.KindOperators, block.OpGreater)
	gt.Text2 = "45"
	script(t, g, flag(g), loop)
	plug(t, g, loop, block.SlotCondition, gt)
	plug(t, g, gt, block.SlotArg0, g.Spawn(block.KindMotion, block.MotionXPosition))
	plug(t, g, loop, block.SlotChild, g.Spawn(block.KindMotion, block.MotionChangeX))

	i.GreenFlag(a)
	i.Tick()
	if a.sprite.X != 50 {
		t.Errorf("x = %v, want 50", a.sprite.X)
	}
	if i.Running() {
		t.Error("Repeat until must finish in one tick once its condition holds")
	}
}

func TestForeverYieldsOnlyAtWaits(t *testing.T) {
	i, clock, _ := newInterp()
	a := newActor("cat")
	g := a.graph

	forever := g.Spawn(block.KindControl, block.ControlForever)
	script(t, g, flag(g), forever)
	wait := g.Spawn(block.KindControl, block.ControlWait)
	wait.A = 1
	plug(t, g, forever, block.SlotChild, g.Spawn(block.KindMotion, block.MotionChangeX))
	if err := workspace.AppendAfter(g, forever.Child, wait.ID); err != nil {
		t.Fatal(err)
	}

	i.GreenFlag(a)
	i.Tick()
	i.Tick()
	if a.sprite.X != 10 {
		t.Fatalf("x = %v while waiting, want 10", a.sprite.X)
	}
	clock.Advance(time.Second)
	i.Tick()
	if a.sprite.X != 20 {
		t.Errorf("x = %v after the wait, want 20", a.sprite.X)
	}
}

func TestForeverWithoutWaitGivesUpTheTick(t *testing.T) {
	i, _, _ := newInterp()
	a := newActor("cat")
	g := a.graph

	forever := g.Spawn(block.KindControl, block.ControlForever)
	script(t, g, flag(g), forever)
	plug(t, g, forever, block.SlotChild, g.Spawn(block.KindMotion, block.MotionChangeX))

	i.GreenFlag(a)
	i.Tick()
	if !i.Running() {
		t.Fatal("Forever must keep its thread alive")
	}
	if a.sprite.X == 0 {
		t.Error("Forever body must run within the tick")
	}
}

func TestForeverWithEmptyBodyYields(t *testing.T) {
	i, _, _ := newInterp()
	a := newActor("cat")
	g := a.graph
	script(t, g, flag(g), g.Spawn(block.KindControl, block.ControlForever))

	i.GreenFlag(a)
	i.Tick()
	i.Tick()
	if !i.Running() {
		t.Error("Forever must keep its thread alive")
	}
}

func TestWaitUntilPollsCondition(t *testing.T) {
	i, _, _ := newInterp()
	a := newActor("cat")
	g := a.graph

	until := g.Spawn(block.KindControl, block.ControlWaitUntil)
	setX := g.Spawn(block.KindMotion, block.MotionSetX)
	setX.A = 7
	script(t, g, flag(g), until, setX)
	plug(t, g, until, block.SlotCondition, g.Spawn(block.KindSensing, block.SensingMouseDown))

	i.GreenFlag(a)
	i.Tick()
	i.Tick()
	if a.sprite.X != 0 {
		t.Fatal("Wait until must hold while the condition is false")
	}

	i.Stage().SetMouse(0, 0, true)
	i.Tick()
	if a.sprite.X != 7 {
		t.Errorf("x = %v, want 7 once the mouse is down", a.sprite.X)
	}
}

func TestIfElseTakesOneBranch(t *testing.T) {
	i, _, _ := newInterp()
	a := newActor("cat")
	g := a.graph

	ife := g.Spawn(block.KindControl, block.ControlIfElse)
	after := g.Spawn(block.KindMotion, block.MotionSetY)
	after.A = 9
	script(t, g, flag(g), ife, after)

	eq := g.Spawn(block.KindOperators, block.OpEqual)
	eq.Text, eq.Text2 = "ABC", "abc"
	plug(t, g, ife, block.SlotCondition, eq)
	thenX := g.Spawn(block.KindMotion, block.MotionSetX)
	thenX.A = 1
	elseX := g.Spawn(block.KindMotion, block.MotionSetX)
	elseX.A = 2
	plug(t, g, ife, block.SlotChild, thenX)
	plug(t, g, ife, block.SlotChild2, elseX)

	i.GreenFlag(a)
	i.Tick()
	if a.sprite.X != 1 || a.sprite.Y != 9 {
		t.Errorf("Sprite at (%v,%v), want then-branch x=1 and y=9", a.sprite.X, a.sprite.Y)
	}
}

func TestPlayUntilDoneWaitsForSilence(t *testing.T) {
	i, _, snd := newInterp()
	a := newActor("cat")
	g := a.graph

	play := g.Spawn(block.KindSound, block.SoundPlayUntilDone)
	play.Opt = 1
	setX := g.Spawn(block.KindMotion, block.MotionSetX)
	setX.A = 3
	script(t, g, flag(g), play, setX)

	i.GreenFlag(a)
	i.Tick()
	i.Tick()
	if len(snd.played) != 1 || snd.played[0] != "bell" {
		t.Fatalf("Played %v, want [bell]", snd.played)
	}
	if a.sprite.X != 0 {
		t.Fatal("Script continued while the sound played")
	}

	snd.playing = false
	i.Tick()
	if a.sprite.X != 3 {
		t.Errorf("x = %v after the sound, want 3", a.sprite.X)
	}
}

func TestBroadcastStartsMatchingHats(t *testing.T) {
	i, _, _ := newInterp()
	a, b := newActor("a"), newActor("b")
	i.SetRoster(func() []Actor { return []Actor{a, b} })

	var sent []string
	i.OnBroadcast = func(msg string) { sent = append(sent, msg) }

	for _, act := range []*testActor{a, b} {
		g := act.graph
		goHat := g.Spawn(block.KindEvents, block.EventsReceive)
		setX := g.Spawn(block.KindMotion, block.MotionSetX)
		setX.A = 1
		script(t, g, goHat, setX)

		stopHat := g.Spawn(block.KindEvents, block.EventsReceive)
		stopHat.Opt = 1
		setY := g.Spawn(block.KindMotion, block.MotionSetY)
		setY.A = 1
		script(t, g, stopHat, setY)
	}
	script(t, a.graph, flag(a.graph), a.graph.Spawn(block.KindEvents, block.EventsBroadcast))

	i.GreenFlag(a)
	i.Tick()
	if n := len(i.Threads()); n != 2 {
		t.Fatalf("Broadcast started %d threads, want 2", n)
	}
	if len(sent) != 1 || sent[0] != "go" {
		t.Errorf("Outbound = %v, want [go]", sent)
	}

	i.Tick()
	for _, act := range []*testActor{a, b} {
		if act.sprite.X != 1 || act.sprite.Y != 0 {
			t.Errorf("%s at (%v,%v), want only the go script to run", act.name, act.sprite.X, act.sprite.Y)
		}
	}
}

func TestScriptBroadcastReachesOtherActors(t *testing.T) {
	i, _, _ := newInterp()
	sender, listener := newActor("sender"), newActor("listener")

	recv := listener.graph.Spawn(block.KindEvents, block.EventsReceive)
	setX := listener.graph.Spawn(block.KindMotion, block.MotionSetX)
	setX.A = 4
	script(t, listener.graph, recv, setX)
	script(t, sender.graph, flag(sender.graph), sender.graph.Spawn(block.KindEvents, block.EventsBroadcast))

	// without a roster only the sending actor is scanned
	i.GreenFlag(sender)
	i.Tick()
	i.Tick()
	if listener.sprite.X != 0 {
		t.Fatal("Broadcast left its actor without a roster")
	}

	i.SetRoster(func() []Actor { return []Actor{sender, listener} })
	i.GreenFlag(sender)
	i.Tick()
	i.Tick()
	if listener.sprite.X != 4 {
		t.Errorf("Listener x = %v, want 4 from the other actor's broadcast", listener.sprite.X)
	}
}

func TestStopAllBlockClearsEverything(t *testing.T) {
	i, _, snd := newInterp()
	a, b := newActor("a"), newActor("b")
	i.SetRoster(func() []Actor { return []Actor{a, b} })

	script(t, b.graph, flag(b.graph), b.graph.Spawn(block.KindControl, block.ControlForever))
	script(t, a.graph, flag(a.graph),
		a.graph.Spawn(block.KindLooks, block.LooksSay),
		a.graph.Spawn(block.KindControl, block.ControlStopAll),
	)
	b.sprite.Say("hey", time.Time{})

	i.GreenFlag(b)
	i.GreenFlag(a)
	i.Tick()

	if i.Running() {
		t.Error("Stop all must empty the pool")
	}
	if snd.stops != 1 {
		t.Errorf("Sound StopAll calls = %d, want 1", snd.stops)
	}
	if a.sprite.Bubble != "" || b.sprite.Bubble != "" {
		t.Error("Stop all must clear speech bubbles")
	}
}

func TestHatRetriggerRestartsThread(t *testing.T) {
	i, _, _ := newInterp()
	a := newActor("cat")
	g := a.graph
	wait := g.Spawn(block.KindControl, block.ControlWait)
	wait.A = 10
	script(t, g, flag(g), wait)

	i.GreenFlag(a)
	i.Tick()
	i.GreenFlag(a)
	if n := len(i.Threads()); n != 1 {
		t.Errorf("Threads = %d after retrigger, want 1", n)
	}
}

func TestRunScriptIgnoresRunningScript(t *testing.T) {
	i, _, _ := newInterp()
	a := newActor("cat")
	g := a.graph
	move := g.Spawn(block.KindMotion, block.MotionMove)
	hat := script(t, g, flag(g), move, g.Spawn(block.KindControl, block.ControlForever))

	if !i.RunScript(a, move.ID) {
		t.Fatal("Click on a script must start it")
	}
	if i.RunScript(a, hat.ID) {
		t.Error("Second click must not start a duplicate")
	}
	i.Tick()
	if a.sprite.X != 10 {
		t.Errorf("x = %v, want 10", a.sprite.X)
	}

	rep := g.Spawn(block.KindOperators, block.OpAdd)
	g.AddRoot(rep.ID)
	if i.RunScript(a, rep.ID) {
		t.Error("A lone reporter is not a script")
	}
}

func TestDeletedHatEndsThread(t *testing.T) {
	i, _, _ := newInterp()
	a := newActor("cat")
	g := a.graph
	hat := script(t, g, flag(g), g.Spawn(block.KindControl, block.ControlForever))

	i.GreenFlag(a)
	i.Tick()
	if _, err := workspace.Delete(g, hat.ID); err != nil {
		t.Fatal(err)
	}
	i.Tick()
	if i.Running() {
		t.Error("Thread of a deleted script must end")
	}
}

func TestVariablesSetAndChange(t *testing.T) {
	i, _, _ := newInterp()
	a := newActor("cat")
	g := a.graph

	set := g.Spawn(block.KindVariables, block.VarSet)
	set.Text = "5"
	change := g.Spawn(block.KindVariables, block.VarChange)
	change.A = 2
	script(t, g, flag(g), set, change)

	i.GreenFlag(a)
	i.Tick()
	if got := i.Stage().Var("score"); got != "7" {
		t.Errorf("score = %q, want 7", got)
	}
	get := g.Spawn(block.KindVariables, block.VarGet)
	if got := i.Eval(a, get.ID).Number(); got != 7 {
		t.Errorf("Eval(score) = %v, want 7", got)
	}
}

func TestEvalOperators(t *testing.T) {
	i, _, _ := newInterp()
	a := newActor("cat")
	g := a.graph

	op := func(s block.Subtype, fill func(*block.Block)) block.ID {
		b := g.Spawn(block.KindOperators, s)
		fill(b)
		return b.ID
	}

	tests := []struct {
		name string
		id   block.ID
		want string
	}{
		{"join", op(block.OpJoin, func(b *block.Block) { b.Text, b.Text2 = "ap", "ple" }), "apple"},
		{"letter 1", op(block.OpLetterOf, func(b *block.Block) { b.A, b.Text = 1, "apple" }), "a"},
		{"letter 0", op(block.OpLetterOf, func(b *block.Block) { b.A, b.Text = 0, "apple" }), ""},
		{"letter past end", op(block.OpLetterOf, func(b *block.Block) { b.A, b.Text = 9, "apple" }), ""},
		{"length", op(block.OpLength, func(b *block.Block) { b.Text = "café" }), "4"},
		{"divide by zero", op(block.OpDivide, func(b *block.Block) { b.A, b.B = 5, 0 }), "0"},
		{"divide", op(block.OpDivide, func(b *block.Block) { b.A, b.B = 1, 4 }), "0.25"},
		{"floored mod", op(block.OpMod, func(b *block.Block) { b.A, b.B = -1, 3 }), "2"},
		{"mod zero", op(block.OpMod, func(b *block.Block) { b.A, b.B = 4, 0 }), "0"},
		{"round", op(block.OpRound, func(b *block.Block) { b.A = 2.5 }), "3"},
		{"numeric less", op(block.OpLess, func(b *block.Block) { b.Text, b.Text2 = "10", "9" }), "false"},
		{"text less", op(block.OpLess, func(b *block.Block) { b.Text, b.Text2 = "apple", "Banana" }), "true"},
		{"case-insensitive equal", op(block.OpEqual, func(b *block.Block) { b.Text, b.Text2 = "ABC", "abc" }), "true"},
		{"empty and", op(block.OpAnd, func(b *block.Block) {}), "false"},
	}
	for _, tt := range tests {
		if got := i.Eval(a, tt.id).String(); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestEvalNestedArguments(t *testing.T) {
	i, _, _ := newInterp()
	a := newActor("cat")
	g := a.graph

	add := g.Spawn(block.KindOperators, block.OpAdd)
	add.B = 1
	mul := g.Spawn(block.KindOperators, block.OpMultiply)
	mul.A, mul.B = 2, 3
	plug(t, g, add, block.SlotArg0, mul)

	if got := i.Eval(a, add.ID).Number(); got != 7 {
		t.Errorf("(2*3)+1 = %v, want 7", got)
	}

	not := g.Spawn(block.KindOperators, block.OpNot)
	if !i.Eval(a, not.ID).Truthy() {
		t.Error("not of an empty slot must be true")
	}
	if i.Eval(a, block.ID(999)).Number() != 0 {
		t.Error("Missing block must evaluate to 0")
	}
}

func TestUnknownBlockEvaluatesToZero(t *testing.T) {
	i, _, _ := newInterp()
	a := newActor("cat")
	b := a.graph.Spawn(block.KindOperators, block.Subtype(200))
	b.A = 9

	if v := i.argAt(a, b, 0, 0); v.Number() != 0 {
		t.Errorf("Argument of an unknown block = %v, want 0", v)
	}
	if v := i.Eval(a, b.ID); v.Number() != 0 {
		t.Errorf("Unknown reporter = %v, want 0", v)
	}
}

func TestRandomStaysInRange(t *testing.T) {
	i, _, _ := newInterp()
	a := newActor("cat")
	r := a.graph.Spawn(block.KindOperators, block.OpRandom)
	r.A, r.B = 10, 1
	for n := 0; n < 200; n++ {
		v := i.Eval(a, r.ID).Number()
		if v < 1 || v > 10 || v != float64(int(v)) {
			t.Fatalf("random 10..1 = %v, want an integer in [1,10]", v)
		}
	}
}

func TestValueCoercion(t *testing.T) {
	if Str("abc").Number() != 0 || Str(" 3 ").Number() != 3 {
		t.Error("Text coercion to number")
	}
	if Str("0").Truthy() || Str("false").Truthy() || Str("").Truthy() || !Str("x").Truthy() {
		t.Error("Text truthiness")
	}
	if Num(2).String() != "2" || Bool(true).String() != "true" {
		t.Error("Value rendering")
	}
}
