// Package interp runs block scripts as cooperative threads. One Tick advances
// every thread in spawn order until each finishes or yields.
package interp

import (
	"log"
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/blockstage/block"
	"github.com/lixenwraith/blockstage/stage"
)

// Actor is one scripted sprite: its graph, its runtime state and the lists
// its dropdowns select from
type Actor interface {
	block.Choices
	Name() string
	Blocks() *block.Graph
	Sprite() *stage.Sprite
}

// SoundService is the audio boundary. IsPlaying is polled by threads waiting
// on a sound.
type SoundService interface {
	Play(name string, volume float64)
	IsPlaying() bool
	StopAll()
}

// WaitKind is what a yielded thread waits for
type WaitKind uint8

const (
	WaitNone  WaitKind = iota
	WaitTimer          // ResumeAt reached
	WaitSound          // no sound playing
	WaitUntil          // condition true
	WaitFrame          // next tick
)

// maxSteps bounds the blocks one thread runs per tick
const maxSteps = 10000

type frameKind uint8

const (
	frameIf frameKind = iota
	frameRepeat
	frameForever
	frameUntil
)

// frame is an active control body; exiting it continues after owner
type frame struct {
	kind      frameKind
	owner     block.ID
	remaining int
}

// Thread is one running script. It is plain state advanced by Tick.
type Thread struct {
	ID       int
	Actor    Actor
	Hat      block.ID
	Cursor   block.ID
	Wait     WaitKind
	ResumeAt time.Time

	frames []frame
	until  block.ID // wait-until block being polled
	done   bool
}

// Done reports whether the thread has terminated
func (t *Thread) Done() bool {
	return t.done
}

// Interpreter owns the thread pool
type Interpreter struct {
	stage *stage.Stage
	sound SoundService
	rng   *rand.Rand

	threads []*Thread
	pending []*Thread // spawned mid-tick, start next tick
	nextID  int
	ticking bool
	stopped bool

	roster func() []Actor

	// OnBroadcast observes every broadcast a script sends
	OnBroadcast func(msg string)
}

// New creates an interpreter over a stage. A nil sound service runs silent.
func New(st *stage.Stage, sound SoundService) *Interpreter {
	return &Interpreter{
		stage: st,
		sound: sound,
		rng:   rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15)),
	}
}

// SetRoster supplies every actor, used by script broadcasts and stop all
func (i *Interpreter) SetRoster(fn func() []Actor) {
	i.roster = fn
}

// Seed makes operator random deterministic
func (i *Interpreter) Seed(a, b uint64) {
	i.rng = rand.New(rand.NewPCG(a, b))
}

// Stage returns the shared stage
func (i *Interpreter) Stage() *stage.Stage {
	return i.stage
}

// Threads returns the live thread pool in run order
func (i *Interpreter) Threads() []*Thread {
	out := make([]*Thread, 0, len(i.threads)+len(i.pending))
	for _, t := range i.threads {
		if !t.done {
			out = append(out, t)
		}
	}
	return append(out, i.pending...)
}

// Running reports whether any thread is alive
func (i *Interpreter) Running() bool {
	return len(i.Threads()) > 0
}

// ===== TRIGGERS =====

// GreenFlag starts every flag hat of a
func (i *Interpreter) GreenFlag(a Actor) int {
	return i.spawnHats(a, func(b *block.Block) bool {
		return b.Kind == block.KindEvents && b.Subtype == block.EventsFlagClicked
	})
}

// KeyPressed starts every key hat of a listening for key or for any key
func (i *Interpreter) KeyPressed(a Actor, key string) int {
	return i.spawnHats(a, func(b *block.Block) bool {
		if b.Kind != block.KindEvents || b.Subtype != block.EventsKeyPressed {
			return false
		}
		want := block.ChoiceLabel(block.KeyNames, b.Opt)
		return want == key || want == "any"
	})
}

// SpriteClicked starts every sprite-click hat of a
func (i *Interpreter) SpriteClicked(a Actor) int {
	return i.spawnHats(a, func(b *block.Block) bool {
		return b.Kind == block.KindEvents && b.Subtype == block.EventsSpriteClicked
	})
}

// Broadcast starts every hat of a receiving msg
func (i *Interpreter) Broadcast(a Actor, msg string) int {
	messages := a.Choices(block.SourceMessages)
	return i.spawnHats(a, func(b *block.Block) bool {
		return b.Kind == block.KindEvents && b.Subtype == block.EventsReceive &&
			len(messages) > 0 && block.ChoiceLabel(messages, b.Opt) == msg
	})
}

// RunScript starts the script containing id, as a click on it in the
// workspace does. A script already running is left alone.
func (i *Interpreter) RunScript(a Actor, id block.ID) bool {
	g := a.Blocks()
	root := g.Get(g.RootOf(id))
	if root == nil || root.Def() == nil || root.Def().Class() != block.ClassStack {
		return false
	}
	for _, t := range i.Threads() {
		if t.Actor == a && t.Hat == root.ID {
			return false
		}
	}
	start := root.ID
	if root.Def().Shape == block.ShapeHat {
		start = root.Next
	}
	i.spawn(a, root.ID, start)
	return true
}

// StopAll drops every thread, silences audio and clears speech bubbles
func (i *Interpreter) StopAll() {
	i.threads = nil
	i.pending = nil
	i.stopped = true
	if i.sound != nil {
		i.sound.StopAll()
	}
	if i.roster != nil {
		for _, a := range i.roster() {
			a.Sprite().Say("", time.Time{})
		}
	}
}

// StopActor drops the threads of one actor, used when it is deleted
func (i *Interpreter) StopActor(a Actor) {
	keep := func(ts []*Thread) []*Thread {
		out := ts[:0]
		for _, t := range ts {
			if t.Actor != a {
				out = append(out, t)
			}
		}
		return out
	}
	i.threads = keep(i.threads)
	i.pending = keep(i.pending)
}

// spawnHats starts one thread per matching hat root. A hat whose script is
// still running restarts from the top.
func (i *Interpreter) spawnHats(a Actor, match func(*block.Block) bool) int {
	g := a.Blocks()
	n := 0
	for _, id := range g.Roots() {
		b := g.Get(id)
		if b == nil || b.Def() == nil || b.Def().Shape != block.ShapeHat || !match(b) {
			continue
		}
		i.kill(a, b.ID)
		i.spawn(a, b.ID, b.Next)
		n++
	}
	return n
}

func (i *Interpreter) spawn(a Actor, hat, start block.ID) {
	i.nextID++
	t := &Thread{ID: i.nextID, Actor: a, Hat: hat, Cursor: start}
	if i.ticking {
		i.pending = append(i.pending, t)
		return
	}
	i.threads = append(i.threads, t)
}

func (i *Interpreter) kill(a Actor, hat block.ID) {
	for _, t := range i.threads {
		if t.Actor == a && t.Hat == hat {
			t.done = true
		}
	}
	live := i.pending[:0]
	for _, t := range i.pending {
		if t.Actor != a || t.Hat != hat {
			live = append(live, t)
		}
	}
	i.pending = live
}

// ===== TICK =====

// Tick advances every ready thread once, in spawn order
func (i *Interpreter) Tick() {
	now := i.stage.Now()
	i.ticking = true
	i.stopped = false

	for _, t := range i.threads {
		if t.done {
			continue
		}
		if t.Actor.Blocks().Get(t.Hat) == nil {
			t.done = true
			continue
		}
		if !i.ready(t, now) {
			continue
		}
		t.Wait = WaitNone
		i.run(t, now)
		if i.stopped {
			break
		}
	}

	i.ticking = false
	if i.stopped {
		i.threads = append(i.threads[:0], i.pending...)
		i.pending = nil
		return
	}
	live := i.threads[:0]
	for _, t := range i.threads {
		if !t.done {
			live = append(live, t)
		}
	}
	i.threads = append(live, i.pending...)
	i.pending = nil
}

func (i *Interpreter) ready(t *Thread, now time.Time) bool {
	switch t.Wait {
	case WaitTimer:
		return !now.Before(t.ResumeAt)
	case WaitSound:
		return i.sound == nil || !i.sound.IsPlaying()
	case WaitUntil:
		b := t.Actor.Blocks().Get(t.until)
		return b == nil || i.condition(t.Actor, b.Condition)
	}
	return true
}

// run executes blocks from the cursor until the thread yields or ends
func (i *Interpreter) run(t *Thread, now time.Time) {
	g := t.Actor.Blocks()
	for steps := 0; steps < maxSteps; steps++ {
		if t.Cursor == block.None || g.Get(t.Cursor) == nil {
			if len(t.frames) == 0 {
				t.done = true
				return
			}
			i.exitFrame(t)
			continue
		}
		if i.exec(t, g.Get(t.Cursor), now) || i.stopped || t.done {
			return
		}
	}
	// a loop without a yielding block gives the host its frame back
	log.Printf("interp: thread %d of %s hit %d steps in one tick", t.ID, t.Actor.Name(), maxSteps)
	t.Wait = WaitFrame
}

// exitFrame handles the end of a control body: loops jump back to their
// body inline, anything else pops the frame and continues after its owner
func (i *Interpreter) exitFrame(t *Thread) {
	g := t.Actor.Blocks()
	f := &t.frames[len(t.frames)-1]
	owner := g.Get(f.owner)
	if owner == nil {
		t.frames = nil
		t.Cursor = block.None
		return
	}

	switch f.kind {
	case frameRepeat:
		f.remaining--
		if f.remaining > 0 {
			t.Cursor = owner.Child
			return
		}
	case frameForever:
		t.Cursor = owner.Child
		return
	case frameUntil:
		if !i.condition(t.Actor, owner.Condition) {
			t.Cursor = owner.Child
			return
		}
	}

	t.frames = t.frames[:len(t.frames)-1]
	t.Cursor = owner.Next
}

func (t *Thread) enter(kind frameKind, owner *block.Block, body block.ID, remaining int) {
	t.frames = append(t.frames, frame{kind: kind, owner: owner.ID, remaining: remaining})
	t.Cursor = body
}
