// Package shell hosts the editor on a terminal: it owns the screen frame,
// turns tcell events into editor, toolbar and stage actions, and ticks the
// interpreter
package shell

import (
	"context"
	"fmt"
	"image"
	"log"
	"slices"
	"strconv"
	"time"

	"github.com/lixenwraith/blockstage/block"
	"github.com/lixenwraith/blockstage/bridge"
	"github.com/lixenwraith/blockstage/constants"
	"github.com/lixenwraith/blockstage/engine"
	"github.com/lixenwraith/blockstage/geometry"
	"github.com/lixenwraith/blockstage/interp"
	"github.com/lixenwraith/blockstage/project"
	"github.com/lixenwraith/blockstage/render"
	"github.com/lixenwraith/blockstage/stage"
	"github.com/lixenwraith/blockstage/workspace"
)

// saveTimeout bounds one store round trip
const saveTimeout = 5 * time.Second

// Options wires an App. Only Project and Clock are required.
type Options struct {
	Project *project.Project
	Clock   *engine.PausableClock
	Store   project.Store       // nil disables saving
	Sound   interp.SoundService // nil runs silent
	Bridge  *bridge.Bridge      // nil when MQTT is off
}

// App is the running editor: one project, its stage and interpreter, and the
// presentation state the renderers read
type App struct {
	project *project.Project
	clock   *engine.PausableClock
	store   project.Store
	bridge  *bridge.Bridge

	stage  *stage.Stage
	interp *interp.Interpreter
	editor *workspace.Editor

	frame    render.Frame
	scroll   image.Point
	selected int
	category block.Kind

	status   string
	statusAt time.Time

	gesture gesture
	mouse   image.Point // last pointer cell
}

// New creates an app over a project with a fresh stage
func New(opts Options) *App {
	st := stage.New(opts.Clock)
	st.ResetVars(opts.Project.InitialVars())

	a := &App{
		project: opts.Project,
		clock:   opts.Clock,
		store:   opts.Store,
		bridge:  opts.Bridge,
		stage:   st,
		interp:  interp.New(st, opts.Sound),
	}
	a.interp.SetRoster(a.roster)
	if a.bridge != nil {
		a.interp.OnBroadcast = a.bridge.Publish
	}

	a.editor = workspace.NewEditor(geometry.New(render.CellMeasurer{}, a.Actor()))
	a.relayout()
	return a
}

func (a *App) roster() []interp.Actor {
	out := make([]interp.Actor, len(a.project.Actors))
	for i, act := range a.project.Actors {
		out[i] = act
	}
	return out
}

// Project returns the edited project
func (a *App) Project() *project.Project {
	return a.project
}

// Actor returns the actor whose scripts fill the workspace
func (a *App) Actor() *project.Actor {
	return a.project.Actors[a.selected]
}

// Interp exposes the interpreter
func (a *App) Interp() *interp.Interpreter {
	return a.interp
}

// Stage exposes the shared stage
func (a *App) Stage() *stage.Stage {
	return a.stage
}

// Editor exposes the workspace editor
func (a *App) Editor() *workspace.Editor {
	return a.editor
}

// Frame returns the current screen partition
func (a *App) Frame() render.Frame {
	return a.frame
}

// Resize recomputes the frame for a w x h terminal
func (a *App) Resize(w, h int) {
	a.frame = render.ComputeFrame(w, h)
}

// relayout positions the selected actor's blocks for display
func (a *App) relayout() {
	act := a.Actor()
	a.editor.Oracle().SetChoices(act)
	workspace.Propagate(act.Blocks(), a.editor.Oracle())
}

// SetStatus shows a transient toolbar message
func (a *App) SetStatus(format string, args ...any) {
	a.status = fmt.Sprintf(format, args...)
	a.statusAt = a.clock.RealTime()
}

// Context snapshots the state renderers draw from
func (a *App) Context() render.RenderContext {
	if a.status != "" && a.clock.RealTime().Sub(a.statusAt) > constants.StatusTimeout {
		a.status = ""
	}
	return render.RenderContext{
		Now:      a.clock.Now(),
		Paused:   a.clock.IsPaused(),
		Running:  a.interp.Running(),
		Status:   a.status,
		Frame:    a.frame,
		Scroll:   a.scroll,
		Project:  a.project,
		Actor:    a.Actor(),
		Editor:   a.editor,
		Stage:    a.stage,
		Category: a.category,
	}
}

// ===== COMMANDS =====

// Tick runs one host step: remote broadcasts, clicked scripts, then one
// interpreter tick unless paused
func (a *App) Tick() {
	if a.bridge != nil {
		for _, msg := range a.bridge.Drain() {
			log.Printf("shell: remote broadcast %q", msg)
			for _, act := range a.project.Actors {
				a.interp.Broadcast(act, msg)
			}
		}
	}
	for _, id := range a.editor.TakeActivated() {
		a.interp.RunScript(a.Actor(), id)
	}
	if a.clock.IsPaused() {
		return
	}
	a.interp.Tick()
}

// GreenFlag restarts every flag script of every actor
func (a *App) GreenFlag() int {
	a.interp.StopAll()
	n := 0
	for _, act := range a.project.Actors {
		n += a.interp.GreenFlag(act)
	}
	return n
}

// Stop halts every script
func (a *App) Stop() {
	a.interp.StopAll()
}

// TogglePause freezes or resumes the stage clock
func (a *App) TogglePause() bool {
	paused := a.clock.Toggle()
	if paused {
		a.SetStatus("paused")
	} else {
		a.SetStatus("resumed")
	}
	return paused
}

// Save writes the project to the store
func (a *App) Save(ctx context.Context) error {
	if a.store == nil {
		a.SetStatus("no project store")
		return nil
	}
	a.editor.Cancel(a.Actor())

	ctx, cancel := context.WithTimeout(ctx, saveTimeout)
	defer cancel()
	if err := a.store.Save(ctx, a.project); err != nil {
		log.Printf("shell: save %q: %v", a.project.Name, err)
		a.SetStatus("save failed: %v", err)
		return err
	}
	a.SetStatus("saved %s", a.project.Name)
	return nil
}

// SelectActor switches the workspace to actor i, ending any edit in progress
func (a *App) SelectActor(i int) {
	if i < 0 || i >= len(a.project.Actors) || i == a.selected {
		return
	}
	a.editor.Cancel(a.Actor())
	a.selected = i
	a.scroll = image.Point{}
	a.relayout()
}

// AddActor creates and selects a new actor
func (a *App) AddActor() {
	act := a.project.AddActor(project.DefaultActor)
	a.SelectActor(len(a.project.Actors) - 1)
	a.SetStatus("added %s", act.Name())
}

// DeleteActor removes the selected actor with its scripts. The last actor
// stays.
func (a *App) DeleteActor() bool {
	if len(a.project.Actors) < 2 {
		a.SetStatus("cannot delete the last actor")
		return false
	}
	act := a.Actor()
	a.editor.Cancel(act)
	a.interp.StopActor(act)
	a.project.RemoveActor(act.Name())

	a.selected = min(a.selected, len(a.project.Actors)-1)
	a.scroll = image.Point{}
	a.relayout()
	a.SetStatus("deleted %s", act.Name())
	return true
}

// AddMessage creates a broadcast message and returns its name
func (a *App) AddMessage() string {
	name := nextName(a.project.Messages, "message")
	a.project.AddMessage(name)
	a.SetStatus("new message %s", name)
	return name
}

// AddVariable creates a project variable starting at 0 and returns its name
func (a *App) AddVariable() string {
	name := nextName(a.project.Variables, "variable")
	a.project.AddVariable(name)
	a.stage.SetVar(name, "0")
	a.SetStatus("new variable %s", name)
	return name
}

// nextName returns base<n> for the smallest n >= 1 not in taken
func nextName(taken []string, base string) string {
	for n := 1; ; n++ {
		name := base + strconv.Itoa(n)
		if !slices.Contains(taken, name) {
			return name
		}
	}
}

// SelectCategory switches the palette tab
func (a *App) SelectCategory(k block.Kind) {
	a.category = k
}

// ScrollBy pans the workspace
func (a *App) ScrollBy(dx, dy int) {
	a.scroll = a.scroll.Add(image.Pt(dx, dy))
}

// PressKey records a stage key and fires matching key hats
func (a *App) PressKey(name string) {
	a.stage.PressKey(name)
	for _, act := range a.project.Actors {
		a.interp.KeyPressed(act, name)
	}
}

// ClickStage records the pointer on the stage and fires the sprite-click
// hats of the topmost visible sprite under it
func (a *App) ClickStage(x, y float64) {
	a.stage.SetMouse(x, y, true)
	for i := len(a.project.Actors) - 1; i >= 0; i-- {
		act := a.project.Actors[i]
		sp := act.Sprite()
		if !sp.Visible {
			continue
		}
		rx := max(sp.Radius(), constants.StageWidth/constants.StageCols)
		ry := max(sp.Radius(), constants.StageHeight/constants.StageRows)
		if abs(x-sp.X) <= rx && abs(y-sp.Y) <= ry {
			a.interp.SpriteClicked(act)
			return
		}
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
