package shell

import (
	"context"
	"image"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/blockstage/block"
	"github.com/lixenwraith/blockstage/constants"
	"github.com/lixenwraith/blockstage/render"
	"github.com/lixenwraith/blockstage/workspace"
)

// gesture is the screen region that owns a held pointer
type gesture uint8

const (
	gestureNone gesture = iota
	gestureWorkspace
	gestureStage
)

// HandleEvent processes a tcell event and returns false when the app should exit
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventResize:
		a.Resize(ev.Size())
	}
	return true
}

// ===== MOUSE =====

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	btn := ev.Buttons()
	pt := image.Pt(x, y)
	moved := pt != a.mouse
	a.mouse = pt

	switch {
	case btn&tcell.WheelUp != 0:
		a.wheel(pt, 0, -constants.ScrollStepY)
	case btn&tcell.WheelDown != 0:
		a.wheel(pt, 0, constants.ScrollStepY)
	case btn&tcell.WheelLeft != 0:
		a.wheel(pt, -constants.ScrollStepX, 0)
	case btn&tcell.WheelRight != 0:
		a.wheel(pt, constants.ScrollStepX, 0)
	case btn&tcell.Button1 != 0:
		if a.gesture == gestureNone {
			a.press(pt)
		} else if moved {
			a.drag(pt)
		}
	default:
		if a.gesture != gestureNone {
			a.release(pt)
		} else if sx, sy, ok := a.frame.ScreenToStage(x, y); ok {
			a.stage.SetMouse(sx, sy, false)
		}
	}
}

func (a *App) wheel(pt image.Point, dx, dy int) {
	if pt.In(a.frame.Workspace) {
		a.ScrollBy(dx, dy)
	}
}

func (a *App) workspaceEvent(kind workspace.EventKind, pt image.Point) {
	a.editor.HandleEvent(a.Actor(), workspace.Event{
		Kind: kind,
		Pos:  a.frame.ScreenToWorkspace(pt.X, pt.Y, a.scroll),
	})
}

func (a *App) press(pt image.Point) {
	switch {
	case pt.In(a.frame.Toolbar):
		buttons := render.ToolbarButtons(a.frame.Toolbar, a.actorNames(), a.clock.IsPaused())
		if b, ok := render.ButtonAt(buttons, pt.X, pt.Y); ok {
			a.command(b)
		}

	case pt.In(a.frame.Palette):
		for _, tab := range render.PaletteTabs(a.frame.Palette) {
			if pt.In(tab.Rect) {
				a.SelectCategory(tab.Kind)
				return
			}
		}
		for _, e := range render.PaletteEntries(a.frame.Palette, a.category) {
			if pt.In(e.Rect) {
				at := a.frame.ScreenToWorkspace(pt.X, pt.Y, a.scroll)
				a.editor.Spawn(a.Actor(), e.Def.Kind, e.Def.Subtype, at)
				a.gesture = gestureWorkspace
				return
			}
		}

	case pt.In(a.frame.Workspace):
		a.workspaceEvent(workspace.EventPointerDown, pt)
		a.gesture = gestureWorkspace

	case pt.In(a.frame.Stage):
		sx, sy, _ := a.frame.ScreenToStage(pt.X, pt.Y)
		a.ClickStage(sx, sy)
		a.gesture = gestureStage
	}
}

func (a *App) drag(pt image.Point) {
	switch a.gesture {
	case gestureWorkspace:
		a.workspaceEvent(workspace.EventPointerMove, pt)
	case gestureStage:
		if sx, sy, ok := a.frame.ScreenToStage(pt.X, pt.Y); ok {
			a.stage.SetMouse(sx, sy, true)
		}
	}
}

func (a *App) release(pt image.Point) {
	switch a.gesture {
	case gestureWorkspace:
		// dropping back onto the palette throws the blocks away
		if _, dragging := a.editor.Dragging(); dragging && pt.In(a.frame.Palette) {
			a.editor.HandleEvent(a.Actor(), workspace.Event{Kind: workspace.EventKey, Key: workspace.KeyDelete})
		}
		a.workspaceEvent(workspace.EventPointerUp, pt)
	case gestureStage:
		if sx, sy, ok := a.frame.ScreenToStage(pt.X, pt.Y); ok {
			a.stage.SetMouse(sx, sy, false)
		}
	}
	a.gesture = gestureNone
}

func (a *App) actorNames() []string {
	names := make([]string, len(a.project.Actors))
	for i, act := range a.project.Actors {
		names[i] = act.Name()
	}
	return names
}

func (a *App) command(b render.Button) {
	switch b.Action {
	case render.ActionFlag:
		a.GreenFlag()
	case render.ActionStop:
		a.Stop()
	case render.ActionPause:
		a.TogglePause()
	case render.ActionSave:
		_ = a.Save(context.Background())
	case render.ActionActor:
		a.SelectActor(b.Index)
	case render.ActionAddActor:
		a.AddActor()
	case render.ActionDeleteActor:
		a.DeleteActor()
	}
}

// ===== KEYBOARD =====

func (a *App) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlQ || ev.Key() == tcell.KeyCtrlC {
		return false
	}

	// an edit in progress or a drag takes every key it understands
	if _, _, editing := a.editor.Focus(); editing {
		if ev.Key() == tcell.KeyRune {
			a.editor.HandleEvent(a.Actor(), workspace.Event{Kind: workspace.EventText, Rune: ev.Rune()})
			return true
		}
		if k := editorKey(ev.Key()); k != workspace.KeyNone {
			a.editor.HandleEvent(a.Actor(), workspace.Event{Kind: workspace.EventKey, Key: k})
			return true
		}
	}
	if _, dragging := a.editor.Dragging(); dragging {
		if k := editorKey(ev.Key()); k != workspace.KeyNone {
			a.editor.HandleEvent(a.Actor(), workspace.Event{Kind: workspace.EventKey, Key: k})
			return true
		}
	}

	if ev.Modifiers()&tcell.ModCtrl != 0 {
		switch ev.Key() {
		case tcell.KeyUp:
			a.ScrollBy(0, -constants.ScrollStepY)
			return true
		case tcell.KeyDown:
			a.ScrollBy(0, constants.ScrollStepY)
			return true
		case tcell.KeyLeft:
			a.ScrollBy(-constants.ScrollStepX, 0)
			return true
		case tcell.KeyRight:
			a.ScrollBy(constants.ScrollStepX, 0)
			return true
		}
	}

	switch ev.Key() {
	case tcell.KeyF5:
		a.GreenFlag()
	case tcell.KeyF6:
		a.Stop()
	case tcell.KeyF7:
		a.TogglePause()
	case tcell.KeyCtrlS:
		_ = a.Save(context.Background())
	case tcell.KeyCtrlN:
		a.AddActor()
	case tcell.KeyCtrlD:
		a.DeleteActor()
	case tcell.KeyCtrlB:
		a.AddMessage()
	case tcell.KeyCtrlV:
		a.AddVariable()
	case tcell.KeyTab:
		a.SelectActor((a.selected + 1) % len(a.project.Actors))
	case tcell.KeyBacktab:
		a.SelectActor((a.selected + len(a.project.Actors) - 1) % len(a.project.Actors))
	case tcell.KeyPgUp:
		a.ScrollBy(0, -a.frame.Workspace.Dy()*constants.CellHeight/2)
	case tcell.KeyPgDn:
		a.ScrollBy(0, a.frame.Workspace.Dy()*constants.CellHeight/2)
	case tcell.KeyHome:
		a.scroll = image.Point{}
	default:
		if name := StageKeyName(ev); name != "" {
			a.PressKey(name)
		}
	}
	return true
}

func editorKey(k tcell.Key) workspace.Key {
	switch k {
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return workspace.KeyBackspace
	case tcell.KeyDelete:
		return workspace.KeyDelete
	case tcell.KeyEnter:
		return workspace.KeyEnter
	case tcell.KeyEscape:
		return workspace.KeyEscape
	}
	return workspace.KeyNone
}

// StageKeyName maps a terminal key to its key-hat name, "" for keys scripts
// cannot listen for
func StageKeyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyUp:
		return "up arrow"
	case tcell.KeyDown:
		return "down arrow"
	case tcell.KeyLeft:
		return "left arrow"
	case tcell.KeyRight:
		return "right arrow"
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			return "space"
		}
		name := strings.ToLower(string(ev.Rune()))
		if block.KeyIndex(name) >= 0 {
			return name
		}
	}
	return ""
}
