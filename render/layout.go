package render

import (
	"image"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/blockstage/block"
	"github.com/lixenwraith/blockstage/constants"
)

// Frame partitions the screen. Renderers draw into these rectangles and the
// shell hit-tests against the same values.
type Frame struct {
	Screen    image.Rectangle
	Toolbar   image.Rectangle
	Palette   image.Rectangle
	Workspace image.Rectangle
	Stage     image.Rectangle // inner viewport, border drawn outside; empty when it does not fit
	Monitors  image.Rectangle // variable readouts under the stage
}

// ComputeFrame lays out a w x h terminal
func ComputeFrame(w, h int) Frame {
	w, h = max(w, 0), max(h, 0)
	f := Frame{Screen: image.Rect(0, 0, w, h)}
	f.Toolbar = image.Rect(0, 0, w, min(1, h))
	if h < 2 {
		return f
	}

	pw := min(constants.PaletteWidth, w)
	f.Palette = image.Rect(0, 1, pw, h)

	right := w
	if w-pw >= constants.StageCols+2+constants.MinWorkspaceCols && h-1 >= constants.StageRows+2 {
		f.Stage = image.Rect(w-1-constants.StageCols, 2, w-1, 2+constants.StageRows)
		f.Monitors = image.Rect(f.Stage.Min.X-1, f.Stage.Max.Y+1, w, h)
		right = f.Stage.Min.X - 1
	}
	f.Workspace = image.Rect(pw, 1, right, h)
	return f
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// WorkspaceToScreen converts workspace units to the screen cell containing them
func (f Frame) WorkspaceToScreen(p, scroll image.Point) (int, int) {
	return f.Workspace.Min.X + floorDiv(p.X-scroll.X, constants.CellWidth),
		f.Workspace.Min.Y + floorDiv(p.Y-scroll.Y, constants.CellHeight)
}

// ScreenToWorkspace converts a screen cell to the workspace point at its center
func (f Frame) ScreenToWorkspace(sx, sy int, scroll image.Point) image.Point {
	return image.Pt(
		(sx-f.Workspace.Min.X)*constants.CellWidth+constants.CellWidth/2+scroll.X,
		(sy-f.Workspace.Min.Y)*constants.CellHeight+constants.CellHeight/2+scroll.Y,
	)
}

// StageToScreen maps a stage point to fractional screen columns and rows
func (f Frame) StageToScreen(x, y float64) (float64, float64) {
	cols, rows := float64(f.Stage.Dx()), float64(f.Stage.Dy())
	return float64(f.Stage.Min.X) + (x+constants.StageHalfWidth)*cols/constants.StageWidth,
		float64(f.Stage.Min.Y) + (constants.StageHalfHeight-y)*rows/constants.StageHeight
}

// StageCell returns the cell showing stage point (x, y), clamped to the
// viewport. ok is false when no stage is shown.
func (f Frame) StageCell(x, y float64) (int, int, bool) {
	if f.Stage.Empty() {
		return 0, 0, false
	}
	fx, fy := f.StageToScreen(x, y)
	cx := min(max(int(math.Floor(fx)), f.Stage.Min.X), f.Stage.Max.X-1)
	cy := min(max(int(math.Floor(fy)), f.Stage.Min.Y), f.Stage.Max.Y-1)
	return cx, cy, true
}

// ScreenToStage maps a screen cell center to stage units. ok is false
// outside the viewport.
func (f Frame) ScreenToStage(sx, sy int) (float64, float64, bool) {
	if !image.Pt(sx, sy).In(f.Stage) {
		return 0, 0, false
	}
	x := (float64(sx-f.Stage.Min.X)+0.5)*constants.StageWidth/float64(f.Stage.Dx()) - constants.StageHalfWidth
	y := constants.StageHalfHeight - (float64(sy-f.Stage.Min.Y)+0.5)*constants.StageHeight/float64(f.Stage.Dy())
	return x, y, true
}

// ===== PALETTE =====

// Tab is a palette category selector
type Tab struct {
	Kind  block.Kind
	Label string
	Rect  image.Rectangle
}

// Entry is one spawnable block in the palette
type Entry struct {
	Def   *block.Def
	Label string
	Rect  image.Rectangle
}

// PaletteTabs lays the category tabs out three per row at the top of r
func PaletteTabs(r image.Rectangle) []Tab {
	kinds := block.Kinds()
	per := 3
	w := r.Dx() / per
	if w < 2 {
		return nil
	}
	tabs := make([]Tab, 0, len(kinds))
	for i, k := range kinds {
		x := r.Min.X + (i%per)*w
		y := r.Min.Y + i/per
		if y >= r.Max.Y {
			break
		}
		tabs = append(tabs, Tab{
			Kind:  k,
			Label: runewidth.Truncate(k.String(), w-1, ""),
			Rect:  image.Rect(x, y, x+w, y+1),
		})
	}
	return tabs
}

// PaletteEntries lists the blocks of kind k, one per row below the tabs
func PaletteEntries(r image.Rectangle, k block.Kind) []Entry {
	defs := block.Defs(k)
	entries := make([]Entry, 0, len(defs))
	y := r.Min.Y + constants.PaletteTabRows + 1
	for _, d := range defs {
		if y >= r.Max.Y {
			break
		}
		entries = append(entries, Entry{
			Def:   d,
			Label: runewidth.Truncate(PaletteLabel(d), r.Dx()-2, "…"),
			Rect:  image.Rect(r.Min.X, y, r.Max.X, y+1),
		})
		y++
	}
	return entries
}

// PaletteLabel summarizes a block definition on one line
func PaletteLabel(d *block.Def) string {
	parts := make([]string, 0, len(d.Elements))
	for _, e := range d.Elements {
		switch e.Kind {
		case block.ElemLabel:
			parts = append(parts, e.Label)
		case block.ElemNumber:
			parts = append(parts, "( )")
		case block.ElemText:
			parts = append(parts, "[ ]")
		case block.ElemDropdown:
			parts = append(parts, "▾")
		case block.ElemBoolean:
			parts = append(parts, "< >")
		case block.ElemColor:
			parts = append(parts, "■")
		}
	}
	return strings.Join(parts, " ")
}

// ===== TOOLBAR =====

// Action is a toolbar command
type Action uint8

const (
	ActionNone Action = iota
	ActionFlag
	ActionStop
	ActionPause
	ActionSave
	ActionActor       // select actor Button.Index
	ActionAddActor
	ActionDeleteActor // the selected actor
)

// Button is a clickable toolbar label
type Button struct {
	Action Action
	Index  int
	Label  string
	Rect   image.Rectangle
}

// ToolbarButtons lays out the command buttons followed by one tab per actor.
// Buttons that do not fit are dropped.
func ToolbarButtons(r image.Rectangle, actors []string, paused bool) []Button {
	pause := " ⏸ Pause "
	if paused {
		pause = " ▶ Resume "
	}
	specs := []Button{
		{Action: ActionFlag, Label: " ⚑ Go "},
		{Action: ActionStop, Label: " ■ Stop "},
		{Action: ActionPause, Label: pause},
		{Action: ActionSave, Label: " Save "},
	}
	for i, name := range actors {
		specs = append(specs, Button{Action: ActionActor, Index: i, Label: " " + name + " "})
	}
	specs = append(specs,
		Button{Action: ActionAddActor, Label: " + "},
		Button{Action: ActionDeleteActor, Label: " - "},
	)

	out := make([]Button, 0, len(specs))
	x := r.Min.X
	for _, b := range specs {
		w := runewidth.StringWidth(b.Label)
		if x+w > r.Max.X {
			break
		}
		b.Rect = image.Rect(x, r.Min.Y, x+w, r.Min.Y+1)
		out = append(out, b)
		x += w + 1
	}
	return out
}

// ButtonAt returns the button under (x, y)
func ButtonAt(buttons []Button, x, y int) (Button, bool) {
	for _, b := range buttons {
		if image.Pt(x, y).In(b.Rect) {
			return b, true
		}
	}
	return Button{}, false
}
