package render

import (
	"image"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/blockstage/block"
	"github.com/lixenwraith/blockstage/constants"
)

type markRenderer struct {
	r       rune
	x       int
	visible bool
	log     *[]rune
}

func (m markRenderer) Render(ctx RenderContext, buf *RenderBuffer) {
	buf.SetWithBg(m.x, 0, m.r, RGBWhite, RGBBlack)
	*m.log = append(*m.log, m.r)
}

func (m markRenderer) IsVisible() bool { return m.visible }

func TestOrchestratorOrder(t *testing.T) {
	var log []rune
	o := NewRenderOrchestrator(nil, 4, 1)
	o.Register(markRenderer{r: 'c', x: 0, visible: true, log: &log}, PriorityUI)
	o.Register(markRenderer{r: 'a', x: 0, visible: true, log: &log}, PriorityBackground)
	o.Register(markRenderer{r: 'b', x: 1, visible: true, log: &log}, PriorityBackground)
	o.Register(markRenderer{r: 'x', x: 2, visible: false, log: &log}, PriorityOverlay)

	o.RenderFrame(RenderContext{})

	if string(log) != "abc" {
		t.Errorf("Render order = %q, want abc", string(log))
	}
	if got := o.Buffer().Row(0); got != "cb  " {
		t.Errorf("Row = %q, want later priorities on top", got)
	}
}

func TestFlushToScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(6, 1)

	buf := NewRenderBuffer(6, 1)
	buf.Text(0, 0, "a界b", RGBWhite, tcell.AttrNone, buf.Bounds())
	buf.FlushToScreen(screen)

	for x, want := range map[int]rune{0: 'a', 1: '界', 3: 'b'} {
		if got, _, _, _ := screen.GetContent(x, 0); got != want {
			t.Errorf("Screen cell %d = %q, want %q", x, got, want)
		}
	}
}

func TestTextClipsWideRunes(t *testing.T) {
	buf := NewRenderBuffer(4, 1)
	end := buf.Text(0, 0, "ab界", RGBWhite, tcell.AttrNone, image.Rect(0, 0, 3, 1))
	if end != 4 {
		t.Errorf("Text end = %d, want 4", end)
	}
	if got := buf.Row(0); got != "ab  " {
		t.Errorf("Row = %q, a wide rune crossing the clip must be skipped", got)
	}
}

func TestComputeFrame(t *testing.T) {
	f := ComputeFrame(140, 40)
	if f.Toolbar != image.Rect(0, 0, 140, 1) {
		t.Errorf("Toolbar = %v", f.Toolbar)
	}
	if f.Stage.Dx() != constants.StageCols || f.Stage.Dy() != constants.StageRows {
		t.Errorf("Stage = %v", f.Stage)
	}
	if f.Workspace.Max.X >= f.Stage.Min.X || f.Workspace.Min.X != constants.PaletteWidth {
		t.Errorf("Workspace %v overlaps palette or stage %v", f.Workspace, f.Stage)
	}

	small := ComputeFrame(80, 20)
	if !small.Stage.Empty() {
		t.Error("A narrow terminal must hide the stage")
	}
	if small.Workspace.Max.X != 80 {
		t.Errorf("Workspace must take the stage's space, got %v", small.Workspace)
	}
}

func TestWorkspaceMapping(t *testing.T) {
	f := ComputeFrame(140, 40)
	scroll := image.Pt(16, -32)

	p := f.ScreenToWorkspace(f.Workspace.Min.X+3, f.Workspace.Min.Y+2, scroll)
	x, y := f.WorkspaceToScreen(p, scroll)
	if x != f.Workspace.Min.X+3 || y != f.Workspace.Min.Y+2 {
		t.Errorf("Round trip landed at (%d,%d)", x, y)
	}

	// a point left of the scroll origin maps to the column before the viewport
	x, _ = f.WorkspaceToScreen(image.Pt(scroll.X-1, 0), scroll)
	if x != f.Workspace.Min.X-1 {
		t.Errorf("Negative offset column = %d, want %d", x, f.Workspace.Min.X-1)
	}
}

func TestStageMapping(t *testing.T) {
	f := ComputeFrame(140, 40)
	cx, cy, ok := f.StageCell(0, 0)
	if !ok {
		t.Fatal("Stage must be visible")
	}
	sx, sy, ok := f.ScreenToStage(cx, cy)
	if !ok || abs(sx) > 8 || abs(sy) > 16 {
		t.Errorf("Center cell maps back to (%v,%v)", sx, sy)
	}

	cx, cy, _ = f.StageCell(1000, 1000)
	if cx != f.Stage.Max.X-1 || cy != f.Stage.Min.Y {
		t.Errorf("Off-stage point must clamp to the top right corner, got (%d,%d)", cx, cy)
	}
	if _, _, ok := f.ScreenToStage(0, 0); ok {
		t.Error("Toolbar cell is not on the stage")
	}
}

func TestPaletteLayout(t *testing.T) {
	r := image.Rect(0, 1, constants.PaletteWidth, 40)
	tabs := PaletteTabs(r)
	if len(tabs) != len(block.Kinds()) {
		t.Fatalf("Tabs = %d, want one per kind", len(tabs))
	}
	if tabs[3].Rect.Min != image.Pt(0, 2) {
		t.Errorf("Fourth tab at %v, want second row", tabs[3].Rect.Min)
	}

	entries := PaletteEntries(r, block.KindMotion)
	if len(entries) != len(block.Defs(block.KindMotion)) {
		t.Errorf("Entries = %d", len(entries))
	}
	for _, e := range entries {
		if e.Rect.Min.Y <= r.Min.Y+constants.PaletteTabRows-1 {
			t.Errorf("Entry %q overlaps the tabs", e.Label)
		}
	}

	short := PaletteEntries(image.Rect(0, 1, constants.PaletteWidth, 7), block.KindOperators)
	if len(short) != 2 {
		t.Errorf("Entries in a short palette = %d, want 2", len(short))
	}
}

func TestPaletteLabel(t *testing.T) {
	d := block.Lookup(block.KindMotion, block.MotionMove)
	if got := PaletteLabel(d); got != "move ( ) steps" {
		t.Errorf("PaletteLabel = %q", got)
	}
}

func TestToolbarButtons(t *testing.T) {
	buttons := ToolbarButtons(image.Rect(0, 0, 200, 1), []string{"Sprite1", "Sprite2"}, false)
	if len(buttons) != 8 {
		t.Fatalf("Buttons = %d, want 8", len(buttons))
	}
	if last := buttons[len(buttons)-1]; last.Action != ActionDeleteActor {
		t.Errorf("Last button = %+v, want delete actor", last)
	}
	b, ok := ButtonAt(buttons, buttons[5].Rect.Min.X, 0)
	if !ok || b.Action != ActionActor || b.Index != 1 {
		t.Errorf("ButtonAt = %+v", b)
	}
	if _, ok := ButtonAt(buttons, buttons[0].Rect.Max.X, 0); ok {
		t.Error("Gap between buttons must not hit")
	}

	narrow := ToolbarButtons(image.Rect(0, 0, 12, 1), nil, true)
	if len(narrow) != 1 || narrow[0].Action != ActionFlag {
		t.Errorf("Narrow toolbar = %+v", narrow)
	}
}

func TestCellMeasurer(t *testing.T) {
	m := CellMeasurer{}
	if got := m.MeasureLabel("move"); got != 4*constants.CellWidth {
		t.Errorf("MeasureLabel(move) = %d", got)
	}
	if got := m.MeasureLabel("界"); got != 2*constants.CellWidth {
		t.Errorf("Wide rune width = %d", got)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
