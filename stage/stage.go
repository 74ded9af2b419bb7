// Package stage holds the shared runtime world the interpreter drives: sprite
// motion with fencing and pen trails, variables, the timer, and polled input
package stage

import (
	"math"
	"strings"
	"time"

	"github.com/lixenwraith/blockstage/constants"
	"github.com/lixenwraith/blockstage/engine"
	"github.com/lixenwraith/blockstage/vmath"
)

// Line is one pen trail segment in stage units
type Line struct {
	X1, Y1, X2, Y2 float64
	Color          [3]float64
	Size           float64
}

// Stage is the state every actor's scripts share
type Stage struct {
	clock engine.TimeProvider

	vars       map[string]string
	lines      []Line
	timerStart time.Time

	keys      map[string]time.Time // last press per key name
	lastKey   time.Time
	mouseX    float64
	mouseY    float64
	mouseDown time.Time
}

// New creates an empty stage reading time from clock
func New(clock engine.TimeProvider) *Stage {
	return &Stage{
		clock:      clock,
		vars:       make(map[string]string),
		keys:       make(map[string]time.Time),
		timerStart: clock.Now(),
	}
}

// Now returns the stage clock reading
func (s *Stage) Now() time.Time {
	return s.clock.Now()
}

// ===== VARIABLES =====

// Var returns a variable's value, "0" when unset
func (s *Stage) Var(name string) string {
	if v, ok := s.vars[name]; ok {
		return v
	}
	return "0"
}

// SetVar stores a variable's value
func (s *Stage) SetVar(name, value string) {
	s.vars[name] = value
}

// Vars returns a copy of every variable
func (s *Stage) Vars() map[string]string {
	out := make(map[string]string, len(s.vars))
	for k, v := range s.vars {
		out[k] = v
	}
	return out
}

// ResetVars replaces every variable with its initial value
func (s *Stage) ResetVars(initial map[string]string) {
	s.vars = make(map[string]string, len(initial))
	for k, v := range initial {
		s.vars[k] = v
	}
}

// ===== TIMER =====

// Timer returns seconds since the last reset
func (s *Stage) Timer() float64 {
	return s.clock.Now().Sub(s.timerStart).Seconds()
}

// ResetTimer restarts the timer at zero
func (s *Stage) ResetTimer() {
	s.timerStart = s.clock.Now()
}

// ===== INPUT =====

// PressKey records a key press. Terminals never report releases, so a key
// counts as held for KeyHoldWindow after each press or repeat.
func (s *Stage) PressKey(name string) {
	now := s.clock.Now()
	s.keys[strings.ToLower(name)] = now
	s.lastKey = now
}

// KeyDown reports whether a key is held; "any" matches every key
func (s *Stage) KeyDown(name string) bool {
	now := s.clock.Now()
	if name == "any" {
		return !s.lastKey.IsZero() && now.Sub(s.lastKey) < constants.KeyHoldWindow
	}
	at, ok := s.keys[strings.ToLower(name)]
	return ok && now.Sub(at) < constants.KeyHoldWindow
}

// SetMouse records the pointer position in stage units. A press refreshes
// the held window the same way keys do.
func (s *Stage) SetMouse(x, y float64, pressed bool) {
	s.mouseX, s.mouseY = x, y
	if pressed {
		s.mouseDown = s.clock.Now()
	}
}

// Mouse returns the last pointer position
func (s *Stage) Mouse() (float64, float64) {
	return s.mouseX, s.mouseY
}

// MouseDown reports whether the pointer was pressed within the hold window
func (s *Stage) MouseDown() bool {
	return !s.mouseDown.IsZero() && s.clock.Now().Sub(s.mouseDown) < constants.KeyHoldWindow
}

// ===== MOTION AND PEN =====

// MoveSprite puts sp at (x, y) fenced inside the stage, drawing a trail
// when its pen is down
func (s *Stage) MoveSprite(sp *Sprite, x, y float64) {
	if math.IsNaN(x) || math.IsNaN(y) {
		return
	}
	x, y = Fence(x, y, sp.Radius())
	if sp.PenDown && (x != sp.X || y != sp.Y) {
		s.lines = append(s.lines, Line{X1: sp.X, Y1: sp.Y, X2: x, Y2: y, Color: sp.PenColor, Size: sp.PenSize})
	}
	sp.X, sp.Y = x, y
}

// Steps moves sp n units along its heading
func (s *Stage) Steps(sp *Sprite, n float64) {
	dx, dy := vmath.HeadingVector(sp.Direction)
	s.MoveSprite(sp, sp.X+dx*n, sp.Y+dy*n)
}

// Bounce reverses sp's heading away from any edge it touches
func (s *Stage) Bounce(sp *Sprite) {
	r := sp.Radius()
	dx, dy := vmath.HeadingVector(sp.Direction)
	switch {
	case sp.X+r >= constants.StageHalfWidth && dx > 0, sp.X-r <= -constants.StageHalfWidth && dx < 0:
		sp.PointIn(-sp.Direction)
	case sp.Y+r >= constants.StageHalfHeight && dy > 0, sp.Y-r <= -constants.StageHalfHeight && dy < 0:
		sp.PointIn(180 - sp.Direction)
	}
	s.MoveSprite(sp, sp.X, sp.Y)
}

// Lines returns the pen trail
func (s *Stage) Lines() []Line {
	return s.lines
}

// ClearPen erases every trail
func (s *Stage) ClearPen() {
	s.lines = s.lines[:0]
}

// Fence clamps a sprite center of radius r inside the stage
func Fence(x, y, r float64) (float64, float64) {
	limX := math.Max(0, constants.StageHalfWidth-r)
	limY := math.Max(0, constants.StageHalfHeight-r)
	return vmath.Clamp(x, -limX, limX), vmath.Clamp(y, -limY, limY)
}
