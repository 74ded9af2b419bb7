package stage

import (
	"math"
	"time"

	"github.com/lixenwraith/blockstage/constants"
	"github.com/lixenwraith/blockstage/vmath"
)

// Sprite is the runtime state one actor exposes to the renderer. Only the
// interpreter mutates it.
type Sprite struct {
	X, Y      float64 // stage units, origin at center, y up
	Direction float64 // degrees, 0 up, 90 right
	Size      float64 // percent
	Costume   int
	Visible   bool
	Volume    float64 // 0..100

	Bubble      string
	BubbleUntil time.Time // zero keeps the bubble until replaced

	PenDown  bool
	PenSize  float64
	PenColor [3]float64
}

// NewSprite creates a sprite at the stage center
func NewSprite() *Sprite {
	return &Sprite{
		Direction: constants.DefaultDirection,
		Size:      constants.DefaultSize,
		Visible:   true,
		Volume:    constants.DefaultVolume,
		PenSize:   constants.DefaultPenSize,
		PenColor:  [3]float64{0, 96, 255},
	}
}

// Radius returns the edge-sensing radius at the current size
func (s *Sprite) Radius() float64 {
	return constants.SpriteRadius * s.Size / 100
}

// Turn rotates clockwise by deg
func (s *Sprite) Turn(deg float64) {
	s.Direction = vmath.NormalizeDegrees(s.Direction + deg)
}

// PointIn sets the heading
func (s *Sprite) PointIn(deg float64) {
	s.Direction = vmath.NormalizeDegrees(deg)
}

// SetSize sets the size percentage within the allowed range
func (s *Sprite) SetSize(pct float64) {
	if math.IsNaN(pct) {
		return
	}
	s.Size = vmath.Clamp(pct, constants.MinSpriteSize, constants.MaxSpriteSize)
}

// SetVolume sets the volume within 0..100
func (s *Sprite) SetVolume(v float64) {
	if math.IsNaN(v) {
		return
	}
	s.Volume = vmath.Clamp(v, 0, 100)
}

// SetCostume selects costume i modulo n; n of zero leaves index 0
func (s *Sprite) SetCostume(i, n int) {
	if n <= 0 {
		s.Costume = 0
		return
	}
	s.Costume = ((i % n) + n) % n
}

// Say shows text until the given time; an empty text clears the bubble
func (s *Sprite) Say(text string, until time.Time) {
	s.Bubble = text
	s.BubbleUntil = until
	if text == "" {
		s.BubbleUntil = time.Time{}
	}
}

// BubbleText returns the visible bubble at now, expiring it if due
func (s *Sprite) BubbleText(now time.Time) string {
	if s.Bubble != "" && !s.BubbleUntil.IsZero() && !now.Before(s.BubbleUntil) {
		s.Bubble = ""
		s.BubbleUntil = time.Time{}
	}
	return s.Bubble
}

// TouchingEdge reports whether the sprite's radius reaches a stage border
func (s *Sprite) TouchingEdge() bool {
	r := s.Radius()
	return math.Abs(s.X)+r >= constants.StageHalfWidth || math.Abs(s.Y)+r >= constants.StageHalfHeight
}
