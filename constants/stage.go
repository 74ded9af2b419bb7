package constants

import "time"

// Host Loop Timing
const (
	// FrameUpdateInterval is the render and interpreter tick interval (~30 FPS)
	FrameUpdateInterval = 33 * time.Millisecond

	// EventChannelSize is the buffered capacity of the terminal event channel
	EventChannelSize = 256
)

// Stage Geometry (stage units, origin at center, y up)
const (
	StageWidth  = 480
	StageHeight = 360

	StageHalfWidth  = StageWidth / 2
	StageHalfHeight = StageHeight / 2

	// SpriteRadius is the collision radius used for edge sensing and fencing
	SpriteRadius = 8
)

// Sprite Defaults
const (
	DefaultDirection = 90.0
	DefaultSize      = 100.0
	DefaultVolume    = 100.0
	DefaultPenSize   = 1.0

	MinSpriteSize = 5.0
	MaxSpriteSize = 500.0
)

// Input Sensing
const (
	// KeyHoldWindow is how long a key counts as held after its press event
	// Terminals report presses only, never releases
	KeyHoldWindow = 150 * time.Millisecond
)
