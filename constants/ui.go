package constants

import "time"

// Screen Layout (terminal cells)
const (
	// PaletteWidth is the column count of the block palette on the left
	PaletteWidth = 24

	// PaletteTabRows is the number of rows holding category tabs
	PaletteTabRows = 3

	// StageCols and StageRows size the inner stage viewport
	StageCols = 60
	StageRows = 23

	// MinWorkspaceCols is the narrowest workspace that still gets a stage beside it
	MinWorkspaceCols = 20

	// ScrollStep is the workspace scroll per wheel notch or arrow key, in workspace units
	ScrollStepX = 4 * CellWidth
	ScrollStepY = 2 * CellHeight
)

// UI Timing
const (
	// StatusTimeout is how long a transient status message stays in the toolbar
	StatusTimeout = 3 * time.Second
)
