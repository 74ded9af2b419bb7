package render

// RenderPriority determines render order. Lower values render first
type RenderPriority int

const (
	PriorityBackground RenderPriority = iota
	PriorityWorkspace
	PriorityGhost
	PriorityPalette
	PriorityStage
	PriorityPen
	PrioritySprites
	PriorityBubbles
	PriorityMonitors
	PriorityUI
	PriorityOverlay
)
