package render

import (
	"image"
	"time"

	"github.com/lixenwraith/blockstage/block"
	"github.com/lixenwraith/blockstage/project"
	"github.com/lixenwraith/blockstage/stage"
	"github.com/lixenwraith/blockstage/workspace"
)

// RenderContext provides frame state for renderers, passed by value
type RenderContext struct {
	// Time state
	Now     time.Time
	Paused  bool
	Running bool // any thread alive

	// Status is the transient toolbar message, empty for none
	Status string

	Frame Frame

	// Scroll is the workspace position shown at Frame.Workspace.Min
	Scroll image.Point

	Project  *project.Project
	Actor    *project.Actor // selected actor, its scripts fill the workspace
	Editor   *workspace.Editor
	Stage    *stage.Stage
	Category block.Kind // palette tab
}

// WorkspaceToScreen converts workspace units to the screen cell containing them
func (rc *RenderContext) WorkspaceToScreen(p image.Point) (int, int) {
	return rc.Frame.WorkspaceToScreen(p, rc.Scroll)
}

// ScreenToWorkspace converts a screen cell to the workspace point at its center
func (rc *RenderContext) ScreenToWorkspace(sx, sy int) image.Point {
	return rc.Frame.ScreenToWorkspace(sx, sy, rc.Scroll)
}

// WorkspaceRectToScreen converts a workspace rectangle to the cells it covers
func (rc *RenderContext) WorkspaceRectToScreen(r image.Rectangle) image.Rectangle {
	x0, y0 := rc.WorkspaceToScreen(r.Min)
	x1, y1 := rc.WorkspaceToScreen(r.Max.Sub(image.Pt(1, 1)))
	return image.Rect(x0, y0, x1+1, y1+1)
}
