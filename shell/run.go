package shell

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/blockstage/constants"
	"github.com/lixenwraith/blockstage/render"
	"github.com/lixenwraith/blockstage/render/renderer"
)

// NewOrchestrator registers every renderer in priority order
func NewOrchestrator(screen tcell.Screen, width, height int) *render.RenderOrchestrator {
	o := render.NewRenderOrchestrator(screen, width, height)

	rendererList := []struct {
		renderer render.SystemRenderer
		priority render.RenderPriority
	}{
		{renderer.NewWorkspaceRenderer(), render.PriorityWorkspace},
		{renderer.NewPaletteRenderer(), render.PriorityPalette},
		{renderer.NewStageRenderer(), render.PriorityStage},
		{renderer.NewPenRenderer(), render.PriorityPen},
		{renderer.NewSpriteRenderer(), render.PrioritySprites},
		{renderer.NewBubbleRenderer(), render.PriorityBubbles},
		{renderer.NewMonitorRenderer(), render.PriorityMonitors},
		{renderer.NewToolbarRenderer(), render.PriorityUI},
	}
	for _, def := range rendererList {
		o.Register(def.renderer, def.priority)
	}
	return o
}

// Run drives the app on screen until the user quits or ctx ends. Every tick
// runs one interpreter step and renders one frame.
func (a *App) Run(ctx context.Context, screen tcell.Screen, tick time.Duration) error {
	w, h := screen.Size()
	a.Resize(w, h)
	orchestrator := NewOrchestrator(screen, w, h)

	eventChan := make(chan tcell.Event, constants.EventChannelSize)
	quit := make(chan struct{})
	defer close(quit)

	// Input polling uses a raw goroutine as it interacts directly with the screen
	Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-quit:
				return
			}
		}
	})

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	orchestrator.RenderFrame(a.Context())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-eventChan:
			if !a.HandleEvent(ev) {
				return nil
			}
			if resize, ok := ev.(*tcell.EventResize); ok {
				w, h := resize.Size()
				orchestrator.Resize(w, h)
			}

		case <-ticker.C:
			a.Tick()
			orchestrator.RenderFrame(a.Context())
		}
	}
}
