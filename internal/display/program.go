package display

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/controlroom/internal/engine"
	"github.com/muurk/controlroom/internal/logging"
)

// Config configures Run
type Config struct {
	// Engine options. Surface, Map and Scheduler are filled in by Run.
	Engine engine.Options

	// WrapSurface, if set, wraps the terminal surface (e.g. to broadcast frames)
	WrapSurface func(engine.Surface) engine.Surface

	// Events are feed snapshots and remote inputs from other goroutines
	Events <-chan engine.Event

	// Title replaces AppName in the header
	Title string

	// AltScreen runs the program full screen
	AltScreen bool
}

// Run builds the engine around a terminal surface and runs the program until
// the user quits or ctx is done
func Run(ctx context.Context, cfg Config) error {
	surface := NewSurface()
	mapView := NewMapView()

	var program *tea.Program
	deliver := func(ev engine.Event) {
		program.Send(EventMsg{Event: ev})
	}

	opts := cfg.Engine
	opts.Surface = surface
	if cfg.WrapSurface != nil {
		opts.Surface = cfg.WrapSurface(surface)
	}
	opts.Map = mapView
	opts.Scheduler = engine.NewTimerScheduler(deliver)
	eng := engine.New(opts)

	model := NewModel(eng, surface, mapView)
	if cfg.Title != "" {
		model.Title = cfg.Title
	}

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	program = tea.NewProgram(model, progOpts...)

	if cfg.Events != nil {
		go forward(ctx, cfg.Events, deliver)
	}

	_, err := program.Run()
	eng.Stop()
	logging.Sync()

	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}

func forward(ctx context.Context, events <-chan engine.Event, deliver func(engine.Event)) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			deliver(ev)
		}
	}
}
