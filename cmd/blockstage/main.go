// Command blockstage is the terminal block editor: a palette, a script
// workspace and a stage running the scripts.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/lixenwraith/blockstage/audio"
	"github.com/lixenwraith/blockstage/bridge"
	"github.com/lixenwraith/blockstage/config"
	"github.com/lixenwraith/blockstage/engine"
	"github.com/lixenwraith/blockstage/interp"
	"github.com/lixenwraith/blockstage/project"
	"github.com/lixenwraith/blockstage/shell"
	"github.com/lixenwraith/blockstage/storage/postgres"
)

var (
	configFlag  = flag.String("config", "", "Path to a YAML config file")
	debugFlag   = flag.Bool("debug", false, "Write a debug log to logs/blockstage.log")
	projectFlag = flag.String("project", "", "Project to open (overrides config)")
)

func main() {
	flag.Parse()
	os.Exit(run())
}

// run wires and drives the editor and returns the process exit code, so
// every deferred cleanup runs before main exits
func run() int {
	if f := setupLogging(*debugFlag); f != nil {
		defer f.Close()
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if *projectFlag != "" {
		cfg.Project = *projectFlag
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open project store: %v\n", err)
		return 1
	}
	defer closeStore()

	proj, err := store.Load(ctx, cfg.Project)
	if errors.Is(err, project.ErrNotFound) {
		proj = project.New(cfg.Project)
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load project %q: %v\n", cfg.Project, err)
		return 1
	}

	opts := shell.Options{
		Project: proj,
		Clock:   engine.NewPausableClock(engine.NewMonotonicTimeProvider()),
		Store:   store,
	}

	// Audio degrades to silence; a nil *Player must not reach the interface
	player := audio.NewPlayer(cfg.Audio)
	if err := player.Initialize(); err != nil {
		log.Printf("audio: %v (continuing without audio)", err)
	} else {
		opts.Sound = player
		defer player.Cleanup()
	}

	if cfg.MQTT.Enabled {
		br := bridge.New(bridge.NewClient(cfg.MQTT.BrokerURL, cfg.MQTT.ClientID), cfg.MQTT)
		if err := br.Start(); err != nil {
			log.Printf("mqtt: %v (continuing offline)", err)
		} else {
			opts.Bridge = br
			defer br.Stop()
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		return 1
	}
	screen.EnableMouse()
	shell.SetCrashScreen(screen)

	// Panic recovery: restore the terminal before printing the trace
	defer func() {
		if r := recover(); r != nil {
			shell.HandleCrash(r)
		}
	}()

	app := shell.New(opts)
	runErr := app.Run(ctx, screen, cfg.TickInterval)
	screen.Fini()
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		fmt.Fprintf(os.Stderr, "blockstage: %v\n", runErr)
		return 1
	}
	return 0
}

// openStore picks Postgres when enabled, else one YAML file per project
func openStore(ctx context.Context, cfg *config.Config) (project.Store, func(), error) {
	if !cfg.Postgres.Enabled {
		return project.NewFileStore(cfg.ProjectDir), func() {}, nil
	}
	pg, err := postgres.Open(ctx, postgres.ConnString())
	if err != nil {
		return nil, nil, err
	}
	return pg, func() { _ = pg.Close() }, nil
}

var _ interp.SoundService = (*audio.Player)(nil)
