// cmd/barnstorm/main.go
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/EngoEngine/engo"
	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-barnstorm/pkg/config"
	"github.com/opd-ai/go-barnstorm/pkg/engine"
	"github.com/opd-ai/go-barnstorm/pkg/logging"
	"github.com/opd-ai/go-barnstorm/pkg/render"
	engorender "github.com/opd-ai/go-barnstorm/pkg/render/engo"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	renderer := flag.String("renderer", "", "Renderer type: 'terminal', 'engo', or 'null' (overrides config)")
	width := flag.Int("width", 0, "Window width (overrides config)")
	height := flag.Int("height", 0, "Window height (overrides config)")
	fullscreen := flag.Bool("fullscreen", false, "Run in fullscreen mode (engo only)")
	duration := flag.Duration("duration", 0, "Stop after this long (0 = run until quit)")
	flag.Parse()

	// Load configuration
	var cfg *config.Config

	if _, err := os.Stat(*configPath); os.IsNotExist(err) {
		log.Printf("Configuration file not found, using default configuration")
		cfg = config.DefaultConfig()
	} else {
		var err error
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}

	if err := config.ApplyEnvironmentOverrides(cfg); err != nil {
		log.Fatalf("Invalid environment override: %v", err)
	}
	if *renderer != "" {
		cfg.Display.Renderer = *renderer
	}
	if *width > 0 {
		cfg.Display.Width = *width
	}
	if *height > 0 {
		cfg.Display.Height = *height
	}
	if *fullscreen {
		cfg.Display.Fullscreen = true
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logging.NewLogger()
	sim := engine.NewSimulation(cfg, logger)

	switch cfg.Display.Renderer {
	case "engo":
		runEngo(cfg, sim)
	case "terminal":
		runTerminal(cfg, sim, *duration)
	case "null":
		runNull(cfg, sim, *duration)
	}
}

// runEngo hands the frame loop to engo; the scene drives the simulation.
func runEngo(cfg *config.Config, sim *engine.Simulation) {
	opts := engo.RunOptions{
		Title:          cfg.Display.Title,
		Width:          cfg.Display.Width,
		Height:         cfg.Display.Height,
		Fullscreen:     cfg.Display.Fullscreen,
		StandardInputs: true,
	}
	engo.Run(opts, engorender.NewFlightScene(sim))
}

// runTerminal owns the frame loop, drawing to the terminal and reading
// keys from it.
func runTerminal(cfg *config.Config, sim *engine.Simulation, duration time.Duration) {
	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to open terminal screen: %v", err)
	}
	r := render.NewTerminalRenderer(screen)
	if err := r.Init(); err != nil {
		log.Fatalf("Failed to initialize terminal renderer: %v", err)
	}
	defer r.Close()

	ctx, cancel := runContext(duration)
	defer cancel()

	if err := sim.Run(ctx, r, r.Events(), r.Done()); err != nil && ctx.Err() == nil {
		r.Close()
		log.Fatalf("Simulation failed: %v", err)
	}
}

// runNull runs headless, useful for soak tests and profiling.
func runNull(cfg *config.Config, sim *engine.Simulation, duration time.Duration) {
	r := render.NewNullRenderer()
	if err := r.Init(); err != nil {
		log.Fatalf("Failed to initialize renderer: %v", err)
	}

	ctx, cancel := runContext(duration)
	defer cancel()

	if err := sim.Run(ctx, r, nil, nil); err != nil && ctx.Err() == nil {
		log.Fatalf("Simulation failed: %v", err)
	}
}

func runContext(duration time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	if duration > 0 {
		tctx, tcancel := context.WithTimeout(ctx, duration)
		return tctx, func() { tcancel(); cancel() }
	}
	return ctx, cancel
}
