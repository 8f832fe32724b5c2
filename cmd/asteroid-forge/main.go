package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/asteroid-forge/audio"
	"github.com/lixenwraith/asteroid-forge/config"
	"github.com/lixenwraith/asteroid-forge/engine"
	"github.com/lixenwraith/asteroid-forge/noise"
	"github.com/lixenwraith/asteroid-forge/preset"
	"github.com/lixenwraith/asteroid-forge/render"
	"github.com/lixenwraith/asteroid-forge/status"
	"github.com/lixenwraith/asteroid-forge/system"
	"github.com/lixenwraith/asteroid-forge/tune"
)

var (
	configFlag    = flag.String("config", "", "Path to YAML config file")
	debugFlag     = flag.Bool("debug", false, "Write logs to the log directory")
	colorModeFlag = flag.String("color", "auto", "Color mode: auto, truecolor, 256")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if *debugFlag {
		cfg.Debug = true
	}

	if logFile := setupLogging(cfg.Debug, cfg.LogDir); logFile != nil {
		defer logFile.Close()
	}

	applyColorMode(*colorModeFlag)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	// Restore the terminal before printing a crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mASTEROID-FORGE CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	world := engine.NewWorld()
	engine.AddResource(world.Resources, &engine.SamplerResource{Sampler: noise.NewSimplex()})
	engine.AddResource(world.Resources, &engine.StatusResource{Registry: status.NewRegistry()})

	var player engine.AudioPlayer
	if cfg.Audio {
		audioEngine := audio.NewEngine()
		if err := audioEngine.Start(); err == nil {
			player = audioEngine
			engine.AddResource(world.Resources, &engine.AudioResource{Player: audioEngine})
			defer audioEngine.Stop()
		} else {
			log.Printf("Audio start failed: %v (continuing without audio)", err)
		}
	}

	var presets *preset.Store
	if cfg.PresetDB != "" {
		if presets, err = preset.New(cfg.PresetDB); err != nil {
			log.Printf("Preset store unavailable: %v", err)
		} else {
			defer presets.Close()
		}
	}

	sb := newSandbox(world, presets, player)
	world.AddSystem(system.NewRegenerationSystem(world,
		system.WithWorkers(cfg.Workers),
		system.WithErrorHandler(sb.onRegenerationError),
	))

	world.RunSafe(func() {
		for _, p := range cfg.Asteroids {
			sb.spawn(p)
		}
		sb.selected = 0
		sb.ensureSelection()
	})

	if cfg.TuneAddr != "" {
		tuner := tune.NewServer(world)
		go func() {
			if err := tuner.Start(cfg.TuneAddr); err != nil {
				log.Printf("%v", err)
			}
		}()
		defer stopTuner(tuner)
	}

	renderer := render.NewTerminalRenderer(screen, world)

	// Input polling runs on its own goroutine; PollEvent returns nil after Fini
	eventChan := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	ticker := time.NewTicker(cfg.Tick)
	defer ticker.Stop()

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !sb.handleKey(ev) {
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case <-ticker.C:
			world.RunSafe(func() {
				world.UpdateLocked()
				renderer.RenderFrame(sb.frame())
			})
		}
	}
}

// applyColorMode steers tcell's color detection through its environment switches
func applyColorMode(mode string) {
	switch mode {
	case "256":
		os.Setenv("TCELL_TRUECOLOR", "disable")
	case "truecolor", "true", "24bit":
		os.Setenv("COLORTERM", "truecolor")
	}
}

func stopTuner(tuner *tune.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := tuner.Stop(ctx); err != nil {
		log.Printf("%v", err)
	}
}
