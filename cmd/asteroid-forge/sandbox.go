package main

import (
	"context"
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/asteroid-forge/core"
	"github.com/lixenwraith/asteroid-forge/engine"
	"github.com/lixenwraith/asteroid-forge/parameter"
	"github.com/lixenwraith/asteroid-forge/preset"
	"github.com/lixenwraith/asteroid-forge/render"
	"github.com/lixenwraith/asteroid-forge/shape"
)

const presetTimeout = 2 * time.Second

// sandbox is the interactive session state
// Keys, ticks and regeneration errors all arrive on the main goroutine
type sandbox struct {
	world    *engine.World
	presets  *preset.Store
	player   engine.AudioPlayer
	selected core.Entity
	spawned  int
	message  string

	// presetCursor is the index of the next saved preset L applies
	presetCursor int
}

func newSandbox(world *engine.World, presets *preset.Store, player engine.AudioPlayer) *sandbox {
	return &sandbox{
		world:   world,
		presets: presets,
		player:  player,
	}
}

// spawn creates and selects a new instance; caller holds the update lock
func (s *sandbox) spawn(p shape.Params) core.Entity {
	s.spawned++
	e := engine.SpawnAsteroid(s.world, fmt.Sprintf("asteroid-%d", s.spawned), p)
	s.selected = e
	return e
}

// ensureSelection falls back to the first instance when the selection is gone
func (s *sandbox) ensureSelection() []core.Entity {
	entities := engine.Asteroids(s.world)
	if !slices.Contains(entities, s.selected) {
		s.selected = 0
		if len(entities) > 0 {
			s.selected = entities[0]
		}
	}
	return entities
}

func (s *sandbox) cycle() {
	entities := s.ensureSelection()
	if len(entities) == 0 {
		return
	}
	i := slices.Index(entities, s.selected)
	s.selected = entities[(i+1)%len(entities)]
}

// frame snapshots what the renderer needs; caller holds the update lock
func (s *sandbox) frame() render.Frame {
	entities := s.ensureSelection()
	f := render.Frame{
		Selected: s.selected,
		Index:    slices.Index(entities, s.selected),
		Count:    len(entities),
		Message:  s.message,
		Audio:    s.player != nil,
	}
	if s.player != nil {
		f.Muted = s.player.IsMuted()
	}
	return f
}

// handleKey applies one key press; false means quit
func (s *sandbox) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyTab:
		s.world.RunSafe(s.cycle)
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	switch ev.Rune() {
	case 'q':
		return false
	case 'f':
		s.adjust(func(p *shape.Params) { p.FrequencyScale -= parameter.FrequencyStep })
	case 'F':
		s.adjust(func(p *shape.Params) { p.FrequencyScale += parameter.FrequencyStep })
	case 'a':
		s.adjust(func(p *shape.Params) { p.AmplitudeScale -= parameter.AmplitudeStep })
	case 'A':
		s.adjust(func(p *shape.Params) { p.AmplitudeScale += parameter.AmplitudeStep })
	case 'r':
		s.adjust(func(p *shape.Params) { p.Radius = max(p.Radius-parameter.RadiusStep, 0) })
	case 'R':
		s.adjust(func(p *shape.Params) { p.Radius += parameter.RadiusStep })
	case 's':
		s.adjust(func(p *shape.Params) { p.Seed-- })
	case 'S':
		s.adjust(func(p *shape.Params) { p.Seed++ })
	case 'n':
		s.world.RunSafe(func() {
			e := s.spawn(shape.DefaultParams())
			s.message = fmt.Sprintf("spawned asteroid-%d (#%d)", s.spawned, e)
		})
	case 'x':
		s.destroy()
	case 'p':
		s.savePreset()
	case 'l':
		s.loadPreset()
	case 'L':
		s.nextPreset()
	case 'D':
		s.deletePreset()
	case 'm':
		if s.player != nil {
			s.player.ToggleMute()
		}
	}
	return true
}

// adjust edits the selected instance's parameters as one change
func (s *sandbox) adjust(edit func(p *shape.Params)) {
	s.world.RunSafe(func() {
		s.ensureSelection()
		ast, ok := s.world.Components.Asteroid.GetComponent(s.selected)
		if !ok {
			return
		}
		p := ast.Params
		edit(&p)
		if _, err := engine.SetAsteroidParams(s.world, s.selected, p); err != nil {
			s.message = err.Error()
			return
		}
		s.message = ""
	})
}

func (s *sandbox) destroy() {
	s.world.RunSafe(func() {
		s.ensureSelection()
		if s.selected == 0 {
			return
		}
		if err := engine.DestroyAsteroid(s.world, s.selected); err != nil {
			s.message = err.Error()
			return
		}
		s.message = fmt.Sprintf("destroyed #%d", s.selected)
		s.ensureSelection()
	})
}

// selection returns the selected instance's name and parameters
func (s *sandbox) selection() (string, shape.Params, bool) {
	var (
		name string
		p    shape.Params
		ok   bool
	)
	s.world.RunSafe(func() {
		s.ensureSelection()
		ast, found := s.world.Components.Asteroid.GetComponent(s.selected)
		name, p, ok = ast.Name, ast.Params, found
	})
	return name, p, ok
}

func (s *sandbox) savePreset() {
	if s.presets == nil {
		s.message = "preset store unavailable"
		return
	}
	name, p, ok := s.selection()
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), presetTimeout)
	defer cancel()
	if _, err := s.presets.Save(ctx, name, p); err != nil {
		log.Printf("save preset: %v", err)
		s.message = err.Error()
		return
	}
	s.message = fmt.Sprintf("saved preset %q", name)
}

func (s *sandbox) loadPreset() {
	if s.presets == nil {
		s.message = "preset store unavailable"
		return
	}
	name, _, ok := s.selection()
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), presetTimeout)
	defer cancel()
	pr, err := s.presets.Load(ctx, name)
	if err != nil {
		log.Printf("load preset: %v", err)
		s.message = err.Error()
		return
	}

	s.apply(pr)
}

// nextPreset applies the saved presets to the selection one after another
func (s *sandbox) nextPreset() {
	if s.presets == nil {
		s.message = "preset store unavailable"
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), presetTimeout)
	defer cancel()
	presets, err := s.presets.List(ctx)
	if err != nil {
		log.Printf("list presets: %v", err)
		s.message = err.Error()
		return
	}
	if len(presets) == 0 {
		s.message = "no saved presets"
		return
	}

	pr := presets[s.presetCursor%len(presets)]
	s.presetCursor = (s.presetCursor + 1) % len(presets)
	s.apply(&pr)
}

// deletePreset removes the preset saved under the selection's name
func (s *sandbox) deletePreset() {
	if s.presets == nil {
		s.message = "preset store unavailable"
		return
	}
	name, _, ok := s.selection()
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), presetTimeout)
	defer cancel()
	if err := s.presets.Delete(ctx, name); err != nil {
		log.Printf("delete preset: %v", err)
		s.message = err.Error()
		return
	}
	s.message = fmt.Sprintf("deleted preset %q", name)
}

// apply sets a preset's parameters on the selection
func (s *sandbox) apply(pr *preset.Preset) {
	s.world.RunSafe(func() {
		s.ensureSelection()
		if _, err := engine.SetAsteroidParams(s.world, s.selected, pr.Params); err != nil {
			s.message = err.Error()
			return
		}
		s.message = fmt.Sprintf("loaded preset %q", pr.Name)
	})
}

// onRegenerationError reports a failed generation in the status bar
func (s *sandbox) onRegenerationError(e core.Entity, version uint64, err error) {
	s.message = fmt.Sprintf("#%d v%d: %v", e, version, err)
}
