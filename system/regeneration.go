package system

import (
	"log"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/asteroid-forge/component"
	"github.com/lixenwraith/asteroid-forge/core"
	"github.com/lixenwraith/asteroid-forge/engine"
	"github.com/lixenwraith/asteroid-forge/parameter"
	"github.com/lixenwraith/asteroid-forge/shape"
	"github.com/lixenwraith/asteroid-forge/status"
)

// ErrorHandler receives generation failures; the instance keeps its previous shape
type ErrorHandler func(e core.Entity, version uint64, err error)

// RegenerationOption configures a RegenerationSystem
type RegenerationOption func(*RegenerationSystem)

// WithPresenter routes artifacts to p instead of the world presenter
func WithPresenter(p engine.Presenter) RegenerationOption {
	return func(s *RegenerationSystem) { s.presenter = p }
}

// WithWorkers bounds concurrent generation; n < 1 means 1
func WithWorkers(n int) RegenerationOption {
	return func(s *RegenerationSystem) {
		if n < 1 {
			n = 1
		}
		s.workers = n
	}
}

// WithErrorHandler reports failures to the host
func WithErrorHandler(h ErrorHandler) RegenerationOption {
	return func(s *RegenerationSystem) { s.onError = h }
}

// RegenerationSystem regenerates asteroid instances whose parameters changed
// An instance is regenerated once per version; unchanged versions are skipped
type RegenerationSystem struct {
	engine.SystemBase

	presenter engine.Presenter
	workers   int
	onError   ErrorHandler

	statRegen     *atomic.Int64
	statFail      *atomic.Int64
	statIndet     *atomic.Int64
	statCells     *atomic.Int64
	statSurfLive  *atomic.Int64
	statSurfTotal *atomic.Int64
	statMs        *status.AtomicFloat
	statAvgMs     *status.AtomicFloat
	statErr       *status.AtomicString
}

// pending is one instance awaiting generation
type pending struct {
	entity  core.Entity
	version uint64
	params  shape.Params

	shape *shape.Shape
	err   error
}

// NewRegenerationSystem creates the regeneration system
func NewRegenerationSystem(world *engine.World, opts ...RegenerationOption) *RegenerationSystem {
	s := &RegenerationSystem{
		SystemBase: engine.NewSystemBase(world),
		presenter:  engine.NewWorldPresenter(world),
		workers:    parameter.RegenerationWorkers,
	}
	for _, opt := range opts {
		opt(s)
	}

	reg := s.Resource.Status.Registry
	s.statRegen = reg.Ints.Get(status.KeyRegenerations)
	s.statFail = reg.Ints.Get(status.KeyFailures)
	s.statIndet = reg.Ints.Get(status.KeyIndeterminate)
	s.statCells = reg.Ints.Get(status.KeyCells)
	s.statSurfLive = reg.Ints.Get(status.KeySurfacesLive)
	s.statSurfTotal = reg.Ints.Get(status.KeySurfacesTotal)
	s.statMs = reg.Floats.Get(status.KeyGenerateMs)
	s.statAvgMs = reg.Floats.Get(status.KeyGenerateAvgMs)
	s.statErr = reg.Strings.Get(status.KeyLastError)

	return s
}

// Priority returns the system's priority
func (s *RegenerationSystem) Priority() int {
	return parameter.PriorityRegeneration
}

// Update generates every changed instance and installs the results
func (s *RegenerationSystem) Update() {
	work := s.collect()
	if len(work) == 0 {
		return
	}

	start := time.Now()
	sampler := s.Resource.Sampler.Sampler

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i := range work {
		g.Go(func() error {
			work[i].shape, work[i].err = shape.Generate(work[i].params, sampler)
			return nil
		})
	}
	_ = g.Wait()
	ms := float64(time.Since(start).Microseconds()) / 1000
	s.statMs.Set(ms)
	s.statAvgMs.Smooth(ms, parameter.GenerateTimeSmoothing)

	// Install in entity order so child allocation is reproducible
	for i := range work {
		if work[i].err != nil {
			s.fail(work[i])
			continue
		}
		s.install(work[i])
	}

	s.refreshTotals()
}

// collect returns instances whose version has neither been generated nor failed
func (s *RegenerationSystem) collect() []pending {
	var work []pending
	for _, e := range engine.Asteroids(s.World) {
		ast, ok := s.Component.Asteroid.GetComponent(e)
		if !ok {
			continue
		}
		current, _ := s.Component.Shape.GetComponent(e)
		if current.Version == ast.Version || current.FailedVersion == ast.Version {
			continue
		}
		work = append(work, pending{entity: e, version: ast.Version, params: ast.Params})
	}
	return work
}

func (s *RegenerationSystem) fail(p pending) {
	current, _ := s.Component.Shape.GetComponent(p.entity)
	current.FailedVersion = p.version
	s.Component.Shape.SetComponent(p.entity, current)

	s.statFail.Add(1)
	s.statErr.Store(p.err.Error())
	log.Printf("regenerate asteroid %d v%d: %v (keeping previous shape)", p.entity, p.version, p.err)

	if s.onError != nil {
		s.onError(p.entity, p.version, p.err)
	}
}

func (s *RegenerationSystem) install(p pending) {
	sh := p.shape
	if sh.Indeterminate > 0 {
		s.statIndet.Add(int64(sh.Indeterminate))
		log.Printf("asteroid %d v%d: %d cells with non-finite noise treated as outside", p.entity, p.version, sh.Indeterminate)
	}

	s.presenter.ReplaceChildren(p.entity, Primitives(sh))
	s.presenter.InstallSurface(p.entity, sh.Shading, SurfaceGeometry())

	s.Component.Shape.SetComponent(p.entity, component.ShapeComponent{
		Shape:   sh,
		Version: p.version,
	})
	s.statRegen.Add(1)

	if audio, ok := engine.GetResource[*engine.AudioResource](s.World.Resources); ok && audio.Player != nil {
		audio.Player.Play(len(sh.Cells))
	}
}

func (s *RegenerationSystem) refreshTotals() {
	var cells int64
	for _, e := range s.Component.Shape.GetAllEntities() {
		if sc, ok := s.Component.Shape.GetComponent(e); ok && sc.Shape != nil {
			cells += int64(len(sc.Shape.Cells))
		}
	}
	s.statCells.Store(cells)
	s.statSurfLive.Store(int64(s.World.Surfaces.Count()))
	s.statSurfTotal.Store(int64(s.World.Surfaces.Allocated()))
}

// Primitives converts generated cells into sprite primitives
func Primitives(sh *shape.Shape) []engine.Primitive {
	color := core.White.WithLuminance(parameter.SpriteLuminance)
	prims := make([]engine.Primitive, len(sh.Cells))
	for i, c := range sh.Cells {
		prims[i] = engine.Primitive{
			Position: core.Vec3{X: float32(c.X), Y: float32(c.Y), Z: parameter.SpriteDepth},
			Size:     parameter.SpriteSize,
			Color:    color,
		}
	}
	return prims
}

// SurfaceGeometry returns the quad the shading surface covers
func SurfaceGeometry() component.Geometry {
	return component.Geometry{
		Width:    parameter.SurfaceWidth,
		Height:   parameter.SurfaceHeight,
		Position: core.Vec3{Z: parameter.SurfaceDepth},
	}
}
