package system

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/lixenwraith/asteroid-forge/component"
	"github.com/lixenwraith/asteroid-forge/core"
	"github.com/lixenwraith/asteroid-forge/engine"
	"github.com/lixenwraith/asteroid-forge/noise"
	"github.com/lixenwraith/asteroid-forge/shape"
	"github.com/lixenwraith/asteroid-forge/status"
)

// countingSampler wraps a sampler and counts calls
type countingSampler struct {
	inner noise.Sampler
	calls atomic.Int64
}

func (c *countingSampler) Sample(x, y, seed float32) float32 {
	c.calls.Add(1)
	return c.inner.Sample(x, y, seed)
}

// newTestWorld creates a world with the resources systems require
func newTestWorld(sampler noise.Sampler) (*engine.World, *status.Registry) {
	w := engine.NewWorld()
	reg := status.NewRegistry()
	engine.AddResource(w.Resources, &engine.SamplerResource{Sampler: sampler})
	engine.AddResource(w.Resources, &engine.StatusResource{Registry: reg})
	return w, reg
}

func cellCount(t *testing.T, w *engine.World, e core.Entity) int {
	t.Helper()
	sc, ok := w.Components.Shape.GetComponent(e)
	if !ok || sc.Shape == nil {
		t.Fatalf("Entity %d has no generated shape", e)
	}
	return len(sc.Shape.Cells)
}

func TestRegenerationFirstUpdateGenerates(t *testing.T) {
	w, reg := newTestWorld(noise.NewSimplex())
	sys := NewRegenerationSystem(w)
	e := engine.SpawnAsteroid(w, "Asteroid", shape.DefaultParams())

	if w.Components.Shape.HasEntity(e) {
		t.Fatal("Expected no shape before first update")
	}

	sys.Update()

	n := cellCount(t, w, e)
	if n == 0 {
		t.Fatal("Expected cells after first update")
	}
	if got := len(engine.ChildSprites(w, e)); got != n {
		t.Errorf("Expected %d sprites, got %d", n, got)
	}

	surf, ok := engine.ChildSurface(w, e)
	if !ok {
		t.Fatal("Expected a shading surface")
	}
	if surf.Shading != shape.DefaultParams().Shading() {
		t.Errorf("Surface shading = %v, want %v", surf.Shading, shape.DefaultParams().Shading())
	}
	if reg.Ints.Get(status.KeyRegenerations).Load() != 1 {
		t.Errorf("Expected 1 regeneration, got %d", reg.Ints.Get(status.KeyRegenerations).Load())
	}
	if reg.Ints.Get(status.KeyCells).Load() != int64(n) {
		t.Errorf("Expected live cells %d, got %d", n, reg.Ints.Get(status.KeyCells).Load())
	}
}

func TestRegenerationIdempotent(t *testing.T) {
	sampler := &countingSampler{inner: noise.NewSimplex()}
	w, reg := newTestWorld(sampler)
	sys := NewRegenerationSystem(w)
	e := engine.SpawnAsteroid(w, "Asteroid", shape.DefaultParams())

	sys.Update()
	perGeneration := sampler.calls.Load()

	sys.Update()
	if sampler.calls.Load() != perGeneration {
		t.Error("Expected no sampling on unchanged parameters")
	}

	// Writing byte-identical parameters is not a change
	before, _ := w.Components.Asteroid.GetComponent(e)
	v, err := engine.SetAsteroidParams(w, e, shape.DefaultParams())
	if err != nil {
		t.Fatalf("SetAsteroidParams failed: %v", err)
	}
	if v != before.Version {
		t.Errorf("Expected version %d unchanged, got %d", before.Version, v)
	}

	sys.Update()
	if sampler.calls.Load() != perGeneration {
		t.Error("Expected identical parameters to not regenerate")
	}
	if reg.Ints.Get(status.KeyRegenerations).Load() != 1 {
		t.Errorf("Expected exactly 1 regeneration, got %d", reg.Ints.Get(status.KeyRegenerations).Load())
	}
}

func TestRegenerationFullReplace(t *testing.T) {
	w, reg := newTestWorld(noise.NewSimplex())
	sys := NewRegenerationSystem(w)
	e := engine.SpawnAsteroid(w, "Asteroid", shape.DefaultParams())
	sys.Update()

	firstSurface, _ := engine.ChildSurface(w, e)

	p := shape.DefaultParams()
	p.Radius = 5
	if _, err := engine.SetAsteroidParams(w, e, p); err != nil {
		t.Fatalf("SetAsteroidParams failed: %v", err)
	}
	sys.Update()

	n := cellCount(t, w, e)
	if got := len(engine.ChildSprites(w, e)); got != n {
		t.Errorf("Expected %d sprites after replace, got %d", n, got)
	}
	if got := w.Components.Sprite.CountEntities(); got != n {
		t.Errorf("Expected sprite store to hold only the new %d sprites, got %d", n, got)
	}
	if got := w.Components.Surface.CountEntities(); got != 1 {
		t.Errorf("Expected one surface binding, got %d", got)
	}

	secondSurface, ok := engine.ChildSurface(w, e)
	if !ok {
		t.Fatal("Expected a surface after replace")
	}
	if secondSurface.ID == firstSurface.ID {
		t.Error("Expected a freshly allocated surface resource")
	}
	if _, ok := w.Surfaces.Get(firstSurface.ID); ok {
		t.Error("Expected the previous surface resource to be released")
	}
	if secondSurface.Shading != p.Shading() {
		t.Errorf("Surface shading = %v, want %v", secondSurface.Shading, p.Shading())
	}
	if reg.Ints.Get(status.KeySurfacesTotal).Load() != 2 || reg.Ints.Get(status.KeySurfacesLive).Load() != 1 {
		t.Errorf("Expected 2 allocated / 1 live surfaces, got %d / %d",
			reg.Ints.Get(status.KeySurfacesTotal).Load(), reg.Ints.Get(status.KeySurfacesLive).Load())
	}
}

func TestRegenerationCoalescesChanges(t *testing.T) {
	w, reg := newTestWorld(noise.Constant(0))
	sys := NewRegenerationSystem(w)
	e := engine.SpawnAsteroid(w, "Asteroid", shape.DefaultParams())
	sys.Update()

	for _, r := range []float32{3, 4, 2} {
		p := shape.DefaultParams()
		p.Radius = r
		engine.SetAsteroidParams(w, e, p)
	}
	sys.Update()

	if reg.Ints.Get(status.KeyRegenerations).Load() != 2 {
		t.Errorf("Expected 2 regenerations, got %d", reg.Ints.Get(status.KeyRegenerations).Load())
	}
	sc, _ := w.Components.Shape.GetComponent(e)
	if sc.Shape.Params.Radius != 2 {
		t.Errorf("Expected latest radius 2, got %v", sc.Shape.Params.Radius)
	}
}

func TestRegenerationFailureKeepsPrevious(t *testing.T) {
	w, reg := newTestWorld(noise.NewSimplex())

	var failures []error
	sys := NewRegenerationSystem(w, WithErrorHandler(func(_ core.Entity, _ uint64, err error) {
		failures = append(failures, err)
	}))
	e := engine.SpawnAsteroid(w, "Asteroid", shape.DefaultParams())
	sys.Update()

	before, _ := w.Components.Shape.GetComponent(e)
	surfBefore, _ := engine.ChildSurface(w, e)
	spritesBefore := len(engine.ChildSprites(w, e))

	bad := shape.DefaultParams()
	bad.Radius = -1
	engine.SetAsteroidParams(w, e, bad)
	sys.Update()

	if len(failures) != 1 || !errors.Is(failures[0], shape.ErrInvalidRadius) {
		t.Fatalf("Expected one ErrInvalidRadius failure, got %v", failures)
	}

	after, _ := w.Components.Shape.GetComponent(e)
	if after.Shape != before.Shape || after.Version != before.Version {
		t.Error("Expected previous shape to stay installed")
	}
	surfAfter, _ := engine.ChildSurface(w, e)
	if surfAfter.ID != surfBefore.ID {
		t.Error("Expected previous surface to stay installed")
	}
	if len(engine.ChildSprites(w, e)) != spritesBefore {
		t.Error("Expected previous sprites to stay installed")
	}
	if reg.Ints.Get(status.KeyFailures).Load() != 1 {
		t.Errorf("Expected 1 failure, got %d", reg.Ints.Get(status.KeyFailures).Load())
	}
	if reg.Strings.Get(status.KeyLastError).Load() == "" {
		t.Error("Expected last error to be recorded")
	}

	// Same bad version is not retried
	sys.Update()
	if len(failures) != 1 {
		t.Errorf("Expected failed version to not be retried, got %d failures", len(failures))
	}

	// A new change recovers
	good := shape.DefaultParams()
	good.Radius = 6
	engine.SetAsteroidParams(w, e, good)
	sys.Update()

	recovered, _ := w.Components.Shape.GetComponent(e)
	if recovered.Shape.Params != good {
		t.Errorf("Expected recovery with %+v, got %+v", good, recovered.Shape.Params)
	}
	if recovered.FailedVersion != 0 {
		t.Error("Expected failure marker cleared after success")
	}
}

func TestRegenerationInstancesIndependent(t *testing.T) {
	w, _ := newTestWorld(noise.NewSimplex())
	sys := NewRegenerationSystem(w)

	a := engine.SpawnAsteroid(w, "A", shape.DefaultParams())
	bParams := shape.DefaultParams()
	bParams.Seed = 3
	b := engine.SpawnAsteroid(w, "B", bParams)
	sys.Update()

	bShape, _ := w.Components.Shape.GetComponent(b)
	bSurface, _ := engine.ChildSurface(w, b)

	p := shape.DefaultParams()
	p.Radius = 8
	engine.SetAsteroidParams(w, a, p)
	sys.Update()

	bShapeAfter, _ := w.Components.Shape.GetComponent(b)
	bSurfaceAfter, _ := engine.ChildSurface(w, b)
	if bShapeAfter.Shape != bShape.Shape {
		t.Error("Expected untouched instance to keep its shape")
	}
	if bSurfaceAfter.ID != bSurface.ID {
		t.Error("Expected untouched instance to keep its surface")
	}

	total := cellCount(t, w, a) + cellCount(t, w, b)
	if got := w.Components.Sprite.CountEntities(); got != total {
		t.Errorf("Expected %d sprites across instances, got %d", total, got)
	}
}

func TestRegenerationParallelMatchesSequential(t *testing.T) {
	sampler := noise.NewSimplex()
	spawn := func(w *engine.World) []core.Entity {
		var es []core.Entity
		for i := 0; i < 12; i++ {
			p := shape.DefaultParams()
			p.Seed = uint32(i)
			p.Radius = float32(4 + i)
			es = append(es, engine.SpawnAsteroid(w, "", p))
		}
		return es
	}

	wSeq, _ := newTestWorld(sampler)
	seq := spawn(wSeq)
	NewRegenerationSystem(wSeq, WithWorkers(1)).Update()

	wPar, _ := newTestWorld(sampler)
	par := spawn(wPar)
	NewRegenerationSystem(wPar, WithWorkers(8)).Update()

	for i := range seq {
		a, _ := wSeq.Components.Shape.GetComponent(seq[i])
		b, _ := wPar.Components.Shape.GetComponent(par[i])
		if !reflect.DeepEqual(a.Shape.Cells, b.Shape.Cells) {
			t.Errorf("Instance %d differs between sequential and parallel generation", i)
		}
	}
}

func TestRegenerationDestroy(t *testing.T) {
	w, _ := newTestWorld(noise.NewSimplex())
	sys := NewRegenerationSystem(w)
	e := engine.SpawnAsteroid(w, "Asteroid", shape.DefaultParams())
	sys.Update()

	if err := engine.DestroyAsteroid(w, e); err != nil {
		t.Fatalf("DestroyAsteroid failed: %v", err)
	}

	if w.Components.Sprite.CountEntities() != 0 || w.Components.Surface.CountEntities() != 0 {
		t.Error("Expected all presentation artifacts removed")
	}
	if w.Components.Member.CountEntities() != 0 {
		t.Error("Expected all member links removed")
	}
	if w.Surfaces.Count() != 0 {
		t.Errorf("Expected no live surfaces, got %d", w.Surfaces.Count())
	}
	if w.HasAnyComponent(e) {
		t.Error("Expected anchor entity fully removed")
	}
	if !errors.Is(engine.DestroyAsteroid(w, e), engine.ErrNoAsteroid) {
		t.Error("Expected ErrNoAsteroid on second destroy")
	}
}

// recordingPresenter captures presenter calls
type recordingPresenter struct {
	mu    sync.Mutex
	calls []string
	prims []engine.Primitive
	shade shape.ShadingVector
	geom  component.Geometry
}

func (r *recordingPresenter) ReplaceChildren(_ core.Entity, prims []engine.Primitive) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "children")
	r.prims = prims
}

func (r *recordingPresenter) InstallSurface(_ core.Entity, v shape.ShadingVector, g component.Geometry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "surface")
	r.shade = v
	r.geom = g
}

func TestRegenerationPresenterContract(t *testing.T) {
	w, _ := newTestWorld(noise.Constant(0))
	rec := &recordingPresenter{}
	sys := NewRegenerationSystem(w, WithPresenter(rec))

	p := shape.Params{FrequencyScale: 0.1, Radius: 1.5, Seed: 2}
	engine.SpawnAsteroid(w, "Asteroid", p)
	sys.Update()

	if !reflect.DeepEqual(rec.calls, []string{"children", "surface"}) {
		t.Fatalf("Presenter calls = %v", rec.calls)
	}
	if len(rec.prims) != 9 {
		t.Fatalf("Expected 9 primitives, got %d", len(rec.prims))
	}
	first := rec.prims[0]
	if first.Position != (core.Vec3{X: -1, Y: -1, Z: 100}) {
		t.Errorf("First primitive position = %+v", first.Position)
	}
	if first.Size != 1 || first.Color != (core.RGB{51, 51, 51}) {
		t.Errorf("Primitive size/color = %v/%v", first.Size, first.Color)
	}
	if rec.shade != p.Shading() {
		t.Errorf("Shading = %v, want %v", rec.shade, p.Shading())
	}
	if rec.geom.Width != 100 || rec.geom.Height != 100 || rec.geom.Position.Z != 1.5 {
		t.Errorf("Geometry = %+v", rec.geom)
	}
}

// fakePlayer records audio cues
type fakePlayer struct {
	played []int
	muted  bool
}

func (f *fakePlayer) Play(cells int) bool { f.played = append(f.played, cells); return true }
func (f *fakePlayer) ToggleMute() bool    { f.muted = !f.muted; return f.muted }
func (f *fakePlayer) IsMuted() bool       { return f.muted }

func TestRegenerationAudioCue(t *testing.T) {
	w, _ := newTestWorld(noise.Constant(0))
	player := &fakePlayer{}
	engine.AddResource(w.Resources, &engine.AudioResource{Player: player})
	sys := NewRegenerationSystem(w)

	engine.SpawnAsteroid(w, "Asteroid", shape.Params{Radius: 1.5})
	sys.Update()

	if !reflect.DeepEqual(player.played, []int{9}) {
		t.Errorf("Expected one cue for 9 cells, got %v", player.played)
	}
}

func TestRegenerationRunsThroughWorld(t *testing.T) {
	w, reg := newTestWorld(noise.Constant(0))
	w.AddSystem(NewRegenerationSystem(w))
	engine.SpawnAsteroid(w, "Asteroid", shape.DefaultParams())

	w.Update()
	w.Update()

	if reg.Ints.Get(status.KeyRegenerations).Load() != 1 {
		t.Errorf("Expected 1 regeneration via world update, got %d", reg.Ints.Get(status.KeyRegenerations).Load())
	}
}
