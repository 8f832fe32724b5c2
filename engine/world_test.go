package engine

import (
	"reflect"
	"testing"

	"github.com/lixenwraith/asteroid-forge/component"
	"github.com/lixenwraith/asteroid-forge/core"
)

// orderSystem records its priority when updated
type orderSystem struct {
	priority int
	log      *[]int
}

func (s *orderSystem) Update()       { *s.log = append(*s.log, s.priority) }
func (s *orderSystem) Priority() int { return s.priority }

func TestWorldSystemsRunByPriority(t *testing.T) {
	w := NewWorld()
	var order []int
	w.AddSystem(&orderSystem{priority: 30, log: &order})
	w.AddSystem(&orderSystem{priority: 10, log: &order})
	w.AddSystem(&orderSystem{priority: 20, log: &order})

	w.Update()

	if !reflect.DeepEqual(order, []int{10, 20, 30}) {
		t.Errorf("Expected priority order [10 20 30], got %v", order)
	}
	if len(w.Systems()) != 3 {
		t.Errorf("Expected 3 systems, got %d", len(w.Systems()))
	}
}

func TestWorldEntityIDs(t *testing.T) {
	w := NewWorld()
	a := w.CreateEntity()
	b := w.CreateEntity()
	if a == 0 || b == a {
		t.Errorf("Expected distinct non-zero IDs, got %d and %d", a, b)
	}
}

func TestWorldDestroyEntity(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	w.Components.Sprite.SetComponent(e, component.SpriteComponent{Size: 1})
	w.Components.Member.SetComponent(e, component.MemberComponent{AnchorID: 99})

	if !w.HasAnyComponent(e) {
		t.Fatal("Expected entity to have components")
	}

	w.DestroyEntity(e)
	if w.HasAnyComponent(e) {
		t.Error("Expected entity to have no components after destroy")
	}
}

func TestWorldClear(t *testing.T) {
	w := NewWorld()
	SpawnAsteroid(w, "A", testParams())
	w.Surfaces.Add([4]float32{}, component.Geometry{})

	w.Clear()

	if w.Components.Asteroid.CountEntities() != 0 || w.Surfaces.Count() != 0 {
		t.Error("Expected empty world after clear")
	}
	if e := w.CreateEntity(); e != 1 {
		t.Errorf("Expected entity IDs to restart at 1, got %d", e)
	}
}

func TestQueryIntersection(t *testing.T) {
	w := NewWorld()
	cs := w.Components

	e1 := w.CreateEntity()
	cs.Sprite.SetComponent(e1, component.SpriteComponent{})
	cs.Member.SetComponent(e1, component.MemberComponent{AnchorID: 1})

	e2 := w.CreateEntity()
	cs.Sprite.SetComponent(e2, component.SpriteComponent{})

	e3 := w.CreateEntity()
	cs.Member.SetComponent(e3, component.MemberComponent{AnchorID: 1})
	cs.Sprite.SetComponent(e3, component.SpriteComponent{})

	results := w.Query().With(cs.Sprite).With(cs.Member).Execute()
	if !reflect.DeepEqual(results, []core.Entity{e1, e3}) {
		t.Errorf("Expected [%d %d], got %v", e1, e3, results)
	}

	if got := w.Query().Execute(); len(got) != 0 {
		t.Errorf("Expected empty query to return nothing, got %v", got)
	}
}

func TestQueryModifyAfterExecutePanics(t *testing.T) {
	w := NewWorld()
	q := w.Query().With(w.Components.Sprite)
	q.Execute()

	defer func() {
		if recover() == nil {
			t.Error("Expected panic when modifying executed query")
		}
	}()
	q.With(w.Components.Member)
}

func TestResourceStore(t *testing.T) {
	rs := NewResourceStore()
	AddResource(rs, &AudioResource{})

	if _, ok := GetResource[*AudioResource](rs); !ok {
		t.Error("Expected AudioResource to be found")
	}
	if _, ok := GetResource[*SamplerResource](rs); ok {
		t.Error("Expected SamplerResource to be missing")
	}

	defer func() {
		if recover() == nil {
			t.Error("Expected MustGetResource to panic on missing resource")
		}
	}()
	MustGetResource[*StatusResource](rs)
}
