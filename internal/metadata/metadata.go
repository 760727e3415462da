// Package metadata answers the small set of field-visibility and work-mode
// questions that depend only on an exercise's external_load and isometric
// catalogue flags. Answers are cached by exercise name for the process
// lifetime; the cache is the only legitimate piece of process-wide mutable
// state in the engine.
package metadata

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/wabbazzar/shredly/internal/catalogue"
)

// WeightVisibility is the UI weight-field visibility answer.
type WeightVisibility string

const (
	WeightVisible   WeightVisibility = "visible"
	WeightHidden    WeightVisibility = "hidden"
	WeightIfPresent WeightVisibility = "if_present"
)

// WorkMode is the default mode an exercise presents itself in.
type WorkMode string

const (
	WorkModeTime WorkMode = "work_time"
	WorkModeReps WorkMode = "reps"
)

// Answers is the full set of metadata-service answers for one exercise.
type Answers struct {
	AssignWeightOnGeneration bool
	WeightVisibility         WeightVisibility
	CanToggleToReps          bool
	DefaultWorkMode          WorkMode
}

func compute(ex catalogue.Exercise) Answers {
	a := Answers{
		AssignWeightOnGeneration: ex.ExternalLoad != catalogue.ExternalLoadNever,
		CanToggleToReps:          !ex.Isometric,
	}
	switch ex.ExternalLoad {
	case catalogue.ExternalLoadAlways:
		a.WeightVisibility = WeightVisible
	case catalogue.ExternalLoadNever:
		a.WeightVisibility = WeightHidden
	default:
		a.WeightVisibility = WeightIfPresent
	}
	if ex.Isometric {
		a.DefaultWorkMode = WorkModeTime
	} else {
		a.DefaultWorkMode = WorkModeReps
	}
	return a
}

// Service answers metadata questions with a process-lifetime cache keyed by
// exercise name.
type Service struct {
	cat    *catalogue.Catalogue
	mu     sync.RWMutex
	cache  map[string]Answers
	single singleflight.Group
}

// NewService constructs a metadata Service over cat. The cache starts empty;
// callers may eagerly warm it with WarmAll to sidestep concurrency concerns
// entirely.
func NewService(cat *catalogue.Catalogue) *Service {
	return &Service{cat: cat, cache: make(map[string]Answers)}
}

// For returns the cached (or freshly computed and cached) answers for name.
// Returns false if name is not in the catalogue. Concurrent first-time
// lookups for the same name collapse onto a single compute via singleflight,
// so a cold cache under concurrent readers never computes the same answer
// twice.
func (s *Service) For(name string) (Answers, bool) {
	s.mu.RLock()
	if a, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return a, true
	}
	s.mu.RUnlock()

	if _, ok := s.cat.Lookup(name); !ok {
		return Answers{}, false
	}

	v, _, _ := s.single.Do(name, func() (interface{}, error) {
		s.mu.RLock()
		if a, ok := s.cache[name]; ok {
			s.mu.RUnlock()
			return a, nil
		}
		s.mu.RUnlock()

		ex, _ := s.cat.Lookup(name)
		a := compute(ex)
		s.mu.Lock()
		s.cache[name] = a
		s.mu.Unlock()
		return a, nil
	})
	return v.(Answers), true
}

// AssignWeightOnGeneration answers "assign weight on generation?" for name:
// true iff the exercise's external_load is not "never". Returns false for a
// name absent from the catalogue, matching the phase-2 default of no weight.
func (s *Service) AssignWeightOnGeneration(name string) bool {
	a, ok := s.For(name)
	return ok && a.AssignWeightOnGeneration
}

// WarmAll eagerly computes and caches answers for every catalogue exercise.
func (s *Service) WarmAll() {
	for _, ex := range s.cat.All() {
		a := compute(ex)
		s.mu.Lock()
		s.cache[ex.Name] = a
		s.mu.Unlock()
	}
}

// InvalidateAll clears the cache. Intended for test isolation only; the
// production lifecycle never calls this.
func (s *Service) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string]Answers)
	s.mu.Unlock()
}
