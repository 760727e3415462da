// Package structural carries Phase 1's output shape: the structural
// exercise and structural day types that the day-structure and exercise
// selector stages populate, and that Phase 2's parameterizer consumes.
//
// A structural exercise is a strictly one-level tree: either a leaf
// pointing at a catalogue entry, or a compound parent whose sub-exercises
// are themselves required to be leaves. That invariant is enforced at
// construction here rather than left to convention.
package structural

import "errors"

var (
	errTooFewConstituents = errors.New("structural: compound exercise requires at least 2 sub-exercises")
	errNestedCompound      = errors.New("structural: compound exercise sub-exercises must not themselves be compound")
)

// Exercise is one Phase 1 structural slot: either a leaf referencing a
// catalogue exercise by name, or a compound parent built from ≥2 leaf
// sub-exercises.
type Exercise struct {
	// ExerciseName is the catalogue key for a leaf, or the synthesized
	// "<KIND>: <a> + <b> + ..." label for a compound parent.
	ExerciseName string

	// CompoundCategory is one of emom/amrap/circuit/interval when this
	// exercise is a compound parent, empty for a leaf.
	CompoundCategory string

	// SubExercises holds the compound's constituents in selection order.
	// Always empty for a leaf. Never itself compound (enforced by
	// NewCompound).
	SubExercises []Exercise

	ProgressionScheme string
	IntensityProfile  string
}

// IsCompound reports whether e is a compound parent.
func (e Exercise) IsCompound() bool {
	return e.CompoundCategory != ""
}

// NewLeaf builds a leaf structural exercise pointing at a catalogue entry.
func NewLeaf(exerciseName, progressionScheme, intensityProfile string) Exercise {
	return Exercise{
		ExerciseName:      exerciseName,
		ProgressionScheme: progressionScheme,
		IntensityProfile:  intensityProfile,
	}
}

// NewCompound builds a compound parent from ≥2 leaf sub-exercises. Returns
// an error if fewer than 2 subs are given or any sub is itself compound;
// compounds must never nest.
func NewCompound(exerciseName, kind, progressionScheme, intensityProfile string, subs []Exercise) (Exercise, error) {
	if len(subs) < 2 {
		return Exercise{}, errTooFewConstituents
	}
	for _, s := range subs {
		if s.IsCompound() {
			return Exercise{}, errNestedCompound
		}
	}
	return Exercise{
		ExerciseName:      exerciseName,
		CompoundCategory:  kind,
		SubExercises:      subs,
		ProgressionScheme: progressionScheme,
		IntensityProfile:  intensityProfile,
	}, nil
}

// Day is one Phase 1 structural day: its ordered block of exercises
// plus the classification metadata the orchestrator stamps.
type Day struct {
	DayNumber int
	Type      string // gym | home | outdoor | recovery
	Focus     string
	Exercises []Exercise
}
