// Package catalogue loads and exposes the static exercise catalogue the
// generation engine selects structural exercises from. The catalogue is
// read-only once loaded; nothing in the engine mutates it.
package catalogue

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/wabbazzar/shredly/internal/apperrors"
)

// Category is the coarse classification of an exercise.
type Category string

const (
	CategoryStrength    Category = "strength"
	CategoryBodyweight  Category = "bodyweight"
	CategoryMobility    Category = "mobility"
	CategoryFlexibility Category = "flexibility"
	CategoryCardio      Category = "cardio"
	CategoryLifestyle   Category = "lifestyle"
)

// Difficulty is the catalogue's complexity rating for an exercise.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

// ExternalLoad describes whether an exercise is ever assigned a weight.
type ExternalLoad string

const (
	ExternalLoadNever     ExternalLoad = "never"
	ExternalLoadSometimes ExternalLoad = "sometimes"
	ExternalLoadAlways    ExternalLoad = "always"
)

// Exercise is a single immutable, catalogue-owned record.
type Exercise struct {
	Name         string       `json:"-"`
	Category     Category     `json:"category"`
	MuscleGroups []string     `json:"muscle_groups"`
	Equipment    []string     `json:"equipment"`
	Difficulty   Difficulty   `json:"difficulty"`
	ExternalLoad ExternalLoad `json:"external_load"`
	Isometric    bool         `json:"isometric"`
	TypicalSets  int          `json:"typical_sets"`
	TypicalReps  string       `json:"typical_reps"`
	Variations   []string     `json:"variations"`
}

// HasMuscleGroup reports whether the exercise targets the given token.
func (e Exercise) HasMuscleGroup(token string) bool {
	for _, g := range e.MuscleGroups {
		if g == token {
			return true
		}
	}
	return false
}

// RequiresEquipment reports whether the exercise needs any equipment beyond
// "None".
func (e Exercise) RequiresEquipment() bool {
	for _, eq := range e.Equipment {
		if eq != "None" {
			return true
		}
	}
	return false
}

// EquipmentSatisfiedBy reports whether every piece of equipment this
// exercise requires is present in available (case-sensitive token match;
// "None" is always satisfied).
func (e Exercise) EquipmentSatisfiedBy(available map[string]bool) bool {
	for _, eq := range e.Equipment {
		if eq == "None" {
			continue
		}
		if !available[eq] {
			return false
		}
	}
	return true
}

// document is the on-disk shape: exercise_database.categories.<cat>.exercises.<name> → fields.
type document struct {
	ExerciseDatabase struct {
		Categories map[string]struct {
			Exercises map[string]Exercise `json:"exercises"`
		} `json:"categories"`
	} `json:"exercise_database"`
}

// Catalogue is the loaded, read-only exercise catalogue.
type Catalogue struct {
	byName map[string]Exercise
	order  []string
	loadID string
}

// LoadID returns a stable per-load identifier, assigned once when the
// catalogue was parsed. Purely a diagnostic handle for telling two loaded
// catalogue instances apart; it never affects selection or parameterization.
func (c *Catalogue) LoadID() string {
	return c.loadID
}

// Lookup returns the exercise for name and whether it was found.
func (c *Catalogue) Lookup(name string) (Exercise, bool) {
	e, ok := c.byName[name]
	return e, ok
}

// MustLookup returns the exercise for name or a catalogue-reference error
// naming context (e.g. the day/block that referenced it).
func (c *Catalogue) MustLookup(name, context string) (Exercise, error) {
	e, ok := c.byName[name]
	if !ok {
		return Exercise{}, apperrors.NewCatalogueReferenceError(name, context)
	}
	return e, nil
}

// All returns a flat, stably-ordered iteration of (name, exercise) pairs.
// Stable order matters: the engine must never rely on Go's randomized map
// iteration to preserve determinism under a seed.
func (c *Catalogue) All() []Exercise {
	out := make([]Exercise, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.byName[name])
	}
	return out
}

// Size returns the number of loaded exercises.
func (c *Catalogue) Size() int {
	return len(c.order)
}

// Load reads and parses the exercise catalogue document from path. path
// must resolve within baseDir; this guards against directory traversal in
// caller-supplied configuration.
func Load(path, baseDir string) (*Catalogue, error) {
	cleanPath, err := resolveWithinDir(path, baseDir)
	if err != nil {
		return nil, apperrors.NewConfigurationError("catalogue.path", err.Error())
	}

	raw, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, apperrors.NewConfigurationError("catalogue.path", fmt.Sprintf("cannot read catalogue file: %v", err))
	}

	return Parse(raw)
}

// Parse builds a Catalogue from an exercise catalogue document already read
// into memory. Load is a thin file-reading wrapper around this.
func Parse(raw []byte) (*Catalogue, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, apperrors.NewConfigurationError("catalogue", fmt.Sprintf("cannot parse catalogue JSON: %v", err))
	}

	cat := &Catalogue{byName: make(map[string]Exercise), loadID: uuid.New().String()}
	// Stable traversal: sort category keys, then exercise keys, so load
	// order (and therefore any downstream iteration) is reproducible.
	categoryNames := sortedKeys(doc.ExerciseDatabase.Categories)
	for _, catName := range categoryNames {
		exerciseNames := sortedExerciseKeys(doc.ExerciseDatabase.Categories[catName].Exercises)
		for _, name := range exerciseNames {
			ex := doc.ExerciseDatabase.Categories[catName].Exercises[name]
			ex.Name = name
			if _, dup := cat.byName[name]; dup {
				return nil, apperrors.NewConfigurationError("catalogue", fmt.Sprintf("duplicate exercise name: %s", name))
			}
			cat.byName[name] = ex
			cat.order = append(cat.order, name)
		}
	}

	if len(cat.order) == 0 {
		return nil, apperrors.NewConfigurationError("catalogue", "catalogue contains no exercises")
	}

	return cat, nil
}

func resolveWithinDir(path, baseDir string) (string, error) {
	clean := filepath.Clean(path)
	if !filepath.IsAbs(clean) {
		clean = filepath.Join(baseDir, clean)
	}
	rel, err := filepath.Rel(baseDir, clean)
	if err != nil || strings.HasPrefix(rel, "..") || strings.HasPrefix(rel, string(filepath.Separator)) {
		return "", fmt.Errorf("file path outside allowed directory: %s", path)
	}
	return clean, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedExerciseKeys(m map[string]Exercise) []string {
	return sortedKeys(m)
}
