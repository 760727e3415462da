// Package generator implements the orchestrator: the single
// entry point that, over rules and catalogue the caller loaded once, runs Phase 1 and Phase
// 2 for every training day, and assembles the final parameterized
// program. Generation is strictly synchronous and single-threaded per
// call; every phase is a pure function over immutable inputs.
package generator

import (
	"fmt"
	"strings"

	"github.com/wabbazzar/shredly/internal/catalogue"
	"github.com/wabbazzar/shredly/internal/dayplan"
	"github.com/wabbazzar/shredly/internal/metadata"
	"github.com/wabbazzar/shredly/internal/parameterizer"
	"github.com/wabbazzar/shredly/internal/program"
	"github.com/wabbazzar/shredly/internal/questionnaire"
	"github.com/wabbazzar/shredly/internal/randgen"
	"github.com/wabbazzar/shredly/internal/rules"
	"github.com/wabbazzar/shredly/internal/selector"
)

// Clock supplies the wall-clock timestamp used in a generated program's id.
// The epoch-millisecond suffix is the only non-deterministic field a
// generated program carries; injecting the clock lets tests pin it.
type Clock interface {
	NowUnixMilli() int64
}

// Engine bundles the rules document and catalogue loaded once per process
// and exposes Generate as the sole entry point.
type Engine struct {
	Rules     *rules.Rules
	Catalogue *catalogue.Catalogue
	Clock     Clock
	Metadata  *metadata.Service
}

// NewEngine builds an Engine from an already-loaded rules document and
// catalogue. Loading itself (rules.Load / catalogue.Load, memoized once
// per process) is the caller's responsibility. The metadata service is
// built over cat and warmed eagerly here, per §5's "warm it eagerly on
// startup to sidestep concurrency concerns entirely".
func NewEngine(r *rules.Rules, cat *catalogue.Catalogue, clock Clock) *Engine {
	ms := metadata.NewService(cat)
	ms.WarmAll()
	return &Engine{Rules: r, Catalogue: cat, Clock: clock, Metadata: ms}
}

// Generate runs the full pipeline end to end for one questionnaire,
// producing a fully parameterized program.
func (e *Engine) Generate(q questionnaire.Questionnaire) (*program.Program, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("generator: invalid questionnaire: %w", err)
	}

	rng := seedFor(q)
	totalWeeks := q.ResolvedWeeks()

	profile := q.ResolvedProfile()

	em, err := e.Rules.ExperienceModifierFor(string(q.Experience))
	if err != nil {
		return nil, err
	}

	focuses, err := e.Rules.GetPrescriptiveSplit(string(q.Goal), q.TrainingFrequency)
	if err != nil {
		return nil, err
	}

	days := make(map[int]program.Day, len(focuses))
	for i, focus := range focuses {
		dayNumber := i + 1

		blocks, err := dayplan.BuildDayStructure(focus, profile, q.DurationMinutes, e.Rules)
		if err != nil {
			return nil, err
		}

		structuralExercises, err := selector.Day(focus, blocks, q, e.Rules, e.Catalogue, rng)
		if err != nil {
			return nil, err
		}

		exercises := make([]parameterizer.Exercise, 0, len(structuralExercises))
		for _, se := range structuralExercises {
			pe, err := parameterizer.Parameterize(se, e.Catalogue, totalWeeks, e.Rules, em, e.Metadata)
			if err != nil {
				return nil, err
			}
			exercises = append(exercises, pe)
		}

		days[dayNumber] = program.Day{
			DayNumber: dayNumber,
			Type:      dayTypeFor(profile),
			Focus:     focus,
			Exercises: exercises,
		}
	}

	return &program.Program{
		ID:          generateID(q, e.Clock),
		Name:        programName(q.Goal, q.Experience),
		Description: fmt.Sprintf("Generated %d-week program for %s (%s)", totalWeeks, q.Goal, q.Experience),
		Version:     program.Version,
		Weeks:       totalWeeks,
		DaysPerWeek: q.TrainingFrequency,
		Metadata: program.Metadata{
			Difficulty:       string(q.Experience),
			Equipment:        q.ResolvedEquipmentTokens(),
			EstimatedMinutes: q.DurationMinutes,
			Tags:             []string{string(q.Goal), string(q.Experience), fmt.Sprintf("%dx", q.TrainingFrequency), string(profile)},
		},
		Days: days,
	}, nil
}

// seedFor builds the seeded (or system) random source for one generation
// run. The PRNG has thread-local scope: each call gets its own
// instance.
func seedFor(q questionnaire.Questionnaire) *randgen.Source {
	if q.Seed != nil {
		return randgen.NewSeeded(*q.Seed)
	}
	return randgen.NewSystem()
}

// dayTypeFor assigns a structural day's classification from the
// questionnaire's equipment profile: full gym access reads
// as a gym day, bodyweight-only as outdoor, everything else as home.
func dayTypeFor(profile questionnaire.EquipmentProfile) string {
	switch profile {
	case questionnaire.ProfileFullGym:
		return "gym"
	case questionnaire.ProfileBodyweightOnly:
		return "outdoor"
	default:
		return "home"
	}
}

// generateID builds the program id "workout_<goal4>_<exp3>_<epoch_ms>":
// truncated goal and experience tokens plus the clock's epoch millisecond
// reading, the only non-deterministic field the id carries.
func generateID(q questionnaire.Questionnaire, clock Clock) string {
	goal4 := truncate(string(q.Goal), 4)
	exp3 := truncate(string(q.Experience), 3)
	var millis int64
	if clock != nil {
		millis = clock.NowUnixMilli()
	}
	return fmt.Sprintf("workout_%s_%s_%d", goal4, exp3, millis)
}

func truncate(s string, n int) string {
	s = strings.ToLower(s)
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func programName(goal questionnaire.Goal, exp questionnaire.Experience) string {
	return fmt.Sprintf("%s %s Program", titleCase(string(exp)), titleCase(string(goal)))
}

func titleCase(s string) string {
	parts := strings.Split(s, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
