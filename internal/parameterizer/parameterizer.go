// Package parameterizer implements Phase 2: for each structural
// exercise, compute the week-1 baseline from its intensity profile, then
// apply its progression scheme across weeks 2..N, recursing one level into
// any sub-exercises. Every rule here is a pure function of the structural
// input plus the rules document; no hidden state, no I/O.
package parameterizer

import (
	"math"

	"github.com/wabbazzar/shredly/internal/catalogue"
	"github.com/wabbazzar/shredly/internal/metadata"
	"github.com/wabbazzar/shredly/internal/progression"
	"github.com/wabbazzar/shredly/internal/rules"
	"github.com/wabbazzar/shredly/internal/structural"
	"github.com/wabbazzar/shredly/internal/weekparams"
	"github.com/wabbazzar/shredly/internal/weight"
)

// Exercise is Phase 2's output shape: a name, optional compound
// category, one Week per program week (index 0 == week 1), and optional
// one-level-deep sub-exercises.
type Exercise struct {
	Name         string            `json:"name"`
	Category     string            `json:"category,omitempty"`
	Weeks        []weekparams.Week `json:"weeks"`
	SubExercises []Exercise        `json:"sub_exercises,omitempty"`
}

var schemes = progression.DefaultFactory()

// Parameterize computes the full multi-week parameterization for one
// top-level structural exercise (leaf or compound parent), recursing into
// its sub-exercises. ms answers the §4.3 metadata service's
// "assign weight on generation?" question; the parameterizer never
// re-derives that decision from catalogue flags itself.
func Parameterize(ex structural.Exercise, cat *catalogue.Catalogue, totalWeeks int, r *rules.Rules, em rules.ExperienceModifier, ms *metadata.Service) (Exercise, error) {
	category := ex.CompoundCategory
	assignWeight := false
	if !ex.IsCompound() {
		catEx, err := cat.MustLookup(ex.ExerciseName, "parameterizer.top")
		if err != nil {
			return Exercise{}, err
		}
		category = string(catEx.Category)
		assignWeight = ms.AssignWeightOnGeneration(ex.ExerciseName)
	}

	ip, err := r.IntensityProfileFor(category, ex.IntensityProfile)
	if err != nil {
		return Exercise{}, err
	}

	week1 := weekOneTop(ip, em, category, ex.IsCompound(), assignWeight)

	prules, err := r.ProgressionRulesFor(ex.ProgressionScheme)
	if err != nil {
		return Exercise{}, err
	}
	scheme, err := schemes.Create(progression.SchemeType(ex.ProgressionScheme))
	if err != nil {
		return Exercise{}, err
	}

	weeks, err := projectWeeks(week1, scheme, prules, progression.ExerciseContext{
		IsCompoundParent: ex.IsCompound(),
		TotalWeeks:       totalWeeks,
	}, totalWeeks)
	if err != nil {
		return Exercise{}, err
	}

	out := Exercise{Name: ex.ExerciseName, Category: ex.CompoundCategory, Weeks: weeks}

	if len(ex.SubExercises) > 0 {
		subs := make([]Exercise, 0, len(ex.SubExercises))
		for _, sub := range ex.SubExercises {
			pSub, err := parameterizeSub(sub, ip, ex.IntensityProfile, ex.ProgressionScheme, cat, totalWeeks, r, em, ms)
			if err != nil {
				return Exercise{}, err
			}
			subs = append(subs, pSub)
		}
		out.SubExercises = subs
	}

	return out, nil
}

// parameterizeSub implements sub-exercise recursion: resolve the
// sub's own catalogue category, fall back through moderate/heavy/first
// when the parent's profile name doesn't exist for that category, then
// compute week 1 and project weeks 2..N using the parent's progression
// scheme (subs never carry their own scheme/profile in the structural
// model; they inherit the parent's).
func parameterizeSub(
	sub structural.Exercise,
	parentProfile rules.IntensityProfile,
	parentProfileName string,
	parentScheme string,
	cat *catalogue.Catalogue,
	totalWeeks int,
	r *rules.Rules,
	em rules.ExperienceModifier,
	ms *metadata.Service,
) (Exercise, error) {
	catEx, err := cat.MustLookup(sub.ExerciseName, "parameterizer.sub")
	if err != nil {
		return Exercise{}, err
	}
	subCategory := string(catEx.Category)
	assignWeight := ms.AssignWeightOnGeneration(sub.ExerciseName)

	subOverrideTime := parentProfile.SubWorkMode == "time"

	// The sub's own week-1 shape (when not under the time override) still
	// needs a profile resolved against its own catalogue category, since a
	// compound parent's profile (e.g. "moderate" for category "emom") may
	// not exist for category "strength" at all.
	ip := resolveSubProfile(subCategory, parentProfileName, r)

	week1 := weekOneSub(ip, parentProfile, em, subCategory, subOverrideTime, assignWeight)

	prules, err := r.ProgressionRulesFor(parentScheme)
	if err != nil {
		return Exercise{}, err
	}
	scheme, err := schemes.Create(progression.SchemeType(parentScheme))
	if err != nil {
		return Exercise{}, err
	}

	weeks, err := projectWeeks(week1, scheme, prules, progression.ExerciseContext{
		IsIntervalSub: subOverrideTime,
		TotalWeeks:    totalWeeks,
	}, totalWeeks)
	if err != nil {
		return Exercise{}, err
	}

	return Exercise{Name: sub.ExerciseName, Weeks: weeks}, nil
}

// resolveSubProfile implements sub-exercise fallback chain: try the
// parent's profile name against the sub's own category, then "moderate",
// then "heavy", then the first available profile for that category.
func resolveSubProfile(subCategory, parentProfileName string, r *rules.Rules) rules.IntensityProfile {
	candidates := []string{parentProfileName, "moderate", "heavy"}
	for _, name := range candidates {
		if name == "" {
			continue
		}
		if r.HasIntensityProfile(subCategory, name) {
			ip, _ := r.IntensityProfileFor(subCategory, name)
			return ip
		}
	}
	if first, ok := r.FirstIntensityProfileFor(subCategory); ok {
		ip, _ := r.IntensityProfileFor(subCategory, first)
		return ip
	}
	return rules.IntensityProfile{}
}

// weekOneTop implements apply_intensity_profile for a top-level
// (leaf or compound-parent) structural exercise.
func weekOneTop(ip rules.IntensityProfile, em rules.ExperienceModifier, category string, isCompoundParent, assignWeight bool) weekparams.Week {
	isIntervalParent := isCompoundParent && category == "interval"

	sets := scaledSets(ip, em)
	reps := scaledReps(ip, em, false)

	var workTime *weekparams.TimeValue
	if !isIntervalParent {
		workTime = resolveWorkTime(ip)
	}

	var restTime *weekparams.TimeValue
	if !isCompoundParent {
		restTime = resolveRestTime(ip, em)
	}

	var w weekparams.Week
	switch {
	case isCompoundParent:
		w = weekparams.NewCompoundParent(sets, workTime)
	case reps != nil:
		s := 0
		if sets != nil {
			s = *sets
		}
		w = weekparams.NewStrengthSet(s, *reps)
	case workTime != nil:
		w = weekparams.NewTimed(sets, *workTime, nil)
	default:
		w = weekparams.NewStrengthSet(valOrZero(sets), weekparams.NumericReps(0))
	}

	if restTime != nil {
		w = w.WithRestTime(*restTime)
	}

	if assignWeight && !isCompoundParent {
		w = applyWeightPrescription(w, ip, em)
	}

	return w
}

// weekOneSub implements apply_intensity_profile's sub-exercise branch: the
// interval override reads directly from the parent's profile fields and
// skips both the experience rest multiplier and reps.
func weekOneSub(ip rules.IntensityProfile, parentProfile rules.IntensityProfile, em rules.ExperienceModifier, subCategory string, subOverrideTime, assignWeight bool) weekparams.Week {
	if subOverrideTime {
		wt := weekparams.TimeValue{Value: valOr(parentProfile.SubWorkTimeSeconds), Unit: weekparams.Seconds}
		rt := weekparams.TimeValue{Value: valOr(parentProfile.SubRestTimeSeconds), Unit: weekparams.Seconds}
		w := weekparams.NewInterval(wt, rt)
		if assignWeight {
			w = applyWeightPrescription(w, ip, em)
		}
		return w
	}

	reps := scaledReps(ip, em, false)
	var w weekparams.Week
	if reps != nil {
		w = weekparams.NewStrengthSet(0, *reps)
		// subs never carry sets; strip it back out.
		w.Sets = nil
	} else if wt := resolveWorkTime(ip); wt != nil {
		w = weekparams.NewTimed(nil, *wt, nil)
	} else {
		w = weekparams.NewStrengthSet(0, weekparams.NumericReps(0))
		w.Sets = nil
	}

	if assignWeight {
		w = applyWeightPrescription(w, ip, em)
	}
	return w
}

func applyWeightPrescription(w weekparams.Week, ip rules.IntensityProfile, em rules.ExperienceModifier) weekparams.Week {
	switch em.WeightType {
	case "descriptor":
		if ip.WeightDescriptor != "" {
			w = w.WithWeight(weight.Qualitative(ip.WeightDescriptor))
		}
	case "percent_tm":
		if ip.WeightPercentTM != nil {
			w = w.WithWeight(weight.PercentTrainingMax(*ip.WeightPercentTM))
		}
	}
	return w
}

func scaledSets(ip rules.IntensityProfile, em rules.ExperienceModifier) *int {
	if ip.Sets == nil {
		return nil
	}
	v := int(math.Round(*ip.Sets * em.VolumeMultiplier))
	return &v
}

func scaledReps(ip rules.IntensityProfile, em rules.ExperienceModifier, skip bool) *weekparams.Reps {
	if skip {
		return nil
	}
	numeric, isNumeric, literal, ok := ip.RepsValue()
	if !ok {
		return nil
	}
	if isNumeric {
		r := weekparams.NumericReps(math.Round(numeric * em.VolumeMultiplier))
		return &r
	}
	r := weekparams.LiteralReps(literal)
	return &r
}

func resolveWorkTime(ip rules.IntensityProfile) *weekparams.TimeValue {
	switch {
	case ip.BlockTimeMinutes != nil:
		return &weekparams.TimeValue{Value: *ip.BlockTimeMinutes, Unit: weekparams.Minutes}
	case ip.WorkTimeSeconds != nil:
		return &weekparams.TimeValue{Value: *ip.WorkTimeSeconds, Unit: weekparams.Seconds}
	case ip.WorkTimeMinutes != nil:
		return &weekparams.TimeValue{Value: *ip.WorkTimeMinutes, Unit: weekparams.Minutes}
	case ip.BaseWorkTimeMinutes != nil:
		unit := weekparams.Minutes
		if ip.BaseWorkTimeUnit == "seconds" {
			unit = weekparams.Seconds
		}
		return &weekparams.TimeValue{Value: *ip.BaseWorkTimeMinutes, Unit: unit}
	default:
		return nil
	}
}

func resolveRestTime(ip rules.IntensityProfile, em rules.ExperienceModifier) *weekparams.TimeValue {
	var raw weekparams.TimeValue
	switch {
	case ip.RestTimeSeconds != nil:
		raw = weekparams.TimeValue{Value: *ip.RestTimeSeconds, Unit: weekparams.Seconds}
	case ip.RestTimeMinutes != nil:
		raw = weekparams.TimeValue{Value: *ip.RestTimeMinutes, Unit: weekparams.Minutes}
	default:
		return nil
	}
	scaled := weekparams.TimeValue{Value: raw.Value * em.RestTimeMultiplier, Unit: raw.Unit}.Round()
	return &scaled
}

func projectWeeks(week1 weekparams.Week, scheme progression.Scheme, prules rules.ProgressionRules, ctx progression.ExerciseContext, totalWeeks int) ([]weekparams.Week, error) {
	weeks := make([]weekparams.Week, totalWeeks)
	weeks[0] = week1
	for k := 2; k <= totalWeeks; k++ {
		wk, err := scheme.Apply(week1, k, prules, ctx)
		if err != nil {
			return nil, err
		}
		weeks[k-1] = wk
	}
	return weeks, nil
}

func valOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func valOr(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
