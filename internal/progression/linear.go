package progression

import (
	"github.com/wabbazzar/shredly/internal/rules"
	"github.com/wabbazzar/shredly/internal/weekparams"
	"github.com/wabbazzar/shredly/internal/weight"
)

// LinearScheme applies fixed per-week deltas: reps decrease, percent of
// training max increases, rest decreases: the strength-oriented default
// progression.
type LinearScheme struct{}

func (LinearScheme) Type() SchemeType { return Linear }

func (LinearScheme) Apply(week1 weekparams.Week, weekIndex int, prules rules.ProgressionRules, ctx ExerciseContext) (weekparams.Week, error) {
	steps := weekIndex - 1
	result := week1

	if result.Reps != nil && result.Reps.IsNumeric {
		v := result.Reps.Numeric - prules.RepsDeltaPerWeek*float64(steps)
		if v < prules.RepsMinimum {
			v = prules.RepsMinimum
		}
		r := weekparams.NumericReps(v)
		result.Reps = &r
	}

	if result.Weight != nil && result.Weight.Kind == weight.KindPercentTrainingMax {
		w := *result.Weight
		w.Percent = week1.Weight.Percent + prules.WeightPercentDeltaPerWeek*float64(steps)
		result.Weight = &w
	}

	if result.RestTime != nil {
		rt := applyRestDelta(*result.RestTime, prules, steps)
		result.RestTime = &rt
	}

	return result, nil
}
