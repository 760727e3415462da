package progression

import (
	"math"

	"github.com/wabbazzar/shredly/internal/rules"
	"github.com/wabbazzar/shredly/internal/weekparams"
)

// VolumeScheme grows sets every N weeks (clamped at a maximum) and grows
// reps by an even share of a total percentage; weight is held constant.
// Compound parents always use DensityScheme, so this scheme's sub-exercise
// branch is never exercised in practice.
type VolumeScheme struct{}

func (VolumeScheme) Type() SchemeType { return Volume }

func (VolumeScheme) Apply(week1 weekparams.Week, weekIndex int, prules rules.ProgressionRules, ctx ExerciseContext) (weekparams.Week, error) {
	steps := weekIndex - 1
	result := week1

	if result.Sets != nil && prules.SetsIncreaseEveryNWeeks > 0 {
		inc := steps / prules.SetsIncreaseEveryNWeeks
		ns := float64(*week1.Sets) + float64(inc)
		if prules.SetsMaximum > 0 && ns > prules.SetsMaximum {
			ns = prules.SetsMaximum
		}
		nsInt := int(ns)
		result.Sets = &nsInt
	}

	if result.Reps != nil && result.Reps.IsNumeric {
		totalSteps := ctx.TotalWeeks - 1
		if totalSteps > 0 {
			pct := prules.RepsIncreasePercentTotal / float64(totalSteps) * float64(steps)
			v := math.Round(week1.Reps.Numeric * (1 + pct/100))
			r := weekparams.NumericReps(v)
			result.Reps = &r
		}
	}

	return result, nil
}
