package progression

import (
	"errors"
	"math"

	"github.com/wabbazzar/shredly/internal/rules"
	"github.com/wabbazzar/shredly/internal/weekparams"
)

// ErrIntervalSubMissingTimes reports an interval sub-exercise week-1 that
// lacks the work_time/rest_time pair the interval shape requires.
var ErrIntervalSubMissingTimes = errors.New("interval sub-exercise week-1 is missing work_time or rest_time")

// DensityScheme grows work_time/reps and shrinks rest for metabolic work.
// Three distinct branches:
//   - interval sub-exercise: work_time and rest_time step by fixed
//     per-week second deltas, rest clamped at a floor.
//   - compound parent: work_time is invariant across weeks; the density
//     lives entirely in the sub-exercises' own recursion.
//   - regular exercise: work_time and reps grow by an even share of a
//     total percentage spread across weeks 2..N; rest shrinks like linear.
type DensityScheme struct{}

func (DensityScheme) Type() SchemeType { return Density }

func (DensityScheme) Apply(week1 weekparams.Week, weekIndex int, prules rules.ProgressionRules, ctx ExerciseContext) (weekparams.Week, error) {
	steps := weekIndex - 1

	if ctx.IsIntervalSub {
		if week1.WorkTime == nil || week1.RestTime == nil {
			return weekparams.Week{}, ErrIntervalSubMissingTimes
		}
		wt := week1.WorkTime.Add(prules.IntervalWorkDeltaSeconds * float64(steps)).Round()
		rt := week1.RestTime.Add(prules.IntervalRestDeltaSeconds * float64(steps))
		rt = rt.ClampMin(prules.RestTimeMinimumSeconds).Round()
		result := weekparams.NewInterval(wt, rt)
		result.Weight = week1.Weight
		return result, nil
	}

	if ctx.IsCompoundParent {
		// Parent work_time is invariant across weeks; density lives in the
		// sub-exercises' own recursion.
		return week1, nil
	}

	result := week1
	totalSteps := ctx.TotalWeeks - 1

	if result.WorkTime != nil && totalSteps > 0 {
		pct := prules.WorkTimeIncreasePercentTotal / float64(totalSteps) * float64(steps)
		wt := weekparams.TimeValue{Value: week1.WorkTime.Value * (1 + pct/100), Unit: week1.WorkTime.Unit}.Round()
		result.WorkTime = &wt
	}

	if result.Reps != nil && result.Reps.IsNumeric && totalSteps > 0 {
		pct := prules.RepsIncreasePercentTotal / float64(totalSteps) * float64(steps)
		v := math.Round(week1.Reps.Numeric * (1 + pct/100))
		r := weekparams.NumericReps(v)
		result.Reps = &r
	}

	if result.RestTime != nil {
		rt := applyRestDelta(*result.RestTime, prules, steps)
		result.RestTime = &rt
	}

	return result, nil
}
