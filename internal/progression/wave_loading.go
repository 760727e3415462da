package progression

import (
	"fmt"

	"github.com/wabbazzar/shredly/internal/rules"
	"github.com/wabbazzar/shredly/internal/weekparams"
	"github.com/wabbazzar/shredly/internal/weight"
)

// WaveLoadingScheme reads a per-week-index delta pattern keyed by the
// program's total week count. When the rules document carries no pattern
// for this program length, it falls back to LinearScheme.
type WaveLoadingScheme struct{}

func (WaveLoadingScheme) Type() SchemeType { return WaveLoading }

func (WaveLoadingScheme) Apply(week1 weekparams.Week, weekIndex int, prules rules.ProgressionRules, ctx ExerciseContext) (weekparams.Week, error) {
	key := fmt.Sprintf("%d", ctx.TotalWeeks)
	pattern, ok := prules.WavePatterns[key]
	idx := weekIndex - 1

	if !ok || idx >= len(pattern.WeightPercentDeltas) {
		return LinearScheme{}.Apply(week1, weekIndex, prules, ctx)
	}

	result := week1

	if result.Weight != nil && result.Weight.Kind == weight.KindPercentTrainingMax {
		w := *result.Weight
		w.Percent = week1.Weight.Percent + pattern.WeightPercentDeltas[idx]
		result.Weight = &w
	}

	if result.Reps != nil && result.Reps.IsNumeric && idx < len(pattern.RepsDeltas) {
		r := weekparams.NumericReps(week1.Reps.Numeric + pattern.RepsDeltas[idx])
		result.Reps = &r
	}

	return result, nil
}
