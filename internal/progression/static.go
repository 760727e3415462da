package progression

import (
	"github.com/wabbazzar/shredly/internal/rules"
	"github.com/wabbazzar/shredly/internal/weekparams"
)

// StaticScheme leaves week-k identical to week-1, the default for
// mobility/flexibility/cardio exercises.
type StaticScheme struct{}

func (StaticScheme) Type() SchemeType { return Static }

func (StaticScheme) Apply(week1 weekparams.Week, weekIndex int, prules rules.ProgressionRules, ctx ExerciseContext) (weekparams.Week, error) {
	return week1, nil
}
