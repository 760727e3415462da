// Package validator implements the pure structural check of a generated
// program: no business semantics, only shape: required fields,
// referential integrity against the catalogue, and the mutual-exclusion
// invariants week parameters must hold.
package validator

import (
	"fmt"

	"github.com/wabbazzar/shredly/internal/catalogue"
	"github.com/wabbazzar/shredly/internal/parameterizer"
	"github.com/wabbazzar/shredly/internal/program"
	"github.com/wabbazzar/shredly/internal/validation"
)

// Validate runs every structural check against p and returns the
// accumulated errors and warnings.
func Validate(p *program.Program, cat *catalogue.Catalogue) *validation.Result {
	result := validation.NewResult()
	validateTopLevel(p, result)
	for dayNum, day := range p.Days {
		validateDay(dayNum, day, p.Weeks, cat, result)
	}
	return result
}

func validateTopLevel(p *program.Program, result *validation.Result) {
	if p.Name == "" {
		result.AddError("missing_field", "program", "name", "program name must be non-empty", nil)
	}
	if p.Version == "" {
		result.AddError("missing_field", "program", "version", "program version must be non-empty", nil)
	}
	if p.Weeks < 1 {
		result.AddError("invalid_value", "program", "weeks", "weeks must be >= 1", p.Weeks)
	}
	if p.DaysPerWeek < 1 || p.DaysPerWeek > 7 {
		result.AddError("invalid_value", "program", "days_per_week", "days_per_week must be in [1, 7]", p.DaysPerWeek)
	}
	if len(p.Metadata.Equipment) == 0 {
		result.AddError("missing_field", "program.metadata", "equipment", "metadata.equipment must be non-empty", nil)
	}
}

func validateDay(dayNum int, day program.Day, weeks int, cat *catalogue.Catalogue, result *validation.Result) {
	loc := fmt.Sprintf("days[%d]", dayNum)
	if day.DayNumber < 1 {
		result.AddError("invalid_value", loc, "day_number", "day_number must be >= 1", day.DayNumber)
	}
	if day.Focus == "" {
		result.AddError("missing_field", loc, "focus", "day focus must be non-empty", nil)
	}
	if day.Type == "" {
		result.AddError("missing_field", loc, "type", "day type must be non-empty", nil)
	}
	if len(day.Exercises) == 0 {
		result.AddWarning("empty_day", loc, "exercises", "day has no exercises", nil)
		return
	}
	for i, ex := range day.Exercises {
		validateExercise(fmt.Sprintf("%s.exercises[%d]", loc, i), ex, weeks, cat, result)
	}
}

func validateExercise(loc string, ex parameterizer.Exercise, weeks int, cat *catalogue.Catalogue, result *validation.Result) {
	if ex.Name == "" {
		result.AddError("missing_field", loc, "name", "exercise name must be non-empty", nil)
	}

	isCompoundParent := len(ex.SubExercises) > 0
	if !isCompoundParent {
		if _, ok := cat.Lookup(ex.Name); !ok {
			result.AddError("catalogue_reference", loc, "name", fmt.Sprintf("exercise %q is not in the catalogue", ex.Name), ex.Name)
		}
	}

	if len(ex.Weeks) != weeks {
		result.AddError("missing_week", loc, "weeks", fmt.Sprintf("expected %d weeks, found %d", weeks, len(ex.Weeks)), len(ex.Weeks))
	}

	for k, week := range ex.Weeks {
		weekLoc := fmt.Sprintf("%s.week_%d", loc, k+1)
		if err := week.CheckMutualExclusion(); err != nil {
			result.AddError("mutual_exclusion", weekLoc, "set_blocks", err.Error(), nil)
		}
		if !isCompoundParent {
			if err := week.CheckLeafContent(); err != nil {
				result.AddError("missing_leaf_content", weekLoc, "", err.Error(), nil)
			}
		}
	}

	for i, sub := range ex.SubExercises {
		validateExercise(fmt.Sprintf("%s.sub_exercises[%d]", loc, i), sub, weeks, cat, result)
	}
}
