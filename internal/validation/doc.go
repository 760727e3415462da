/*
Package validation provides the Result/Issue accumulation type used by the
structural program validator of the generation engine.

# Validation Result

The Result type tracks validation outcomes including errors and warnings:

	result := validation.NewResult()
	if _, ok := rules["prescriptive_splits"]; !ok {
		result.AddError("configuration", "prescriptive_splits", "", "missing required key", nil)
	}
	if !result.Valid() {
		return nil, result.AsError()
	}

Result supports warnings for soft issues that don't prevent a program from
being returned, e.g. an empty rest day:

	result.AddWarning("empty_day", "days[5]", "", "day has no exercises", nil)
*/
package validation
