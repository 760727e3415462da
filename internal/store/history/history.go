// Package history appends completed-set rows to the exercise-history log
// (20-column schema). Like internal/store, this is a collaborator the
// generation engine never imports: the core hands back an immutable
// program, and a caller decides whether and how to log execution (no
// command in this repository calls this package). The core does not read
// or write this log.
package history

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/wabbazzar/shredly/internal/catalogue"
)

// Header is the fixed 20-column schema.
var Header = []string{
	"date", "timestamp", "workout_program_id", "week_number", "day_number",
	"exercise_name", "exercise_order", "is_compound_parent", "compound_parent_name",
	"set_number", "reps", "weight", "weight_unit", "work_time", "rest_time",
	"tempo", "rpe", "rir", "completed", "notes",
}

// Row is one logged set. ExerciseName must either exist in the catalogue
// or be a compound parent; a sub-exercise row links back to its parent via
// CompoundParentName, per referential-integrity rule.
type Row struct {
	Date               string
	Timestamp          string
	WorkoutProgramID   string
	WeekNumber         int
	DayNumber          int
	ExerciseName       string
	ExerciseOrder      int
	IsCompoundParent   bool
	CompoundParentName string
	SetNumber          int
	Reps               string
	Weight             string
	WeightUnit         string
	WorkTime           string
	RestTime           string
	Tempo              string
	RPE                string
	RIR                string
	Completed          bool
	Notes              string
}

func (r Row) toRecord() []string {
	return []string{
		r.Date, r.Timestamp, r.WorkoutProgramID,
		strconv.Itoa(r.WeekNumber), strconv.Itoa(r.DayNumber),
		r.ExerciseName, strconv.Itoa(r.ExerciseOrder), strconv.FormatBool(r.IsCompoundParent),
		r.CompoundParentName, strconv.Itoa(r.SetNumber), r.Reps, r.Weight, r.WeightUnit,
		r.WorkTime, r.RestTime, r.Tempo, r.RPE, r.RIR, strconv.FormatBool(r.Completed), r.Notes,
	}
}

// Validate enforces referential-integrity rule: ExerciseName must
// either be a catalogue entry or a compound parent (rows belonging to a
// compound's sub-exercises link via CompoundParentName instead of
// re-validating the parent's synthesized name against the catalogue).
func (r Row) Validate(cat *catalogue.Catalogue) error {
	if r.CompoundParentName != "" {
		return nil
	}
	if r.IsCompoundParent {
		return nil
	}
	if _, ok := cat.Lookup(r.ExerciseName); !ok {
		return fmt.Errorf("history: exercise %q is neither a catalogue entry nor a compound parent/sub-row", r.ExerciseName)
	}
	return nil
}

// Log is an append-only CSV writer over the 20-column schema.
type Log struct {
	path string
}

// Open returns a Log targeting path, writing the header row if the file
// does not yet exist.
func Open(path string) (*Log, error) {
	_, err := os.Stat(path)
	needsHeader := os.IsNotExist(err)

	if needsHeader {
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("history: failed to create log file: %w", err)
		}
		w := csv.NewWriter(f)
		if err := w.Write(Header); err != nil {
			f.Close()
			return nil, fmt.Errorf("history: failed to write header: %w", err)
		}
		w.Flush()
		f.Close()
	}

	return &Log{path: path}, nil
}

// Append validates and appends rows to the log, in order, in a single
// write. The log is never rewritten or truncated; only appended to.
func (l *Log) Append(cat *catalogue.Catalogue, rows []Row) error {
	for i, r := range rows {
		if err := r.Validate(cat); err != nil {
			return fmt.Errorf("history: row %d: %w", i, err)
		}
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("history: failed to open log for append: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, r := range rows {
		if err := w.Write(r.toRecord()); err != nil {
			return fmt.Errorf("history: failed to write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
