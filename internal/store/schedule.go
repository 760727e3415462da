package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wabbazzar/shredly/internal/program"
)

// Schedule is the scheduling metadata a collaborator layers on top of a
// generated program: which program it wraps, whether it's the user's
// active program, and the user's current position within it.
type Schedule struct {
	ID          string
	ProgramID   string
	IsActive    bool
	StartDate   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CurrentWeek int
	CurrentDay  int
}

// ScheduleStore persists generated programs and their schedule metadata.
// The core's generator never imports this package; it is a collaborator
// that consumes the core's output. The core itself never reads or writes
// this store.
type ScheduleStore struct {
	db *sql.DB
}

// NewScheduleStore wraps an already-open, already-migrated database handle.
func NewScheduleStore(db *sql.DB) *ScheduleStore {
	return &ScheduleStore{db: db}
}

// SaveProgram inserts a new schedule row wrapping p, inactive by default,
// and returns the generated schedule id.
func (s *ScheduleStore) SaveProgram(ctx context.Context, p *program.Program, now time.Time) (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("store: failed to marshal program %q: %w", p.ID, err)
	}

	scheduleID := uuid.New().String()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO schedules (id, program_id, program_json, is_active, created_at, updated_at, current_week, current_day)
		VALUES (?, ?, ?, 0, ?, ?, 1, 1)
	`, scheduleID, p.ID, string(raw), now.UTC().Format(time.RFC3339), now.UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("store: failed to insert schedule for program %q: %w", p.ID, err)
	}
	return scheduleID, nil
}

// SetActive marks scheduleID as the user's active program, deactivating
// every other schedule row (a user has at most one active program).
func (s *ScheduleStore) SetActive(ctx context.Context, scheduleID string, startDate, now time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE schedules SET is_active = 0, updated_at = ? WHERE is_active = 1`, now.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("store: failed to deactivate existing schedules: %w", err)
	}
	res, err := tx.ExecContext(ctx, `
		UPDATE schedules SET is_active = 1, start_date = ?, updated_at = ? WHERE id = ?
	`, startDate.UTC().Format(time.RFC3339), now.UTC().Format(time.RFC3339), scheduleID)
	if err != nil {
		return fmt.Errorf("store: failed to activate schedule %q: %w", scheduleID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("store: no schedule found with id %q", scheduleID)
	}
	return tx.Commit()
}

// AdvanceProgress updates a schedule's current week/day, e.g. after the
// user completes a workout day.
func (s *ScheduleStore) AdvanceProgress(ctx context.Context, scheduleID string, week, day int, now time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE schedules SET current_week = ?, current_day = ?, updated_at = ? WHERE id = ?
	`, week, day, now.UTC().Format(time.RFC3339), scheduleID)
	if err != nil {
		return fmt.Errorf("store: failed to advance schedule %q: %w", scheduleID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("store: no schedule found with id %q", scheduleID)
	}
	return nil
}

// nextPosition computes the schedule's next (week, day) after completing a
// training day: day increments within a week; once it exceeds daysPerWeek
// it resets to 1 and the week increments; once the week exceeds the
// program's total weeks it clamps at the final day of the final week
// rather than wrapping, since a generated program's cycle does not repeat.
func nextPosition(currentWeek, currentDay, daysPerWeek, totalWeeks int) (week, day int, programCompleted bool) {
	day = currentDay + 1
	week = currentWeek
	if day > daysPerWeek {
		day = 1
		week++
	}
	if week > totalWeeks {
		return totalWeeks, daysPerWeek, true
	}
	return week, day, false
}

// AdvanceCompletedDay advances scheduleID's position by one training day,
// rolling over into the next week per nextPosition, and reports whether
// the program has been fully completed.
func (s *ScheduleStore) AdvanceCompletedDay(ctx context.Context, scheduleID string, daysPerWeek, totalWeeks int, now time.Time) (completed bool, err error) {
	_, sched, err := s.LoadProgram(ctx, scheduleID)
	if err != nil {
		return false, err
	}
	week, day, completed := nextPosition(sched.CurrentWeek, sched.CurrentDay, daysPerWeek, totalWeeks)
	if err := s.AdvanceProgress(ctx, scheduleID, week, day, now); err != nil {
		return false, err
	}
	return completed, nil
}

// LoadProgram retrieves the program and schedule metadata for scheduleID.
func (s *ScheduleStore) LoadProgram(ctx context.Context, scheduleID string) (*program.Program, Schedule, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, program_id, program_json, is_active, start_date, created_at, updated_at, current_week, current_day
		FROM schedules WHERE id = ?
	`, scheduleID)

	var (
		sched     Schedule
		rawJSON   string
		startDate sql.NullString
		createdAt string
		updatedAt string
	)
	if err := row.Scan(&sched.ID, &sched.ProgramID, &rawJSON, &sched.IsActive, &startDate, &createdAt, &updatedAt, &sched.CurrentWeek, &sched.CurrentDay); err != nil {
		if err == sql.ErrNoRows {
			return nil, Schedule{}, fmt.Errorf("store: no schedule found with id %q", scheduleID)
		}
		return nil, Schedule{}, fmt.Errorf("store: failed to load schedule %q: %w", scheduleID, err)
	}

	sched.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	sched.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	if startDate.Valid {
		sched.StartDate, _ = time.Parse(time.RFC3339, startDate.String)
	}

	var p program.Program
	if err := json.Unmarshal([]byte(rawJSON), &p); err != nil {
		return nil, Schedule{}, fmt.Errorf("store: failed to unmarshal program for schedule %q: %w", scheduleID, err)
	}
	return &p, sched, nil
}
