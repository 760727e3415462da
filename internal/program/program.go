// Package program carries the generation engine's final output shape: a
// fully materialized, multi-week parameterized program, version "2.0.0",
// assembled by the orchestrator from Phase 1 and Phase 2 results.
package program

import "github.com/wabbazzar/shredly/internal/parameterizer"

// Version is the parameterized program document's version string.
const Version = "2.0.0"

// Metadata carries the descriptive tags the orchestrator stamps onto a
// generated program.
type Metadata struct {
	Difficulty       string   `json:"difficulty"`
	Equipment        []string `json:"equipment"`
	EstimatedMinutes int      `json:"estimated_duration_minutes"`
	Tags             []string `json:"tags"`
}

// Day is one parameterized day: its classification plus the fully
// parameterized exercises an earlier structural day resolved.
type Day struct {
	DayNumber int                      `json:"day_number"`
	Type      string                   `json:"type"` // gym | home | outdoor | recovery
	Focus     string                   `json:"focus"`
	Exercises []parameterizer.Exercise `json:"exercises"`
}

// Program is the assembled parameterized program: id, descriptive
// fields, and a sparse day_number → Day mapping (an absent day number is a
// rest day).
type Program struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Version     string      `json:"version"`
	Weeks       int         `json:"weeks"`
	DaysPerWeek int         `json:"days_per_week"`
	Metadata    Metadata    `json:"metadata"`
	Days        map[int]Day `json:"days"`
}
