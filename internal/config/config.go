// Package config resolves process-level configuration for the generation
// engine's CLI driver: where the rules document and exercise catalogue
// live, and the defaults applied when a questionnaire omits them. It
// never reaches for a configuration framework: flags and environment
// variables only.
package config

import (
	"flag"
	"fmt"
	"os"
)

// Config holds the paths and defaults a CLI driver needs before it can
// construct a generation engine.
type Config struct {
	RulesPath      string
	CataloguePath  string
	BaseDir        string
	DefaultWeeks   int
	MigrationsPath string
	DatabasePath   string
}

// defaults are explicit rather than a silently-zero value.
const (
	defaultRulesPath      = "config/rules.json"
	defaultCataloguePath  = "config/catalogue.json"
	defaultWeeks          = 12
	defaultMigrationsPath = "internal/store/migrations"
	defaultDatabasePath   = "shredly.db"
)

// Load resolves configuration from flags first, then environment
// variables, then the package defaults above.
func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("shredly", flag.ContinueOnError)

	rulesPath := fs.String("rules", envOrDefault("SHREDLY_RULES_PATH", defaultRulesPath), "path to the rules document")
	cataloguePath := fs.String("catalogue", envOrDefault("SHREDLY_CATALOGUE_PATH", defaultCataloguePath), "path to the exercise catalogue")
	baseDir := fs.String("base-dir", envOrDefault("SHREDLY_BASE_DIR", "."), "base directory rules/catalogue paths are resolved within")
	weeks := fs.Int("default-weeks", defaultWeeksFromEnv(), "default program duration in weeks when a questionnaire omits one")
	migrationsPath := fs.String("migrations", envOrDefault("SHREDLY_MIGRATIONS_PATH", defaultMigrationsPath), "path to the schedule store's goose migrations")
	dbPath := fs.String("db", envOrDefault("SHREDLY_DB_PATH", defaultDatabasePath), "path to the schedule store's sqlite database")

	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("config: failed to parse flags: %w", err)
	}

	cfg := Config{
		RulesPath:      *rulesPath,
		CataloguePath:  *cataloguePath,
		BaseDir:        *baseDir,
		DefaultWeeks:   *weeks,
		MigrationsPath: *migrationsPath,
		DatabasePath:   *dbPath,
	}
	if cfg.DefaultWeeks <= 0 {
		return Config{}, fmt.Errorf("config: default-weeks must be positive, got %d", cfg.DefaultWeeks)
	}
	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func defaultWeeksFromEnv() int {
	if v, ok := os.LookupEnv("SHREDLY_DEFAULT_WEEKS"); ok {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil && n > 0 {
			return n
		}
	}
	return defaultWeeks
}
