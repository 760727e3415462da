// Command generate is the thin CLI collaborator around the generation
// engine: it loads the rules document and catalogue, builds a
// questionnaire from flags, runs the pipeline, validates the result, and
// prints the parameterized program as JSON. Persisting the program to the
// schedule store is opt-in via --save-schedule; the core itself never
// touches it. This command does not write the exercise-history log.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/wabbazzar/shredly/internal/bootstrap"
	"github.com/wabbazzar/shredly/internal/config"
	"github.com/wabbazzar/shredly/internal/generator"
	"github.com/wabbazzar/shredly/internal/questionnaire"
	"github.com/wabbazzar/shredly/internal/store"
	"github.com/wabbazzar/shredly/internal/validator"
)

// systemClock satisfies generator.Clock with the real wall clock. The
// engine never calls time.Now itself; this command reads the wall clock
// here and for the schedule-save timestamp below.
type systemClock struct{}

func (systemClock) NowUnixMilli() int64 { return time.Now().UnixMilli() }

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("generate: %v", err)
	}

	fs := flag.NewFlagSet("questionnaire", flag.ExitOnError)
	goalFlag := fs.String("goal", "build_muscle", "build_muscle | tone | lose_weight")
	experienceFlag := fs.String("experience", "intermediate", "complete_beginner | beginner | intermediate | advanced | expert")
	frequencyFlag := fs.Int("frequency", 4, "training days per week, 2..7")
	durationFlag := fs.Int("duration-minutes", 45, "session duration in minutes")
	equipmentFlag := fs.String("equipment", "full_gym", "full_gym | dumbbells_only | bodyweight_only")
	weeksFlag := fs.Int("weeks", 0, "program duration in weeks (0 = config default-weeks)")
	seedFlag := fs.Int64("seed", -1, "32-bit PRNG seed (negative = unseeded)")
	savePath := fs.String("save-schedule", "", "if set, persist the generated program to this sqlite file")
	// questionnaire flags are parsed independently of config.Load's flag set
	// since both read os.Args; Parse ignores flags it doesn't recognize only
	// when FlagSet.Parse is called with a pre-filtered slice, so config.Load
	// and this FlagSet must agree on the full flag surface in production use.
	_ = fs.Parse(os.Args[1:])

	q := questionnaire.Questionnaire{
		Goal:             questionnaire.Goal(*goalFlag),
		Experience:       questionnaire.Experience(*experienceFlag),
		TrainingFrequency: *frequencyFlag,
		DurationMinutes:  *durationFlag,
		EquipmentProfile: questionnaire.EquipmentProfile(*equipmentFlag),
		ProgramDuration:  *weeksFlag,
	}
	if *seedFlag >= 0 {
		seed := uint32(*seedFlag)
		q.Seed = &seed
	}
	if q.ProgramDuration == 0 {
		q.ProgramDuration = cfg.DefaultWeeks
	}

	inputs, err := bootstrap.Load(cfg.RulesPath, cfg.CataloguePath, cfg.BaseDir)
	if err != nil {
		log.Fatalf("generate: failed to load rules/catalogue: %v", err)
	}

	engine := generator.NewEngine(inputs.Rules, inputs.Catalogue, systemClock{})
	prog, err := engine.Generate(q)
	if err != nil {
		log.Fatalf("generate: unable to generate program, report this configuration: %v", err)
	}

	result := validator.Validate(prog, inputs.Catalogue)
	if !result.Valid() {
		log.Fatalf("generate: generated program failed validation: %s", result.Error())
	}
	for _, w := range result.Warnings {
		log.Printf("generate: warning: %s", w.String())
	}

	out, err := json.MarshalIndent(prog, "", "  ")
	if err != nil {
		log.Fatalf("generate: failed to marshal program: %v", err)
	}
	fmt.Println(string(out))

	if *savePath != "" {
		db, err := store.Open(store.Config{Path: *savePath, MigrationsPath: cfg.MigrationsPath})
		if err != nil {
			log.Fatalf("generate: failed to open schedule store: %v", err)
		}
		defer db.Close()

		scheduleStore := store.NewScheduleStore(db)
		scheduleID, err := scheduleStore.SaveProgram(context.Background(), prog, time.Now())
		if err != nil {
			log.Fatalf("generate: failed to save program: %v", err)
		}
		log.Printf("generate: saved program as schedule %s", scheduleID)
	}
}
