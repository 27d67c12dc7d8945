package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Mareenraj/ATS/internal/bootstrap"
	"github.com/Mareenraj/ATS/internal/seed"
	"github.com/Mareenraj/ATS/internal/shared/config"
	"github.com/Mareenraj/ATS/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	telemetry.SetLevel(cfg.LogLevel)

	ctx := context.Background()
	app, err := bootstrap.NewApp(ctx, cfg)
	if err != nil {
		telemetry.Error("seed.bootstrap_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer app.Close()

	data, err := seed.Sample()
	if err != nil {
		telemetry.Error("seed.data_invalid", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	rep, err := app.Seeder().Load(ctx, data)
	if err != nil {
		telemetry.Error("seed.failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	telemetry.Info("seed.complete", map[string]any{
		"recruiter_created":  rep.RecruiterCreated,
		"jobs_created":       rep.JobsCreated,
		"applicants_created": rep.ApplicantsCreated,
	})
	fmt.Printf("Sample data loaded. Login with: username=%s, password=%s\n", data.Recruiter.Username, data.Recruiter.Password)
}
