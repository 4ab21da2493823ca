package main

import (
	"context"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"likertlab/adapters/postgres"
	"likertlab/domain/core"
	"likertlab/domain/survey"
	"likertlab/internal"
	"likertlab/internal/config"
	"likertlab/internal/errors"
	"likertlab/internal/testkit"
	"likertlab/ports"
	"likertlab/ui"
)

func main() {
	// Load .env file if present (ignore error for production)
	_ = godotenv.Load()

	logger := internal.NewDefaultLogger()

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	genConfig := testkit.DefaultSurveyConfig()
	genConfig.Seed = appConfig.Survey.Seed
	genConfig.RespondentCount = appConfig.Survey.Respondents

	dataset, err := testkit.NewSurveyGenerator(genConfig).Generate()
	if err != nil {
		log.Fatalf("Failed to generate survey dataset: %v", err)
	}
	logger.Info("Generated %d simulated responses (seed %d)", dataset.Len(), genConfig.Seed)

	// Persist the generated dataset when a database is configured, and
	// keep the repository around so the stored-dataset endpoints work.
	var repo ports.ResponseRepository
	if appConfig.Database.URL != "" {
		db, err := sqlx.Connect("postgres", appConfig.Database.URL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		repo = postgres.NewResponseRepository(db)
		if err := persistDataset(repo, dataset, logger); err != nil {
			log.Fatalf("Failed to persist dataset: %v", err)
		}
	}

	webApp := ui.NewApp(ui.Config{
		Port:  appConfig.Server.Port,
		Title: appConfig.Report.Title,
	}, dataset, repo, logger)

	if err := webApp.Start(appConfig.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// persistDataset stores the generated dataset so later runs can audit
// exactly which responses a report was built from.
func persistDataset(repo ports.ResponseRepository, dataset *survey.Dataset, logger *internal.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := repo.EnsureSchema(ctx); err != nil {
		return errors.Wrap(err, "failed to ensure schema")
	}

	id := core.NewDatasetID()
	name := "simulated-" + time.Now().UTC().Format(time.RFC3339)
	if err := repo.SaveDataset(ctx, id, name, dataset); err != nil {
		return err
	}
	logger.Info("Stored dataset %s (%s)", id, name)
	return nil
}
