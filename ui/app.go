package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"likertlab/adapters/excel"
	"likertlab/app"
	"likertlab/domain/survey"
	"likertlab/internal"
	"likertlab/ports"
)

// App represents the survey report web application
type App struct {
	router  *chi.Mux
	svc     *app.FrequencyService
	writer  *excel.ReportWriter
	dataset *survey.Dataset
	repo    ports.ResponseRepository
	logger  *internal.Logger
	title   string
}

// Config holds web application configuration
type Config struct {
	Port  string
	Title string
}

// NewApp creates a new web application serving reports over dataset.
// repo may be nil, in which case the stored-dataset endpoints report
// that no storage is configured.
func NewApp(config Config, dataset *survey.Dataset, repo ports.ResponseRepository, logger *internal.Logger) *App {
	a := &App{
		router:  chi.NewRouter(),
		svc:     app.NewFrequencyService(survey.AgreementLabels()),
		writer:  excel.NewReportWriter(),
		dataset: dataset,
		repo:    repo,
		logger:  logger,
		title:   config.Title,
	}

	a.setupMiddleware()
	a.setupRoutes()
	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/report.xlsx", a.handleWorkbook)

	// API endpoints
	a.router.Get("/api/frequencies/{column}", a.handleFrequencies)
	a.router.Get("/api/comparison", a.handleComparison)
	a.router.Get("/api/summary/{column}", a.handleSummary)
	a.router.Get("/api/datasets", a.handleDatasets)
	a.router.Get("/api/datasets/{id}", a.handleDataset)
}

// Router exposes the HTTP handler, mainly for tests.
func (a *App) Router() http.Handler {
	return a.router
}

// Start runs the HTTP server on the configured port.
func (a *App) Start(port string) error {
	a.logger.Info("Survey report UI listening on :%s", port)
	return http.ListenAndServe(":"+port, a.router)
}
