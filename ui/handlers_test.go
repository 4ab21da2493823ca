package ui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"likertlab/app"
	"likertlab/domain/core"
	"likertlab/domain/survey"
	"likertlab/internal"
	"likertlab/internal/testkit"
	"likertlab/ports"
)

// memoryRepository keeps saved datasets in a map, in place of Postgres.
type memoryRepository struct {
	datasets map[core.DatasetID]*survey.Dataset
	names    map[core.DatasetID]string
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		datasets: make(map[core.DatasetID]*survey.Dataset),
		names:    make(map[core.DatasetID]string),
	}
}

func (m *memoryRepository) EnsureSchema(ctx context.Context) error { return nil }

func (m *memoryRepository) SaveDataset(ctx context.Context, id core.DatasetID, name string, d *survey.Dataset) error {
	m.datasets[id] = d
	m.names[id] = name
	return nil
}

func (m *memoryRepository) LoadDataset(ctx context.Context, id core.DatasetID) (*survey.Dataset, error) {
	d, ok := m.datasets[id]
	if !ok {
		return nil, core.ErrDatasetNotFound
	}
	return d, nil
}

func (m *memoryRepository) ListDatasets(ctx context.Context) ([]ports.DatasetInfo, error) {
	infos := make([]ports.DatasetInfo, 0, len(m.datasets))
	for id, d := range m.datasets {
		infos = append(infos, ports.DatasetInfo{
			ID:          id,
			Name:        m.names[id],
			RecordCount: d.Len(),
			CreatedAt:   time.Now(),
		})
	}
	return infos, nil
}

func generateDataset(t *testing.T) *survey.Dataset {
	t.Helper()
	config := testkit.DefaultSurveyConfig()
	config.RespondentCount = 300
	dataset, err := testkit.NewSurveyGenerator(config).Generate()
	if err != nil {
		t.Fatalf("Failed to generate dataset: %v", err)
	}
	return dataset
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	return NewApp(Config{Port: "0", Title: "Test Report"}, generateDataset(t), nil, internal.NewLogger(internal.LogLevelError))
}

func newTestAppWithRepo(t *testing.T) (*App, *memoryRepository) {
	t.Helper()
	repo := newMemoryRepository()
	a := NewApp(Config{Port: "0", Title: "Test Report"}, generateDataset(t), repo, internal.NewLogger(internal.LogLevelError))
	return a, repo
}

func doRequest(t *testing.T, a *App, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)
	return rec
}

func TestHandleFrequencies(t *testing.T) {
	a := newTestApp(t)

	rec := doRequest(t, a, "/api/frequencies/q1")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result app.PanelResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result.Column != "q1" {
		t.Errorf("Expected column q1, got %s", result.Column)
	}
	if len(result.Series) != 5 {
		t.Errorf("Expected 5 series points, got %d", len(result.Series))
	}
}

func TestHandleFrequencies_DemographicFilter(t *testing.T) {
	a := newTestApp(t)

	rec := doRequest(t, a, "/api/frequencies/q4?demographic=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result app.PanelResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !strings.Contains(result.Title, "group 1") {
		t.Errorf("Expected group-1 title, got %q", result.Title)
	}
}

func TestHandleFrequencies_BadDemographic(t *testing.T) {
	a := newTestApp(t)

	rec := doRequest(t, a, "/api/frequencies/q1?demographic=2")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
}

func TestHandleFrequencies_UnknownColumn(t *testing.T) {
	a := newTestApp(t)

	rec := doRequest(t, a, "/api/frequencies/unknown")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleComparison_Questions(t *testing.T) {
	a := newTestApp(t)

	rec := doRequest(t, a, "/api/comparison?columns=q1,q2")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var cmp app.Comparison
	if err := json.NewDecoder(rec.Body).Decode(&cmp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(cmp.Panels) != 2 {
		t.Errorf("Expected 2 panels, got %d", len(cmp.Panels))
	}
	if cmp.YAxisMax <= 0 {
		t.Errorf("Expected positive y-axis bound, got %f", cmp.YAxisMax)
	}
}

func TestHandleComparison_Split(t *testing.T) {
	a := newTestApp(t)

	rec := doRequest(t, a, "/api/comparison?column=q4&split=demographic")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var cmp app.Comparison
	if err := json.NewDecoder(rec.Body).Decode(&cmp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if cmp.Split == nil {
		t.Fatal("Expected split test in response")
	}
	if cmp.Split.Column != "q4" {
		t.Errorf("Expected split on q4, got %s", cmp.Split.Column)
	}
}

func TestHandleComparison_MissingParams(t *testing.T) {
	a := newTestApp(t)

	if rec := doRequest(t, a, "/api/comparison"); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without columns, got %d", rec.Code)
	}
	if rec := doRequest(t, a, "/api/comparison?columns=q1"); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for single column, got %d", rec.Code)
	}
	if rec := doRequest(t, a, "/api/comparison?split=demographic"); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for split without column, got %d", rec.Code)
	}
}

func TestHandleSummary(t *testing.T) {
	a := newTestApp(t)

	rec := doRequest(t, a, "/api/summary/q1")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		Column string  `json:"column"`
		N      int     `json:"n"`
		Mean   float64 `json:"mean"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if payload.N != 300 {
		t.Errorf("Expected N=300, got %d", payload.N)
	}
	if payload.Mean < 1 || payload.Mean > 5 {
		t.Errorf("Mean %f outside scale", payload.Mean)
	}
}

func TestHandleIndex(t *testing.T) {
	a := newTestApp(t)

	rec := doRequest(t, a, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Test Report", "<table>", "Strongly agree", "report.xlsx"} {
		if !strings.Contains(body, want) {
			t.Errorf("Index page missing %q", want)
		}
	}
}

func TestHandleDatasets(t *testing.T) {
	a, repo := newTestAppWithRepo(t)

	id := core.NewDatasetID()
	if err := repo.SaveDataset(context.Background(), id, "run-1", a.dataset); err != nil {
		t.Fatalf("SaveDataset failed: %v", err)
	}

	rec := doRequest(t, a, "/api/datasets")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var infos []ports.DatasetInfo
	if err := json.NewDecoder(rec.Body).Decode(&infos); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("Expected 1 dataset, got %d", len(infos))
	}
	if infos[0].ID != id || infos[0].Name != "run-1" {
		t.Errorf("Unexpected dataset info: %+v", infos[0])
	}
	if infos[0].RecordCount != a.dataset.Len() {
		t.Errorf("Expected %d records, got %d", a.dataset.Len(), infos[0].RecordCount)
	}
}

func TestHandleDataset(t *testing.T) {
	a, repo := newTestAppWithRepo(t)

	id := core.NewDatasetID()
	if err := repo.SaveDataset(context.Background(), id, "run-1", a.dataset); err != nil {
		t.Fatalf("SaveDataset failed: %v", err)
	}

	rec := doRequest(t, a, "/api/datasets/"+id.String())
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		ID          core.DatasetID `json:"id"`
		Columns     []string       `json:"columns"`
		RecordCount int            `json:"record_count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if payload.ID != id {
		t.Errorf("Expected id %s, got %s", id, payload.ID)
	}
	if len(payload.Columns) != 4 {
		t.Errorf("Expected 4 columns, got %v", payload.Columns)
	}
	if payload.RecordCount != a.dataset.Len() {
		t.Errorf("Expected %d records, got %d", a.dataset.Len(), payload.RecordCount)
	}
}

func TestHandleDataset_Unknown(t *testing.T) {
	a, _ := newTestAppWithRepo(t)

	rec := doRequest(t, a, "/api/datasets/"+core.NewDatasetID().String())
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 for unknown dataset, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleDatasets_NoStorage(t *testing.T) {
	a := newTestApp(t)

	if rec := doRequest(t, a, "/api/datasets"); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without storage, got %d", rec.Code)
	}
	if rec := doRequest(t, a, "/api/datasets/some-id"); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without storage, got %d", rec.Code)
	}
}

func TestHandleWorkbook(t *testing.T) {
	a := newTestApp(t)

	rec := doRequest(t, a, "/report.xlsx")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("Unexpected content type %q", ct)
	}
	if rec.Body.Len() == 0 {
		t.Error("Expected workbook bytes")
	}
}
