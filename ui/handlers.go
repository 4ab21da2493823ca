package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"likertlab/adapters/excel"
	"likertlab/app"
	"likertlab/domain/core"
	"likertlab/domain/survey"
	"likertlab/internal/analysis"
	apperrors "likertlab/internal/errors"
	"likertlab/internal/report"
)

const pageShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border: 1px solid #ccc; padding: 0.3rem 0.8rem; }
</style>
</head>
<body>
<p><a href="/report.xlsx">Download charts (xlsx)</a></p>
%s
</body>
</html>`

// defaultSections builds the standard report layout: the first two
// columns side by side, the last column split by demographic.
func (a *App) defaultSections() ([]report.Section, []excel.Section, error) {
	cols := a.dataset.Columns
	if len(cols) < 2 {
		return nil, nil, apperrors.InvalidInput("dataset needs at least two rating columns")
	}

	ctx := context.Background()
	questions, err := a.svc.CompareQuestions(ctx, a.dataset, cols[0], cols[1])
	if err != nil {
		return nil, nil, err
	}
	split, err := a.svc.CompareSplit(ctx, a.dataset, cols[len(cols)-1])
	if err != nil {
		return nil, nil, err
	}

	md := []report.Section{
		{Heading: "Two-part question", Comparison: questions},
		{Heading: "Demographic split", Comparison: split},
	}
	xlsx := []excel.Section{
		{Title: "questions", Comparison: questions},
		{Title: "split", Comparison: split},
	}
	return md, xlsx, nil
}

// handleIndex renders the full report as an HTML page.
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	sections, _, err := a.defaultSections()
	if err != nil {
		a.writeError(w, err)
		return
	}

	md := report.BuildMarkdown(a.title, sections)
	body := report.RenderHTML(md)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, pageShell, a.title, body)
}

// handleWorkbook streams the xlsx chart workbook.
func (a *App) handleWorkbook(w http.ResponseWriter, r *http.Request) {
	_, sections, err := a.defaultSections()
	if err != nil {
		a.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="report.xlsx"`)
	if err := a.writer.WriteTo(w, sections); err != nil {
		a.logger.Error("Workbook streaming failed: %v", err)
	}
}

// handleFrequencies returns the distribution for one column, optionally
// filtered by ?demographic=0|1.
func (a *App) handleFrequencies(w http.ResponseWriter, r *http.Request) {
	column := chi.URLParam(r, "column")

	panel := app.Panel{Title: column, Column: column}
	if raw := r.URL.Query().Get("demographic"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || (value != 0 && value != 1) {
			a.writeError(w, apperrors.InvalidInput("demographic must be 0 or 1"))
			return
		}
		panel.Title = fmt.Sprintf("%s (group %d)", column, value)
		panel.Filter = survey.DemographicIs(value)
	}

	result, err := a.svc.Frequencies(a.dataset, panel)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, result)
}

// handleComparison returns a shared-axis comparison. Either
// ?columns=a,b for a side-by-side question comparison or
// ?column=x&split=demographic for a demographic split.
func (a *App) handleComparison(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if query.Get("split") == "demographic" {
		column := query.Get("column")
		if column == "" {
			a.writeError(w, apperrors.InvalidInput("column is required for a split comparison"))
			return
		}
		cmp, err := a.svc.CompareSplit(r.Context(), a.dataset, column)
		if err != nil {
			a.writeError(w, err)
			return
		}
		a.writeJSON(w, http.StatusOK, cmp)
		return
	}

	raw := query.Get("columns")
	if raw == "" {
		a.writeError(w, apperrors.InvalidInput("columns parameter is required"))
		return
	}
	cols := strings.Split(raw, ",")
	panels := make([]app.Panel, 0, len(cols))
	for _, col := range cols {
		col = strings.TrimSpace(col)
		if col == "" {
			continue
		}
		panels = append(panels, app.Panel{Title: col, Column: col})
	}
	if len(panels) < 2 {
		a.writeError(w, apperrors.InvalidInput("at least two columns are required"))
		return
	}

	cmp, err := a.svc.Compare(r.Context(), a.dataset, panels)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, cmp)
}

// handleDatasets lists stored datasets, newest first.
func (a *App) handleDatasets(w http.ResponseWriter, r *http.Request) {
	if a.repo == nil {
		a.writeError(w, apperrors.InvalidInput("dataset storage is not configured"))
		return
	}

	infos, err := a.repo.ListDatasets(r.Context())
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, infos)
}

type datasetResponse struct {
	ID          core.DatasetID `json:"id"`
	Columns     []string       `json:"columns"`
	Scale       survey.Scale   `json:"scale"`
	RecordCount int            `json:"record_count"`
}

// handleDataset returns the shape of one stored dataset.
func (a *App) handleDataset(w http.ResponseWriter, r *http.Request) {
	if a.repo == nil {
		a.writeError(w, apperrors.InvalidInput("dataset storage is not configured"))
		return
	}

	id, err := core.ParseDatasetID(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, apperrors.InvalidInput(err.Error()))
		return
	}

	d, err := a.repo.LoadDataset(r.Context(), id)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, datasetResponse{
		ID:          id,
		Columns:     d.Columns,
		Scale:       d.Scale,
		RecordCount: d.Len(),
	})
}

// handleSummary returns descriptive statistics for one column.
func (a *App) handleSummary(w http.ResponseWriter, r *http.Request) {
	column := chi.URLParam(r, "column")

	summary, err := analysis.Summarize(a.dataset, column, nil)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, summary)
}

func (a *App) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		a.logger.Error("Failed to encode response: %v", err)
	}
}

type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func (a *App) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := apperrors.GetCode(err)

	switch {
	case core.IsNotFoundError(err):
		status = http.StatusNotFound
		code = apperrors.CodeNotFound
	case core.IsAggregationError(err):
		status = http.StatusUnprocessableEntity
		code = apperrors.CodeInvalidInput
	case code == apperrors.CodeInvalidInput:
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		a.logger.Error("Request failed: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Code: code, Error: err.Error()})
}
