package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"likertlab/domain/freq"
	"likertlab/domain/survey"
	"likertlab/internal/analysis"
)

// Panel describes one chart to aggregate: a rating column plus an
// optional record filter.
type Panel struct {
	Title  string
	Column string
	Filter survey.Filter
}

// Point is one display bucket: a rating code, its label, and its
// percentage. Zero-count codes appear with Percent 0 so every panel
// spans the full scale.
type Point struct {
	Rating  survey.Rating `json:"rating"`
	Label   string        `json:"label"`
	Percent float64       `json:"percent"`
}

// PanelResult is the aggregated distribution for one panel.
type PanelResult struct {
	Title  string     `json:"title"`
	Column string     `json:"column"`
	Table  freq.Table `json:"table"`
	Series []Point    `json:"series"`
}

// Comparison is a set of panels sharing one y-axis bound, plus the
// descriptive statistics and (for demographic splits) the independence
// test backing the charts.
type Comparison struct {
	Panels    []PanelResult            `json:"panels"`
	YAxisMax  float64                  `json:"y_axis_max"`
	Summaries []analysis.ColumnSummary `json:"summaries"`
	Split     *analysis.SplitTest      `json:"split,omitempty"`
}

// FrequencyService orchestrates frequency aggregations for display:
// single tables, side-by-side question comparisons, and demographic
// splits. It holds no mutable state between calls.
type FrequencyService struct {
	labels survey.LabelMap
}

// NewFrequencyService creates a frequency service
func NewFrequencyService(labels survey.LabelMap) *FrequencyService {
	return &FrequencyService{labels: labels}
}

// Labels returns the label map used for display series.
func (s *FrequencyService) Labels() survey.LabelMap {
	return s.labels
}

// Frequencies aggregates a single panel and zero-fills its display series.
func (s *FrequencyService) Frequencies(d *survey.Dataset, panel Panel) (PanelResult, error) {
	table, err := freq.Aggregate(d, panel.Column, panel.Filter)
	if err != nil {
		return PanelResult{}, err
	}
	return PanelResult{
		Title:  panel.Title,
		Column: panel.Column,
		Table:  table,
		Series: s.series(d.Scale, table),
	}, nil
}

// Compare aggregates every panel concurrently and binds them to a shared
// y-axis maximum.
func (s *FrequencyService) Compare(ctx context.Context, d *survey.Dataset, panels []Panel) (*Comparison, error) {
	if len(panels) == 0 {
		return nil, fmt.Errorf("no panels to compare")
	}

	results := make([]PanelResult, len(panels))
	g, _ := errgroup.WithContext(ctx)
	for i, panel := range panels {
		i, panel := i, panel
		g.Go(func() error {
			res, err := s.Frequencies(d, panel)
			if err != nil {
				return fmt.Errorf("panel %q: %w", panel.Title, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tables := make([]freq.Table, len(results))
	for i, res := range results {
		tables[i] = res.Table
	}
	yMax, err := freq.MaxPercentage(tables...)
	if err != nil {
		return nil, err
	}

	summaries := make([]analysis.ColumnSummary, 0, len(panels))
	for _, panel := range panels {
		summary, err := analysis.Summarize(d, panel.Column, panel.Filter)
		if err != nil {
			return nil, fmt.Errorf("panel %q: %w", panel.Title, err)
		}
		summary.Column = panel.Title
		summaries = append(summaries, summary)
	}

	return &Comparison{
		Panels:    results,
		YAxisMax:  yMax,
		Summaries: summaries,
	}, nil
}

// CompareQuestions renders two rating columns side by side on a shared
// axis, as for a two-part question.
func (s *FrequencyService) CompareQuestions(ctx context.Context, d *survey.Dataset, colA, colB string) (*Comparison, error) {
	return s.Compare(ctx, d, []Panel{
		{Title: colA, Column: colA},
		{Title: colB, Column: colB},
	})
}

// CompareSplit renders one rating column split by the binary demographic
// attribute and attaches the chi-square independence test.
func (s *FrequencyService) CompareSplit(ctx context.Context, d *survey.Dataset, column string) (*Comparison, error) {
	cmp, err := s.Compare(ctx, d, []Panel{
		{Title: column + " (group 0)", Column: column, Filter: survey.DemographicIs(0)},
		{Title: column + " (group 1)", Column: column, Filter: survey.DemographicIs(1)},
	})
	if err != nil {
		return nil, err
	}

	split, err := analysis.TestSplit(d, column)
	if err != nil {
		return nil, err
	}
	cmp.Split = &split
	return cmp, nil
}

// series zero-fills a table across the full scale in label order.
func (s *FrequencyService) series(scale survey.Scale, table freq.Table) []Point {
	points := make([]Point, 0, scale.Size())
	for _, r := range scale.Ratings() {
		points = append(points, Point{
			Rating:  r,
			Label:   s.labels.Label(r),
			Percent: table[r],
		})
	}
	return points
}
