package analysis

import (
	"errors"
	"math"
	"testing"

	"likertlab/domain/core"
	"likertlab/domain/survey"
)

func ratingDataset(column string, ratings []survey.Rating) *survey.Dataset {
	d := &survey.Dataset{
		Columns: []string{column},
		Scale:   survey.DefaultScale(),
	}
	for _, r := range ratings {
		d.Records = append(d.Records, survey.Record{
			Ratings: map[string]survey.Rating{column: r},
		})
	}
	return d
}

func TestSummarize_KnownValues(t *testing.T) {
	d := ratingDataset("q1", []survey.Rating{1, 2, 3, 4, 5})

	s, err := Summarize(d, "q1", nil)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if s.N != 5 {
		t.Errorf("N: expected 5, got %d", s.N)
	}
	if math.Abs(s.Mean-3.0) > 1e-9 {
		t.Errorf("Mean: expected 3.0, got %f", s.Mean)
	}
	if math.Abs(s.Median-3.0) > 1e-9 {
		t.Errorf("Median: expected 3.0, got %f", s.Median)
	}
	if s.Min != 1 || s.Max != 5 {
		t.Errorf("Min/Max: expected 1/5, got %f/%f", s.Min, s.Max)
	}
	// Symmetric data has (near) zero skewness.
	if math.Abs(s.Skewness) > 1e-9 {
		t.Errorf("Skewness: expected 0 for symmetric data, got %f", s.Skewness)
	}
}

func TestSummarize_SkewDirection(t *testing.T) {
	// Mass piled at the low end with a long right tail.
	d := ratingDataset("q", []survey.Rating{1, 1, 1, 1, 1, 1, 2, 2, 4, 5})

	s, err := Summarize(d, "q", nil)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if s.Skewness <= 0 {
		t.Errorf("Expected positive skewness for right-tailed data, got %f", s.Skewness)
	}
}

func TestSummarize_Filtered(t *testing.T) {
	d := &survey.Dataset{
		Columns: []string{"q"},
		Scale:   survey.DefaultScale(),
		Records: []survey.Record{
			{Demographic: 0, Ratings: map[string]survey.Rating{"q": 1}},
			{Demographic: 0, Ratings: map[string]survey.Rating{"q": 3}},
			{Demographic: 1, Ratings: map[string]survey.Rating{"q": 5}},
		},
	}

	s, err := Summarize(d, "q", survey.DemographicIs(0))
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if s.N != 2 {
		t.Errorf("N: expected 2 filtered records, got %d", s.N)
	}
	if math.Abs(s.Mean-2.0) > 1e-9 {
		t.Errorf("Mean: expected 2.0 over group 0, got %f", s.Mean)
	}
	if s.Q25 != 1.0 {
		t.Errorf("Q25: expected the group minimum for a two-record group, got %f", s.Q25)
	}
}

func TestSummarize_SmallSamples(t *testing.T) {
	// Quartiles must not fail on samples too small to interpolate.
	s, err := Summarize(ratingDataset("q", []survey.Rating{4}), "q", nil)
	if err != nil {
		t.Fatalf("Summarize failed on a single record: %v", err)
	}
	if s.N != 1 || s.Q25 != 4.0 || s.Q75 != 4.0 {
		t.Errorf("Single record: expected Q25=Q75=4, got Q25=%f Q75=%f (N=%d)", s.Q25, s.Q75, s.N)
	}

	s, err = Summarize(ratingDataset("q", []survey.Rating{2, 5}), "q", nil)
	if err != nil {
		t.Fatalf("Summarize failed on two records: %v", err)
	}
	if s.Q25 != 2.0 {
		t.Errorf("Two records: expected Q25 at the minimum, got %f", s.Q25)
	}
}

func TestSummarize_Errors(t *testing.T) {
	d := ratingDataset("q", []survey.Rating{3})

	if _, err := Summarize(d, "missing", nil); !errors.Is(err, core.ErrColumnNotFound) {
		t.Errorf("Expected ErrColumnNotFound, got %v", err)
	}
	if _, err := Summarize(d, "q", survey.DemographicIs(1)); !errors.Is(err, core.ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput, got %v", err)
	}
}
