package survey

import (
	"errors"
	"testing"

	"likertlab/domain/core"
)

func TestAgreementLabels(t *testing.T) {
	m := AgreementLabels()

	if m.Scale.Size() != 5 {
		t.Fatalf("Expected 5-point scale, got %d", m.Scale.Size())
	}
	if got := m.Label(1); got != "Strongly disagree" {
		t.Errorf("Label(1): got %q", got)
	}
	if got := m.Label(5); got != "Strongly agree" {
		t.Errorf("Label(5): got %q", got)
	}
	// Out-of-scale codes fall back to their numeric form.
	if got := m.Label(7); got != "7" {
		t.Errorf("Label(7): got %q", got)
	}
}

func TestNewLabelMap_CountMismatch(t *testing.T) {
	_, err := NewLabelMap(DefaultScale(), []string{"low", "high"})
	if !errors.Is(err, core.ErrLabelCount) {
		t.Fatalf("Expected ErrLabelCount, got %v", err)
	}
}

func TestScale(t *testing.T) {
	s := Scale{Min: 1, Max: 7}
	if s.Size() != 7 {
		t.Errorf("Size: expected 7, got %d", s.Size())
	}
	if !s.Contains(7) || s.Contains(0) || s.Contains(8) {
		t.Error("Contains misclassifies boundary codes")
	}
	if err := (Scale{Min: 3, Max: 3}).Validate(); !errors.Is(err, core.ErrInvalidScale) {
		t.Errorf("Expected ErrInvalidScale for degenerate scale, got %v", err)
	}

	ratings := s.Ratings()
	if len(ratings) != 7 || ratings[0] != 1 || ratings[6] != 7 {
		t.Errorf("Ratings: unexpected %v", ratings)
	}
}

func TestDemographicIs(t *testing.T) {
	rec := Record{Demographic: 1}
	if !DemographicIs(1)(rec) || DemographicIs(0)(rec) {
		t.Error("DemographicIs filter misclassifies records")
	}
}
