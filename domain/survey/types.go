package survey

import (
	"fmt"

	"likertlab/domain/core"
)

// Rating is one ordinal response code on a Likert scale.
type Rating int

// Scale defines the closed discrete range of valid rating codes.
type Scale struct {
	Min Rating `json:"min"`
	Max Rating `json:"max"`
}

// DefaultScale returns the standard five-point agreement scale.
func DefaultScale() Scale {
	return Scale{Min: 1, Max: 5}
}

// Validate checks that the scale covers at least two codes.
func (s Scale) Validate() error {
	if s.Max <= s.Min {
		return fmt.Errorf("%w: [%d,%d]", core.ErrInvalidScale, s.Min, s.Max)
	}
	return nil
}

// Contains reports whether r is a valid code on this scale.
func (s Scale) Contains(r Rating) bool {
	return r >= s.Min && r <= s.Max
}

// Size returns the number of codes on the scale.
func (s Scale) Size() int {
	return int(s.Max-s.Min) + 1
}

// Ratings returns every code on the scale in ascending order.
func (s Scale) Ratings() []Rating {
	out := make([]Rating, 0, s.Size())
	for r := s.Min; r <= s.Max; r++ {
		out = append(out, r)
	}
	return out
}

// Record is one respondent's answers: a binary demographic attribute
// plus one rating per question column.
type Record struct {
	Demographic int               `json:"demographic"`
	Ratings     map[string]Rating `json:"ratings"`
}

// Dataset is an ordered, immutable collection of survey records.
// It is consumed, never mutated, by the aggregation layer.
type Dataset struct {
	Columns []string `json:"columns"`
	Records []Record `json:"records"`
	Scale   Scale    `json:"scale"`
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.Records)
}

// HasColumn reports whether name is a declared rating column.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Filter restricts an aggregation to matching records.
type Filter func(Record) bool

// DemographicIs returns a filter matching records with the given
// demographic value.
func DemographicIs(value int) Filter {
	return func(r Record) bool {
		return r.Demographic == value
	}
}
