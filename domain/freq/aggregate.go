// Package freq computes normalized response-frequency distributions
// over Likert-scale survey columns.
package freq

import (
	"math"
	"sort"

	"likertlab/domain/core"
	"likertlab/domain/survey"
)

// Table maps each observed rating value to the percentage (0-100) of
// records holding it among the filtered subset. Ratings with zero
// occurrences are absent from the table; display layers zero-fill
// missing codes when a full axis is wanted.
type Table map[survey.Rating]float64

// Ratings returns the observed rating values in ascending order.
func (t Table) Ratings() []survey.Rating {
	out := make([]survey.Rating, 0, len(t))
	for r := range t {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Peak returns the largest percentage in the table, 0 for an empty table.
func (t Table) Peak() float64 {
	peak := 0.0
	for _, pct := range t {
		if pct > peak {
			peak = pct
		}
	}
	return peak
}

// Aggregate computes the percentage distribution of one rating column,
// optionally restricted to records matching filter (nil means all
// records). Pure function of its inputs.
//
// Errors: core.ErrColumnNotFound when the column is not declared or a
// record lacks it, core.ErrOutOfRange when a selected value lies outside
// the dataset's scale, core.ErrEmptyInput when no records survive the
// filter.
func Aggregate(d *survey.Dataset, column string, filter survey.Filter) (Table, error) {
	if !d.HasColumn(column) {
		return nil, core.NewColumnNotFoundError(column)
	}

	counts := make(map[survey.Rating]int, d.Scale.Size())
	total := 0
	for _, rec := range d.Records {
		if filter != nil && !filter(rec) {
			continue
		}
		r, ok := rec.Ratings[column]
		if !ok {
			return nil, core.NewColumnNotFoundError(column)
		}
		if !d.Scale.Contains(r) {
			return nil, core.NewOutOfRangeError(column, int(r), int(d.Scale.Min), int(d.Scale.Max))
		}
		counts[r]++
		total++
	}

	if total == 0 {
		return nil, core.NewEmptyInputError("column " + column)
	}

	table := make(Table, len(counts))
	for r, c := range counts {
		table[r] = float64(c) / float64(total) * 100
	}
	return table, nil
}

// MaxPercentage returns a shared y-axis upper bound for a set of tables
// rendered side by side: the next integer above the tallest bar, so the
// bound clears every bar and gridlines stay on integers.
func MaxPercentage(tables ...Table) (float64, error) {
	peak := math.Inf(-1)
	for _, t := range tables {
		for _, pct := range t {
			if pct > peak {
				peak = pct
			}
		}
	}
	if math.IsInf(peak, -1) {
		return 0, core.NewEmptyInputError("no tables to bound")
	}
	return math.Floor(peak) + 1, nil
}
