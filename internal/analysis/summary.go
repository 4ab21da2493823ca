package analysis

import (
	"math"

	"github.com/montanaflynn/stats"

	"likertlab/domain/core"
	"likertlab/domain/survey"
)

// ColumnSummary holds descriptive statistics for one rating column.
type ColumnSummary struct {
	Column   string  `json:"column"`
	N        int     `json:"n"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Q25      float64 `json:"q25"`
	Q75      float64 `json:"q75"`
	Skewness float64 `json:"skewness"`
}

// Summarize computes descriptive statistics for a rating column,
// optionally restricted by filter.
func Summarize(d *survey.Dataset, column string, filter survey.Filter) (ColumnSummary, error) {
	summary := ColumnSummary{Column: column}

	if !d.HasColumn(column) {
		return summary, core.NewColumnNotFoundError(column)
	}

	data := make([]float64, 0, d.Len())
	for _, rec := range d.Records {
		if filter != nil && !filter(rec) {
			continue
		}
		r, ok := rec.Ratings[column]
		if !ok {
			return summary, core.NewColumnNotFoundError(column)
		}
		if !d.Scale.Contains(r) {
			return summary, core.NewOutOfRangeError(column, int(r), int(d.Scale.Min), int(d.Scale.Max))
		}
		data = append(data, float64(r))
	}
	if len(data) == 0 {
		return summary, core.NewEmptyInputError("column " + column)
	}
	summary.N = len(data)

	mean, err := stats.Mean(data)
	if err != nil {
		return summary, err
	}
	summary.Mean = mean

	median, err := stats.Median(data)
	if err != nil {
		return summary, err
	}
	summary.Median = median

	stdDev, err := stats.StandardDeviation(data)
	if err != nil {
		return summary, err
	}
	summary.StdDev = stdDev

	min, err := stats.Min(data)
	if err != nil {
		return summary, err
	}
	summary.Min = min

	max, err := stats.Max(data)
	if err != nil {
		return summary, err
	}
	summary.Max = max

	summary.Q25 = quartile(data, 25, min)
	summary.Q75 = quartile(data, 75, max)

	summary.Skewness = sampleSkewness(data, mean, stdDev)

	return summary, nil
}

// quartile returns the pth percentile, falling back to the given bound
// when the sample is too small for stats.Percentile to interpolate.
func quartile(data []float64, p float64, fallback float64) float64 {
	v, err := stats.Percentile(data, p)
	if err != nil {
		return fallback
	}
	return v
}

// sampleSkewness computes sample skewness using the adjusted
// Fisher-Pearson coefficient.
func sampleSkewness(data []float64, mean, stdDev float64) float64 {
	if len(data) < 3 || stdDev == 0 {
		return 0
	}

	n := float64(len(data))
	sumCubedDeviations := 0.0
	for _, x := range data {
		deviation := (x - mean) / stdDev
		sumCubedDeviations += deviation * deviation * deviation
	}

	skewness := sumCubedDeviations / n

	// Bias correction for sample skewness
	correction := math.Sqrt(n*(n-1)) / (n - 2)
	return skewness * correction
}
