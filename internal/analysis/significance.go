package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"likertlab/domain/core"
	"likertlab/domain/survey"
)

// SplitTest reports a chi-square test of independence between the binary
// demographic attribute and one rating column.
type SplitTest struct {
	Column      string  `json:"column"`
	ChiSquare   float64 `json:"chi_square"`
	DF          int     `json:"df"`
	PValue      float64 `json:"p_value"`
	CramerV     float64 `json:"cramer_v"`
	Significant bool    `json:"significant"` // p < 0.05
}

// TestSplit runs the chi-square test of independence for column against
// the demographic split. Rating codes unobserved in both groups are
// dropped from the contingency table so degrees of freedom reflect the
// observed categories.
func TestSplit(d *survey.Dataset, column string) (SplitTest, error) {
	result := SplitTest{Column: column}

	if !d.HasColumn(column) {
		return result, core.NewColumnNotFoundError(column)
	}

	// 2 x k contingency counts, row = demographic group.
	k := d.Scale.Size()
	table := [2][]int{make([]int, k), make([]int, k)}
	total := 0
	for _, rec := range d.Records {
		r, ok := rec.Ratings[column]
		if !ok {
			return result, core.NewColumnNotFoundError(column)
		}
		if !d.Scale.Contains(r) {
			return result, core.NewOutOfRangeError(column, int(r), int(d.Scale.Min), int(d.Scale.Max))
		}
		group := 0
		if rec.Demographic != 0 {
			group = 1
		}
		table[group][int(r-d.Scale.Min)]++
		total++
	}
	if total == 0 {
		return result, core.NewEmptyInputError("column " + column)
	}

	// Drop all-zero rating columns.
	cols := make([]int, 0, k)
	for j := 0; j < k; j++ {
		if table[0][j]+table[1][j] > 0 {
			cols = append(cols, j)
		}
	}
	rowTotals := [2]int{}
	for _, j := range cols {
		rowTotals[0] += table[0][j]
		rowTotals[1] += table[1][j]
	}
	if len(cols) < 2 || rowTotals[0] == 0 || rowTotals[1] == 0 {
		// One group or one category: independence is untestable, not an error.
		result.PValue = 1.0
		return result, nil
	}

	chiSq := 0.0
	for _, j := range cols {
		colTotal := table[0][j] + table[1][j]
		for i := 0; i < 2; i++ {
			expected := float64(rowTotals[i]*colTotal) / float64(total)
			if expected > 0 {
				observed := float64(table[i][j])
				chiSq += (observed - expected) * (observed - expected) / expected
			}
		}
	}

	df := len(cols) - 1 // (rows-1)*(cols-1) with two rows
	dist := distuv.ChiSquared{K: float64(df)}
	pValue := 1 - dist.CDF(chiSq)
	if pValue < 0 {
		pValue = 0
	}

	// Effect size: Cramer's V = sqrt(chi^2 / (n * min(r-1, c-1)))
	minDim := math.Min(1, float64(len(cols)-1))
	cramerV := math.Sqrt(chiSq / (float64(total) * minDim))

	result.ChiSquare = chiSq
	result.DF = df
	result.PValue = pValue
	result.CramerV = cramerV
	result.Significant = pValue < 0.05
	return result, nil
}
