package testkit

import (
	"fmt"
	"math/rand"

	"likertlab/domain/survey"
)

// QuestionSpec configures the response profile for one survey question.
type QuestionSpec struct {
	Column string `json:"column"`
	// Weights holds one relative weight per scale code, ascending from
	// Scale.Min. They need not sum to 1; draws normalize internally.
	Weights []float64 `json:"weights"`
	// DemographicShift moves response mass toward the agree end for
	// group-1 respondents (negative values move it toward disagree).
	// Zero keeps both groups on the same profile.
	DemographicShift float64 `json:"demographic_shift"`
}

// SurveyGeneratorConfig configures the synthetic survey generator
type SurveyGeneratorConfig struct {
	RespondentCount int            `json:"respondent_count"`
	Questions       []QuestionSpec `json:"questions"`
	// DemographicSplit is the share of respondents assigned to group 1.
	DemographicSplit float64      `json:"demographic_split"`
	Scale            survey.Scale `json:"scale"`
	Seed             int64        `json:"seed"`
}

// DefaultSurveyConfig returns sensible defaults for survey data generation:
// a two-part question (q1, q2), a skewed standalone question (q3), and a
// question with a real demographic difference (q4).
func DefaultSurveyConfig() SurveyGeneratorConfig {
	return SurveyGeneratorConfig{
		RespondentCount: 1000,
		Questions: []QuestionSpec{
			{Column: "q1", Weights: []float64{0.1, 0.2, 0.3, 0.25, 0.15}},
			{Column: "q2", Weights: []float64{0.05, 0.15, 0.2, 0.35, 0.25}},
			{Column: "q3", Weights: []float64{0.3, 0.3, 0.2, 0.15, 0.05}},
			{Column: "q4", Weights: []float64{0.15, 0.2, 0.3, 0.2, 0.15}, DemographicShift: 0.35},
		},
		DemographicSplit: 0.5,
		Scale:            survey.DefaultScale(),
		Seed:             42,
	}
}

// SurveyGenerator generates synthetic Likert-scale survey responses.
// All randomness flows through the seeded source; the same config always
// yields the same dataset.
type SurveyGenerator struct {
	config SurveyGeneratorConfig
	rng    *rand.Rand
}

// NewSurveyGenerator creates a new survey generator
func NewSurveyGenerator(config SurveyGeneratorConfig) *SurveyGenerator {
	return &SurveyGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate produces a complete dataset of simulated responses.
func (g *SurveyGenerator) Generate() (*survey.Dataset, error) {
	if g.config.RespondentCount <= 0 {
		return nil, fmt.Errorf("respondent count must be positive, got %d", g.config.RespondentCount)
	}
	if err := g.config.Scale.Validate(); err != nil {
		return nil, err
	}
	for _, q := range g.config.Questions {
		if len(q.Weights) != g.config.Scale.Size() {
			return nil, fmt.Errorf("question %s: %d weights for %d scale codes",
				q.Column, len(q.Weights), g.config.Scale.Size())
		}
	}

	columns := make([]string, 0, len(g.config.Questions))
	for _, q := range g.config.Questions {
		columns = append(columns, q.Column)
	}

	dataset := &survey.Dataset{
		Columns: columns,
		Scale:   g.config.Scale,
		Records: make([]survey.Record, 0, g.config.RespondentCount),
	}

	for i := 0; i < g.config.RespondentCount; i++ {
		demographic := 0
		if g.rng.Float64() < g.config.DemographicSplit {
			demographic = 1
		}

		ratings := make(map[string]survey.Rating, len(g.config.Questions))
		for _, q := range g.config.Questions {
			weights := q.Weights
			if demographic == 1 && q.DemographicShift != 0 {
				weights = shiftWeights(q.Weights, q.DemographicShift)
			}
			ratings[q.Column] = g.config.Scale.Min + survey.Rating(g.weightedDraw(weights))
		}

		dataset.Records = append(dataset.Records, survey.Record{
			Demographic: demographic,
			Ratings:     ratings,
		})
	}

	return dataset, nil
}

// weightedDraw picks an index proportional to its weight using a
// cumulative scan.
func (g *SurveyGenerator) weightedDraw(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}

	r := g.rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if r <= cumulative {
			return i
		}
	}
	return len(weights) - 1
}

// shiftWeights moves a fraction of each weight one step toward the agree
// end of the scale, producing a stochastically higher-rating profile for
// the shifted group.
func shiftWeights(weights []float64, shift float64) []float64 {
	if shift < 0 {
		reversed := make([]float64, len(weights))
		for i, w := range weights {
			reversed[len(weights)-1-i] = w
		}
		shifted := shiftWeights(reversed, -shift)
		for i, j := 0, len(shifted)-1; i < j; i, j = i+1, j-1 {
			shifted[i], shifted[j] = shifted[j], shifted[i]
		}
		return shifted
	}

	out := make([]float64, len(weights))
	copy(out, weights)
	for i := 0; i < len(out)-1; i++ {
		moved := out[i] * shift
		out[i] -= moved
		out[i+1] += moved
	}
	return out
}
