package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"likertlab/domain/survey"
	"likertlab/internal/testkit"
)

func generateDataset(t *testing.T) *survey.Dataset {
	t.Helper()
	config := testkit.DefaultSurveyConfig()
	config.RespondentCount = 400
	dataset, err := testkit.NewSurveyGenerator(config).Generate()
	require.NoError(t, err)
	return dataset
}

func TestFrequencyService_Frequencies(t *testing.T) {
	svc := NewFrequencyService(survey.AgreementLabels())
	dataset := generateDataset(t)

	res, err := svc.Frequencies(dataset, Panel{Title: "q1", Column: "q1"})
	require.NoError(t, err)

	assert.Equal(t, "q1", res.Column)
	assert.Len(t, res.Series, 5, "series should span the full scale")
	assert.Equal(t, "Strongly disagree", res.Series[0].Label)
	assert.Equal(t, "Strongly agree", res.Series[4].Label)

	sum := 0.0
	for _, p := range res.Series {
		sum += p.Percent
	}
	assert.InDelta(t, 100.0, sum, 1e-9)
}

func TestFrequencyService_CompareQuestions(t *testing.T) {
	svc := NewFrequencyService(survey.AgreementLabels())
	dataset := generateDataset(t)

	cmp, err := svc.CompareQuestions(context.Background(), dataset, "q1", "q2")
	require.NoError(t, err)

	require.Len(t, cmp.Panels, 2)
	require.Len(t, cmp.Summaries, 2)

	// The shared bound must clear every bar in both panels.
	for _, panel := range cmp.Panels {
		for _, p := range panel.Series {
			assert.LessOrEqual(t, p.Percent, cmp.YAxisMax,
				"panel %s rating %d exceeds shared y-axis bound", panel.Title, p.Rating)
		}
	}
	assert.Nil(t, cmp.Split)
}

func TestFrequencyService_CompareSplit(t *testing.T) {
	svc := NewFrequencyService(survey.AgreementLabels())
	dataset := generateDataset(t)

	cmp, err := svc.CompareSplit(context.Background(), dataset, "q4")
	require.NoError(t, err)

	require.Len(t, cmp.Panels, 2)
	require.NotNil(t, cmp.Split)
	assert.Equal(t, "q4", cmp.Split.Column)

	// The default generator shifts group 1 toward agreement on q4, so
	// the groups should genuinely differ.
	group0, group1 := cmp.Panels[0], cmp.Panels[1]
	assert.Greater(t, group1.Series[4].Percent, group0.Series[4].Percent,
		"group 1 should agree more strongly on q4")
}

func TestFrequencyService_CompareUnknownColumn(t *testing.T) {
	svc := NewFrequencyService(survey.AgreementLabels())
	dataset := generateDataset(t)

	_, err := svc.CompareQuestions(context.Background(), dataset, "q1", "nope")
	require.Error(t, err)
}

func TestFrequencyService_CompareNoPanels(t *testing.T) {
	svc := NewFrequencyService(survey.AgreementLabels())
	dataset := generateDataset(t)

	_, err := svc.Compare(context.Background(), dataset, nil)
	require.Error(t, err)
}
