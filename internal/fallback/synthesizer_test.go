package fallback

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"impactcompare/internal/domain"
)

func sampleInput() Input {
	return Input{
		FeaturesA: domain.VisionFeatureRecord{
			Components: []string{"hero", "form", "button", "footer"}, CTACount: 1, FlowSteps: 2,
			ClutterScore: 0.2, ReadabilityScore: 0.9, PrimaryCTAAboveFold: true, VisualHierarchyStrong: true,
		},
		FeaturesB: domain.VisionFeatureRecord{
			Components: []string{"carousel"}, CTACount: 4, FlowSteps: 5,
			ClutterScore: 0.8, ReadabilityScore: 0.3,
		},
		ScoresA: domain.ImpactScoreRecord{
			PredictedCTR: 65, PredictedConversion: 70, PredictedDropoff: 19,
			PredictedTaskCompletion: 81, PredictedTimeToAct: 18, UsabilityRisks: []string{},
		},
		ScoresB: domain.ImpactScoreRecord{
			PredictedCTR: 39, PredictedConversion: 25, PredictedDropoff: 35,
			PredictedTaskCompletion: 64, PredictedTimeToAct: 31,
			UsabilityRisks: []string{"r1", "r2", "r3"},
		},
	}
}

func TestPrimaryMetricKeywords(t *testing.T) {
	cases := map[string]Metric{
		"CTR":                 metricCTR,
		"Clicks on pricing":   metricCTR,
		"Checkout drop-off":   metricDropoff,
		"Task completion":     metricCompletion,
		"onboarding tasks":    metricCompletion,
		"Revenue per visitor": metricConversion,
		"":                    metricConversion,
	}
	for in, want := range cases {
		assert.Equal(t, want.Label, PrimaryMetric(in).Label, in)
	}
}

func TestWinnerPolarity(t *testing.T) {
	in := sampleInput()
	assert.Equal(t, domain.WinnerA, metricConversion.Winner(in.ScoresA, in.ScoresB))
	// A has the lower drop-off.
	assert.Equal(t, domain.WinnerA, metricDropoff.Winner(in.ScoresA, in.ScoresB))
	assert.Equal(t, domain.WinnerB, metricDropoff.Winner(in.ScoresB, in.ScoresA))
	assert.Equal(t, domain.WinnerTie, metricCTR.Winner(in.ScoresA, in.ScoresA))
}

func TestSynthesizeShape(t *testing.T) {
	in := sampleInput()
	in.Context.PrimaryMetric = "Conversion"
	got := Synthesize(in)

	assert.Equal(t, domain.ConfidenceMedium, got.ProjectedMetrics.Confidence)
	assert.Equal(t, "65.0%", got.ProjectedMetrics.CTRA)
	assert.Equal(t, "25.0%", got.ProjectedMetrics.ConversionB)
	assert.Equal(t, "19.0%", got.ProjectedMetrics.DropoffA)
	assert.Equal(t, "64.0%", got.ProjectedMetrics.CompletionB)
	assert.Equal(t, "18s", got.ProjectedMetrics.TimeToActA)
	assert.Equal(t, "31s", got.ProjectedMetrics.TimeToActB)

	assert.NotEmpty(t, got.SummaryA)
	assert.NotEmpty(t, got.SummaryB)
	assert.Contains(t, got.SummaryA, "Variant A")
	assert.NotEmpty(t, got.Differences)
	assert.Contains(t, got.Differences, "CTA count: A has 1, B has 4")
	assert.True(t, strings.HasPrefix(got.Recommendation, "A wins"))

	// Only the first two risks of each side are carried over.
	assert.Equal(t, []string{"Variant B: r1", "Variant B: r2"}, got.Risks)
}

func TestSynthesizeTie(t *testing.T) {
	in := sampleInput()
	in.ScoresB = in.ScoresA
	in.FeaturesB = in.FeaturesA
	got := Synthesize(in)

	assert.True(t, strings.HasPrefix(got.Recommendation, "Tie"))
	require.Len(t, got.Risks, 1)
	assert.Contains(t, got.Risks[0], "no difference")
	assert.Contains(t, got.Rationale, "both variants project the same")
}

func TestSynthesizeDeterministic(t *testing.T) {
	in := sampleInput()
	assert.Equal(t, Synthesize(in), Synthesize(in))

	// An explicit seed controls template choice.
	a := SynthesizeWith(in, NewSelector(7))
	b := SynthesizeWith(in, NewSelector(7))
	assert.Equal(t, a.SummaryA, b.SummaryA)
	assert.Equal(t, a.Rationale, b.Rationale)
}
