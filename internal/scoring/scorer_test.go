package scoring

import (
	"encoding/json"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"impactcompare/internal/domain"
)

func cleanVariant() domain.VisionFeatureRecord {
	return domain.VisionFeatureRecord{
		CTACount:              1,
		ClutterScore:          0.2,
		ReadabilityScore:      0.8,
		PrimaryCTAAboveFold:   true,
		VisualHierarchyStrong: true,
		FlowSteps:             1,
		TextBlocks:            3,
		TapTargets:            5,
	}
}

func busyVariant() domain.VisionFeatureRecord {
	return domain.VisionFeatureRecord{
		CTACount:              3,
		ClutterScore:          0.8,
		ReadabilityScore:      0.3,
		PrimaryCTAAboveFold:   false,
		VisualHierarchyStrong: false,
		FlowSteps:             5,
		TextBlocks:            8,
		TapTargets:            12,
	}
}

func TestScore_CleanVariant(t *testing.T) {
	got := Score(cleanVariant())

	assert.Equal(t, 65, got.PredictedCTR)
	assert.Equal(t, 70, got.PredictedConversion)
	assert.Equal(t, 19, got.PredictedDropoff)
	assert.Equal(t, 81, got.PredictedTaskCompletion)
	assert.Equal(t, 18, got.PredictedTimeToAct)
	assert.LessOrEqual(t, len(got.UsabilityRisks), 1)
}

func TestScore_BusyVariant(t *testing.T) {
	got := Score(busyVariant())

	assert.Equal(t, 39, got.PredictedCTR)
	assert.Equal(t, 25, got.PredictedConversion)
	assert.Equal(t, 35, got.PredictedDropoff)
	assert.Equal(t, 64, got.PredictedTaskCompletion)
	assert.Equal(t, 31, got.PredictedTimeToAct)
	assert.Less(t, got.PredictedTaskCompletion, 70)

	assert.Equal(t, []string{
		"High flow complexity (5 steps) may increase drop-off",
		"Visual clutter (score: 80%) may hinder task completion",
		"Low readability (score: 30%) may reduce clarity",
		"Multiple CTAs (3) may dilute focus",
		"Primary CTA is not prominently positioned above the fold",
		"Visual hierarchy could be strengthened for better comprehension",
		"High text density (8 blocks) may reduce engagement",
	}, got.UsabilityRisks)
}

func TestScore_Rules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *domain.VisionFeatureRecord)
		check  func(t *testing.T, base, got domain.ImpactScoreRecord)
	}{
		{
			name:   "flow dropoff contribution caps at 25",
			mutate: func(f *domain.VisionFeatureRecord) { f.FlowSteps = 10 },
			check: func(t *testing.T, _, got domain.ImpactScoreRecord) {
				assert.Equal(t, 40, got.PredictedDropoff)
				assert.Equal(t, 45, got.PredictedTimeToAct)
			},
		},
		{
			name:   "zero flow steps adds nothing",
			mutate: func(f *domain.VisionFeatureRecord) { f.FlowSteps = 0 },
			check: func(t *testing.T, _, got domain.ImpactScoreRecord) {
				assert.Equal(t, 15, got.PredictedDropoff)
				assert.Equal(t, 15, got.PredictedTimeToAct)
			},
		},
		{
			name:   "three flow steps has no risk",
			mutate: func(f *domain.VisionFeatureRecord) { f.FlowSteps = 3 },
			check: func(t *testing.T, _, got domain.ImpactScoreRecord) {
				assert.Empty(t, got.UsabilityRisks)
			},
		},
		{
			name:   "no CTA leaves ctr untouched by count rule",
			mutate: func(f *domain.VisionFeatureRecord) { f.CTACount = 0 },
			check: func(t *testing.T, base, got domain.ImpactScoreRecord) {
				assert.Equal(t, base.PredictedCTR-5, got.PredictedCTR)
				assert.Empty(t, got.UsabilityRisks)
			},
		},
		{
			name:   "text blocks between 5 and 6 penalise without risk",
			mutate: func(f *domain.VisionFeatureRecord) { f.TextBlocks = 6 },
			check: func(t *testing.T, base, got domain.ImpactScoreRecord) {
				assert.Equal(t, base.PredictedConversion-3-4, got.PredictedConversion)
				assert.Empty(t, got.UsabilityRisks)
			},
		},
		{
			name:   "tap targets add half a second each above ten",
			mutate: func(f *domain.VisionFeatureRecord) { f.TapTargets = 14 },
			check: func(t *testing.T, base, got domain.ImpactScoreRecord) {
				assert.Equal(t, base.PredictedTimeToAct+2, got.PredictedTimeToAct)
			},
		},
		{
			name:   "zero readability skips the rule",
			mutate: func(f *domain.VisionFeatureRecord) { f.ReadabilityScore = 0 },
			check: func(t *testing.T, base, got domain.ImpactScoreRecord) {
				assert.Equal(t, base.PredictedConversion-6, got.PredictedConversion)
				assert.Empty(t, got.UsabilityRisks)
			},
		},
	}
	base := Score(cleanVariant())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := cleanVariant()
			tt.mutate(&f)
			tt.check(t, base, Score(f))
		})
	}
}

func TestScore_Clamps(t *testing.T) {
	worst := domain.VisionFeatureRecord{
		CTACount:     60,
		ClutterScore: 1,
		FlowSteps:    200,
		TextBlocks:   100,
		TapTargets:   500,
	}
	got := Score(worst)
	assert.Equal(t, 0, got.PredictedCTR)
	assert.Equal(t, 0, got.PredictedConversion)
	assert.Equal(t, 60, got.PredictedTimeToAct)

	best := domain.VisionFeatureRecord{
		CTACount:              1,
		ReadabilityScore:      9,
		PrimaryCTAAboveFold:   true,
		VisualHierarchyStrong: true,
		TextBlocks:            1,
	}
	got = Score(best)
	assert.Equal(t, 100, got.PredictedConversion)
	assert.Equal(t, 15, got.PredictedTimeToAct)
}

func TestScore_BoundsAndDeterminism(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 2000; i++ {
		f := domain.VisionFeatureRecord{
			Components:            []string{"button", "card"},
			CTACount:              rng.IntN(12),
			TextBlocks:            rng.IntN(20),
			TapTargets:            rng.IntN(40),
			FlowSteps:             rng.IntN(15),
			ClutterScore:          rng.Float64(),
			ReadabilityScore:      rng.Float64(),
			PrimaryCTAAboveFold:   rng.IntN(2) == 0,
			VisualHierarchyStrong: rng.IntN(2) == 0,
		}

		first := Score(f)
		second := Score(f)

		for name, v := range map[string]int{
			"ctr":            first.PredictedCTR,
			"conversion":     first.PredictedConversion,
			"dropoff":        first.PredictedDropoff,
			"taskCompletion": first.PredictedTaskCompletion,
		} {
			require.GreaterOrEqual(t, v, 0, "%s for %+v", name, f)
			require.LessOrEqual(t, v, 100, "%s for %+v", name, f)
		}
		require.GreaterOrEqual(t, first.PredictedTimeToAct, 5)
		require.LessOrEqual(t, first.PredictedTimeToAct, 60)

		a, err := json.Marshal(first)
		require.NoError(t, err)
		b, err := json.Marshal(second)
		require.NoError(t, err)
		require.Equal(t, string(a), string(b))
	}
}

func TestScore_RisksNeverNil(t *testing.T) {
	got := Score(cleanVariant())
	require.NotNil(t, got.UsabilityRisks)
}
