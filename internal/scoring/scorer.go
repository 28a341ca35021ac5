// Package scoring turns a variant's extracted features into directional
// impact scores. Score is pure and deterministic; it never looks at the
// other variant.
package scoring

import (
	"fmt"
	"math"

	"impactcompare/internal/domain"
)

// Baselines before any rule applies.
const (
	baseCTR            = 50.0
	baseConversion     = 50.0
	baseDropoff        = 15.0
	baseTimeToAct      = 15.0
	baseTaskCompletion = 80.0
)

const (
	minTimeToAct = 5
	maxTimeToAct = 60
)

type accumulator struct {
	ctr, conversion, dropoff, timeToAct, taskCompletion float64
	risks                                               []string
}

func (a *accumulator) risk(format string, args ...any) {
	a.risks = append(a.risks, fmt.Sprintf(format, args...))
}

// rule contributions are additive; clamping happens once at the end.
type rule func(f domain.VisionFeatureRecord, a *accumulator)

// rules run in this order and risks are reported in the same order.
var rules = []rule{
	flowComplexity,
	clutter,
	readability,
	ctaCount,
	ctaAboveFold,
	visualHierarchy,
	textDensity,
	tapTargets,
}

// Score applies the heuristic rule set to one feature record.
func Score(f domain.VisionFeatureRecord) domain.ImpactScoreRecord {
	a := &accumulator{
		ctr:            baseCTR,
		conversion:     baseConversion,
		dropoff:        baseDropoff,
		timeToAct:      baseTimeToAct,
		taskCompletion: baseTaskCompletion,
		risks:          []string{},
	}
	for _, r := range rules {
		r(f, a)
	}
	return domain.ImpactScoreRecord{
		PredictedCTR:            clampRound(a.ctr, 0, 100),
		PredictedConversion:     clampRound(a.conversion, 0, 100),
		PredictedDropoff:        clampRound(a.dropoff, 0, 100),
		PredictedTimeToAct:      clampRound(a.timeToAct, minTimeToAct, maxTimeToAct),
		PredictedTaskCompletion: clampRound(a.taskCompletion, 0, 100),
		UsabilityRisks:          a.risks,
	}
}

func flowComplexity(f domain.VisionFeatureRecord, a *accumulator) {
	if f.FlowSteps <= 0 {
		return
	}
	a.dropoff += math.Min(float64(f.FlowSteps)*4, 25)
	a.timeToAct += float64(f.FlowSteps) * 3
	if f.FlowSteps > 3 {
		a.risk("High flow complexity (%d steps) may increase drop-off", f.FlowSteps)
	}
}

func clutter(f domain.VisionFeatureRecord, a *accumulator) {
	if f.ClutterScore <= 0 {
		return
	}
	a.taskCompletion -= f.ClutterScore * 20
	a.conversion -= f.ClutterScore * 10
	if f.ClutterScore > 0.5 {
		a.risk("Visual clutter (score: %s) may hinder task completion", percent(f.ClutterScore))
	}
}

func readability(f domain.VisionFeatureRecord, a *accumulator) {
	if f.ReadabilityScore <= 0 {
		return
	}
	a.conversion += (f.ReadabilityScore - 0.5) * 20
	if f.ReadabilityScore < 0.5 {
		a.risk("Low readability (score: %s) may reduce clarity", percent(f.ReadabilityScore))
	}
}

func ctaCount(f domain.VisionFeatureRecord, a *accumulator) {
	switch {
	case f.CTACount == 1:
		a.ctr += 5
	case f.CTACount > 1:
		a.ctr -= float64(f.CTACount-1) * 3
		a.risk("Multiple CTAs (%d) may dilute focus", f.CTACount)
	}
}

func ctaAboveFold(f domain.VisionFeatureRecord, a *accumulator) {
	if f.PrimaryCTAAboveFold {
		a.ctr += 10
		a.conversion += 5
		return
	}
	a.ctr -= 5
	a.risk("Primary CTA is not prominently positioned above the fold")
}

func visualHierarchy(f domain.VisionFeatureRecord, a *accumulator) {
	if f.VisualHierarchyStrong {
		a.conversion += 8
		a.taskCompletion += 5
		return
	}
	a.conversion -= 5
	a.risk("Visual hierarchy could be strengthened for better comprehension")
}

func textDensity(f domain.VisionFeatureRecord, a *accumulator) {
	if f.TextBlocks <= 4 {
		a.conversion += 3
		return
	}
	a.conversion -= float64(f.TextBlocks-4) * 2
	if f.TextBlocks > 6 {
		a.risk("High text density (%d blocks) may reduce engagement", f.TextBlocks)
	}
}

func tapTargets(f domain.VisionFeatureRecord, a *accumulator) {
	if f.TapTargets > 10 {
		a.timeToAct += float64(f.TapTargets-10) * 0.5
	}
}

func clampRound(v float64, lo, hi int) int {
	if math.IsNaN(v) {
		return lo
	}
	r := math.Round(v)
	if r < float64(lo) {
		return lo
	}
	if r > float64(hi) {
		return hi
	}
	return int(r)
}

func percent(score float64) string {
	return fmt.Sprintf("%.0f%%", score*100)
}
