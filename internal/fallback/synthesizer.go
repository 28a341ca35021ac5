// Package fallback derives a complete reasoning analysis from the heuristic
// scores alone. It is used when the reasoning backend's reply cannot be
// parsed, and has the same shape as a parsed analysis.
package fallback

import (
	"fmt"
	"strings"

	"impactcompare/internal/domain"
)

type Input struct {
	FeaturesA domain.VisionFeatureRecord `json:"featuresA"`
	FeaturesB domain.VisionFeatureRecord `json:"featuresB"`
	ScoresA   domain.ImpactScoreRecord   `json:"scoresA"`
	ScoresB   domain.ImpactScoreRecord   `json:"scoresB"`
	Context   domain.ComparisonContext   `json:"context"`
}

// Metric is the score the fallback ranks variants by.
type Metric struct {
	Label     string
	LowerWins bool
	value     func(domain.ImpactScoreRecord) int
}

var (
	metricCTR        = Metric{Label: "click-through rate", value: func(s domain.ImpactScoreRecord) int { return s.PredictedCTR }}
	metricDropoff    = Metric{Label: "drop-off", LowerWins: true, value: func(s domain.ImpactScoreRecord) int { return s.PredictedDropoff }}
	metricCompletion = Metric{Label: "task completion", value: func(s domain.ImpactScoreRecord) int { return s.PredictedTaskCompletion }}
	metricConversion = Metric{Label: "conversion rate", value: func(s domain.ImpactScoreRecord) int { return s.PredictedConversion }}
)

// PrimaryMetric maps the free-form primary metric onto a score by keyword.
func PrimaryMetric(primary string) Metric {
	p := strings.ToLower(primary)
	switch {
	case strings.Contains(p, "ctr"), strings.Contains(p, "click"):
		return metricCTR
	case strings.Contains(p, "drop"):
		return metricDropoff
	case strings.Contains(p, "completion"), strings.Contains(p, "task"):
		return metricCompletion
	}
	return metricConversion
}

// Winner compares a and b on m; equal values tie.
func (m Metric) Winner(a, b domain.ImpactScoreRecord) domain.Winner {
	va, vb := m.value(a), m.value(b)
	switch {
	case va == vb:
		return domain.WinnerTie
	case (va > vb) != m.LowerWins:
		return domain.WinnerA
	}
	return domain.WinnerB
}

// Synthesize builds the analysis with a selector seeded from the input.
func Synthesize(in Input) domain.ReasoningAnalysis {
	return SynthesizeWith(in, NewSelector(SeedFor(in)))
}

func SynthesizeWith(in Input, sel *Selector) domain.ReasoningAnalysis {
	metric := PrimaryMetric(in.Context.PrimaryMetric)
	winner := metric.Winner(in.ScoresA, in.ScoresB)

	return domain.ReasoningAnalysis{
		SummaryA:         sel.Render(summaryTemplates, summaryData(domain.VariantA, in.FeaturesA)),
		SummaryB:         sel.Render(summaryTemplates, summaryData(domain.VariantB, in.FeaturesB)),
		Differences:      differences(in),
		ProjectedMetrics: projectedMetrics(in.ScoresA, in.ScoresB),
		Rationale:        rationale(in, metric, winner, sel),
		Risks:            risks(in, metric),
		Recommendation:   recommendation(metric, winner),
	}
}

type summary struct {
	Variant     domain.Variant
	Components  string
	CTAs        string
	Clutter     string
	Readability string
	Placement   string
	Hierarchy   string
	Steps       string
}

func summaryData(v domain.Variant, f domain.VisionFeatureRecord) summary {
	components := f.Components
	if len(components) > 3 {
		components = components[:3]
	}
	names := strings.Join(components, ", ")
	if names == "" {
		names = "an unspecified set of components"
	}
	placement := "The primary action sits below the fold."
	if f.PrimaryCTAAboveFold {
		placement = "The primary action is visible above the fold."
	}
	hierarchy := "its visual hierarchy is weak"
	if f.VisualHierarchyStrong {
		hierarchy = "its visual hierarchy is clear"
	}
	return summary{
		Variant:     v,
		Components:  names,
		CTAs:        plural(f.CTACount, "CTA", "CTAs"),
		Clutter:     percent(f.ClutterScore),
		Readability: percent(f.ReadabilityScore),
		Placement:   placement,
		Hierarchy:   hierarchy,
		Steps:       plural(f.FlowSteps, "flow step", "flow steps"),
	}
}

func differences(in Input) []string {
	fa, fb := in.FeaturesA, in.FeaturesB
	sa, sb := in.ScoresA, in.ScoresB
	return []string{
		fmt.Sprintf("CTA count: A has %d, B has %d", fa.CTACount, fb.CTACount),
		fmt.Sprintf("Flow steps: A has %d, B has %d", fa.FlowSteps, fb.FlowSteps),
		fmt.Sprintf("Clutter: A scores %s, B scores %s", percent(fa.ClutterScore), percent(fb.ClutterScore)),
		fmt.Sprintf("Readability: A scores %s, B scores %s", percent(fa.ReadabilityScore), percent(fb.ReadabilityScore)),
		fmt.Sprintf("Predicted CTR: A %d%% vs B %d%% (%s)", sa.PredictedCTR, sb.PredictedCTR, delta(sa.PredictedCTR, sb.PredictedCTR, "pts")),
		fmt.Sprintf("Predicted conversion: A %d%% vs B %d%% (%s)", sa.PredictedConversion, sb.PredictedConversion, delta(sa.PredictedConversion, sb.PredictedConversion, "pts")),
		fmt.Sprintf("Time-to-action: A %ds vs B %ds (%s)", sa.PredictedTimeToAct, sb.PredictedTimeToAct, delta(sa.PredictedTimeToAct, sb.PredictedTimeToAct, "s")),
	}
}

func projectedMetrics(a, b domain.ImpactScoreRecord) domain.ProjectedMetrics {
	return domain.ProjectedMetrics{
		CTRA:        pct(a.PredictedCTR),
		CTRB:        pct(b.PredictedCTR),
		ConversionA: pct(a.PredictedConversion),
		ConversionB: pct(b.PredictedConversion),
		DropoffA:    pct(a.PredictedDropoff),
		DropoffB:    pct(b.PredictedDropoff),
		CompletionA: pct(a.PredictedTaskCompletion),
		CompletionB: pct(b.PredictedTaskCompletion),
		TimeToActA:  fmt.Sprintf("%ds", a.PredictedTimeToAct),
		TimeToActB:  fmt.Sprintf("%ds", b.PredictedTimeToAct),
		Confidence:  domain.ConfidenceMedium,
	}
}

func rationale(in Input, m Metric, w domain.Winner, sel *Selector) string {
	va, vb := m.value(in.ScoresA), m.value(in.ScoresB)
	var lead string
	if w == domain.WinnerTie {
		lead = fmt.Sprintf("Based on heuristic analysis, both variants project the same %s (%d%%).", m.Label, va)
	} else {
		lead = fmt.Sprintf("Based on heuristic analysis, Variant %s shows stronger projected %s (A: %d%%, B: %d%%).", w, m.Label, va, vb)
	}
	lead += " The analysis considers flow complexity, visual clutter, readability, and CTA placement."

	audience := "general users"
	if s := strings.TrimSpace(in.Context.UserSegment); s != "" {
		audience = s
	}
	detail := fmt.Sprintf("For %s, Variant A carries %s and Variant B carries %s.",
		audience,
		plural(len(in.ScoresA.UsabilityRisks), "usability risk", "usability risks"),
		plural(len(in.ScoresB.UsabilityRisks), "usability risk", "usability risks"))

	return lead + "\n\n" + detail + "\n\n" + sel.Render(closingTemplates, nil)
}

func risks(in Input, m Metric) []string {
	var out []string
	for _, v := range []struct {
		name  domain.Variant
		risks []string
	}{{domain.VariantA, in.ScoresA.UsabilityRisks}, {domain.VariantB, in.ScoresB.UsabilityRisks}} {
		for i, r := range v.risks {
			if i == 2 {
				break
			}
			out = append(out, fmt.Sprintf("Variant %s: %s", v.name, r))
		}
	}
	if len(out) == 0 {
		va, vb := m.value(in.ScoresA), m.value(in.ScoresB)
		out = append(out, fmt.Sprintf("No heuristic usability risks were triggered; the %s gap (%s) is small enough that user testing should confirm it",
			m.Label, delta(va, vb, "pts")))
	}
	return out
}

func recommendation(m Metric, w domain.Winner) string {
	if w == domain.WinnerTie {
		return fmt.Sprintf("Tie - both variants score equally on %s under heuristic scoring", m.Label)
	}
	return fmt.Sprintf("%s wins - based on heuristic scoring of %s", w, m.Label)
}

func delta(a, b int, unit string) string {
	switch {
	case a == b:
		return "no difference"
	case a > b:
		return fmt.Sprintf("A +%d %s", a-b, unit)
	}
	return fmt.Sprintf("B +%d %s", b-a, unit)
}

func pct(v int) string { return fmt.Sprintf("%.1f%%", float64(v)) }

func percent(score float64) string { return fmt.Sprintf("%.0f%%", score*100) }

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}
