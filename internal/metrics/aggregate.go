// Package metrics turns the projected metric strings of an analysis into the
// per-metric comparison table.
package metrics

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"impactcompare/internal/domain"
)

// Row names, in table order.
const (
	CTR            = "Click-Through Rate (CTR)"
	Conversion     = "Conversion Rate"
	Dropoff        = "Drop-off %"
	TaskCompletion = "Task Completion"
	TimeToAction   = "Avg. Time-to-Action"
)

var numberRegex = regexp.MustCompile(`-?(?:\d+(?:,\d{3})*(?:\.\d+)?|\.\d+)`)

type tracked struct {
	name      string
	lowerWins bool
	pick      func(domain.ProjectedMetrics) (a, b string)
}

var table = []tracked{
	{CTR, false, func(m domain.ProjectedMetrics) (string, string) { return m.CTRA, m.CTRB }},
	{Conversion, false, func(m domain.ProjectedMetrics) (string, string) { return m.ConversionA, m.ConversionB }},
	{Dropoff, true, func(m domain.ProjectedMetrics) (string, string) { return m.DropoffA, m.DropoffB }},
	{TaskCompletion, false, func(m domain.ProjectedMetrics) (string, string) { return m.CompletionA, m.CompletionB }},
	{TimeToAction, true, func(m domain.ProjectedMetrics) (string, string) { return m.TimeToActA, m.TimeToActB }},
}

// Aggregate builds one row per tracked metric. A row whose values cannot be
// parsed is reported as a Tie with Low confidence.
func Aggregate(pm domain.ProjectedMetrics) []domain.MetricProjection {
	conf := pm.Confidence
	if !conf.Valid() {
		conf = domain.ConfidenceLow
	}
	rows := make([]domain.MetricProjection, 0, len(table))
	for _, t := range table {
		a, b := t.pick(pm)
		row := domain.MetricProjection{Metric: t.name, VariantA: a, VariantB: b, Confidence: conf}
		va, errA := Magnitude(a)
		vb, errB := Magnitude(b)
		if errA != nil || errB != nil {
			row.Winner = domain.WinnerTie
			row.Confidence = domain.ConfidenceLow
		} else {
			row.Winner = winner(va, vb, t.lowerWins)
		}
		rows = append(rows, row)
	}
	return rows
}

func winner(a, b float64, lowerWins bool) domain.Winner {
	switch {
	case a == b:
		return domain.WinnerTie
	case (a > b) != lowerWins:
		return domain.WinnerA
	}
	return domain.WinnerB
}

// Magnitude returns the single number in a formatted metric such as "42.5%",
// "1,200s" or ".5%". Values holding several numbers ("1m 30s", "2-3%") are
// rejected since there is no one magnitude to compare.
func Magnitude(s string) (float64, error) {
	m := numberRegex.FindAllString(s, 2)
	switch len(m) {
	case 0:
		return 0, fmt.Errorf("no numeric value in %q", s)
	case 2:
		return 0, fmt.Errorf("ambiguous numeric value in %q", s)
	}
	return strconv.ParseFloat(strings.ReplaceAll(m[0], ",", ""), 64)
}

// Impact assembles the table, composed rationale and overall confidence.
func Impact(a domain.ReasoningAnalysis) domain.ImpactData {
	conf := a.ProjectedMetrics.Confidence
	if !conf.Valid() {
		conf = domain.ConfidenceLow
	}
	return domain.ImpactData{
		MetricsTable: Aggregate(a.ProjectedMetrics),
		Rationale:    composeRationale(a, conf),
		Confidence:   conf,
	}
}

func composeRationale(a domain.ReasoningAnalysis, conf domain.Confidence) string {
	var b strings.Builder
	b.WriteString(a.Rationale)
	if len(a.Risks) > 0 {
		b.WriteString("\n\n**UX Risks to Consider:**")
		for _, r := range a.Risks {
			b.WriteString("\n- ")
			b.WriteString(r)
		}
	}
	fmt.Fprintf(&b, "\n\n**Recommendation:** %s\n\n**Confidence Level: %s**", a.Recommendation, conf)
	return b.String()
}
