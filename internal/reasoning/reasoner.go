// Package reasoning asks a text backend for a comparative analysis of two
// scored variants and falls back to heuristic synthesis when the reply is
// unusable.
package reasoning

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"impactcompare/internal/domain"
	"impactcompare/internal/fallback"
	"impactcompare/internal/llmjson"
	"impactcompare/internal/ports"
)

type Input = fallback.Input

//go:embed schemas/analysis.schema.json
var analysisSchemaJSON string

var analysisSchema = llmjson.MustCompileSchema("analysis.schema.json", analysisSchemaJSON)

type Reasoner struct {
	backend ports.TextBackend
	logger  *slog.Logger
}

func New(backend ports.TextBackend, logger *slog.Logger) *Reasoner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reasoner{backend: backend, logger: logger}
}

// Analyze calls the backend once. Backend errors are returned; a reply that
// cannot be parsed is replaced by fallback.Synthesize and degraded is true.
func (r *Reasoner) Analyze(ctx context.Context, in Input) (analysis domain.ReasoningAnalysis, degraded bool, err error) {
	r.logger.Info("reasoning analysis started")
	text, err := r.backend.Complete(ctx, SystemInstruction, BuildPrompt(in))
	if err != nil {
		return domain.ReasoningAnalysis{}, false, fmt.Errorf("reasoning analysis: %w", err)
	}
	r.logger.Debug("reasoning response", "preview", llmjson.Preview(text, 200))

	analysis, err = Parse(text, in.Context)
	if err != nil {
		r.logger.Warn("reasoning response unusable, synthesizing heuristic analysis",
			"event", "reasoning_fallback",
			"error", err)
		return fallback.Synthesize(in), true, nil
	}
	return analysis, false, nil
}

// Parse extracts an analysis from free-form text. The reported confidence is
// capped by how much context backed the request.
func Parse(text string, c domain.ComparisonContext) (domain.ReasoningAnalysis, error) {
	doc, err := llmjson.ExtractObject(text)
	if err != nil {
		return domain.ReasoningAnalysis{}, err
	}
	w, err := llmjson.Decode[wireAnalysis](doc, analysisSchema)
	if err != nil {
		return domain.ReasoningAnalysis{}, err
	}
	m := w.ProjectedMetrics
	return domain.ReasoningAnalysis{
		SummaryA:    strings.TrimSpace(w.SummaryA),
		SummaryB:    strings.TrimSpace(w.SummaryB),
		Differences: nonNil(w.Differences),
		ProjectedMetrics: domain.ProjectedMetrics{
			CTRA:        m.CTRA.percent(),
			CTRB:        m.CTRB.percent(),
			ConversionA: m.ConversionA.percent(),
			ConversionB: m.ConversionB.percent(),
			DropoffA:    m.DropoffA.percent(),
			DropoffB:    m.DropoffB.percent(),
			CompletionA: m.CompletionA.percent(),
			CompletionB: m.CompletionB.percent(),
			TimeToActA:  m.TimeToActA.seconds(),
			TimeToActB:  m.TimeToActB.seconds(),
			Confidence:  normalizeConfidence(m.Confidence).AtMost(c.Confidence()),
		},
		Rationale:      strings.TrimSpace(w.Rationale),
		Risks:          nonNil(w.Risks),
		Recommendation: strings.TrimSpace(w.Recommendation),
	}, nil
}

type wireAnalysis struct {
	SummaryA         string      `json:"summaryA"`
	SummaryB         string      `json:"summaryB"`
	Differences      []string    `json:"differences"`
	ProjectedMetrics wireMetrics `json:"projectedMetrics"`
	Rationale        string      `json:"rationale"`
	Risks            []string    `json:"risks"`
	Recommendation   string      `json:"recommendation"`
}

type wireMetrics struct {
	CTRA        metricValue `json:"ctrA"`
	CTRB        metricValue `json:"ctrB"`
	ConversionA metricValue `json:"conversionA"`
	ConversionB metricValue `json:"conversionB"`
	DropoffA    metricValue `json:"dropoffA"`
	DropoffB    metricValue `json:"dropoffB"`
	CompletionA metricValue `json:"completionA"`
	CompletionB metricValue `json:"completionB"`
	TimeToActA  metricValue `json:"timeToActA"`
	TimeToActB  metricValue `json:"timeToActB"`
	Confidence  string      `json:"confidence"`
}

// metricValue accepts "42%", "42" or 42. Bare numbers get a unit when
// rendered.
type metricValue struct {
	text   string
	number bool
}

func (v *metricValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v.text = strings.TrimSpace(s)
		_, err := strconv.ParseFloat(v.text, 64)
		v.number = err == nil
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	v.text = strconv.FormatFloat(f, 'f', -1, 64)
	v.number = true
	return nil
}

func (v metricValue) percent() string { return v.withUnit("%") }
func (v metricValue) seconds() string { return v.withUnit("s") }

func (v metricValue) withUnit(unit string) string {
	if v.number {
		return v.text + unit
	}
	return v.text
}

func normalizeConfidence(s string) domain.Confidence {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return domain.ConfidenceHigh
	case "medium":
		return domain.ConfidenceMedium
	case "low":
		return domain.ConfidenceLow
	}
	return ""
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
