package domain

import (
	"strings"
	"time"
)

// Core records of one comparison. Each is produced once by its pipeline stage
// and only read afterwards; JSON names match the wire format clients expect.

// Variant names one of the two designs being compared.
type Variant string

const (
	VariantA Variant = "A"
	VariantB Variant = "B"
)

// Winner is the per-metric or overall outcome of a comparison.
type Winner string

const (
	WinnerA   Winner = "A"
	WinnerB   Winner = "B"
	WinnerTie Winner = "Tie"
)

// Confidence is a coarse label for how much context backed a projection.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

func (c Confidence) rank() int {
	switch c {
	case ConfidenceHigh:
		return 3
	case ConfidenceMedium:
		return 2
	case ConfidenceLow:
		return 1
	}
	return 0
}

// Valid reports whether c is one of the three known labels.
func (c Confidence) Valid() bool { return c.rank() > 0 }

// AtMost returns the lower of c and limit. An unknown c yields limit.
func (c Confidence) AtMost(limit Confidence) Confidence {
	if !c.Valid() || c.rank() > limit.rank() {
		return limit
	}
	return c
}

type VisionFeatureRecord struct {
	Components            []string `json:"components"`
	Hierarchy             []string `json:"hierarchy"`
	CTACount              int      `json:"ctaCount"`
	TextBlocks            int      `json:"textBlocks"`
	TapTargets            int      `json:"tapTargets"`
	FlowSteps             int      `json:"flowSteps"`
	DominantColors        []string `json:"dominantColors"`
	ClutterScore          float64  `json:"clutterScore"`
	ReadabilityScore      float64  `json:"readabilityScore"`
	PrimaryCTAAboveFold   bool     `json:"primaryCTAAboveFold"`
	VisualHierarchyStrong bool     `json:"visualHierarchyStrong"`
}

type ImpactScoreRecord struct {
	PredictedCTR            int      `json:"predictedCTR"`
	PredictedConversion     int      `json:"predictedConversion"`
	PredictedDropoff        int      `json:"predictedDropoff"`
	PredictedTimeToAct      int      `json:"predictedTimeToAct"`
	PredictedTaskCompletion int      `json:"predictedTaskCompletion"`
	UsabilityRisks          []string `json:"usabilityRisks"`
}

// ComparisonContext is free-form and fully optional.
type ComparisonContext struct {
	UserSegment   string `json:"userSegment,omitempty" yaml:"userSegment"`
	ProductStage  string `json:"productStage,omitempty" yaml:"productStage"`
	UserMindset   string `json:"userMindset,omitempty" yaml:"userMindset"`
	PrimaryMetric string `json:"primaryMetric,omitempty" yaml:"primaryMetric"`
	Assumptions   string `json:"assumptions,omitempty" yaml:"assumptions"`
	PainPoints    string `json:"painPoints,omitempty" yaml:"painPoints"`
}

type ProjectedMetrics struct {
	CTRA        string     `json:"ctrA"`
	CTRB        string     `json:"ctrB"`
	ConversionA string     `json:"conversionA"`
	ConversionB string     `json:"conversionB"`
	DropoffA    string     `json:"dropoffA"`
	DropoffB    string     `json:"dropoffB"`
	CompletionA string     `json:"completionA"`
	CompletionB string     `json:"completionB"`
	TimeToActA  string     `json:"timeToActA"`
	TimeToActB  string     `json:"timeToActB"`
	Confidence  Confidence `json:"confidence"`
}

// ReasoningAnalysis has the same shape whether it came from the reasoning
// backend or from fallback synthesis.
type ReasoningAnalysis struct {
	SummaryA         string           `json:"summaryA"`
	SummaryB         string           `json:"summaryB"`
	Differences      []string         `json:"differences"`
	ProjectedMetrics ProjectedMetrics `json:"projectedMetrics"`
	Rationale        string           `json:"rationale"`
	Risks            []string         `json:"risks"`
	Recommendation   string           `json:"recommendation"`
}

// AISummary is the narrative part of an analysis.
type AISummary struct {
	SummaryA    string   `json:"summaryA"`
	SummaryB    string   `json:"summaryB"`
	Differences []string `json:"differences"`
}

func (a ReasoningAnalysis) Summary() AISummary {
	return AISummary{SummaryA: a.SummaryA, SummaryB: a.SummaryB, Differences: a.Differences}
}

// MetricProjection is one row of the comparison table.
type MetricProjection struct {
	Metric     string     `json:"metric"`
	VariantA   string     `json:"variantA"`
	VariantB   string     `json:"variantB"`
	Winner     Winner     `json:"winner"`
	Confidence Confidence `json:"confidence"`
}

type ImpactData struct {
	MetricsTable []MetricProjection `json:"metricsTable"`
	Rationale    string             `json:"rationale"`
	Confidence   Confidence         `json:"confidence"`
}

// AnalysisResult is the envelope returned across the service boundary.
type AnalysisResult struct {
	FeaturesA  VisionFeatureRecord `json:"featuresA"`
	FeaturesB  VisionFeatureRecord `json:"featuresB"`
	ScoresA    ImpactScoreRecord   `json:"scoresA"`
	ScoresB    ImpactScoreRecord   `json:"scoresB"`
	Analysis   ReasoningAnalysis   `json:"analysis"`
	Impact     ImpactData          `json:"impact"`
	Disclaimer string              `json:"disclaimer"`
	// Degraded is set when any stage substituted a default or fallback.
	Degraded bool `json:"degraded,omitempty"`
}

const Disclaimer = "This projection combines visual analysis + heuristics + LLM reasoning. Metrics are directional, not absolute."

type ComparisonStatus string

const (
	StatusQueued    ComparisonStatus = "queued"
	StatusRunning   ComparisonStatus = "running"
	StatusCompleted ComparisonStatus = "completed"
	StatusFailed    ComparisonStatus = "failed"
)

// Terminal reports whether no worker will touch the comparison again.
func (s ComparisonStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Comparison is the stored form of one request and its outcome.
type Comparison struct {
	ID            string            `json:"id"`
	Status        ComparisonStatus  `json:"status"`
	ImageA        string            `json:"imageA,omitempty"`
	ImageB        string            `json:"imageB,omitempty"`
	SourceDomainA string            `json:"sourceDomainA,omitempty"`
	SourceDomainB string            `json:"sourceDomainB,omitempty"`
	Context       ComparisonContext `json:"context"`
	Result        *AnalysisResult   `json:"result,omitempty"`
	Failure       string            `json:"failure,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// AnalysisRequest is the inbound pipeline request.
type AnalysisRequest struct {
	ImageA  string             `json:"imageA"`
	ImageB  string             `json:"imageB"`
	Context *ComparisonContext `json:"context,omitempty"`
}

// Ctx returns the request context or an empty one.
func (r AnalysisRequest) Ctx() ComparisonContext {
	if r.Context == nil {
		return ComparisonContext{}
	}
	return *r.Context
}

// Confidence grades how much optional context backs a projection: all of
// segment, assumptions and pain points give High, none of them gives Low.
func (c ComparisonContext) Confidence() Confidence {
	present := 0
	for _, v := range []string{c.UserSegment, c.Assumptions, c.PainPoints} {
		if strings.TrimSpace(v) != "" {
			present++
		}
	}
	switch present {
	case 3:
		return ConfidenceHigh
	case 0:
		return ConfidenceLow
	}
	return ConfidenceMedium
}
