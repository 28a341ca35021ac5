// Package extraction asks a vision backend to describe one design variant and
// turns its reply into a feature record.
package extraction

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"math"

	"impactcompare/internal/domain"
	"impactcompare/internal/imageref"
	"impactcompare/internal/llmjson"
	"impactcompare/internal/ports"
)

// Prompt is the fixed extraction instruction sent with every image.
const Prompt = `Analyze this UI design screenshot and extract the following information in JSON format:
{
  "components": ["list of UI components like buttons, inputs, nav bars, cards, etc."],
  "hierarchy": ["describe the visual hierarchy from most to least prominent elements"],
  "ctaCount": <number of call-to-action buttons/links>,
  "textBlocks": <number of distinct text content blocks>,
  "tapTargets": <number of interactive elements>,
  "flowSteps": <estimated number of steps in the user flow>,
  "dominantColors": ["list of main colors used"],
  "clutterScore": <0-1 score where 0 is minimal and 1 is very cluttered>,
  "readabilityScore": <0-1 score where 0 is hard to read and 1 is very readable>,
  "primaryCTAAboveFold": <true/false if main action is prominently visible>,
  "visualHierarchyStrong": <true/false if there's clear visual hierarchy>
}

Be precise and analytical. Focus on UX patterns and usability aspects.`

//go:embed schemas/features.schema.json
var featuresSchemaJSON string

var featuresSchema = llmjson.MustCompileSchema("features.schema.json", featuresSchemaJSON)

// DefaultFeatures is substituted when the backend answers but its reply holds
// no usable feature record. Values are neutral so scoring stays mid-range.
func DefaultFeatures() domain.VisionFeatureRecord {
	return domain.VisionFeatureRecord{
		Components:            []string{"Unable to extract"},
		Hierarchy:             []string{"Unable to analyze"},
		CTACount:              1,
		TextBlocks:            3,
		TapTargets:            5,
		FlowSteps:             2,
		DominantColors:        []string{"unknown"},
		ClutterScore:          0.5,
		ReadabilityScore:      0.7,
		PrimaryCTAAboveFold:   true,
		VisualHierarchyStrong: true,
	}
}

// Counts are decoded as floats because models sometimes write 3.0.
type wireFeatures struct {
	Components            []string `json:"components"`
	Hierarchy             []string `json:"hierarchy"`
	CTACount              float64  `json:"ctaCount"`
	TextBlocks            float64  `json:"textBlocks"`
	TapTargets            float64  `json:"tapTargets"`
	FlowSteps             float64  `json:"flowSteps"`
	DominantColors        []string `json:"dominantColors"`
	ClutterScore          float64  `json:"clutterScore"`
	ReadabilityScore      float64  `json:"readabilityScore"`
	PrimaryCTAAboveFold   bool     `json:"primaryCTAAboveFold"`
	VisualHierarchyStrong bool     `json:"visualHierarchyStrong"`
}

type Extractor struct {
	backend ports.VisionBackend
	logger  *slog.Logger
}

func New(backend ports.VisionBackend, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{backend: backend, logger: logger}
}

// Extract describes one variant. A backend failure is returned as an error
// naming the variant; an unparseable reply yields DefaultFeatures and
// degraded=true.
func (e *Extractor) Extract(ctx context.Context, variant domain.Variant, image imageref.Ref) (rec domain.VisionFeatureRecord, degraded bool, err error) {
	e.logger.Info("vision analysis started", "variant", variant, "image", image.Describe())
	text, err := e.backend.DescribeImage(ctx, Prompt, image)
	if err != nil {
		return domain.VisionFeatureRecord{}, false, fmt.Errorf("extract features for variant %s: %w", variant, err)
	}
	e.logger.Debug("vision response", "variant", variant, "preview", llmjson.Preview(text, 300))

	rec, err = Parse(text)
	if err != nil {
		e.logger.Warn("vision response unusable, using default features",
			"event", "extraction_default_features",
			"variant", variant,
			"error", err)
		return DefaultFeatures(), true, nil
	}
	return rec, false, nil
}

// Parse extracts and validates a feature record from free-form backend text.
func Parse(text string) (domain.VisionFeatureRecord, error) {
	doc, err := llmjson.ExtractObject(text)
	if err != nil {
		return domain.VisionFeatureRecord{}, err
	}
	w, err := llmjson.Decode[wireFeatures](doc, featuresSchema)
	if err != nil {
		return domain.VisionFeatureRecord{}, err
	}
	return domain.VisionFeatureRecord{
		Components:            nonNil(w.Components),
		Hierarchy:             nonNil(w.Hierarchy),
		CTACount:              count(w.CTACount),
		TextBlocks:            count(w.TextBlocks),
		TapTargets:            count(w.TapTargets),
		FlowSteps:             count(w.FlowSteps),
		DominantColors:        nonNil(w.DominantColors),
		ClutterScore:          unit(w.ClutterScore),
		ReadabilityScore:      unit(w.ReadabilityScore),
		PrimaryCTAAboveFold:   w.PrimaryCTAAboveFold,
		VisualHierarchyStrong: w.VisualHierarchyStrong,
	}, nil
}

// No single screen holds more elements than this.
const maxCount = 1000

func count(v float64) int {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	return int(math.Round(min(v, maxCount)))
}

func unit(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
