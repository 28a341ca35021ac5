package reasoning

import (
	"encoding/json"
	"fmt"
	"strings"

	"impactcompare/internal/domain"
)

// SystemInstruction is sent as the system message of every reasoning call.
const SystemInstruction = "You are a UX expert providing analytical comparisons of design variants. Always respond with valid JSON only."

const outputFormat = `Provide your analysis in this JSON format:
{
  "summaryA": "Brief description of Variant A's design approach and strengths (2-3 sentences)",
  "summaryB": "Brief description of Variant B's design approach and strengths (2-3 sentences)",
  "differences": ["List of 4-6 key differences between the variants"],
  "projectedMetrics": {
    "ctrA": "<percentage>",
    "ctrB": "<percentage>",
    "conversionA": "<percentage>",
    "conversionB": "<percentage>",
    "dropoffA": "<percentage>",
    "dropoffB": "<percentage>",
    "completionA": "<percentage>",
    "completionB": "<percentage>",
    "timeToActA": "<seconds>",
    "timeToActB": "<seconds>",
    "confidence": "High/Medium/Low"
  },
  "rationale": "Detailed explanation of why one variant performs better (3-4 paragraphs with clear reasoning)",
  "risks": ["List of 3-5 UX risks to consider"],
  "recommendation": "A wins/B wins/Tie - with brief justification"
}`

// BuildPrompt renders the user prompt for one comparison.
func BuildPrompt(in Input) string {
	var b strings.Builder
	b.WriteString("You are a UX expert analyzing two design variants. Based on the extracted features and heuristic scores below, provide a detailed comparison and recommendation.\n\n")

	writeVariant(&b, domain.VariantA, in.FeaturesA, in.ScoresA)
	writeVariant(&b, domain.VariantB, in.FeaturesB, in.ScoresB)

	c := in.Context
	b.WriteString("**User Context:**\n")
	fmt.Fprintf(&b, "- Target Users: %s\n", or(c.UserSegment, "General users"))
	fmt.Fprintf(&b, "- Product Stage: %s\n", or(c.ProductStage, "Not specified"))
	fmt.Fprintf(&b, "- User Mindset: %s\n", or(c.UserMindset, "Not specified"))
	fmt.Fprintf(&b, "- Primary Metric: %s\n", or(c.PrimaryMetric, "Conversion Rate"))
	fmt.Fprintf(&b, "- Assumptions: %s\n", or(c.Assumptions, "None provided"))
	fmt.Fprintf(&b, "- Pain Points: %s\n\n", or(c.PainPoints, "None provided"))

	b.WriteString("Use the heuristic scores as an anchor baseline for projectedMetrics. Adjust them only where the features and context clearly justify it, and do not invent independent numbers.\n")
	fmt.Fprintf(&b, "Rate confidence High only when target users, assumptions and pain points are all provided, Low when none of them are, Medium otherwise. For this comparison confidence can be at most %s.\n\n", c.Confidence())

	b.WriteString(outputFormat)
	return b.String()
}

func writeVariant(b *strings.Builder, v domain.Variant, f domain.VisionFeatureRecord, s domain.ImpactScoreRecord) {
	features, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		features = []byte("{}")
	}
	fmt.Fprintf(b, "**Variant %s Features:**\n%s\n\n", v, features)
	fmt.Fprintf(b, "**Variant %s Heuristic Scores:**\n", v)
	fmt.Fprintf(b, "- Predicted CTR: %d%%\n", s.PredictedCTR)
	fmt.Fprintf(b, "- Predicted Conversion: %d%%\n", s.PredictedConversion)
	fmt.Fprintf(b, "- Predicted Drop-off: %d%%\n", s.PredictedDropoff)
	fmt.Fprintf(b, "- Predicted Time-to-Act: %ds\n", s.PredictedTimeToAct)
	fmt.Fprintf(b, "- Predicted Task Completion: %d%%\n", s.PredictedTaskCompletion)
	fmt.Fprintf(b, "- Usability Risks: %s\n\n", strings.Join(s.UsabilityRisks, "; "))
}

func or(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
