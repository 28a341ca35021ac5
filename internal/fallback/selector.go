package fallback

import (
	"encoding/json"
	"hash/fnv"
	"math/rand/v2"
	"strings"
	"text/template"
)

// Selector picks among canned narrative templates. The same seed always
// yields the same sequence of picks.
type Selector struct {
	rng *rand.Rand
}

func NewSelector(seed uint64) *Selector {
	return &Selector{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// SeedFor derives a seed from the synthesizer input so repeated runs on the
// same records produce the same narrative.
func SeedFor(in Input) uint64 {
	b, err := json.Marshal(in)
	if err != nil {
		return 0
	}
	h := fnv.New64a()
	h.Write(b)
	return h.Sum64()
}

// Render executes one template chosen from options with data.
func (s *Selector) Render(options []*template.Template, data any) string {
	t := options[s.rng.IntN(len(options))]
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return ""
	}
	return sb.String()
}

func templates(texts ...string) []*template.Template {
	out := make([]*template.Template, 0, len(texts))
	for i, text := range texts {
		out = append(out, template.Must(template.New("t"+string(rune('a'+i))).Parse(text)))
	}
	return out
}

var summaryTemplates = templates(
	`Variant {{.Variant}} features {{.Components}} with {{.CTAs}} and a clutter score of {{.Clutter}}. {{.Placement}}`,
	`Variant {{.Variant}} is built around {{.Components}}. It shows {{.CTAs}}, readability of {{.Readability}} and clutter of {{.Clutter}}.`,
	`Variant {{.Variant}} combines {{.Components}}; {{.Hierarchy}} and it carries {{.CTAs}} across {{.Steps}}.`,
)

var closingTemplates = templates(
	`These projections are directional and should be validated with qualitative user testing.`,
	`Treat these numbers as directional signals; a short usability study will confirm whether the gap holds for your users.`,
	`The heuristics capture layout-level effects only, so validate the outcome against real user behavior before committing.`,
)
