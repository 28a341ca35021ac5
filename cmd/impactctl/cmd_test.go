package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"impactcompare/internal/config"
	"impactcompare/internal/domain"
	"impactcompare/internal/ports"
)

type fakeAnalyzer struct {
	got domain.AnalysisRequest
	res domain.AnalysisResult
	err error
}

func (f *fakeAnalyzer) Analyze(_ context.Context, req domain.AnalysisRequest) (domain.AnalysisResult, error) {
	f.got = req
	return f.res, f.err
}

func sampleResult() domain.AnalysisResult {
	return domain.AnalysisResult{
		Analysis: domain.ReasoningAnalysis{
			SummaryA:       "Dense layout",
			SummaryB:       "Focused layout",
			Differences:    []string{"CTA count: 3 vs 1"},
			Recommendation: "B wins - clearer primary action",
		},
		Impact: domain.ImpactData{
			MetricsTable: []domain.MetricProjection{
				{Metric: "Click-Through Rate (CTR)", VariantA: "3.1%", VariantB: "4.2%", Winner: domain.WinnerB, Confidence: domain.ConfidenceMedium},
				{Metric: "Avg. Time-to-Action", VariantA: "12s", VariantB: "12s", Winner: domain.WinnerTie, Confidence: domain.ConfidenceLow},
			},
			Rationale:  "B is simpler.",
			Confidence: domain.ConfidenceMedium,
		},
		Disclaimer: domain.Disclaimer,
	}
}

// setup isolates config from the host and swaps in a fake analyzer.
func setup(t *testing.T, an ports.Analyzer) string {
	t.Helper()
	color.NoColor = true
	dir := t.TempDir()
	t.Setenv("CONFIG_PATH", filepath.Join(dir, "missing.yaml"))
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("BACKEND_TIMEOUT_SECONDS", "")

	orig := newAnalyzer
	newAnalyzer = func(config.Config) (ports.Analyzer, error) { return an, nil }
	t.Cleanup(func() { newAnalyzer = orig })
	return filepath.Join(dir, "history.db")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyze_PrintsTable(t *testing.T) {
	an := &fakeAnalyzer{res: sampleResult()}
	db := setup(t, an)

	out, err := run(t, "analyze", "--db", db,
		"--image-a", "https://cdn.example.com/a.png",
		"--image-b", "data:image/png;base64,AAAA",
		"--metric", "CTR")
	require.NoError(t, err)

	assert.Contains(t, out, "Click-Through Rate (CTR)  3.1%")
	assert.Contains(t, out, "B is simpler.")
	assert.Contains(t, out, domain.Disclaimer)
	assert.NotContains(t, out, "Saved as")
	assert.Equal(t, "CTR", an.got.Ctx().PrimaryMetric)
}

func TestAnalyze_LocalFileBecomesDataURI(t *testing.T) {
	an := &fakeAnalyzer{res: sampleResult()}
	db := setup(t, an)

	path := filepath.Join(t.TempDir(), "a.png")
	require.NoError(t, os.WriteFile(path, []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, 0o600))

	_, err := run(t, "analyze", "--db", db, "--image-a", path, "--image-b", "https://example.com/b.png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(an.got.ImageA, "data:image/png;base64,"), an.got.ImageA)
}

func TestAnalyze_SaveThenHistory(t *testing.T) {
	db := setup(t, &fakeAnalyzer{res: sampleResult()})

	out, err := run(t, "analyze", "--db", db, "--save",
		"--image-a", "https://cdn.example.com/a.png",
		"--image-b", "https://cdn.example.com/b.png")
	require.NoError(t, err)
	require.Contains(t, out, "Saved as ")
	id := strings.TrimSpace(out[strings.LastIndex(out, "Saved as ")+len("Saved as "):])

	out, err = run(t, "history", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "completed")

	out, err = run(t, "history", "show", id, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Focused layout")

	_, err = run(t, "history", "delete", id, "--db", db)
	require.NoError(t, err)

	_, err = run(t, "history", "show", id, "--db", db)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAnalyze_Error(t *testing.T) {
	db := setup(t, &fakeAnalyzer{err: errors.New("backend down")})

	_, err := run(t, "analyze", "--db", db, "--image-a", "https://a.example/x.png", "--image-b", "https://b.example/y.png")
	assert.EqualError(t, err, "backend down")
}

func TestAnalyze_RequiresImages(t *testing.T) {
	db := setup(t, &fakeAnalyzer{})
	_, err := run(t, "analyze", "--db", db, "--image-a", "https://a.example/x.png")
	assert.Error(t, err)
}

func TestHistoryList_Empty(t *testing.T) {
	db := setup(t, &fakeAnalyzer{})
	out, err := run(t, "history", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No saved comparisons.")
}

func TestLoadContext_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ctx.yaml")
	require.NoError(t, os.WriteFile(path, []byte("userSegment: Returning shoppers\nprimaryMetric: Conversion Rate\npainPoints: Slow checkout\n"), 0o600))

	c, err := loadContext(path, domain.ComparisonContext{PrimaryMetric: "CTR"})
	require.NoError(t, err)
	assert.Equal(t, "Returning shoppers", c.UserSegment)
	assert.Equal(t, "CTR", c.PrimaryMetric)
	assert.Equal(t, "Slow checkout", c.PainPoints)
}

func TestLoadContext_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ctx.yaml")
	require.NoError(t, os.WriteFile(path, []byte("userSegment: [unclosed"), 0o600))
	_, err := loadContext(path, domain.ComparisonContext{})
	assert.Error(t, err)
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab  ", padRight("ab", 4))
	assert.Equal(t, "abcd", padRight("abcd", 2))
	assert.Equal(t, "日本", padRight("日本", 4))
	assert.Equal(t, "\x1b[32mA\x1b[0m  ", padRight("\x1b[32mA\x1b[0m", 3))
}

func TestPrintRows_Aligns(t *testing.T) {
	color.NoColor = true
	var b bytes.Buffer
	printRows(&b, [][]string{{"X", "Y"}, {"long value", "1"}})
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "X           Y", lines[0])
	assert.Equal(t, "long value  1", lines[1])
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}
