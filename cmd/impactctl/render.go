package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"impactcompare/internal/domain"
)

func printResult(w io.Writer, res domain.AnalysisResult) {
	bold := color.New(color.Bold).SprintFunc()
	a := res.Analysis

	fmt.Fprintf(w, "%s\n  A: %s\n  B: %s\n\n", bold("Summary"), a.SummaryA, a.SummaryB)
	if len(a.Differences) > 0 {
		fmt.Fprintln(w, bold("Key differences"))
		for _, d := range a.Differences {
			fmt.Fprintf(w, "  - %s\n", d)
		}
		fmt.Fprintln(w)
	}

	rows := [][]string{{"METRIC", "VARIANT A", "VARIANT B", "WINNER", "CONFIDENCE"}}
	for _, m := range res.Impact.MetricsTable {
		rows = append(rows, []string{m.Metric, m.VariantA, m.VariantB, winnerLabel(m.Winner), confidenceLabel(m.Confidence)})
	}
	printRows(w, rows)

	fmt.Fprintf(w, "\n%s\n", res.Impact.Rationale)
	if res.Degraded {
		fmt.Fprintf(w, "\n%s\n", color.YellowString("Some stages used heuristic defaults; treat this result with extra caution."))
	}
	fmt.Fprintf(w, "\n%s\n", color.New(color.FgHiBlack).Sprint(res.Disclaimer))
}

func printContext(w io.Writer, c domain.ComparisonContext) {
	for _, kv := range [][2]string{
		{"Segment", c.UserSegment},
		{"Stage", c.ProductStage},
		{"Mindset", c.UserMindset},
		{"Metric", c.PrimaryMetric},
		{"Assumptions", c.Assumptions},
		{"Pain points", c.PainPoints},
	} {
		if kv[1] != "" {
			fmt.Fprintf(w, "%s: %s\n", kv[0], kv[1])
		}
	}
}

func winnerLabel(wn domain.Winner) string {
	switch wn {
	case domain.WinnerA, domain.WinnerB:
		return color.GreenString(string(wn))
	}
	return color.New(color.FgHiBlack).Sprint(string(wn))
}

func confidenceLabel(c domain.Confidence) string {
	switch c {
	case domain.ConfidenceHigh:
		return color.GreenString(string(c))
	case domain.ConfidenceLow:
		return color.RedString(string(c))
	}
	return color.YellowString(string(c))
}

// printRows aligns columns by display width, ignoring color escapes.
func printRows(w io.Writer, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if n := displayWidth(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}
	for r, row := range rows {
		var b strings.Builder
		for i, cell := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			if r == 0 {
				cell = color.New(color.Bold).Sprint(cell)
			}
			if i == len(row)-1 {
				b.WriteString(cell)
				continue
			}
			b.WriteString(padRight(cell, widths[i]))
		}
		fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}
}

func padRight(s string, width int) string {
	sw := displayWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

func displayWidth(s string) int {
	return runewidth.StringWidth(stripANSI(s))
}

func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && r == 'm':
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}
