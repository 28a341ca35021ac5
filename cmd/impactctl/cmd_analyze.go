package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"impactcompare/internal/domain"
	"impactcompare/internal/imageref"
)

type analyzeOptions struct {
	imageA, imageB string
	contextFile    string
	ctx            domain.ComparisonContext
	asJSON         bool
	save           bool
}

func newAnalyzeCommand() *cobra.Command {
	var opts analyzeOptions
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze two design variants",
		Long: `Analyze two design variants. Each image may be an http(s) URL, a data URI
or a local file path. Context can come from a YAML file and individual flags,
with flags taking precedence.`,
		Example: `  impactctl analyze --image-a before.png --image-b after.png --metric CTR
  impactctl analyze --image-a https://cdn.example.com/a.png --image-b b.png --context ctx.yaml --save`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, &opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.imageA, "image-a", "", "Variant A image (URL, data URI or file path)")
	f.StringVar(&opts.imageB, "image-b", "", "Variant B image (URL, data URI or file path)")
	f.StringVar(&opts.contextFile, "context", "", "YAML file with the comparison context")
	f.StringVar(&opts.ctx.UserSegment, "segment", "", "Target user segment")
	f.StringVar(&opts.ctx.ProductStage, "stage", "", "Product stage")
	f.StringVar(&opts.ctx.UserMindset, "mindset", "", "User mindset")
	f.StringVar(&opts.ctx.PrimaryMetric, "metric", "", "Primary metric (e.g. CTR, conversion, drop-off)")
	f.StringVar(&opts.ctx.Assumptions, "assumptions", "", "Assumptions behind the change")
	f.StringVar(&opts.ctx.PainPoints, "pain-points", "", "Known user pain points")
	f.BoolVar(&opts.asJSON, "json", false, "Print the full result as JSON")
	f.BoolVar(&opts.save, "save", false, "Store the result in the local history")
	_ = cmd.MarkFlagRequired("image-a")
	_ = cmd.MarkFlagRequired("image-b")
	return cmd
}

func runAnalyze(cmd *cobra.Command, opts *analyzeOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cctx, err := loadContext(opts.contextFile, opts.ctx)
	if err != nil {
		return err
	}
	imageA, err := resolveImage(opts.imageA)
	if err != nil {
		return fmt.Errorf("image-a: %w", err)
	}
	imageB, err := resolveImage(opts.imageB)
	if err != nil {
		return fmt.Errorf("image-b: %w", err)
	}

	an, err := newAnalyzer(cfg)
	if err != nil {
		return err
	}
	req := domain.AnalysisRequest{ImageA: imageA, ImageB: imageB, Context: &cctx}
	res, err := an.Analyze(cmd.Context(), req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else {
		printResult(out, res)
	}

	if !opts.save {
		return nil
	}
	store, err := openStore(cmd.Context(), storePath(cmd, cfg))
	if err != nil {
		return err
	}
	defer store.Close()

	refA, _ := imageref.Parse(imageA)
	refB, _ := imageref.Parse(imageB)
	now := time.Now().UTC()
	c := domain.Comparison{
		ID:            uuid.NewString(),
		Status:        domain.StatusCompleted,
		ImageA:        imageA,
		ImageB:        imageB,
		SourceDomainA: refA.SourceDomain,
		SourceDomainB: refB.SourceDomain,
		Context:       cctx,
		Result:        &res,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := store.Save(cmd.Context(), c); err != nil {
		return fmt.Errorf("save comparison: %w", err)
	}
	if !opts.asJSON {
		fmt.Fprintf(out, "\nSaved as %s\n", c.ID)
	}
	return nil
}

// loadContext reads path (if set) and lets non-empty flag values win.
func loadContext(path string, flags domain.ComparisonContext) (domain.ComparisonContext, error) {
	var c domain.ComparisonContext
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return c, fmt.Errorf("read context: %w", err)
		}
		if err := yaml.Unmarshal(data, &c); err != nil {
			return c, fmt.Errorf("parse context %s: %w", path, err)
		}
	}
	override(&c.UserSegment, flags.UserSegment)
	override(&c.ProductStage, flags.ProductStage)
	override(&c.UserMindset, flags.UserMindset)
	override(&c.PrimaryMetric, flags.PrimaryMetric)
	override(&c.Assumptions, flags.Assumptions)
	override(&c.PainPoints, flags.PainPoints)
	return c, nil
}

func override(field *string, v string) {
	if v != "" {
		*field = v
	}
}

// resolveImage turns a local file into a data URI and passes anything else
// through.
func resolveImage(arg string) (string, error) {
	if st, err := os.Stat(arg); err == nil && !st.IsDir() {
		ref, err := imageref.FromFile(arg)
		if err != nil {
			return "", err
		}
		return ref.String(), nil
	}
	if _, err := imageref.Parse(arg); err != nil {
		return "", err
	}
	return arg, nil
}
