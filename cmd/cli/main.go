package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"edgegate/adapters/excel"
	"edgegate/adapters/postgres"
	"edgegate/app"
	"edgegate/domain/stats"
	"edgegate/internal/config"
	"edgegate/internal/report"
	"edgegate/internal/testkit"
	"edgegate/ports"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "edgegate",
		Short: "Statistical validation and promotion gating for trading signals",
	}

	rootCmd.AddCommand(
		newValidateCmd(),
		newSweepCmd(),
		newWalkforwardCmd(),
		newDemoCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newValidateCmd() *cobra.Command {
	var format string
	var trainRatio float64
	var strength float64

	cmd := &cobra.Command{
		Use:   "validate [signal-name]",
		Short: "Validate one signal's history and print the promotion decision",
		Long: `Run the full validation pipeline over a signal's settled trade history.

History comes from DATABASE_URL when set, otherwise from OUTCOME_FILE
(.xlsx or .csv). The process exits non-zero when validation cannot run;
a REJECTED decision is a successful run.

Example: edgegate validate momentum_breakout --format text`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), args[0], format, strength, trainRatio)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text|markdown|html|json")
	cmd.Flags().Float64Var(&trainRatio, "train-ratio", 0, "Walk-forward train split (0 uses TRAIN_RATIO)")
	cmd.Flags().Float64Var(&strength, "strength", 0, "Conditional win-rate threshold (0 uses STRENGTH_THRESHOLD)")
	return cmd
}

func newSweepCmd() *cobra.Command {
	var thresholdsArg string

	cmd := &cobra.Command{
		Use:   "sweep [signal-name]",
		Short: "Sweep a signal across a grid of strength thresholds",
		Long: `Validate a signal once per strength threshold, concurrently, and print
the resulting grid with per-cell promotion decisions.

Example: edgegate sweep momentum_breakout --thresholds 0.5,0.6,0.7,0.8`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			thresholds, err := parseThresholds(thresholdsArg)
			if err != nil {
				return err
			}
			return runSweep(cmd.Context(), args[0], thresholds)
		},
	}

	cmd.Flags().StringVar(&thresholdsArg, "thresholds", "0.5,0.6,0.7,0.8", "Comma-separated strength thresholds")
	return cmd
}

func newWalkforwardCmd() *cobra.Command {
	var trainRatio float64

	cmd := &cobra.Command{
		Use:   "walkforward [signal-name]",
		Short: "Run only the walk-forward overfitting check for a signal",
		Long: `Split a signal's chronological history into train and test segments and
compare win rates across the split.

Example: edgegate walkforward momentum_breakout --train-ratio 0.7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWalkforward(cmd.Context(), args[0], trainRatio)
		},
	}

	cmd.Flags().Float64Var(&trainRatio, "train-ratio", 0, "Train split (0 uses TRAIN_RATIO)")
	return cmd
}

func newDemoCmd() *cobra.Command {
	var seed int64
	var size int
	var edge float64

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Validate a deterministic synthetic signal end to end",
		Long: `Generate a seeded synthetic trade history and run it through the full
pipeline. Useful for smoke-testing a deployment without a data source.

Example: edgegate demo --seed 42 --size 500 --edge 0.58`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.Context(), seed, size, edge)
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for the synthetic history")
	cmd.Flags().IntVar(&size, "size", 200, "Number of synthetic trades")
	cmd.Flags().Float64Var(&edge, "edge", 0.60, "Win probability above the strength split")
	return cmd
}

func runValidate(ctx context.Context, signalName, format string, strength, trainRatio float64) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if strength == 0 {
		strength = cfg.Validation.StrengthThreshold
	}
	if trainRatio == 0 {
		trainRatio = cfg.Validation.TrainRatio
	}

	src, cleanup, err := outcomeSource(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	validator, err := app.NewValidationService(cfg.Validation.Thresholds)
	if err != nil {
		return err
	}

	artifact, err := validator.ValidateSignal(ctx, src, signalName, strength, trainRatio)
	if err != nil {
		return err
	}

	switch format {
	case "text":
		fmt.Print(report.RenderText(artifact))
	case "markdown":
		fmt.Print(report.RenderMarkdown(artifact))
	case "html":
		os.Stdout.Write(report.RenderHTML(artifact))
	case "json":
		out, err := json.MarshalIndent(artifact, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	default:
		return fmt.Errorf("unknown format %q (want text|markdown|html|json)", format)
	}
	return nil
}

func runSweep(ctx context.Context, signalName string, thresholds []float64) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	src, cleanup, err := outcomeSource(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	outcomes, err := src.Outcomes(ctx, signalName)
	if err != nil {
		return err
	}
	points, err := src.SignalPoints(ctx, signalName)
	if err != nil {
		return err
	}

	validator, err := app.NewValidationService(cfg.Validation.Thresholds)
	if err != nil {
		return err
	}
	sweeper := app.NewSweepService(validator, cfg.Validation.SweepWorkers)

	result, err := sweeper.Run(ctx, app.SweepRequest{
		SignalName: signalName,
		Sample:     outcomes.AsBinarySample(),
		Points:     points,
		Thresholds: thresholds,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Sweep %s over %s (%d thresholds, %d approved, %d failed, %dms)\n\n",
		result.SweepID, signalName, len(result.Cells), result.ApprovedCount, result.FailedCount, result.RuntimeMs)
	for _, cell := range result.Cells {
		if cell.Err != nil {
			fmt.Printf("  threshold %.2f: error: %v\n", cell.Threshold, cell.Err)
			continue
		}
		fmt.Printf("  threshold %.2f: win rate %.1f%% (cond %.1f%%, n=%d) p=%.4f -> %s\n",
			cell.Threshold, cell.Record.WinRate*100, cell.Record.ConditionalWinRate*100,
			cell.Record.ConditionalSampleSize, cell.Record.PValue, cell.Decision)
	}
	return nil
}

func runWalkforward(ctx context.Context, signalName string, trainRatio float64) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if trainRatio == 0 {
		trainRatio = cfg.Validation.TrainRatio
	}

	src, cleanup, err := outcomeSource(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	outcomes, err := src.Outcomes(ctx, signalName)
	if err != nil {
		return err
	}

	result, err := stats.WalkForward(outcomes, trainRatio)
	if err != nil {
		return err
	}

	fmt.Printf("Walk-forward for %s (train ratio %.2f)\n", signalName, trainRatio)
	fmt.Printf("  In-Sample Win Rate: %.1f%% (n=%d)\n", result.InSampleWinRate*100, result.TrainSize)
	fmt.Printf("  Out-of-Sample Win Rate: %.1f%% (n=%d)\n", result.OutOfSampleWinRate*100, result.TestSize)
	fmt.Printf("  Degradation: %.1f%%\n", result.DegradationRatio*100)
	fmt.Printf("  Overfit Risk: %s\n", result.Risk)
	fmt.Printf("  Overfit: %v\n", result.IsOverfit)
	return nil
}

func runDemo(ctx context.Context, seed int64, size int, edge float64) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	genConfig := testkit.DefaultOutcomeConfig()
	genConfig.Seed = seed
	genConfig.SampleSize = size
	genConfig.TrueEdge = edge
	src := testkit.NewOutcomeGenerator(genConfig)

	validator, err := app.NewValidationService(cfg.Validation.Thresholds)
	if err != nil {
		return err
	}

	artifact, err := validator.ValidateSignal(ctx, src, "synthetic_demo",
		cfg.Validation.StrengthThreshold, cfg.Validation.TrainRatio)
	if err != nil {
		return err
	}

	fmt.Print(report.RenderText(artifact))
	return nil
}

// outcomeSource picks the trade-history backend: database when configured,
// file otherwise.
func outcomeSource(cfg *config.Config) (ports.OutcomeSourcePort, func(), error) {
	if cfg.Database.URL != "" {
		db, err := postgres.Connect(cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewOutcomeRepository(db), func() { _ = db.Close() }, nil
	}
	if cfg.Data.OutcomeFile != "" {
		return excel.NewOutcomeReader(cfg.Data.OutcomeFile), func() {}, nil
	}
	return nil, nil, fmt.Errorf("no outcome source configured: set DATABASE_URL or OUTCOME_FILE")
}

func parseThresholds(arg string) ([]float64, error) {
	parts := strings.Split(arg, ",")
	thresholds := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid threshold %q: %w", p, err)
		}
		thresholds = append(thresholds, f)
	}
	return thresholds, nil
}
