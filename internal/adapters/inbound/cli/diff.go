package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/rdc-cli/rdc/internal/adapters/outbound/drawfile"
	"github.com/rdc-cli/rdc/internal/adapters/outbound/gitinfo"
	"github.com/rdc-cli/rdc/internal/adapters/outbound/history"
	"github.com/rdc-cli/rdc/internal/adapters/outbound/render"
	"github.com/rdc-cli/rdc/internal/application"
	"github.com/rdc-cli/rdc/internal/domain"
	"github.com/rdc-cli/rdc/internal/domain/drawdiff"
	"github.com/rdc-cli/rdc/internal/logger"
)

type diffFlags struct {
	draws         bool
	format        string
	noHeader      bool
	shortstat     bool
	byPass        bool
	fallback      string
	minConfidence float64
	timeout       time.Duration
	record        bool
}

func newDiffCmd(global *globalOptions) *cobra.Command {
	var f diffFlags

	cmd := &cobra.Command{
		Use:   "diff <capture-a> <capture-b>",
		Short: "Compare the draw calls of two captures",
		Long: `Compare the draw calls of two captures.

Each capture is a draw list exported as JSON (an array, JSON Lines, or an
object with a "draws" array). Use "-" to read one of them from stdin.

Exit status is 0 when every draw is equal, 1 when any draw differs and 2 on
errors.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, global.cfg, f, args[0], args[1])
		},
	}

	cmd.Flags().BoolVar(&f.draws, "draws", false, "Compare draw calls (required)")
	cmd.Flags().StringVar(&f.format, "format", "", "Output format: tsv, unified, json, shortstat, pretty")
	cmd.Flags().BoolVar(&f.noHeader, "no-header", false, "Omit the TSV header line")
	cmd.Flags().BoolVar(&f.shortstat, "shortstat", false, "Print only the count of draws by status")
	cmd.Flags().BoolVar(&f.byPass, "by-pass", false, "Print counts per render pass instead of rows")
	cmd.Flags().StringVar(&f.fallback, "fallback", "", "Without debug markers: positional or refuse")
	cmd.Flags().Float64Var(&f.minConfidence, "min-confidence", 0, "Minimum share of positional pairs that must agree on shader and topology")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "Time limit for loading both captures")
	cmd.Flags().BoolVar(&f.record, "record", false, "Append the result to the diff history")

	cmd.AddCommand(newDiffHistoryCmd(global))
	return cmd
}

func runDiff(cmd *cobra.Command, cfg domain.Config, f diffFlags, refA, refB string) error {
	if !f.draws {
		return failure(errors.New("nothing to compare: pass --draws"))
	}
	if refA == drawfile.StdinRef && refB == drawfile.StdinRef {
		return failure(errors.New("only one capture can be read from stdin"))
	}

	// 1. Resolve settings, flags over config
	settings, err := resolveDiffSettings(cmd, cfg.Diff, f)
	if err != nil {
		return failure(err)
	}

	// 2. Load and diff
	svc := application.NewDiffService(
		drawfile.NewWithStdin(cmd.InOrStdin()),
		history.New(),
		gitinfo.New(),
	)

	report, err := svc.Diff(cmd.Context(), refA, refB, application.DiffOptions{
		Align: drawdiff.AlignOptions{
			Fallback:      settings.Fallback,
			MinConfidence: settings.MinConfidenceValue(),
		},
		Timeout: settings.Timeout,
	})
	if err != nil {
		return failure(err)
	}

	// 3. Record
	if f.record || cfg.History.Enabled {
		if _, err := svc.Record(historyDir(cfg), report); err != nil {
			log.Warningf("diff not recorded: %v", err)
		}
	}

	// 4. Render
	out, err := renderDiff(cmd.OutOrStdout(), settings, f, report)
	if err != nil {
		return failure(err)
	}
	fmt.Fprint(cmd.OutOrStdout(), out)

	if !report.Summary.Identical() {
		return &ExitError{Code: ExitChanged}
	}
	return nil
}

func resolveDiffSettings(cmd *cobra.Command, base domain.DiffConfig, f diffFlags) (domain.DiffConfig, error) {
	s := base
	flags := cmd.Flags()

	if flags.Changed("format") {
		format, err := domain.ParseFormat(f.format)
		if err != nil {
			return s, err
		}
		s.Format = format
	}
	if f.shortstat {
		s.Format = domain.FormatShortstat
	}
	if f.noHeader {
		header := false
		s.Header = &header
	}
	if flags.Changed("fallback") {
		fallback, err := domain.ParseFallback(f.fallback)
		if err != nil {
			return s, err
		}
		s.Fallback = fallback
	}
	if flags.Changed("min-confidence") {
		if f.minConfidence < 0 || f.minConfidence > 1 {
			return s, fmt.Errorf("--min-confidence must be between 0.0 and 1.0 (got %.2f)", f.minConfidence)
		}
		mc := f.minConfidence
		s.MinConfidence = &mc
	}
	if flags.Changed("timeout") {
		if f.timeout < 0 {
			return s, fmt.Errorf("--timeout must not be negative (got %s)", f.timeout)
		}
		s.Timeout = f.timeout
	}
	return s, nil
}

func renderDiff(w io.Writer, s domain.DiffConfig, f diffFlags, report *application.DiffReport) (string, error) {
	if f.byPass {
		if s.Format == domain.FormatJSON {
			return encodeJSON(report.Summary.ByPass)
		}
		return render.ByPass(report.Summary, s.HeaderEnabled()), nil
	}

	return render.Diff(s.Format, report.Result, report.Summary, render.Options{
		LabelA: report.CaptureA,
		LabelB: report.CaptureB,
		Header: s.HeaderEnabled(),
		Color:  logger.IsTerminal(w),
	})
}

func newDiffHistoryCmd(global *globalOptions) *cobra.Command {
	var (
		jsonOutput bool
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded diff runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := application.NewDiffService(drawfile.New(), history.New(), gitinfo.New())
			entries, err := svc.History(historyDir(global.cfg), limit)
			if err != nil {
				return failure(err)
			}

			if jsonOutput {
				if entries == nil {
					entries = []domain.DiffEntry{}
				}
				out, err := encodeJSON(entries)
				if err != nil {
					return failure(err)
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), render.History(entries))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output history as JSON")
	cmd.Flags().IntVar(&limit, "limit", 0, "Show only the most recent N runs")

	return cmd
}

func historyDir(cfg domain.Config) string {
	if cfg.History.Dir != "" {
		return cfg.History.Dir
	}
	return "."
}

func encodeJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling output: %w", err)
	}
	return string(data) + "\n", nil
}
