package render

import (
	"fmt"

	"github.com/rdc-cli/rdc/internal/domain"
)

// Options carries the settings shared by all diff formats.
type Options struct {
	LabelA string
	LabelB string
	Header bool
	Color  bool
}

// Diff renders a diff result in the given format.
func Diff(format domain.Format, result *domain.DrawDiffResult, summary domain.Summary, opts Options) (string, error) {
	switch format {
	case domain.FormatTSV, "":
		return TSV(result.Rows, TSVOptions{Header: opts.Header}), nil
	case domain.FormatUnified:
		return Unified(result.Rows, UnifiedOptions{LabelA: opts.LabelA, LabelB: opts.LabelB, Color: opts.Color}), nil
	case domain.FormatJSON:
		return JSON(result.Rows)
	case domain.FormatShortstat:
		return Shortstat(summary), nil
	case domain.FormatPretty:
		return Pretty(result, summary, PrettyOptions{LabelA: opts.LabelA, LabelB: opts.LabelB}), nil
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
}
