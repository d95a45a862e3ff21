package render

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rdc-cli/rdc/internal/domain"
)

// TSVColumns is the fixed column order of TSV output.
var TSVColumns = []string{
	"STATUS", "EID_A", "EID_B", "MARKER",
	"TRIANGLES_A", "TRIANGLES_B", "INSTANCES_A", "INSTANCES_B",
	"CHANGED", "CONFIDENCE",
}

type TSVOptions struct {
	Header bool
}

// TSV renders one line per row with "-" for values that do not apply.
func TSV(rows []domain.DrawDiffRow, opts TSVOptions) string {
	var b strings.Builder
	if opts.Header {
		b.WriteString(strings.Join(TSVColumns, "\t"))
		b.WriteString("\n")
	}

	for _, row := range rows {
		changed := "-"
		if len(row.Changed) > 0 {
			changed = strings.Join(row.Changed, ",")
		}
		fields := []string{
			string(row.Status),
			orDash(row.EIDA, formatInt),
			orDash(row.EIDB, formatInt),
			cell(row.Marker()),
			orDash(row.TrianglesA, formatInt),
			orDash(row.TrianglesB, formatInt),
			orDash(row.InstancesA, formatInt),
			orDash(row.InstancesB, formatInt),
			changed,
			string(row.Confidence),
		}
		b.WriteString(strings.Join(fields, "\t"))
		b.WriteString("\n")
	}
	return b.String()
}

// ByPass renders per-pass status counts as TSV.
func ByPass(summary domain.Summary, header bool) string {
	var b strings.Builder
	if header {
		b.WriteString("PASS\tEQUAL\tMODIFIED\tADDED\tDELETED\n")
	}
	for _, p := range summary.ByPass {
		fmt.Fprintf(&b, "%s\t%d\t%d\t%d\t%d\n",
			cell(p.Pass), p.Counts.Equal, p.Counts.Modified, p.Counts.Added, p.Counts.Deleted)
	}
	return b.String()
}

// JSON renders rows as an indented array. Every field is present; fields of a
// missing side are null.
func JSON(rows []domain.DrawDiffRow) (string, error) {
	if rows == nil {
		rows = []domain.DrawDiffRow{}
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling rows: %w", err)
	}
	return string(data) + "\n", nil
}

// Shortstat renders a one-line count of rows by status.
func Shortstat(summary domain.Summary) string {
	c := summary.Counts
	line := fmt.Sprintf("%d draws: %d equal, %d modified, %d added, %d deleted",
		c.Total(), c.Equal, c.Modified, c.Added, c.Deleted)
	if summary.Mode == domain.AlignModePositional {
		line += " (positional alignment)"
	}
	return line + "\n"
}

func formatInt(v int64) string { return strconv.FormatInt(v, 10) }

// cell keeps a free-text value on one TSV cell.
func cell(s string) string {
	if s == "" {
		return "-"
	}
	return strings.NewReplacer("\t", " ", "\n", " ", "\r", " ").Replace(s)
}
