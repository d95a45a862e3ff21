package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rdc-cli/rdc/internal/domain"
)

type PrettyOptions struct {
	LabelA string
	LabelB string
}

// Pretty renders a boxed terminal report: counts first, then every non-equal
// draw grouped by status.
func Pretty(result *domain.DrawDiffResult, summary domain.Summary, opts PrettyOptions) string {
	var b strings.Builder

	// Header
	title := headerStyle.Render("rdc diff --draws")
	labels := dimStyle.Render(fmt.Sprintf("%s  vs  %s", opts.LabelA, opts.LabelB))

	verdict := addedStyle.Bold(true).Render("identical")
	if !summary.Identical() {
		verdict = modifiedStyle.Bold(true).Render(fmt.Sprintf("%d of %d draws differ", summary.Counts.Changed(), summary.Counts.Total()))
	}

	b.WriteString(boxStyle.Render(title + "\n" + labels + "\n\n" + verdict))
	b.WriteString("\n\n")

	renderCounts(&b, summary)

	renderSection(&b, "Modified", domain.StatusModified, result.Rows)
	renderSection(&b, "Added", domain.StatusAdded, result.Rows)
	renderSection(&b, "Deleted", domain.StatusDeleted, result.Rows)

	// Footer
	b.WriteString("\n")
	b.WriteString("  " + separatorLine + "\n")
	if summary.Mode == domain.AlignModePositional {
		b.WriteString("  " + modifiedStyle.Italic(true).Render("No debug markers: draws were paired by position.") + "\n")
	}
	return b.String()
}

func renderCounts(b *strings.Builder, s domain.Summary) {
	line := func(label string, n int, style lipgloss.Style) {
		fmt.Fprintf(b, "  %s %s\n", titleStyle.Render(padRight(label, 10)), style.Render(fmt.Sprintf("%d", n)))
	}
	line("equal", s.Counts.Equal, dimStyle)
	line("modified", s.Counts.Modified, modifiedStyle)
	line("added", s.Counts.Added, addedStyle)
	line("deleted", s.Counts.Deleted, deletedStyle)
}

func renderSection(b *strings.Builder, title string, status domain.Status, rows []domain.DrawDiffRow) {
	var items []domain.DrawDiffRow
	for _, row := range rows {
		if row.Status == status {
			items = append(items, row)
		}
	}
	if len(items) == 0 {
		return
	}

	b.WriteString("\n")
	fmt.Fprintf(b, "  %s %s\n",
		sectionStyle.Render(title),
		dimStyle.Render(fmt.Sprintf("(%d)", len(items))),
	)

	style := statusStyle(status)
	for _, row := range items {
		eids := fmt.Sprintf("%s -> %s", orDash(row.EIDA, formatInt), orDash(row.EIDB, formatInt))
		line := fmt.Sprintf("    %s %s  %s", style.Render("●"), padRight(eids, 14), cell(row.Marker()))
		if len(row.Changed) > 0 {
			line += "  " + faintStyle.Render(strings.Join(row.Changed, ", "))
		}
		if row.Confidence == domain.ConfidenceLow {
			line += "  " + modifiedStyle.Render("low confidence")
		}
		b.WriteString(line + "\n")
	}
}
