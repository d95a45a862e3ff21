package render

import (
	"fmt"
	"strings"

	"github.com/rdc-cli/rdc/internal/domain"
)

// History formats recorded diff runs for terminal output.
func History(entries []domain.DiffEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No diff history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Diff History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for i, e := range entries {
		hash := e.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}

		date := e.Timestamp
		if len(date) > 10 {
			date = date[:10]
		}

		changed := e.Counts.Changed()
		countStyle := addedStyle
		if changed > 0 {
			countStyle = modifiedStyle
		}

		line := fmt.Sprintf("  %s  %s  %s  %s",
			dimStyle.Render(date),
			faintStyle.Render(hash),
			countStyle.Render(fmt.Sprintf("%d/%d changed", changed, e.Counts.Total())),
			dimStyle.Render(e.CaptureA+" -> "+e.CaptureB),
		)

		if i > 0 {
			diff := e.Delta(entries[i-1])
			if diff > 0 {
				line += "  " + deletedStyle.Render(fmt.Sprintf("↑%d", diff))
			} else if diff < 0 {
				line += "  " + addedStyle.Render(fmt.Sprintf("↓%d", -diff))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}
