package render

import (
	"fmt"
	"strings"

	"github.com/rdc-cli/rdc/internal/domain"
)

type UnifiedOptions struct {
	LabelA string
	LabelB string
	// Color styles lines with lipgloss. Styling is dropped automatically
	// when stdout is not a terminal.
	Color bool
}

// Unified renders rows in a unified-diff-like form: " " for equal draws, "-"
// for deleted, "+" for added, and a "-"/"+" pair for modified draws.
func Unified(rows []domain.DrawDiffRow, opts UnifiedOptions) string {
	var b strings.Builder
	writeLine(&b, opts.Color, titleStyle.Render, "--- a/"+opts.LabelA)
	writeLine(&b, opts.Color, titleStyle.Render, "+++ b/"+opts.LabelB)

	for _, row := range rows {
		switch row.Status {
		case domain.StatusEqual:
			body := fmt.Sprintf("%d->%d %s", *row.EIDA, *row.EIDB, sideText(row.MarkerA, row.TrianglesA, row.InstancesA, row.ShaderHashA, row.TopologyA))
			writeLine(&b, opts.Color, dimStyle.Render, " "+body)
		case domain.StatusDeleted:
			writeLine(&b, opts.Color, deletedStyle.Render, "-"+sideLine(row.EIDA, row.MarkerA, row.TrianglesA, row.InstancesA, row.ShaderHashA, row.TopologyA))
		case domain.StatusAdded:
			writeLine(&b, opts.Color, addedStyle.Render, "+"+sideLine(row.EIDB, row.MarkerB, row.TrianglesB, row.InstancesB, row.ShaderHashB, row.TopologyB))
		case domain.StatusModified:
			writeLine(&b, opts.Color, deletedStyle.Render, "-"+sideLine(row.EIDA, row.MarkerA, row.TrianglesA, row.InstancesA, row.ShaderHashA, row.TopologyA))
			writeLine(&b, opts.Color, addedStyle.Render, "+"+sideLine(row.EIDB, row.MarkerB, row.TrianglesB, row.InstancesB, row.ShaderHashB, row.TopologyB))
		}
	}
	return b.String()
}

func writeLine(b *strings.Builder, color bool, style func(...string) string, line string) {
	if color {
		line = style(line)
	}
	b.WriteString(line)
	b.WriteString("\n")
}

func sideLine(eid *int64, marker *string, tris, inst *int64, shader, topo *string) string {
	return fmt.Sprintf("%d %s", *eid, sideText(marker, tris, inst, shader, topo))
}

func sideText(marker *string, tris, inst *int64, shader, topo *string) string {
	parts := []string{
		cell(*marker),
		fmt.Sprintf("triangles=%d", *tris),
		fmt.Sprintf("instances=%d", *inst),
	}
	if *shader != "" {
		parts = append(parts, "shader="+*shader)
	}
	if *topo != "" {
		parts = append(parts, "topology="+*topo)
	}
	return strings.Join(parts, " ")
}
