package drawdiff

import (
	"fmt"

	"github.com/rdc-cli/rdc/internal/domain"
)

// Compare classifies one aligned pair. A missing side forces ADDED or DELETED
// and leaves that side's fields nil.
func Compare(pair domain.AlignedPair) domain.DrawDiffRow {
	row := domain.DrawDiffRow{
		Changed:    []string{},
		Confidence: pair.Confidence,
	}

	if a := pair.A; a != nil {
		row.EIDA = ptr(a.EID)
		row.MarkerA = ptr(a.Marker)
		row.TrianglesA = ptr(a.Triangles)
		row.InstancesA = ptr(a.Instances)
		row.ShaderHashA = ptr(a.ShaderHash)
		row.TopologyA = ptr(a.Topology)
		row.Pass = a.Pass
	}
	if b := pair.B; b != nil {
		row.EIDB = ptr(b.EID)
		row.MarkerB = ptr(b.Marker)
		row.TrianglesB = ptr(b.Triangles)
		row.InstancesB = ptr(b.Instances)
		row.ShaderHashB = ptr(b.ShaderHash)
		row.TopologyB = ptr(b.Topology)
		if row.Pass == "" {
			row.Pass = b.Pass
		}
	}

	switch {
	case pair.A == nil:
		row.Status = domain.StatusAdded
	case pair.B == nil:
		row.Status = domain.StatusDeleted
	default:
		row.Changed = changedFields(*pair.A, *pair.B)
		row.Status = domain.StatusEqual
		if len(row.Changed) > 0 {
			row.Status = domain.StatusModified
		}
	}
	return row
}

func changedFields(a, b domain.DrawRecord) []string {
	changed := []string{}
	if a.Triangles != b.Triangles {
		changed = append(changed, domain.FieldTriangles)
	}
	if a.Instances != b.Instances {
		changed = append(changed, domain.FieldInstances)
	}
	if a.ShaderHash != "" && b.ShaderHash != "" && a.ShaderHash != b.ShaderHash {
		changed = append(changed, domain.FieldShaderHash)
	}
	if a.Topology != "" && b.Topology != "" && a.Topology != b.Topology {
		changed = append(changed, domain.FieldTopology)
	}
	return changed
}

// Diff aligns two draw lists and compares every pair.
func Diff(a, b []domain.DrawRecord, opts AlignOptions) (*domain.DrawDiffResult, error) {
	alignment, err := Align(a, b, opts)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.DrawDiffRow, len(alignment.Pairs))
	for i, p := range alignment.Pairs {
		rows[i] = Compare(p)
	}
	return &domain.DrawDiffResult{Mode: alignment.Mode, Rows: rows}, nil
}

// DiffRows builds records from two sets of raw rows and diffs them.
func DiffRows(rowsA, rowsB []map[string]any, opts AlignOptions) (*domain.DrawDiffResult, error) {
	a, err := BuildRecords(rowsA)
	if err != nil {
		return nil, fmt.Errorf("capture A: %w", err)
	}
	b, err := BuildRecords(rowsB)
	if err != nil {
		return nil, fmt.Errorf("capture B: %w", err)
	}
	return Diff(a, b, opts)
}

func ptr[T any](v T) *T { return &v }
