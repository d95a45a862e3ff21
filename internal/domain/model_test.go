package domain_test

import (
	"errors"
	"testing"

	"github.com/rdc-cli/rdc/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCounts_Add(t *testing.T) {
	var c domain.Counts
	for _, s := range []domain.Status{
		domain.StatusEqual, domain.StatusEqual, domain.StatusModified,
		domain.StatusAdded, domain.StatusDeleted, domain.StatusDeleted,
	} {
		c.Add(s)
	}
	assert.Equal(t, domain.Counts{Equal: 2, Modified: 1, Added: 1, Deleted: 2}, c)
	assert.Equal(t, 6, c.Total())
	assert.Equal(t, 4, c.Changed())
}

func TestSummary_Identical(t *testing.T) {
	assert.True(t, domain.Summary{}.Identical())
	assert.True(t, domain.Summary{Counts: domain.Counts{Equal: 3}}.Identical())
	assert.False(t, domain.Summary{Counts: domain.Counts{Equal: 3, Added: 1}}.Identical())
}

func TestMatchKey_Less(t *testing.T) {
	a := domain.MatchKey{Marker: "A"}
	b := domain.MatchKey{Marker: "B"}
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))

	a0 := domain.MatchKey{Marker: "A", Occurrence: 0}
	a1 := domain.MatchKey{Marker: "A", Occurrence: 1}
	assert.True(t, a0.Less(a1))
	assert.False(t, a0.Less(a0))
}

func TestDrawDiffRow_Marker(t *testing.T) {
	x, y := "X", "Y"
	assert.Equal(t, "X", domain.DrawDiffRow{MarkerA: &x, MarkerB: &y}.Marker())
	assert.Equal(t, "Y", domain.DrawDiffRow{MarkerB: &y}.Marker())
	assert.Equal(t, "", domain.DrawDiffRow{}.Marker())
}

func TestRecordError(t *testing.T) {
	err := &domain.RecordError{Index: 3, Field: "eid", Reason: "is missing"}
	assert.Equal(t, "draw row 3: eid is missing", err.Error())
	assert.True(t, errors.Is(err, domain.ErrMalformedRecord))

	err = &domain.RecordError{Index: 0, Field: "eid", Value: "abc", Reason: "is not a number"}
	assert.Equal(t, "draw row 0: eid is not a number (got abc)", err.Error())
}

func TestDiffEntry_Delta(t *testing.T) {
	prev := domain.DiffEntry{Counts: domain.Counts{Modified: 1}}
	cur := domain.DiffEntry{Counts: domain.Counts{Modified: 2, Added: 2}}
	assert.Equal(t, 3, cur.Delta(prev))
	assert.Equal(t, -3, prev.Delta(cur))
}
