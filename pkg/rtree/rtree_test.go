// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"errors"
	"testing"

	"github.com/ClusterCockpit/cc-mdindex/pkg/mdindexerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkRect(x0, y0, x1, y1 float64) MBR {
	return MBR{Low: []float64{x0, y0}, High: []float64{x1, y1}}
}

func TestNewRejectsBadParams(t *testing.T) {
	_, err := New(Params{Dims: 0, MinEntries: 2, MaxEntries: 4})
	require.ErrorIs(t, err, mdindexerr.ErrInvalidArg)

	_, err = New(Params{Dims: 2, MinEntries: 3, MaxEntries: 4})
	require.ErrorIs(t, err, mdindexerr.ErrInvalidArg)
}

func TestInsertAndSearchOverlap(t *testing.T) {
	tr, err := New(DefaultParams(2, 4))
	require.NoError(t, err)

	rects := []MBR{
		mkRect(0, 0, 1, 1),
		mkRect(5, 5, 6, 6),
		mkRect(0.5, 0.5, 2, 2),
		mkRect(10, 10, 11, 11),
	}
	for i, r := range rects {
		require.NoError(t, tr.Insert(r, i))
	}
	assert.Equal(t, 4, tr.Size())

	hits := tr.Search(mkRect(0, 0, 1, 1), Overlap)
	var values []int
	for _, h := range hits {
		values = append(values, h.Value.(int))
	}
	assert.ElementsMatch(t, []int{0, 2}, values)
}

func TestSearchMatchRequiresExactExtent(t *testing.T) {
	tr, err := New(DefaultParams(2, 4))
	require.NoError(t, err)
	require.NoError(t, tr.Insert(mkRect(0, 0, 1, 1), "a"))
	require.NoError(t, tr.Insert(mkRect(0, 0, 2, 2), "b"))

	hits := tr.Search(mkRect(0, 0, 1, 1), Match)
	require.Len(t, hits, 1)
	assert.Equal(t, "a", hits[0].Value)
}

func TestInsertManyTriggersSplitsAndStaysValid(t *testing.T) {
	tr, err := New(DefaultParams(2, 4))
	require.NoError(t, err)
	for i := 0; i < 200; i++ {
		x := float64(i % 20)
		y := float64(i / 20)
		require.NoError(t, tr.Insert(mkRect(x, y, x+1, y+1), i))
	}
	assert.Equal(t, 200, tr.Size())

	report, err := tr.CheckIntegrity(IntegrityProperties{})
	require.NoError(t, err)
	assert.True(t, report.Ok(), "violations: %v", report.Violations)

	for i := 0; i < 200; i++ {
		x := float64(i % 20)
		y := float64(i / 20)
		hits := tr.Search(mkRect(x, y, x+1, y+1), Match)
		found := false
		for _, h := range hits {
			if h.Value == i {
				found = true
			}
		}
		assert.True(t, found, "value %d not found after bulk insert", i)
	}
}

func TestErase(t *testing.T) {
	tr, err := New(DefaultParams(2, 4))
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		x := float64(i)
		require.NoError(t, tr.Insert(mkRect(x, x, x+1, x+1), i))
	}

	require.NoError(t, tr.Erase(mkRect(10, 10, 11, 11), 10))
	assert.Equal(t, 49, tr.Size())

	hits := tr.Search(mkRect(10, 10, 11, 11), Match)
	for _, h := range hits {
		assert.NotEqual(t, 10, h.Value)
	}

	report, err := tr.CheckIntegrity(IntegrityProperties{})
	require.NoError(t, err)
	assert.True(t, report.Ok(), "violations: %v", report.Violations)

	err = tr.Erase(mkRect(10, 10, 11, 11), 10)
	assert.True(t, errors.Is(err, mdindexerr.ErrNotFound))
}

func TestBulkLoaderPacksAllValuesAndStaysValid(t *testing.T) {
	params := DefaultParams(2, 4)
	bl := NewBulkLoader(params)
	for i := 0; i < 97; i++ {
		x := float64(i % 10)
		y := float64(i / 10)
		bl.Add(mkRect(x, y, x+1, y+1), i)
	}
	tr := bl.Pack()
	assert.Equal(t, 97, tr.Size())

	report, err := tr.CheckIntegrity(IntegrityProperties{})
	require.NoError(t, err)
	assert.True(t, report.Ok(), "violations: %v", report.Violations)

	for i := 0; i < 97; i++ {
		x := float64(i % 10)
		y := float64(i / 10)
		hits := tr.Search(mkRect(x, y, x+1, y+1), Match)
		found := false
		for _, h := range hits {
			if h.Value == i {
				found = true
			}
		}
		assert.True(t, found, "value %d missing after bulk load", i)
	}
}

func TestCloneIsIndependentAndMoveEmptiesSource(t *testing.T) {
	tr, err := New(DefaultParams(2, 4))
	require.NoError(t, err)
	require.NoError(t, tr.Insert(mkRect(0, 0, 1, 1), "a"))

	clone := tr.Clone()
	require.NoError(t, tr.Insert(mkRect(2, 2, 3, 3), "b"))
	assert.Equal(t, 1, clone.Size())
	assert.Equal(t, 2, tr.Size())

	moved := tr.Move()
	assert.Equal(t, 2, moved.Size())
	assert.Equal(t, 0, tr.Size())
	assert.True(t, tr.Empty())
	_, ok := tr.Extent()
	assert.False(t, ok)
}

func TestExportTreeFormats(t *testing.T) {
	tr, err := New(DefaultParams(2, 4))
	require.NoError(t, err)
	require.NoError(t, tr.Insert(mkRect(0, 0, 1, 1), "a"))
	require.NoError(t, tr.Insert(mkRect(5, 5, 6, 6), "b"))

	obj, err := tr.ExportTree(ExtentAsObj)
	require.NoError(t, err)
	assert.NotEmpty(t, obj)

	svg, err := tr.ExportTree(ExtentAsSVG)
	require.NoError(t, err)
	assert.Contains(t, svg, "<svg")

	formatted, err := tr.ExportTree(FormattedNodeProperties)
	require.NoError(t, err)
	assert.Contains(t, formatted, "kind=")

	_, err = tr.ExportTree(Format(99))
	assert.ErrorIs(t, err, mdindexerr.ErrInvalidArg)
}

func TestWalkVisitsEveryValue(t *testing.T) {
	tr, err := New(DefaultParams(2, 4))
	require.NoError(t, err)
	for i := 0; i < 30; i++ {
		x := float64(i)
		require.NoError(t, tr.Insert(mkRect(x, x, x+1, x+1), i))
	}
	seen := map[int]bool{}
	tr.Walk(func(depth int, e MBR, child *node, value any) bool {
		if child == nil {
			seen[value.(int)] = true
		}
		return true
	})
	assert.Len(t, seen, 30)
}

func TestInsertPointIsZeroVolumeExtent(t *testing.T) {
	tr, err := New(DefaultParams(2, 4))
	require.NoError(t, err)
	require.NoError(t, tr.InsertPoint([]float64{1, 2}, "p"))
	hits := tr.Search(Point([]float64{1, 2}), Overlap)
	require.Len(t, hits, 1)
	assert.Equal(t, "p", hits[0].Value)
}
