// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package matrix

import (
	"github.com/ClusterCockpit/cc-mdindex/pkg/mtv"
)

// Resize grows or shrinks the matrix. New cells take the density's initial
// value unless init is supplied, in which case they take init.
func (m *Matrix) Resize(rows, cols int, init ...any) error {
	var fill any = m.density.initial()
	if len(init) > 0 {
		fill = init[0]
	}
	next, err := New(rows, cols, m.density)
	if err != nil {
		return err
	}
	if fill != m.density.initial() {
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if err := next.Set(r, c, fill); err != nil {
					return err
				}
			}
		}
	}
	if err := next.Copy(m); err != nil {
		return err
	}
	*m = *next
	return nil
}

// Transpose swaps rows and columns in place for the logical view; the
// backing store is rebuilt rather than permuted in place (spec.md §4.3).
func (m *Matrix) Transpose() error {
	next, err := New(m.cols, m.rows, m.density)
	if err != nil {
		return err
	}
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			v, err := m.get(r, c)
			if err != nil {
				return err
			}
			if err := next.Set(c, r, v); err != nil {
				return err
			}
			if f, _ := m.GetFlag(r, c); f != 0 {
				_ = next.SetFlag(c, r, f)
			}
		}
	}
	*m = *next
	return nil
}

// Copy element-wise copies other into m, bounded by the intersection of
// their sizes.
func (m *Matrix) Copy(other *Matrix) error {
	rows := min(m.rows, other.rows)
	cols := min(m.cols, other.cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v, err := other.get(r, c)
			if err != nil {
				return err
			}
			if err := m.Set(r, c, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// Swap exchanges the backing stores of m and other in O(1).
func (m *Matrix) Swap(other *Matrix) {
	*m, *other = *other, *m
}

// Numeric reports whether every cell is numeric (float64) or boolean; an
// Integer-typed cell (int64) counts as neither, matching the block package's
// Numeric/Integer type split.
func (m *Matrix) Numeric() bool {
	ok := true
	m.Walk(func(r, c int, v any) bool {
		switch v.(type) {
		case float64, bool:
		default:
			ok = false
			return false
		}
		return true
	})
	return ok
}

// Empty reports whether every cell is of type Empty.
func (m *Matrix) Empty() bool {
	ok := true
	m.Walk(func(r, c int, v any) bool {
		if v != nil {
			ok = false
			return false
		}
		return true
	})
	return ok
}

// Walk performs a row-major traversal. On the dense backend each cell is
// read individually through pkg/mtv; the walk does not visit the vector's
// blocks as runs. fn returning false stops the walk early.
func (m *Matrix) Walk(fn func(r, c int, v any) bool) {
	for r := 0; r < m.rows; r++ {
		if m.density.sparse() {
			for c := 0; c < m.cols; c++ {
				v := m.density.initial()
				if sv, ok := m.sparse[cellKey{r, c}]; ok {
					v = sv
				}
				if !fn(r, c, v) {
					return
				}
			}
			continue
		}
		for c := 0; c < m.cols; c++ {
			v, _ := mtv.Get[any](m.dense[r], c)
			if !fn(r, c, v) {
				return
			}
		}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
