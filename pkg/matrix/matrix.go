// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package matrix implements the mixed-type matrix (C3): a 2-D store whose
// cells are numeric, integer, boolean, string, or empty, layered atop
// either a dense store (one pkg/mtv.Vector per row) or a sparse map-backed
// store. See spec.md §4.3.
package matrix

import (
	"fmt"

	"github.com/ClusterCockpit/cc-mdindex/pkg/block"
	"github.com/ClusterCockpit/cc-mdindex/pkg/mdindexerr"
	"github.com/ClusterCockpit/cc-mdindex/pkg/mtv"
)

// Density selects the backing store and its initial element, the cross
// product spec.md §4.3 names: layout (dense array vs sparse map) x initial
// value (numeric 0 vs empty).
type Density int

const (
	FilledZero Density = iota
	FilledEmpty
	SparseZero
	SparseEmpty
)

func (d Density) sparse() bool {
	return d == SparseZero || d == SparseEmpty
}

func (d Density) initial() any {
	switch d {
	case FilledZero, SparseZero:
		return 0.0
	default:
		return nil
	}
}

type cellKey struct{ row, col int }

// Matrix is the mixed-type matrix described in spec.md §3/§4.3.
type Matrix struct {
	rows, cols int
	density    Density

	// dense backend: one mtv.Vector per row, each of length cols. Used
	// when density is FilledZero or FilledEmpty.
	dense []*mtv.Vector

	// sparse backend: only cells that differ from density.initial() are
	// present. Used when density is SparseZero or SparseEmpty.
	sparse map[cellKey]any

	flags map[cellKey]uint64
}

// New creates a (rows x cols) matrix with the given density.
func New(rows, cols int, density Density) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("matrix.New: negative dimension: %w", mdindexerr.ErrInvalidArg)
	}
	m := &Matrix{rows: rows, cols: cols, density: density, flags: map[cellKey]uint64{}}
	if density.sparse() {
		m.sparse = map[cellKey]any{}
		return m, nil
	}
	m.dense = make([]*mtv.Vector, rows)
	init := density.initial()
	for r := range m.dense {
		v, err := mtv.NewWithValue(cols, init)
		if err != nil {
			return nil, err
		}
		m.dense[r] = v
	}
	return m, nil
}

func (m *Matrix) Rows() int { return m.rows }
func (m *Matrix) Cols() int { return m.cols }

func (m *Matrix) checkCell(op string, r, c int) error {
	if r < 0 || r >= m.rows || c < 0 || c >= m.cols {
		return fmt.Errorf("matrix.%s: (%d,%d) out of (%d,%d): %w", op, r, c, m.rows, m.cols, mdindexerr.ErrOutOfBounds)
	}
	return nil
}

func kindOf(v any) block.Type {
	switch v.(type) {
	case nil:
		return block.Empty
	case float64:
		return block.Numeric
	case int64:
		return block.Integer
	case bool:
		return block.Boolean
	case string:
		return block.String
	default:
		return block.Empty
	}
}

// GetType reports the element type stored at (r, c).
func (m *Matrix) GetType(r, c int) (block.Type, error) {
	if err := m.checkCell("GetType", r, c); err != nil {
		return block.Empty, err
	}
	v, err := m.get(r, c)
	if err != nil {
		return block.Empty, err
	}
	return kindOf(v), nil
}

func (m *Matrix) get(r, c int) (any, error) {
	if m.density.sparse() {
		if v, ok := m.sparse[cellKey{r, c}]; ok {
			return v, nil
		}
		return m.density.initial(), nil
	}
	if empty, err := m.dense[r].IsEmpty(c); err != nil || empty {
		return nil, err
	}
	return mtv.Get[any](m.dense[r], c)
}

// Get reads the element at (r, c) with compile-time type safety.
func Get[T any](m *Matrix, r, c int) (T, error) {
	var zero T
	if err := m.checkCell("Get", r, c); err != nil {
		return zero, err
	}
	v, err := m.get(r, c)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("matrix.Get: element at (%d,%d) is not %T: %w", r, c, zero, mdindexerr.ErrTypeMismatch)
	}
	return t, nil
}

// Set writes v at (r, c).
func (m *Matrix) Set(r, c int, v any) error {
	if err := m.checkCell("Set", r, c); err != nil {
		return err
	}
	if m.density.sparse() {
		if v == m.density.initial() {
			delete(m.sparse, cellKey{r, c})
			return nil
		}
		m.sparse[cellKey{r, c}] = v
		return nil
	}
	return m.dense[r].Set(c, v)
}

// SetEmpty overwrites (r, c) with empty.
func (m *Matrix) SetEmpty(r, c int) error { return m.Set(r, c, nil) }

// SetColumn writes a homogeneous run of values down column c starting at
// row 0.
func (m *Matrix) SetColumn(c int, values []any) error {
	if c < 0 || c >= m.cols || len(values) > m.rows {
		return fmt.Errorf("matrix.SetColumn: column %d, %d values: %w", c, len(values), mdindexerr.ErrOutOfBounds)
	}
	for r, v := range values {
		if err := m.Set(r, c, v); err != nil {
			return err
		}
	}
	return nil
}

// SetRow writes a homogeneous run of values across row r starting at col 0.
func (m *Matrix) SetRow(r int, values []any) error {
	if r < 0 || r >= m.rows || len(values) > m.cols {
		return fmt.Errorf("matrix.SetRow: row %d, %d values: %w", r, len(values), mdindexerr.ErrOutOfBounds)
	}
	if !m.density.sparse() {
		anyValues := make([]any, len(values))
		copy(anyValues, values)
		return m.dense[r].SetRange(0, anyValues)
	}
	for c, v := range values {
		if err := m.Set(r, c, v); err != nil {
			return err
		}
	}
	return nil
}

// SetColumnEmpty overwrites all of column c with empty.
func (m *Matrix) SetColumnEmpty(c int) error {
	if c < 0 || c >= m.cols {
		return fmt.Errorf("matrix.SetColumnEmpty: column %d: %w", c, mdindexerr.ErrOutOfBounds)
	}
	for r := 0; r < m.rows; r++ {
		if err := m.SetEmpty(r, c); err != nil {
			return err
		}
	}
	return nil
}

// SetRowEmpty overwrites all of row r with empty.
func (m *Matrix) SetRowEmpty(r int) error {
	if r < 0 || r >= m.rows {
		return fmt.Errorf("matrix.SetRowEmpty: row %d: %w", r, mdindexerr.ErrOutOfBounds)
	}
	if !m.density.sparse() {
		return m.dense[r].SetEmpty(0, m.cols-1)
	}
	for c := 0; c < m.cols; c++ {
		if err := m.SetEmpty(r, c); err != nil {
			return err
		}
	}
	return nil
}

// SetFlag sets a user-defined flag bit mask at (r, c).
func (m *Matrix) SetFlag(r, c int, flag uint64) error {
	if err := m.checkCell("SetFlag", r, c); err != nil {
		return err
	}
	m.flags[cellKey{r, c}] |= flag
	return nil
}

// GetFlag reads the flag bit mask at (r, c).
func (m *Matrix) GetFlag(r, c int) (uint64, error) {
	if err := m.checkCell("GetFlag", r, c); err != nil {
		return 0, err
	}
	return m.flags[cellKey{r, c}], nil
}

// ClearFlags removes every flag, supplementing spec.md's flag store with
// the bulk-clear original_source/include/mdds/mixed_type_matrix_flag_storage.hpp
// exposes.
func (m *Matrix) ClearFlags() { m.flags = map[cellKey]uint64{} }

// FlagCount reports how many cells carry a non-zero flag.
func (m *Matrix) FlagCount() int { return len(m.flags) }
