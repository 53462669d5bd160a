// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mtv

import (
	"fmt"

	"github.com/ClusterCockpit/cc-mdindex/pkg/block"
	"github.com/ClusterCockpit/cc-mdindex/pkg/mdindexerr"
)

func blockOf(v any) (block.Block, error) {
	switch t := v.(type) {
	case float64:
		b := block.NewNumeric(1)
		_ = b.Set(0, t)
		return b, nil
	case int64:
		b := block.NewInteger(1)
		_ = b.Set(0, t)
		return b, nil
	case bool:
		b := block.NewBoolean(1)
		_ = b.Set(0, t)
		return b, nil
	case string:
		b := block.NewString(1)
		_ = b.Set(0, t)
		return b, nil
	case nil:
		return block.NewEmpty(1), nil
	default:
		return nil, fmt.Errorf("mtv: unsupported scalar type %T: %w", v, mdindexerr.ErrTypeMismatch)
	}
}

func blockOfRun(vs []any) (block.Block, error) {
	if len(vs) == 0 {
		return block.NewEmpty(0), nil
	}
	first, err := blockOf(vs[0])
	if err != nil {
		return nil, err
	}
	if err := first.Resize(len(vs)); err != nil {
		return nil, err
	}
	for i := 1; i < len(vs); i++ {
		if err := first.Set(i, vs[i]); err != nil {
			return nil, err
		}
	}
	return first, nil
}

// Set writes v at position i, splitting and merging blocks as needed to
// preserve the MTV invariants (spec.md §4.2 write-with-split-merge).
func (v *Vector) Set(i int, value any) error {
	if err := v.checkIndex("Set", i); err != nil {
		return err
	}
	b, err := blockOf(value)
	if err != nil {
		return err
	}
	return v.spliceRange(i, i+1, []block.Block{b})
}

// IsEmpty reports whether the block at position i is empty.
func (v *Vector) IsEmpty(i int) (bool, error) {
	if err := v.checkIndex("IsEmpty", i); err != nil {
		return false, err
	}
	idx := v.segAt(i)
	return v.segs[idx].blk.Kind() == block.Empty, nil
}

// Get reads the element at logical position i as type T, failing with
// mdindexerr.ErrTypeMismatch if the stored element is not a T (Go has no
// method type parameters, so this is a package-level function rather than
// Vector.Get[T], per spec.md §4.2's get<T>(i) -> T).
func Get[T any](v *Vector, i int) (T, error) {
	var zero T
	if err := v.checkIndex("Get", i); err != nil {
		return zero, err
	}
	idx := v.segAt(i)
	seg := v.segs[idx]
	raw, err := seg.blk.Get(i - seg.pos)
	if err != nil {
		return zero, err
	}
	t, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("mtv.Get: position %d holds %T, not %T: %w", i, raw, zero, mdindexerr.ErrTypeMismatch)
	}
	return t, nil
}

// SetRange writes the homogeneous run values starting at position i.
func (v *Vector) SetRange(i int, values []any) error {
	if len(values) == 0 {
		return nil
	}
	if i < 0 || i+len(values) > v.size {
		return outOfRange("SetRange", i+len(values)-1, v.size)
	}
	b, err := blockOfRun(values)
	if err != nil {
		return err
	}
	return v.spliceRange(i, i+len(values), []block.Block{b})
}

// SetEmpty overwrites the inclusive range [i, j] with empty.
func (v *Vector) SetEmpty(i, j int) error {
	if i < 0 || j < i || j >= v.size {
		return outOfRange("SetEmpty", j, v.size)
	}
	return v.spliceRange(i, j+1, []block.Block{block.NewEmpty(j + 1 - i)})
}

// Insert inserts values at position i, extending the vector's total size.
func (v *Vector) Insert(i int, values []any) error {
	if i < 0 || i > v.size {
		return outOfRange("Insert", i, v.size)
	}
	if len(values) == 0 {
		return nil
	}
	b, err := blockOfRun(values)
	if err != nil {
		return err
	}
	if err := v.spliceRange(i, i, []block.Block{b}); err != nil {
		return err
	}
	v.size += len(values)
	return nil
}

// InsertEmpty inserts count empty positions at i, extending total size.
func (v *Vector) InsertEmpty(i, count int) error {
	if i < 0 || i > v.size {
		return outOfRange("InsertEmpty", i, v.size)
	}
	if count <= 0 {
		return nil
	}
	if err := v.spliceRange(i, i, []block.Block{block.NewEmpty(count)}); err != nil {
		return err
	}
	v.size += count
	return nil
}

// Erase removes the inclusive range [i, j], shrinking total size.
func (v *Vector) Erase(i, j int) error {
	if i < 0 || j < i || j >= v.size {
		return outOfRange("Erase", j, v.size)
	}
	n := j + 1 - i
	if err := v.spliceRange(i, j+1, nil); err != nil {
		return err
	}
	v.size -= n
	return nil
}

// Resize extends the vector with empty positions or truncates it.
func (v *Vector) Resize(n int) error {
	if n < 0 {
		return outOfRange("Resize", n, v.size)
	}
	if n == v.size {
		return nil
	}
	if n > v.size {
		return v.InsertEmpty(v.size, n-v.size)
	}
	if n == 0 {
		if err := v.spliceRange(0, v.size, nil); err != nil {
			return err
		}
		v.size = 0
		return nil
	}
	old := v.size
	if err := v.spliceRange(n, old, nil); err != nil {
		return err
	}
	v.size = n
	return nil
}

// PushBack appends v at the tail.
func (v *Vector) PushBack(value any) error {
	return v.Insert(v.size, []any{value})
}

// PushBackEmpty appends one empty position at the tail.
func (v *Vector) PushBackEmpty() error {
	return v.InsertEmpty(v.size, 1)
}

// Release hands ownership of the element at i back to the caller, leaving
// the slot empty WITHOUT invoking the managed destructor.
func (v *Vector) Release(i int) (any, error) {
	if err := v.checkIndex("Release", i); err != nil {
		return nil, err
	}
	idx := v.segAt(i)
	seg := v.segs[idx]
	val, err := seg.blk.Release(i - seg.pos)
	if err != nil {
		return nil, err
	}
	if err := v.spliceRangeTaken(i, i+1, []block.Block{block.NewEmpty(1)}); err != nil {
		return nil, err
	}
	return val, nil
}

// ReleaseRange hands ownership of elements [i, j] back to the caller as a
// slice, leaving the slots empty without invoking managed destructors.
func (v *Vector) ReleaseRange(i, j int) ([]any, error) {
	if i < 0 || j < i || j >= v.size {
		return nil, outOfRange("ReleaseRange", j, v.size)
	}
	out := make([]any, 0, j+1-i)
	for k := i; k <= j; k++ {
		idx := v.segAt(k)
		seg := v.segs[idx]
		val, err := seg.blk.Release(k - seg.pos)
		if err != nil {
			return nil, err
		}
		out = append(out, val)
	}
	if err := v.spliceRangeTaken(i, j+1, []block.Block{block.NewEmpty(j + 1 - i)}); err != nil {
		return nil, err
	}
	return out, nil
}
