// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package mtv implements the multi-type vector (C2): an ordered sequence of
// logical positions [0, n) partitioned into contiguous blocks, each backed
// by one pkg/block.Block of a single element type. See spec.md §4.2.
//
// Mutating operations are built on one primitive, splitAt, which forces a
// logical position to fall exactly on a block boundary (the "head / middle
// / tail of B" case analysis spec.md §4.2 describes for Set). Once a
// range's two endpoints are boundaries, bulk operations only ever splice
// whole blocks, and renumber folds the result back down to the canonical
// no-adjacent-same-type, no-adjacent-empty form.
package mtv

import (
	"fmt"

	"github.com/ClusterCockpit/cc-mdindex/pkg/block"
	"github.com/ClusterCockpit/cc-mdindex/pkg/mdindexerr"
)

// segment is one contiguous block and the logical position where it starts.
type segment struct {
	pos int
	blk block.Block
}

// Vector is the multi-type vector described in spec.md §4.2 / §3 (MTV).
type Vector struct {
	segs []segment
	size int
}

// New creates a vector of n empty positions.
func New(n int) *Vector {
	v := &Vector{size: n}
	if n > 0 {
		v.segs = []segment{{pos: 0, blk: block.NewEmpty(n)}}
	}
	return v
}

// NewWithValue creates a vector of n positions, all holding a single
// non-empty block of type(v).
func NewWithValue(n int, v any) (*Vector, error) {
	vec := New(n)
	if n == 0 {
		return vec, nil
	}
	if err := vec.SetRange(0, repeat(v, n)); err != nil {
		return nil, err
	}
	return vec, nil
}

func repeat(v any, n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// Size reports the total logical length.
func (v *Vector) Size() int { return v.size }

func outOfRange(op string, i, n int) error {
	return fmt.Errorf("mtv.%s: index %d out of [0,%d): %w", op, i, n, mdindexerr.ErrOutOfBounds)
}

// segAt returns the index of the segment containing logical position i. i
// must be in [0, size]; segAt(size) returns len(segs).
func (v *Vector) segAt(i int) int {
	lo, hi := 0, len(v.segs)
	for lo < hi {
		mid := (lo + hi) / 2
		if v.segs[mid].pos+v.segs[mid].blk.Len() <= i {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

func (v *Vector) checkIndex(op string, i int) error {
	if i < 0 || i >= v.size {
		return outOfRange(op, i, v.size)
	}
	return nil
}

// splitAt ensures pos is a segment boundary (0, v.size, or the start of some
// segment), splitting the segment straddling it if necessary. Returns the
// segment index now starting at pos.
func (v *Vector) splitAt(pos int) (int, error) {
	if pos == 0 {
		return 0, nil
	}
	if pos == v.size {
		return len(v.segs), nil
	}
	idx := v.segAt(pos)
	s := v.segs[idx]
	if s.pos == pos {
		return idx, nil
	}
	offset := pos - s.pos
	head, err := s.blk.Slice(0, offset)
	if err != nil {
		return 0, err
	}
	tail, err := s.blk.Slice(offset, s.blk.Len())
	if err != nil {
		return 0, err
	}
	out := make([]segment, 0, len(v.segs)+1)
	out = append(out, v.segs[:idx]...)
	out = append(out, segment{pos: s.pos, blk: head}, segment{pos: pos, blk: tail})
	out = append(out, v.segs[idx+1:]...)
	v.segs = out
	return idx + 1, nil
}

// renumber merges adjacent segments of identical type (MTV invariant 3),
// drops zero-length segments, and recomputes starting positions.
func (v *Vector) renumber() {
	coalesced := make([]segment, 0, len(v.segs))
	for _, s := range v.segs {
		if s.blk.Len() == 0 {
			continue
		}
		if n := len(coalesced); n > 0 && coalesced[n-1].blk.Kind() == s.blk.Kind() {
			_ = coalesced[n-1].blk.AppendFrom(s.blk, 0, s.blk.Len())
			continue
		}
		coalesced = append(coalesced, s)
	}
	pos := 0
	for i := range coalesced {
		coalesced[i].pos = pos
		pos += coalesced[i].blk.Len()
	}
	v.segs = coalesced
}

// spliceRange splits at i and j (0 <= i <= j <= size), releases the managed
// elements of whatever segments fully occupy [i, j), replaces them with
// replacement (possibly empty), and renumbers. It does not touch v.size.
func (v *Vector) spliceRange(i, j int, replacement []block.Block) error {
	return v.splice(i, j, replacement, true)
}

// spliceRangeTaken is spliceRange's twin for callers (Release/ReleaseRange)
// that already took ownership of the elements in [i, j) via block.Release
// and must not run the managed destructor on them a second time.
func (v *Vector) spliceRangeTaken(i, j int, replacement []block.Block) error {
	return v.splice(i, j, replacement, false)
}

func (v *Vector) splice(i, j int, replacement []block.Block, runOverwrite bool) error {
	lo, err := v.splitAt(i)
	if err != nil {
		return err
	}
	hi, err := v.splitAt(j)
	if err != nil {
		return err
	}
	if runOverwrite {
		for k := lo; k < hi; k++ {
			if err := v.segs[k].blk.Overwrite(0, v.segs[k].blk.Len()); err != nil {
				return err
			}
		}
	}
	out := make([]segment, 0, len(v.segs)-(hi-lo)+len(replacement))
	out = append(out, v.segs[:lo]...)
	for _, b := range replacement {
		out = append(out, segment{blk: b})
	}
	out = append(out, v.segs[hi:]...)
	v.segs = out
	v.renumber()
	return nil
}
