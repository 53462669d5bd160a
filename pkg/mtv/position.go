// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mtv

import "github.com/ClusterCockpit/cc-mdindex/pkg/block"

// Position is an opaque cursor identifying a block index and an offset
// within that block, used to accelerate sequential mutations (spec.md
// §4.2 "position hints"). It becomes stale the moment the vector it was
// obtained from is split, merged, or resized by any operation; the
// library makes no attempt to detect staleness, matching spec.md's note
// that validity is not promised across mutations. A Position obtained
// from one Vector must not be used against another.
type Position struct {
	vec   *Vector
	block int // index into vec.segs
	pos   int // logical position this hint currently refers to
}

// PositionInfo is what a Position dereferences to.
type PositionInfo struct {
	Type     block.Type
	Position int
	Size     int
}

// Position returns a cursor referring to the block and offset at i.
func (v *Vector) Position(i int) (Position, error) {
	if err := v.checkIndex("Position", i); err != nil {
		return Position{}, err
	}
	return Position{vec: v, block: v.segAt(i), pos: i}, nil
}

// PositionFrom refines hint to point at i, in amortized O(1) when i is near
// hint's current position (the common case for sequential writers).
func (v *Vector) PositionFrom(hint Position, i int) (Position, error) {
	if hint.vec != v {
		return v.Position(i)
	}
	if err := v.checkIndex("PositionFrom", i); err != nil {
		return Position{}, err
	}
	idx := hint.block
	if idx < 0 || idx >= len(v.segs) {
		return v.Position(i)
	}
	s := v.segs[idx]
	for idx > 0 && i < s.pos {
		idx--
		s = v.segs[idx]
	}
	for idx < len(v.segs)-1 && i >= s.pos+s.blk.Len() {
		idx++
		s = v.segs[idx]
	}
	return Position{vec: v, block: idx, pos: i}, nil
}

// Info dereferences the position.
func (p Position) Info() PositionInfo {
	s := p.vec.segs[p.block]
	return PositionInfo{Type: s.blk.Kind(), Position: s.pos, Size: s.blk.Len()}
}

// Next advances the hint to the following logical position, possibly
// crossing into the next block.
func (p Position) Next() (Position, error) {
	return p.vec.PositionFrom(p, p.pos+1)
}

// Prev steps the hint back one logical position, possibly crossing into
// the previous block. Supplements spec.md's forward-only description,
// following the bidirectional iterator original_source/include/mdds's
// multi_type_vector_itr.hpp implements.
func (p Position) Prev() (Position, error) {
	return p.vec.PositionFrom(p, p.pos-1)
}

// SetAt writes v at the position the hint refers to, refreshing hint in
// the same pass the way the mdds position-hint overloads do.
func (v *Vector) SetAt(hint Position, value any) (Position, error) {
	if err := v.Set(hint.pos, value); err != nil {
		return hint, err
	}
	return v.Position(hint.pos)
}
