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

// extractBlocks splits at i and j, returns a copy of the underlying block
// list covering [i, j), and replaces that range in v with j-i empty
// positions WITHOUT releasing the extracted blocks' elements — ownership
// moves to the caller, mirroring block.Release's "no destructor" contract.
func (v *Vector) extractBlocks(i, j int) ([]block.Block, error) {
	lo, err := v.splitAt(i)
	if err != nil {
		return nil, err
	}
	hi, err := v.splitAt(j)
	if err != nil {
		return nil, err
	}
	out := make([]block.Block, 0, hi-lo)
	for k := lo; k < hi; k++ {
		out = append(out, v.segs[k].blk)
	}
	if err := v.spliceRangeTaken(i, j, []block.Block{block.NewEmpty(j - i)}); err != nil {
		return nil, err
	}
	return out, nil
}

// Transfer moves elements [i, j] of v into dst starting at k. The source
// range becomes empty; dst's prior elements in [k, k+(j-i)] are released
// (managed destructors run) before being overwritten. Neither container's
// total size changes. Fails if dst is v.
func (v *Vector) Transfer(i, j int, dst *Vector, k int) error {
	if dst == v {
		return fmt.Errorf("mtv.Transfer: destination must not be the source vector: %w", mdindexerr.ErrInvalidArg)
	}
	if i < 0 || j < i || j >= v.size {
		return outOfRange("Transfer", j, v.size)
	}
	n := j + 1 - i
	if k < 0 || k+n > dst.size {
		return outOfRange("Transfer", k+n-1, dst.size)
	}
	blocks, err := v.extractBlocks(i, j+1)
	if err != nil {
		return err
	}
	return dst.spliceRange(k, k+n, blocks)
}

// Swap exchanges the inclusive range [i, j] of v with the range [k, k+n)
// of other, where n = j - i + 1 is the length of both ranges.
func (v *Vector) Swap(i, j int, other *Vector, k int) error {
	if i < 0 || j < i || j >= v.size {
		return outOfRange("Swap", j, v.size)
	}
	n := j + 1 - i
	if k < 0 || k+n > other.size {
		return outOfRange("Swap", k+n-1, other.size)
	}
	if other == v {
		// Swapping a range with itself is a no-op; any other pair of spans
		// in the same vector goes through the two extractions below.
		if i == k {
			return nil
		}
	}
	mine, err := v.extractBlocks(i, j+1)
	if err != nil {
		return err
	}
	theirs, err := other.extractBlocks(k, k+n)
	if err != nil {
		return err
	}
	if err := v.spliceRangeTaken(i, i+n, theirs); err != nil {
		return err
	}
	if err := other.spliceRangeTaken(k, k+n, mine); err != nil {
		return err
	}
	return nil
}
