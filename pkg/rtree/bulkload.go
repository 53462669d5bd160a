// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"math"
)

// BulkLoader accumulates (extent, value) pairs and packs them into a
// balanced tree via STR (Sort-Tile-Recursive) on Pack, rather than paying
// for M-1 splits per insertion.
type BulkLoader struct {
	params  Params
	entries []entry
}

// NewBulkLoader returns a loader for the given trait.
func NewBulkLoader(params Params) *BulkLoader {
	return &BulkLoader{params: params}
}

// Add accumulates one (extent, value) pair.
func (b *BulkLoader) Add(extent MBR, value any) {
	b.entries = append(b.entries, entry{mbr: extent, value: value})
}

// Pack builds a tree bottom-up via STR: the leaf level is built by slicing
// the input along each axis in turn (slice_count = ceil(leaf_count^(1/D)))
// and packing M items per leaf; directory levels repeat the same slicing
// over the level below until a single root remains. Deterministic by sort
// order, per spec.md's bulk-load algorithm.
func (b *BulkLoader) Pack() *Tree {
	t := &Tree{params: b.params, root: &node{entries: []entry{}, height: 0}}
	if len(b.entries) == 0 {
		return t
	}

	level := b.entries
	height := 0
	for {
		groups := strGroups(level, b.params.Dims, b.params.MaxEntries)
		nextLevel := make([]entry, 0, len(groups))
		for _, g := range groups {
			n := groupToNode(g, height, nil)
			nextLevel = append(nextLevel, entry{mbr: mbrOfEntries(g), child: n})
		}
		if len(nextLevel) == 1 {
			root := nextLevel[0].child
			root.parent = nil
			t.root = root
			t.size = len(b.entries)
			return t
		}
		level = nextLevel
		height++
	}
}

func groupToNode(g []entry, height int, parent *node) *node {
	n := &node{entries: append([]entry{}, g...), height: height, parent: parent}
	for i := range n.entries {
		if n.entries[i].child != nil {
			n.entries[i].child.parent = n
		}
	}
	return n
}

// strGroups partitions entries into leaf-sized groups via recursive
// axis-by-axis tiling: sort by axis 0 into ceil(count^(1/D)) slices, then
// within each slice recurse on the remaining axes, bottoming out at a
// straight per-maxEntries chunking once every axis has been sliced.
func strGroups(entries []entry, dims, maxEntries int) [][]entry {
	return strSlice(entries, 0, dims, maxEntries)
}

func strSlice(entries []entry, axis, dims, maxEntries int) [][]entry {
	if axis >= dims-1 || len(entries) <= maxEntries {
		return chunk(entries, axis, maxEntries)
	}

	leafCount := int(math.Ceil(float64(len(entries)) / float64(maxEntries)))
	sliceCount := int(math.Ceil(math.Pow(float64(leafCount), 1.0/float64(dims-axis))))
	if sliceCount < 1 {
		sliceCount = 1
	}
	sliceSize := int(math.Ceil(float64(len(entries)) / float64(sliceCount)))

	sorted := append([]entry{}, entries...)
	sortByAxis(sorted, axis)

	var out [][]entry
	for i := 0; i < len(sorted); i += sliceSize {
		end := i + sliceSize
		if end > len(sorted) {
			end = len(sorted)
		}
		out = append(out, strSlice(sorted[i:end], axis+1, dims, maxEntries)...)
	}
	return out
}

func chunk(entries []entry, axis, size int) [][]entry {
	sorted := append([]entry{}, entries...)
	sortByAxis(sorted, axis)
	groups := (len(sorted) + size - 1) / size
	base, extra := len(sorted)/groups, len(sorted)%groups
	var out [][]entry
	for i, g := 0, 0; g < groups; g++ {
		end := i + base
		if g < extra {
			end++
		}
		out = append(out, append([]entry{}, sorted[i:end]...))
		i = end
	}
	return out
}
