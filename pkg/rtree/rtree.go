// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package rtree implements the R-tree (C7): a D-dimensional spatial
// index of extents (and points, treated as zero-volume extents), built
// with the R*-tree insertion discipline (forced reinsertion before
// splitting) and STR bulk loading. See spec.md §4.7.
package rtree

import (
	"fmt"
	"math"

	"github.com/ClusterCockpit/cc-mdindex/pkg/mdindexerr"
)

// MBR is an axis-aligned minimum bounding rectangle in D dimensions.
// Low[i] <= High[i] for every axis i.
type MBR struct {
	Low, High []float64
}

// Point builds a zero-volume MBR at p.
func Point(p []float64) MBR {
	low := append([]float64{}, p...)
	high := append([]float64{}, p...)
	return MBR{Low: low, High: high}
}

func (m MBR) dims() int { return len(m.Low) }

// Union returns the smallest MBR containing both m and other.
func (m MBR) Union(other MBR) MBR {
	low := make([]float64, m.dims())
	high := make([]float64, m.dims())
	for i := range low {
		low[i] = math.Min(m.Low[i], other.Low[i])
		high[i] = math.Max(m.High[i], other.High[i])
	}
	return MBR{Low: low, High: high}
}

// Area returns the D-dimensional volume.
func (m MBR) Area() float64 {
	a := 1.0
	for i := range m.Low {
		a *= m.High[i] - m.Low[i]
	}
	return a
}

// Margin returns the sum of the MBR's edge lengths, used by split-axis
// selection (Beckmann et al.'s S value).
func (m MBR) Margin() float64 {
	s := 0.0
	for i := range m.Low {
		s += m.High[i] - m.Low[i]
	}
	return s
}

// Overlap returns the volume of the intersection of m and other (0 if
// they don't intersect).
func (m MBR) Overlap(other MBR) float64 {
	v := 1.0
	for i := range m.Low {
		lo := math.Max(m.Low[i], other.Low[i])
		hi := math.Min(m.High[i], other.High[i])
		if hi <= lo {
			return 0
		}
		v *= hi - lo
	}
	return v
}

// Intersects reports whether m and other share any volume or boundary.
func (m MBR) Intersects(other MBR) bool {
	for i := range m.Low {
		if m.High[i] < other.Low[i] || other.High[i] < m.Low[i] {
			return false
		}
	}
	return true
}

// Equal reports exact coordinate equality.
func (m MBR) Equal(other MBR) bool {
	for i := range m.Low {
		if m.Low[i] != other.Low[i] || m.High[i] != other.High[i] {
			return false
		}
	}
	return true
}

// Center returns the MBR's centre point.
func (m MBR) Center() []float64 {
	c := make([]float64, m.dims())
	for i := range m.Low {
		c[i] = (m.Low[i] + m.High[i]) / 2
	}
	return c
}

func centerDist2(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return s
}

func mbrOfEntries(entries []entry) MBR {
	m := entries[0].mbr
	for _, e := range entries[1:] {
		m = m.Union(e.mbr)
	}
	return m
}

// Params is the R-tree trait from spec.md §4.7.
type Params struct {
	Dims               int
	MinEntries         int
	MaxEntries         int
	MaxDepth           int // not consulted by the tree; depth is not bounded
	ForcedReinsertion  bool
	ReinsertSampleSize int // p, must be < MaxEntries
}

// DefaultParams returns the conventional R*-tree defaults: m = 2M/5
// rounded down but at least 2, p = 3M/10 rounded down but at least 1.
func DefaultParams(dims, maxEntries int) Params {
	return Params{
		Dims:               dims,
		MaxEntries:         maxEntries,
		MinEntries:         max2(2, maxEntries*2/5),
		ForcedReinsertion:  true,
		ReinsertSampleSize: max2(1, maxEntries*3/10),
	}
}

func max2(a, b int) int {
	if a > b {
		return a
	}
	return b
}

type entry struct {
	mbr   MBR
	child *node // non-nil for a directory entry
	value any   // non-nil for a leaf entry
}

type node struct {
	parent  *node
	entries []entry
	height  int // 0 == leaf directory
}

func (n *node) isLeaf() bool { return n.height == 0 }

func (n *node) indexInParent() int {
	if n.parent == nil {
		return -1
	}
	for i, e := range n.parent.entries {
		if e.child == n {
			return i
		}
	}
	return -1
}

// Tree is the R-tree described in spec.md §3/§4.7.
type Tree struct {
	params             Params
	root               *node
	size               int
	reInsertedAtHeight map[int]bool
	instr              *Instrumentation
}

// New creates an empty tree with the given parameters.
func New(params Params) (*Tree, error) {
	if params.Dims < 1 {
		return nil, fmt.Errorf("rtree.New: Dims must be >= 1: %w", mdindexerr.ErrInvalidArg)
	}
	if params.MaxEntries < 2 || params.MinEntries < 1 || params.MinEntries*2 > params.MaxEntries+1 {
		return nil, fmt.Errorf("rtree.New: invalid m/M: %w", mdindexerr.ErrInvalidArg)
	}
	return &Tree{
		params: params,
		root:   &node{entries: []entry{}, height: 0},
	}, nil
}

// Size reports the number of values stored.
func (t *Tree) Size() int { return t.size }

// Empty reports whether the tree holds no values.
func (t *Tree) Empty() bool { return t.size == 0 }

// Extent returns the MBR of the root, or false if the tree is empty.
func (t *Tree) Extent() (MBR, bool) {
	if len(t.root.entries) == 0 {
		return MBR{}, false
	}
	return mbrOfEntries(t.root.entries), true
}

// Clear empties the tree.
func (t *Tree) Clear() {
	t.root = &node{entries: []entry{}, height: 0}
	t.size = 0
}

// Insert adds value at the given extent.
func (t *Tree) Insert(extent MBR, value any) error {
	if extent.dims() != t.params.Dims {
		return fmt.Errorf("rtree.Insert: extent has %d dims, want %d: %w", extent.dims(), t.params.Dims, mdindexerr.ErrInvalidArg)
	}
	t.reInsertedAtHeight = map[int]bool{}
	t.insert(0, entry{mbr: extent, value: value})
	t.size++
	return nil
}

// InsertPoint is a convenience wrapper for Insert(Point(p), value).
func (t *Tree) InsertPoint(p []float64, value any) error {
	return t.Insert(Point(p), value)
}
