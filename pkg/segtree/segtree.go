// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package segtree implements the (static) segment tree (C5): a
// stabbing-query index over arbitrary, possibly overlapping intervals on a
// 1-D key space. Unlike pkg/fst's painted segmentation, intervals here may
// overlap freely; a query returns every interval containing the queried
// point. See spec.md §4.5.
package segtree

import (
	"fmt"
	"sort"

	"golang.org/x/exp/constraints"

	"github.com/ClusterCockpit/cc-mdindex/pkg/mdindexerr"
)

// Interval is one entry of the insertion list.
type Interval[K constraints.Ordered, V any] struct {
	Low, High K
	Value     V
}

type node[K constraints.Ordered] struct {
	low, high   K
	left, right *node[K] // both nil for a leaf
	ids         []int    // indices into Tree.intervals fully contained by [low,high)
}

// Tree is the segment tree described in spec.md §3/§4.5.
type Tree[K constraints.Ordered, V any] struct {
	intervals []Interval[K, V]
	endpoints []K
	root      *node[K]
	validTree bool
}

// New returns an empty tree.
func New[K constraints.Ordered, V any]() *Tree[K, V] {
	return &Tree[K, V]{}
}

// Insert appends (low, high, v) to the insertion list and invalidates the
// built tree. Fails if low >= high.
func (t *Tree[K, V]) Insert(low, high K, v V) error {
	if low >= high {
		return fmt.Errorf("segtree.Insert: low %v >= high %v: %w", low, high, mdindexerr.ErrInvalidArg)
	}
	t.intervals = append(t.intervals, Interval[K, V]{Low: low, High: high, Value: v})
	t.validTree = false
	return nil
}

// Size reports the number of active intervals.
func (t *Tree[K, V]) Size() int { return len(t.intervals) }

// Clear removes every interval and invalidates the tree.
func (t *Tree[K, V]) Clear() {
	t.intervals = nil
	t.endpoints = nil
	t.root = nil
	t.validTree = false
}

// IsTreeValid reports whether BuildTree has run since the last mutation.
func (t *Tree[K, V]) IsTreeValid() bool { return t.validTree }

// EraseIf drops every interval for which pred returns true, invalidating
// the tree.
func (t *Tree[K, V]) EraseIf(pred func(low, high K, v V) bool) {
	kept := t.intervals[:0]
	for _, iv := range t.intervals {
		if !pred(iv.Low, iv.High, iv.Value) {
			kept = append(kept, iv)
		}
	}
	t.intervals = kept
	t.validTree = false
	t.root = nil
}

// BoundaryKeys returns the unique sorted endpoint keys from the last
// BuildTree call.
func (t *Tree[K, V]) BoundaryKeys() []K {
	out := make([]K, len(t.endpoints))
	copy(out, t.endpoints)
	return out
}

// Equal compares the active (low, high, value) multisets of t and other,
// disregarding tree-build state.
func (t *Tree[K, V]) Equal(other *Tree[K, V], eq func(a, b V) bool) bool {
	if len(t.intervals) != len(other.intervals) {
		return false
	}
	used := make([]bool, len(other.intervals))
	for _, a := range t.intervals {
		found := false
		for j, b := range other.intervals {
			if used[j] || a.Low != b.Low || a.High != b.High || !eq(a.Value, b.Value) {
				continue
			}
			used[j] = true
			found = true
			break
		}
		if !found {
			return false
		}
	}
	return true
}

// Clone duplicates the insertion list. Built-tree nodes are never mutated
// in place after BuildTree runs (Insert marks the tree invalid and EraseIf
// drops the root; both require a rebuild), so it is safe to share the existing root rather
// than deep-copy it when the source tree is valid.
func (t *Tree[K, V]) Clone() *Tree[K, V] {
	c := &Tree[K, V]{
		intervals: append([]Interval[K, V]{}, t.intervals...),
		endpoints: append([]K{}, t.endpoints...),
		root:      t.root,
		validTree: t.validTree,
	}
	return c
}
