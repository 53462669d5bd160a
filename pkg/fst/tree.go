// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fst

import (
	"fmt"

	"github.com/ClusterCockpit/cc-mdindex/pkg/mdindexerr"
)

// buildNode is a level-construction handle during BuildTree: it wraps
// either a leaf or an already-built nonleaf summary along with its span.
type buildNode[K Numeric, V comparable] struct {
	low, high K
	leaf      *leaf[K, V]
	inner     *nonleaf[K, V]
}

// BuildTree constructs a balanced search tree over the current leaf chain
// for O(log N) lookups via SearchTree, by pairing adjacent nodes bottom-up
// (an odd node out at any level is promoted unchanged) until a single root
// remains. Any subsequent mutation (InsertSegment, ShiftSegmentLeft,
// ShiftSegmentRight) invalidates it; call BuildTree again before relying
// on SearchTree.
func (t *Tree[K, V]) BuildTree() {
	level := make([]buildNode[K, V], 0)
	for cur := t.head; cur != t.tail; cur = cur.next {
		level = append(level, buildNode[K, V]{low: cur.key, high: cur.next.key, leaf: cur})
	}

	if len(level) == 0 {
		t.root = nil
		t.validTree = true
		return
	}

	for len(level) > 1 {
		var next []buildNode[K, V]
		for i := 0; i+1 < len(level); i += 2 {
			a, b := level[i], level[i+1]
			n := &nonleaf[K, V]{low: a.low, high: b.high, mid: b.low}
			if a.leaf != nil {
				n.leftLeaf = a.leaf
			} else {
				n.left = a.inner
			}
			if b.leaf != nil {
				n.rightLeaf = b.leaf
			} else {
				n.right = b.inner
			}
			next = append(next, buildNode[K, V]{low: n.low, high: n.high, inner: n})
		}
		if len(level)%2 == 1 {
			next = append(next, level[len(level)-1])
		}
		level = next
	}

	t.root = level[0].inner // nil when a single leaf spans the whole tree
	t.validTree = true
}

// IsTreeValid reports whether the search tree built by BuildTree still
// matches the current leaf chain.
func (t *Tree[K, V]) IsTreeValid() bool { return t.validTree }

// SearchTree is the O(log N) counterpart to Search; it requires a tree
// built (and not since invalidated) by BuildTree.
func (t *Tree[K, V]) SearchTree(k K) (value V, start, end K, err error) {
	if !t.validTree {
		return value, start, end, fmt.Errorf("fst.SearchTree: tree not built: %w", mdindexerr.ErrTreeInvalid)
	}
	if k < t.min || k >= t.max {
		return value, start, end, fmt.Errorf("fst.SearchTree: key out of [%v,%v): %w", t.min, t.max, mdindexerr.ErrNotFound)
	}
	if t.root == nil {
		return t.head.value, t.head.key, t.tail.key, nil
	}
	n := t.root
	for {
		if k < n.mid {
			if n.leftLeaf != nil {
				return n.leftLeaf.value, n.leftLeaf.key, n.leftLeaf.next.key, nil
			}
			n = n.left
		} else {
			if n.rightLeaf != nil {
				return n.rightLeaf.value, n.rightLeaf.key, n.rightLeaf.next.key, nil
			}
			n = n.right
		}
	}
}

// Walk visits every segment from low to high, stopping early if fn returns
// false.
func (t *Tree[K, V]) Walk(fn func(start, end K, value V) bool) {
	for cur := t.head; cur != t.tail; cur = cur.next {
		if !fn(cur.key, cur.next.key, cur.value) {
			return
		}
	}
}

// WalkReverse visits every segment from high to low.
func (t *Tree[K, V]) WalkReverse(fn func(start, end K, value V) bool) {
	for cur := t.tail.prev; cur != nil; cur = cur.prev {
		if !fn(cur.key, cur.next.key, cur.value) {
			return
		}
	}
}

// LeafCount returns the number of distinct segments currently in the
// chain, handy for tests and for callers sizing an export buffer.
func (t *Tree[K, V]) LeafCount() int {
	n := 0
	for cur := t.head; cur != t.tail; cur = cur.next {
		n++
	}
	return n
}
