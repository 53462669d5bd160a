// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package quadtree implements the point quad tree (C6): a dynamic 2-D
// point index where each node holds exactly one point and splits the
// plane around it into four quadrants (NE, NW, SW, SE), recursively
// containing the points that fall into each. See spec.md §4.6.
//
// Deletion follows Samet's replacement idea (pull a nearby point up from
// one of the deleted node's subtrees into the deleted node's place, then
// reinsert the remaining points of its subtrees beneath it) but substitutes a simpler replacement rule than spec.md's exact
// diagonal-quadrant/city-block tie-break: see findClosest in delete.go and
// the accompanying note in DESIGN.md.
package quadtree

import (
	"fmt"
	"math"

	"github.com/ClusterCockpit/cc-mdindex/pkg/mdindexerr"
)

type quadrant int

const (
	quadNE quadrant = iota
	quadNW
	quadSW
	quadSE
)

// node holds one point and up to four child subtrees.
type node[V any] struct {
	x, y     float64
	value    V
	children [4]*node[V]
}

func quadrantOf(px, py, x, y float64) quadrant {
	switch {
	case x >= px && y >= py:
		return quadNE
	case x < px && y >= py:
		return quadNW
	case x < px && y < py:
		return quadSW
	default:
		return quadSE
	}
}

func dist2(x1, y1, x2, y2 float64) float64 {
	dx, dy := x1-x2, y1-y2
	return dx*dx + dy*dy
}

// Tree is the point quad tree described in spec.md §3/§4.6.
type Tree[V any] struct {
	root *node[V]
	size int
}

// New returns an empty tree.
func New[V any]() *Tree[V] { return &Tree[V]{} }

// Size reports the number of stored points.
func (t *Tree[V]) Size() int { return t.size }

// Empty reports whether the tree holds no points.
func (t *Tree[V]) Empty() bool { return t.size == 0 }

// Clear removes every point.
func (t *Tree[V]) Clear() { t.root = nil; t.size = 0 }

// Swap exchanges the contents of t and other in O(1).
func (t *Tree[V]) Swap(other *Tree[V]) { *t, *other = *other, *t }

// Insert descends until it finds a vacant quadrant or an identical key; an
// identical-key insert replaces the stored value rather than adding a
// point.
func (t *Tree[V]) Insert(x, y float64, v V) {
	if t.root == nil {
		t.root = &node[V]{x: x, y: y, value: v}
		t.size++
		return
	}
	n := t.root
	for {
		if n.x == x && n.y == y {
			n.value = v
			return
		}
		q := quadrantOf(n.x, n.y, x, y)
		if n.children[q] == nil {
			n.children[q] = &node[V]{x: x, y: y, value: v}
			t.size++
			return
		}
		n = n.children[q]
	}
}

// Find returns the value stored at (x, y).
func (t *Tree[V]) Find(x, y float64) (V, error) {
	var zero V
	n := t.root
	for n != nil {
		if n.x == x && n.y == y {
			return n.value, nil
		}
		n = n.children[quadrantOf(n.x, n.y, x, y)]
	}
	return zero, fmt.Errorf("quadtree.Find: (%v,%v): %w", x, y, mdindexerr.ErrNotFound)
}

// Result is one hit returned by SearchRegion.
type Result[V any] struct {
	X, Y  float64
	Value V
}

// SearchRegion returns every stored point within [x1,x2] x [y1,y2]
// (inclusive), pruning subtrees that the query rectangle's position
// relative to each node rules out.
func (t *Tree[V]) SearchRegion(x1, y1, x2, y2 float64) []Result[V] {
	var out []Result[V]
	t.WalkRegion(x1, y1, x2, y2, func(x, y float64, v V) bool {
		out = append(out, Result[V]{X: x, Y: y, Value: v})
		return true
	})
	return out
}

// WalkRegion is the lazy, callback-driven counterpart to SearchRegion; fn
// returning false stops the walk early.
func (t *Tree[V]) WalkRegion(x1, y1, x2, y2 float64, fn func(x, y float64, v V) bool) {
	walkRegion(t.root, x1, y1, x2, y2, fn)
}

func walkRegion[V any](n *node[V], x1, y1, x2, y2 float64, fn func(x, y float64, v V) bool) bool {
	if n == nil {
		return true
	}
	if n.x >= x1 && n.x <= x2 && n.y >= y1 && n.y <= y2 {
		if !fn(n.x, n.y, n.value) {
			return false
		}
	}
	east := x2 >= n.x
	west := x1 < n.x
	north := y2 >= n.y
	south := y1 < n.y
	if east && north {
		if !walkRegion(n.children[quadNE], x1, y1, x2, y2, fn) {
			return false
		}
	}
	if west && north {
		if !walkRegion(n.children[quadNW], x1, y1, x2, y2, fn) {
			return false
		}
	}
	if west && south {
		if !walkRegion(n.children[quadSW], x1, y1, x2, y2, fn) {
			return false
		}
	}
	if east && south {
		if !walkRegion(n.children[quadSE], x1, y1, x2, y2, fn) {
			return false
		}
	}
	return true
}

// Clone deep-copies the tree.
func (t *Tree[V]) Clone() *Tree[V] {
	return &Tree[V]{root: cloneNode(t.root), size: t.size}
}

func cloneNode[V any](n *node[V]) *node[V] {
	if n == nil {
		return nil
	}
	c := &node[V]{x: n.x, y: n.y, value: n.value}
	for i, ch := range n.children {
		c.children[i] = cloneNode(ch)
	}
	return c
}

// Equal compares the stored (x, y, value) triple sets, ignoring tree
// shape.
func (t *Tree[V]) Equal(other *Tree[V], eq func(a, b V) bool) bool {
	if t.size != other.size {
		return false
	}
	a := t.SearchRegion(math.Inf(-1), math.Inf(-1), math.Inf(1), math.Inf(1))
	b := other.SearchRegion(math.Inf(-1), math.Inf(-1), math.Inf(1), math.Inf(1))
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, x := range a {
		found := false
		for j, y := range b {
			if used[j] || x.X != y.X || x.Y != y.Y || !eq(x.Value, y.Value) {
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
