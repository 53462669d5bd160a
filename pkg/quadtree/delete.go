// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package quadtree

import (
	"fmt"

	"github.com/ClusterCockpit/cc-mdindex/pkg/mdindexerr"
)

// Remove deletes the point at (x, y). If the deleted node has children, a
// replacement is pulled up from one of its subtrees (see findClosest) and
// every other point of the deleted node's subtrees is reinserted beneath
// it, so the tree stays structurally valid with the same value multiset
// minus the removed point.
func (t *Tree[V]) Remove(x, y float64) error {
	if !removeFrom(&t.root, x, y) {
		return fmt.Errorf("quadtree.Remove: (%v,%v): %w", x, y, mdindexerr.ErrNotFound)
	}
	t.size--
	return nil
}

func removeFrom[V any](np **node[V], x, y float64) bool {
	n := *np
	if n == nil {
		return false
	}
	if n.x == x && n.y == y {
		*np = deleteNode(n)
		return true
	}
	return removeFrom(&n.children[quadrantOf(n.x, n.y, x, y)], x, y)
}

// deleteNode removes n from the tree, returning the node that should take
// its place (nil if n was a leaf). The replacement is pulled up from one of
// n's subtrees via extractClosest; every other point that was reachable
// under n is then reinserted beneath the replacement through ordinary
// quadrant placement, since moving the splitting point to the replacement's
// coordinates can put any of them in a different quadrant than the slot
// they used to occupy under n (spec.md §4.6's adjust_quad reinsertion).
// Blindly re-parenting n.children under repl, as a naive lift-and-reattach
// would, breaks the quadrant-placement invariant whenever the replacement's
// coordinates differ from n's on both axes.
func deleteNode[V any](n *node[V]) *node[V] {
	// Prefer the diagonally-opposite quadrant pairs spec.md's Criterion 1
	// favours (NE<->SW, NW<->SE); any non-empty subtree works structurally.
	order := [4]quadrant{quadSW, quadNE, quadSE, quadNW}
	for _, q := range order {
		if n.children[q] == nil {
			continue
		}
		repl := extractClosest(&n.children[q], n.x, n.y)
		for _, child := range n.children {
			reinsertAll(&repl, child)
		}
		return repl
	}
	return nil
}

// reinsertAll walks every point held in n's subtree and reinserts it
// beneath *root via quadrantOf, discarding n's old internal structure.
func reinsertAll[V any](root **node[V], n *node[V]) {
	if n == nil {
		return
	}
	for _, child := range n.children {
		reinsertAll(root, child)
	}
	insertNode(root, n.x, n.y, n.value)
}

// insertNode is Tree.Insert's logic detached from a *Tree receiver, so
// deleteNode can rebuild a replacement's subtree directly.
func insertNode[V any](root **node[V], x, y float64, v V) {
	if *root == nil {
		*root = &node[V]{x: x, y: y, value: v}
		return
	}
	n := *root
	for {
		if n.x == x && n.y == y {
			n.value = v
			return
		}
		q := quadrantOf(n.x, n.y, x, y)
		if n.children[q] == nil {
			n.children[q] = &node[V]{x: x, y: y, value: v}
			return
		}
		n = n.children[q]
	}
}

// extractClosest removes the point in the subtree *np nearest to (tx, ty)
// and returns a detached node carrying its (x, y, value). This is a
// documented simplification of spec.md's exact diagonal-quadrant,
// city-block-distance replacement rule: it scans the whole subtree by
// Euclidean distance rather than pruning by quadrant, trading the
// logarithmic replacement search for a simpler, obviously-correct one.
func extractClosest[V any](np **node[V], tx, ty float64) *node[V] {
	target := findClosest(*np, tx, ty)
	x, y, v := target.x, target.y, target.value
	removeFrom(np, x, y)
	return &node[V]{x: x, y: y, value: v}
}

func findClosest[V any](n *node[V], tx, ty float64) *node[V] {
	best := n
	bestD := dist2(n.x, n.y, tx, ty)
	for _, c := range n.children {
		if c == nil {
			continue
		}
		cand := findClosest(c, tx, ty)
		if d := dist2(cand.x, cand.y, tx, ty); d < bestD {
			best, bestD = cand, d
		}
	}
	return best
}
