// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package segtree

import (
	"fmt"
	"sort"

	"golang.org/x/exp/constraints"

	"github.com/ClusterCockpit/cc-mdindex/pkg/mdindexerr"
)

func sortKeys[K constraints.Ordered](s []K) {
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
}

// BuildTree deduplicates and sorts all endpoints, builds the leaf chain
// and non-leaf layers by pairing adjacent nodes bottom-up (mirroring
// pkg/fst's summary-tree construction), then walks every original interval
// down the tree, appending its id to every node whose span is fully
// contained within it.
func (t *Tree[K, V]) BuildTree() {
	keys := make(map[K]struct{}, len(t.intervals)*2)
	for _, iv := range t.intervals {
		keys[iv.Low] = struct{}{}
		keys[iv.High] = struct{}{}
	}
	endpoints := make([]K, 0, len(keys))
	for k := range keys {
		endpoints = append(endpoints, k)
	}
	sortKeys(endpoints)
	t.endpoints = endpoints

	if len(endpoints) < 2 {
		t.root = nil
		t.validTree = true
		return
	}

	level := make([]*node[K], len(endpoints)-1)
	for i := range level {
		level[i] = &node[K]{low: endpoints[i], high: endpoints[i+1]}
	}
	for len(level) > 1 {
		next := make([]*node[K], 0, (len(level)+1)/2)
		for i := 0; i+1 < len(level); i += 2 {
			a, b := level[i], level[i+1]
			next = append(next, &node[K]{low: a.low, high: b.high, left: a, right: b})
		}
		if len(level)%2 == 1 {
			next = append(next, level[len(level)-1])
		}
		level = next
	}
	t.root = level[0]

	for id, iv := range t.intervals {
		markContained(t.root, iv.Low, iv.High, id)
	}
	t.validTree = true
}

func markContained[K constraints.Ordered](n *node[K], low, high K, id int) {
	if n == nil || n.high <= low || n.low >= high {
		return
	}
	if low <= n.low && n.high <= high {
		n.ids = append(n.ids, id)
		return
	}
	markContained(n.left, low, high, id)
	markContained(n.right, low, high, id)
}

// Search returns the values of every interval containing k, accumulated in
// root-to-leaf traversal order (not sorted by value). Requires a valid
// tree built by BuildTree.
func (t *Tree[K, V]) Search(k K) ([]V, error) {
	if !t.validTree {
		return nil, fmt.Errorf("segtree.Search: tree not built: %w", mdindexerr.ErrTreeInvalid)
	}
	if t.root == nil || k < t.root.low || k >= t.root.high {
		return nil, nil
	}
	var out []V
	n := t.root
	for n != nil {
		for _, id := range n.ids {
			out = append(out, t.intervals[id].Value)
		}
		if n.left == nil && n.right == nil {
			break
		}
		if n.left != nil && k < n.left.high {
			n = n.left
		} else {
			n = n.right
		}
	}
	return out, nil
}
