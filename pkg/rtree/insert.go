// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"math"
	"sort"
)

// insert places newEntry into the subtree at the given height (0 = leaf
// level), splitting or forcing reinsertion on overflow, then propagates
// the split upward and refreshes MBRs along the insertion path.
func (t *Tree) insert(height int, newEntry entry) {
	n := t.chooseSubtree(newEntry.mbr, height)
	if newEntry.child != nil {
		newEntry.child.parent = n
	}
	n.entries = append(n.entries, newEntry)

	if len(n.entries) > t.params.MaxEntries {
		split, nn := t.overflowTreatment(n)
		if split {
			if nn.height == t.root.height {
				newRoot := &node{height: t.root.height + 1}
				newRoot.entries = append(newRoot.entries,
					entry{mbr: mbrOfEntries(n.entries), child: n},
					entry{mbr: mbrOfEntries(nn.entries), child: nn},
				)
				n.parent, nn.parent = newRoot, newRoot
				t.root = newRoot
				return
			}
			t.insert(nn.height+1, entry{mbr: mbrOfEntries(nn.entries), child: nn})
		}
	}

	for cur := n; cur.parent != nil; cur = cur.parent {
		idx := cur.indexInParent()
		cur.parent.entries[idx].mbr = mbrOfEntries(cur.entries)
	}
}

// chooseSubtree descends from the root to the node at the given height.
// At directory levels it picks the child that needs the least area
// enlargement to accommodate r. At the leaf-directory level it picks the
// child that already covers the largest part of r (score: area of r minus
// its overlap with the child); the overlap between siblings is not
// computed. Ties go to the child with the smaller area.
func (t *Tree) chooseSubtree(r MBR, height int) *node {
	n := t.root
	for n.height > height {
		pointsToLeaves := n.height == 1
		best := 0
		var bestScore float64
		for i, e := range n.entries {
			var score float64
			if pointsToLeaves {
				score = e.mbr.Union(r).Overlap(r) - e.mbr.Overlap(r)
			} else {
				score = e.mbr.Union(r).Area() - e.mbr.Area()
			}
			if i == 0 || score < bestScore ||
				(score == bestScore && n.entries[i].mbr.Area() < n.entries[best].mbr.Area()) {
				best, bestScore = i, score
			}
		}
		n = n.entries[best].child
	}
	return n
}

// overflowTreatment handles an over-full node: forced reinsertion the
// first time a given height overflows during this top-level insert call,
// a split otherwise (or always, if forced reinsertion is disabled).
func (t *Tree) overflowTreatment(n *node) (didSplit bool, nn *node) {
	if t.params.ForcedReinsertion && n.parent != nil && !t.reInsertedAtHeight[n.height] {
		t.reInsertedAtHeight[n.height] = true
		t.countForcedReinsertion()
		t.forcedReinsert(n)
		return false, nil
	}
	t.countSplit()
	return true, t.split(n)
}

// forcedReinsert sorts n's entries by descending distance from the
// directory's MBR centre, detaches the farthest ReinsertSampleSize of
// them, and reinserts each (nearest-first) via the normal insert path.
func (t *Tree) forcedReinsert(n *node) {
	idx := n.indexInParent()
	center := n.parent.entries[idx].mbr.Center()

	entries := append([]entry{}, n.entries...)
	sort.Slice(entries, func(i, j int) bool {
		di := centerDist2(entries[i].mbr.Center(), center)
		dj := centerDist2(entries[j].mbr.Center(), center)
		return di > dj
	})

	p := t.params.ReinsertSampleSize
	if p > len(entries) {
		p = len(entries)
	}
	toReinsert := entries[:p]
	n.entries = append([]entry{}, entries[p:]...)
	n.parent.entries[idx].mbr = mbrOfEntries(n.entries)

	for i := len(toReinsert) - 1; i >= 0; i-- {
		e := toReinsert[i]
		if e.child != nil {
			e.child.parent = nil
		}
		t.insert(n.height, e)
	}
}

// split partitions n's MaxEntries+1 entries into two groups using the
// R*-tree axis/overlap/area tie-break rule, returning the new sibling.
func (t *Tree) split(n *node) *node {
	axis := t.chooseSplitAxis(n)
	sortByAxis(n.entries, axis)

	bestK, _ := t.chooseSplitIndex(n.entries)
	group1 := append([]entry{}, n.entries[:t.params.MinEntries-1+bestK]...)
	group2 := append([]entry{}, n.entries[t.params.MinEntries-1+bestK:]...)

	nn := &node{parent: n.parent, height: n.height, entries: group2}
	for i := range nn.entries {
		if nn.entries[i].child != nil {
			nn.entries[i].child.parent = nn
		}
	}
	n.entries = group1
	return nn
}

// chooseSplitAxis picks the axis minimising the sum of margins across
// every valid distribution (the R*-tree "S" value).
func (t *Tree) chooseSplitAxis(n *node) int {
	dims := n.entries[0].mbr.dims()
	bestAxis := 0
	bestS := math.MaxFloat64
	entries := append([]entry{}, n.entries...)
	for axis := 0; axis < dims; axis++ {
		sortByAxis(entries, axis)
		s := 0.0
		for k := 1; k <= t.params.MaxEntries-2*t.params.MinEntries+2; k++ {
			i := t.params.MinEntries - 1 + k
			g1 := mbrOfEntries(entries[:i])
			g2 := mbrOfEntries(entries[i:])
			s += g1.Margin() + g2.Margin()
		}
		if s < bestS {
			bestS, bestAxis = s, axis
		}
	}
	return bestAxis
}

// chooseSplitIndex picks, along the already axis-sorted entries, the
// split point minimising overlap (tie-break: area).
func (t *Tree) chooseSplitIndex(entries []entry) (int, float64) {
	bestK := 1
	bestOverlap := math.MaxFloat64
	bestArea := math.MaxFloat64
	for k := 1; k <= t.params.MaxEntries-2*t.params.MinEntries+2; k++ {
		i := t.params.MinEntries - 1 + k
		g1 := mbrOfEntries(entries[:i])
		g2 := mbrOfEntries(entries[i:])
		overlap := g1.Overlap(g2)
		area := g1.Area() + g2.Area()
		if overlap < bestOverlap || (overlap == bestOverlap && area < bestArea) {
			bestK, bestOverlap, bestArea = k, overlap, area
		}
	}
	return bestK, bestOverlap
}

func sortByAxis(entries []entry, axis int) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].mbr.Low[axis] != entries[j].mbr.Low[axis] {
			return entries[i].mbr.Low[axis] < entries[j].mbr.Low[axis]
		}
		return entries[i].mbr.High[axis] < entries[j].mbr.High[axis]
	})
}
