// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"fmt"

	"github.com/ClusterCockpit/cc-mdindex/pkg/mdindexerr"
)

// Erase removes the first value whose extent and identity match (extent,
// value) under Go's == comparison, condensing the tree per spec.md's
// deletion algorithm: underfull directories are detached and their
// children collected as orphans, reinserted once MBRs have been repaired
// up to the root; a single-child root collapses to that child.
func (t *Tree) Erase(extent MBR, value any) error {
	leaf, idx := t.findLeafEntry(t.root, extent, value)
	if leaf == nil {
		return fmt.Errorf("rtree.Erase: value not found: %w", mdindexerr.ErrNotFound)
	}
	leaf.entries = append(leaf.entries[:idx], leaf.entries[idx+1:]...)
	t.size--
	t.condenseTree(leaf)
	t.collapseRoot()
	return nil
}

func (t *Tree) findLeafEntry(n *node, extent MBR, value any) (*node, int) {
	if n.isLeaf() {
		for i, e := range n.entries {
			if e.mbr.Equal(extent) && e.value == value {
				return n, i
			}
		}
		return nil, -1
	}
	for _, e := range n.entries {
		if !e.mbr.Intersects(extent) {
			continue
		}
		if leaf, idx := t.findLeafEntry(e.child, extent, value); leaf != nil {
			return leaf, idx
		}
	}
	return nil, -1
}

// condenseTree walks up from n, detaching any directory that has dropped
// below MinEntries and collecting its remaining entries as orphans, then
// reinserts every orphan at the depth it came from once the path's MBRs
// have been refreshed.
func (t *Tree) condenseTree(n *node) {
	type orphan struct {
		height int
		e      entry
	}
	var orphans []orphan

	cur := n
	for cur.parent != nil {
		parent := cur.parent
		idx := cur.indexInParent()
		if len(cur.entries) < t.params.MinEntries {
			parent.entries = append(parent.entries[:idx], parent.entries[idx+1:]...)
			for _, e := range cur.entries {
				orphans = append(orphans, orphan{height: cur.height, e: e})
			}
		} else {
			parent.entries[idx].mbr = mbrOfEntries(cur.entries)
		}
		cur = parent
	}

	t.reInsertedAtHeight = map[int]bool{}
	for _, o := range orphans {
		if o.e.child != nil {
			o.e.child.parent = nil
		}
		t.insert(o.height, o.e)
	}
}

// collapseRoot replaces a single-child, non-leaf root with that child, per
// spec.md's root-collapse rule.
func (t *Tree) collapseRoot() {
	for !t.root.isLeaf() && len(t.root.entries) == 1 {
		only := t.root.entries[0].child
		only.parent = nil
		t.root = only
	}
}
