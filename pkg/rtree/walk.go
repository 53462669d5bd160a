// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtree

// Kind classifies a node visited by Walk.
type Kind int

const (
	// KindValue is a stored value at a leaf directory.
	KindValue Kind = iota
	// KindLeafDirectory is a directory whose children are values.
	KindLeafDirectory
	// KindNonLeafDirectory is a directory whose children are directories.
	KindNonLeafDirectory
)

// NodeProperties describes one node visited during a DFS walk: its depth
// from the root, its kind, its extent, and (for KindValue) the stored
// value. This is the record spec.md's walk(visitor) and
// formatted_node_properties export format are built on.
type NodeProperties struct {
	Depth  int
	Kind   Kind
	Extent MBR
	Value  any
}

// Walk performs a depth-first traversal of the tree, calling fn once per
// node (directories and values alike). fn returning false skips the
// children of a directory node (values have no children, so the return is
// ignored for them); it does not stop the walk elsewhere.
func (t *Tree) Walk(fn func(depth int, e MBR, child *node, value any) bool) {
	if len(t.root.entries) == 0 {
		return
	}
	walkNode(t.root, 0, fn)
}

func walkNode(n *node, depth int, fn func(depth int, e MBR, child *node, value any) bool) {
	for _, e := range n.entries {
		if n.isLeaf() {
			fn(depth, e.mbr, nil, e.value)
			continue
		}
		if fn(depth, e.mbr, e.child, nil) {
			walkNode(e.child, depth+1, fn)
		}
	}
}

// WalkProperties is the NodeProperties-flavoured counterpart to Walk used
// by export_tree: it additionally visits each directory node itself (not
// just its entries), matching spec.md's "visiting each node" wording.
func (t *Tree) WalkProperties(fn func(NodeProperties) bool) {
	rootKind := KindNonLeafDirectory
	if t.root.isLeaf() {
		rootKind = KindLeafDirectory
	}
	extent, ok := t.Extent()
	if !ok {
		return
	}
	if !fn(NodeProperties{Depth: 0, Kind: rootKind, Extent: extent}) {
		return
	}
	walkProperties(t.root, 0, fn)
}

func walkProperties(n *node, depth int, fn func(NodeProperties) bool) {
	for _, e := range n.entries {
		if n.isLeaf() {
			fn(NodeProperties{Depth: depth + 1, Kind: KindValue, Extent: e.mbr, Value: e.value})
			continue
		}
		childKind := KindNonLeafDirectory
		if e.child.isLeaf() {
			childKind = KindLeafDirectory
		}
		if fn(NodeProperties{Depth: depth + 1, Kind: childKind, Extent: e.mbr}) {
			walkProperties(e.child, depth+1, fn)
		}
	}
}
