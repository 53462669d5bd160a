// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtree

// Clone deep-copies the tree: every node and entry is duplicated, so
// mutating the clone never touches t.
func (t *Tree) Clone() *Tree {
	return &Tree{
		params: t.params,
		root:   cloneNode(t.root, nil),
		size:   t.size,
	}
}

func cloneNode(n *node, parent *node) *node {
	c := &node{parent: parent, height: n.height, entries: make([]entry, len(n.entries))}
	for i, e := range n.entries {
		ce := entry{mbr: e.mbr, value: e.value}
		if e.child != nil {
			ce.child = cloneNode(e.child, c)
		}
		c.entries[i] = ce
	}
	return c
}

// Move transfers t's tree into a fresh *Tree and resets t to an empty
// tree with the same parameters, per spec.md's move semantics (the source
// is left empty with its extent reset, not destroyed).
func (t *Tree) Move() *Tree {
	moved := &Tree{params: t.params, root: t.root, size: t.size}
	t.root = &node{entries: []entry{}, height: 0}
	t.size = 0
	return moved
}
