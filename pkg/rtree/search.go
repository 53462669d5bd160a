// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtree

// Mode selects how a query MBR is matched against stored extents.
type Mode int

const (
	// Overlap matches every stored extent that intersects the query.
	Overlap Mode = iota
	// Match returns only extents exactly equal to the query.
	Match
)

// Hit is one result yielded by Search: the stored value together with the
// node metadata spec.md's search iteration asks for (depth, extent).
type Hit struct {
	Extent MBR
	Value  any
	Depth  int
}

// Search returns every stored value matching query under mode. The walk
// prunes subtrees whose MBR cannot satisfy the predicate, so cost is
// proportional to the part of the tree actually touched rather than to
// Size(). Results are a snapshot; mutating the tree after Search invalidates
// them (see spec.md's iterator-validity note).
func (t *Tree) Search(query MBR, mode Mode) []Hit {
	t.countSearch()
	var out []Hit
	t.Walk(func(depth int, e MBR, child *node, value any) bool {
		if child != nil {
			return e.Intersects(query)
		}
		matches := false
		switch mode {
		case Match:
			matches = e.Equal(query)
		default:
			matches = e.Intersects(query)
		}
		if matches {
			out = append(out, Hit{Extent: e, Value: value, Depth: depth})
		}
		return true
	})
	return out
}

// SearchPoint is a convenience wrapper for Search(Point(p), mode).
func (t *Tree) SearchPoint(p []float64, mode Mode) []Hit {
	return t.Search(Point(p), mode)
}
