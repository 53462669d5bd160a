// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fst implements the flat segment tree (C4): a 1-D key axis
// partitioned into contiguous half-open segments [low, high), each
// carrying a value of type V. Adjacent segments with equal values are
// coalesced. See spec.md §4.4.
//
// Leaves form a doubly-linked chain ordered by key, from a permanent head
// anchored at key == min to a permanent tail anchored at key == max (the
// tail's value is never consulted). Go's garbage collector reclaims
// pointer cycles on its own, so unlike the arena-plus-indices scheme
// spec.md's design notes describe for systems languages without a
// collector, this implementation links leaves directly by pointer in both
// directions — simpler and just as safe here.
package fst

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/ClusterCockpit/cc-mdindex/pkg/mdindexerr"
)

// Numeric constrains FST keys to types supporting the arithmetic the shift
// operations need; spec.md's Ordered key space is in practice always a
// row/column/offset axis.
type Numeric interface {
	constraints.Integer | constraints.Float
}

type leaf[K Numeric, V comparable] struct {
	key        K
	value      V
	prev, next *leaf[K, V]
}

// nonleaf is a node of the separately-built balanced summary tree. Keys
// below mid descend left, keys >= mid descend right.
type nonleaf[K Numeric, V comparable] struct {
	low, high, mid K
	left, right    *nonleaf[K, V]
	leftLeaf       *leaf[K, V] // set when left is a leaf (left == nil)
	rightLeaf      *leaf[K, V] // set when right is a leaf (right == nil)
}

// Tree is the flat segment tree described in spec.md §3/§4.4.
type Tree[K Numeric, V comparable] struct {
	min, max  K
	init      V
	head      *leaf[K, V] // key == min, always present
	tail      *leaf[K, V] // key == max, value never consulted
	root      *nonleaf[K, V]
	validTree bool
}

// New creates a tree whose entire span [min, max) has value init.
func New[K Numeric, V comparable](min, max K, init V) *Tree[K, V] {
	head := &leaf[K, V]{key: min, value: init}
	tail := &leaf[K, V]{key: max}
	head.next = tail
	tail.prev = head
	return &Tree[K, V]{min: min, max: max, init: init, head: head, tail: tail}
}

// Min and Max report the tree's span.
func (t *Tree[K, V]) Min() K { return t.min }
func (t *Tree[K, V]) Max() K { return t.max }

func (t *Tree[K, V]) unlink(n *leaf[K, V]) {
	n.prev.next = n.next
	n.next.prev = n.prev
}

func (t *Tree[K, V]) insertBefore(at, n *leaf[K, V]) {
	n.prev = at.prev
	n.next = at
	at.prev.next = n
	at.prev = n
}

// findFirstGE returns the first leaf (searched from head, possibly tail)
// whose key is >= k.
func (t *Tree[K, V]) findFirstGE(k K) *leaf[K, V] {
	cur := t.head
	for cur != t.tail && cur.key < k {
		cur = cur.next
	}
	return cur
}

// Search returns the value covering k and the half-open bounds of that
// segment. Linear scan, always valid regardless of build_tree state.
func (t *Tree[K, V]) Search(k K) (value V, start, end K, err error) {
	value, start, end, _, err = t.SearchFrom(Hint[K, V]{}, k)
	return value, start, end, err
}

// Hint is an opaque resume point returned by SearchFrom, letting a caller
// making repeated nearby queries skip re-scanning from head each time.
type Hint[K Numeric, V comparable] struct {
	leaf *leaf[K, V]
}

// SearchFrom behaves like Search but resumes the linear scan from hint
// instead of head when hint is non-zero, and returns a new hint positioned
// at the segment found. A zero Hint (the type's default value) scans from
// head, matching Search. The caller is responsible for only reusing a hint
// against the tree that produced it.
func (t *Tree[K, V]) SearchFrom(hint Hint[K, V], k K) (value V, start, end K, next Hint[K, V], err error) {
	if k < t.min || k >= t.max {
		return value, start, end, next, fmt.Errorf("fst.Search: key out of [%v,%v): %w", t.min, t.max, mdindexerr.ErrNotFound)
	}
	cur := t.head
	if hint.leaf != nil && hint.leaf.key <= k {
		cur = hint.leaf
	}
	for cur.next != t.tail && cur.next.key <= k {
		cur = cur.next
	}
	return cur.value, cur.key, cur.next.key, Hint[K, V]{leaf: cur}, nil
}

// InsertSegment paints [a, b) with v, clamped to [min, max). A no-op if the
// range is inverted, empty, or does not overlap the tree's span.
func (t *Tree[K, V]) InsertSegment(a, b K, v V) {
	if a >= b || b <= t.min || a >= t.max {
		return
	}
	if a < t.min {
		a = t.min
	}
	if b > t.max {
		b = t.max
	}

	la := t.findFirstGE(a)
	lb := t.findFirstGE(b)
	oldValue := lb.prev.value

	var start *leaf[K, V]
	switch {
	case la.key == a:
		if la.prev != nil && la.prev.value == v {
			start = la.prev
			if la != lb {
				t.unlink(la)
			}
		} else {
			la.value = v
			start = la
		}
	default:
		if la.prev != nil && la.prev.value == v {
			start = la.prev
		} else {
			n := &leaf[K, V]{key: a, value: v}
			t.insertBefore(la, n)
			start = n
		}
	}

	// Detach every leaf strictly between start and lb.
	cur := start.next
	for cur != lb {
		nxt := cur.next
		t.unlink(cur)
		cur = nxt
	}

	switch {
	case lb.key == b:
		if lb != t.tail && lb.value == v {
			t.unlink(lb)
		} else {
			start.next = lb
			lb.prev = start
		}
	case oldValue == v:
		start.next = lb
		lb.prev = start
	default:
		n := &leaf[K, V]{key: b, value: oldValue}
		t.insertBefore(lb, n)
		start.next = n
		n.prev = start
	}

	t.validTree = false
}

// ShiftSegmentLeft excises [a, b) from the key axis, shifting everything
// at or after b left by b-a, and appends a length-(b-a) segment of value
// init at the right end to preserve the total span.
func (t *Tree[K, V]) ShiftSegmentLeft(a, b K) {
	if a < t.min || b > t.max || a >= b {
		return
	}
	width := b - a

	cur := t.head
	for cur.next != t.tail && cur.next.key <= a {
		cur = cur.next
	}
	first := cur.next // first leaf (possibly tail) with key > a

	snapped := false
	if first != t.tail && first.key <= b {
		first.key = a
		snapped = true
		n := first.next
		for n != t.tail && n.key <= b {
			first.value = n.value // the segment at a carries the value found at b
			nxt := n.next
			t.unlink(n)
			n = nxt
		}
		for m := n; m != t.tail; m = m.next {
			m.key -= width
		}
	} else {
		for m := first; m != t.tail; m = m.next {
			if m.key >= b {
				m.key -= width
			}
		}
	}

	if snapped && cur.key == a {
		if cur == t.head {
			cur.value = first.value
			t.unlink(first)
			first = cur
		} else {
			t.unlink(cur)
		}
	}

	if snapped && first.prev != nil && first.prev.value == first.value {
		t.unlink(first)
	}

	last := t.tail.prev
	if last != nil && last.key == t.max-width {
		// A leaf already starts where the appended segment begins.
		last.value = t.init
		if last.prev != nil && last.prev.value == t.init {
			t.unlink(last)
		}
	} else if last == nil || last.value != t.init {
		n := &leaf[K, V]{key: t.max - width, value: t.init}
		t.insertBefore(t.tail, n)
	}

	t.validTree = false
}

// ShiftSegmentRight shifts everything at or after p right by n, dropping
// whatever is pushed past max. If skipStart is true, the leaf exactly at p
// (if any) is left in place. At p == min, the pre-shift base value is
// preserved by inserting a boundary at min+n and resetting the head's
// value to init.
func (t *Tree[K, V]) ShiftSegmentRight(p, n K, skipStart bool) {
	if n <= 0 || p < t.min || p >= t.max {
		return
	}

	for cur := t.head.next; cur != t.tail; {
		nxt := cur.next
		if cur.key >= p && !(skipStart && cur.key == p) {
			cur.key += n
		}
		cur = nxt
	}

	cur := t.head.next
	for cur != t.tail && cur.key < t.max {
		cur = cur.next
	}
	if cur != t.tail {
		prev := cur.prev
		prev.next = t.tail
		t.tail.prev = prev
	}

	if p == t.min && t.head.value != t.init {
		prevLeft := t.head.value
		nl := &leaf[K, V]{key: t.min + n, value: prevLeft}
		nl.prev = t.head
		nl.next = t.head.next
		t.head.next.prev = nl
		t.head.next = nl
		t.head.value = t.init
	}

	t.validTree = false
}
