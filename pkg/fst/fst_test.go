// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fst

import (
	"errors"
	"testing"

	"github.com/ClusterCockpit/cc-mdindex/pkg/mdindexerr"
)

func collect(t *Tree[int, int]) [][3]int {
	var out [][3]int
	t.Walk(func(start, end int, v int) bool {
		out = append(out, [3]int{start, end, v})
		return true
	})
	return out
}

func TestNewSpansWholeRangeWithInit(t *testing.T) {
	tr := New(0, 100, -1)
	v, start, end, err := tr.Search(50)
	if err != nil || v != -1 || start != 0 || end != 100 {
		t.Fatalf("Search(50) = %v,%v,%v,%v; want -1,0,100,nil", v, start, end, err)
	}
}

func TestInsertSegmentPaintsMiddleRange(t *testing.T) {
	tr := New(0, 100, -1)
	tr.InsertSegment(20, 40, 10)

	want := [][3]int{{0, 20, -1}, {20, 40, 10}, {40, 100, -1}}
	got := collect(tr)
	if len(got) != len(want) {
		t.Fatalf("segments = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("segment %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestInsertSegmentMergesAdjacentSameValue(t *testing.T) {
	tr := New(0, 100, -1)
	tr.InsertSegment(20, 40, 10)
	tr.InsertSegment(40, 60, 10) // contiguous, same value: should merge into one segment
	got := collect(tr)
	want := [][3]int{{0, 20, -1}, {20, 60, 10}, {60, 100, -1}}
	if len(got) != len(want) {
		t.Fatalf("segments = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("segment %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestInsertSegmentOverwritesOverlap(t *testing.T) {
	tr := New(0, 100, -1)
	tr.InsertSegment(20, 60, 10)
	tr.InsertSegment(30, 40, 99)
	want := [][3]int{{0, 20, -1}, {20, 30, 10}, {30, 40, 99}, {40, 60, 10}, {60, 100, -1}}
	got := collect(tr)
	if len(got) != len(want) {
		t.Fatalf("segments = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("segment %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSearchOutOfRange(t *testing.T) {
	tr := New(0, 100, -1)
	if _, _, _, err := tr.Search(100); !errors.Is(err, mdindexerr.ErrNotFound) {
		t.Fatalf("Search(100) err = %v, want ErrNotFound", err)
	}
	if _, _, _, err := tr.Search(-1); !errors.Is(err, mdindexerr.ErrNotFound) {
		t.Fatalf("Search(-1) err = %v, want ErrNotFound", err)
	}
}

func TestBuildTreeAndSearchTreeAgreeWithSearch(t *testing.T) {
	tr := New(0, 100, -1)
	tr.InsertSegment(20, 40, 10)
	tr.InsertSegment(60, 90, 20)

	if _, _, _, err := tr.SearchTree(50); !errors.Is(err, mdindexerr.ErrTreeInvalid) {
		t.Fatalf("SearchTree before BuildTree = %v, want ErrTreeInvalid", err)
	}

	tr.BuildTree()
	if !tr.IsTreeValid() {
		t.Fatalf("IsTreeValid() = false after BuildTree")
	}

	for _, k := range []int{0, 10, 20, 39, 40, 59, 60, 89, 99} {
		wantV, wantS, wantE, wantErr := tr.Search(k)
		gotV, gotS, gotE, gotErr := tr.SearchTree(k)
		if wantV != gotV || wantS != gotS || wantE != gotE || (wantErr == nil) != (gotErr == nil) {
			t.Fatalf("key %d: Search=(%v,%v,%v,%v) SearchTree=(%v,%v,%v,%v)", k, wantV, wantS, wantE, wantErr, gotV, gotS, gotE, gotErr)
		}
	}

	tr.InsertSegment(0, 10, 99)
	if tr.IsTreeValid() {
		t.Fatalf("IsTreeValid() = true after a mutation, want false")
	}
}

func TestShiftSegmentRightPushesAndDrops(t *testing.T) {
	tr := New(0, 100, -1)
	tr.InsertSegment(10, 20, 5)
	tr.InsertSegment(90, 100, 7)

	tr.ShiftSegmentRight(10, 15, false)
	// [10,20)=5 becomes [25,35)=5; [90,100)=7 pushed to [105,115) and dropped entirely.
	got := collect(tr)
	want := [][3]int{{0, 25, -1}, {25, 35, 5}, {35, 100, -1}}
	if len(got) != len(want) {
		t.Fatalf("segments = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("segment %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestShiftSegmentRightAtMinPreservesBaseValue(t *testing.T) {
	tr := New(0, 100, -1)
	tr.InsertSegment(0, 10, 3)

	tr.ShiftSegmentRight(0, 5, false)
	// Base value 3 held [0,10); after shifting right by 5 at p=0, a boundary
	// at min+5 preserves 3 for what's now [5,15), and [0,5) reverts to init.
	got := collect(tr)
	want := [][3]int{{0, 5, -1}, {5, 15, 3}, {15, 100, -1}}
	if len(got) != len(want) {
		t.Fatalf("segments = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("segment %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestShiftSegmentLeftExcisesHoleAndAppendsInit(t *testing.T) {
	tr := New(0, 100, -1)
	tr.InsertSegment(20, 80, 5)

	tr.ShiftSegmentLeft(30, 50) // excise a 20-wide hole entirely inside the painted run
	got := collect(tr)
	want := [][3]int{{0, 20, -1}, {20, 60, 5}, {60, 100, -1}}
	if len(got) != len(want) {
		t.Fatalf("segments = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("segment %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestShiftSegmentLeftSnapsBoundaryInsideHole(t *testing.T) {
	tr := New(0, 100, -1)
	tr.InsertSegment(20, 40, 5)
	tr.InsertSegment(40, 60, 9)

	// Hole [30,50) straddles the 5/9 boundary at 40: the leaf at 40 snaps to
	// key 30, and everything from 50 onward shifts left by 20.
	tr.ShiftSegmentLeft(30, 50)
	got := collect(tr)
	want := [][3]int{{0, 20, -1}, {20, 30, 5}, {30, 40, 9}, {40, 100, -1}}
	if len(got) != len(want) {
		t.Fatalf("segments = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("segment %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestWalkReverseIsReverseOfWalk(t *testing.T) {
	tr := New(0, 100, -1)
	tr.InsertSegment(20, 40, 10)
	tr.InsertSegment(60, 90, 20)

	forward := collect(tr)
	var reverse [][3]int
	tr.WalkReverse(func(start, end int, v int) bool {
		reverse = append(reverse, [3]int{start, end, v})
		return true
	})
	if len(forward) != len(reverse) {
		t.Fatalf("forward/reverse length mismatch: %d vs %d", len(forward), len(reverse))
	}
	for i := range forward {
		if forward[i] != reverse[len(reverse)-1-i] {
			t.Fatalf("reverse[%d] = %v, want %v", i, reverse[len(reverse)-1-i], forward[i])
		}
	}
}

func TestLeafCount(t *testing.T) {
	tr := New(0, 100, -1)
	if got := tr.LeafCount(); got != 1 {
		t.Fatalf("LeafCount() = %d, want 1", got)
	}
	tr.InsertSegment(20, 40, 10)
	if got := tr.LeafCount(); got != 3 {
		t.Fatalf("LeafCount() = %d, want 3", got)
	}
}

func TestSearchFromResumesAtHint(t *testing.T) {
	tr := New(0, 100, -1)
	tr.InsertSegment(20, 40, 10)
	tr.InsertSegment(60, 80, 20)

	v, start, end, hint, err := tr.SearchFrom(Hint[int, int]{}, 25)
	if err != nil || v != 10 || start != 20 || end != 40 {
		t.Fatalf("SearchFrom(zero, 25) = %v,%v,%v,%v; want 10,20,40,nil", v, start, end, err)
	}

	v2, start2, end2, _, err := tr.SearchFrom(hint, 70)
	if err != nil || v2 != 20 || start2 != 60 || end2 != 80 {
		t.Fatalf("SearchFrom(hint, 70) = %v,%v,%v,%v; want 20,60,80,nil", v2, start2, end2, err)
	}
}
