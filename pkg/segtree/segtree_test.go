// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package segtree

import (
	"errors"
	"sort"
	"testing"

	"github.com/ClusterCockpit/cc-mdindex/pkg/mdindexerr"
)

func TestInsertRejectsInvertedRange(t *testing.T) {
	tr := New[int, string]()
	if err := tr.Insert(10, 5, "x"); !errors.Is(err, mdindexerr.ErrInvalidArg) {
		t.Fatalf("Insert(10,5,..) = %v, want ErrInvalidArg", err)
	}
}

func TestSearchBeforeBuildIsTreeInvalid(t *testing.T) {
	tr := New[int, string]()
	_ = tr.Insert(0, 10, "A")
	if _, err := tr.Search(5); !errors.Is(err, mdindexerr.ErrTreeInvalid) {
		t.Fatalf("Search before build = %v, want ErrTreeInvalid", err)
	}
}

func TestStabbingQueryMatchesSpecScenario(t *testing.T) {
	tr := New[int, string]()
	_ = tr.Insert(0, 10, "A")
	_ = tr.Insert(0, 5, "B")
	_ = tr.Insert(5, 12, "C")
	_ = tr.Insert(10, 24, "D")
	_ = tr.Insert(4, 24, "E")
	_ = tr.Insert(0, 26, "F")
	_ = tr.Insert(12, 26, "G")

	tr.BuildTree()
	if !tr.IsTreeValid() {
		t.Fatalf("IsTreeValid() = false after BuildTree")
	}

	got, err := tr.Search(5)
	if err != nil {
		t.Fatalf("Search(5): %v", err)
	}
	sort.Strings(got)
	want := []string{"A", "C", "E", "F"}
	if len(got) != len(want) {
		t.Fatalf("Search(5) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Search(5) = %v, want %v", got, want)
		}
	}
}

func TestSearchOutsideAnyIntervalIsEmpty(t *testing.T) {
	tr := New[int, string]()
	_ = tr.Insert(10, 20, "A")
	tr.BuildTree()
	got, err := tr.Search(100)
	if err != nil {
		t.Fatalf("Search(100): %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Search(100) = %v, want empty", got)
	}
}

func TestBoundaryKeysAreSortedAndUnique(t *testing.T) {
	tr := New[int, string]()
	_ = tr.Insert(5, 10, "A")
	_ = tr.Insert(0, 10, "B")
	_ = tr.Insert(0, 5, "C")
	tr.BuildTree()
	got := tr.BoundaryKeys()
	want := []int{0, 5, 10}
	if len(got) != len(want) {
		t.Fatalf("BoundaryKeys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("BoundaryKeys() = %v, want %v", got, want)
		}
	}
}

func TestEraseIfInvalidatesTreeAndDropsMatches(t *testing.T) {
	tr := New[int, string]()
	_ = tr.Insert(0, 10, "A")
	_ = tr.Insert(10, 20, "B")
	tr.BuildTree()

	tr.EraseIf(func(low, high int, v string) bool { return v == "A" })
	if tr.IsTreeValid() {
		t.Fatalf("IsTreeValid() = true after EraseIf, want false")
	}
	if tr.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", tr.Size())
	}

	tr.BuildTree()
	got, _ := tr.Search(5)
	if len(got) != 0 {
		t.Fatalf("Search(5) after erasing A = %v, want empty", got)
	}
}

func TestEqualIgnoresTreeState(t *testing.T) {
	a := New[int, string]()
	_ = a.Insert(0, 10, "A")
	_ = a.Insert(10, 20, "B")
	b := New[int, string]()
	_ = b.Insert(10, 20, "B")
	_ = b.Insert(0, 10, "A")
	a.BuildTree() // a has a built tree, b doesn't; Equal disregards this

	eq := func(x, y string) bool { return x == y }
	if !a.Equal(b, eq) {
		t.Fatalf("Equal() = false, want true for same interval set in different order")
	}
}

func TestCloneIsIndependentOfFurtherInserts(t *testing.T) {
	a := New[int, string]()
	_ = a.Insert(0, 10, "A")
	a.BuildTree()

	c := a.Clone()
	_ = a.Insert(10, 20, "B")

	if c.Size() != 1 {
		t.Fatalf("Clone().Size() = %d, want 1 (unaffected by later insert on source)", c.Size())
	}
	if !c.IsTreeValid() {
		t.Fatalf("Clone().IsTreeValid() = false, want true (cloned from a built tree)")
	}
}
