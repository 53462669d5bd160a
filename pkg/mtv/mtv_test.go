// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mtv

import (
	"errors"
	"testing"

	"github.com/ClusterCockpit/cc-mdindex/pkg/mdindexerr"
)

func assertSegCount(t *testing.T, v *Vector, want int) {
	t.Helper()
	if got := len(v.segs); got != want {
		t.Fatalf("segment count = %d, want %d (segs=%+v)", got, want, v.segs)
	}
}

func TestNewAndGet(t *testing.T) {
	v := New(5)
	if v.Size() != 5 {
		t.Fatalf("Size = %d, want 5", v.Size())
	}
	empty, err := v.IsEmpty(2)
	if err != nil || !empty {
		t.Fatalf("IsEmpty(2) = %v, %v; want true, nil", empty, err)
	}
}

func TestSetSplitsAndMerges(t *testing.T) {
	v := New(5)
	if err := v.Set(2, 1.5); err != nil {
		t.Fatalf("Set: %v", err)
	}
	// empty[0:2] numeric[2:3] empty[3:5] -> 3 segments
	assertSegCount(t, v, 3)
	got, err := Get[float64](v, 2)
	if err != nil || got != 1.5 {
		t.Fatalf("Get(2) = %v, %v; want 1.5, nil", got, err)
	}

	// Writing the same type adjacent should merge back to fewer segments.
	if err := v.Set(3, 2.5); err != nil {
		t.Fatalf("Set: %v", err)
	}
	assertSegCount(t, v, 3) // empty[0:2] numeric[2:4] empty[4:5]
}

func TestSetRangeAcrossBoundary(t *testing.T) {
	v := New(5)
	_ = v.Set(0, int64(1))
	if err := v.SetRange(1, []any{int64(2), int64(3), int64(4)}); err != nil {
		t.Fatalf("SetRange: %v", err)
	}
	for i, want := range []int64{1, 2, 3, 4} {
		got, err := Get[int64](v, i)
		if err != nil || got != want {
			t.Fatalf("Get(%d) = %v, %v; want %d", i, got, err, want)
		}
	}
	assertSegCount(t, v, 2) // integer[0:4], empty[4:5]
}

func TestInsertAndErase(t *testing.T) {
	v := New(3)
	_ = v.SetRange(0, []any{int64(1), int64(2), int64(3)})
	if err := v.Insert(1, []any{int64(9), int64(8)}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if v.Size() != 5 {
		t.Fatalf("Size = %d, want 5", v.Size())
	}
	want := []int64{1, 9, 8, 2, 3}
	for i, w := range want {
		got, _ := Get[int64](v, i)
		if got != w {
			t.Fatalf("after insert, v[%d] = %d, want %d", i, got, w)
		}
	}

	if err := v.Erase(1, 2); err != nil {
		t.Fatalf("Erase: %v", err)
	}
	if v.Size() != 3 {
		t.Fatalf("Size = %d, want 3", v.Size())
	}
	want = []int64{1, 2, 3}
	for i, w := range want {
		got, _ := Get[int64](v, i)
		if got != w {
			t.Fatalf("after erase, v[%d] = %d, want %d", i, got, w)
		}
	}
}

func TestSetEmptyMergesAdjacentEmpty(t *testing.T) {
	v := New(5)
	_ = v.SetRange(0, []any{int64(1), int64(2), int64(3), int64(4), int64(5)})
	if err := v.SetEmpty(1, 3); err != nil {
		t.Fatalf("SetEmpty: %v", err)
	}
	assertSegCount(t, v, 3) // int[0:1] empty[1:4] int[4:5]
	e, _ := v.IsEmpty(2)
	if !e {
		t.Fatalf("position 2 should be empty")
	}
}

func TestTransferBetweenVectors(t *testing.T) {
	a := New(5)
	b := New(5)
	_ = a.Set(0, 1.0)
	_ = a.Set(1, 2.0)

	if err := a.Transfer(1, 2, b, 1); err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	empty, _ := a.IsEmpty(1)
	if !empty {
		t.Fatalf("a[1] should be empty after transfer")
	}
	got, err := Get[float64](b, 1)
	if err != nil || got != 2.0 {
		t.Fatalf("b[1] = %v, %v; want 2.0, nil", got, err)
	}
	if a.Size() != 5 || b.Size() != 5 {
		t.Fatalf("sizes changed: a=%d b=%d", a.Size(), b.Size())
	}
}

func TestTransferRejectsSelf(t *testing.T) {
	a := New(5)
	if err := a.Transfer(0, 1, a, 2); !errors.Is(err, mdindexerr.ErrInvalidArg) {
		t.Fatalf("Transfer to self = %v, want ErrInvalidArg", err)
	}
}

func TestSwapExchangesContent(t *testing.T) {
	a := New(3)
	b := New(3)
	_ = a.SetRange(0, []any{int64(1), int64(2), int64(3)})
	_ = b.SetRange(0, []any{int64(7), int64(8), int64(9)})

	if err := a.Swap(0, 1, b, 0); err != nil {
		t.Fatalf("Swap: %v", err)
	}
	wantA := []int64{7, 8, 3}
	wantB := []int64{1, 2, 9}
	for i := range wantA {
		got, _ := Get[int64](a, i)
		if got != wantA[i] {
			t.Fatalf("a[%d] = %d, want %d", i, got, wantA[i])
		}
	}
	for i := range wantB {
		got, _ := Get[int64](b, i)
		if got != wantB[i] {
			t.Fatalf("b[%d] = %d, want %d", i, got, wantB[i])
		}
	}
}

func TestGetTypeMismatch(t *testing.T) {
	v := New(2)
	_ = v.Set(0, int64(5))
	if _, err := Get[float64](v, 0); !errors.Is(err, mdindexerr.ErrTypeMismatch) {
		t.Fatalf("Get wrong type = %v, want ErrTypeMismatch", err)
	}
}

func TestPositionHintSequentialWrite(t *testing.T) {
	v := New(5)
	pos, err := v.Position(0)
	if err != nil {
		t.Fatalf("Position: %v", err)
	}
	for i := 0; i < 5; i++ {
		pos, err = v.SetAt(pos, int64(i))
		if err != nil {
			t.Fatalf("SetAt(%d): %v", i, err)
		}
		pos, err = pos.Next()
		if err != nil && i < 4 {
			t.Fatalf("Next: %v", err)
		}
	}
	for i := 0; i < 5; i++ {
		got, _ := Get[int64](v, i)
		if got != int64(i) {
			t.Fatalf("v[%d] = %d, want %d", i, got, i)
		}
	}
}

func TestRoundTripSetGetIsNoop(t *testing.T) {
	v := New(4)
	_ = v.SetRange(0, []any{int64(1), int64(2), int64(3), int64(4)})
	for i := 0; i < 4; i++ {
		val, err := Get[int64](v, i)
		if err != nil {
			t.Fatalf("Get(%d): %v", i, err)
		}
		if err := v.Set(i, val); err != nil {
			t.Fatalf("round-trip Set(%d): %v", i, err)
		}
	}
	for i, want := range []int64{1, 2, 3, 4} {
		got, _ := Get[int64](v, i)
		if got != want {
			t.Fatalf("v[%d] = %d, want %d after round-trip", i, got, want)
		}
	}
}
