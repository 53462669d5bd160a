// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package block

import (
	"errors"
	"testing"

	"github.com/ClusterCockpit/cc-mdindex/pkg/mdindexerr"
)

func TestNumericBasics(t *testing.T) {
	b := NewNumeric(3)
	if b.Len() != 3 || b.Kind() != Numeric {
		t.Fatalf("unexpected block: len=%d kind=%s", b.Len(), b.Kind())
	}
	if err := b.Set(1, 2.5); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, err := GetTyped[float64](b, 1)
	if err != nil || v != 2.5 {
		t.Fatalf("Get(1) = %v, %v; want 2.5, nil", v, err)
	}
	if err := b.Set(1, "oops"); !errors.Is(err, mdindexerr.ErrTypeMismatch) {
		t.Fatalf("Set with wrong type = %v; want ErrTypeMismatch", err)
	}
	if _, err := b.Get(5); !errors.Is(err, mdindexerr.ErrOutOfBounds) {
		t.Fatalf("Get(5) = %v; want ErrOutOfBounds", err)
	}
}

func TestInsertEraseResize(t *testing.T) {
	b := NewInteger(2)
	_ = b.Set(0, int64(1))
	_ = b.Set(1, int64(2))

	src := NewInteger(2)
	_ = src.Set(0, int64(9))
	_ = src.Set(1, int64(8))

	if err := b.Insert(1, src); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	want := []int64{1, 9, 8, 2}
	for i, w := range want {
		v, _ := GetTyped[int64](b, i)
		if v != w {
			t.Fatalf("after insert, b[%d] = %d, want %d", i, v, w)
		}
	}

	if err := b.Erase(1, 2); err != nil {
		t.Fatalf("Erase: %v", err)
	}
	if b.Len() != 2 {
		t.Fatalf("Len after erase = %d, want 2", b.Len())
	}

	if err := b.Resize(5); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if b.Len() != 5 {
		t.Fatalf("Len after resize = %d, want 5", b.Len())
	}
	v, _ := GetTyped[int64](b, 4)
	if v != 0 {
		t.Fatalf("grown tail = %d, want zero value", v)
	}
}

func TestCloneAndEqual(t *testing.T) {
	a := NewString(2)
	_ = a.Set(0, "x")
	_ = a.Set(1, "y")
	c, err := a.Clone()
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if !a.Equal(c) {
		t.Fatalf("clone should equal original")
	}
	_ = c.Set(0, "z")
	if a.Equal(c) {
		t.Fatalf("mutated clone should not equal original")
	}
}

func TestManagedBlockReleasesOnOverwriteAndErase(t *testing.T) {
	released := map[int]bool{}
	def := UserTypeDef[int]{
		ID:       UserStart,
		Copyable: false,
		Release:  func(id int) { released[id] = true },
	}
	b, err := NewUserBlock(def, 3)
	if err != nil {
		t.Fatalf("NewUserBlock: %v", err)
	}
	_ = b.Set(0, 1)
	_ = b.Set(1, 2)
	_ = b.Set(2, 3)

	if err := b.Overwrite(1, 1); err != nil {
		t.Fatalf("Overwrite: %v", err)
	}
	if !released[2] {
		t.Fatalf("Overwrite should have released element at index 1 (value 2)")
	}

	if _, err := b.Clone(); !errors.Is(err, mdindexerr.ErrCapability) {
		t.Fatalf("Clone of move-only block = %v, want ErrCapability", err)
	}

	// Release bypasses the destructor hook: the caller now owns the value.
	released = map[int]bool{}
	v, err := b.Release(2)
	if err != nil {
		t.Fatalf("Release: %v", err)
	}
	if v.(int) != 3 {
		t.Fatalf("Release(2) = %v, want 3", v)
	}
	if released[3] {
		t.Fatalf("Release must not invoke the destructor hook")
	}
}

func TestEmptyBlock(t *testing.T) {
	b := NewEmpty(4)
	if b.Len() != 4 || b.Kind() != Empty {
		t.Fatalf("unexpected empty block: %+v", b)
	}
	v, err := b.Get(0)
	if err != nil || v != nil {
		t.Fatalf("Get on empty block = %v, %v; want nil, nil", v, err)
	}
	if err := b.Set(0, 1.0); !errors.Is(err, mdindexerr.ErrTypeMismatch) {
		t.Fatalf("Set on empty block = %v; want ErrTypeMismatch", err)
	}
}
