// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package block

import (
	"fmt"

	"github.com/ClusterCockpit/cc-mdindex/pkg/mdindexerr"
)

// emptyBlock is the Type == Empty special case: it tracks only a size, per
// spec.md §3 ("except for type empty, where no data is held and size alone
// is tracked").
type emptyBlock struct {
	n int
}

func NewEmpty(n int) Block { return &emptyBlock{n: n} }

func (b *emptyBlock) Kind() Type    { return Empty }
func (b *emptyBlock) Len() int      { return b.n }
func (b *emptyBlock) Managed() bool { return false }

func (b *emptyBlock) Get(i int) (any, error) {
	if i < 0 || i >= b.n {
		return nil, outOfBounds("Get", i, b.n)
	}
	return nil, nil
}

func (b *emptyBlock) Set(i int, v any) error {
	return typeMismatch("Set", Empty, Empty)
}

func (b *emptyBlock) Append(v any) error  { return typeMismatch("Append", Empty, Empty) }
func (b *emptyBlock) Prepend(v any) error { return typeMismatch("Prepend", Empty, Empty) }

func (b *emptyBlock) Insert(i int, src Block) error {
	if i < 0 || i > b.n {
		return outOfBounds("Insert", i, b.n)
	}
	o, ok := src.(*emptyBlock)
	if !ok {
		return typeMismatch("Insert", Empty, src.Kind())
	}
	b.n += o.n
	return nil
}

func (b *emptyBlock) Erase(i, count int) error {
	if i < 0 || count < 0 || i+count > b.n {
		return outOfBounds("Erase", i+count, b.n)
	}
	b.n -= count
	return nil
}

func (b *emptyBlock) Resize(n int) error {
	if n < 0 {
		return outOfBounds("Resize", n, b.n)
	}
	b.n = n
	return nil
}

func (b *emptyBlock) AppendFrom(src Block, begin, length int) error {
	if _, ok := src.(*emptyBlock); !ok {
		return typeMismatch("AppendFrom", Empty, src.Kind())
	}
	b.n += length
	return nil
}

func (b *emptyBlock) PrependFrom(src Block, begin, length int) error {
	return b.AppendFrom(src, begin, length)
}

func (b *emptyBlock) AssignFrom(i int, src Block, begin, length int) error {
	if i < 0 || length < 0 || i+length > b.n {
		return outOfBounds("AssignFrom", i+length, b.n)
	}
	return nil
}

func (b *emptyBlock) Overwrite(i, length int) error {
	if i < 0 || length < 0 || i+length > b.n {
		return outOfBounds("Overwrite", i+length, b.n)
	}
	return nil
}

func (b *emptyBlock) Release(i int) (any, error) {
	if i < 0 || i >= b.n {
		return nil, outOfBounds("Release", i, b.n)
	}
	return nil, nil
}

func (b *emptyBlock) Clone() (Block, error) { return &emptyBlock{n: b.n}, nil }

func (b *emptyBlock) Equal(other Block) bool {
	o, ok := other.(*emptyBlock)
	return ok && o.n == b.n
}

func (b *emptyBlock) Slice(i, j int) (Block, error) {
	if i < 0 || j < i || j > b.n {
		return nil, outOfBounds("Slice", j, b.n)
	}
	return &emptyBlock{n: j - i}, nil
}

// NewNumeric creates a block of n zero-valued float64 elements.
func NewNumeric(n int) Block { return newTyped[float64](Numeric, n, true, nil) }

// NewInteger creates a block of n zero-valued int64 elements.
func NewInteger(n int) Block { return newTyped[int64](Integer, n, true, nil) }

// NewBoolean creates a block of n false-valued boolean elements.
func NewBoolean(n int) Block { return newTyped[bool](Boolean, n, true, nil) }

// NewString creates a block of n empty-string elements.
func NewString(n int) Block { return newTyped[string](String, n, true, nil) }

// UserTypeDef registers a user-defined element type. ID must be >= UserStart.
// Copyable is false for move-only resources, which makes Clone fail with
// mdindexerr.ErrCapability. Release, when non-nil, is invoked by Overwrite
// before an element of this type is dropped or overwritten (marking the
// block "managed").
type UserTypeDef[T comparable] struct {
	ID       Type
	Copyable bool
	Release  func(T)
}

// NewUserBlock allocates a block of a registered user element type.
func NewUserBlock[T comparable](def UserTypeDef[T], n int) (Block, error) {
	if def.ID < UserStart {
		return nil, fmt.Errorf("block.NewUserBlock: id %d below UserStart: %w", def.ID, errCapability)
	}
	return newTyped[T](def.ID, n, def.Copyable, def.Release), nil
}

// NewBlock allocates a default-constructed block of the given built-in type.
// User types must use NewUserBlock.
func NewBlock(kind Type, n int) (Block, error) {
	switch kind {
	case Empty:
		return NewEmpty(n), nil
	case Numeric:
		return NewNumeric(n), nil
	case Integer:
		return NewInteger(n), nil
	case Boolean:
		return NewBoolean(n), nil
	case String:
		return NewString(n), nil
	default:
		return nil, fmt.Errorf("block.NewBlock: unknown built-in type %s: %w", kind, errCapability)
	}
}

// CloneBlock deep-copies block for copyable element types. Move-only blocks
// fail with mdindexerr.ErrCapability.
func CloneBlock(b Block) (Block, error) { return b.Clone() }

// DeleteBlock releases block's storage. For managed blocks this does NOT
// invoke element destructors — callers that want that must Erase or
// Overwrite first. A nil block is a no-op, matching mdds' delete_block.
func DeleteBlock(b Block) {}

// GetTyped reads element i from b with compile-time type safety.
func GetTyped[T any](b Block, i int) (T, error) {
	var zero T
	v, err := b.Get(i)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("block.GetTyped: %s block holds a %T, not a %T: %w", b.Kind(), v, zero, mdindexerr.ErrTypeMismatch)
	}
	return t, nil
}
