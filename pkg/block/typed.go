// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package block

import (
	"fmt"

	"github.com/ClusterCockpit/cc-mdindex/pkg/mdindexerr"
)

// typedBlock is the generic backing store shared by the built-in element
// types and user element types. copyOK reports whether T is safely copyable;
// user types that wrap a move-only resource set copyOK to false and release
// to a function that
// frees the resource, making the block "managed" per the Block interface.
type typedBlock[T comparable] struct {
	kind    Type
	data    []T
	copyOK  bool
	release func(T)
}

func newTyped[T comparable](kind Type, n int, copyOK bool, release func(T)) *typedBlock[T] {
	return &typedBlock[T]{kind: kind, data: make([]T, n), copyOK: copyOK, release: release}
}

func (b *typedBlock[T]) Kind() Type   { return b.kind }
func (b *typedBlock[T]) Len() int     { return len(b.data) }
func (b *typedBlock[T]) Managed() bool { return b.release != nil }

func (b *typedBlock[T]) cast(v any) (T, error) {
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("block.cast: %s block cannot hold a %T: %w", b.kind, v, mdindexerr.ErrTypeMismatch)
	}
	return t, nil
}

func (b *typedBlock[T]) releaseOne(v T) {
	if b.release != nil {
		b.release(v)
	}
}

func (b *typedBlock[T]) Get(i int) (any, error) {
	if i < 0 || i >= len(b.data) {
		return nil, outOfBounds("Get", i, len(b.data))
	}
	return b.data[i], nil
}

func (b *typedBlock[T]) Set(i int, v any) error {
	if i < 0 || i >= len(b.data) {
		return outOfBounds("Set", i, len(b.data))
	}
	t, err := b.cast(v)
	if err != nil {
		return err
	}
	b.releaseOne(b.data[i])
	b.data[i] = t
	return nil
}

func (b *typedBlock[T]) Append(v any) error {
	t, err := b.cast(v)
	if err != nil {
		return err
	}
	b.data = append(b.data, t)
	return nil
}

func (b *typedBlock[T]) Prepend(v any) error {
	t, err := b.cast(v)
	if err != nil {
		return err
	}
	b.data = append([]T{t}, b.data...)
	return nil
}

func (b *typedBlock[T]) other(src Block) (*typedBlock[T], error) {
	o, ok := src.(*typedBlock[T])
	if !ok || o.kind != b.kind {
		return nil, typeMismatch("transfer", b.kind, src.Kind())
	}
	return o, nil
}

func (b *typedBlock[T]) Insert(i int, src Block) error {
	if i < 0 || i > len(b.data) {
		return outOfBounds("Insert", i, len(b.data))
	}
	o, err := b.other(src)
	if err != nil {
		return err
	}
	out := make([]T, 0, len(b.data)+len(o.data))
	out = append(out, b.data[:i]...)
	out = append(out, o.data...)
	out = append(out, b.data[i:]...)
	b.data = out
	return nil
}

func (b *typedBlock[T]) Erase(i, count int) error {
	if i < 0 || count < 0 || i+count > len(b.data) {
		return outOfBounds("Erase", i+count, len(b.data))
	}
	for k := i; k < i+count; k++ {
		b.releaseOne(b.data[k])
	}
	b.data = append(b.data[:i], b.data[i+count:]...)
	return nil
}

func (b *typedBlock[T]) Resize(n int) error {
	if n < 0 {
		return outOfBounds("Resize", n, len(b.data))
	}
	if n <= len(b.data) {
		for k := n; k < len(b.data); k++ {
			b.releaseOne(b.data[k])
		}
		b.data = b.data[:n]
		return nil
	}
	grown := make([]T, n)
	copy(grown, b.data)
	b.data = grown
	return nil
}

func (b *typedBlock[T]) AppendFrom(src Block, begin, length int) error {
	o, err := b.other(src)
	if err != nil {
		return err
	}
	if begin < 0 || length < 0 || begin+length > len(o.data) {
		return outOfBounds("AppendFrom", begin+length, len(o.data))
	}
	b.data = append(b.data, o.data[begin:begin+length]...)
	return nil
}

func (b *typedBlock[T]) PrependFrom(src Block, begin, length int) error {
	o, err := b.other(src)
	if err != nil {
		return err
	}
	if begin < 0 || length < 0 || begin+length > len(o.data) {
		return outOfBounds("PrependFrom", begin+length, len(o.data))
	}
	out := make([]T, 0, length+len(b.data))
	out = append(out, o.data[begin:begin+length]...)
	out = append(out, b.data...)
	b.data = out
	return nil
}

func (b *typedBlock[T]) AssignFrom(i int, src Block, begin, length int) error {
	o, err := b.other(src)
	if err != nil {
		return err
	}
	if i < 0 || length < 0 || i+length > len(b.data) {
		return outOfBounds("AssignFrom", i+length, len(b.data))
	}
	if begin < 0 || begin+length > len(o.data) {
		return outOfBounds("AssignFrom", begin+length, len(o.data))
	}
	if err := b.Overwrite(i, length); err != nil {
		return err
	}
	copy(b.data[i:i+length], o.data[begin:begin+length])
	return nil
}

func (b *typedBlock[T]) Overwrite(i, length int) error {
	if i < 0 || length < 0 || i+length > len(b.data) {
		return outOfBounds("Overwrite", i+length, len(b.data))
	}
	if b.release == nil {
		return nil
	}
	for k := i; k < i+length; k++ {
		b.release(b.data[k])
	}
	return nil
}

func (b *typedBlock[T]) Release(i int) (any, error) {
	if i < 0 || i >= len(b.data) {
		return nil, outOfBounds("Release", i, len(b.data))
	}
	v := b.data[i]
	var zero T
	b.data[i] = zero
	return v, nil
}

func (b *typedBlock[T]) Clone() (Block, error) {
	if !b.copyOK {
		return nil, fmt.Errorf("block.Clone: %s elements are move-only: %w", b.kind, errCapability)
	}
	data := make([]T, len(b.data))
	copy(data, b.data)
	return &typedBlock[T]{kind: b.kind, data: data, copyOK: b.copyOK, release: b.release}, nil
}

func (b *typedBlock[T]) Equal(other Block) bool {
	o, ok := other.(*typedBlock[T])
	if !ok || o.kind != b.kind || len(o.data) != len(b.data) {
		return false
	}
	for i := range b.data {
		if b.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

func (b *typedBlock[T]) Slice(i, j int) (Block, error) {
	if i < 0 || j < i || j > len(b.data) {
		return nil, outOfBounds("Slice", j, len(b.data))
	}
	data := make([]T, j-i)
	copy(data, b.data[i:j])
	return &typedBlock[T]{kind: b.kind, data: data, copyOK: b.copyOK, release: b.release}, nil
}
