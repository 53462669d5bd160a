// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package block implements the typed element block (C1): a homogeneous,
// type-tagged bucket of elements that the multi-type vector (pkg/mtv) and
// mixed-type matrix (pkg/matrix) packages use as their storage unit.
//
// A Block owns exactly one contiguous array of elements of a single Type.
// Managed blocks (user element types that reference external resources)
// additionally implement Resource on their stored elements, and Overwrite
// releases those resources before they are dropped.
package block

import (
	"fmt"

	"github.com/ClusterCockpit/cc-mdindex/pkg/mdindexerr"
)

// Type tags the element kind a Block stores. Values below UserStart are
// built in; user element types register themselves at UserStart and above,
// mirroring mdds' element_type_user_start convention.
type Type int

const (
	Empty Type = iota
	Numeric
	Integer
	Boolean
	String
	UserStart Type = 50
)

func (t Type) String() string {
	switch t {
	case Empty:
		return "empty"
	case Numeric:
		return "numeric"
	case Integer:
		return "integer"
	case Boolean:
		return "boolean"
	case String:
		return "string"
	default:
		if t >= UserStart {
			return fmt.Sprintf("user(%d)", t)
		}
		return "unknown"
	}
}

// Resource is implemented by elements stored in a managed block: elements
// that reference memory or handles outside of the block's own array.
// Overwrite(block, offset, len) invokes Release on every element about to be
// overwritten or erased.
type Resource interface {
	Release()
}

// Block is a homogeneous run of elements of a single Type. Implementations
// are provided for the built-in types below; user-defined element types
// implement the same interface via NewUserBlock.
type Block interface {
	// Kind reports the block's type tag.
	Kind() Type
	// Len reports the number of elements currently stored.
	Len() int
	// Managed reports whether elements of this block type implement
	// Resource and must be released via Overwrite before being dropped.
	Managed() bool

	// Get returns the element at i as an untyped value.
	Get(i int) (any, error)
	// Set overwrites the element at i. If the block is managed, the
	// previous element at i is released first.
	Set(i int, v any) error
	// Append adds v to the end of the block.
	Append(v any) error
	// Prepend adds v to the front of the block.
	Prepend(v any) error

	// Insert inserts the elements of src at position i, growing the block.
	Insert(i int, src Block) error
	// Erase removes count elements starting at i, releasing them first if
	// the block is managed.
	Erase(i, count int) error
	// Resize grows (zero-extending) or shrinks the block to n elements.
	// Shrinking releases the dropped tail if the block is managed.
	Resize(n int) error

	// AppendFrom copies src[begin:begin+length] onto the end of the block.
	AppendFrom(src Block, begin, length int) error
	// PrependFrom copies src[begin:begin+length] onto the front of the block.
	PrependFrom(src Block, begin, length int) error
	// AssignFrom overwrites dst[i:i+length] with src[begin:begin+length].
	AssignFrom(i int, src Block, begin, length int) error

	// Overwrite releases the elements in [i, i+len) if the block is
	// managed; a no-op for plain blocks. MTV calls this before any write
	// that would otherwise leak a managed resource.
	Overwrite(i, length int) error
	// Release returns the element at i to the caller without invoking
	// Overwrite — the caller now owns whatever resource it held. The slot
	// is left holding a zero value; Len does not change.
	Release(i int) (any, error)

	// Clone deep-copies the block. Move-only user element types return
	// mdindexerr.ErrCapability.
	Clone() (Block, error)
	// Equal compares type tag and elements.
	Equal(other Block) bool

	// Slice returns a new block holding a copy of elements [i, j).
	Slice(i, j int) (Block, error)
}

func outOfBounds(op string, i, n int) error {
	return fmt.Errorf("block.%s: index %d out of [0,%d): %w", op, i, n, mdindexerr.ErrOutOfBounds)
}

func typeMismatch(op string, want, got Type) error {
	return fmt.Errorf("block.%s: expected %s block, got %s: %w", op, want, got, mdindexerr.ErrTypeMismatch)
}

var errCapability = mdindexerr.ErrCapability
