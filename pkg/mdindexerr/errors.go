// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package mdindexerr defines the sentinel error kinds shared by every index
// container in this module. Call sites wrap these with fmt.Errorf("...: %w")
// so callers can still recover the kind with errors.Is.
package mdindexerr

import "errors"

var (
	// ErrOutOfBounds is returned for an index or position outside a
	// container's size.
	ErrOutOfBounds = errors.New("out of bounds")

	// ErrTypeMismatch is returned for a typed read/write against a block of
	// a different type, or an attempt to clone a move-only block.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInvalidArg is returned for self-transfer, an inverted interval, or
	// an empty range where a non-empty one is required.
	ErrInvalidArg = errors.New("invalid argument")

	// ErrNotFound is returned by point/key/extent lookups that have no
	// match, for APIs that signal rather than return an empty result.
	ErrNotFound = errors.New("not found")

	// ErrTreeInvalid is returned by search_tree-style operations invoked
	// before the backing tree has been built, or after it was invalidated.
	ErrTreeInvalid = errors.New("tree not built or invalidated")

	// ErrIntegrity is raised by check_integrity when an invariant is
	// violated.
	ErrIntegrity = errors.New("integrity violation")

	// ErrCapability is returned when an operation is unsupported by the
	// value type, e.g. cloning a move-only block.
	ErrCapability = errors.New("capability not supported by value type")
)
