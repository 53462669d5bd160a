// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"fmt"

	"github.com/ClusterCockpit/cc-mdindex/pkg/mdindexerr"
)

// IntegrityProperties controls check_integrity's reporting mode.
type IntegrityProperties struct {
	ThrowOnFirstError bool
}

// IntegrityReport aggregates every invariant violation found by
// CheckIntegrity when ThrowOnFirstError is false.
type IntegrityReport struct {
	Violations []string
}

func (r *IntegrityReport) Ok() bool { return len(r.Violations) == 0 }

// CheckIntegrity verifies, slowly and exhaustively, that every node's
// stored MBR equals the union of its children's MBRs, that every
// non-root directory's child count is within [MinEntries, MaxEntries],
// and that every leaf is at the same depth.
func (t *Tree) CheckIntegrity(props IntegrityProperties) (*IntegrityReport, error) {
	report := &IntegrityReport{}
	leafDepth := -1

	var walk func(n *node, depth int) error
	walk = func(n *node, depth int) error {
		if n != t.root {
			if len(n.entries) < t.params.MinEntries || len(n.entries) > t.params.MaxEntries {
				msg := fmt.Sprintf("node at depth %d has %d entries, want [%d,%d]", depth, len(n.entries), t.params.MinEntries, t.params.MaxEntries)
				if props.ThrowOnFirstError {
					return fmt.Errorf("rtree.CheckIntegrity: %s: %w", msg, mdindexerr.ErrIntegrity)
				}
				report.Violations = append(report.Violations, msg)
			}
		}
		if n.isLeaf() {
			if leafDepth == -1 {
				leafDepth = depth
			} else if leafDepth != depth {
				msg := fmt.Sprintf("leaf at depth %d, want %d", depth, leafDepth)
				if props.ThrowOnFirstError {
					return fmt.Errorf("rtree.CheckIntegrity: %s: %w", msg, mdindexerr.ErrIntegrity)
				}
				report.Violations = append(report.Violations, msg)
			}
			return nil
		}
		for _, e := range n.entries {
			if e.child.parent != n {
				msg := fmt.Sprintf("child at depth %d has wrong parent back-link", depth+1)
				if props.ThrowOnFirstError {
					return fmt.Errorf("rtree.CheckIntegrity: %s: %w", msg, mdindexerr.ErrIntegrity)
				}
				report.Violations = append(report.Violations, msg)
			}
			if len(e.child.entries) > 0 && !e.mbr.Equal(mbrOfEntries(e.child.entries)) {
				msg := fmt.Sprintf("stored MBR at depth %d does not match union of children", depth+1)
				if props.ThrowOnFirstError {
					return fmt.Errorf("rtree.CheckIntegrity: %s: %w", msg, mdindexerr.ErrIntegrity)
				}
				report.Violations = append(report.Violations, msg)
			}
			if err := walk(e.child, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(t.root, 0); err != nil {
		return nil, err
	}
	return report, nil
}
