// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"fmt"
	"strings"

	"github.com/ClusterCockpit/cc-mdindex/pkg/mdindexerr"
)

// Format selects one of export_tree's textual dump styles.
type Format int

const (
	// ExtentAsObj is a plain-text polygon list for 3-D viewer ingestion.
	ExtentAsObj Format = iota
	// ExtentAsSVG is an SVG document, one rectangle per directory node, coloured by depth.
	ExtentAsSVG
	// FormattedNodeProperties is a line-oriented human-readable dump.
	FormattedNodeProperties
)

// ExportTree renders the tree in the requested textual format.
func (t *Tree) ExportTree(format Format) (string, error) {
	switch format {
	case ExtentAsObj:
		return t.exportObj(), nil
	case ExtentAsSVG:
		return t.exportSVG(), nil
	case FormattedNodeProperties:
		return t.exportFormatted(), nil
	default:
		return "", fmt.Errorf("rtree.ExportTree: unknown format %d: %w", format, mdindexerr.ErrInvalidArg)
	}
}

// exportObj lists one polygon per directory node as the 2-D rectangle's four
// corners (z is the node's depth, giving a 3-D viewer a stacked view of
// the tree's levels).
func (t *Tree) exportObj() string {
	var b strings.Builder
	t.WalkProperties(func(p NodeProperties) bool {
		if p.Kind == KindValue || len(p.Extent.Low) < 2 {
			return true
		}
		x0, y0, x1, y1 := p.Extent.Low[0], p.Extent.Low[1], p.Extent.High[0], p.Extent.High[1]
		fmt.Fprintf(&b, "v %g %g %d\n", x0, y0, p.Depth)
		fmt.Fprintf(&b, "v %g %g %d\n", x1, y0, p.Depth)
		fmt.Fprintf(&b, "v %g %g %d\n", x1, y1, p.Depth)
		fmt.Fprintf(&b, "v %g %g %d\n", x0, y1, p.Depth)
		return true
	})
	return b.String()
}

var depthPalette = []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b"}

// exportSVG draws one <rect> per directory node, coloured by depth.
func (t *Tree) exportSVG() string {
	var b strings.Builder
	b.WriteString("<svg xmlns=\"http://www.w3.org/2000/svg\">\n")
	t.WalkProperties(func(p NodeProperties) bool {
		if p.Kind == KindValue || len(p.Extent.Low) < 2 {
			return true
		}
		color := depthPalette[p.Depth%len(depthPalette)]
		fmt.Fprintf(&b, "  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"none\" stroke=\"%s\"/>\n",
			p.Extent.Low[0], p.Extent.Low[1],
			p.Extent.High[0]-p.Extent.Low[0], p.Extent.High[1]-p.Extent.Low[1],
			color)
		return true
	})
	b.WriteString("</svg>\n")
	return b.String()
}

func kindName(k Kind) string {
	switch k {
	case KindValue:
		return "value"
	case KindLeafDirectory:
		return "leaf-directory"
	default:
		return "non-leaf-directory"
	}
}

// exportFormatted dumps one line per node: depth, kind, extent, and value
// when present.
func (t *Tree) exportFormatted() string {
	var b strings.Builder
	t.WalkProperties(func(p NodeProperties) bool {
		fmt.Fprintf(&b, "depth=%d kind=%s extent=%v", p.Depth, kindName(p.Kind), p.Extent)
		if p.Kind == KindValue {
			fmt.Fprintf(&b, " value=%v", p.Value)
		}
		b.WriteString("\n")
		return true
	})
	return b.String()
}
