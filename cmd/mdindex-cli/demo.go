// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"math/rand"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ClusterCockpit/cc-mdindex/internal/config"
	"github.com/ClusterCockpit/cc-mdindex/pkg/fst"
	"github.com/ClusterCockpit/cc-mdindex/pkg/rtree"
)

// demo bundles the containers the introspection server exposes.
type demo struct {
	rtree *rtree.Tree
	fst   *fst.Tree[int, string]
}

// buildDemo populates an R-tree and a flat segment tree with deterministic
// pseudo-random data (the generator is seeded from len(seed)), assigning each
// R-tree object a UUID name via google/uuid derived from seed and the
// object's index, so the same seed yields the same names on every run.
func buildDemo(cfg config.ProgramConfig, seed string, registry prometheus.Registerer) *demo {
	params := rtree.DefaultParams(cfg.RtreeDims, cfg.RtreeMaxEntries)
	if cfg.RtreeMinEntries > 0 {
		params.MinEntries = cfg.RtreeMinEntries
	}
	params.ForcedReinsertion = cfg.RtreeForcedReinsertion

	tr, err := rtree.New(params)
	if err != nil {
		panic(err) // programConfig is validated by internal/config before this runs
	}
	tr.Instrument(rtree.NewInstrumentation(registry, "mdindex_demo"))

	rng := rand.New(rand.NewSource(int64(len(seed)) + 1))
	space := uuid.NewSHA1(uuid.NameSpaceOID, []byte(seed))
	for i := 0; i < 64; i++ {
		low := make([]float64, cfg.RtreeDims)
		high := make([]float64, cfg.RtreeDims)
		for d := 0; d < cfg.RtreeDims; d++ {
			low[d] = rng.Float64() * 100
			high[d] = low[d] + rng.Float64()*5
		}
		name := uuid.NewSHA1(space, []byte{byte(i)}).String()
		_ = tr.Insert(rtree.MBR{Low: low, High: high}, name)
	}

	ft := fst.New(cfg.FSTMin, cfg.FSTMax, "unassigned")
	span := cfg.FSTMax - cfg.FSTMin
	if span > 0 {
		step := span / 8
		if step < 1 {
			step = 1
		}
		for a := cfg.FSTMin; a+step < cfg.FSTMax; a += 2 * step {
			ft.InsertSegment(a, a+step, "reserved")
		}
	}

	return &demo{rtree: tr, fst: ft}
}
