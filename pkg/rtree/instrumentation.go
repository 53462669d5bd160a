// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtree

import "github.com/prometheus/client_golang/prometheus"

// Instrumentation is an optional set of Prometheus counters a caller can
// attach to a Tree to observe its internal R*-tree behaviour (split rate,
// forced-reinsertion rate, search volume). The counters are only touched
// when attached via Instrument; a Tree without instrumentation counts
// nothing.
type Instrumentation struct {
	Splits             prometheus.Counter
	ForcedReinsertions prometheus.Counter
	Searches           prometheus.Counter
}

// NewInstrumentation builds an Instrumentation registered under the given
// namespace, ready to be passed to Tree.Instrument and served by a
// Prometheus handler (see cmd/mdindex-cli's /metrics endpoint).
func NewInstrumentation(reg prometheus.Registerer, namespace string) *Instrumentation {
	i := &Instrumentation{
		Splits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "rtree_splits_total",
			Help: "Number of directory node splits performed.",
		}),
		ForcedReinsertions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "rtree_forced_reinsertions_total",
			Help: "Number of R*-tree forced-reinsertion passes performed.",
		}),
		Searches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "rtree_searches_total",
			Help: "Number of Search calls made against the tree.",
		}),
	}
	reg.MustRegister(i.Splits, i.ForcedReinsertions, i.Searches)
	return i
}

// Instrument attaches instrumentation to t; pass nil to detach.
func (t *Tree) Instrument(i *Instrumentation) { t.instr = i }

func (t *Tree) countSplit() {
	if t.instr != nil {
		t.instr.Splits.Inc()
	}
}

func (t *Tree) countForcedReinsertion() {
	if t.instr != nil {
		t.instr.ForcedReinsertions.Inc()
	}
}

func (t *Tree) countSearch() {
	if t.instr != nil {
		t.instr.Searches.Inc()
	}
}
