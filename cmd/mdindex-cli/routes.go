// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ClusterCockpit/cc-mdindex/pkg/fst"
	"github.com/ClusterCockpit/cc-mdindex/pkg/rtree"
)

// registerRoutes wires the demo's introspection endpoints onto r, following
// the teacher's RestApi.MountRoutes shape (a PathPrefix subrouter, one
// HandleFunc per endpoint, methods pinned explicitly).
func registerRoutes(r *mux.Router, d *demo) {
	r = r.PathPrefix("/api").Subrouter()
	r.StrictSlash(true)

	r.HandleFunc("/rtree/size", d.rtreeSize).Methods(http.MethodGet)
	r.HandleFunc("/rtree/search", d.rtreeSearch).Methods(http.MethodGet)
	r.HandleFunc("/rtree/export/{format}", d.rtreeExport).Methods(http.MethodGet)
	r.HandleFunc("/fst/search/{key}", d.fstSearch).Methods(http.MethodGet)
}

func (d *demo) rtreeSize(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"size":   d.rtree.Size(),
		"extent": d.rtree.Extent(),
	})
}

// rtreeSearch answers ?low=1,2&high=3,4&mode=overlap|match over the demo
// R-tree, defaulting mode to overlap.
func (d *demo) rtreeSearch(w http.ResponseWriter, r *http.Request) {
	low, err := parseFloats(r.URL.Query().Get("low"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	high, err := parseFloats(r.URL.Query().Get("high"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	mode := rtree.Overlap
	if r.URL.Query().Get("mode") == "match" {
		mode = rtree.Match
	}

	hits := d.rtree.Search(rtree.MBR{Low: low, High: high}, mode)
	writeJSON(w, hits)
}

func (d *demo) rtreeExport(w http.ResponseWriter, r *http.Request) {
	var format rtree.Format
	switch mux.Vars(r)["format"] {
	case "obj":
		format = rtree.ExtentAsObj
	case "svg":
		format = rtree.ExtentAsSVG
	case "formatted":
		format = rtree.FormattedNodeProperties
	default:
		http.Error(w, "unknown export format", http.StatusBadRequest)
		return
	}

	out, err := d.rtree.ExportTree(format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if format == rtree.ExtentAsSVG {
		w.Header().Set("Content-Type", "image/svg+xml")
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.Write([]byte(out))
}

func (d *demo) fstSearch(w http.ResponseWriter, r *http.Request) {
	key, err := strconv.Atoi(mux.Vars(r)["key"])
	if err != nil {
		http.Error(w, "key must be an integer", http.StatusBadRequest)
		return
	}

	value, start, end, err := d.fst.Search(key)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]any{"value": value, "start": start, "end": end})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func parseFloats(csv string) ([]float64, error) {
	if csv == "" {
		return nil, nil
	}
	var out []float64
	start := 0
	for i := 0; i <= len(csv); i++ {
		if i == len(csv) || csv[i] == ',' {
			f, err := strconv.ParseFloat(csv[start:i], 64)
			if err != nil {
				return nil, err
			}
			out = append(out, f)
			start = i + 1
		}
	}
	return out, nil
}
