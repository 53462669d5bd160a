// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config loads the demo CLI's configuration: a .env file (via
// joho/godotenv) for environment overrides, and a JSON config file
// validated against an embedded schema before being decoded, matching the
// teacher's internal/config.Init/ProgramConfig pattern.
package config

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/joho/godotenv"

	"github.com/ClusterCockpit/cc-mdindex/pkg/log"
)

// ProgramConfig is the demo CLI's configuration format.
type ProgramConfig struct {
	// Addr is where the introspection HTTP server listens (e.g. ":8090").
	Addr string `json:"addr"`

	// RtreeDims is the dimensionality D of the demo R-tree.
	RtreeDims int `json:"rtree-dims"`

	// RtreeMaxEntries is the R-tree trait's M.
	RtreeMaxEntries int `json:"rtree-max-entries"`

	// RtreeMinEntries is the R-tree trait's m. If 0, DefaultParams derives it.
	RtreeMinEntries int `json:"rtree-min-entries"`

	// RtreeForcedReinsertion toggles R*-tree overflow treatment.
	RtreeForcedReinsertion bool `json:"rtree-forced-reinsertion"`

	// FSTMin/FSTMax bound the demo flat segment tree's key axis.
	FSTMin int `json:"fst-min"`
	FSTMax int `json:"fst-max"`
}

// Keys holds the process-wide configuration, populated by Init.
var Keys = ProgramConfig{
	Addr:                   ":8090",
	RtreeDims:              2,
	RtreeMaxEntries:        4,
	RtreeMinEntries:        0,
	RtreeForcedReinsertion: true,
	FSTMin:                 0,
	FSTMax:                 1000,
}

// Init loads envFile (if present) into the process environment, then
// reads, schema-validates, and decodes jsonConfigFile into Keys. A missing
// jsonConfigFile is not an error: Keys keeps its defaults.
func Init(envFile, jsonConfigFile string) error {
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return err
	}

	raw, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := Validate(configSchema, raw); err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&Keys); err != nil {
		return err
	}

	log.Debugf("config: loaded %s", jsonConfigFile)
	return nil
}
