// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/ClusterCockpit/cc-mdindex/pkg/mdindexerr"
)

// Validate checks instance (a raw JSON document) against schema, matching
// the teacher's internal/config.Validate: compile the schema string, parse
// the instance into an any, then run the schema's own Validate.
func Validate(schema string, instance json.RawMessage) error {
	sch, err := jsonschema.CompileString("cc-mdindex-config.json", schema)
	if err != nil {
		return fmt.Errorf("config.Validate: compiling schema: %w", err)
	}

	var v any
	if err := json.Unmarshal(instance, &v); err != nil {
		return fmt.Errorf("config.Validate: parsing instance: %w", err)
	}

	if err := sch.Validate(v); err != nil {
		return fmt.Errorf("config.Validate: %v: %w", err, mdindexerr.ErrInvalidArg)
	}
	return nil
}
