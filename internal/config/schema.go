// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

// configSchema validates the demo CLI's JSON config before it is decoded
// into Keys, matching the teacher's internal/config/schema.go pattern of
// an inline JSON-schema string compiled and checked ahead of json.Decode.
var configSchema = `
{
  "type": "object",
  "properties": {
    "addr": {
      "description": "Address the introspection HTTP server listens on (for example ':8090').",
      "type": "string"
    },
    "rtree-dims": {
      "description": "Number of dimensions D for the demo R-tree.",
      "type": "integer",
      "minimum": 1
    },
    "rtree-max-entries": {
      "description": "Maximum entries per R-tree directory (M).",
      "type": "integer",
      "minimum": 2
    },
    "rtree-min-entries": {
      "description": "Minimum entries per R-tree directory (m, must satisfy 2m <= M+1).",
      "type": "integer",
      "minimum": 1
    },
    "rtree-forced-reinsertion": {
      "description": "Whether the demo R-tree uses R*-tree forced reinsertion.",
      "type": "boolean"
    },
    "fst-min": {
      "description": "Lower bound (inclusive) of the demo flat segment tree's key axis.",
      "type": "integer"
    },
    "fst-max": {
      "description": "Upper bound (exclusive) of the demo flat segment tree's key axis.",
      "type": "integer"
    }
  },
  "required": ["addr"]
}
`
