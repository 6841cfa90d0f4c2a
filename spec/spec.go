// Package spec embeds the OpenAPI description of the Work 2.0 JSON API,
// served at /openapi.yaml.
package spec

import _ "embed"

// OpenAPI contains the raw bytes of openapi.yaml, embedded at compile time
// so the served document ships with the binary.
//
//go:embed openapi.yaml
var OpenAPI []byte
