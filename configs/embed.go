// Package configs provides the embedded configuration template for
// subdeck. Embedding at build time keeps `subdeck init` self-contained:
// the template ships inside the binary, whether installed from source or
// a release archive.
package configs

import _ "embed"

// ConfigTemplate is the annotated template written by `subdeck init` as
// .subdeck.yaml. Values mirror the built-in defaults; see
// internal/config for the load order (defaults, file, SUBDECK_* env).
//
//go:embed subdeck.example.yaml
var ConfigTemplate string
