// Package http serves tetration over a small JSON API.
//
// POST /tetrate takes {"base": "...", "height": "..."} as decimal strings, validates
// the body against the embedded OpenAPI document and answers with the exact value.
// /healthz, /openapi.yaml and /metrics are also mounted.
package http
