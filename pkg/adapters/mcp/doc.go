// Package mcp exposes tetration as a Model Context Protocol tool.
//
// The server registers one tool, "tetrate", and one resource describing the
// evaluator's limits. It runs over stdio or SSE.
package mcp
