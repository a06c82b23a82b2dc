// Package sbom is the bridge between this tool and the external SPDX
// document generator. It builds the exact argument vector the delegate
// expects, spawns it as a child process, supervises the run, and reduces
// everything that can happen to a single GenerationOutcome value.
//
// The delegate does all the actual work (directory scanning, SPDX model
// construction, serialization); this package never interprets documents.
package sbom
