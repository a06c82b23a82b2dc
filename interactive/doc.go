// Package interactive provides a full-screen terminal user interface (TUI)
// for browsing the state of this sdg installation.
//
// This package shares its theme and step tracking with the pretty package
// dashboards, so generation runs and browsing look like one tool.
//
// The TUI provides:
//   - Run history view backed by the run journal
//   - Format browser for the supported document formats
//   - Diagnostics view running the installation health checks live
//
// Launch with: sdg interactive (or sdg ui)
package interactive
