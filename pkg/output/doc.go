// Package output renders droidsdk's command results.
//
// Text output is styled with lipgloss (see the styles subpackage) and is
// plain when colors are disabled. The package list can also be rendered as
// YAML for scripts.
package output
