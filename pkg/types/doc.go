// Package types defines the small set of types and interfaces shared across
// droidsdk: the filesystem abstraction every component probes and writes
// through, and the outcome of a single installer interaction.
package types
