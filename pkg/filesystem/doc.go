// Package filesystem provides filesystem implementations for droidsdk.
//
// This package contains implementations of the types.FS interface: the
// standard OS filesystem used at runtime and an afero-backed filesystem
// used by tests that build fake SDK trees in memory.
package filesystem
