// Package fetch downloads the SDK distribution into a local cache and
// unpacks it. Archives are cached by URL so reinstalling after a failure
// does not download again.
//
// Supported archive formats are zip, gzip compressed tar (.tgz, .tar.gz) and
// xz compressed tar (.txz, .tar.xz).
package fetch
