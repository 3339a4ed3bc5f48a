// Package datastore records completion markers for a provisioned SDK.
//
// A marker is a small file in the SDK directory whose presence means a step
// has already been carried out. Markers exist for packages whose installed
// state cannot be probed reliably, such as the API 17 system images that
// the package manager keeps listing after they are installed. Because they
// live inside the SDK directory, discarding the SDK discards them too.
package datastore
