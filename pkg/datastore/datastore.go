package datastore

// DataStore manages droidsdk's completion markers
type DataStore interface {
	// HasMarker reports whether the named marker exists
	HasMarker(name string) (bool, error)

	// RecordMarker writes the named marker
	RecordMarker(name string) error
}
