package datastore

import (
	"os"

	"github.com/arthur-debert/droidsdk/pkg/errors"
	"github.com/arthur-debert/droidsdk/pkg/paths"
	"github.com/arthur-debert/droidsdk/pkg/types"
)

// MarkerContent is written into every marker file
const MarkerContent = "true"

type filesystemDataStore struct {
	fs    types.FS
	paths paths.Paths
}

// New creates a new DataStore that keeps markers in the SDK directory
func New(fs types.FS, paths paths.Paths) DataStore {
	return &filesystemDataStore{
		fs:    fs,
		paths: paths,
	}
}

func (s *filesystemDataStore) HasMarker(name string) (bool, error) {
	path := s.paths.MarkerPath(name)
	_, err := s.fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to check marker %s", name).
		WithDetail("path", path)
}

func (s *filesystemDataStore) RecordMarker(name string) error {
	if err := s.fs.MkdirAll(s.paths.SDKDir(), 0755); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "failed to create SDK directory")
	}
	path := s.paths.MarkerPath(name)
	if err := s.fs.WriteFile(path, []byte(MarkerContent), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrMarkerWrite, "failed to write marker %s", name).
			WithDetail("path", path)
	}
	return nil
}
