package fetch

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/droidsdk/pkg/errors"
	"github.com/arthur-debert/droidsdk/pkg/logging"
	"github.com/arthur-debert/droidsdk/pkg/types"
	"github.com/ulikunitz/xz"
)

// Format is an archive format
type Format int

const (
	FormatUnknown Format = iota
	FormatZip
	FormatTarGz
	FormatTarXz
)

func (f Format) String() string {
	switch f {
	case FormatZip:
		return "zip"
	case FormatTarGz:
		return "tar.gz"
	case FormatTarXz:
		return "tar.xz"
	}
	return "unknown"
}

// DetectFormat picks the archive format from a file name
func DetectFormat(name string) (Format, error) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		return FormatZip, nil
	case strings.HasSuffix(lower, ".tgz"), strings.HasSuffix(lower, ".tar.gz"):
		return FormatTarGz, nil
	case strings.HasSuffix(lower, ".txz"), strings.HasSuffix(lower, ".tar.xz"):
		return FormatTarXz, nil
	}
	return FormatUnknown, errors.Newf(errors.ErrUnpack, "unsupported archive format %s", filepath.Base(name))
}

// Unpack extracts the archive at archivePath into dest on fsys. Entries that
// would land outside dest are rejected.
func Unpack(fsys types.FS, archivePath, dest string) error {
	logger := logging.GetLogger("fetch")

	format, err := DetectFormat(archivePath)
	if err != nil {
		return err
	}
	if err := fsys.MkdirAll(dest, 0755); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "failed to create install directory").
			WithDetail("path", dest)
	}

	logger.Info().Str("archive", archivePath).Str("dest", dest).Stringer("format", format).Msg("Unpacking")

	switch format {
	case FormatZip:
		err = unzip(fsys, archivePath, dest)
	default:
		err = untarFile(fsys, archivePath, dest, format)
	}
	if err != nil {
		return err
	}
	logger.Debug().Str("dest", dest).Msg("Unpacked")
	return nil
}

func untarFile(fsys types.FS, archivePath, dest string, format Format) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrUnpack, "failed to open %s", archivePath)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader
	switch format {
	case FormatTarGz:
		gz, err := gzip.NewReader(f)
		if err != nil {
			return errors.Wrap(err, errors.ErrUnpack, "failed to create gzip reader")
		}
		defer func() { _ = gz.Close() }()
		r = gz
	case FormatTarXz:
		xzr, err := xz.NewReader(f)
		if err != nil {
			return errors.Wrap(err, errors.ErrUnpack, "failed to create xz reader")
		}
		r = xzr
	}
	return untar(fsys, tar.NewReader(r), dest)
}

func untar(fsys types.FS, tr *tar.Reader, dest string) error {
	logger := logging.GetLogger("fetch")
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, errors.ErrUnpack, "error reading tar")
		}

		target, err := safeJoin(dest, hdr.Name)
		if err != nil {
			return err
		}
		mode := fs.FileMode(hdr.Mode).Perm()
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := fsys.MkdirAll(target, mode|0700); err != nil {
				return errors.Wrapf(err, errors.ErrUnpack, "failed to create dir %s", target)
			}
		case tar.TypeReg:
			if err := writeEntry(fsys, target, tr, mode); err != nil {
				return err
			}
		default:
			logger.Debug().Str("name", hdr.Name).Msg("Skipping unsupported tar entry")
		}
	}
}

func unzip(fsys types.FS, archivePath, dest string) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrUnpack, "failed to open %s", archivePath)
	}
	defer func() { _ = zr.Close() }()

	for _, zf := range zr.File {
		target, err := safeJoin(dest, zf.Name)
		if err != nil {
			return err
		}
		if zf.FileInfo().IsDir() {
			if err := fsys.MkdirAll(target, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrUnpack, "failed to create dir %s", target)
			}
			continue
		}

		rc, err := zf.Open()
		if err != nil {
			return errors.Wrapf(err, errors.ErrUnpack, "failed to read %s", zf.Name)
		}
		mode := zf.Mode().Perm()
		if mode == 0 {
			mode = 0644
		}
		err = writeEntry(fsys, target, rc, mode)
		_ = rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func writeEntry(fsys types.FS, target string, r io.Reader, mode fs.FileMode) error {
	if err := fsys.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrUnpack, "failed to create parent dir of %s", target)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrapf(err, errors.ErrUnpack, "failed to read %s", target)
	}
	if err := fsys.WriteFile(target, data, mode); err != nil {
		return errors.Wrapf(err, errors.ErrUnpack, "failed to write %s", target)
	}
	// WriteFile leaves the mode of existing files alone
	if err := fsys.Chmod(target, mode); err != nil {
		return errors.Wrapf(err, errors.ErrUnpack, "failed to chmod %s", target)
	}
	return nil
}

func safeJoin(dest, name string) (string, error) {
	target := filepath.Join(dest, name)
	rel, err := filepath.Rel(dest, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Newf(errors.ErrUnpack, "archive entry %s escapes the install directory", name).
			WithDetail("dest", dest)
	}
	return target, nil
}
