// Package launcher writes the wrapper scripts that expose SDK executables
// in the shared bin directory. Every wrapper exports ANDROID_HOME and
// forwards its arguments:
//
//	#!/bin/bash
//
//	export ANDROID_HOME=<sdk>
//	<sdk>/platform-tools/adb "$@"
package launcher

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/droidsdk/pkg/errors"
	"github.com/arthur-debert/droidsdk/pkg/logging"
	"github.com/arthur-debert/droidsdk/pkg/paths"
	"github.com/arthur-debert/droidsdk/pkg/types"
	"github.com/hashicorp/go-version"
	"github.com/rs/zerolog"
)

const template = "#!/bin/bash\n\nexport %s=%s\n%s \"$@\"\n"

// execBits are added to every launcher's mode
const execBits os.FileMode = 0111

// ToolBinaries live in tools/
var ToolBinaries = []string{paths.InstallerName, "emulator", "uiautomatorviewer", "lint"}

// PlatformToolBinaries live in platform-tools/
var PlatformToolBinaries = []string{"adb"}

// BuildToolBinaries are taken from the newest build-tools revision
var BuildToolBinaries = []string{"aapt", "dx", "zipalign"}

// Writer creates launchers for one SDK
type Writer struct {
	fs     types.FS
	paths  paths.Paths
	logger zerolog.Logger
}

// New creates a launcher Writer
func New(fs types.FS, p paths.Paths) *Writer {
	return &Writer{fs: fs, paths: p, logger: logging.GetLogger("launcher")}
}

// Render returns the launcher script for binary
func (w *Writer) Render(binary string) string {
	return fmt.Sprintf(template, paths.EnvSDKHome, w.paths.SDKDir(), binary)
}

// Path returns where the launcher for binary is written
func (w *Writer) Path(binary string) string {
	return filepath.Join(w.paths.BinDir(), filepath.Base(binary))
}

// Write creates or replaces the launcher for binary and returns its path
func (w *Writer) Write(binary string) (string, error) {
	dst := w.Path(binary)
	if err := w.fs.MkdirAll(w.paths.BinDir(), 0755); err != nil {
		return "", errors.Wrap(err, errors.ErrDirCreate, "failed to create bin directory").
			WithDetail("path", w.paths.BinDir())
	}
	if err := w.fs.WriteFile(dst, []byte(w.Render(binary)), 0644); err != nil {
		return "", errors.Wrapf(err, errors.ErrLauncherWrite, "failed to write launcher %s", dst)
	}
	info, err := w.fs.Stat(dst)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrLauncherWrite, "failed to stat launcher %s", dst)
	}
	if err := w.fs.Chmod(dst, info.Mode().Perm()|execBits); err != nil {
		return "", errors.Wrapf(err, errors.ErrLauncherWrite, "failed to make launcher %s executable", dst)
	}
	w.logger.Debug().Str("launcher", dst).Str("binary", binary).Msg("Wrote launcher")
	return dst, nil
}

// Binaries returns the SDK executables that get a launcher. Build tools are
// only included once a build-tools revision is installed.
func (w *Writer) Binaries() []string {
	var bins []string
	for _, name := range ToolBinaries {
		bins = append(bins, filepath.Join(w.paths.ToolsDir(), name))
	}
	for _, name := range PlatformToolBinaries {
		bins = append(bins, filepath.Join(w.paths.PlatformToolsDir(), name))
	}

	dir, err := NewestBuildTools(w.fs, w.paths.BuildToolsDir())
	if err != nil {
		w.logger.Debug().Err(err).Msg("No build tools for launchers")
		return bins
	}
	for _, name := range BuildToolBinaries {
		bins = append(bins, filepath.Join(dir, name))
	}
	return bins
}

// WriteAll writes launchers for every binary and returns their paths
func (w *Writer) WriteAll() ([]string, error) {
	var written []string
	for _, bin := range w.Binaries() {
		dst, err := w.Write(bin)
		if err != nil {
			return written, err
		}
		written = append(written, dst)
	}
	return written, nil
}

// RemoveStale deletes launchers left by a previous install
func (w *Writer) RemoveStale() error {
	names := append(append(append([]string(nil), ToolBinaries...), PlatformToolBinaries...), BuildToolBinaries...)
	for _, name := range names {
		dst := w.Path(name)
		if err := w.fs.Remove(dst); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to remove launcher %s", dst)
		}
	}
	return nil
}

// NewestBuildTools returns the build-tools directory with the highest
// version. Directories whose names are not versions are ignored.
func NewestBuildTools(fs types.FS, buildToolsDir string) (string, error) {
	entries, err := fs.ReadDir(buildToolsDir)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrNotFound, "no build-tools directory")
	}

	var (
		newest     *version.Version
		newestName string
	)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		v, err := version.NewVersion(entry.Name())
		if err != nil {
			continue
		}
		if newest == nil || v.GreaterThan(newest) {
			newest, newestName = v, entry.Name()
		}
	}
	if newest == nil {
		return "", errors.New(errors.ErrNotFound, "no versioned build-tools directory")
	}
	return filepath.Join(buildToolsDir, newestName), nil
}
