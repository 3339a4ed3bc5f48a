package paths

import (
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/droidsdk/pkg/errors"
)

// Environment variable names
const (
	// EnvSDKHome is exported to every installer invocation and launcher
	EnvSDKHome = "ANDROID_HOME"
)

// Layout constants. These mirror the SDK distribution and are not configurable.
const (
	// AppName is the directory name used under XDG locations
	AppName = "droidsdk"

	// DefaultPartName is the part name used when none is configured
	DefaultPartName = "android"

	// SDKDirPrefix prefixes the platform name in the SDK directory
	SDKDirPrefix = "android-sdk-"

	// ToolsDir holds the package manager and emulator
	ToolsDir = "tools"

	// PlatformToolsDir holds adb
	PlatformToolsDir = "platform-tools"

	// BuildToolsDir holds one directory per build-tools revision
	BuildToolsDir = "build-tools"

	// InstallerName is the SDK package manager executable
	InstallerName = "android"

	// API17Marker records that the API 17 system images were installed
	API17Marker = ".installed_api17"
)

// Host platform names as used by the SDK distribution
const (
	PlatformLinux   = "linux"
	PlatformMacOSX  = "macosx"
	PlatformWindows = "windows"
)

// HostPlatform maps a GOOS value to the SDK platform name
func HostPlatform(goos string) (string, error) {
	switch goos {
	case "linux":
		return PlatformLinux, nil
	case "darwin":
		return PlatformMacOSX, nil
	case "windows":
		return PlatformWindows, nil
	}
	return "", errors.Newf(errors.ErrUnsupportedPlatform, "can't guess your platform %q", goos).
		WithDetail("goos", goos)
}

// Options selects the directories a part is laid out in. Empty fields fall
// back to defaults.
type Options struct {
	PartName      string
	PartsDir      string
	BinDir        string
	DownloadCache string
	InstallDir    string
	// GOOS overrides runtime.GOOS, for tests
	GOOS string
}

// Paths resolves every location droidsdk reads or writes
type Paths interface {
	Platform() string
	PartName() string
	PartDir() string
	InstallRoot() string
	SDKDir() string
	ToolsDir() string
	InstallerPath() string
	PlatformToolsDir() string
	BuildToolsDir() string
	BinDir() string
	DownloadCache() string
	MarkerPath(name string) string
}

type paths struct {
	platform      string
	partName      string
	partsDir      string
	binDir        string
	downloadCache string
	installDir    string
}

// New creates a Paths for the host (or opts.GOOS) platform
func New(opts Options) (Paths, error) {
	goos := opts.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	platform, err := HostPlatform(goos)
	if err != nil {
		return nil, err
	}

	p := &paths{
		platform:      platform,
		partName:      opts.PartName,
		partsDir:      opts.PartsDir,
		binDir:        opts.BinDir,
		downloadCache: opts.DownloadCache,
		installDir:    opts.InstallDir,
	}
	if p.partName == "" {
		p.partName = DefaultPartName
	}
	if p.partsDir == "" {
		p.partsDir = filepath.Join(xdg.DataHome, AppName, "parts")
	}
	if p.binDir == "" {
		p.binDir = filepath.Join(xdg.DataHome, AppName, "bin")
	}
	if p.downloadCache == "" {
		p.downloadCache = filepath.Join(xdg.CacheHome, AppName, "downloads")
	}
	return p, nil
}

func (p *paths) Platform() string { return p.platform }

func (p *paths) PartName() string { return p.partName }

// PartDir is the part's own directory inside the parts directory
func (p *paths) PartDir() string {
	return filepath.Join(p.partsDir, p.partName)
}

// InstallRoot is where the SDK archive is unpacked: install_dir if set,
// otherwise the part directory
func (p *paths) InstallRoot() string {
	if p.installDir != "" {
		return p.installDir
	}
	return p.PartDir()
}

func (p *paths) SDKDir() string {
	return filepath.Join(p.InstallRoot(), SDKDirPrefix+p.platform)
}

func (p *paths) ToolsDir() string {
	return filepath.Join(p.SDKDir(), ToolsDir)
}

func (p *paths) InstallerPath() string {
	name := InstallerName
	if p.platform == PlatformWindows {
		name += ".bat"
	}
	return filepath.Join(p.ToolsDir(), name)
}

func (p *paths) PlatformToolsDir() string {
	return filepath.Join(p.SDKDir(), PlatformToolsDir)
}

func (p *paths) BuildToolsDir() string {
	return filepath.Join(p.SDKDir(), BuildToolsDir)
}

func (p *paths) BinDir() string { return p.binDir }

func (p *paths) DownloadCache() string { return p.downloadCache }

// MarkerPath returns the path of a completion marker. Markers live in the
// SDK directory so that discarding the SDK also discards them.
func (p *paths) MarkerPath(name string) string {
	return filepath.Join(p.SDKDir(), name)
}
