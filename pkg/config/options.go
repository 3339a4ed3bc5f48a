package config

import (
	"regexp"
	"strings"
	"time"

	"github.com/arthur-debert/droidsdk/pkg/errors"
)

// Fields is a whitespace separated option value
type Fields []string

// Lines is a newline separated option value
type Lines []string

// Options holds every setting of one droidsdk part
type Options struct {
	Name          string      `koanf:"name" toml:"name"`
	APIs          Fields      `koanf:"apis" toml:"apis"`
	SystemImages  Fields      `koanf:"system_images" toml:"system_images"`
	OtherPackages Lines       `koanf:"other_packages" toml:"other_packages"`
	InstallDir    string      `koanf:"install_dir" toml:"install_dir"`
	SDK           string      `koanf:"sdk" toml:"sdk"`
	DryRun        bool        `koanf:"dry_run" toml:"dry_run"`
	Force         bool        `koanf:"force" toml:"force"`
	Directories   Directories `koanf:"directories" toml:"directories"`
	Installer     Installer   `koanf:"installer" toml:"installer"`
	// SDKURLs maps a host platform name to its distribution archive
	SDKURLs map[string]string `koanf:"sdk_urls" toml:"sdk_urls"`
}

// Directories are provided by the orchestrator
type Directories struct {
	Parts         string `koanf:"parts" toml:"parts"`
	Bin           string `koanf:"bin" toml:"bin"`
	DownloadCache string `koanf:"download_cache" toml:"download_cache"`
}

// Installer tunes the package manager driver
type Installer struct {
	PromptTimeout time.Duration `koanf:"prompt_timeout" toml:"prompt_timeout"`
	MaxAttempts   int           `koanf:"max_attempts" toml:"max_attempts"`
	ListAll       bool          `koanf:"list_all" toml:"list_all"`
}

// Desired is the immutable description of what a run should install
type Desired struct {
	APIs          []string
	Images        []string
	OtherPackages []string
	SkipChecks    bool
}

// KnownArchitectures are the accepted system_images values
var KnownArchitectures = []string{"arm", "intel", "mips"}

var apiLevel = regexp.MustCompile(`^\d+$`)

// Validate rejects options that cannot produce a meaningful plan
func (o *Options) Validate() error {
	for _, api := range o.APIs {
		if !apiLevel.MatchString(api) {
			return errors.Newf(errors.ErrConfigValid, "API level %q is not a number", api).
				WithDetail("api", api)
		}
	}
	for _, arch := range o.SystemImages {
		if !isKnownArch(arch) {
			return errors.Newf(errors.ErrConfigValid, "unknown system image %q, expected one of %s",
				arch, strings.Join(KnownArchitectures, ", ")).
				WithDetail("arch", arch)
		}
	}
	if o.Installer.PromptTimeout <= 0 {
		return errors.New(errors.ErrConfigValid, "installer.prompt_timeout must be positive")
	}
	if o.Installer.MaxAttempts < 1 {
		return errors.New(errors.ErrConfigValid, "installer.max_attempts must be at least 1")
	}
	return nil
}

// Desired returns the install request described by the options.
// Architectures are lower-cased.
func (o *Options) Desired() Desired {
	images := make([]string, len(o.SystemImages))
	for i, arch := range o.SystemImages {
		images[i] = strings.ToLower(arch)
	}
	return Desired{
		APIs:          append([]string(nil), o.APIs...),
		Images:        images,
		OtherPackages: append([]string(nil), o.OtherPackages...),
		SkipChecks:    o.Force,
	}
}

// SDKURL returns the distribution archive for platform. An explicit sdk
// option wins over the per-platform defaults.
func (o *Options) SDKURL(platform string) (string, error) {
	if o.SDK != "" {
		return o.SDK, nil
	}
	if url, ok := o.SDKURLs[platform]; ok && url != "" {
		return url, nil
	}
	return "", errors.Newf(errors.ErrConfigValid, "no SDK download URL for platform %s", platform).
		WithDetail("platform", platform)
}

func isKnownArch(arch string) bool {
	for _, known := range KnownArchitectures {
		if strings.EqualFold(arch, known) {
			return true
		}
	}
	return false
}
