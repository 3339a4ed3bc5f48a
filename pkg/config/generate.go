package config

import (
	"strings"

	"github.com/arthur-debert/droidsdk/pkg/errors"
	gotoml "github.com/pelletier/go-toml/v2"
)

// sampleFile is what genconfig writes for a new part. List options are kept
// in the orchestrator's string form.
type sampleFile struct {
	Name          string            `toml:"name"`
	APIs          string            `toml:"apis"`
	SystemImages  string            `toml:"system_images"`
	OtherPackages string            `toml:"other_packages,multiline"`
	InstallDir    string            `toml:"install_dir"`
	SDK           string            `toml:"sdk"`
	DryRun        bool              `toml:"dry_run"`
	Force         bool              `toml:"force"`
	Directories   Directories       `toml:"directories"`
	Installer     sampleInstaller   `toml:"installer"`
	SDKURLs       map[string]string `toml:"sdk_urls"`
}

type sampleInstaller struct {
	PromptTimeout string `toml:"prompt_timeout"`
	MaxAttempts   int    `toml:"max_attempts"`
	ListAll       bool   `toml:"list_all"`
}

// GenerateConfigContent renders opts as a part file that Load reads back
func GenerateConfigContent(opts *Options) (string, error) {
	sample := sampleFile{
		Name:          opts.Name,
		APIs:          strings.Join(opts.APIs, " "),
		SystemImages:  strings.Join(opts.SystemImages, " "),
		OtherPackages: strings.Join(opts.OtherPackages, "\n"),
		InstallDir:    opts.InstallDir,
		SDK:           opts.SDK,
		DryRun:        opts.DryRun,
		Force:         opts.Force,
		Directories:   opts.Directories,
		Installer: sampleInstaller{
			PromptTimeout: opts.Installer.PromptTimeout.String(),
			MaxAttempts:   opts.Installer.MaxAttempts,
			ListAll:       opts.Installer.ListAll,
		},
		SDKURLs: opts.SDKURLs,
	}

	data, err := gotoml.Marshal(sample)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render config")
	}
	return "# droidsdk part configuration\n\n" + string(data), nil
}
