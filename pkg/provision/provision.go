// Package provision ties the SDK components together into the install and
// update operations run by the build orchestrator.
//
// Install downloads and unpacks the SDK when the package manager is missing,
// reconciles the requested packages and publishes launchers. An OS level
// failure during that sequence discards the SDK directory and runs the whole
// sequence one more time.
package provision

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/arthur-debert/droidsdk/pkg/catalog"
	"github.com/arthur-debert/droidsdk/pkg/config"
	"github.com/arthur-debert/droidsdk/pkg/datastore"
	"github.com/arthur-debert/droidsdk/pkg/errors"
	"github.com/arthur-debert/droidsdk/pkg/fetch"
	"github.com/arthur-debert/droidsdk/pkg/installer"
	"github.com/arthur-debert/droidsdk/pkg/launcher"
	"github.com/arthur-debert/droidsdk/pkg/logging"
	"github.com/arthur-debert/droidsdk/pkg/paths"
	"github.com/arthur-debert/droidsdk/pkg/planner"
	"github.com/arthur-debert/droidsdk/pkg/probe"
	"github.com/arthur-debert/droidsdk/pkg/reconcile"
	"github.com/arthur-debert/droidsdk/pkg/types"
	"github.com/rs/zerolog"
)

// HAXMDir is where the SDK stores the Intel HAXM installer
const HAXMDir = "extras/intel/Hardware_Accelerated_Execution_Manager"

// Fetcher returns a local path for an archive URL
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// UnpackFunc extracts an archive into dest
type UnpackFunc func(fs types.FS, archive, dest string) error

// Dependencies are the collaborators a Provisioner works with. Zero
// values are replaced by the production implementations.
type Dependencies struct {
	FS      types.FS
	Paths   paths.Paths
	Fetcher Fetcher
	Unpack  UnpackFunc
	Runner  installer.Runner
	Spawner installer.Spawner
	// Verbose passes -v to the package manager
	Verbose bool
	// Transcript receives the package manager's output when set
	Transcript io.Writer
}

// Result describes a finished operation
type Result struct {
	// Launchers are the generated launcher paths
	Launchers []string
	Summary   *reconcile.Summary
	// Reinstalled is set when the SDK was discarded and installed again
	Reinstalled bool
	// Notices are messages for the user, printed after the operation
	Notices []string
}

// Provisioner installs and updates one SDK
type Provisioner struct {
	opts      *config.Options
	fs        types.FS
	paths     paths.Paths
	fetcher   Fetcher
	unpack    UnpackFunc
	prober    *probe.Prober
	markers   datastore.DataStore
	lister    *installer.Lister
	planner   *planner.Planner
	driver    *installer.Driver
	launchers *launcher.Writer
	logger    zerolog.Logger
}

// New creates a Provisioner for opts. FS and Paths are required.
func New(opts *config.Options, deps Dependencies) (*Provisioner, error) {
	if deps.FS == nil || deps.Paths == nil {
		return nil, errors.New(errors.ErrInternal, "provisioner needs a filesystem and paths")
	}
	if deps.Fetcher == nil {
		deps.Fetcher = fetch.New(deps.Paths.DownloadCache(), nil)
	}
	if deps.Unpack == nil {
		deps.Unpack = fetch.Unpack
	}
	if deps.Runner == nil {
		deps.Runner = installer.CmdRunner{}
	}
	if deps.Spawner == nil {
		deps.Spawner = installer.PTYSpawner{}
	}

	p := deps.Paths
	// -a has to be passed to the update when the listing used it, or the
	// indices would not line up
	all := opts.Installer.ListAll || opts.Force

	prober := probe.New(deps.FS, p.SDKDir())
	markers := datastore.New(deps.FS, p)
	lister := installer.NewLister(deps.Runner, p.InstallerPath(), p.SDKDir(), all)
	if deps.Transcript != nil {
		lister = lister.WithTranscript(deps.Transcript)
	}
	driver := installer.NewDriver(deps.Spawner, prober, installer.Options{
		InstallerPath: p.InstallerPath(),
		SDKDir:        p.SDKDir(),
		Flags:         installer.UpdateFlags{Verbose: deps.Verbose, All: all, DryRun: opts.DryRun},
		Force:         opts.Force,
		PromptTimeout: opts.Installer.PromptTimeout,
		Transcript:    deps.Transcript,
	})

	return &Provisioner{
		opts:      opts,
		fs:        deps.FS,
		paths:     p,
		fetcher:   deps.Fetcher,
		unpack:    deps.Unpack,
		prober:    prober,
		markers:   markers,
		lister:    lister,
		planner:   planner.New(prober, markers),
		driver:    driver,
		launchers: launcher.New(deps.FS, p),
		logger:    logging.GetLogger("provision"),
	}, nil
}

// Install provisions the SDK from scratch (or on top of an existing one)
func (p *Provisioner) Install(ctx context.Context) (*Result, error) {
	done := logging.LogOperationStart(p.logger, "install")
	defer done()

	res, err := p.installOnce(ctx)
	if err == nil {
		return p.finish(res), nil
	}
	if !errors.IsIOFailure(err) || ctx.Err() != nil {
		return nil, err
	}

	p.logger.Warn().Err(err).Str("sdk", p.paths.SDKDir()).Msg("Install failed, reinstalling the SDK from scratch")
	if rmErr := p.fs.RemoveAll(p.paths.SDKDir()); rmErr != nil {
		return nil, errors.Wrap(rmErr, errors.ErrSDKRemove, "failed to remove the SDK for a reinstall").
			WithDetail("sdk", p.paths.SDKDir())
	}

	res, err = p.installOnce(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.GetErrorCode(err), "reinstall failed")
	}
	res.Reinstalled = true
	return p.finish(res), nil
}

func (p *Provisioner) installOnce(ctx context.Context) (*Result, error) {
	if err := p.launchers.RemoveStale(); err != nil {
		return nil, err
	}
	if err := p.ensureSDK(ctx); err != nil {
		return nil, err
	}
	if _, err := p.launchers.Write(p.paths.InstallerPath()); err != nil {
		return nil, err
	}
	return p.reconcile(ctx)
}

// ensureSDK unpacks the distribution when the package manager is missing
// or force is set
func (p *Provisioner) ensureSDK(ctx context.Context) error {
	if p.hasInstaller() && !p.opts.Force {
		p.logger.Info().Str("sdk", p.paths.SDKDir()).Msg("SDK already unpacked")
		return nil
	}

	url, err := p.opts.SDKURL(p.paths.Platform())
	if err != nil {
		return err
	}
	archive, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return err
	}
	p.logger.Info().Str("dest", p.paths.InstallRoot()).Msg("Unpacking and configuring")
	return p.unpack(p.fs, archive, p.paths.InstallRoot())
}

func (p *Provisioner) hasInstaller() bool {
	_, err := p.fs.Stat(p.paths.InstallerPath())
	return err == nil
}

// reconcile installs the outstanding packages and regenerates launchers
func (p *Provisioner) reconcile(ctx context.Context) (*Result, error) {
	r := reconcile.New(p.lister, p.planner, p.driver, p.markers, p.opts.Desired(), p.opts.Installer.MaxAttempts)
	summary, err := r.Run(ctx)
	if err != nil {
		return nil, err
	}

	written, err := p.launchers.WriteAll()
	if err != nil {
		return nil, err
	}
	return &Result{Launchers: written, Summary: summary}, nil
}

// Update reconciles an existing SDK. Without a package manager it falls
// back to a full Install. With all set every installed package is updated
// first.
func (p *Provisioner) Update(ctx context.Context, all bool) (*Result, error) {
	if !p.hasInstaller() {
		p.logger.Info().Str("installer", p.paths.InstallerPath()).Msg("No SDK found, installing")
		return p.Install(ctx)
	}

	done := logging.LogOperationStart(p.logger, "update")
	defer done()

	if all {
		if _, err := p.driver.UpdateAll(ctx); err != nil {
			return nil, errors.Wrap(err, errors.ErrInstallIO, "failed to update installed packages")
		}
	}
	res, err := p.reconcile(ctx)
	if err != nil {
		return nil, err
	}
	return p.finish(res), nil
}

// InstallPackage installs one package by title. api selects the API level
// for API scoped packages and filters pre-17 build tools.
func (p *Provisioner) InstallPackage(ctx context.Context, title, api string) ([]types.Outcome, error) {
	kind, err := probe.KindForTitle(title)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrUnknownKind, "unable to install %s, check the package name", title)
	}

	if kind == probe.KindBuildTools && api != "" {
		if level, convErr := strconv.Atoi(api); convErr == nil && level < planner.MinBuildToolsAPI {
			p.logger.Info().Str("api", api).Str("package", title).Msg("Skipping, build tools do not exist before API 17")
			return nil, nil
		}
	}

	if !p.hasInstaller() {
		return nil, errors.Newf(errors.ErrInstallerGone, "no package manager at %s, run install first", p.paths.InstallerPath())
	}

	cat, err := p.lister.List(ctx)
	if err != nil {
		return nil, err
	}

	var entries []catalog.Entry
	if kind.APIScoped() {
		if api == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, "%s needs an API level", title)
		}
		if e, ok := cat.ForAPI(api, title); ok {
			entries = append(entries, e)
		}
	} else {
		entries = cat.Global(title)
	}
	if len(entries) == 0 {
		if p.prober.IsInstalled(kind, api) {
			return []types.Outcome{types.OutcomeAlreadyPresent}, nil
		}
		return nil, errors.Newf(errors.ErrPackageNotFound, "%s is not in the package list", title).
			WithDetail("api", api)
	}

	var outcomes []types.Outcome
	for _, e := range entries {
		outcome, err := p.driver.Install(ctx, e)
		if err != nil {
			return outcomes, errors.Wrapf(err, errors.ErrInstallIO, "failed to install %s", e)
		}
		outcomes = append(outcomes, outcome)
	}
	if _, err := p.launchers.WriteAll(); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}

// Plan lists the catalog and returns it with the outstanding entries
func (p *Provisioner) Plan(ctx context.Context) (*catalog.Catalog, []catalog.Entry, error) {
	cat, err := p.lister.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	return cat, p.planner.Plan(p.opts.Desired(), cat), nil
}

func (p *Provisioner) finish(res *Result) *Result {
	if res.Summary != nil {
		for _, e := range res.Summary.Abandoned {
			res.Notices = append(res.Notices,
				fmt.Sprintf("Gave up on %s after repeated timeouts, run again to retry", e))
		}
		for _, e := range res.Summary.Failed {
			res.Notices = append(res.Notices, fmt.Sprintf("Failed to install %s, run again to retry", e))
		}
	}
	if p.requestedHAXM() {
		res.Notices = append(res.Notices,
			"If you installed the Intel x86 Emulator Accelerator package, you will find the installer in "+
				filepath.Join(p.paths.SDKDir(), HAXMDir))
	}
	return res
}

func (p *Provisioner) requestedHAXM() bool {
	for _, fragment := range p.opts.OtherPackages {
		f := strings.ToLower(fragment)
		if strings.Contains(f, "haxm") || strings.Contains(f, "emulator accelerator") {
			return true
		}
	}
	return false
}
