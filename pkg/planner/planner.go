// Package planner computes which catalog entries still need installing.
//
// The plan is ordered by precedence: baseline tools, the support library,
// per-API platforms and build tools, system images, then free-text extras.
// Entries are not deduplicated; a build-tools revision selected by both the
// baseline and an API level appears twice and is installed once, because
// the second attempt finds it present.
package planner

import (
	"strconv"
	"strings"

	"github.com/arthur-debert/droidsdk/pkg/catalog"
	"github.com/arthur-debert/droidsdk/pkg/config"
	"github.com/arthur-debert/droidsdk/pkg/logging"
	"github.com/arthur-debert/droidsdk/pkg/paths"
	"github.com/arthur-debert/droidsdk/pkg/probe"
	"github.com/rs/zerolog"
)

// MinBuildToolsAPI is the first API level that shipped build tools
const MinBuildToolsAPI = 17

// API17 is the level whose system images are tracked with a marker
const API17 = "17"

// InstallChecker reports installed state; *probe.Prober implements it
type InstallChecker interface {
	IsInstalled(kind probe.Kind, param string) bool
	IsEntryInstalled(e catalog.Entry) (bool, error)
}

// MarkerChecker reports whether a completion marker exists
type MarkerChecker interface {
	HasMarker(name string) (bool, error)
}

// Planner selects the outstanding entries of a catalog
type Planner struct {
	checker InstallChecker
	markers MarkerChecker
	logger  zerolog.Logger
}

// New creates a Planner
func New(checker InstallChecker, markers MarkerChecker) *Planner {
	return &Planner{
		checker: checker,
		markers: markers,
		logger:  logging.GetLogger("planner"),
	}
}

// Plan returns the entries of cat that desired asks for and that are not
// installed yet, in install order
func (p *Planner) Plan(desired config.Desired, cat *catalog.Catalog) []catalog.Entry {
	var plan []catalog.Entry

	// Baseline: skip_checks forces these through
	for _, title := range []string{probe.TitleSDKTools, probe.TitlePlatformTools, probe.TitleBuildTools, probe.TitleSupportLibrary} {
		for _, e := range cat.Global(title) {
			if desired.SkipChecks || !p.installed(e) {
				plan = append(plan, e)
			}
		}
	}

	for _, api := range desired.APIs {
		plan = append(plan, p.apiPackages(api, cat)...)
	}

	for _, api := range desired.APIs {
		plan = append(plan, p.systemImages(api, desired.Images, cat)...)
	}

	for _, fragment := range desired.OtherPackages {
		matched := false
		for _, e := range cat.Entries() {
			if !strings.Contains(e.Title, fragment) {
				continue
			}
			matched = true
			if !p.installed(e) {
				plan = append(plan, e)
			}
		}
		if !matched {
			p.logger.Error().Str("package", fragment).Msg("No catalog entry matches extra package, skipping")
		}
	}

	p.logger.Debug().Int("entries", len(plan)).Msg("Computed plan")
	return plan
}

func (p *Planner) apiPackages(api string, cat *catalog.Catalog) []catalog.Entry {
	var out []catalog.Entry

	if e, ok := cat.ForAPI(api, probe.TitleSDKPlatform); ok {
		if !p.installed(e) {
			out = append(out, e)
		}
	} else {
		p.notListed(probe.KindSDKPlatform, api)
	}

	if level, err := strconv.Atoi(api); err != nil || level < MinBuildToolsAPI {
		p.logger.Info().Str("api", api).Msgf("Skipping %s for API %s, build tools start at API %d",
			probe.TitleBuildTools, api, MinBuildToolsAPI)
		return out
	}
	for _, e := range cat.Global(probe.TitleBuildTools) {
		if BuildToolsMatchAPI(e.Revision, api) && !p.installed(e) {
			out = append(out, e)
		}
	}
	return out
}

func (p *Planner) systemImages(api string, archs []string, cat *catalog.Catalog) []catalog.Entry {
	if len(archs) == 0 {
		return nil
	}
	if api == API17 && p.hasAPI17Marker() {
		p.logger.Debug().Msg("API 17 system images already installed")
		return nil
	}

	var out []catalog.Entry
	for _, arch := range archs {
		kind, ok := probe.ImageKinds[strings.ToLower(arch)]
		if !ok {
			p.logger.Warn().Str("arch", arch).Msg("Unknown system image architecture, skipping")
			continue
		}
		e, ok := cat.ForAPI(api, kind.Title())
		if !ok {
			p.notListed(kind, api)
			continue
		}
		if !p.installed(e) {
			out = append(out, e)
		}
	}
	return out
}

// notListed reports a requested package missing from the catalog. The
// listing omits installed packages, so that case is not an error.
func (p *Planner) notListed(kind probe.Kind, api string) {
	if p.checker.IsInstalled(kind, api) {
		p.logger.Debug().Str("api", api).Str("package", kind.Title()).Msg("Already installed")
		return
	}
	p.logger.Error().Str("api", api).Str("package", kind.Title()).Msg("Package not found in catalog")
}

func (p *Planner) hasAPI17Marker() bool {
	if p.markers == nil {
		return false
	}
	has, err := p.markers.HasMarker(paths.API17Marker)
	if err != nil {
		p.logger.Warn().Err(err).Msg("Cannot read API 17 marker")
		return false
	}
	return has
}

// installed consults the prober. Titles without an install check are
// never considered installed.
func (p *Planner) installed(e catalog.Entry) bool {
	present, err := p.checker.IsEntryInstalled(e)
	if err != nil {
		p.logger.Debug().Str("package", e.Title).Msg("No install check, keeping entry")
		return false
	}
	if present {
		p.logger.Debug().Str("package", e.String()).Msg("Already installed")
	}
	return present
}

// BuildToolsMatchAPI reports whether a build-tools revision belongs to an
// API level: "19.1" and "19" belong to 19, "1.9" does not
func BuildToolsMatchAPI(revision, api string) bool {
	return revision == api || strings.HasPrefix(revision, api+".")
}
