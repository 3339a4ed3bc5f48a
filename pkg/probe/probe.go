// Package probe decides whether an SDK package is already installed by
// looking for a marker path under the SDK root.
package probe

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/droidsdk/pkg/catalog"
	"github.com/arthur-debert/droidsdk/pkg/errors"
	"github.com/arthur-debert/droidsdk/pkg/logging"
	"github.com/arthur-debert/droidsdk/pkg/types"
	"github.com/rs/zerolog"
)

// Prober checks installed state against one SDK root
type Prober struct {
	fs     types.FS
	sdkDir string
	logger zerolog.Logger
}

// New creates a Prober for the SDK installed at sdkDir
func New(fs types.FS, sdkDir string) *Prober {
	return &Prober{
		fs:     fs,
		sdkDir: sdkDir,
		logger: logging.GetLogger("probe"),
	}
}

// Resolve returns the path a kind's rule resolves to for param, before
// glob expansion
func (p *Prober) Resolve(kind Kind, param string) (string, error) {
	tmpl, ok := ruleFor(kind)
	if !ok {
		return "", errors.Newf(errors.ErrUnknownKind, "no install check for kind %d", int(kind))
	}
	path := strings.Replace(tmpl, "%s", param, 1)
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.sdkDir, filepath.FromSlash(path))
	}
	return path, nil
}

// IsInstalled reports whether the package of the given kind is present.
// A glob rule is satisfied by its first match; no match means absent.
func (p *Prober) IsInstalled(kind Kind, param string) bool {
	path, err := p.Resolve(kind, param)
	if err != nil {
		return false
	}

	if strings.Contains(path, "*") {
		matches, err := p.fs.Glob(path)
		if err != nil || len(matches) == 0 {
			p.logger.Trace().Str("kind", kind.String()).Str("pattern", path).Msg("No match")
			return false
		}
		path = matches[0]
	}

	_, err = p.fs.Stat(path)
	present := err == nil
	p.logger.Trace().
		Str("kind", kind.String()).
		Str("path", path).
		Bool("present", present).
		Msg("Checked install marker")
	return present
}

// IsEntryInstalled probes a catalog entry. Global kinds are probed with the
// entry's revision and API kinds with its API level.
func (p *Prober) IsEntryInstalled(e catalog.Entry) (bool, error) {
	kind, err := KindForTitle(e.Title)
	if err != nil {
		return false, err
	}
	param := e.Revision
	if kind.APIScoped() {
		param = e.API
	}
	return p.IsInstalled(kind, param), nil
}
