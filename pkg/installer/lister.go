package installer

import (
	"context"
	"io"
	"strings"

	"github.com/arthur-debert/droidsdk/pkg/catalog"
	"github.com/arthur-debert/droidsdk/pkg/errors"
	"github.com/arthur-debert/droidsdk/pkg/logging"
	"github.com/arthur-debert/droidsdk/pkg/paths"
	"github.com/rs/zerolog"
)

// Lister fetches a fresh package catalog from the package manager
type Lister struct {
	runner        Runner
	installerPath string
	sdkDir        string
	all           bool
	transcript    io.Writer
	logger        zerolog.Logger
}

// NewLister creates a Lister. With all set the listing includes obsolete
// and installed packages.
func NewLister(runner Runner, installerPath, sdkDir string, all bool) *Lister {
	return &Lister{
		runner:        runner,
		installerPath: installerPath,
		sdkDir:        sdkDir,
		all:           all,
		logger:        logging.GetLogger("lister"),
	}
}

// WithTranscript echoes the raw listing to w
func (l *Lister) WithTranscript(w io.Writer) *Lister {
	l.transcript = w
	return l
}

// Command returns the listing invocation
func (l *Lister) Command() Command {
	return Command{
		Path: l.installerPath,
		Args: ListArgs(l.all),
		Env:  map[string]string{paths.EnvSDKHome: l.sdkDir},
	}
}

// List runs the package manager and parses its output
func (l *Lister) List(ctx context.Context) (*catalog.Catalog, error) {
	cmd := l.Command()
	logging.LogCommand(cmd.Path, cmd.Args)

	result, err := l.runner.Run(ctx, cmd, l.transcript)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCatalogList, "failed to list SDK packages").
			WithDetail("stderr", strings.TrimSpace(string(result.Stderr)))
	}

	cat := catalog.Parse(string(result.Stdout))
	if cat.Skipped > 0 {
		l.logger.Debug().Int("skipped", cat.Skipped).Msg("Listing contained unparseable lines")
	}
	return cat, nil
}
