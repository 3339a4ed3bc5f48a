package installer

import (
	"context"
	"io"
	"regexp"
	"time"

	"github.com/arthur-debert/droidsdk/pkg/catalog"
	"github.com/arthur-debert/droidsdk/pkg/errors"
	"github.com/arthur-debert/droidsdk/pkg/logging"
	"github.com/arthur-debert/droidsdk/pkg/paths"
	"github.com/arthur-debert/droidsdk/pkg/types"
	"github.com/rs/zerolog"
)

// Output patterns of the package manager
var (
	PromptPattern = regexp.MustCompile(`\[y/n\]`)
	NoOpPattern   = regexp.MustCompile(regexp.QuoteMeta(noOpText))
)

// noOpText is the literal NoOpPattern matches
const noOpText = "Warning: The package filter removed all packages"

// keepTail is how much unmatched output is kept, enough for a match that
// straddles two reads
const keepTail = len(noOpText) - 1

// Answer is sent to every confirmation prompt
const Answer = "y\n"

// DefaultPromptTimeout bounds the silence between two prompts
const DefaultPromptTimeout = 15 * time.Minute

// EntryChecker reports whether a catalog entry is installed
type EntryChecker interface {
	IsEntryInstalled(e catalog.Entry) (bool, error)
}

// Options configures a Driver
type Options struct {
	InstallerPath string
	SDKDir        string
	Flags         UpdateFlags
	// Force installs entries the checker reports as present
	Force         bool
	PromptTimeout time.Duration
	// Transcript receives the raw installer output when set
	Transcript io.Writer
}

// Driver installs catalog entries one at a time
type Driver struct {
	spawner Spawner
	checker EntryChecker
	opts    Options
	logger  zerolog.Logger
}

// NewDriver creates a Driver. checker may be nil to always install.
func NewDriver(spawner Spawner, checker EntryChecker, opts Options) *Driver {
	if opts.PromptTimeout <= 0 {
		opts.PromptTimeout = DefaultPromptTimeout
	}
	return &Driver{
		spawner: spawner,
		checker: checker,
		opts:    opts,
		logger:  logging.GetLogger("installer"),
	}
}

// Command returns the update invocation for index; an empty index updates
// everything
func (d *Driver) Command(index string) Command {
	return Command{
		Path: d.opts.InstallerPath,
		Args: UpdateArgs(d.opts.Flags, index),
		Env:  map[string]string{paths.EnvSDKHome: d.opts.SDKDir},
	}
}

// Install installs one entry. It returns OutcomeAlreadyPresent without
// starting the installer when the entry is present and force is off.
func (d *Driver) Install(ctx context.Context, e catalog.Entry) (types.Outcome, error) {
	if !d.opts.Force && d.checker != nil {
		present, err := d.checker.IsEntryInstalled(e)
		if err == nil && present {
			d.logger.Info().Str("package", e.String()).Msg("Already installed")
			return types.OutcomeAlreadyPresent, nil
		}
	}

	d.logger.Info().Str("package", e.String()).Str("index", e.Index).Msg("Installing")
	return d.run(ctx, d.Command(e.Index))
}

// UpdateAll updates every installed package
func (d *Driver) UpdateAll(ctx context.Context) (types.Outcome, error) {
	d.logger.Info().Msg("Updating all installed packages")
	return d.run(ctx, d.Command(""))
}

func (d *Driver) run(ctx context.Context, cmd Command) (types.Outcome, error) {
	logging.LogCommand(cmd.Path, cmd.Args)

	session, err := d.spawner.Spawn(ctx, cmd)
	if err != nil {
		return types.OutcomeTimedOut, err
	}
	defer func() { _ = session.Close() }()

	outcome, runErr := d.interact(ctx, session)

	// Always reap the process so it cannot keep the terminal or the SDK
	// lock files
	if waitErr := session.Wait(); waitErr != nil && outcome != types.OutcomeTimedOut {
		d.logger.Debug().Err(waitErr).Msg("Installer exited with error")
	}
	d.logger.Debug().Str("outcome", outcome.String()).Msg("Installer finished")
	return outcome, runErr
}

// watchState is the state of the prompt watching loop
type watchState int

const (
	stateWatching watchState = iota
	stateAnswering
	stateNoOp
	stateExited
	stateTimedOut
	stateFailed
)

type chunk struct {
	data []byte
	err  error
}

// interact runs the prompt watching state machine until a terminal state.
// Matches are taken in output order; the timer restarts after every match.
func (d *Driver) interact(ctx context.Context, session Session) (types.Outcome, error) {
	chunks := make(chan chunk)
	done := make(chan struct{})
	defer close(done)
	go pump(session, chunks, done)

	timer := time.NewTimer(d.opts.PromptTimeout)
	defer timer.Stop()

	var (
		buf   []byte
		state = stateWatching
		err   error
	)
	for {
		switch state {
		case stateWatching:
			next, rest := scan(buf)
			buf = rest
			if next != stateWatching {
				state = next
				continue
			}
			select {
			case c := <-chunks:
				if len(c.data) > 0 {
					buf = append(buf, c.data...)
					if d.opts.Transcript != nil {
						_, _ = d.opts.Transcript.Write(c.data)
					}
				}
				if c.err == io.EOF {
					state = finalState(buf)
				} else if c.err != nil {
					err = errors.Wrap(c.err, errors.ErrInstallIO, "failed to read installer output")
					state = stateFailed
				}
			case <-timer.C:
				state = stateTimedOut
			case <-ctx.Done():
				err = ctx.Err()
				state = stateFailed
			}

		case stateAnswering:
			if _, werr := io.WriteString(session, Answer); werr != nil {
				err = errors.Wrap(werr, errors.ErrInstallIO, "failed to answer installer prompt")
				state = stateFailed
				continue
			}
			d.logger.Debug().Msg("Answered installer prompt")
			resetTimer(timer, d.opts.PromptTimeout)
			state = stateWatching

		case stateNoOp:
			d.logger.Info().Msg("Installer had nothing to do")
			return types.OutcomeNoOp, nil

		case stateExited:
			return types.OutcomeInstalled, nil

		case stateTimedOut:
			d.logger.Warn().Dur("timeout", d.opts.PromptTimeout).Msg("Installer stopped responding, killing it")
			if kerr := session.Kill(); kerr != nil {
				d.logger.Debug().Err(kerr).Msg("Kill failed")
			}
			return types.OutcomeTimedOut, nil

		case stateFailed:
			_ = session.Kill()
			return types.OutcomeTimedOut, err
		}
	}
}

// scan finds the earliest pattern in buf and returns the next state with
// the unconsumed rest of buf. Without a match only the tail that could
// still start one is kept.
func scan(buf []byte) (watchState, []byte) {
	prompt := PromptPattern.FindIndex(buf)
	noop := NoOpPattern.FindIndex(buf)
	switch {
	case noop != nil && (prompt == nil || noop[0] < prompt[0]):
		return stateNoOp, buf[noop[1]:]
	case prompt != nil:
		return stateAnswering, buf[prompt[1]:]
	}
	if len(buf) > keepTail {
		buf = append(buf[:0], buf[len(buf)-keepTail:]...)
	}
	return stateWatching, buf
}

// finalState classifies the output left over when the installer exits
func finalState(buf []byte) watchState {
	if NoOpPattern.Match(buf) {
		return stateNoOp
	}
	return stateExited
}

func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}

// pump forwards session output until a read error. Once done is closed the
// output is discarded but still read, so the installer never blocks on a
// full terminal while it is being waited for.
func pump(r io.Reader, out chan<- chunk, done <-chan struct{}) {
	for {
		b := make([]byte, 4096)
		n, err := r.Read(b)
		select {
		case out <- chunk{data: b[:n], err: err}:
		case <-done:
		}
		if err != nil {
			return
		}
	}
}
