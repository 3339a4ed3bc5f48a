// Package reconcile runs the install loop that brings an SDK to the
// requested state.
//
// Every pass lists the catalog again, because installer indices change
// after each install, recomputes the plan and installs its first
// outstanding entry. The loop ends when a pass finds nothing outstanding.
//
// Entries are keyed by title, API and revision for the length of a run.
// An entry whose install ended (installed, no-op or already present) is
// not attempted again in the same run, so a listing that keeps showing it,
// or force mode, cannot loop. A timed out entry is retried on later passes
// until it reaches MaxAttempts.
package reconcile

import (
	"context"
	"strings"

	"github.com/arthur-debert/droidsdk/pkg/catalog"
	"github.com/arthur-debert/droidsdk/pkg/config"
	"github.com/arthur-debert/droidsdk/pkg/errors"
	"github.com/arthur-debert/droidsdk/pkg/logging"
	"github.com/arthur-debert/droidsdk/pkg/paths"
	"github.com/arthur-debert/droidsdk/pkg/types"
	"github.com/rs/zerolog"
)

// DefaultMaxAttempts bounds the retries of a timed out entry
const DefaultMaxAttempts = 3

// Lister produces a fresh catalog
type Lister interface {
	List(ctx context.Context) (*catalog.Catalog, error)
}

// Planner selects the outstanding entries of a catalog
type Planner interface {
	Plan(desired config.Desired, cat *catalog.Catalog) []catalog.Entry
}

// Installer installs a single entry
type Installer interface {
	Install(ctx context.Context, e catalog.Entry) (types.Outcome, error)
}

// Markers reads and writes completion markers
type Markers interface {
	HasMarker(name string) (bool, error)
	RecordMarker(name string) error
}

// Summary describes a finished run
type Summary struct {
	Installed      []catalog.Entry
	AlreadyPresent []catalog.Entry
	NoOp           []catalog.Entry
	// Abandoned entries timed out MaxAttempts times
	Abandoned []catalog.Entry
	// Failed entries are system images whose install returned an error
	Failed []catalog.Entry
	Passes int
}

// Changed reports whether anything was installed
func (s *Summary) Changed() bool {
	return len(s.Installed) > 0
}

type state int

const (
	stateComputePlan state = iota
	stateHaveCandidate
	stateInstallOne
	stateNothingOutstanding
	stateDone
)

func (s state) String() string {
	return [...]string{"compute-plan", "have-candidate", "install-one", "nothing-outstanding", "done"}[s]
}

// Reconciler drives one reconciliation run
type Reconciler struct {
	lister      Lister
	planner     Planner
	installer   Installer
	markers     Markers
	desired     config.Desired
	maxAttempts int
	logger      zerolog.Logger
}

// New creates a Reconciler
func New(lister Lister, planner Planner, installer Installer, markers Markers, desired config.Desired, maxAttempts int) *Reconciler {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Reconciler{
		lister:      lister,
		planner:     planner,
		installer:   installer,
		markers:     markers,
		desired:     desired,
		maxAttempts: maxAttempts,
		logger:      logging.GetLogger("reconcile"),
	}
}

// run holds the bookkeeping of one Run call
type run struct {
	plan      []catalog.Entry
	pos       int
	candidate catalog.Entry
	handled   map[string]bool
	attempts  map[string]int
	summary   *Summary
	// api17Lost is set once an API 17 image of this run was abandoned or
	// failed; the marker must not be recorded after that
	api17Lost bool
}

// Run loops until no requested entry is outstanding. OS-level failures
// while installing are returned with code INSTALL_IO.
func (r *Reconciler) Run(ctx context.Context) (*Summary, error) {
	done := logging.LogOperationStart(r.logger, "reconcile")
	defer done()

	st := &run{
		handled:  make(map[string]bool),
		attempts: make(map[string]int),
		summary:  &Summary{},
	}

	s := stateComputePlan
	for {
		r.logger.Trace().Str("state", s.String()).Msg("Reconcile step")
		switch s {
		case stateComputePlan:
			if err := ctx.Err(); err != nil {
				return st.summary, err
			}
			st.summary.Passes++
			cat, err := r.lister.List(ctx)
			if err != nil {
				return st.summary, classify(err, "failed to list packages")
			}
			st.plan = r.planner.Plan(r.desired, cat)
			st.pos = 0
			r.logger.Debug().Int("pass", st.summary.Passes).Int("planned", len(st.plan)).Msg("Plan computed")
			s = r.advance(st)

		case stateHaveCandidate:
			if !IsAPI17Image(st.candidate) {
				s = stateInstallOne
				continue
			}
			has, err := r.markers.HasMarker(paths.API17Marker)
			if err != nil {
				return st.summary, classify(err, "failed to read API 17 marker")
			}
			if !has {
				s = stateInstallOne
				continue
			}
			r.logger.Debug().Str("package", st.candidate.String()).Msg("API 17 image already recorded")
			st.handled[st.candidate.Key()] = true
			st.pos++
			s = r.advance(st)

		case stateInstallOne:
			if err := r.installOne(ctx, st); err != nil {
				return st.summary, err
			}
			s = stateComputePlan

		case stateNothingOutstanding:
			r.logger.Info().
				Int("installed", len(st.summary.Installed)).
				Int("passes", st.summary.Passes).
				Msg("SDK is up to date")
			s = stateDone

		case stateDone:
			return st.summary, nil
		}
	}
}

// advance moves to the first plan entry at or after pos that is still
// outstanding
func (r *Reconciler) advance(st *run) state {
	for ; st.pos < len(st.plan); st.pos++ {
		e := st.plan[st.pos]
		if st.handled[e.Key()] || st.attempts[e.Key()] >= r.maxAttempts {
			continue
		}
		st.candidate = e
		return stateHaveCandidate
	}
	return stateNothingOutstanding
}

func (r *Reconciler) installOne(ctx context.Context, st *run) error {
	e := st.candidate
	key := e.Key()

	outcome, err := r.installer.Install(ctx, e)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.IsIOFailure(err) || !isSystemImage(e) {
			return classify(err, "failed to install "+e.String())
		}
		r.logger.Error().Err(err).Str("package", e.String()).Msg("System image install failed, skipping")
		st.handled[key] = true
		st.summary.Failed = append(st.summary.Failed, e)
		st.api17Lost = st.api17Lost || IsAPI17Image(e)
		return nil
	}

	switch outcome {
	case types.OutcomeTimedOut:
		st.attempts[key]++
		if st.attempts[key] >= r.maxAttempts {
			r.logger.Error().Str("package", e.String()).Int("attempts", st.attempts[key]).
				Msg("Installer kept timing out, giving up on package")
			st.summary.Abandoned = append(st.summary.Abandoned, e)
			st.api17Lost = st.api17Lost || IsAPI17Image(e)
		}
		return nil
	case types.OutcomeInstalled:
		st.summary.Installed = append(st.summary.Installed, e)
	case types.OutcomeAlreadyPresent:
		st.summary.AlreadyPresent = append(st.summary.AlreadyPresent, e)
	case types.OutcomeNoOp:
		st.summary.NoOp = append(st.summary.NoOp, e)
	}
	st.handled[key] = true

	if IsAPI17Image(e) && !st.api17Lost && !r.api17Outstanding(st) {
		if err := r.markers.RecordMarker(paths.API17Marker); err != nil {
			return classify(err, "failed to record API 17 marker")
		}
		r.logger.Debug().Msg("Recorded API 17 system images")
	}
	return nil
}

// api17Outstanding reports whether the current plan still holds an API 17
// image that this run has not handled
func (r *Reconciler) api17Outstanding(st *run) bool {
	for _, e := range st.plan {
		if IsAPI17Image(e) && !st.handled[e.Key()] && st.attempts[e.Key()] < r.maxAttempts {
			return true
		}
	}
	return false
}

// IsAPI17Image reports whether e is a system image for API 17, the one
// package the listing reports as available even once installed
func IsAPI17Image(e catalog.Entry) bool {
	return e.API == "17" && isSystemImage(e)
}

func isSystemImage(e catalog.Entry) bool {
	return strings.HasSuffix(e.Title, "System Image")
}

func classify(err error, msg string) error {
	if errors.IsIOFailure(err) && !errors.IsErrorCode(err, errors.ErrInstallIO) {
		return errors.Wrap(err, errors.ErrInstallIO, msg)
	}
	if _, ok := err.(*errors.SDKError); ok {
		return err
	}
	return errors.Wrap(err, errors.ErrInternal, msg)
}
