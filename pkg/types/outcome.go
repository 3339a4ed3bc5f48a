package types

// Outcome is the terminal state of one attempted package installation.
// Outcomes are not persisted; the reconciliation loop consumes them
// immediately.
type Outcome int

const (
	// OutcomeInstalled means the installer ran to the end of its output.
	OutcomeInstalled Outcome = iota

	// OutcomeAlreadyPresent means the package was found on disk and the
	// installer was never started.
	OutcomeAlreadyPresent

	// OutcomeNoOp means the installer reported that its package filter
	// resolved to nothing.
	OutcomeNoOp

	// OutcomeTimedOut means no recognised output arrived in time and the
	// installer was killed.
	OutcomeTimedOut
)

// String returns the outcome name used in logs
func (o Outcome) String() string {
	switch o {
	case OutcomeInstalled:
		return "installed"
	case OutcomeAlreadyPresent:
		return "already-present"
	case OutcomeNoOp:
		return "no-op"
	case OutcomeTimedOut:
		return "timed-out"
	default:
		return "unknown"
	}
}

// Terminal reports whether the outcome ends all work on the package for
// the current run. Only a timeout leaves the package eligible for retry.
func (o Outcome) Terminal() bool {
	return o != OutcomeTimedOut
}
