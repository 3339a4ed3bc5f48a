package types_test

import (
	"testing"

	"github.com/arthur-debert/droidsdk/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestOutcome_String(t *testing.T) {
	tests := []struct {
		outcome  types.Outcome
		expected string
		terminal bool
	}{
		{types.OutcomeInstalled, "installed", true},
		{types.OutcomeAlreadyPresent, "already-present", true},
		{types.OutcomeNoOp, "no-op", true},
		{types.OutcomeTimedOut, "timed-out", false},
		{types.Outcome(42), "unknown", true},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.outcome.String())
			assert.Equal(t, tt.terminal, tt.outcome.Terminal())
		})
	}
}
