package testutil

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/arthur-debert/droidsdk/pkg/installer"
)

// ListingRunner answers listing commands with queued outputs. The last
// output repeats once the queue is drained.
type ListingRunner struct {
	mu       sync.Mutex
	outputs  []string
	commands []installer.Command
	// Err is returned by every Run when set
	Err error
}

// NewListingRunner creates a runner returning outputs in order
func NewListingRunner(outputs ...string) *ListingRunner {
	return &ListingRunner{outputs: outputs}
}

func (r *ListingRunner) Run(ctx context.Context, cmd installer.Command, stdout io.Writer) (installer.RunResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = append(r.commands, cmd)
	if r.Err != nil {
		return installer.RunResult{Stderr: []byte("failed")}, r.Err
	}

	var out string
	if len(r.outputs) > 0 {
		out = r.outputs[0]
		if len(r.outputs) > 1 {
			r.outputs = r.outputs[1:]
		}
	}
	if stdout != nil {
		_, _ = io.WriteString(stdout, out)
	}
	return installer.RunResult{Stdout: []byte(out)}, nil
}

// Calls returns how many times Run was called
func (r *ListingRunner) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.commands)
}

// LastArgs returns the arguments of the most recent command
func (r *ListingRunner) LastArgs() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.commands) == 0 {
		return ""
	}
	return strings.Join(r.commands[len(r.commands)-1].Args, " ")
}

var _ installer.Runner = (*ListingRunner)(nil)
