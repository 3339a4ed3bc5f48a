package installer

import (
	"bytes"
	"context"
	"io"
	"os/exec"
)

// RunResult holds the captured output of a finished command
type RunResult struct {
	Stdout []byte
	Stderr []byte
}

// Runner runs a command to completion
type Runner interface {
	Run(ctx context.Context, cmd Command, stdout io.Writer) (RunResult, error)
}

// CmdRunner runs commands with os/exec
type CmdRunner struct{}

func (CmdRunner) Run(ctx context.Context, c Command, stdout io.Writer) (RunResult, error) {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Env = c.Environ()

	var stdoutBuf, stderrBuf bytes.Buffer
	stdoutWriter := io.Writer(&stdoutBuf)
	if stdout != nil {
		stdoutWriter = io.MultiWriter(&stdoutBuf, stdout)
	}
	cmd.Stdout = stdoutWriter
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	return RunResult{Stdout: stdoutBuf.Bytes(), Stderr: stderrBuf.Bytes()}, err
}

var _ Runner = CmdRunner{}
