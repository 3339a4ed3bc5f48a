package installer

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/arthur-debert/droidsdk/pkg/errors"
	"github.com/creack/pty"
)

// Session is a running installer attached to a terminal
type Session interface {
	io.Reader
	io.Writer
	// Kill terminates the process immediately
	Kill() error
	// Wait blocks until the process has exited
	Wait() error
	// Close releases the terminal
	Close() error
}

// Spawner starts installer sessions
type Spawner interface {
	Spawn(ctx context.Context, cmd Command) (Session, error)
}

// PTYSpawner runs commands on a pseudo-terminal
type PTYSpawner struct{}

func (PTYSpawner) Spawn(ctx context.Context, c Command) (Session, error) {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Env = c.Environ()

	f, err := pty.Start(cmd)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInstallerSpawn, "failed to start %s", c.Path).
			WithDetail("args", c.Args)
	}
	return &ptySession{cmd: cmd, tty: f}, nil
}

type ptySession struct {
	cmd *exec.Cmd
	tty *os.File
}

// Read maps EIO to EOF: Linux reports a closed pty slave as EIO
func (s *ptySession) Read(p []byte) (int, error) {
	n, err := s.tty.Read(p)
	if err != nil && stderrors.Is(err, syscall.EIO) {
		return n, io.EOF
	}
	return n, err
}

func (s *ptySession) Write(p []byte) (int, error) {
	return s.tty.Write(p)
}

func (s *ptySession) Kill() error {
	if s.cmd.Process == nil {
		return nil
	}
	return s.cmd.Process.Kill()
}

func (s *ptySession) Wait() error {
	return s.cmd.Wait()
}

func (s *ptySession) Close() error {
	return s.tty.Close()
}

var _ Spawner = PTYSpawner{}
