package testutil

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/arthur-debert/droidsdk/pkg/installer"
)

// ScriptedSession replays installer output. Output i is only released once
// i answers have been written, like a real installer waiting at a prompt.
// An output longer than the reader's buffer spans several reads.
type ScriptedSession struct {
	mu      sync.Mutex
	cond    *sync.Cond
	outputs []string
	next    int
	answers []string
	hang    bool
	readErr error

	killed bool
	waited bool
	closed bool
}

// NewScriptedSession returns a session that prints outputs and then exits
func NewScriptedSession(outputs ...string) *ScriptedSession {
	s := &ScriptedSession{outputs: outputs}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Hang makes the session go silent after its outputs until it is killed
func (s *ScriptedSession) Hang() *ScriptedSession {
	s.hang = true
	return s
}

// FailWith makes the read after the last output fail with err
func (s *ScriptedSession) FailWith(err error) *ScriptedSession {
	s.readErr = err
	return s
}

func (s *ScriptedSession) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		if s.killed || s.closed {
			return 0, io.EOF
		}
		if s.next < len(s.outputs) && s.next <= len(s.answers) {
			n := copy(p, s.outputs[s.next])
			if n < len(s.outputs[s.next]) {
				s.outputs[s.next] = s.outputs[s.next][n:]
			} else {
				s.next++
			}
			return n, nil
		}
		if s.next >= len(s.outputs) && !s.hang {
			if s.readErr != nil {
				return 0, s.readErr
			}
			return 0, io.EOF
		}
		s.cond.Wait()
	}
}

func (s *ScriptedSession) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers = append(s.answers, string(p))
	s.cond.Broadcast()
	return len(p), nil
}

func (s *ScriptedSession) Kill() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.killed = true
	s.cond.Broadcast()
	return nil
}

func (s *ScriptedSession) Wait() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.waited = true
	return nil
}

func (s *ScriptedSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.cond.Broadcast()
	return nil
}

// Answers returns everything written to the session
func (s *ScriptedSession) Answers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.answers...)
}

// Killed reports whether Kill was called
func (s *ScriptedSession) Killed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.killed
}

// Waited reports whether Wait was called
func (s *ScriptedSession) Waited() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.waited
}

// ScriptedSpawner hands out scripted sessions in order and records the
// commands it was asked to run. Once the scripts are used up every spawn
// gets a session that exits immediately.
type ScriptedSpawner struct {
	mu       sync.Mutex
	scripts  []*ScriptedSession
	commands []installer.Command
	// Err is returned by every Spawn when set
	Err error
}

// NewScriptedSpawner creates a spawner for the given sessions
func NewScriptedSpawner(scripts ...*ScriptedSession) *ScriptedSpawner {
	return &ScriptedSpawner{scripts: scripts}
}

func (s *ScriptedSpawner) Spawn(ctx context.Context, cmd installer.Command) (installer.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commands = append(s.commands, cmd)
	if s.Err != nil {
		return nil, s.Err
	}
	if len(s.scripts) == 0 {
		return NewScriptedSession(), nil
	}
	next := s.scripts[0]
	s.scripts = s.scripts[1:]
	return next, nil
}

// Commands returns the recorded commands
func (s *ScriptedSpawner) Commands() []installer.Command {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]installer.Command(nil), s.commands...)
}

// CommandLines renders the recorded commands' arguments
func (s *ScriptedSpawner) CommandLines() []string {
	var lines []string
	for _, c := range s.Commands() {
		lines = append(lines, strings.Join(c.Args, " "))
	}
	return lines
}

var _ installer.Spawner = (*ScriptedSpawner)(nil)
var _ installer.Session = (*ScriptedSession)(nil)
