// pkg/installer/session_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: POSIX shell, pseudo-terminal support
// PURPOSE: Test the driver against a real process on a pseudo-terminal

package installer_test

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/arthur-debert/droidsdk/pkg/installer"
	"github.com/arthur-debert/droidsdk/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeInstaller(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS != "linux" && runtime.GOOS != "darwin" {
		t.Skip("pseudo-terminals need linux or darwin")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	path := filepath.Join(t.TempDir(), "android")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755))
	return path
}

func TestPTYSpawner_AnswersPrompt(t *testing.T) {
	path := fakeInstaller(t, `printf "Do you accept the license 'android-sdk-license' [y/n]: "
read answer
echo "answer=$answer home=$ANDROID_HOME"
`)
	var transcript bytes.Buffer
	d := installer.NewDriver(installer.PTYSpawner{}, nil, installer.Options{
		InstallerPath: path,
		SDKDir:        "/sdk",
		PromptTimeout: 10 * time.Second,
		Transcript:    &transcript,
	})

	outcome, err := d.Install(context.Background(), platform19)
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeInstalled, outcome)
	assert.Contains(t, transcript.String(), "answer=y")
	assert.Contains(t, transcript.String(), "home=/sdk")
}

func TestPTYSpawner_KillsSilentInstaller(t *testing.T) {
	path := fakeInstaller(t, "echo starting\nsleep 30\n")
	d := installer.NewDriver(installer.PTYSpawner{}, nil, installer.Options{
		InstallerPath: path,
		SDKDir:        "/sdk",
		PromptTimeout: 300 * time.Millisecond,
	})

	start := time.Now()
	outcome, err := d.Install(context.Background(), platform19)
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeTimedOut, outcome)
	assert.Less(t, time.Since(start), 20*time.Second)
}
