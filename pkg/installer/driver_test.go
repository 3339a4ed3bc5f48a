// pkg/installer/driver_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Scripted installer sessions
// PURPOSE: Test the prompt watching state machine and command construction

package installer_test

import (
	"bytes"
	"context"
	stderrors "errors"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/arthur-debert/droidsdk/pkg/catalog"
	"github.com/arthur-debert/droidsdk/pkg/errors"
	"github.com/arthur-debert/droidsdk/pkg/installer"
	"github.com/arthur-debert/droidsdk/pkg/testutil"
	"github.com/arthur-debert/droidsdk/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	sdkDir        = "/parts/android/android-sdk-linux"
	installerPath = sdkDir + "/tools/android"
	licensePrompt = "License id: android-sdk-license-c81a61d9\nDo you accept the license 'android-sdk-license-c81a61d9' [y/n]: "
	noOpWarning   = "Warning: The package filter removed all packages. There is nothing to install.\n"
)

var platform19 = catalog.Entry{Index: "8", Title: "SDK Platform", API: "19", Revision: "revision 4"}

type fakeChecker struct {
	present bool
	err     error
	calls   int
}

func (f *fakeChecker) IsEntryInstalled(e catalog.Entry) (bool, error) {
	f.calls++
	return f.present, f.err
}

func newDriver(spawner installer.Spawner, checker installer.EntryChecker, mutate func(o *installer.Options)) *installer.Driver {
	opts := installer.Options{
		InstallerPath: installerPath,
		SDKDir:        sdkDir,
		Flags:         installer.UpdateFlags{Verbose: true},
		PromptTimeout: 200 * time.Millisecond,
	}
	if mutate != nil {
		mutate(&opts)
	}
	return installer.NewDriver(spawner, checker, opts)
}

func TestInstall_Outcomes(t *testing.T) {
	tests := []struct {
		name         string
		session      *testutil.ScriptedSession
		wantOutcome  types.Outcome
		validateFunc func(t *testing.T, s *testutil.ScriptedSession)
	}{
		{
			name:        "one_prompt_then_exit",
			session:     testutil.NewScriptedSession(licensePrompt, "Installing SDK Platform Android 4.4.2\nDone. 1 package installed.\n"),
			wantOutcome: types.OutcomeInstalled,
			validateFunc: func(t *testing.T, s *testutil.ScriptedSession) {
				assert.Equal(t, []string{"y\n"}, s.Answers())
				assert.False(t, s.Killed())
			},
		},
		{
			name: "several_prompts",
			session: testutil.NewScriptedSession(
				licensePrompt,
				"Do you accept the license 'intel-android-extra-license' [y/n]: ",
				"Do you accept the license 'mips-android-sysimage-license' [y/n]: ",
				"Done. 3 packages installed.\n",
			),
			wantOutcome: types.OutcomeInstalled,
			validateFunc: func(t *testing.T, s *testutil.ScriptedSession) {
				assert.Equal(t, []string{"y\n", "y\n", "y\n"}, s.Answers())
			},
		},
		{
			name:        "exit_without_prompt",
			session:     testutil.NewScriptedSession("Refresh Sources\nDone.\n"),
			wantOutcome: types.OutcomeInstalled,
			validateFunc: func(t *testing.T, s *testutil.ScriptedSession) {
				assert.Empty(t, s.Answers())
			},
		},
		{
			name:        "no_op_warning_after_prompt",
			session:     testutil.NewScriptedSession(licensePrompt, noOpWarning).Hang(),
			wantOutcome: types.OutcomeNoOp,
			validateFunc: func(t *testing.T, s *testutil.ScriptedSession) {
				assert.Equal(t, []string{"y\n"}, s.Answers())
			},
		},
		{
			name:        "no_op_warning_before_exit",
			session:     testutil.NewScriptedSession("Refresh Sources\n" + noOpWarning),
			wantOutcome: types.OutcomeNoOp,
		},
		{
			name:        "silence_times_out",
			session:     testutil.NewScriptedSession("Refresh Sources\n").Hang(),
			wantOutcome: types.OutcomeTimedOut,
			validateFunc: func(t *testing.T, s *testutil.ScriptedSession) {
				assert.True(t, s.Killed())
				assert.Empty(t, s.Answers())
			},
		},
		{
			name:        "silence_after_answer_times_out",
			session:     testutil.NewScriptedSession(licensePrompt).Hang(),
			wantOutcome: types.OutcomeTimedOut,
			validateFunc: func(t *testing.T, s *testutil.ScriptedSession) {
				assert.True(t, s.Killed())
				assert.Equal(t, []string{"y\n"}, s.Answers())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spawner := testutil.NewScriptedSpawner(tt.session)
			d := newDriver(spawner, nil, nil)

			outcome, err := d.Install(context.Background(), platform19)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOutcome, outcome)
			assert.True(t, tt.session.Waited(), "process must be reaped")
			if tt.validateFunc != nil {
				tt.validateFunc(t, tt.session)
			}
		})
	}
}

func TestInstall_LongOutput(t *testing.T) {
	// The driver reads in 4096 byte chunks
	const readSize = 4096
	progress := strings.Repeat("Downloading SDK Platform Android 4.4.2 (50%)\n", 5000)

	tests := []struct {
		name        string
		session     *testutil.ScriptedSession
		wantOutcome types.Outcome
		wantAnswers []string
	}{
		{
			name:        "prompt_after_long_download",
			session:     testutil.NewScriptedSession(progress+licensePrompt, "Done. 1 package installed.\n"),
			wantOutcome: types.OutcomeInstalled,
			wantAnswers: []string{"y\n"},
		},
		{
			name: "prompt_split_across_reads",
			session: testutil.NewScriptedSession(
				strings.Repeat("-", readSize-3)+"[y/n]: ",
				"Done. 1 package installed.\n",
			),
			wantOutcome: types.OutcomeInstalled,
			wantAnswers: []string{"y\n"},
		},
		{
			name:        "no_op_warning_split_across_reads",
			session:     testutil.NewScriptedSession(strings.Repeat("-", readSize-20) + noOpWarning).Hang(),
			wantOutcome: types.OutcomeNoOp,
		},
		{
			name:        "no_op_warning_after_long_output",
			session:     testutil.NewScriptedSession(progress + noOpWarning),
			wantOutcome: types.OutcomeNoOp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDriver(testutil.NewScriptedSpawner(tt.session), nil, nil)

			outcome, err := d.Install(context.Background(), platform19)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOutcome, outcome)
			assert.Equal(t, tt.wantAnswers, tt.session.Answers())
		})
	}
}

func TestInstall_Command(t *testing.T) {
	tests := []struct {
		name     string
		flags    installer.UpdateFlags
		wantArgs []string
	}{
		{
			name:     "verbose",
			flags:    installer.UpdateFlags{Verbose: true},
			wantArgs: []string{"-v", "update", "sdk", "-s", "-u", "-t", "8"},
		},
		{
			name:     "all_and_dry_run",
			flags:    installer.UpdateFlags{All: true, DryRun: true},
			wantArgs: []string{"update", "sdk", "-s", "-u", "-a", "-t", "8", "--dry-mode"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spawner := testutil.NewScriptedSpawner()
			d := newDriver(spawner, nil, func(o *installer.Options) { o.Flags = tt.flags })

			_, err := d.Install(context.Background(), platform19)
			require.NoError(t, err)

			cmds := spawner.Commands()
			require.Len(t, cmds, 1)
			assert.Equal(t, installerPath, cmds[0].Path)
			assert.Equal(t, tt.wantArgs, cmds[0].Args)
			assert.Equal(t, map[string]string{"ANDROID_HOME": sdkDir}, cmds[0].Env)
		})
	}
}

func TestInstall_SkipsPresentEntries(t *testing.T) {
	spawner := testutil.NewScriptedSpawner()
	checker := &fakeChecker{present: true}

	outcome, err := newDriver(spawner, checker, nil).Install(context.Background(), platform19)
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeAlreadyPresent, outcome)
	assert.Empty(t, spawner.Commands())

	outcome, err = newDriver(spawner, checker, func(o *installer.Options) { o.Force = true }).
		Install(context.Background(), platform19)
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeInstalled, outcome)
	assert.Len(t, spawner.Commands(), 1)
}

func TestInstall_UnknownKindIsInstalled(t *testing.T) {
	spawner := testutil.NewScriptedSpawner()
	checker := &fakeChecker{err: errors.New(errors.ErrUnknownKind, "no check")}

	outcome, err := newDriver(spawner, checker, nil).Install(context.Background(), platform19)
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeInstalled, outcome)
	assert.Equal(t, 1, checker.calls)
}

func TestInstall_ReadFailureIsIOError(t *testing.T) {
	session := testutil.NewScriptedSession("Downloading SDK Platform\n").FailWith(syscall.ENOSPC)
	d := newDriver(testutil.NewScriptedSpawner(session), nil, nil)

	_, err := d.Install(context.Background(), platform19)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInstallIO))
	assert.True(t, errors.IsIOFailure(err))
	assert.True(t, stderrors.Is(err, syscall.ENOSPC))
	assert.True(t, session.Waited())
}

func TestInstall_SpawnFailure(t *testing.T) {
	spawner := testutil.NewScriptedSpawner()
	spawner.Err = errors.New(errors.ErrInstallerSpawn, "no such file")

	_, err := newDriver(spawner, nil, nil).Install(context.Background(), platform19)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInstallerSpawn))
}

func TestInstall_ContextCancel(t *testing.T) {
	session := testutil.NewScriptedSession("Refresh Sources\n").Hang()
	d := newDriver(testutil.NewScriptedSpawner(session), nil, func(o *installer.Options) {
		o.PromptTimeout = time.Hour
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := d.Install(ctx, platform19)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, context.Canceled))
	assert.True(t, session.Killed())
}

func TestInstall_Transcript(t *testing.T) {
	var transcript bytes.Buffer
	session := testutil.NewScriptedSession(licensePrompt, "Done.\n")
	d := newDriver(testutil.NewScriptedSpawner(session), nil, func(o *installer.Options) {
		o.Transcript = &transcript
	})

	_, err := d.Install(context.Background(), platform19)
	require.NoError(t, err)
	assert.Contains(t, transcript.String(), "[y/n]")
	assert.Contains(t, transcript.String(), "Done.")
}

func TestUpdateAll_OmitsIndex(t *testing.T) {
	spawner := testutil.NewScriptedSpawner()
	d := newDriver(spawner, nil, nil)

	outcome, err := d.UpdateAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeInstalled, outcome)
	assert.Equal(t, []string{"-v update sdk -s -u"}, spawner.CommandLines())
}

func TestCommand_Environ(t *testing.T) {
	t.Setenv("DROIDSDK_TEST_MARKER", "1")
	cmd := installer.Command{Path: "android", Env: map[string]string{"ANDROID_HOME": "/sdk"}}

	env := cmd.Environ()
	assert.Contains(t, env, "ANDROID_HOME=/sdk")
	assert.Contains(t, env, "DROIDSDK_TEST_MARKER=1")
}
