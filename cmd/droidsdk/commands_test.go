// cmd/droidsdk/commands_test.go
// TEST TYPE: Command Test
// DEPENDENCIES: Temp directories for config and logs
// PURPOSE: Test command wiring, flag handling and error reporting

package droidsdk_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/droidsdk/cmd/droidsdk"
	"github.com/arthur-debert/droidsdk/pkg/config"
	"github.com/arthur-debert/droidsdk/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	root := droidsdk.NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), err
}

func TestNoCommand(t *testing.T) {
	_, err := execute(t)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "droidsdk version dev")
	assert.Contains(t, out, "commit: unknown")
}

func TestCompletionCmd(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "droidsdk")

	_, err = execute(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestGenConfigCmd(t *testing.T) {
	dir := t.TempDir()
	part := filepath.Join(dir, "android.toml")
	require.NoError(t, os.WriteFile(part, []byte("apis = \"17 19\"\nsystem_images = \"arm intel\"\n"), 0644))

	out, err := execute(t, "genconfig", "--config", part, "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "17 19")
	assert.Contains(t, out, "force = true")

	written := filepath.Join(dir, "generated.toml")
	_, err = execute(t, "genconfig", "--config", part, "-w", written)
	require.NoError(t, err)

	opts, err := config.Load(written, nil)
	require.NoError(t, err)
	assert.Equal(t, config.Fields{"17", "19"}, opts.APIs)
	assert.Equal(t, config.Fields{"arm", "intel"}, opts.SystemImages)
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode errors.ErrorCode
	}{
		{
			name:     "missing_config_file",
			args:     []string{"install", "--config", "/nonexistent/android.toml"},
			wantCode: errors.ErrConfigLoad,
		},
		{
			name:     "unknown_output_format",
			args:     []string{"list", "--output", "json"},
			wantCode: errors.ErrInvalidInput,
		},
		{
			name:     "unknown_package_title",
			args:     []string{"install-package", "Android Wear Kit"},
			wantCode: errors.ErrUnknownKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.wantCode), "got %v", err)
		})
	}
}
