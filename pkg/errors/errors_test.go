// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/arthur-debert/droidsdk/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "unsupported_platform",
			code:    errors.ErrUnsupportedPlatform,
			message: "can't guess your platform",
			wantStr: "[UNSUPPORTED_PLATFORM] can't guess your platform",
		},
		{
			name:    "invalid_config",
			code:    errors.ErrConfigValid,
			message: "unknown system image",
			wantStr: "[CONFIG_INVALID] unknown system image",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestWrap(t *testing.T) {
	base := stderrors.New("connection reset")

	err := errors.Wrapf(base, errors.ErrDownload, "failed to fetch %s", "sdk.tgz")
	require.NotNil(t, err)
	assert.Equal(t, "[DOWNLOAD] failed to fetch sdk.tgz: connection reset", err.Error())
	assert.True(t, stderrors.Is(err, base))

	assert.Nil(t, errors.Wrap(nil, errors.ErrDownload, "nothing"))
	assert.Nil(t, errors.Wrapf(nil, errors.ErrDownload, "nothing %d", 1))
}

func TestIs_ComparesCodes(t *testing.T) {
	err := errors.New(errors.ErrPackageNotFound, "no such package")
	assert.True(t, stderrors.Is(err, errors.New(errors.ErrPackageNotFound, "other message")))
	assert.False(t, stderrors.Is(err, errors.New(errors.ErrNotFound, "no such package")))
}

func TestIsErrorCode_SearchesChain(t *testing.T) {
	inner := errors.New(errors.ErrInstallIO, "pty read failed")
	outer := errors.Wrap(inner, errors.ErrInternal, "reconciliation failed")
	wrapped := fmt.Errorf("provision: %w", outer)

	assert.True(t, errors.IsErrorCode(wrapped, errors.ErrInternal))
	assert.True(t, errors.IsErrorCode(wrapped, errors.ErrInstallIO))
	assert.False(t, errors.IsErrorCode(wrapped, errors.ErrDownload))
	assert.False(t, errors.IsErrorCode(stderrors.New("plain"), errors.ErrInstallIO))
	assert.False(t, errors.IsErrorCode(nil, errors.ErrInstallIO))
}

func TestGetErrorCodeAndDetails(t *testing.T) {
	err := errors.New(errors.ErrPackageNotFound, "missing").
		WithDetail("title", "SDK Platform").
		WithDetail("api", "19")

	assert.Equal(t, errors.ErrPackageNotFound, errors.GetErrorCode(err))
	assert.Equal(t, "19", errors.GetErrorDetails(err)["api"])
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}

func TestIsIOFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "plain_error", err: stderrors.New("boom"), want: false},
		{name: "install_io_code", err: errors.New(errors.ErrInstallIO, "pty closed"), want: true},
		{
			name: "path_error",
			err:  &fs.PathError{Op: "open", Path: "/sdk/tools/android", Err: fs.ErrNotExist},
			want: true,
		},
		{
			name: "wrapped_path_error",
			err: errors.Wrap(
				&fs.PathError{Op: "write", Path: "/sdk/.installed_api17", Err: fs.ErrPermission},
				errors.ErrMarkerWrite, "failed to write marker"),
			want: true,
		},
		{name: "other_code", err: errors.New(errors.ErrConfigValid, "bad"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.IsIOFailure(tt.err))
		})
	}
}
