package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Host errors
	ErrUnsupportedPlatform ErrorCode = "UNSUPPORTED_PLATFORM"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Catalog and package errors
	ErrCatalogList     ErrorCode = "CATALOG_LIST"
	ErrPackageNotFound ErrorCode = "PACKAGE_NOT_FOUND"
	ErrUnknownKind     ErrorCode = "UNKNOWN_PACKAGE_KIND"

	// Installer errors
	ErrInstallerSpawn ErrorCode = "INSTALLER_SPAWN"
	ErrInstallIO      ErrorCode = "INSTALL_IO"

	// SDK distribution errors
	ErrDownload ErrorCode = "DOWNLOAD"
	ErrUnpack   ErrorCode = "UNPACK"

	// FileSystem errors
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
	ErrLauncherWrite ErrorCode = "LAUNCHER_WRITE"
	ErrMarkerWrite   ErrorCode = "MARKER_WRITE"
	ErrSDKRemove     ErrorCode = "SDK_REMOVE"
	ErrInstallerGone ErrorCode = "INSTALLER_MISSING"
)

// SDKError represents a structured error with code and details
type SDKError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SDKError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SDKError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *SDKError) Is(target error) bool {
	var targetErr *SDKError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SDKError with the given code and message
func New(code ErrorCode, message string) *SDKError {
	return &SDKError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SDKError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SDKError {
	return &SDKError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an SDKError
func Wrap(err error, code ErrorCode, message string) *SDKError {
	if err == nil {
		return nil
	}
	return &SDKError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SDKError {
	if err == nil {
		return nil
	}
	return &SDKError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *SDKError) WithDetail(key string, value interface{}) *SDKError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error, or any error it wraps, has a specific code
func IsErrorCode(err error, code ErrorCode) bool {
	for err != nil {
		var sdkErr *SDKError
		if !errors.As(err, &sdkErr) {
			return false
		}
		if sdkErr.Code == code {
			return true
		}
		err = sdkErr.Wrapped
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an SDKError
func GetErrorCode(err error) ErrorCode {
	var sdkErr *SDKError
	if errors.As(err, &sdkErr) {
		return sdkErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an SDKError
func GetErrorDetails(err error) map[string]interface{} {
	var sdkErr *SDKError
	if errors.As(err, &sdkErr) {
		return sdkErr.Details
	}
	return nil
}

// IsIOFailure reports whether err is an OS-level I/O failure that may have
// left the SDK tree inconsistent. These are the failures that warrant
// discarding the installation and starting over.
func IsIOFailure(err error) bool {
	if err == nil {
		return false
	}
	if IsErrorCode(err, ErrInstallIO) {
		return true
	}
	var pathErr *fs.PathError
	return errors.As(err, &pathErr)
}
