// Package paths computes the on-disk layout of a droidsdk part.
//
// A part is one provisioned SDK. Its files live under the orchestrator's
// parts directory (or an explicit install_dir):
//
//	<parts>/<name>/android-sdk-<platform>/          SDK root (ANDROID_HOME)
//	<parts>/<name>/android-sdk-<platform>/tools/android
//	<parts>/<name>/android-sdk-<platform>/.installed_api17
//
// Launchers are written to the shared bin directory and downloads are cached
// in the download cache. When the orchestrator does not provide those
// directories they default to XDG locations:
//
//   - parts: $XDG_DATA_HOME/droidsdk/parts
//   - bin: $XDG_DATA_HOME/droidsdk/bin
//   - download cache: $XDG_CACHE_HOME/droidsdk/downloads
//
// The host platform name (linux, macosx, windows) selects both the SDK
// directory suffix and the distribution archive. Any other GOOS is rejected
// with UNSUPPORTED_PLATFORM.
package paths
