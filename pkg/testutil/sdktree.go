package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/droidsdk/pkg/types"
	"github.com/stretchr/testify/require"
)

// SDKTree builds a fake SDK installation for probe based tests
type SDKTree struct {
	t    *testing.T
	fs   types.FS
	root string
}

// NewSDKTree returns a builder rooted at root on fs
func NewSDKTree(t *testing.T, fs types.FS, root string) *SDKTree {
	t.Helper()
	require.NoError(t, fs.MkdirAll(root, 0755))
	return &SDKTree{t: t, fs: fs, root: root}
}

// Root returns the SDK root
func (s *SDKTree) Root() string { return s.root }

// Dir creates a directory relative to the SDK root
func (s *SDKTree) Dir(rel string) *SDKTree {
	s.t.Helper()
	require.NoError(s.t, s.fs.MkdirAll(filepath.Join(s.root, rel), 0755))
	return s
}

// File creates a file relative to the SDK root with the given content
func (s *SDKTree) File(rel, content string) *SDKTree {
	s.t.Helper()
	path := filepath.Join(s.root, rel)
	require.NoError(s.t, s.fs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(s.t, s.fs.WriteFile(path, []byte(content), 0644))
	return s
}

// Installer creates an executable tools/android
func (s *SDKTree) Installer() *SDKTree {
	s.t.Helper()
	s.File("tools/android", "#!/bin/sh\n")
	require.NoError(s.t, s.fs.Chmod(filepath.Join(s.root, "tools", "android"), 0755))
	return s
}

// Platform marks an SDK platform as installed
func (s *SDKTree) Platform(api string) *SDKTree {
	return s.File("platforms/android-"+api+"/android.jar", "jar")
}

// BuildTools marks a build-tools revision as installed
func (s *SDKTree) BuildTools(revision string) *SDKTree {
	return s.File("build-tools/"+revision+"/aapt", "aapt")
}

// SystemImage marks a system image as installed; abi is the directory name
// (armeabi-v7a, x86, mips)
func (s *SDKTree) SystemImage(api, abi string) *SDKTree {
	return s.Dir("system-images/android-" + api + "/" + abi)
}
