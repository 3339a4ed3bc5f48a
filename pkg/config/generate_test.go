// pkg/config/generate_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Temp directory
// PURPOSE: Test that a generated part file loads back to the same options

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/droidsdk/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateConfigContent_LoadsBack(t *testing.T) {
	opts, err := config.Load("", nil)
	require.NoError(t, err)
	opts.APIs = config.Fields{"17", "19"}
	opts.SystemImages = config.Fields{"arm"}
	opts.OtherPackages = config.Lines{"Google Play services", "Support Repository"}

	content, err := config.GenerateConfigContent(opts)
	require.NoError(t, err)
	assert.Contains(t, content, "17 19")

	path := filepath.Join(t.TempDir(), "droidsdk.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	loaded, err := config.Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, opts.APIs, loaded.APIs)
	assert.Equal(t, opts.SystemImages, loaded.SystemImages)
	assert.Equal(t, opts.OtherPackages, loaded.OtherPackages)
	assert.Equal(t, opts.Installer, loaded.Installer)
	assert.Equal(t, opts.SDKURLs, loaded.SDKURLs)
}
