// pkg/catalog/catalog_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test listing parsing, title normalization and slot promotion

package catalog_test

import (
	"testing"

	"github.com/arthur-debert/droidsdk/pkg/catalog"
	"github.com/arthur-debert/droidsdk/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Lines(t *testing.T) {
	tests := []struct {
		name         string
		listing      string
		validateFunc func(t *testing.T, c *catalog.Catalog)
	}{
		{
			name:    "global_revision_word_is_stripped",
			listing: testutil.Listing("Android SDK Tools, revision 24.4.1"),
			validateFunc: func(t *testing.T, c *catalog.Catalog) {
				entries := c.Global("Android SDK Tools")
				require.Len(t, entries, 1)
				assert.Equal(t, catalog.Entry{Index: "1", Title: "Android SDK Tools", Revision: "24.4.1"}, entries[0])
				assert.True(t, entries[0].IsGlobal())
			},
		},
		{
			name:    "global_revision_without_word_is_kept",
			listing: testutil.Listing("Google Play services, 29"),
			validateFunc: func(t *testing.T, c *catalog.Catalog) {
				entries := c.Global("Google Play services")
				require.Len(t, entries, 1)
				assert.Equal(t, "29", entries[0].Revision)
			},
		},
		{
			name:    "sdk_platform_title_is_normalized",
			listing: testutil.Listing("SDK Platform Android 4.4.2, API 19, revision 4"),
			validateFunc: func(t *testing.T, c *catalog.Catalog) {
				e, ok := c.ForAPI("19", catalog.TitleSDKPlatform)
				require.True(t, ok)
				assert.Equal(t, "1", e.Index)
				assert.Equal(t, "19", e.API)
				assert.Equal(t, "revision 4", e.Revision)
				assert.Empty(t, c.Packages)
			},
		},
		{
			name:    "android_api_descriptor_keeps_level",
			listing: testutil.Listing("ARM EABI v7a System Image, Android API 17, revision 5"),
			validateFunc: func(t *testing.T, c *catalog.Catalog) {
				e, ok := c.ForAPI("17", "ARM EABI v7a System Image")
				require.True(t, ok)
				assert.Equal(t, "17", e.API)
			},
		},
		{
			name:    "samples_become_api_scoped",
			listing: testutil.Listing("Samples for SDK API 19, revision 6"),
			validateFunc: func(t *testing.T, c *catalog.Catalog) {
				assert.Empty(t, c.Packages)
				e, ok := c.ForAPI("19", catalog.TitleSamples)
				require.True(t, ok)
				assert.Equal(t, "6", e.Revision)
				assert.False(t, e.IsGlobal())
			},
		},
		{
			name: "repeated_title_promotes_to_multiple",
			listing: testutil.Listing(
				"Android SDK Build-tools, revision 23.0.3",
				"Android SDK Build-tools, revision 19.1",
				"Android SDK Build-tools, revision 17",
			),
			validateFunc: func(t *testing.T, c *catalog.Catalog) {
				slot := c.Packages["Android SDK Build-tools"]
				multiple, ok := slot.(catalog.Multiple)
				require.True(t, ok, "expected Multiple, got %T", slot)
				require.Len(t, multiple, 3)
				assert.Equal(t, []string{"23.0.3", "19.1", "17"},
					[]string{multiple[0].Revision, multiple[1].Revision, multiple[2].Revision})
			},
		},
		{
			name:    "single_title_stays_single",
			listing: testutil.Listing("Android SDK Platform-tools, revision 23.1"),
			validateFunc: func(t *testing.T, c *catalog.Catalog) {
				_, ok := c.Packages["Android SDK Platform-tools"].(catalog.Single)
				assert.True(t, ok)
			},
		},
		{
			name:    "three_commas_is_not_a_record",
			listing: testutil.Listing("Something, with, too, many"),
			validateFunc: func(t *testing.T, c *catalog.Catalog) {
				assert.Equal(t, 0, c.Len())
				assert.Equal(t, 0, c.Skipped)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validateFunc(t, catalog.Parse(tt.listing))
		})
	}
}

func TestParse_IgnoresLinesBeforeMarker(t *testing.T) {
	text := "   1- Android SDK Tools, revision 24\n" +
		"Packages available for installation or update: 1\n" +
		"\n" +
		"   2- Android SDK Platform-tools, revision 23.1\n"

	c := catalog.Parse(text)
	assert.Nil(t, c.Global("Android SDK Tools"))
	assert.Len(t, c.Global("Android SDK Platform-tools"), 1)
	assert.Equal(t, 1, c.Len())
}

func TestParse_NoMarkerReadsWholeText(t *testing.T) {
	c := catalog.Parse("1- Android SDK Tools, revision 22\n2- SDK Platform Android API 19, API 19, revision 3\n")
	require.Equal(t, 2, c.Len())

	tools := c.Global("Android SDK Tools")
	require.Len(t, tools, 1)
	assert.Equal(t, "22", tools[0].Revision)

	platform, ok := c.ForAPI("19", catalog.TitleSDKPlatform)
	require.True(t, ok)
	assert.Equal(t, "2", platform.Index)
}

func TestParse_Idempotent(t *testing.T) {
	first := catalog.Parse(testutil.FullListing)
	second := catalog.Parse(testutil.FullListing)
	assert.Equal(t, first.Entries(), second.Entries())
	assert.Equal(t, first.APIs, second.APIs)
	assert.Equal(t, first.Packages, second.Packages)
}

func TestParse_MalformedLinesAreSkipped(t *testing.T) {
	text := "Packages available for installation or update: 3\n" +
		"Note: this listing may be stale, run again\n" +
		"   1- Android SDK Tools, revision 24.4.1\n" +
		"Updates, if any, are listed below\n" +
		"   2- SDK Platform Android 6.0, API 23, revision 3\n"

	c := catalog.Parse(text)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 2, c.Skipped)
}

func TestParse_FullListing(t *testing.T) {
	c := catalog.Parse(testutil.FullListing)

	assert.Equal(t, 16, c.Len())
	assert.Equal(t, 0, c.Skipped)
	assert.Len(t, c.Global("Android SDK Build-tools"), 3)
	assert.Len(t, c.APIs["19"], 5)
	assert.Len(t, c.APIs["17"], 2)

	entries := c.Entries()
	for i, e := range entries {
		assert.NotEmpty(t, e.Index)
		assert.NotEmpty(t, e.Title)
		if i > 0 {
			assert.NotEqual(t, entries[i-1].Index, e.Index)
		}
	}
	assert.Equal(t, "Android SDK Tools", entries[0].Title)
	assert.Equal(t, "Google Play services", entries[len(entries)-1].Title)
}

func TestEntry_KeyIgnoresIndex(t *testing.T) {
	a := catalog.Entry{Index: "3", Title: "SDK Platform", API: "19", Revision: "4"}
	b := catalog.Entry{Index: "7", Title: "SDK Platform", API: "19", Revision: "4"}
	assert.Equal(t, a.Key(), b.Key())
	assert.Equal(t, "SDK Platform [API 19] (4)", a.String())
}
