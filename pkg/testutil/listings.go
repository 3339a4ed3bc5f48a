package testutil

import (
	"fmt"
	"strings"
)

// ListingHeader is what the package manager prints before the package section
const ListingHeader = `Refresh Sources:
  Fetching https://dl.google.com/android/repository/addons_list-2.xml
  Validate XML
  Parse XML
  Fetched Add-ons List successfully
Refresh Sources
  Fetching URL: https://dl.google.com/android/repository/repository-10.xml
  Validate XML: https://dl.google.com/android/repository/repository-10.xml
  Parse XML:    https://dl.google.com/android/repository/repository-10.xml
`

// FullListing is a representative listing with global, API-scoped and
// multi-revision entries
const FullListing = ListingHeader + `Packages available for installation or update: 16
   1- Android SDK Tools, revision 24.4.1
   2- Android SDK Platform-tools, revision 23.1
   3- Android SDK Build-tools, revision 23.0.3
   4- Android SDK Build-tools, revision 19.1
   5- Android SDK Build-tools, revision 17
   6- Documentation for Android SDK, API 23, revision 1
   7- SDK Platform Android 6.0, API 23, revision 3
   8- SDK Platform Android 4.4.2, API 19, revision 4
   9- SDK Platform Android 4.2.2, API 17, revision 3
  10- Samples for SDK API 19, revision 6
  11- ARM EABI v7a System Image, Android API 19, revision 5
  12- Intel x86 Atom System Image, Android API 19, revision 5
  13- ARM EABI v7a System Image, Android API 17, revision 5
  14- Google APIs, Android API 19, revision 20
  15- Android Support Library, revision 23.2.1
  16- Google Play services, revision 29
`

// Listing renders entries as a package manager listing. Each line is
// "title, rest" where rest carries the revision, or the API and revision.
func Listing(lines ...string) string {
	var b strings.Builder
	b.WriteString(ListingHeader)
	fmt.Fprintf(&b, "Packages available for installation or update: %d\n", len(lines))
	for i, line := range lines {
		fmt.Fprintf(&b, "%4d- %s\n", i+1, line)
	}
	return b.String()
}
