// Package catalog parses the package listing printed by the SDK package
// manager (`android list sdk`).
//
// The listing is a header followed by one line per installable package:
//
//	Packages available for installation or update: 3
//	   1- Android SDK Tools, revision 24.4.1
//	   2- Android SDK Build-tools, revision 23.0.3
//	   3- SDK Platform Android 4.2.2, API 17, revision 3
//
// Lines with one comma are global packages, lines with two commas are scoped
// to an API level. Everything else is ignored. Indices are only valid for
// the listing they came from, so a Catalog is parsed fresh for every
// installer invocation and never updated afterwards.
package catalog
