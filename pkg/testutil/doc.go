// Package testutil provides fixtures shared by droidsdk package tests.
//
// Key components:
//   - Listing fixtures: package manager output as printed by `android list sdk`
//   - SDKTree: declarative builder for fake SDK directory trees on a types.FS
//   - ScriptedSpawner: an installer session that replays scripted output
//   - MockLister / MockInstaller: testify mocks for the reconciler's collaborators
//
// All test data is defined inline. Tests should use filesystem.NewMemory()
// unless they exercise real files or processes.
package testutil
