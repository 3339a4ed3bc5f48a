// Package installer drives the SDK package manager (tools/android).
//
// Listing runs `android list sdk [-a]` as a plain subprocess. Installing
// runs `android [-v] update sdk -s -u [-a] [-t <index>] [--dry-mode]`
// attached to a pseudo-terminal, because the package manager only asks for
// licence confirmation when it talks to a terminal. The Driver watches the
// output and answers every [y/n] prompt until the process exits, reports
// that nothing matched the filter, or stays silent past the prompt timeout.
//
// ANDROID_HOME is set per invocation through Command.Env and never in the
// process environment.
package installer
