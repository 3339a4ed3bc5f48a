// Package config loads the options of a droidsdk part.
//
// Options are layered with koanf, later layers winning:
//
//  1. embedded/defaults.toml
//  2. the part file given with --config (TOML)
//  3. DROIDSDK_* environment variables, "__" separating sections
//     (DROIDSDK_INSTALLER__MAX_ATTEMPTS=5)
//  4. command line overrides
//
// The part file keeps the orchestrator's option names: apis and
// system_images are whitespace separated, other_packages is newline
// separated and dry-run, dryrun and force accept true, yes, on or 1.
package config
