package installer

import (
	"os"
	"sort"
)

// Command is one invocation of the package manager
type Command struct {
	Path string
	Args []string
	// Env is overlaid on the current environment for this invocation only
	Env map[string]string
}

// Environ returns the environment the command runs with
func (c Command) Environ() []string {
	env := os.Environ()
	keys := make([]string, 0, len(c.Env))
	for k := range c.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, k+"="+c.Env[k])
	}
	return env
}

// UpdateFlags selects the optional flags of an update invocation
type UpdateFlags struct {
	Verbose bool
	// All includes obsolete and installed packages; indices from
	// `list sdk -a` are only valid together with it
	All    bool
	DryRun bool
}

// UpdateArgs builds the arguments of an update; an empty index updates
// every installed package
func UpdateArgs(flags UpdateFlags, index string) []string {
	var args []string
	if flags.Verbose {
		args = append(args, "-v")
	}
	args = append(args, "update", "sdk", "-s", "-u")
	if flags.All {
		args = append(args, "-a")
	}
	if index != "" {
		args = append(args, "-t", index)
	}
	if flags.DryRun {
		args = append(args, "--dry-mode")
	}
	return args
}

// ListArgs builds the arguments of a listing
func ListArgs(all bool) []string {
	args := []string{"list", "sdk"}
	if all {
		args = append(args, "-a")
	}
	return args
}
