package droidsdk

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort           = "Provision an Android SDK"
	MsgInstallShort        = "Install the SDK and the requested packages"
	MsgUpdateShort         = "Install missing packages into an existing SDK"
	MsgListShort           = "Show available and planned packages"
	MsgInstallPackageShort = "Install one package by title"
	MsgGenConfigShort      = "Print a sample part configuration"
	MsgVersionShort        = "Print version information"
	MsgCompletionShort     = "Generate shell completion script"

	// Status messages
	MsgPackageOutcome = "%s: %s\n"
	MsgVersionFormat  = "droidsdk version %s\n  commit: %s\n  built:  %s\n"
	MsgConfigWritten  = "Wrote %s\n"

	// Error messages
	MsgErrNoCommand = "no command specified"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig  = "Part configuration file (TOML)"
	MsgFlagDryRun  = "Pass --dry-mode to the package manager"
	MsgFlagForce   = "Reinstall packages and unpack the SDK even if present"
	MsgFlagAll     = "Update every installed package first"
	MsgFlagOutput  = "Output format (text, yaml)"
	MsgFlagAPI     = "API level of the package"
	MsgFlagWrite   = "Write the configuration to this file instead of stdout"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/install-long.txt
	msgInstallLongRaw string
	MsgInstallLong    = strings.TrimSpace(msgInstallLongRaw)

	//go:embed msgs/install-example.txt
	msgInstallExampleRaw string
	MsgInstallExample    = strings.TrimRight(msgInstallExampleRaw, "\n")

	//go:embed msgs/update-long.txt
	msgUpdateLongRaw string
	MsgUpdateLong    = strings.TrimSpace(msgUpdateLongRaw)

	//go:embed msgs/list-long.txt
	msgListLongRaw string
	MsgListLong    = strings.TrimSpace(msgListLongRaw)

	//go:embed msgs/install-package-long.txt
	msgInstallPackageLongRaw string
	MsgInstallPackageLong    = strings.TrimSpace(msgInstallPackageLongRaw)

	//go:embed msgs/install-package-example.txt
	msgInstallPackageExampleRaw string
	MsgInstallPackageExample    = strings.TrimRight(msgInstallPackageExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
