package droidsdk

import (
	"fmt"
	"os"

	"github.com/arthur-debert/droidsdk/internal/version"
	"github.com/arthur-debert/droidsdk/pkg/config"
	"github.com/arthur-debert/droidsdk/pkg/errors"
	"github.com/arthur-debert/droidsdk/pkg/filesystem"
	"github.com/arthur-debert/droidsdk/pkg/logging"
	"github.com/arthur-debert/droidsdk/pkg/output"
	"github.com/arthur-debert/droidsdk/pkg/paths"
	"github.com/arthur-debert/droidsdk/pkg/provision"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalFlags are the persistent flags shared by every command
type globalFlags struct {
	verbosity  int
	configFile string
	dryRun     bool
	force      bool
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "droidsdk",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(flags.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&flags.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", MsgFlagConfig)
	rootCmd.PersistentFlags().BoolVar(&flags.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().BoolVar(&flags.force, "force", false, MsgFlagForce)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.AddCommand(newInstallCmd(flags))
	rootCmd.AddCommand(newUpdateCmd(flags))
	rootCmd.AddCommand(newListCmd(flags))
	rootCmd.AddCommand(newInstallPackageCmd(flags))
	rootCmd.AddCommand(newGenConfigCmd(flags))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// loadOptions layers the config file, environment and flags
func loadOptions(cmd *cobra.Command, flags *globalFlags) (*config.Options, error) {
	overrides := map[string]interface{}{}
	if cmd.Flags().Changed("dry-run") {
		overrides["dry_run"] = flags.dryRun
	}
	if cmd.Flags().Changed("force") {
		overrides["force"] = flags.force
	}
	return config.Load(flags.configFile, overrides)
}

// newProvisioner builds a Provisioner for the configured part
func newProvisioner(cmd *cobra.Command, flags *globalFlags) (*provision.Provisioner, error) {
	opts, err := loadOptions(cmd, flags)
	if err != nil {
		return nil, err
	}

	p, err := paths.New(paths.Options{
		PartName:      opts.Name,
		PartsDir:      opts.Directories.Parts,
		BinDir:        opts.Directories.Bin,
		DownloadCache: opts.Directories.DownloadCache,
		InstallDir:    opts.InstallDir,
	})
	if err != nil {
		return nil, err
	}

	deps := provision.Dependencies{
		FS:      filesystem.NewOS(),
		Paths:   p,
		Verbose: flags.verbosity > 0,
	}
	if flags.verbosity >= 2 {
		deps.Transcript = cmd.ErrOrStderr()
	}
	return provision.New(opts, deps)
}

func noColor() bool {
	return os.Getenv("NO_COLOR") != "" || !isatty.IsTerminal(os.Stdout.Fd())
}

func renderResult(cmd *cobra.Command, res *provision.Result) error {
	notices := output.NewRenderer(cmd.ErrOrStderr(), noColor())
	for _, notice := range res.Notices {
		if err := notices.RenderNotice(notice); err != nil {
			return err
		}
	}
	return output.NewRenderer(cmd.OutOrStdout(), true).RenderPaths(res.Launchers)
}

func newInstallCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "install",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Example: MsgInstallExample,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.LogCommand("install", args)
			prov, err := newProvisioner(cmd, flags)
			if err != nil {
				return err
			}
			res, err := prov.Install(cmd.Context())
			if err != nil {
				return err
			}
			return renderResult(cmd, res)
		},
	}
}

func newUpdateCmd(flags *globalFlags) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:     "update",
		Short:   MsgUpdateShort,
		Long:    MsgUpdateLong,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			prov, err := newProvisioner(cmd, flags)
			if err != nil {
				return err
			}
			res, err := prov.Update(cmd.Context(), all)
			if err != nil {
				return err
			}
			return renderResult(cmd, res)
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, MsgFlagAll)
	return cmd
}

func newListCmd(flags *globalFlags) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		Long:    MsgListLong,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := output.ParseFormat(format)
			if err != nil {
				return err
			}
			prov, err := newProvisioner(cmd, flags)
			if err != nil {
				return err
			}
			cat, plan, err := prov.Plan(cmd.Context())
			if err != nil {
				return err
			}
			r := output.NewRenderer(cmd.OutOrStdout(), noColor())
			return r.RenderCatalog(output.NewCatalogView(cat, plan), f)
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", string(output.FormatText), MsgFlagOutput)
	return cmd
}

func newInstallPackageCmd(flags *globalFlags) *cobra.Command {
	var api string
	cmd := &cobra.Command{
		Use:     "install-package <title>",
		Short:   MsgInstallPackageShort,
		Long:    MsgInstallPackageLong,
		Example: MsgInstallPackageExample,
		Args:    cobra.ExactArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			prov, err := newProvisioner(cmd, flags)
			if err != nil {
				return err
			}
			outcomes, err := prov.InstallPackage(cmd.Context(), args[0], api)
			if err != nil {
				return err
			}
			for _, outcome := range outcomes {
				fmt.Fprintf(cmd.OutOrStdout(), MsgPackageOutcome, args[0], outcome)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&api, "api", "", MsgFlagAPI)
	return cmd
}

func newGenConfigCmd(flags *globalFlags) *cobra.Command {
	var write string
	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(cmd, flags)
			if err != nil {
				return err
			}
			content, err := config.GenerateConfigContent(opts)
			if err != nil {
				return err
			}
			if write == "" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), content)
				return err
			}
			if err := filesystem.NewOS().WriteFile(write, []byte(content), 0644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), MsgConfigWritten, write)
			return nil
		},
	}
	cmd.Flags().StringVarP(&write, "write", "w", "", MsgFlagWrite)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
