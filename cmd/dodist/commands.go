package dodist

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/arthur-debert/dodist/internal/version"
	"github.com/arthur-debert/dodist/pkg/cobrax/topics"
	"github.com/arthur-debert/dodist/pkg/config"
	"github.com/arthur-debert/dodist/pkg/core"
	"github.com/arthur-debert/dodist/pkg/logging"
	"github.com/arthur-debert/dodist/pkg/style"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

//go:embed topics
var topicsFS embed.FS

// topicWidth wraps markdown help topics on a terminal.
const topicWidth = 80

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	var verbosity int

	rootCmd := &cobra.Command{
		Use:     "dodist",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.String(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newPlanCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	var renderer topics.Renderer = &topics.PlainRenderer{}
	if isTerminal(os.Stdout) {
		renderer = topics.NewGlamourRenderer(topicWidth)
	}
	if sub, err := fs.Sub(topicsFS, "topics"); err == nil {
		if _, err := topics.Initialize(rootCmd, sub, topics.Options{Renderer: renderer}); err != nil {
			log.Warn().Err(err).Msg("Help topics unavailable")
		}
	}

	return rootCmd
}

func newBuildCmd() *cobra.Command {
	f := &buildFlags{}
	var details bool

	cmd := &cobra.Command{
		Use:     "build",
		Short:   MsgBuildShort,
		Long:    MsgBuildLong,
		Example: MsgBuildExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := f.outputFormat(cmd)
			if err != nil {
				return err
			}
			loaded, err := f.load(cmd)
			if err != nil {
				return err
			}

			log.Info().
				Str("source", loaded.Build.Source).
				Str("output", loaded.Build.Output).
				Str("config", loaded.File).
				Msg("Building")

			report, err := core.Build(cmd.Context(), core.BuildOptionsFromConfig(loaded.Config))
			if report != nil {
				printer := style.NewPrinter(cmd.OutOrStdout(), format, details)
				if perr := printer.Report(report); perr != nil {
					return perr
				}
			}
			return err
		},
	}

	f.register(cmd)
	cmd.Flags().BoolVarP(&details, "details", "d", false, MsgFlagDetails)
	return cmd
}

func newPlanCmd() *cobra.Command {
	f := &buildFlags{}
	var details bool

	cmd := &cobra.Command{
		Use:     "plan",
		Short:   MsgPlanShort,
		Long:    MsgPlanLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := f.outputFormat(cmd)
			if err != nil {
				return err
			}
			loaded, err := f.load(cmd)
			if err != nil {
				return err
			}

			plan, err := core.PlanBuild(core.BuildOptionsFromConfig(loaded.Config))
			if err != nil {
				return err
			}
			return style.NewPrinter(cmd.OutOrStdout(), format, details).Plan(plan)
		},
	}

	f.register(cmd)
	cmd.Flags().BoolVarP(&details, "details", "d", false, MsgFlagDetails)
	return cmd
}

func newConfigCmd() *cobra.Command {
	f := &buildFlags{}

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := f.load(cmd)
			if err != nil {
				return err
			}
			data, err := config.ToTOML(loaded.Config)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if loaded.File != "" {
				_, _ = fmt.Fprintf(out, MsgConfigSource, loaded.File)
			}
			_, err = out.Write(data)
			return err
		},
	}

	f.register(cmd)
	return cmd
}

func newGenConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), config.GenerateConfigContent())
			return err
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
				return cmd.Root().GenBashCompletionV2(out, true)
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

func newManCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Hidden:  true,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf(MsgErrManDir, dir, err)
			}

			header := &doc.GenManHeader{
				Title:   "DODIST",
				Section: "1",
				Source:  "dodist " + version.Version,
				Manual:  "dodist manual",
			}
			if err := doc.GenManTree(cmd.Root(), header, dir); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgManWritten, dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "man", MsgFlagManDir)
	return cmd
}
