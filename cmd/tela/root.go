package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/tela/internal/version"
	"github.com/arthur-debert/tela/pkg/logging"
)

var (
	verbosity  int
	configPath string
	outputMode string
	themeName  string
	width      int
	debug      bool

	rootCmd = &cobra.Command{
		Use:   "tela",
		Short: "Template-driven terminal rendering",
		Long: `tela renders structured data through declarative templates and
themes. Handler results flow through a Jinja-compatible template pass,
a style-tag pass, and ANSI-aware layout before reaching the terminal.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command; called by main.main()
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default is $XDG_CONFIG_HOME/tela/tela.toml)")
	rootCmd.PersistentFlags().StringVarP(&outputMode, "output", "o", "", "Output mode: auto, term, text, term-debug, json, yaml, xml, csv")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Theme name or file path")
	rootCmd.PersistentFlags().IntVar(&width, "width", 0, "Layout width (0 = detect)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Re-read file-backed templates and themes on every render")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(stylesCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tela version %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
	},
}

var completionCmd = &cobra.Command{
	Use:                   "completion [bash|zsh|fish|powershell]",
	Short:                 "Generate shell completion script",
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			return cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			return cmd.Root().GenFishCompletion(os.Stdout, true)
		default:
			return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
		}
	},
}
