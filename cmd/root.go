package cmd

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	logger "github.com/lockboxcli/lockbox/internal/logging"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	rootCmd = &cobra.Command{
		Use:   "lockbox",
		Short: "Lockbox - an offline vault for API credentials.",
		Long: `Lockbox keeps a small bundle of API credentials encrypted at rest in a
single local file, protected by a master password.

Credentials are sealed with AES-256-GCM under a key derived from your
password, and the vault format is versioned so derivation parameters can be
strengthened over time without breaking existing vaults.

Available Commands:
  save       Create a vault from interactively entered credentials
  view       Decrypt and display the stored credentials (masked by default)
  rotate     Re-encrypt the vault under a new master password

Run 'lockbox help <command>' for more details on a specific command.
`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing lockbox with verbose=%t, debug=%t", verbose, debug)
		},
		Run: func(cmd *cobra.Command, args []string) {
			figure.NewFigure("Lockbox", "", true).Print()
			fmt.Println("\nRun 'lockbox --help' to see available commands.")
		},
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(rotateCmd)
}
