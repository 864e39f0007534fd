package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/obscura-corp/obscura-cli/internal/config"
)

var (
	verbose bool

	rootCmd = &cobra.Command{
		Use:   "obscura",
		Short: "A local, passphrase-secured secret vault",
		Long: `Obscura stores short secrets under aliases in a self-contained encrypted
file, and exposes them to interactive retrieval or spawned child processes as
environment variables. A user-global vault and per-directory project vaults
coexist; project vaults are addressed by the canonical path of the directory
that contains them.

Examples:
  obscura init
  obscura add github-token
  obscura get github-token
  obscura list
  obscura run -- npm start`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, result := config.Load()
			if !result.Valid {
				for _, e := range result.Errors {
					fmt.Fprintf(os.Stderr, "config: %s: %s\n", e.Field, e.Message)
				}
				return fmt.Errorf("invalid configuration")
			}
			return nil
		},
	}
)

// Execute runs the root command, mapping every error to exit code 1 with a
// single-line diagnostic. Secrets never appear in these messages — the
// collapsed error model means every sentinel already carries the most
// detail it's safe to show.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(initCmd, addCmd, getCmd, listCmd, removeCmd, deleteCmd,
		rotateCmd, exportCmd, importCmd, runCmd, lockCmd, unlockCmd, agentCmd)
}

// IsVerbose reports whether -v/--verbose was set.
func IsVerbose() bool {
	return verbose || viper.GetBool("verbose")
}
