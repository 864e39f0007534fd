package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/obscura-corp/obscura-cli/internal/session"
)

var lockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Clear cached vault keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		global, _ := cmd.Flags().GetBool("global")
		project, _ := cmd.Flags().GetBool("project")

		selfExe, _ := os.Executable()
		cache, err := session.Select(selfExe)
		if err != nil {
			return err
		}

		if global || project {
			scope, err := resolveScope(global, project)
			if err != nil {
				return err
			}
			if err := cache.Clear(scope.VaultPath); err != nil {
				return err
			}
		} else {
			if err := cache.ClearAll(); err != nil {
				return err
			}
		}

		fmt.Fprintln(os.Stdout, "Cleared cached vault keys")
		return nil
	},
}

func init() {
	addScopeFlags(lockCmd)
}
