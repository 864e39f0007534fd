package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/obscura-corp/obscura-cli/internal/orchestrate"
	"github.com/obscura-corp/obscura-cli/internal/prompt"
	"github.com/obscura-corp/obscura-cli/internal/vaulterr"
)

var removeCmd = &cobra.Command{
	Use:   "remove <alias>",
	Short: "Remove an alias from a vault",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		aliasName := args[0]
		global, _ := cmd.Flags().GetBool("global")
		project, _ := cmd.Flags().GetBool("project")
		yes, _ := cmd.Flags().GetBool("yes")

		scope, err := resolveScope(global, project)
		if err != nil {
			return err
		}
		selfExe, _ := os.Executable()
		loaded, err := orchestrate.LoadVault(scope, selfExe)
		if err != nil {
			return err
		}
		defer loaded.Close()

		if !loaded.Aliases.Has(aliasName) {
			return &vaulterr.AliasNotFoundError{Alias: aliasName}
		}

		if !yes {
			ok, err := prompt.Confirm(fmt.Sprintf("Remove '%s'?", aliasName), false)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(os.Stdout, "Aborted.")
				return nil
			}
		}

		loaded.Aliases.Remove(aliasName)
		if err := loaded.Save(); err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "Removed '%s' from %s vault\n", aliasName, scope.Scope)
		return nil
	},
}

func init() {
	addScopeFlags(removeCmd)
	removeCmd.Flags().Bool("yes", false, "skip the confirmation prompt")
}
