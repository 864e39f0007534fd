package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/obscura-corp/obscura-cli/internal/orchestrate"
	"github.com/obscura-corp/obscura-cli/internal/prompt"
)

var addCmd = &cobra.Command{
	Use:   "add <alias>",
	Short: "Add a secret under alias",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		aliasName := args[0]
		global, _ := cmd.Flags().GetBool("global")
		project, _ := cmd.Flags().GetBool("project")
		fromGlobal, _ := cmd.Flags().GetBool("from-global")

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

		if loaded.Aliases.Has(aliasName) {
			ok, err := prompt.Confirm(fmt.Sprintf("Alias '%s' already exists. Overwrite?", aliasName), false)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(os.Stdout, "Aborted.")
				return nil
			}
		}

		var value string
		if fromGlobal {
			globalScope, err := resolveScope(true, false)
			if err != nil {
				return err
			}
			globalLoaded, err := orchestrate.LoadVault(globalScope, selfExe)
			if err != nil {
				return err
			}
			defer globalLoaded.Close()
			v, ok, err := globalLoaded.Aliases.Get(aliasName, globalLoaded.Dek)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("alias '%s' not found in global vault", aliasName)
			}
			value = v
		} else {
			v, err := prompt.SecretValue(fmt.Sprintf("Value for %s: ", aliasName))
			if err != nil {
				return err
			}
			value = v
		}

		if err := loaded.Aliases.Add(aliasName, value, loaded.Dek); err != nil {
			return err
		}
		if err := loaded.Save(); err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "Added '%s' to %s vault\n", aliasName, scope.Scope)
		return nil
	},
}

func init() {
	addScopeFlags(addCmd)
	addCmd.Flags().Bool("from-global", false, "copy the value from the same alias in the global vault")
}
