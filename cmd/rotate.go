package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/obscura-corp/obscura-cli/internal/orchestrate"
	"github.com/obscura-corp/obscura-cli/internal/prompt"
	"github.com/obscura-corp/obscura-cli/internal/vaulterr"
)

var rotateCmd = &cobra.Command{
	Use:   "rotate <alias>",
	Short: "Replace an alias's stored value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		aliasName := args[0]
		global, _ := cmd.Flags().GetBool("global")
		project, _ := cmd.Flags().GetBool("project")

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

		value, err := prompt.SecretValue(fmt.Sprintf("New value for %s: ", aliasName))
		if err != nil {
			return err
		}

		if _, err := loaded.Aliases.Rotate(aliasName, value, loaded.Dek); err != nil {
			return err
		}
		if err := loaded.Save(); err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "Rotated '%s' in %s vault\n", aliasName, scope.Scope)
		return nil
	},
}

func init() {
	addScopeFlags(rotateCmd)
}
