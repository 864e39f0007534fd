package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/obscura-corp/obscura-cli/internal/orchestrate"
	"github.com/obscura-corp/obscura-cli/internal/vaulterr"
)

var getCmd = &cobra.Command{
	Use:   "get <alias>",
	Short: "Print a secret's value",
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

		value, ok, err := loaded.Aliases.Get(aliasName, loaded.Dek)
		if err != nil {
			return err
		}
		if !ok {
			return &vaulterr.AliasNotFoundError{Alias: aliasName}
		}

		fmt.Fprint(os.Stdout, value)
		return nil
	},
}

func init() {
	addScopeFlags(getCmd)
}
