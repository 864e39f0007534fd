package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/obscura-corp/obscura-cli/internal/paths"
	"github.com/obscura-corp/obscura-cli/internal/prompt"
	"github.com/obscura-corp/obscura-cli/internal/session"
	"github.com/obscura-corp/obscura-cli/internal/vaultfile"
	"github.com/obscura-corp/obscura-cli/internal/vaulterr"
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Permanently delete a vault and its contents",
	RunE: func(cmd *cobra.Command, args []string) error {
		global, _ := cmd.Flags().GetBool("global")
		project, _ := cmd.Flags().GetBool("project")
		yes, _ := cmd.Flags().GetBool("yes")

		scope, err := resolveScope(global, project)
		if err != nil {
			return err
		}

		if !vaultfile.Exists(scope.VaultPath) {
			return vaulterr.ErrVaultNotFound
		}

		if !yes {
			ok, err := prompt.Confirm(fmt.Sprintf("Permanently delete the %s vault at %s?", scope.Scope, scope.VaultPath), false)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(os.Stdout, "Aborted.")
				return nil
			}
		}

		selfExe, _ := os.Executable()
		if cache, err := session.Select(selfExe); err == nil {
			_ = cache.Clear(scope.VaultPath)
		}

		if err := os.Remove(scope.VaultPath); err != nil {
			return vaulterr.ErrFilePermission
		}

		if scope.Scope == paths.ScopeProject {
			if metaPath, merr := paths.ProjectMetaPath(scope.ProjectPath); merr == nil {
				_ = os.Remove(metaPath)
			}
		}

		fmt.Fprintf(os.Stdout, "Deleted %s vault\n", scope.Scope)
		return nil
	},
}

func init() {
	addScopeFlags(deleteCmd)
	deleteCmd.Flags().Bool("yes", false, "skip the confirmation prompt")
}
