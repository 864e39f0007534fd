package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/obscura-corp/obscura-cli/internal/orchestrate"
	"github.com/obscura-corp/obscura-cli/internal/paths"
	"github.com/obscura-corp/obscura-cli/internal/vaultfile"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new vault",
	RunE: func(cmd *cobra.Command, args []string) error {
		project, _ := cmd.Flags().GetBool("project")

		var scope paths.ScopeInfo
		if project {
			cwd, cerr := os.Getwd()
			if cerr != nil {
				return cerr
			}
			if err := paths.EnsureProjectDir(cwd); err != nil {
				return err
			}
			if err := paths.WriteProjectMeta(cwd); err != nil {
				return err
			}
			vaultPath, verr := paths.ProjectVaultPath(cwd)
			if verr != nil {
				return verr
			}
			scope = paths.ScopeInfo{Scope: paths.ScopeProject, VaultPath: vaultPath, ProjectPath: cwd}
		} else {
			if err := paths.EnsureConfigDir(); err != nil {
				return err
			}
			vaultPath, verr := paths.GlobalVaultPath()
			if verr != nil {
				return verr
			}
			scope = paths.ScopeInfo{Scope: paths.ScopeGlobal, VaultPath: vaultPath}
		}

		if vaultfile.Exists(scope.VaultPath) {
			if scope.Scope == paths.ScopeProject {
				fmt.Fprintln(os.Stdout, "Project vault already exists for this directory")
			} else {
				fmt.Fprintln(os.Stdout, "Global vault already exists")
			}
			return nil
		}

		selfExe, _ := os.Executable()
		loaded, err := orchestrate.CreateVault(scope, selfExe)
		if err != nil {
			return err
		}
		defer loaded.Close()

		fmt.Fprintf(os.Stdout, "Initialized %s vault at %s\n", scope.Scope, scope.VaultPath)
		return nil
	},
}

func init() {
	initCmd.Flags().Bool("project", false, "create a project vault for the current directory")
}
