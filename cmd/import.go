package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/obscura-corp/obscura-cli/internal/dotenv"
	"github.com/obscura-corp/obscura-cli/internal/orchestrate"
	"github.com/obscura-corp/obscura-cli/internal/paths"
	"github.com/obscura-corp/obscura-cli/internal/vaultfile"
	"github.com/obscura-corp/obscura-cli/internal/vaulterr"
)

var importCmd = &cobra.Command{
	Use:   "import <env-file>",
	Short: "Import KEY=VALUE pairs from a dotenv file into a vault",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		envFile := args[0]
		global, _ := cmd.Flags().GetBool("global")
		project, _ := cmd.Flags().GetBool("project")

		// Import defaults to the project vault when neither flag is given,
		// the opposite of most other commands' auto-resolution.
		forceProject := project || (!global && !project)
		scope, err := resolveScope(global, forceProject)
		if err != nil {
			return err
		}

		if !vaultfile.Exists(scope.VaultPath) {
			if scope.Scope == paths.ScopeGlobal {
				return fmt.Errorf("global vault not found; create one first with 'obscura init'")
			}
			return fmt.Errorf("project vault not found; create one with 'obscura init --project' or pass --global")
		}

		cwd, err := os.Getwd()
		if err != nil {
			return vaulterr.ErrFilePermission
		}
		envPath := filepath.Join(cwd, envFile)
		info, err := os.Stat(envPath)
		if err != nil {
			return fmt.Errorf("environment file '%s' not found in current directory", envFile)
		}
		if info.IsDir() {
			return fmt.Errorf("'%s' is not a file", envFile)
		}
		content, err := os.ReadFile(envPath)
		if err != nil {
			return fmt.Errorf("failed to read '%s'", envFile)
		}

		pairs := dotenv.Parse(string(content))
		if len(pairs) == 0 {
			fmt.Fprintf(os.Stdout, "No environment variables found in %s\n", envFile)
			return nil
		}

		selfExe, _ := os.Executable()
		loaded, err := orchestrate.LoadVault(scope, selfExe)
		if err != nil {
			return err
		}
		defer loaded.Close()

		added, skipped := 0, 0
		for _, kv := range pairs {
			if loaded.Aliases.Has(kv.Key) {
				fmt.Fprintf(os.Stdout, "Skipping '%s' - already exists in vault\n", kv.Key)
				skipped++
				continue
			}
			if err := loaded.Aliases.Add(kv.Key, kv.Value, loaded.Dek); err != nil {
				return err
			}
			added++
			fmt.Fprintf(os.Stdout, "Added '%s' to vault\n", kv.Key)
		}

		if err := loaded.Save(); err != nil {
			return err
		}

		fmt.Fprintln(os.Stdout)
		fmt.Fprintln(os.Stdout, "Import completed:")
		fmt.Fprintf(os.Stdout, "  Added: %d variables\n", added)
		fmt.Fprintf(os.Stdout, "  Skipped: %d variables (already exist)\n", skipped)
		fmt.Fprintf(os.Stdout, "  Vault: %s vault\n", scope.Scope)
		return nil
	},
}

func init() {
	addScopeFlags(importCmd)
}
