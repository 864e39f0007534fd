package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/obscura-corp/obscura-cli/internal/dotenv"
	"github.com/obscura-corp/obscura-cli/internal/orchestrate"
	"github.com/obscura-corp/obscura-cli/internal/vaulterr"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a vault's aliases as a dotenv file",
	RunE: func(cmd *cobra.Command, args []string) error {
		global, _ := cmd.Flags().GetBool("global")
		project, _ := cmd.Flags().GetBool("project")
		asDotenv, _ := cmd.Flags().GetBool("dotenv")
		output, _ := cmd.Flags().GetString("output")
		overwrite, _ := cmd.Flags().GetBool("overwrite")

		if !asDotenv {
			return fmt.Errorf("export currently only supports --dotenv")
		}

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

		var pairs []dotenv.KeyValue
		for _, name := range loaded.Aliases.List() {
			value, ok, err := loaded.Aliases.Get(name, loaded.Dek)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			pairs = append(pairs, dotenv.KeyValue{Key: name, Value: value})
		}
		rendered := dotenv.Format(pairs)

		if output == "" {
			fmt.Fprint(os.Stdout, rendered)
			return nil
		}

		if !overwrite {
			if _, err := os.Stat(output); err == nil {
				return &vaulterr.FileExistsError{Path: output}
			}
		}

		if err := os.WriteFile(output, []byte(rendered), 0o600); err != nil {
			return vaulterr.ErrFilePermission
		}

		fmt.Fprintf(os.Stdout, "Exported %d aliases to %s\n", len(pairs), output)
		return nil
	},
}

func init() {
	addScopeFlags(exportCmd)
	exportCmd.Flags().Bool("dotenv", false, "export in dotenv (KEY=VALUE) format")
	exportCmd.Flags().String("output", "", "write to this file instead of stdout")
	exportCmd.Flags().Bool("overwrite", false, "overwrite the output file if it already exists")
}
