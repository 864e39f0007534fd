package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/obscura-corp/obscura-cli/internal/alias"
	"github.com/obscura-corp/obscura-cli/internal/orchestrate"
	"github.com/obscura-corp/obscura-cli/internal/paths"
	"github.com/obscura-corp/obscura-cli/internal/vaultfile"
	"github.com/obscura-corp/obscura-cli/internal/vaulterr"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List alias names in a vault",
	RunE: func(cmd *cobra.Command, args []string) error {
		global, _ := cmd.Flags().GetBool("global")
		project, _ := cmd.Flags().GetBool("project")
		asJSON, _ := cmd.Flags().GetBool("json")

		scope, err := resolveScope(global, project)
		if err != nil {
			return err
		}

		selfExe, _ := os.Executable()

		// A missing global vault is auto-created rather than treated as an
		// error, so `list` works as the very first command a user runs.
		// Project vaults have no such fallback: there's no directory-scoped
		// "default" to create on the user's behalf.
		if !vaultfile.Exists(scope.VaultPath) {
			if scope.Scope != paths.ScopeGlobal {
				return vaulterr.ErrVaultNotFound
			}
			fmt.Fprintln(os.Stdout, "Global vault not found. Creating it...")
			loaded, err := orchestrate.CreateVault(scope, selfExe)
			if err != nil {
				return err
			}
			loaded.Close()
			if asJSON {
				return printList(nil, true)
			}
			return nil
		}
		loaded, err := orchestrate.LoadVault(scope, selfExe)
		if err != nil {
			return err
		}
		defer loaded.Close()

		return printList(loaded.Aliases, asJSON)
	},
}

func printList(m *alias.Map, asJSON bool) error {
	names := []string{}
	if m != nil {
		names = m.List()
	}

	if asJSON {
		out, err := json.Marshal(struct {
			Aliases []string `json:"aliases"`
		}{Aliases: names})
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(out))
		return nil
	}

	if len(names) == 0 {
		fmt.Fprintln(os.Stdout, "No aliases stored.")
		return nil
	}

	var b strings.Builder
	table := tablewriter.NewWriter(&b)
	table.Header([]string{"Alias", "Created", "Rotated"})
	for _, name := range names {
		entry := m.Aliases[name]
		rotated := "-"
		if entry.RotatedAt != nil {
			rotated = entry.RotatedAt.Format("2006-01-02 15:04")
		}
		_ = table.Append([]string{name, entry.CreatedAt.Format("2006-01-02 15:04"), rotated})
	}
	_ = table.Render()
	fmt.Fprint(os.Stdout, b.String())
	return nil
}

func init() {
	addScopeFlags(listCmd)
	listCmd.Flags().Bool("json", false, "output as JSON")
}
