package cmd

import (
	"github.com/spf13/cobra"

	"github.com/obscura-corp/obscura-cli/internal/paths"
)

// addScopeFlags attaches the -g/--global and -p/--project flags shared by
// every scope-aware command.
func addScopeFlags(cmd *cobra.Command) (global, project *bool) {
	global = cmd.Flags().BoolP("global", "g", false, "operate on the global vault")
	project = cmd.Flags().BoolP("project", "p", false, "operate on the current directory's project vault")
	return
}

func resolveScope(global, project bool) (paths.ScopeInfo, error) {
	return paths.ResolveScope(global, project)
}
