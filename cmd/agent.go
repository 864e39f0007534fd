package cmd

import (
	"github.com/spf13/cobra"

	"github.com/obscura-corp/obscura-cli/internal/paths"
	"github.com/obscura-corp/obscura-cli/internal/session/agent"
)

// agentCmd implements the hidden caching daemon that client.EnsureStarted
// spawns. It is never invoked directly by a user.
var agentCmd = &cobra.Command{
	Use:    "__agent",
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		sockPath, err := paths.AgentSocketPath()
		if err != nil {
			return err
		}
		if err := paths.EnsureConfigDir(); err != nil {
			return err
		}
		return agent.NewServer(sockPath).Run()
	},
}
