package session

import (
	"github.com/obscura-corp/obscura-cli/internal/paths"
	"github.com/obscura-corp/obscura-cli/internal/session/agent"
	"github.com/obscura-corp/obscura-cli/internal/session/filecache"
)

// Select picks the agent-backed cache if a daemon is reachable (starting
// one if selfExe is non-empty and none is running), falling back to the
// encrypted file cache otherwise. It returns an error only when the session
// file's location can't be resolved or the config directory can't be
// created.
func Select(selfExe string) (Cache, error) {
	sockPath, err := paths.AgentSocketPath()
	if err == nil {
		if selfExe != "" {
			_ = agent.EnsureStarted(sockPath, selfExe)
		}
		client := newAgentCache(sockPath)
		if client.client.IsRunning() {
			return client, nil
		}
	}

	sessionPath, err := paths.SessionFilePath()
	if err != nil {
		return nil, err
	}
	if err := paths.EnsureConfigDir(); err != nil {
		return nil, err
	}
	return filecache.New(sessionPath), nil
}
