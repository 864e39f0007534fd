package session

import (
	"time"

	"github.com/obscura-corp/obscura-cli/internal/session/agent"
)

// agentCache adapts agent.Client to the Cache interface.
type agentCache struct {
	client *agent.Client
}

func newAgentCache(sockPath string) *agentCache {
	return &agentCache{client: agent.NewClient(sockPath)}
}

func (a *agentCache) Store(vaultPath string, dek []byte, ttl time.Duration) error {
	return a.client.StoreDek(vaultPath, dek, ttl)
}

func (a *agentCache) Fetch(vaultPath string) ([]byte, bool, error) {
	return a.client.GetDek(vaultPath)
}

func (a *agentCache) Clear(vaultPath string) error {
	return a.client.Clear(vaultPath)
}

func (a *agentCache) ClearAll() error {
	return a.client.ClearAll()
}

func (a *agentCache) Available() bool {
	return a.client.IsRunning()
}
