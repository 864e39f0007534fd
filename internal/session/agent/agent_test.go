package agent

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func startTestServer(t *testing.T) (*Client, func()) {
	t.Helper()
	sockPath := filepath.Join(t.TempDir(), "agent.sock")
	srv := NewServer(sockPath)

	done := make(chan struct{})
	go func() {
		_ = srv.Run()
		close(done)
	}()

	client := NewClient(sockPath)
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && !client.IsRunning() {
		time.Sleep(10 * time.Millisecond)
	}
	require.True(t, client.IsRunning(), "server did not come up in time")

	cleanup := func() {
		_ = client.Shutdown()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
		}
	}
	return client, cleanup
}

func TestClientStoreFetchRoundTrip(t *testing.T) {
	client, cleanup := startTestServer(t)
	defer cleanup()

	dek := make([]byte, 32)
	for i := range dek {
		dek[i] = byte(i)
	}

	require.NoError(t, client.StoreDek("/vaults/a", dek, time.Minute))

	got, ok, err := client.GetDek("/vaults/a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, dek, got)
}

func TestClientGetMissingDek(t *testing.T) {
	client, cleanup := startTestServer(t)
	defer cleanup()

	_, ok, err := client.GetDek("/vaults/absent")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestClientClearAndClearAll(t *testing.T) {
	client, cleanup := startTestServer(t)
	defer cleanup()

	dekA := make([]byte, 32)
	dekB := make([]byte, 32)
	require.NoError(t, client.StoreDek("/vaults/a", dekA, time.Minute))
	require.NoError(t, client.StoreDek("/vaults/b", dekB, time.Minute))

	require.NoError(t, client.Clear("/vaults/a"))
	_, ok, err := client.GetDek("/vaults/a")
	require.NoError(t, err)
	require.False(t, ok)
	_, ok, err = client.GetDek("/vaults/b")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, client.ClearAll())
	_, ok, err = client.GetDek("/vaults/b")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestIsRunningFalseWithoutServer(t *testing.T) {
	client := NewClient(filepath.Join(t.TempDir(), "no-such.sock"))
	require.False(t, client.IsRunning())
}
