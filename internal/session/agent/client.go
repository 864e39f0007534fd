package agent

import (
	"encoding/base64"
	"encoding/json"
	"net"
	"os"
	"os/exec"
	"time"

	"github.com/obscura-corp/obscura-cli/internal/vaulterr"
)

// Client talks to a running Server over its Unix-domain socket.
type Client struct {
	sockPath string
	timeout  time.Duration
}

// NewClient builds a Client targeting the agent socket at sockPath.
func NewClient(sockPath string) *Client {
	return &Client{sockPath: sockPath, timeout: 2 * time.Second}
}

// IsRunning reports whether a socket exists and answers a ping.
func (c *Client) IsRunning() bool {
	if _, err := os.Stat(c.sockPath); err != nil {
		return false
	}
	resp, err := c.send(Request{Kind: KindPing})
	return err == nil && resp.Status == StatusOK
}

// EnsureStarted starts the agent as a detached background process if it
// isn't already reachable. selfExe is the path to this binary (os.Executable()),
// invoked with the hidden "__agent" subcommand.
func EnsureStarted(sockPath, selfExe string) error {
	client := NewClient(sockPath)
	if client.IsRunning() {
		return nil
	}
	cmd := exec.Command(selfExe, "__agent")
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return vaulterr.ErrAgentNotRunning
	}
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if client.IsRunning() {
			return nil
		}
		time.Sleep(50 * time.Millisecond)
	}
	return vaulterr.ErrAgentNotRunning
}

func (c *Client) GetDek(vaultPath string) (dek []byte, ok bool, err error) {
	resp, err := c.send(Request{Kind: KindGetDek, VaultPath: vaultPath})
	if err != nil {
		return nil, false, err
	}
	switch resp.Status {
	case StatusNotFound:
		return nil, false, nil
	case StatusOK:
		dek, err = base64.StdEncoding.DecodeString(resp.DekB64)
		if err != nil || len(dek) != 32 {
			return nil, false, vaulterr.ErrDecryptionFailed
		}
		return dek, true, nil
	default:
		return nil, false, vaulterr.ErrCacheUnavailable
	}
}

func (c *Client) StoreDek(vaultPath string, dek []byte, ttl time.Duration) error {
	resp, err := c.send(Request{
		Kind:      KindStoreDek,
		VaultPath: vaultPath,
		DekB64:    base64.StdEncoding.EncodeToString(dek),
		TTLSecs:   int64(ttl.Seconds()),
	})
	if err != nil {
		return err
	}
	if resp.Status != StatusOK {
		return vaulterr.ErrCacheUnavailable
	}
	return nil
}

func (c *Client) Clear(vaultPath string) error {
	resp, err := c.send(Request{Kind: KindClear, VaultPath: vaultPath})
	if err != nil {
		return err
	}
	if resp.Status != StatusOK {
		return vaulterr.ErrCacheUnavailable
	}
	return nil
}

func (c *Client) ClearAll() error {
	resp, err := c.send(Request{Kind: KindClearAll})
	if err != nil {
		return err
	}
	if resp.Status != StatusOK {
		return vaulterr.ErrCacheUnavailable
	}
	return nil
}

func (c *Client) Shutdown() error {
	_, err := c.send(Request{Kind: KindShutdown})
	return err
}

func (c *Client) send(req Request) (Response, error) {
	conn, err := net.DialTimeout("unix", c.sockPath, c.timeout)
	if err != nil {
		return Response{}, vaulterr.ErrAgentNotRunning
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(c.timeout))

	if err := json.NewEncoder(conn).Encode(req); err != nil {
		return Response{}, vaulterr.ErrAgentNotRunning
	}
	var resp Response
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		return Response{}, vaulterr.ErrAgentNotRunning
	}
	return resp, nil
}
