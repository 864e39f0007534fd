// Package agent implements the local caching daemon: a Unix-domain socket
// server holding unlocked DEKs in memory, and the client used to reach it.
package agent

// Kind identifies the request being framed over the socket.
type Kind string

const (
	KindGetDek   Kind = "get_dek"
	KindStoreDek Kind = "store_dek"
	KindClear    Kind = "clear"
	KindClearAll Kind = "clear_all"
	KindPing     Kind = "ping"
	KindShutdown Kind = "shutdown"
)

// Request is one JSON-framed message sent to the agent over its socket.
type Request struct {
	Kind      Kind   `json:"kind"`
	VaultPath string `json:"vault_path,omitempty"`
	DekB64    string `json:"dek_b64,omitempty"`
	TTLSecs   int64  `json:"ttl_secs,omitempty"`
}

// Status is the outcome of a Response.
type Status string

const (
	StatusOK       Status = "ok"
	StatusNotFound Status = "not_found"
	StatusError    Status = "error"
)

// Response is the agent's JSON-framed reply.
type Response struct {
	Status Status `json:"status"`
	DekB64 string `json:"dek_b64,omitempty"`
	Error  string `json:"error,omitempty"`
}
