// Package ranking speaks the sidecar's newline-delimited JSON protocol over
// TCP. Each request opens a fresh connection, writes one JSON line, and reads
// one JSON line back. The sidecar owns the ranking model; this package only
// carries the wire contract.
package ranking

import "github.com/lazypower/hologram/internal/pressure"

// Request types accepted by the sidecar.
const (
	TypeQuery    = "query"
	TypePing     = "ping"
	TypeUpdate   = "update"
	TypeShutdown = "shutdown"
)

// Response types the sidecar sends back.
const (
	TypeResult = "result"
	TypePong   = "pong"
	TypeError  = "error"
)

// Request is one line on the wire, client to sidecar.
type Request struct {
	ID      string         `json:"id"`
	Type    string         `json:"type"`
	Payload RequestPayload `json:"payload"`
}

// RequestPayload carries the per-type fields. Only the fields relevant to
// the request type are populated; the rest are omitted.
type RequestPayload struct {
	Prompt        string         `json:"prompt,omitempty"`
	FilesChanged  []string       `json:"files_changed,omitempty"`
	SessionState  *SessionState  `json:"session_state,omitempty"`
	ProjectDir    string         `json:"project_dir,omitempty"`
	ProjectConfig *ProjectConfig `json:"project_config,omitempty"`
	BoostFiles    []string       `json:"boost_files,omitempty"`
}

// SessionState identifies where in a conversation the query originates.
type SessionState struct {
	TurnNumber int    `json:"turn_number"`
	SessionID  string `json:"session_id"`
}

// ProjectConfig narrows which files the sidecar considers.
type ProjectConfig struct {
	Patterns []string `json:"patterns,omitempty"`
	Exclude  []string `json:"exclude,omitempty"`
	MaxFiles int      `json:"max_files,omitempty"`
}

// Response is one line on the wire, sidecar to client.
type Response struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Payload  ResponsePayload `json:"payload"`
	TimingMS float64         `json:"timing_ms,omitempty"`
}

// ResponsePayload holds either ranked files (result) or an error message.
type ResponsePayload struct {
	Hot          []pressure.ScoredFile `json:"hot,omitempty"`
	Warm         []pressure.ScoredFile `json:"warm,omitempty"`
	Cold         []pressure.ScoredFile `json:"cold,omitempty"`
	ErrorMessage string                `json:"error_message,omitempty"`
}
