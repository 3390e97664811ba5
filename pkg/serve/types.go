package serve

import (
	"encoding/json"
)

// Request types.
const (
	TypeCheck      = "check"
	TypeCheckBatch = "check_batch"
	TypeClose      = "close"
)

// Request represents an incoming NDJSON request
type Request struct {
	Type    string          `json:"type"` // "check" | "check_batch" | "close"
	Payload json.RawMessage `json:"payload"`
}

// CheckPayload is the payload for "check" requests. Content is sent as a
// JSON string, so it is always valid UTF-8 by the time it arrives.
type CheckPayload struct {
	Source  string `json:"source"`
	Content string `json:"content"`
}

// CheckBatchPayload is the payload for "check_batch" requests
type CheckBatchPayload struct {
	Items []CheckPayload `json:"items"`
}

// Response represents an outgoing NDJSON response
type Response struct {
	Success bool            `json:"success"`
	Type    string          `json:"type"` // "ready" | "check" | "check_batch" | "decode" | request type on error
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ReadyData is the data field for "ready" responses
type ReadyData struct {
	Version string `json:"version"`
}
