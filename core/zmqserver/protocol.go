package zmqserver

import "github.com/dmitrymomot/lrucache/core/store"

// Operations accepted in Request.Op.
const (
	OpGet      = "get"
	OpPut      = "put"
	OpSnapshot = "snapshot"
)

// Error codes returned in ReplyError.Code.
const (
	CodeNotFound     = "not_found"
	CodeInvalidInput = "invalid_input"
	CodeBadRequest   = "bad_request"
	CodeUnknownOp    = "unknown_op"
	CodeClosed       = "closed"
	CodeInternal     = "internal"
)

// Request is a single JSON-encoded frame sent by a client.
type Request struct {
	Op    string `json:"op"`
	Key   string `json:"key,omitempty"`
	Value string `json:"value,omitempty"`
}

// Reply is the JSON-encoded answer to a Request.
type Reply struct {
	OK      bool          `json:"ok"`
	Value   string        `json:"value,omitempty"`
	Entries []store.Entry `json:"entries,omitempty"`
	Error   *ReplyError   `json:"error,omitempty"`
}

// ReplyError describes a failed request.
type ReplyError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ReplyError) Error() string {
	return e.Code + ": " + e.Message
}
