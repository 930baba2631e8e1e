// ABOUTME: Wire envelope types for agent requests and responses on the bus.
// ABOUTME: The envelope ID carries the correlation identifier end to end.

package bus

import (
	"encoding/json"
	"time"
)

// RequestEnvelope is the JSON shape published to an agent request topic.
type RequestEnvelope struct {
	ID     string        `json:"id"`
	Method string        `json:"method"`
	Params RequestParams `json:"params"`
}

// RequestParams carries the user message and its surrounding context.
type RequestParams struct {
	Payload        string          `json:"payload"`
	SessionContext json.RawMessage `json:"sessionContext,omitempty"`
	Intent         string          `json:"intent"`
	Timestamp      time.Time       `json:"timestamp"`
}

// ResponseEnvelope is the JSON shape agents publish to the response topic.
// The ID must echo the request's correlation identifier.
type ResponseEnvelope struct {
	ID     string         `json:"id"`
	Result ResponseResult `json:"result"`
}

// ResponseResult wraps the agent reply and any updated session context.
type ResponseResult struct {
	Response json.RawMessage `json:"response"`
	Context  json.RawMessage `json:"context,omitempty"`
}
