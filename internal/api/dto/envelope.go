package dto

import "encoding/json"

// Envelope is the body shape of every API response.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// RawEnvelope is the decoding side of Envelope; Data is left for the caller to unmarshal.
type RawEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorBody      `json:"error,omitempty"`
}

// OK wraps data in a successful envelope.
func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// Fail builds an error envelope.
func Fail(code, message string, details map[string]any) Envelope {
	return Envelope{Error: &ErrorBody{Code: code, Message: message, Details: details}}
}
