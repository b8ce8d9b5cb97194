package api

import (
	"strconv"

	"github.com/danielgtaylor/huma/v2"
)

// EnvelopeVersion is the wire format version clients check before parsing.
const EnvelopeVersion = 1

// envelope is the uniform response wrapper. Success responses carry data,
// error responses carry error, and both carry the version field.
type envelope struct {
	V       int  `json:"v"`
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
	Error   any  `json:"error,omitempty"`
}

// EnvelopeTransformer wraps every response body in the versioned envelope.
// Register it on the huma config before creating the adapter.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	code, err := strconv.Atoi(status)
	if err != nil {
		code = 200
	}

	if code >= 400 {
		return envelope{V: EnvelopeVersion, Success: false, Error: errorPayload(v)}, nil
	}

	return envelope{V: EnvelopeVersion, Success: true, Data: v}, nil
}

// errorPayload flattens simple errors to a string and keeps coded errors
// structured so clients can switch on code.
func errorPayload(v any) any {
	switch e := v.(type) {
	case *APIError:
		if e.Code != "" {
			return e
		}
		return e.Message
	case error:
		return e.Error()
	default:
		return v
	}
}
