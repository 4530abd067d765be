package domain

import (
	"bytes"
	"encoding/json"
)

const StatusSuccess = "success"

// Envelope wraps every response of the POS endpoints.
type Envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
}

// OK reports whether the server accepted the request.
func (e Envelope) OK() bool {
	return e.Status == StatusSuccess
}

// DataIsArray reports whether data holds a JSON array.
func (e Envelope) DataIsArray() bool {
	d := bytes.TrimSpace(e.Data)
	return len(d) > 0 && d[0] == '['
}
