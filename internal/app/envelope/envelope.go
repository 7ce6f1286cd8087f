// Package envelope holds the uniform response shape returned by every
// catalog service operation.
package envelope

import "fmt"

// Status is the outcome marker carried by every envelope.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Envelope is embedded by every service response. Entity payloads sit next
// to it in the JSON object.
type Envelope struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

// OK reports whether the envelope describes a success.
func (e Envelope) OK() bool {
	return e.Status == StatusSuccess
}

// Success builds a success envelope with an optional message.
func Success(message string) Envelope {
	return Envelope{Status: StatusSuccess, Message: message}
}

// Errorf builds an error envelope.
func Errorf(format string, args ...any) Envelope {
	return Envelope{Status: StatusError, Message: fmt.Sprintf(format, args...)}
}

// Connection is the result of a table reachability check.
type Connection struct {
	Envelope
	Connected bool   `json:"connected"`
	Count     *int64 `json:"count,omitempty"`
}

// Connected builds the envelope for a successful count of table rows.
func Connected(table string, count int64) Connection {
	return Connection{
		Envelope:  Success(fmt.Sprintf("%s table reachable", table)),
		Connected: true,
		Count:     &count,
	}
}

// Disconnected builds the envelope for a failed check.
func Disconnected(err error) Connection {
	return Connection{
		Envelope:  Errorf("database connection failed: %v", err),
		Connected: false,
	}
}
