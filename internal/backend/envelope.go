package backend

import "encoding/json"

// Envelope is the uniform result of every dispatch backend call. Transport
// failures, timeouts, non-2xx statuses and decode oddities all land here;
// backend operations never return Go errors for expected failures.
type Envelope struct {
	Success bool
	Status  int
	Data    any
	Error   string
}

// Message returns a human-readable failure description, falling back to the
// raw body when the backend did not send a structured message.
func (e Envelope) Message() string {
	if e.Error != "" {
		return e.Error
	}
	if s, ok := e.Data.(string); ok && s != "" {
		return s
	}
	return "request failed"
}

// DecodeData re-marshals the loosely typed Data into v. Use it at the
// service boundary to obtain typed records.
func (e Envelope) DecodeData(v any) error {
	raw, err := json.Marshal(e.Data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

func failure(status int, message string) Envelope {
	return Envelope{Success: false, Status: status, Error: message}
}
