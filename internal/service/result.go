package service

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Status labels of the acceptance table.
const (
	StatusAccepted = "ACCEPTED"
	StatusRejected = "REJECTED"
)

// Result is a service response. A non-empty Error means the run failed; the
// other fields may still be partially set.
type Result struct {
	Translated  string       `json:"translated"`
	Highlighted string       `json:"highlighted"`
	Accepted    []Acceptance `json:"accepted"`
	Error       string       `json:"error,omitempty"`
}

// Failed reports whether the result carries an error message.
func (r Result) Failed() bool {
	return r.Error != ""
}

// Acceptance is the full-match verdict for one line of sample text.
// On the wire it is a two element array: ["line", true].
type Acceptance struct {
	Line string
	OK   bool
}

// Status returns ACCEPTED or REJECTED.
func (a Acceptance) Status() string {
	if a.OK {
		return StatusAccepted
	}
	return StatusRejected
}

// MarshalJSON encodes the pair form.
func (a Acceptance) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{a.Line, a.OK})
}

// UnmarshalJSON decodes the pair form. The verdict is read loosely: any
// non-zero, non-empty value counts as accepted.
func (a *Acceptance) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("acceptance must be a [line, ok] pair: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("acceptance must be a [line, ok] pair, got %d elements", len(pair))
	}

	var line any
	if err := json.Unmarshal(pair[0], &line); err != nil {
		return fmt.Errorf("decode acceptance line: %w", err)
	}
	switch v := line.(type) {
	case string:
		a.Line = v
	case nil:
		a.Line = ""
	default:
		a.Line = string(bytes.TrimSpace(pair[0]))
	}

	var ok any
	if err := json.Unmarshal(pair[1], &ok); err != nil {
		return fmt.Errorf("decode acceptance verdict: %w", err)
	}
	a.OK = truthy(ok)
	return nil
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	case nil:
		return false
	default:
		return true
	}
}
