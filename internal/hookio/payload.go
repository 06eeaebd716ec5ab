// Package hookio parses the lifecycle payload an agent harness pipes to
// hook commands on stdin. The payload carries the active workspace
// directory, so a session-end hook can sync the right repository
// without relying on the process working directory.
package hookio

import (
	"encoding/json"
	"fmt"
	"io"
)

// Payload is the hook event JSON from the agent harness. Unknown fields
// are ignored so harness schema additions never break the hook.
type Payload struct {
	Event     string `json:"hook_event_name"`
	SessionID string `json:"session_id"`
	Cwd       string `json:"cwd"`
}

// Read decodes a hook payload from r. Empty input returns (nil, nil):
// the hook then falls back to environment and current directory.
func Read(r io.Reader) (*Payload, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("hookio: read stdin: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("hookio: parse payload: %w", err)
	}
	return &p, nil
}
