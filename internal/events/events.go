package events

import (
	"encoding/json"
	"time"
)

// Event types published on the hub.
const (
	TypeJobsReloaded = "jobs_reloaded"
)

// Event is the envelope written to SSE clients as a data line.
type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// JobsReloaded tells board pages that the collection behind them changed.
type JobsReloaded struct {
	Source string `json:"source"`
	Jobs   int    `json:"jobs"`
}

func MakeEvent(reqID, typ string, v int, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   v,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
