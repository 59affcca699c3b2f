package types

import (
	"encoding/json"
	"math"
	"time"
)

// Heartbeat is a single liveness report emitted by a worker process.
//
// Heartbeats are disposable: losing one is harmless as long as the next
// arrives before the staleness threshold. Senders must never block or fail
// a worker because a heartbeat could not be delivered.
type Heartbeat struct {
	// Name identifies the reporting process.
	Name string

	// Timestamp is the moment the report was produced.
	Timestamp time.Time
}

// heartbeatWire is the JSON wire representation used by remote queue
// transports. The timestamp travels as fractional epoch seconds so non-Go
// emitters can produce heartbeats without knowing Go time formats.
type heartbeatWire struct {
	Name string  `json:"name"`
	TS   float64 `json:"ts"`
}

// MarshalJSON encodes the heartbeat in its wire form.
func (h Heartbeat) MarshalJSON() ([]byte, error) {
	return json.Marshal(heartbeatWire{
		Name: h.Name,
		TS:   float64(h.Timestamp.UnixNano()) / float64(time.Second),
	})
}

// UnmarshalJSON decodes the heartbeat from its wire form.
func (h *Heartbeat) UnmarshalJSON(data []byte) error {
	var w heartbeatWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	sec, frac := math.Modf(w.TS)
	h.Name = w.Name
	h.Timestamp = time.Unix(int64(sec), int64(frac*float64(time.Second)))

	return nil
}
