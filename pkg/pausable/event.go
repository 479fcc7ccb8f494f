package pausable

import (
	"encoding/json"
)

const (
	EventStandard = "pausable"
	EventVersion  = "1.0.0"

	EventPause   = "pause"
	EventUnpause = "unpause"
)

// Event is a structured log entry handed to Env.EmitEvent.
type Event struct {
	Standard string `json:"standard"`
	Version  string `json:"version"`
	Kind     string `json:"event"`
	Data     any    `json:"data,omitempty"`
}

type Pause struct {
	By  Identity `json:"by"`
	Key string   `json:"key"`
}

type Unpause struct {
	By  Identity `json:"by"`
	Key string   `json:"key"`
}

func NewEvent(kind string, data any) Event {
	return Event{
		Standard: EventStandard,
		Version:  EventVersion,
		Kind:     kind,
		Data:     data,
	}
}

// String renders the event as an EVENT_JSON log line.
func (e Event) String() string {
	b, err := json.Marshal(e)
	if err != nil {
		return "EVENT_JSON:{}"
	}
	return "EVENT_JSON:" + string(b)
}
