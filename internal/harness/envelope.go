package harness

import (
	"encoding/json"
	"fmt"

	"tyrtlekarma/internal/domain"
)

// Envelope is the wire form of a harness call, shared by the JSON lines and
// socket transports.
type Envelope struct {
	Type    Kind            `json:"type"`
	Run     string          `json:"run,omitempty"`
	Payload json.RawMessage `json:"payload"`
}

func newEnvelope(kind Kind, run string, payload interface{}) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s payload: %w", kind, err)
	}
	return Envelope{Type: kind, Run: run, Payload: data}, nil
}

// Deliver decodes the envelope's payload and makes the matching call on h
func (e Envelope) Deliver(h Harness) error {
	switch e.Type {
	case KindInfo:
		var info domain.Info
		if err := json.Unmarshal(e.Payload, &info); err != nil {
			return fmt.Errorf("malformed info payload: %w", err)
		}
		return h.Info(info)
	case KindResult:
		var result domain.Result
		if err := json.Unmarshal(e.Payload, &result); err != nil {
			return fmt.Errorf("malformed result payload: %w", err)
		}
		return h.Result(result)
	case KindComplete:
		var completion domain.Completion
		if err := json.Unmarshal(e.Payload, &completion); err != nil {
			return fmt.Errorf("malformed complete payload: %w", err)
		}
		return h.Complete(completion)
	default:
		return fmt.Errorf("unknown envelope type %q", e.Type)
	}
}
