package harness

import (
	"encoding/json"
	"io"
	"sync"

	"tyrtlekarma/internal/domain"
)

// JSONLines is a Harness that writes one JSON envelope per line
type JSONLines struct {
	run string
	mu  sync.Mutex
	enc *json.Encoder
}

// NewJSONLines creates a JSONLines harness writing to w. Every envelope is
// tagged with runID.
func NewJSONLines(w io.Writer, runID string) *JSONLines {
	return &JSONLines{run: runID, enc: json.NewEncoder(w)}
}

func (j *JSONLines) Info(info domain.Info) error {
	return j.write(KindInfo, info)
}

func (j *JSONLines) Result(result domain.Result) error {
	return j.write(KindResult, result)
}

func (j *JSONLines) Complete(completion domain.Completion) error {
	return j.write(KindComplete, completion)
}

func (j *JSONLines) write(kind Kind, payload interface{}) error {
	env, err := newEnvelope(kind, j.run, payload)
	if err != nil {
		return err
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.enc.Encode(env)
}

// ReadJSONLines decodes envelopes from r and delivers them to h until EOF
func ReadJSONLines(r io.Reader, h Harness) error {
	dec := json.NewDecoder(r)
	for {
		var env Envelope
		if err := dec.Decode(&env); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if err := env.Deliver(h); err != nil {
			return err
		}
	}
}
