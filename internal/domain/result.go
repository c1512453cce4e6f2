package domain

import (
	"encoding/json"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Result is one executed test as reported to the harness
type Result struct {
	Description string   `json:"description"`
	Suite       []string `json:"suite"`
	Success     bool     `json:"success"`
	Log         []string `json:"log"`
	Time        int64    `json:"time"` // Milliseconds
}

// Info is an informational harness message. It carries either the total number of tests
// (sent once before the run) or a dump of values logged by test code.
type Info struct {
	Total ldvalue.OptionalInt
	Dump  []interface{}
}

// MarshalJSON emits only the fields that are present.
func (i Info) MarshalJSON() ([]byte, error) {
	fields := make(map[string]interface{}, 2)
	if i.Total.IsDefined() {
		fields["total"] = i.Total.IntValue()
	}
	if i.Dump != nil {
		fields["dump"] = i.Dump
	}
	return json.Marshal(fields)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (i *Info) UnmarshalJSON(data []byte) error {
	var raw struct {
		Total *int          `json:"total"`
		Dump  []interface{} `json:"dump"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*i = Info{Dump: raw.Dump}
	if raw.Total != nil {
		i.Total = ldvalue.NewOptionalInt(*raw.Total)
	}
	return nil
}

// Completion signals the end of a run to the harness
type Completion struct {
	Coverage ldvalue.Value `json:"coverage"`
}

// RunMeta contains metadata about a stored run
type RunMeta struct {
	RunID           string        `json:"run_id"`
	TotalTests      int           `json:"total_tests"`
	ExecutedTests   int           `json:"executed_tests"`
	PassedTests     int           `json:"passed_tests"`
	FailedTests     int           `json:"failed_tests"`
	Dumps           int           `json:"dumps"`
	Completed       bool          `json:"completed"`
	Duration        string        `json:"duration"`
	DurationSeconds float64       `json:"duration_seconds"`
	Timestamp       string        `json:"timestamp"`
	Coverage        ldvalue.Value `json:"coverage"`
}

// RunOutput is the complete output structure for a stored run
type RunOutput struct {
	Meta    RunMeta       `json:"meta"`
	Details []TestFailure `json:"details"`
}
