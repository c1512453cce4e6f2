package domain

// TestFailure represents a failed test as stored after a run
type TestFailure struct {
	Module   string   `json:"module"`
	TestName string   `json:"test_name"`
	Message  string   `json:"message"`
	Log      []string `json:"log"`
	TimeMS   int64    `json:"time_ms"`
	Resolved bool     `json:"resolved,omitempty"` // Track if the failure is marked as resolved
}
