package runner

import (
	"fmt"
	"time"
)

// Status is the outcome of a single test
type Status int

const (
	// StatusPending is the status of a test that has not run yet.
	StatusPending Status = iota
	// StatusPass is the status of a test whose body completed without failures.
	StatusPass
	// StatusFail is the status of a test that recorded a failure or panicked.
	StatusFail
	// StatusSkip is the status of a test that was skipped.
	StatusSkip
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusPass:
		return "pass"
	case StatusFail:
		return "fail"
	case StatusSkip:
		return "skip"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Test is a single named test case. Status, StatusMessage and RunTime are
// filled in by the runner.
type Test struct {
	Name string
	Body func(*T)

	Status        Status
	StatusMessage string
	RunTime       time.Duration
}

// NewTest creates a Test
func NewTest(name string, body func(*T)) *Test {
	return &Test{Name: name, Body: body}
}

// Identity disambiguates modules that were loaded from the same file.
type Identity struct {
	File  string
	Index int
}

func (id Identity) String() string {
	return fmt.Sprintf("%s#%d", id.File, id.Index)
}

// Module is a named group of tests with optional hooks.
//
// BeforeAll and AfterAll run once around the module; Before and After run
// around every test.
type Module struct {
	Name      string
	Tests     []*Test
	BeforeAll func(*T)
	AfterAll  func(*T)
	Before    func(*T)
	After     func(*T)

	identity    Identity
	hasIdentity bool
}

// NewModule creates a Module with the given tests
func NewModule(name string, tests ...*Test) *Module {
	return &Module{Name: name, Tests: tests}
}

// Add appends a test and returns the module for chaining
func (m *Module) Add(name string, body func(*T)) *Module {
	m.Tests = append(m.Tests, NewTest(name, body))
	return m
}

// SetIdentity records the file a module was loaded from and its position in
// that file's exports.
func (m *Module) SetIdentity(file string, index int) {
	m.identity = Identity{File: file, Index: index}
	m.hasIdentity = true
}

// Identity returns the identity set by SetIdentity, if any
func (m *Module) Identity() (Identity, bool) {
	return m.identity, m.hasIdentity
}
