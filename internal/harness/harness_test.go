package harness

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"tyrtlekarma/internal/domain"
	"tyrtlekarma/internal/metrics"
)

// playRun sends a small but complete run to h
func playRun(t *testing.T, h Harness) {
	t.Helper()
	require.NoError(t, h.Info(domain.Info{Total: ldvalue.NewOptionalInt(2)}))
	require.NoError(t, h.Result(domain.Result{Description: "bar", Suite: []string{"Foo#"}, Success: true, Log: []string{""}, Time: 12}))
	require.NoError(t, h.Info(domain.Info{Dump: []interface{}{1.0, "a"}}))
	require.NoError(t, h.Result(domain.Result{Description: "baz", Suite: []string{"Foo#"}, Success: false, Log: []string{"boom"}, Time: 3}))
	require.NoError(t, h.Complete(domain.Completion{Coverage: ldvalue.Null()}))
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder()
	playRun(t, rec)

	assert.Equal(t, []Kind{KindInfo, KindResult, KindInfo, KindResult, KindComplete}, rec.Kinds())
	results := rec.Results()
	require.Len(t, results, 2)
	assert.Equal(t, "baz", results[1].Description)

	completion, ok := rec.Completed()
	assert.True(t, ok)
	assert.True(t, completion.Coverage.IsNull())
}

type failingHarness struct{ err error }

func (f failingHarness) Info(domain.Info) error           { return f.err }
func (f failingHarness) Result(domain.Result) error       { return f.err }
func (f failingHarness) Complete(domain.Completion) error { return f.err }

func TestMultiCallsEveryHarness(t *testing.T) {
	boom := errors.New("boom")
	a, b := NewRecorder(), NewRecorder()
	m := Multi(a, failingHarness{boom}, b)

	err := m.Result(domain.Result{Description: "x"})
	assert.True(t, errors.Is(err, boom))
	assert.Len(t, a.Results(), 1)
	assert.Len(t, b.Results(), 1)

	assert.NoError(t, Multi(a, b).Complete(domain.Completion{}))
}

func TestJSONLinesRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	playRun(t, NewJSONLines(&buf, "run-1"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.JSONEq(t, `{"type":"info","run":"run-1","payload":{"total":2}}`, lines[0])
	assert.JSONEq(t, `{"type":"info","run":"run-1","payload":{"dump":[1,"a"]}}`, lines[2])
	assert.JSONEq(t, `{"type":"complete","run":"run-1","payload":{"coverage":null}}`, lines[4])

	replayed := NewRecorder()
	require.NoError(t, ReadJSONLines(&buf, replayed))
	expected := NewRecorder()
	playRun(t, expected)
	assert.Equal(t, expected.Calls(), replayed.Calls())
}

func TestReadJSONLinesUnknownType(t *testing.T) {
	err := ReadJSONLines(strings.NewReader(`{"type":"bogus","payload":{}}`), NewRecorder())
	assert.Error(t, err)
}

func TestSocketHarnessDeliversToServer(t *testing.T) {
	downstream := NewRecorder()
	server := NewServer(context.Background(), downstream)

	httphelpers.WithServer(server, func(ts *httptest.Server) {
		url := "ws" + strings.TrimPrefix(ts.URL, "http")
		client, err := DialSocket(context.Background(), url, "run-2")
		require.NoError(t, err)
		playRun(t, client)
		require.NoError(t, client.Close())

		require.Eventually(t, func() bool {
			_, done := downstream.Completed()
			return done
		}, time.Second, 10*time.Millisecond)
	})

	assert.Equal(t, []Kind{KindInfo, KindResult, KindInfo, KindResult, KindComplete}, downstream.Kinds())
	assert.Equal(t, []string{"boom"}, downstream.Results()[1].Log)
}

func TestDialSocketFails(t *testing.T) {
	httphelpers.WithServer(httphelpers.HandlerWithStatus(404), func(ts *httptest.Server) {
		_, err := DialSocket(context.Background(), "ws"+strings.TrimPrefix(ts.URL, "http"), "r")
		assert.Error(t, err)
	})
}

func TestInstrument(t *testing.T) {
	m := metrics.NewMetrics()
	h := Instrument(Multi(NewRecorder(), failingHarness{nil}), m)
	playRun(t, h)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.TestsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Dumps))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Results.WithLabelValues("passed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Results.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Completions))

	failing := Instrument(failingHarness{errors.New("down")}, m)
	assert.Error(t, failing.Complete(domain.Completion{}))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Errors.WithLabelValues("complete")))
}
