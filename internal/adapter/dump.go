package adapter

import (
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"tyrtlekarma/internal/domain"
	"tyrtlekarma/internal/harness"
)

// Serializer converts one dumped value before it is reported
type Serializer func(v interface{}) interface{}

// Identity returns v unchanged
func Identity(v interface{}) interface{} {
	return v
}

// JSONValue converts v to its generic JSON form, so that values of arbitrary
// Go types are reported the same way by every transport.
func JSONValue(v interface{}) interface{} {
	return ldvalue.CopyArbitraryValue(v).AsArbitraryValue()
}

// DumpFunc reports its arguments to the harness
type DumpFunc func(args ...interface{})

// NewDumpFunc returns a DumpFunc reporting to h. A nil serialize means Identity.
// Errors from the harness are passed to onError if it is not nil.
func NewDumpFunc(h harness.Harness, serialize Serializer, onError func(error)) DumpFunc {
	if serialize == nil {
		serialize = Identity
	}
	return func(args ...interface{}) {
		dump := make([]interface{}, len(args))
		for i, a := range args {
			dump[i] = serialize(a)
		}
		if err := h.Info(domain.Info{Dump: dump}); err != nil && onError != nil {
			onError(err)
		}
	}
}
