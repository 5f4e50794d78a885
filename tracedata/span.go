// Copyright The OpenTelemetry Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tracedata holds the minimal representation of a finished span
// consumed by the OTLP exporter. Instances are produced by a span processor
// and handed to the exporter by reference for the duration of one export
// call; the exporter neither mutates nor retains them.
package tracedata // import "go.opentelemetry.io/otel/exporters/otlp/tracedata"

import (
	"strings"
	"time"
)

// TraceID is a 16-byte span trace identifier, big-endian.
type TraceID [16]byte

// IsValid reports whether the trace identifier is non-zero.
func (t TraceID) IsValid() bool {
	return t != TraceID{}
}

// SpanID is an 8-byte span identifier, big-endian.
type SpanID [8]byte

// IsValid reports whether the span identifier is non-zero.
func (s SpanID) IsValid() bool {
	return s != SpanID{}
}

// SpanKind is the role a span plays in a trace.
type SpanKind int

// Valid span kinds. The zero value means the kind was not specified.
const (
	SpanKindUnspecified SpanKind = iota
	SpanKindInternal
	SpanKindServer
	SpanKindClient
	SpanKindProducer
	SpanKindConsumer
)

// StatusCode is the canonical outcome recorded on a finished span.
type StatusCode int

const (
	// StatusUnset means the span's outcome was not set.
	StatusUnset StatusCode = iota
	// StatusOK means the span completed successfully.
	StatusOK
	// StatusError means the span ended in an error.
	StatusError
)

// Status is the outcome of a span with an optional description.
type Status struct {
	Code    StatusCode
	Message string
}

// TraceStateEntry is one vendor key/value pair of a span's tracestate.
type TraceStateEntry struct {
	Key   string
	Value string
}

// TraceState is the ordered list of tracestate entries carried by a span.
type TraceState []TraceStateEntry

// String serializes the tracestate in its wire form, "k1=v1,k2=v2". An empty
// tracestate serializes to the empty string.
func (ts TraceState) String() string {
	entries := make([]string, 0, len(ts))
	for _, e := range ts {
		entries = append(entries, e.Key+"="+e.Value)
	}
	return strings.Join(entries, ",")
}

// Event is a time-stamped annotation on a span.
type Event struct {
	Name       string
	Time       time.Time
	Attributes []KeyValue
}

// Link points from a span to another span, possibly in a different trace.
// Kind is recorded for callers that track it; the wire format carries no
// link kind.
type Link struct {
	TraceID    TraceID
	SpanID     SpanID
	Kind       SpanKind
	Attributes []KeyValue
}

// SpanData is an immutable snapshot of a finished span. It carries exactly
// the fields the exporter reads.
type SpanData struct {
	TraceID      TraceID
	SpanID       SpanID
	ParentSpanID SpanID
	TraceState   TraceState

	Name      string
	Kind      SpanKind
	StartTime time.Time
	EndTime   time.Time

	Attributes []KeyValue
	Events     []Event
	Links      []Link
	Status     Status

	Resource               *Resource
	InstrumentationLibrary InstrumentationLibrary
}
