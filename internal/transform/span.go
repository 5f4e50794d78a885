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

// Package transform translates finished span data into the OTLP wire
// representation. All functions are pure: identical input produces an
// identical request tree.
package transform

import (
	tracepb "go.opentelemetry.io/proto/otlp/trace/v1"

	"go.opentelemetry.io/otel/exporters/otlp/tracedata"
)

// SpanData transforms a slice of finished spans into OTLP ResourceSpans,
// partitioned by (resource, instrumentation library). Every input span
// appears exactly once in the output; groups appear in order of their first
// occurrence in the input.
func SpanData(sdl []*tracedata.SpanData) []*tracepb.ResourceSpans {
	if len(sdl) == 0 {
		return nil
	}

	type ilsKey struct {
		resource string
		name     string
		version  string
	}

	var rss []*tracepb.ResourceSpans
	rsm := make(map[string]*tracepb.ResourceSpans)
	ilsm := make(map[ilsKey]*tracepb.InstrumentationLibrarySpans)

	for _, sd := range sdl {
		if sd == nil {
			continue
		}

		rKey := sd.Resource.Equivalent()
		rs, ok := rsm[rKey]
		if !ok {
			rs = &tracepb.ResourceSpans{
				Resource: Resource(sd.Resource),
			}
			rsm[rKey] = rs
			rss = append(rss, rs)
		}

		iKey := ilsKey{
			resource: rKey,
			name:     sd.InstrumentationLibrary.Name,
			version:  sd.InstrumentationLibrary.Version,
		}
		ils, ok := ilsm[iKey]
		if !ok {
			ils = &tracepb.InstrumentationLibrarySpans{
				InstrumentationLibrary: instrumentationLibrary(sd.InstrumentationLibrary),
			}
			ilsm[iKey] = ils
			rs.InstrumentationLibrarySpans = append(rs.InstrumentationLibrarySpans, ils)
		}

		ils.Spans = append(ils.Spans, span(sd))
	}

	return rss
}

func span(sd *tracedata.SpanData) *tracepb.Span {
	s := &tracepb.Span{
		TraceId:           sd.TraceID[:],
		SpanId:            sd.SpanID[:],
		TraceState:        sd.TraceState.String(),
		Name:              sd.Name,
		Kind:              spanKind(sd.Kind),
		StartTimeUnixNano: uint64(sd.StartTime.UnixNano()),
		EndTimeUnixNano:   uint64(sd.EndTime.UnixNano()),
		Attributes:        KeyValues(sd.Attributes),
		Events:            spanEvents(sd.Events),
		Links:             links(sd.Links),
		Status:            status(sd.Status),
	}
	// A root span carries an empty parent id, not a zero-filled one.
	if sd.ParentSpanID.IsValid() {
		s.ParentSpanId = sd.ParentSpanID[:]
	}
	return s
}

func spanKind(sk tracedata.SpanKind) tracepb.Span_SpanKind {
	switch sk {
	case tracedata.SpanKindInternal:
		return tracepb.Span_SPAN_KIND_INTERNAL
	case tracedata.SpanKindServer:
		return tracepb.Span_SPAN_KIND_SERVER
	case tracedata.SpanKindClient:
		return tracepb.Span_SPAN_KIND_CLIENT
	case tracedata.SpanKindProducer:
		return tracepb.Span_SPAN_KIND_PRODUCER
	case tracedata.SpanKindConsumer:
		return tracepb.Span_SPAN_KIND_CONSUMER
	default:
		return tracepb.Span_SPAN_KIND_UNSPECIFIED
	}
}

// status fills both the current and the deprecated status code so that both
// old and new collectors read the same outcome.
func status(s tracedata.Status) *tracepb.Status {
	var c tracepb.Status_StatusCode
	var dc tracepb.Status_DeprecatedStatusCode
	switch s.Code {
	case tracedata.StatusOK:
		c = tracepb.Status_STATUS_CODE_OK
		dc = tracepb.Status_DEPRECATED_STATUS_CODE_OK
	case tracedata.StatusError:
		c = tracepb.Status_STATUS_CODE_ERROR
		dc = tracepb.Status_DEPRECATED_STATUS_CODE_UNKNOWN_ERROR
	default:
		c = tracepb.Status_STATUS_CODE_UNSET
		dc = tracepb.Status_DEPRECATED_STATUS_CODE_OK
	}
	return &tracepb.Status{
		Code:           c,
		DeprecatedCode: dc,
		Message:        s.Message,
	}
}

func spanEvents(es []tracedata.Event) []*tracepb.Span_Event {
	if len(es) == 0 {
		return nil
	}

	events := make([]*tracepb.Span_Event, 0, len(es))
	for _, e := range es {
		events = append(events, &tracepb.Span_Event{
			Name:         e.Name,
			TimeUnixNano: uint64(e.Time.UnixNano()),
			Attributes:   KeyValues(e.Attributes),
		})
	}
	return events
}

func links(ls []tracedata.Link) []*tracepb.Span_Link {
	if len(ls) == 0 {
		return nil
	}

	sl := make([]*tracepb.Span_Link, 0, len(ls))
	for _, l := range ls {
		// l is reused across iterations; the ids need a stable copy
		// before slicing.
		tid := l.TraceID
		sid := l.SpanID
		sl = append(sl, &tracepb.Span_Link{
			TraceId:    tid[:],
			SpanId:     sid[:],
			Attributes: KeyValues(l.Attributes),
		})
	}
	return sl
}
