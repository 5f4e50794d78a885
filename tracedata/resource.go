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

package tracedata // import "go.opentelemetry.io/otel/exporters/otlp/tracedata"

import "strings"

// Resource describes the entity that produced a span as an ordered set of
// attributes. It is immutable once created.
type Resource struct {
	attrs      []KeyValue
	equivalent string
}

// NewResource creates a Resource from the given attributes. Attribute order
// is preserved; the caller is responsible for key uniqueness.
func NewResource(attrs ...KeyValue) *Resource {
	r := &Resource{attrs: make([]KeyValue, len(attrs))}
	copy(r.attrs, attrs)

	var b strings.Builder
	for _, kv := range r.attrs {
		b.WriteString(kv.Key)
		b.WriteByte('=')
		b.WriteString(kv.Value.Emit())
		b.WriteByte(',')
	}
	r.equivalent = b.String()
	return r
}

// Attributes returns the resource attributes in their original order.
func (r *Resource) Attributes() []KeyValue {
	if r == nil {
		return nil
	}
	return r.attrs
}

// Equivalent returns a comparable identity for the resource. Two resources
// with the same attributes in the same order share an identity.
func (r *Resource) Equivalent() string {
	if r == nil {
		return ""
	}
	return r.equivalent
}

// InstrumentationLibrary identifies the instrumentation that recorded a span.
type InstrumentationLibrary struct {
	Name    string
	Version string
}
