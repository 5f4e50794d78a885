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

import (
	"encoding/hex"
	"math"
	"strconv"
)

// Type describes the kind of value held in an attribute.
type Type int

const (
	// INVALID is used for a Value with no value set.
	INVALID Type = iota
	// BOOL is a boolean Type Value.
	BOOL
	// INT64 is a 64-bit signed integral Type Value.
	INT64
	// FLOAT64 is a 64-bit floating point Type Value.
	FLOAT64
	// STRING is a string Type Value.
	STRING
	// BYTES is a raw byte sequence Type Value.
	BYTES
)

// Value is the strongly typed value of an attribute. It holds exactly one of
// the kinds enumerated by Type.
type Value struct {
	vtype   Type
	numeric uint64
	str     string
	bytes   []byte
}

// BoolValue creates a BOOL Value.
func BoolValue(v bool) Value {
	var n uint64
	if v {
		n = 1
	}
	return Value{vtype: BOOL, numeric: n}
}

// Int64Value creates an INT64 Value.
func Int64Value(v int64) Value {
	return Value{vtype: INT64, numeric: uint64(v)}
}

// Float64Value creates a FLOAT64 Value.
func Float64Value(v float64) Value {
	return Value{vtype: FLOAT64, numeric: math.Float64bits(v)}
}

// StringValue creates a STRING Value.
func StringValue(v string) Value {
	return Value{vtype: STRING, str: v}
}

// BytesValue creates a BYTES Value.
func BytesValue(v []byte) Value {
	return Value{vtype: BYTES, bytes: v}
}

// Type returns the kind of value held.
func (v Value) Type() Type {
	return v.vtype
}

// AsBool returns the bool value. It is only valid for BOOL values.
func (v Value) AsBool() bool {
	return v.numeric != 0
}

// AsInt64 returns the int64 value. It is only valid for INT64 values.
func (v Value) AsInt64() int64 {
	return int64(v.numeric)
}

// AsFloat64 returns the float64 value. It is only valid for FLOAT64 values.
func (v Value) AsFloat64() float64 {
	return math.Float64frombits(v.numeric)
}

// AsString returns the string value. It is only valid for STRING values.
func (v Value) AsString() string {
	return v.str
}

// AsBytes returns the byte sequence. It is only valid for BYTES values.
func (v Value) AsBytes() []byte {
	return v.bytes
}

// Emit returns a string representation of the value regardless of its kind.
func (v Value) Emit() string {
	switch v.vtype {
	case BOOL:
		return strconv.FormatBool(v.AsBool())
	case INT64:
		return strconv.FormatInt(v.AsInt64(), 10)
	case FLOAT64:
		return strconv.FormatFloat(v.AsFloat64(), 'g', -1, 64)
	case STRING:
		return v.str
	case BYTES:
		return hex.EncodeToString(v.bytes)
	}
	return "unknown"
}

// KeyValue is a single attribute: a key with a typed value. Keys within one
// attribute set are unique and their order is meaningful.
type KeyValue struct {
	Key   string
	Value Value
}

// Bool creates a KeyValue with a BOOL Value.
func Bool(k string, v bool) KeyValue {
	return KeyValue{Key: k, Value: BoolValue(v)}
}

// Int64 creates a KeyValue with an INT64 Value.
func Int64(k string, v int64) KeyValue {
	return KeyValue{Key: k, Value: Int64Value(v)}
}

// Float64 creates a KeyValue with a FLOAT64 Value.
func Float64(k string, v float64) KeyValue {
	return KeyValue{Key: k, Value: Float64Value(v)}
}

// String creates a KeyValue with a STRING Value.
func String(k, v string) KeyValue {
	return KeyValue{Key: k, Value: StringValue(v)}
}

// Bytes creates a KeyValue with a BYTES Value.
func Bytes(k string, v []byte) KeyValue {
	return KeyValue{Key: k, Value: BytesValue(v)}
}
