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

// Package otlp exports finished trace spans to a collector over the
// OpenTelemetry protocol using gRPC.
//
// Create an exporter with NewExporter. The gRPC channel is established once,
// at construction, and reused for every export call; configuration is
// resolved from explicit options first, then from the
// OTEL_EXPORTER_OTLP_SPAN_* environment variables, then from defaults.
//
// Export delivers one batch synchronously and reports a Success or Failure
// verdict. Transient collector outages are retried with capped exponential
// backoff, honoring any retry delay the collector attaches to its response;
// every other failure is terminal for the batch. The exporter never retries
// past Shutdown.
package otlp // import "go.opentelemetry.io/otel/exporters/otlp"
