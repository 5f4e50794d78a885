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

package otlp // import "go.opentelemetry.io/otel/exporters/otlp"

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	coltracepb "go.opentelemetry.io/proto/otlp/collector/trace/v1"
	"go.uber.org/zap"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"

	"go.opentelemetry.io/otel/exporters/otlp/internal/transform"
	"go.opentelemetry.io/otel/exporters/otlp/tracedata"
)

// ExportResult is the verdict of one export call.
type ExportResult int

const (
	// Success means the collector accepted the batch.
	Success ExportResult = iota
	// Failure means the batch was not delivered. The spans are the
	// caller's to drop or re-enqueue.
	Failure
)

// retryInfoKey is the well-known response metadata key under which a
// collector may attach a serialized google.rpc.RetryInfo message.
const retryInfoKey = "google.rpc.retryinfo-bin"

var errStopped = errors.New("exporter is shut down")

// Exporter delivers finished spans to an OTLP collector over gRPC. It is
// safe for concurrent use; calls share the channel built at construction and
// nothing else.
type Exporter struct {
	cfg    config
	logger *zap.Logger

	cc     *grpc.ClientConn
	client coltracepb.TraceServiceClient

	stopOnce sync.Once
	stopCh   chan struct{}

	// wait blocks for one backoff delay. Tests replace it to observe the
	// requested durations without sleeping.
	wait func(ctx context.Context, d time.Duration) error
}

// NewExporter resolves configuration, builds the collector channel and
// returns a ready exporter. A malformed configuration (bad header string,
// unreadable certificate) fails here; collector availability is not checked
// until the first export call.
func NewExporter(opts ...ExporterOption) (*Exporter, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	cc, err := dial(cfg)
	if err != nil {
		return nil, err
	}

	e := &Exporter{
		cfg:    cfg,
		logger: cfg.logger,
		cc:     cc,
		client: coltracepb.NewTraceServiceClient(cc),
		stopCh: make(chan struct{}),
	}
	e.wait = e.sleep
	return e, nil
}

// Export delivers the given finished spans to the collector and blocks until
// the batch is accepted, a non-retryable error occurs, the retry policy is
// exhausted, or the exporter shuts down. The spans are borrowed for the
// duration of the call and never retained.
//
// The batch is translated to its wire form exactly once; retries resend the
// identical request, so delivery is at-least-once from the collector's
// perspective.
func (e *Exporter) Export(ctx context.Context, spans []*tracedata.SpanData) ExportResult {
	rss := transform.SpanData(spans)
	// Nothing to deliver; don't bother the collector.
	if len(rss) == 0 {
		return Success
	}
	req := &coltracepb.ExportTraceServiceRequest{
		ResourceSpans: rss,
	}

	bo := e.cfg.backoffFactory()
	for {
		if e.stopped() {
			e.logger.Warn("exporter is shut down, dropping batch")
			return Failure
		}

		trailer, err := e.send(ctx, req)
		if err == nil {
			return Success
		}

		st := status.Convert(err)
		if !retryable(st.Code()) {
			e.logger.Error("export failed",
				zap.String("code", st.Code().String()),
				zap.String("message", st.Message()),
			)
			return Failure
		}

		delay := bo.NextBackOff()
		if delay == backoff.Stop {
			e.logger.Error("export retries exhausted",
				zap.String("code", st.Code().String()),
			)
			return Failure
		}
		if hint, ok := retryHint(trailer); ok {
			delay = hint
		}

		e.logger.Warn("transient export failure, retrying",
			zap.String("code", st.Code().String()),
			zap.Duration("delay", delay),
		)
		if err := e.wait(ctx, delay); err != nil {
			e.logger.Warn("export abandoned during backoff", zap.Error(err))
			return Failure
		}
	}
}

// Shutdown stops the exporter and closes the collector channel. An in-flight
// export call gives up instead of continuing its retry loop; later calls
// fail immediately. Shutdown is idempotent.
func (e *Exporter) Shutdown(_ context.Context) error {
	e.stopOnce.Do(func() {
		close(e.stopCh)
	})
	if err := e.cc.Close(); err != nil {
		return errors.Wrap(err, "closing collector channel")
	}
	return nil
}

// send issues one export attempt bounded by the configured timeout and
// captures the response trailer for retry hints.
func (e *Exporter) send(ctx context.Context, req *coltracepb.ExportTraceServiceRequest) (metadata.MD, error) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.timeout)
	defer cancel()

	if len(e.cfg.headers) > 0 {
		ctx = metadata.AppendToOutgoingContext(ctx, flattenHeaders(e.cfg.headers)...)
	}

	var trailer metadata.MD
	_, err := e.client.Export(ctx, req, grpc.Trailer(&trailer))
	return trailer, err
}

// retryable is the status classification table. Unavailable signals a
// collector outage and DeadlineExceeded a congested link; both warrant
// another attempt. Every other status is terminal for the batch.
func retryable(c codes.Code) bool {
	switch c {
	case codes.Unavailable, codes.DeadlineExceeded:
		return true
	}
	return false
}

// retryHint extracts a server-directed retry delay from the response
// trailer, if one was attached. A RetryInfo without a populated delay does
// not count as a hint.
func retryHint(md metadata.MD) (time.Duration, bool) {
	for _, raw := range md.Get(retryInfoKey) {
		ri := &errdetails.RetryInfo{}
		if err := proto.Unmarshal([]byte(raw), ri); err != nil {
			continue
		}
		if d := ri.GetRetryDelay(); d != nil {
			return d.AsDuration(), true
		}
	}
	return 0, false
}

func (e *Exporter) sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-e.stopCh:
		return errStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Exporter) stopped() bool {
	select {
	case <-e.stopCh:
		return true
	default:
		return false
	}
}
