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
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
)

const (
	// DefaultCollectorEndpoint is the host and port the exporter connects
	// to when neither an option nor the environment names one.
	DefaultCollectorEndpoint = "localhost:4317"

	// DefaultExportTimeout bounds a single export attempt.
	DefaultExportTimeout = 10 * time.Second
)

// envConfig mirrors the environment variables read once at construction.
type envConfig struct {
	Endpoint    string `env:"OTEL_EXPORTER_OTLP_SPAN_ENDPOINT"`
	Certificate string `env:"OTEL_EXPORTER_OTLP_SPAN_CERTIFICATE"`
	Headers     string `env:"OTEL_EXPORTER_OTLP_SPAN_HEADERS"`
	Timeout     int    `env:"OTEL_EXPORTER_OTLP_SPAN_TIMEOUT"`
	Insecure    bool   `env:"OTEL_EXPORTER_OTLP_SPAN_INSECURE"`
}

type header struct {
	key   string
	value string
}

type config struct {
	endpoint string
	insecure bool
	headers  []header
	timeout  time.Duration

	certificatePath string
	certificate     []byte
	clientCertPath  string
	clientKeyPath   string
	creds           credentials.TransportCredentials

	dialOptions    []grpc.DialOption
	logger         *zap.Logger
	backoffFactory func() backoff.BackOff

	// headerErr defers a malformed WithHeaders value to newConfig, where
	// it can be reported.
	headerErr error
}

// ExporterOption configures an Exporter at construction time.
type ExporterOption func(*config)

// WithEndpoint sets the collector address, overriding the environment.
func WithEndpoint(endpoint string) ExporterOption {
	return func(cfg *config) {
		cfg.endpoint = endpoint
	}
}

// WithInsecure makes the exporter connect over plaintext instead of TLS.
func WithInsecure() ExporterOption {
	return func(cfg *config) {
		cfg.insecure = true
	}
}

// WithHeaders sets headers attached to every export call. The value uses the
// same "k1=v1,k2=v2" form as the headers environment variable and overrides
// it.
func WithHeaders(headers string) ExporterOption {
	return func(cfg *config) {
		hs, err := parseHeaders(headers)
		if err != nil {
			// Option functions cannot fail; newConfig reports this.
			cfg.headerErr = err
			return
		}
		cfg.headers = hs
	}
}

// WithTimeout bounds each export attempt, overriding the environment.
func WithTimeout(d time.Duration) ExporterOption {
	return func(cfg *config) {
		cfg.timeout = d
	}
}

// WithTLSCertificate names a PEM file whose certificates become the
// root-of-trust for the collector connection.
func WithTLSCertificate(path string) ExporterOption {
	return func(cfg *config) {
		cfg.certificatePath = path
	}
}

// WithClientCertificate names a PEM certificate/key pair presented to the
// collector for mutual TLS.
func WithClientCertificate(certPath, keyPath string) ExporterOption {
	return func(cfg *config) {
		cfg.clientCertPath = certPath
		cfg.clientKeyPath = keyPath
	}
}

// WithTLSCredentials supplies ready-made transport credentials, bypassing
// certificate loading entirely.
func WithTLSCredentials(creds credentials.TransportCredentials) ExporterOption {
	return func(cfg *config) {
		cfg.creds = creds
	}
}

// WithGRPCDialOption appends raw gRPC dial options to the channel setup.
func WithGRPCDialOption(opts ...grpc.DialOption) ExporterOption {
	return func(cfg *config) {
		cfg.dialOptions = append(cfg.dialOptions, opts...)
	}
}

// WithLogger installs a logger for retry and failure diagnostics. The
// default discards everything.
func WithLogger(l *zap.Logger) ExporterOption {
	return func(cfg *config) {
		cfg.logger = l
	}
}

// WithBackoff replaces the retry delay policy. The factory is invoked once
// per export call; returning backoff.Stop ends the call with Failure.
func WithBackoff(factory func() backoff.BackOff) ExporterOption {
	return func(cfg *config) {
		cfg.backoffFactory = factory
	}
}

// newConfig resolves the exporter configuration: explicit options win over
// environment variables, which win over defaults. All file reads and header
// parsing happen here so that a bad configuration fails construction, not a
// later export call.
func newConfig(opts ...ExporterOption) (config, error) {
	cfg := config{
		logger:         zap.NewNop(),
		backoffFactory: defaultBackoff,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.headerErr != nil {
		return cfg, cfg.headerErr
	}

	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		return cfg, errors.Wrap(err, "reading environment configuration")
	}

	if cfg.endpoint == "" {
		cfg.endpoint = ec.Endpoint
	}
	if cfg.endpoint == "" {
		cfg.endpoint = DefaultCollectorEndpoint
	}

	if cfg.headers == nil && ec.Headers != "" {
		hs, err := parseHeaders(ec.Headers)
		if err != nil {
			return cfg, err
		}
		cfg.headers = hs
	}

	if cfg.timeout <= 0 {
		if ec.Timeout > 0 {
			cfg.timeout = time.Duration(ec.Timeout) * time.Second
		} else {
			cfg.timeout = DefaultExportTimeout
		}
	}

	if ec.Insecure {
		cfg.insecure = true
	}

	if !cfg.insecure && cfg.creds == nil {
		path := cfg.certificatePath
		if path == "" {
			path = ec.Certificate
		}
		if path != "" {
			pem, err := os.ReadFile(path)
			if err != nil {
				return cfg, errors.Wrapf(err, "reading TLS certificate %s", path)
			}
			cfg.certificate = pem
		}
	}

	return cfg, nil
}

// parseHeaders splits a "k1=v1,k2=v2" string into ordered pairs. Keys and
// values are trimmed; an entry without a key or without '=' is a
// configuration error.
func parseHeaders(s string) ([]header, error) {
	var hs []header
	for _, entry := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(entry, "=")
		k = strings.TrimSpace(k)
		v = strings.TrimSpace(v)
		if !ok || k == "" {
			return nil, errors.Errorf("malformed header entry %q", entry)
		}
		hs = append(hs, header{key: k, value: v})
	}
	return hs, nil
}

func flattenHeaders(hs []header) []string {
	kv := make([]string, 0, 2*len(hs))
	for _, h := range hs {
		kv = append(kv, h.key, h.value)
	}
	return kv
}
