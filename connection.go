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
	"crypto/tls"
	"crypto/x509"

	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

// dial builds the one gRPC channel the exporter uses for its whole lifetime.
// The connection is lazy: an unreachable collector surfaces on the first
// export attempt, not here.
func dial(cfg config) (*grpc.ClientConn, error) {
	creds, err := transportCredentials(cfg)
	if err != nil {
		return nil, err
	}

	opts := append([]grpc.DialOption{grpc.WithTransportCredentials(creds)}, cfg.dialOptions...)
	cc, err := grpc.Dial(cfg.endpoint, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "connecting to collector at %s", cfg.endpoint)
	}
	return cc, nil
}

func transportCredentials(cfg config) (credentials.TransportCredentials, error) {
	if cfg.insecure {
		return insecure.NewCredentials(), nil
	}
	if cfg.creds != nil {
		return cfg.creds, nil
	}

	// System roots apply when no certificate was configured.
	tlsCfg := &tls.Config{}
	if len(cfg.certificate) > 0 {
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(cfg.certificate) {
			return nil, errors.New("no certificates found in TLS certificate file")
		}
		tlsCfg.RootCAs = pool
	}

	if cfg.clientCertPath != "" || cfg.clientKeyPath != "" {
		cert, err := tls.LoadX509KeyPair(cfg.clientCertPath, cfg.clientKeyPath)
		if err != nil {
			return nil, errors.Wrap(err, "loading client certificate pair")
		}
		tlsCfg.Certificates = []tls.Certificate{cert}
	}

	return credentials.NewTLS(tlsCfg), nil
}
