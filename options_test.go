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

package otlp

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	cfg, err := newConfig()
	require.NoError(t, err)

	assert.Equal(t, DefaultCollectorEndpoint, cfg.endpoint)
	assert.Equal(t, DefaultExportTimeout, cfg.timeout)
	assert.False(t, cfg.insecure)
	assert.Nil(t, cfg.headers)
	assert.Nil(t, cfg.certificate)
}

func TestConfigFromEnvironment(t *testing.T) {
	certPath := filepath.Join(t.TempDir(), "test.cert")
	pem := selfSignedCertPEM(t)
	require.NoError(t, os.WriteFile(certPath, pem, 0o600))

	t.Setenv("OTEL_EXPORTER_OTLP_SPAN_ENDPOINT", "collector:4317")
	t.Setenv("OTEL_EXPORTER_OTLP_SPAN_CERTIFICATE", certPath)
	t.Setenv("OTEL_EXPORTER_OTLP_SPAN_HEADERS", "key1=value1,key2=value2")
	t.Setenv("OTEL_EXPORTER_OTLP_SPAN_TIMEOUT", "10")

	cfg, err := newConfig()
	require.NoError(t, err)

	assert.Equal(t, "collector:4317", cfg.endpoint)
	assert.Equal(t, 10*time.Second, cfg.timeout)
	assert.Equal(t, pem, cfg.certificate)
	assert.Equal(t, []header{
		{key: "key1", value: "value1"},
		{key: "key2", value: "value2"},
	}, cfg.headers)
}

func TestConfigExplicitOverridesEnvironment(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_SPAN_ENDPOINT", "collector:4317")
	t.Setenv("OTEL_EXPORTER_OTLP_SPAN_HEADERS", "key1=value1,key2=value2")
	t.Setenv("OTEL_EXPORTER_OTLP_SPAN_TIMEOUT", "10")

	cfg, err := newConfig(
		WithEndpoint("other:4317"),
		WithHeaders("key3=value3,key4=value4"),
		WithTimeout(3*time.Second),
	)
	require.NoError(t, err)

	assert.Equal(t, "other:4317", cfg.endpoint)
	assert.Equal(t, 3*time.Second, cfg.timeout)
	assert.Equal(t, []header{
		{key: "key3", value: "value3"},
		{key: "key4", value: "value4"},
	}, cfg.headers)
}

func TestConfigInsecureFromEnvironment(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_SPAN_INSECURE", "true")

	cfg, err := newConfig()
	require.NoError(t, err)
	assert.True(t, cfg.insecure)
}

func TestConfigUnreadableCertificate(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_SPAN_CERTIFICATE", filepath.Join(t.TempDir(), "missing.cert"))

	_, err := newConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading TLS certificate")
}

func TestConfigCertificateIgnoredWhenInsecure(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_SPAN_CERTIFICATE", filepath.Join(t.TempDir(), "missing.cert"))

	cfg, err := newConfig(WithInsecure())
	require.NoError(t, err)
	assert.Nil(t, cfg.certificate)
}

func TestConfigMalformedHeaders(t *testing.T) {
	for _, tc := range []string{
		"key1",
		"=value1",
		"key1=value1,",
		"",
	} {
		_, err := newConfig(WithHeaders(tc))
		assert.Errorf(t, err, "headers %q", tc)
	}

	t.Setenv("OTEL_EXPORTER_OTLP_SPAN_HEADERS", "key1")
	_, err := newConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed header entry")
}

func TestParseHeadersTrimsSpace(t *testing.T) {
	hs, err := parseHeaders(" key1 = value1 , key2=value2")
	require.NoError(t, err)
	assert.Equal(t, []header{
		{key: "key1", value: "value1"},
		{key: "key2", value: "value2"},
	}, hs)
}

func TestFlattenHeaders(t *testing.T) {
	kv := flattenHeaders([]header{
		{key: "key1", value: "value1"},
		{key: "key2", value: "value2"},
	})
	assert.Equal(t, []string{"key1", "value1", "key2", "value2"}, kv)
}
