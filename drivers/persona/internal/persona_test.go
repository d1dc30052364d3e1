/*
 * Copyright 2025 Datazip
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package driver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datazip-inc/tap-persona/types"
)

func TestSetupProbesAPI(t *testing.T) {
	var gotPath, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"data":[],"links":{}}`))
	}))
	defer server.Close()

	p := &Persona{config: &Config{APIKey: "probe-key", BaseURL: server.URL}}
	require.NoError(t, p.Setup(context.Background()))

	assert.Equal(t, "/inquiries", gotPath)
	assert.Equal(t, "Bearer probe-key", gotAuth)
}

func TestSetupFailsOnBadCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	p := &Persona{config: &Config{APIKey: "bad-key", BaseURL: server.URL}}
	err := p.Setup(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect")
}

func TestSetupFailsOnInvalidConfig(t *testing.T) {
	p := &Persona{config: &Config{}}
	err := p.Setup(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to validate config")
}

func TestGetStreamNames(t *testing.T) {
	p := &Persona{config: &Config{APIKey: "key"}}
	names, err := p.GetStreamNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"cases", "inquiries"}, names, "stream names must be stable across runs")
}

func TestProduceSchema(t *testing.T) {
	p := &Persona{config: &Config{APIKey: "key"}}

	stream, err := p.ProduceSchema(context.Background(), "inquiries")
	require.NoError(t, err)

	assert.Equal(t, "persona.inquiries", stream.ID())
	assert.True(t, stream.SupportedSyncModes.Exists(types.INCREMENTAL))
	assert.True(t, stream.SourceDefinedPrimaryKey.Exists("id"))
	assert.True(t, stream.AvailableCursorFields.Exists("updated_at"))

	typ, err := stream.Schema.GetType("updated_at")
	require.NoError(t, err)
	assert.Equal(t, types.Timestamp, typ)

	_, err = p.ProduceSchema(context.Background(), "accounts")
	assert.Error(t, err)
}

func TestInitialCursorValue(t *testing.T) {
	stream := inquiriesStream()

	p := &Persona{config: &Config{APIKey: "key"}}
	assert.Nil(t, p.InitialCursorValue(stream), "no start date means unbounded backfill")

	p = &Persona{config: &Config{APIKey: "key", StartDate: "2025-01-01"}}
	got := p.InitialCursorValue(stream)
	require.NotNil(t, got)
	assert.True(t, got.(time.Time).Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
}
