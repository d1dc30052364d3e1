package types

import (
	"runtime"
	"sync"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datazip-inc/tap-persona/constants"
)

func init() {
	// prevent LogState() from writing logs during tests
	if runtime.GOOS == "windows" {
		viper.Set(constants.StatePath, "NUL")
	} else {
		viper.Set(constants.StatePath, "/dev/null")
	}
}

func newConfiguredStream(name, namespace, cursor string, mode SyncMode) *ConfiguredStream {
	s := NewStream(name, namespace)
	s.SyncMode = mode
	cfg := s.Wrap()
	cfg.CursorField = cursor
	return cfg
}

func TestStateIsZeroAndResetStreams(t *testing.T) {
	s := NewState()
	assert.True(t, s.IsZero(), "new state without cursors should be zero")
	assert.Equal(t, StreamType, s.Type)

	cfg := newConfiguredStream("inquiries", "persona", "updated_at", INCREMENTAL)
	s.SetCursor(cfg, "updated_at", "2025-01-03T00:00:00Z")
	require.False(t, s.IsZero(), "state should not be zero after adding cursor")

	s.ResetStreams()
	assert.Equal(t, 0, len(s.Streams), "ResetStreams should clear stream slice")
	assert.True(t, s.IsZero())
}

func TestCursorSetAndGet_ResetCursor(t *testing.T) {
	s := NewState()
	cfg := newConfiguredStream("inquiries", "persona", "updated_at", INCREMENTAL)

	// empty key should be ignored
	s.SetCursor(cfg, "", "2025-01-01T00:00:00Z")
	assert.Nil(t, s.GetCursor(cfg, ""), "GetCursor with empty key should return nil")
	assert.True(t, s.IsZero())

	// set cursor (creates stream)
	s.SetCursor(cfg, "updated_at", "2025-01-03T00:00:00Z")
	got := s.GetCursor(cfg, "updated_at")
	require.NotNil(t, got)
	assert.Equal(t, "2025-01-03T00:00:00Z", got.(string))

	// overwrite keeps a single stream entry
	s.SetCursor(cfg, "updated_at", "2025-01-05T00:00:00Z")
	assert.Equal(t, "2025-01-05T00:00:00Z", s.GetCursor(cfg, "updated_at"))
	assert.Equal(t, 1, len(s.Streams))

	s.ResetCursor(cfg)
	assert.Nil(t, s.GetCursor(cfg, "updated_at"))
	assert.True(t, s.IsZero(), "reset stream should not count as populated")
}

func TestCursorIsolationAcrossStreams(t *testing.T) {
	s := NewState()
	inquiries := newConfiguredStream("inquiries", "persona", "updated_at", INCREMENTAL)
	cases := newConfiguredStream("cases", "persona", "updated_at", INCREMENTAL)

	s.SetCursor(inquiries, "updated_at", "2025-01-03T00:00:00Z")
	s.SetCursor(cases, "updated_at", "2025-02-01T00:00:00Z")

	assert.Equal(t, "2025-01-03T00:00:00Z", s.GetCursor(inquiries, "updated_at"))
	assert.Equal(t, "2025-02-01T00:00:00Z", s.GetCursor(cases, "updated_at"))
	assert.Equal(t, 2, len(s.Streams))
}

func TestState_MarshalJSON_PopulatedStreamsOnly(t *testing.T) {
	s := NewState()
	cfg1 := newConfiguredStream("inquiries", "persona", "updated_at", INCREMENTAL)
	cfg2 := newConfiguredStream("cases", "persona", "updated_at", INCREMENTAL)

	// stream 1: set cursor -> holds value
	s.SetCursor(cfg1, "updated_at", "2025-01-03T00:00:00Z")
	// stream 2: create streamstate without any value
	ss := s.initStreamState(cfg2)
	s.Streams = append(s.Streams, ss)

	b, err := json.Marshal(s)
	require.NoError(t, err)

	var root map[string]any
	require.NoError(t, json.Unmarshal(b, &root))
	streams, ok := root["streams"].([]any)
	require.True(t, ok)
	assert.Equal(t, 1, len(streams), "only populated streams must be serialized")
}

func TestStreamState_MarshalUnmarshalJSON(t *testing.T) {
	ss := &StreamState{
		Stream:    "inquiries",
		Namespace: "persona",
		State:     sync.Map{},
	}
	ss.State.Store("updated_at", "2025-01-03T00:00:00Z")
	ss.HoldsValue.Store(true)

	b, err := json.Marshal(ss)
	require.NoError(t, err)

	var out StreamState
	require.NoError(t, json.Unmarshal(b, &out))

	assert.True(t, out.HoldsValue.Load())
	val, _ := out.State.Load("updated_at")
	assert.Equal(t, "2025-01-03T00:00:00Z", val)
}

func TestState_UnmarshalJSON_RestoresCursor(t *testing.T) {
	raw := []byte(`{"type":"STREAM","streams":[{"stream":"inquiries","namespace":"persona","state":{"updated_at":"2025-01-03T00:00:00Z"}}]}`)

	s := &State{}
	require.NoError(t, json.Unmarshal(raw, s))

	cfg := newConfiguredStream("inquiries", "persona", "updated_at", INCREMENTAL)
	assert.False(t, s.IsZero())
	assert.Equal(t, "2025-01-03T00:00:00Z", s.GetCursor(cfg, "updated_at"))
}
