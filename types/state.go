package types

import (
	"sync"
	"sync/atomic"

	"github.com/goccy/go-json"
)

type StateType string

const (
	// StreamType indicates per-stream state tracking
	StreamType StateType = "STREAM"
)

// State holds the replication cursors of all streams across a run.
// Owned by the sync command; guarded for the page-checkpoint writers.
type State struct {
	*sync.RWMutex
	Type    StateType      `json:"type"`
	Streams []*StreamState `json:"streams"`
}

func NewState() *State {
	return &State{
		RWMutex: &sync.RWMutex{},
		Type:    StreamType,
		Streams: []*StreamState{},
	}
}

func (s *State) SetType(typ StateType) {
	s.Type = typ
}

func (s *State) IsZero() bool {
	s.RLock()
	defer s.RUnlock()

	for _, stream := range s.Streams {
		if stream.HoldsValue.Load() {
			return false
		}
	}
	return true
}

func (s *State) ResetStreams() {
	s.Lock()
	defer s.Unlock()

	s.Streams = []*StreamState{}
}

func (s *State) initStreamState(stream *ConfiguredStream) *StreamState {
	return &StreamState{
		Stream:    stream.Name(),
		Namespace: stream.Namespace(),
	}
}

func (s *State) findStreamState(stream *ConfiguredStream) *StreamState {
	for _, candidate := range s.Streams {
		if candidate.Stream == stream.Name() && candidate.Namespace == stream.Namespace() {
			return candidate
		}
	}
	return nil
}

// SetCursor stores a cursor value for the stream, creating its state
// entry on first write. Empty keys are ignored.
func (s *State) SetCursor(stream *ConfiguredStream, key string, value any) {
	if key == "" {
		return
	}

	s.Lock()
	defer s.Unlock()

	streamState := s.findStreamState(stream)
	if streamState == nil {
		streamState = s.initStreamState(stream)
		s.Streams = append(s.Streams, streamState)
	}

	streamState.State.Store(key, value)
	streamState.HoldsValue.Store(true)
}

func (s *State) GetCursor(stream *ConfiguredStream, key string) any {
	if key == "" {
		return nil
	}

	s.RLock()
	defer s.RUnlock()

	streamState := s.findStreamState(stream)
	if streamState == nil {
		return nil
	}

	value, _ := streamState.State.Load(key)
	return value
}

// ResetCursor drops the stream's cursor while keeping the state entry.
func (s *State) ResetCursor(stream *ConfiguredStream) {
	s.Lock()
	defer s.Unlock()

	streamState := s.findStreamState(stream)
	if streamState == nil {
		return
	}

	streamState.State.Delete(stream.Cursor())
	streamState.HoldsValue.Store(false)
}

// MarshalJSON serializes only streams that hold values.
func (s *State) MarshalJSON() ([]byte, error) {
	s.RLock()
	defer s.RUnlock()

	populated := []*StreamState{}
	for _, stream := range s.Streams {
		if stream.HoldsValue.Load() {
			populated = append(populated, stream)
		}
	}

	type Alias State
	return json.Marshal(&struct {
		*Alias
		Streams []*StreamState `json:"streams"`
	}{
		Alias:   (*Alias)(s),
		Streams: populated,
	})
}

func (s *State) UnmarshalJSON(data []byte) error {
	if s.RWMutex == nil {
		s.RWMutex = &sync.RWMutex{}
	}

	type Alias State
	aux := &struct {
		*Alias
	}{
		Alias: (*Alias)(s),
	}
	return json.Unmarshal(data, aux)
}

// StreamState is the per-stream cursor map.
type StreamState struct {
	Stream     string      `json:"stream"`
	Namespace  string      `json:"namespace"`
	State      sync.Map    `json:"-"`
	HoldsValue atomic.Bool `json:"-"`
}

func (ss *StreamState) MarshalJSON() ([]byte, error) {
	stateMap := make(map[string]any)
	ss.State.Range(func(key, value any) bool {
		stateMap[key.(string)] = value
		return true
	})

	type Alias StreamState
	return json.Marshal(&struct {
		*Alias
		State map[string]any `json:"state"`
	}{
		Alias: (*Alias)(ss),
		State: stateMap,
	})
}

func (ss *StreamState) UnmarshalJSON(data []byte) error {
	type Alias StreamState
	aux := &struct {
		*Alias
		State map[string]any `json:"state"`
	}{
		Alias: (*Alias)(ss),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	for key, value := range aux.State {
		ss.State.Store(key, value)
	}
	if len(aux.State) > 0 {
		ss.HoldsValue.Store(true)
	}

	return nil
}
