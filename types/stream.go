package types

import (
	"fmt"
)

type SyncMode string

const (
	FULLREFRESH SyncMode = "full_refresh"
	INCREMENTAL SyncMode = "incremental"
)

// Stream is the source-side descriptor of one API collection.
type Stream struct {
	Name                    string          `json:"name"`
	Namespace               string          `json:"namespace,omitempty"`
	Schema                  *TypeSchema     `json:"type_schema,omitempty"`
	SupportedSyncModes      *Set[SyncMode]  `json:"supported_sync_modes,omitempty"`
	SourceDefinedPrimaryKey *Set[string]    `json:"source_defined_primary_key,omitempty"`
	AvailableCursorFields   *Set[string]    `json:"available_cursor_fields,omitempty"`
	SyncMode                SyncMode        `json:"sync_mode,omitempty"`
}

func NewStream(name, namespace string) *Stream {
	return &Stream{
		Name:                    name,
		Namespace:               namespace,
		Schema:                  NewTypeSchema(),
		SupportedSyncModes:      NewSet[SyncMode](),
		SourceDefinedPrimaryKey: NewSet[string](),
		AvailableCursorFields:   NewSet[string](),
	}
}

func (s *Stream) ID() string {
	return fmt.Sprintf("%s.%s", s.Namespace, s.Name)
}

func (s *Stream) WithSyncMode(modes ...SyncMode) *Stream {
	s.SupportedSyncModes.Insert(modes...)
	return s
}

func (s *Stream) WithPrimaryKey(keys ...string) *Stream {
	s.SourceDefinedPrimaryKey.Insert(keys...)
	return s
}

func (s *Stream) WithCursorField(columns ...string) *Stream {
	s.AvailableCursorFields.Insert(columns...)
	return s
}

func (s *Stream) UpsertField(column string, typ DataType, nullable bool) {
	types := []DataType{typ}
	if nullable {
		types = append(types, Null)
	}

	s.Schema.AddTypes(column, types...)
}

// Wrap converts a source Stream into a selectable catalog entry.
func (s *Stream) Wrap() *ConfiguredStream {
	configured := &ConfiguredStream{
		Stream: s,
	}

	if cursors := s.AvailableCursorFields.Array(); len(cursors) > 0 {
		configured.CursorField = cursors[0]
	}

	return configured
}

func StreamsToMap(streams ...*Stream) map[string]*Stream {
	output := make(map[string]*Stream)
	for _, stream := range streams {
		output[stream.ID()] = stream
	}

	return output
}
