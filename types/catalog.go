package types

import (
	"time"

	"github.com/datazip-inc/tap-persona/utils/logger"
	"github.com/spf13/viper"

	"github.com/datazip-inc/tap-persona/constants"
)

// Message is a dto for tap output row representation
type Message struct {
	Type             MessageType            `json:"type"`
	Log              *Log                   `json:"log,omitempty"`
	ConnectionStatus *StatusRow             `json:"connectionStatus,omitempty"`
	Record           *RecordRow             `json:"record,omitempty"`
	State            *State                 `json:"state,omitempty"`
	Catalog          *Catalog               `json:"catalog,omitempty"`
	Spec             map[string]interface{} `json:"spec,omitempty"`
}

// Log is a dto for log-line serialization
type Log struct {
	Level   string `json:"level,omitempty"`
	Message string `json:"message,omitempty"`
}

// StatusRow is a dto for check-result serialization
type StatusRow struct {
	Status  ConnectionStatus `json:"status,omitempty"`
	Message string           `json:"message,omitempty"`
}

// RecordRow is a dto for one extracted record
type RecordRow struct {
	Stream    string `json:"stream"`
	Namespace string `json:"namespace,omitempty"`
	Data      Record `json:"data"`
	EmittedAt int64  `json:"emitted_at"`
}

func NewRecordMessage(stream *ConfiguredStream, data Record) Message {
	return Message{
		Type: RecordMessage,
		Record: &RecordRow{
			Stream:    stream.Name(),
			Namespace: stream.Namespace(),
			Data:      data,
			EmittedAt: time.Now().UTC().UnixMilli(),
		},
	}
}

// Catalog is a dto for the configured-streams file
type Catalog struct {
	Streams []*ConfiguredStream `json:"streams,omitempty"`
}

func GetWrappedCatalog(streams []*Stream) *Catalog {
	catalog := &Catalog{
		Streams: []*ConfiguredStream{},
	}

	for _, stream := range streams {
		catalog.Streams = append(catalog.Streams, stream.Wrap())
	}

	return catalog
}

// LogCatalog emits the discovered catalog on stdout and refreshes the
// streams file for later sync runs.
func LogCatalog(streams []*Stream) {
	catalog := GetWrappedCatalog(streams)
	logger.LogMessage(Message{
		Type:    CatalogMessage,
		Catalog: catalog,
	})

	if path := viper.GetString(constants.StreamsPath); path != "" {
		logger.FileLoggerWithPath(catalog, path)
	}
}
