package constants

import (
	"errors"
	"time"
)

const (
	// viper keys resolved by the root command and shared across packages
	ConfigFolder = "CONFIG_FOLDER"
	StatePath    = "STATE_PATH"
	StreamsPath  = "STREAMS_PATH"

	// ExtractedAt is stamped on every emitted record
	ExtractedAt = "_sdc_extracted_at"

	DefaultPageSize   = 100
	DefaultRetryCount = 3

	DefaultRetryBackoff    = time.Second
	DefaultMaxRetryBackoff = time.Minute
)

var ErrNonRetryable = errors.New("non-retryable error")
