package abstract

import (
	"context"

	"github.com/datazip-inc/tap-persona/types"
)

// MessageFn receives one normalized record, in page order.
type MessageFn func(ctx context.Context, record types.Record) error

// CheckpointFn runs after every fully emitted page; implementations
// persist cursor state here so a crash never loses delivered pages.
type CheckpointFn func(ctx context.Context) error

type Config interface {
	Validate() error
}

type DriverInterface interface {
	GetConfigRef() Config
	Spec() any
	Type() string
	// specific to test & setup
	Setup(ctx context.Context) error
	SetupState(state *types.State)
	// specific to discover
	GetStreamNames(ctx context.Context) ([]string, error)
	ProduceSchema(ctx context.Context, stream string) (*types.Stream, error)
	// incremental specific
	InitialCursorValue(stream types.StreamInterface) any
	// StreamRecords pages through the stream, invoking onRecord per row
	// and onPageEnd after each page's rows were handed over. A nil since
	// starts an unbounded load.
	StreamRecords(ctx context.Context, stream types.StreamInterface, since any, onRecord MessageFn, onPageEnd CheckpointFn) error
}
