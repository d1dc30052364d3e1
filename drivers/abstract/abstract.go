package abstract

import (
	"context"
	"fmt"
	"time"

	"github.com/datazip-inc/tap-persona/destination"
	"github.com/datazip-inc/tap-persona/types"
	"github.com/datazip-inc/tap-persona/utils"
	"github.com/datazip-inc/tap-persona/utils/logger"
)

type AbstractDriver struct {
	driver DriverInterface
	state  *types.State
}

func NewAbstractDriver(_ context.Context, driver DriverInterface) *AbstractDriver {
	return &AbstractDriver{
		driver: driver,
	}
}

func (a *AbstractDriver) SetupState(state *types.State) {
	a.state = state
	a.driver.SetupState(state)
}

func (a *AbstractDriver) GetConfigRef() Config {
	return a.driver.GetConfigRef()
}

func (a *AbstractDriver) Spec() any {
	return a.driver.Spec()
}

func (a *AbstractDriver) Type() string {
	return a.driver.Type()
}

func (a *AbstractDriver) Setup(ctx context.Context) error {
	return a.driver.Setup(ctx)
}

// Discover returns the source streams with sync modes resolved;
// incremental wins over full refresh when the stream supports it.
func (a *AbstractDriver) Discover(ctx context.Context) ([]*types.Stream, error) {
	streamNames, err := a.driver.GetStreamNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stream names: %s", err)
	}

	streams := make([]*types.Stream, 0, len(streamNames))
	err = utils.ForEach(streamNames, func(name string) error {
		stream, err := a.driver.ProduceSchema(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to produce schema for stream %s: %s", name, err)
		}

		if stream.SupportedSyncModes.Exists(types.INCREMENTAL) {
			stream.SyncMode = types.INCREMENTAL
		} else {
			stream.SyncMode = types.FULLREFRESH
		}

		streams = append(streams, stream)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return streams, nil
}

// Read runs incremental streams one at a time so their checkpoints
// stay ordered, then drains full-load streams concurrently; full loads
// carry no cursor state, so they cannot corrupt each other.
func (a *AbstractDriver) Read(ctx context.Context, pool *destination.WriterPool, fullLoadStreams, incrementalStreams []types.StreamInterface) error {
	if err := a.Incremental(ctx, pool, incrementalStreams...); err != nil {
		return fmt.Errorf("failed to run incremental sync: %s", err)
	}

	fullLoads := make([]func() error, 0, len(fullLoadStreams))
	for _, stream := range fullLoadStreams {
		fullLoads = append(fullLoads, utils.ErrExecFormat("failed to run full load: %s", func() error {
			return a.FullLoad(ctx, pool, stream)
		}))
	}
	return utils.ErrExec(fullLoads...)
}

// FullLoad reads every record of the stream without a replication floor.
func (a *AbstractDriver) FullLoad(ctx context.Context, pool *destination.WriterPool, stream types.StreamInterface) error {
	logger.Infof("Starting full load for stream[%s]", stream.ID())
	start := time.Now()

	thread := pool.NewThread(ctx, stream, generateThreadID(stream.ID()))
	defer func() {
		if err := thread.Close(); err != nil {
			logger.Errorf("failed to close writer thread for stream %s: %s", stream.ID(), err)
		}
	}()

	err := a.driver.StreamRecords(ctx, stream, nil,
		func(ctx context.Context, record types.Record) error {
			return thread.Push(ctx, record)
		},
		func(_ context.Context) error { return nil },
	)
	if err != nil {
		return err
	}

	logger.Infof("Finished full load for stream[%s]: %d records in %s", stream.ID(), thread.Records(), time.Since(start).String())
	return nil
}

// generateThreadID creates a unique thread ID for a stream
func generateThreadID(streamID string) string {
	return fmt.Sprintf("%s_%s", streamID, utils.ULID())
}
