package abstract

import (
	"context"
	"fmt"
	"time"

	"github.com/datazip-inc/tap-persona/destination"
	"github.com/datazip-inc/tap-persona/types"
	"github.com/datazip-inc/tap-persona/utils"
	"github.com/datazip-inc/tap-persona/utils/logger"
	"github.com/datazip-inc/tap-persona/utils/typeutils"
)

// Incremental syncs streams from their replication floor. The tracked
// cursor is the max replication-key value observed so far; it only
// reaches state after the page carrying it was fully emitted.
func (a *AbstractDriver) Incremental(ctx context.Context, pool *destination.WriterPool, streams ...types.StreamInterface) error {
	return utils.ForEach(streams, func(stream types.StreamInterface) error {
		cursorField := stream.Cursor()
		if cursorField == "" {
			return fmt.Errorf("cursor field not specified for incremental stream %s", stream.ID())
		}

		since := a.seedCursor(stream)
		if since != nil {
			logger.Infof("Resuming incremental sync for stream[%s] from cursor: %v", stream.ID(), since)
		} else {
			logger.Infof("No prior cursor for stream[%s], starting unbounded load", stream.ID())
		}

		start := time.Now()
		threadID := generateThreadID(stream.ID())
		thread := pool.NewThread(ctx, stream, threadID)
		defer func() {
			if err := thread.Close(); err != nil {
				logger.Errorf("Thread[%s]: failed to close writer: %s", threadID, err)
			}
		}()

		// never decreases, tolerant of out-of-order pages
		maxCursor := since

		err := a.driver.StreamRecords(ctx, stream, since,
			func(ctx context.Context, record types.Record) error {
				maxCursor = typeutils.MaxCursor(maxCursor, record[cursorField])
				return thread.Push(ctx, record)
			},
			func(ctx context.Context) error {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				// the page's records must be out before its cursor is
				if err := thread.Flush(); err != nil {
					return fmt.Errorf("failed to flush records before checkpoint: %s", err)
				}
				return a.checkpoint(stream, cursorField, maxCursor)
			},
		)
		if err != nil {
			return fmt.Errorf("incremental sync failed for stream %s: %s", stream.ID(), err)
		}

		// terminal checkpoint
		if err := thread.Flush(); err != nil {
			return fmt.Errorf("failed to flush records before checkpoint: %s", err)
		}
		if err := a.checkpoint(stream, cursorField, maxCursor); err != nil {
			return err
		}

		logger.Infof("Finished incremental sync for stream[%s]: %d records in %s", stream.ID(), thread.Records(), time.Since(start).String())
		return nil
	})
}

// seedCursor resolves the replication floor: prior state first, then
// the driver's configured start value, else nil for unbounded backfill.
func (a *AbstractDriver) seedCursor(stream types.StreamInterface) any {
	if a.state != nil {
		if prev := a.state.GetCursor(stream.Self(), stream.Cursor()); prev != nil {
			return prev
		}
	}

	return a.driver.InitialCursorValue(stream)
}

func (a *AbstractDriver) checkpoint(stream types.StreamInterface, cursorField string, cursorValue any) error {
	if cursorValue == nil || a.state == nil {
		return nil
	}

	a.state.SetCursor(stream.Self(), cursorField, typeutils.FormatCursorValue(cursorValue))
	logger.LogState(a.state)
	return nil
}
