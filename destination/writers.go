package destination

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/datazip-inc/tap-persona/constants"
	"github.com/datazip-inc/tap-persona/types"
	"github.com/datazip-inc/tap-persona/utils/logger"
)

// WriterPool owns the shared writer and counts emitted records.
// Stream readers open one WriterThread each; threads serialize through
// the writer, which is safe for concurrent use.
type WriterPool struct {
	writer       Writer
	totalRecords atomic.Int64
}

func NewWriterPool(ctx context.Context, config *WriterConfig) (*WriterPool, error) {
	if config == nil {
		config = &WriterConfig{Type: StdoutWriter}
	}

	newFunc, found := RegisteredWriters[config.Type]
	if !found {
		return nil, fmt.Errorf("invalid writer type [%s]", config.Type)
	}

	writer := newFunc()
	if err := writer.Setup(ctx, config); err != nil {
		return nil, fmt.Errorf("failed to setup writer: %s", err)
	}

	return &WriterPool{writer: writer}, nil
}

func (p *WriterPool) TotalRecords() int64 {
	return p.totalRecords.Load()
}

func (p *WriterPool) Close() error {
	return p.writer.Close()
}

// NewThread opens a record writer for one stream.
func (p *WriterPool) NewThread(_ context.Context, stream types.StreamInterface, threadID string) *WriterThread {
	logger.Debugf("Thread[%s]: created writer for stream %s", threadID, stream.ID())
	return &WriterThread{
		pool:     p,
		stream:   stream.Self(),
		threadID: threadID,
	}
}

type WriterThread struct {
	pool     *WriterPool
	stream   *types.ConfiguredStream
	threadID string
	records  int64
}

// Push emits one record message; the extraction timestamp is stamped
// at emission so it reflects delivery, not fetch.
func (t *WriterThread) Push(ctx context.Context, data types.Record) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	data[constants.ExtractedAt] = time.Now().UTC().Format(time.RFC3339Nano)
	if err := t.pool.writer.Write(types.NewRecordMessage(t.stream, data)); err != nil {
		return fmt.Errorf("failed to write record: %s", err)
	}

	t.records++
	t.pool.totalRecords.Add(1)
	return nil
}

func (t *WriterThread) Records() int64 {
	return t.records
}

// Flush forces every pushed record out of the process. Checkpoints call
// this before state is persisted, so a cursor never covers a record
// still sitting in a buffer.
func (t *WriterThread) Flush() error {
	return t.pool.writer.Flush()
}

func (t *WriterThread) Close() error {
	logger.Debugf("Thread[%s]: closed after %d records for stream %s", t.threadID, t.records, t.stream.ID())
	return t.pool.writer.Close()
}
