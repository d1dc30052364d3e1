package destination

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"

	"github.com/goccy/go-json"
)

const StdoutWriter = "stdout"

// stdout emits protocol messages as JSON lines, one per message.
// All record output of a sync flows through here.
type stdout struct {
	mu  sync.Mutex
	out *bufio.Writer
}

func newStdout() Writer {
	return &stdout{}
}

func (s *stdout) Type() string {
	return StdoutWriter
}

func (s *stdout) Setup(_ context.Context, _ *WriterConfig) error {
	s.out = bufio.NewWriter(os.Stdout)
	return nil
}

// SetOutput redirects message output; used by tests.
func (s *stdout) SetOutput(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.out = bufio.NewWriter(w)
}

func (s *stdout) Write(message any) error {
	raw, err := json.Marshal(message)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.out.Write(raw); err != nil {
		return err
	}
	return s.out.WriteByte('\n')
}

func (s *stdout) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out.Flush()
}

func (s *stdout) Close() error {
	return s.Flush()
}

func init() {
	RegisteredWriters[StdoutWriter] = newStdout
}
