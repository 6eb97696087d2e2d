package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/inkpost/blog-system/internal/core/domain"
	"github.com/inkpost/blog-system/internal/infrastructure/metrics"
)

// Sink receives notifications from the Dispatcher.
type Sink interface {
	Deliver(ctx context.Context, n domain.Notification) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, n domain.Notification) error

func (f SinkFunc) Deliver(ctx context.Context, n domain.Notification) error { return f(ctx, n) }

// LogSink writes notifications to the structured log and counts them.
type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Deliver(_ context.Context, n domain.Notification) error {
	evt := s.log.Info()
	if n.Kind == domain.NotificationError {
		evt = s.log.Warn()
	}
	if n.Event != nil {
		evt = evt.Str("event", string(n.Event.Type)).Str("post_id", n.Event.PostID)
	}
	evt.Str("kind", string(n.Kind)).
		Str("title", n.Title).
		Str("description", n.Description).
		Str("redirect", n.Redirect).
		Msg("notification")

	metrics.NotificationsDeliveredTotal.WithLabelValues(string(n.Kind), n.Title).Inc()
	return nil
}

// WriterSink prints notifications as single lines. It also satisfies
// ports.Notifier directly, for callers that want synchronous delivery.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Deliver(_ context.Context, n domain.Notification) error {
	mark := "✓"
	if n.Kind == domain.NotificationError {
		mark = "✗"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if n.Description == "" {
		_, err = fmt.Fprintf(s.w, "%s %s\n", mark, n.Title)
	} else {
		_, err = fmt.Fprintf(s.w, "%s %s: %s\n", mark, n.Title, n.Description)
	}
	return err
}

func (s *WriterSink) Notify(n domain.Notification) {
	_ = s.Deliver(context.Background(), n)
}
