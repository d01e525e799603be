package chat

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// TranscriptEvent is one logged turn of the widget conversation.
type TranscriptEvent struct {
	Timestamp string `json:"ts"`
	UserID    string `json:"user_id"`
	Direction string `json:"direction"` // "user" or "assistant"
	Source    string `json:"source,omitempty"`
	Intent    string `json:"intent,omitempty"`
	Content   string `json:"content"`
}

// TranscriptLogger records question/answer turns for offline review.
type TranscriptLogger interface {
	Log(event TranscriptEvent)
	Close() error
}

// TranscriptLogConfig controls NDJSON transcript logging.
type TranscriptLogConfig struct {
	Enabled   bool
	Dir       string
	QueueSize int
}

// NoopTranscriptLogger discards all events.
type NoopTranscriptLogger struct{}

func (NoopTranscriptLogger) Log(TranscriptEvent) {}
func (NoopTranscriptLogger) Close() error        { return nil }

// fileTranscriptLogger appends one NDJSON file per user under Dir. Writes
// happen on a single background goroutine fed by a bounded queue; a full
// queue drops the event rather than blocking a chat request.
type fileTranscriptLogger struct {
	dir    string
	queue  chan TranscriptEvent
	done   chan struct{}
	closed sync.Once
	logger *slog.Logger
}

// NewTranscriptLogger creates a transcript logger. A disabled config returns
// the noop logger.
func NewTranscriptLogger(cfg TranscriptLogConfig, logger *slog.Logger) (TranscriptLogger, error) {
	if !cfg.Enabled {
		return NoopTranscriptLogger{}, nil
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create transcript directory: %w", err)
	}
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 1000
	}

	l := &fileTranscriptLogger{
		dir:    cfg.Dir,
		queue:  make(chan TranscriptEvent, queueSize),
		done:   make(chan struct{}),
		logger: logger,
	}
	go l.writeLoop()
	return l, nil
}

func (l *fileTranscriptLogger) Log(event TranscriptEvent) {
	if event.Timestamp == "" {
		event.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	}
	select {
	case l.queue <- event:
	default:
		l.logger.Warn("Transcript queue full, dropping event", "user_id", event.UserID)
	}
}

func (l *fileTranscriptLogger) Close() error {
	l.closed.Do(func() {
		close(l.queue)
		<-l.done
	})
	return nil
}

func (l *fileTranscriptLogger) writeLoop() {
	defer close(l.done)
	for event := range l.queue {
		if err := l.append(event); err != nil {
			l.logger.Warn("Failed to append transcript event", "error", err, "user_id", event.UserID)
		}
	}
}

func (l *fileTranscriptLogger) append(event TranscriptEvent) error {
	line, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal transcript event: %w", err)
	}

	path := filepath.Join(l.dir, event.UserID+".ndjson")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open transcript file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write transcript line: %w", err)
	}
	return nil
}
