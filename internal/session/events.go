package session

import (
	"sync"
	"time"

	"github.com/vovakirdan/wordhunt/internal/scoring"
)

// Event is emitted by a session after a state change.
type Event interface {
	sessionEvent()
}

// LevelStartedEvent is sent when a new level becomes active.
type LevelStartedEvent struct {
	SessionID string
	Level     int
	FieldSize int
	Words     int
	TimeLimit time.Duration
}

func (LevelStartedEvent) sessionEvent() {}

// WordFoundEvent is sent for every accepted word.
type WordFoundEvent struct {
	SessionID string
	Level     int
	Word      string
	Found     int
	Total     int
}

func (WordFoundEvent) sessionEvent() {}

// LevelCompletedEvent is sent when a level stops accepting input.
type LevelCompletedEvent struct {
	SessionID string
	Reason    CompletionReason
	Result    scoring.LevelResult
}

func (LevelCompletedEvent) sessionEvent() {}

// SessionEndedEvent is sent once, when the session becomes terminal.
type SessionEndedEvent struct {
	SessionID string
	Score     int
}

func (SessionEndedEvent) sessionEvent() {}

// Sink receives session events. Send must not block and must not call
// back into the session synchronously.
type Sink interface {
	Send(evt Event)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(evt Event)

// Send calls f(evt).
func (f SinkFunc) Send(evt Event) { f(evt) }

// Sinks fans an event out to several sinks.
type Sinks []Sink

// Send forwards evt to every sink.
func (ss Sinks) Send(evt Event) {
	for _, s := range ss {
		if s != nil {
			s.Send(evt)
		}
	}
}

// ChannelSink is a Sink backed by a buffered channel.
// Used by the TUI to turn session events into Bubble Tea messages.
type ChannelSink struct {
	events   chan Event
	done     chan struct{}
	doneOnce sync.Once
}

// NewChannelSink creates a channel sink. bufferSize controls how many
// events can be buffered before the oldest are dropped.
func NewChannelSink(bufferSize int) *ChannelSink {
	if bufferSize < 1 {
		bufferSize = 64
	}
	return &ChannelSink{
		events: make(chan Event, bufferSize),
		done:   make(chan struct{}),
	}
}

// Send queues an event. If the buffer is full the oldest event is dropped.
func (c *ChannelSink) Send(evt Event) {
	select {
	case <-c.done:
		return
	default:
	}

	select {
	case c.events <- evt:
	default:
		select {
		case <-c.events:
		default:
		}
		select {
		case c.events <- evt:
		default:
		}
	}
}

// Events returns the channel to receive events from.
func (c *ChannelSink) Events() <-chan Event {
	return c.events
}

// Done returns a channel closed by Close.
func (c *ChannelSink) Done() <-chan struct{} {
	return c.done
}

// Close stops accepting events. Safe to call multiple times.
func (c *ChannelSink) Close() {
	c.doneOnce.Do(func() {
		close(c.done)
	})
}
