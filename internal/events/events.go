// Package events publishes domain events emitted by the attempt lifecycle.
// Publishing is best-effort: a failed publish is logged by the caller and
// never fails the operation that produced the event.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/portal-provas/exam-service/internal/models"
)

const EventSource = "exam-service"

const (
	TypeAttemptSubmitted = "attempt.submitted"
)

// AttemptEndReasonTimeout marks submissions triggered by timer expiry rather
// than a manual action.
const AttemptEndReasonTimeout = "time_out"

// Event is the envelope every published payload travels in.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// AttemptSubmittedEvent is emitted once per attempt, when it transitions to
// submitted and its result is persisted.
type AttemptSubmittedEvent struct {
	AttemptID int64         `json:"attempt_id"`
	ExamID    int64         `json:"exam_id"`
	UserID    int64         `json:"user_id"`
	Result    models.Result `json:"result"`
	EndReason string        `json:"end_reason,omitempty"`
}

// Publisher is the outbound port for domain events.
type Publisher interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
	Close() error
}

// NewEvent stamps the envelope fields around a payload.
func NewEvent(eventType string, data interface{}) Event {
	return Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    EventSource,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}
