package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates auth lifecycle events.
type EventType string

const (
	EventLoginSucceeded EventType = "LoginSucceeded"
	EventLoginFailed    EventType = "LoginFailed"
	EventTokenRejected  EventType = "TokenRejected"
)

// Event is an auth occurrence published to subscribers.
type Event struct {
	ID      string
	Type    EventType
	Subject string
	At      time.Time
	Payload map[string]any
}

// NewEvent stamps a fresh event with id and time.
func NewEvent(eventType EventType, subject string, payload map[string]any) Event {
	return Event{
		ID:      uuid.NewString(),
		Type:    eventType,
		Subject: subject,
		At:      time.Now(),
		Payload: payload,
	}
}
