package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event is the envelope for everything the platform publishes.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// Event types published by the platform service.
const (
	EventTypeUserRegistered = "user.registered"
	EventTypeUserLoggedIn   = "user.logged_in"
	EventTypePlatformSeeded = "platform.seeded"
)

const (
	// EventSource identifies this service in event envelopes.
	EventSource = "platform-service"

	// EventVersion is the envelope schema version.
	EventVersion = "1.0"
)

// EventPublisher publishes platform events to the configured transport.
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

// NewEvent builds an envelope with identity and timing filled in.
func NewEvent(eventType string, data interface{}) *Event {
	return &Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    EventSource,
		Version:   EventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// ===== EVENT PAYLOADS =====

// UserRegisteredEvent is the payload for user.registered.
type UserRegisteredEvent struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// UserLoggedInEvent is the payload for user.logged_in.
type UserLoggedInEvent struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// PlatformSeededEvent is the payload for platform.seeded.
type PlatformSeededEvent struct {
	UsersCreated   int `json:"users_created"`
	CoursesCreated int `json:"courses_created"`
}
