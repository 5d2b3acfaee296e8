package events

import (
	"time"

	"github.com/google/uuid"
)

// Event type codes published on the bus.
const (
	TypeUserRegistered = "USER_REGISTERED"
	TypeSessionStarted = "SESSION_STARTED"
	TypeSessionEnded   = "SESSION_ENDED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "USER_REGISTERED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the common implementation used by all publishers here.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// UserRegistered marks a successful account registration.
func UserRegistered(userID uuid.UUID, email string) Event {
	return BaseEvent{
		Type:       TypeUserRegistered,
		Data:       map[string]interface{}{"user_id": userID.String(), "email": email},
		OccurredAt: time.Now(),
	}
}

// SessionStarted marks the opening of a dictation session.
func SessionStarted(sessionID, userID uuid.UUID) Event {
	return BaseEvent{
		Type:       TypeSessionStarted,
		Data:       map[string]interface{}{"session_id": sessionID.String(), "user_id": userID.String()},
		OccurredAt: time.Now(),
	}
}

// SessionEnded marks a session terminated by exit word or disconnect.
func SessionEnded(sessionID uuid.UUID, reason string) Event {
	return BaseEvent{
		Type:       TypeSessionEnded,
		Data:       map[string]interface{}{"session_id": sessionID.String(), "reason": reason},
		OccurredAt: time.Now(),
	}
}
