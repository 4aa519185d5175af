package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const (
	TypeAdminLoginSucceeded = "ADMIN_LOGIN_SUCCEEDED"
	TypeAdminLoginRejected  = "ADMIN_LOGIN_REJECTED"
	TypeAdminLocked         = "ADMIN_LOCKED"

	TypeKnowledgeCreated      = "KNOWLEDGE_CREATED"
	TypeKnowledgeUpdated      = "KNOWLEDGE_UPDATED"
	TypeKnowledgeDeleted      = "KNOWLEDGE_DELETED"
	TypeKnowledgeAudioChanged = "KNOWLEDGE_AUDIO_CHANGED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "ADMIN_LOCKED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Publisher sends events to a bus. Implementations must be safe for
// concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now().UTC()}
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

// IsKnowledgeChange reports whether the event invalidates knowledge snapshots.
func IsKnowledgeChange(eventType string) bool {
	switch eventType {
	case TypeKnowledgeCreated, TypeKnowledgeUpdated, TypeKnowledgeDeleted, TypeKnowledgeAudioChanged:
		return true
	}
	return false
}

// envelope is the wire form shared by every transport.
type envelope struct {
	Type       string                 `json:"type"`
	OccurredAt time.Time              `json:"occurred_at"`
	Data       map[string]interface{} `json:"data"`
}

func Marshal(e Event) ([]byte, error) {
	return json.Marshal(envelope{Type: e.EventType(), OccurredAt: e.Timestamp(), Data: e.Payload()})
}

func Unmarshal(b []byte) (BaseEvent, error) {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return BaseEvent{}, fmt.Errorf("decode event: %w", err)
	}
	if env.Type == "" {
		return BaseEvent{}, fmt.Errorf("decode event: missing type")
	}
	return BaseEvent{Type: env.Type, Data: env.Data, OccurredAt: env.OccurredAt}, nil
}
