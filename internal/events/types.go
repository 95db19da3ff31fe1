package events

import (
	"time"
)

// EventType represents the type of registry event
type EventType string

// Event is the base interface for all registry events
type Event interface {
	GetType() EventType
	GetID() string
	GetOccurredAt() time.Time
}

// BaseEvent provides common implementation for all events
type BaseEvent struct {
	ID         string
	Type       EventType
	OccurredAt time.Time
}

// NewBaseEvent creates the common part of an event
func NewBaseEvent(id string, eventType EventType, at time.Time) BaseEvent {
	return BaseEvent{ID: id, Type: eventType, OccurredAt: at}
}

func (e *BaseEvent) GetType() EventType       { return e.Type }
func (e *BaseEvent) GetID() string            { return e.ID }
func (e *BaseEvent) GetOccurredAt() time.Time { return e.OccurredAt }
