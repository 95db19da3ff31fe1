package events

// Event type constants
const (
	EventTypeTransfer      EventType = "transfer"
	EventTypeZombieCreated EventType = "zombie_created"
	EventTypeLevelUp       EventType = "level_up"
	EventTypeBattle        EventType = "battle"
	EventTypeWithdrawn     EventType = "withdrawn"
)

// AllEventTypes lists every type the registry emits
var AllEventTypes = []EventType{
	EventTypeTransfer,
	EventTypeZombieCreated,
	EventTypeLevelUp,
	EventTypeBattle,
	EventTypeWithdrawn,
}

// Priority levels for listener order
const (
	PriorityMetrics = 100
	PriorityLogging = 200
	PriorityNotify  = 300
)
