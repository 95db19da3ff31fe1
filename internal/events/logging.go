package events

import (
	"go.uber.org/zap"
)

// LoggingListener writes every event to a zap logger
type LoggingListener struct {
	logger *zap.Logger
}

// NewLoggingListener creates a listener that logs at Info
func NewLoggingListener(logger *zap.Logger) *LoggingListener {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingListener{logger: logger}
}

func (l *LoggingListener) ID() string    { return "logging" }
func (l *LoggingListener) Priority() int { return PriorityLogging }

// HandleEvent logs the event with its type specific fields
func (l *LoggingListener) HandleEvent(event Event) error {
	fields := []zap.Field{
		zap.String("event_id", event.GetID()),
		zap.Time("occurred_at", event.GetOccurredAt()),
	}

	switch e := event.(type) {
	case *TransferEvent:
		fields = append(fields,
			zap.String("from", string(e.From)),
			zap.String("to", string(e.To)),
			zap.Uint64("zombie_id", e.ZombieID))
	case *ZombieCreatedEvent:
		fields = append(fields,
			zap.Uint64("zombie_id", e.ZombieID),
			zap.String("name", e.Name),
			zap.Stringer("dna", e.DNA))
	case *LevelUpEvent:
		fields = append(fields,
			zap.Uint64("zombie_id", e.ZombieID),
			zap.Uint32("level", e.Level),
			zap.Uint64("fee", uint64(e.Fee)))
	case *BattleEvent:
		fields = append(fields,
			zap.Uint64("attacker_id", e.AttackerID),
			zap.Uint64("defender_id", e.DefenderID),
			zap.Bool("won", e.Won),
			zap.Int("roll", e.Roll),
			zap.Int("threshold", e.Threshold))
	case *WithdrawnEvent:
		fields = append(fields,
			zap.String("to", string(e.To)),
			zap.Uint64("amount", uint64(e.Amount)))
	}

	l.logger.Info(string(event.GetType()), fields...)
	return nil
}
