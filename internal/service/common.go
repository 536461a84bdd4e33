package service

import (
	"context"
	"strings"
	"time"

	"vn-server/internal/interfaces"

	"go.uber.org/zap"
)

// Options holds the gameplay policies chosen by configuration.
type Options struct {
	// StartSceneID is where new players begin.
	StartSceneID string
	// RequireIdempotencyKey rejects option selections without a key.
	RequireIdempotencyKey bool
	// RestoreAffinityOnLoad replaces current affinity with the slot snapshot on load.
	RestoreAffinityOnLoad bool
}

// eventSink publishes committed changes. Broker failures never fail the operation.
type eventSink struct {
	publisher interfaces.EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

func (s eventSink) publish(ctx context.Context, event interfaces.GameplayEvent) {
	if s.publisher == nil {
		return
	}
	event.OccurredAt = s.now().UTC()
	if err := s.publisher.PublishGameplayEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish gameplay event",
			zap.String("type", string(event.Type)),
			zap.String("playerID", event.PlayerID.String()),
			zap.Error(err))
	}
}

func normalizeKey(key string) string {
	return strings.TrimSpace(key)
}
