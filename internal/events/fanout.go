package events

import (
	"context"

	"github.com/davidbz/creditledger/internal/domain"
)

// Fanout delivers every event to each publisher in order.
type Fanout []domain.EventPublisher

func (f Fanout) Publish(ctx context.Context, eventType string, data map[string]interface{}) {
	for _, p := range f {
		if p != nil {
			p.Publish(ctx, eventType, data)
		}
	}
}
