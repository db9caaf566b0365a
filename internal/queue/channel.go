package queue

import (
	"context"

	"wardrobe/client/internal/domain/event"

	"github.com/redis/go-redis/v9"
)

// Record is a stored diagnostic event.
type Record struct {
	ID        string
	EventType string
	Data      string
}

// Channel is where failures that never reach resource state are reported.
type Channel interface {
	Publish(ctx context.Context, e event.Event) (string, error) // Returns record ID
	Recent(ctx context.Context, eventType string, count int64) ([]Record, error)
}

func recordFromMessage(msg redis.XMessage) Record {
	rec := Record{ID: msg.ID}
	if v, ok := msg.Values["event_type"].(string); ok {
		rec.EventType = v
	}
	if v, ok := msg.Values["event_data"].(string); ok {
		rec.Data = v
	}
	return rec
}
