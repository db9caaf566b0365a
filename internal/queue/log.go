package queue

import (
	"context"

	"wardrobe/client/internal/domain/event"

	log "github.com/sirupsen/logrus"
)

// LogChannel writes events to the log and keeps nothing.
type LogChannel struct{}

func NewLogChannel() *LogChannel {
	return &LogChannel{}
}

func (LogChannel) Publish(_ context.Context, e event.Event) (string, error) {
	data, err := e.EventValue()
	if err != nil {
		return "", err
	}

	log.WithField("event_type", e.EventType()).Warnf("⚠️ %s", data)
	return "", nil
}

func (LogChannel) Recent(context.Context, string, int64) ([]Record, error) {
	return nil, nil
}
