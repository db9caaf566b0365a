package queue

import (
	"context"
	"fmt"

	"wardrobe/client/internal/config"
	"wardrobe/client/internal/domain/event"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

type RedisChannel struct {
	redisClient  *redis.Client
	streamPrefix string
	maxLen       int64
}

func NewRedisChannel(redisClient *redis.Client, cfg config.RedisConfig) *RedisChannel {
	return &RedisChannel{
		redisClient:  redisClient,
		streamPrefix: cfg.StreamPrefix,
		maxLen:       cfg.StreamMaxLen,
	}
}

func (q *RedisChannel) Publish(ctx context.Context, e event.Event) (string, error) {
	eventType := e.EventType()
	streamName := q.streamPrefix + eventType

	eventValue, err := e.EventValue()
	if err != nil {
		return "", fmt.Errorf("failed to serialize event: %w", err)
	}

	// Fields: event_type, event_data
	messageID, err := q.redisClient.XAdd(ctx, &redis.XAddArgs{
		Stream: streamName,
		MaxLen: q.maxLen,
		Approx: q.maxLen > 0,
		Values: map[string]interface{}{
			"event_type": eventType,
			"event_data": string(eventValue),
		},
	}).Result()
	if err != nil {
		return "", fmt.Errorf("failed to add event to Redis stream %s: %w", streamName, err)
	}

	log.Debugf("Added event %s to stream %s with message ID: %s", eventType, streamName, messageID)
	return messageID, nil
}

// Recent returns up to count events, newest first.
func (q *RedisChannel) Recent(ctx context.Context, eventType string, count int64) ([]Record, error) {
	streamName := q.streamPrefix + eventType

	messages, err := q.redisClient.XRevRangeN(ctx, streamName, "+", "-", count).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read from Redis stream %s: %w", streamName, err)
	}

	records := make([]Record, 0, len(messages))
	for _, msg := range messages {
		records = append(records, recordFromMessage(msg))
	}
	return records, nil
}
