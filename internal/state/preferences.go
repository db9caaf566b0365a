package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"wardrobe/client/internal/domain"

	"github.com/redis/go-redis/v9"
)

// PreferenceStore persists profile preferences per user. Users without saved
// preferences get domain.DefaultPreferences.
type PreferenceStore interface {
	Get(ctx context.Context, user string) (domain.Preferences, error)
	Save(ctx context.Context, user string, prefs domain.Preferences) error
}

type redisPreferenceStore struct {
	redisClient *redis.Client
	keyPrefix   string
}

func NewRedisPreferenceStore(redisClient *redis.Client, keyPrefix string) PreferenceStore {
	return &redisPreferenceStore{
		redisClient: redisClient,
		keyPrefix:   keyPrefix,
	}
}

func (s *redisPreferenceStore) Get(ctx context.Context, user string) (domain.Preferences, error) {
	key := s.keyPrefix + user
	val, err := s.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.DefaultPreferences(), nil
		}
		return domain.Preferences{}, fmt.Errorf("failed to get preferences for %s: %w", user, err)
	}

	prefs := domain.DefaultPreferences()
	if err := json.Unmarshal(val, &prefs); err != nil {
		return domain.Preferences{}, fmt.Errorf("failed to decode preferences for %s: %w", user, err)
	}

	return prefs, nil
}

func (s *redisPreferenceStore) Save(ctx context.Context, user string, prefs domain.Preferences) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to encode preferences for %s: %w", user, err)
	}

	key := s.keyPrefix + user
	if err := s.redisClient.Set(ctx, key, data, 0).Err(); err != nil { // No expiration
		return fmt.Errorf("failed to save preferences for %s: %w", user, err)
	}
	return nil
}

type memoryPreferenceStore struct {
	mu    sync.RWMutex
	prefs map[string]domain.Preferences
}

// NewMemoryPreferenceStore keeps preferences for the lifetime of the process.
func NewMemoryPreferenceStore() PreferenceStore {
	return &memoryPreferenceStore{prefs: make(map[string]domain.Preferences)}
}

func (s *memoryPreferenceStore) Get(_ context.Context, user string) (domain.Preferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if prefs, ok := s.prefs[user]; ok {
		return prefs, nil
	}
	return domain.DefaultPreferences(), nil
}

func (s *memoryPreferenceStore) Save(_ context.Context, user string, prefs domain.Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prefs[user] = prefs
	return nil
}
