package container

import (
	"context"
	"strconv"
	"testing"

	"wardrobe/client/internal/config"
	"wardrobe/client/internal/domain"
	"wardrobe/client/internal/queue"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAPI struct{}

func (stubAPI) GetWardrobe(context.Context, domain.Category) ([]domain.ClothingItem, error) {
	return []domain.ClothingItem{}, nil
}

func (stubAPI) GetTodaysOutfit(context.Context) (*domain.Outfit, error) {
	return nil, nil
}

func (stubAPI) GenerateOutfit(context.Context, string) (*domain.Outfit, error) {
	return &domain.Outfit{ID: 1}, nil
}

func (stubAPI) SubmitOutfitFeedback(_ context.Context, id int64, _ domain.OutfitFeedback) (*domain.Outfit, error) {
	return &domain.Outfit{ID: id}, nil
}

func (stubAPI) GetOutfitHistory(context.Context, int) ([]domain.Outfit, error) {
	return []domain.Outfit{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		API:     config.APIConfig{BaseURL: "http://localhost:5001/api"},
		History: config.HistoryConfig{Limit: 20},
		Redis: config.RedisConfig{
			KeyPrefix:    "test:preferences:",
			StreamPrefix: "test:stream:",
			StreamMaxLen: 100,
		},
		Profile: config.ProfileConfig{User: "me"},
	}
}

func TestNewWithClientWithoutRedis(t *testing.T) {
	c, err := NewWithClient(context.Background(), testConfig(), stubAPI{})
	require.NoError(t, err)
	defer c.Close()

	assert.IsType(t, &queue.LogChannel{}, c.Diagnostics)
	assert.NotNil(t, c.Preferences)
	assert.NotNil(t, c.Wardrobe)
	assert.NotNil(t, c.Outfit)
	assert.NotNil(t, c.History)
	assert.NotNil(t, c.Profile)
	assert.NotNil(t, c.Home)
	assert.Nil(t, c.redis)
}

func TestNewWithClientWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	cfg := testConfig()
	cfg.Redis.Enabled = true
	cfg.Redis.Host = mr.Host()
	cfg.Redis.Port = port

	ctx := context.Background()
	c, err := NewWithClient(ctx, cfg, stubAPI{})
	require.NoError(t, err)

	assert.IsType(t, &queue.RedisChannel{}, c.Diagnostics)

	// Profile saves land in redis under the configured prefix.
	<-c.Profile.Use(ctx, "me")
	prefs := domain.Preferences{Vibe: domain.VibeSmart, DailyInspo: true}
	require.True(t, c.Profile.Save(ctx, prefs))
	assert.True(t, mr.Exists("test:preferences:me"))

	require.NoError(t, c.Close())
}

func TestNewWithClientRedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	mr.Close()

	cfg := testConfig()
	cfg.Redis.Enabled = true
	cfg.Redis.Host = "127.0.0.1"
	cfg.Redis.Port = port

	_, err = NewWithClient(context.Background(), cfg, stubAPI{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to Redis")
}
