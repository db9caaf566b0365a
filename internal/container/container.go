package container

import (
	"context"
	"fmt"

	"wardrobe/client/internal/client"
	"wardrobe/client/internal/config"
	"wardrobe/client/internal/proxy"
	"wardrobe/client/internal/queue"
	"wardrobe/client/internal/service"
	"wardrobe/client/internal/state"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config      *config.Config
	Client      client.WardrobeAPI
	Preferences state.PreferenceStore
	Diagnostics queue.Channel

	Wardrobe *service.Wardrobe
	Outfit   *service.TodaysOutfit
	History  *service.OutfitHistory
	Profile  *service.Profile
	Home     *service.Home

	redis *redis.Client
}

// New creates a new container with all dependencies initialized
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	proxySupplier := proxy.NewProxySupplier(ctx, cfg.API.Proxies, cfg.API.BaseURL)
	if len(cfg.API.Proxies) > 0 && proxySupplier.Len() == 0 {
		return nil, fmt.Errorf("none of the %d configured proxies is reachable", len(cfg.API.Proxies))
	}

	c, err := NewWithClient(ctx, cfg, client.NewWardrobeClient(cfg.API, proxySupplier))
	if err != nil {
		return nil, err
	}
	return c, nil
}

// NewWithClient wires everything around an existing API client.
func NewWithClient(ctx context.Context, cfg *config.Config, api client.WardrobeAPI) (*Container, error) {
	container := &Container{
		Config: cfg,
		Client: api,
	}

	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})

		if _, err := rdb.Ping(ctx).Result(); err != nil {
			rdb.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("✅ Connected to Redis successfully")

		container.redis = rdb
		container.Preferences = state.NewRedisPreferenceStore(rdb, cfg.Redis.KeyPrefix)
		container.Diagnostics = queue.NewRedisChannel(rdb, cfg.Redis)
	} else {
		log.Debug("Redis disabled, keeping preferences in memory")
		container.Preferences = state.NewMemoryPreferenceStore()
		container.Diagnostics = queue.NewLogChannel()
	}

	container.Wardrobe = service.NewWardrobe(api)
	container.Outfit = service.NewTodaysOutfit(api, container.Diagnostics)
	container.History = service.NewOutfitHistory(api)
	container.Profile = service.NewProfile(container.Preferences)
	container.Home = service.NewHome(container.Outfit, container.Wardrobe, container.History)

	return container, nil
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			return fmt.Errorf("failed to close Redis: %w", err)
		}
	}

	log.Debug("Container shut down")
	return nil
}
