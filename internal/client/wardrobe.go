package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"wardrobe/client/internal/config"
	"wardrobe/client/internal/domain"
	"wardrobe/client/internal/proxy"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

// WardrobeAPI is the remote collaborator behind every screen resource.
type WardrobeAPI interface {
	GetWardrobe(ctx context.Context, category domain.Category) ([]domain.ClothingItem, error)
	GetTodaysOutfit(ctx context.Context) (*domain.Outfit, error)
	GenerateOutfit(ctx context.Context, style string) (*domain.Outfit, error)
	SubmitOutfitFeedback(ctx context.Context, outfitID int64, feedback domain.OutfitFeedback) (*domain.Outfit, error)
	GetOutfitHistory(ctx context.Context, limit int) ([]domain.Outfit, error)
}

type wardrobeClient struct {
	rl            ratelimit.Limiter
	config        config.APIConfig
	httpClient    *resty.Client
	proxySupplier proxy.ProxySupplier
	throttle      *cooldown

	// Requests hold the read lock; switching proxies takes the write lock.
	proxyMutex sync.RWMutex
}

func NewWardrobeClient(cfg config.APIConfig, proxySupplier proxy.ProxySupplier) WardrobeAPI {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.TimeoutDuration()).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(cfg.RetryWaitDuration()).
		SetRetryMaxWaitTime(4*cfg.RetryWaitDuration()).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	if cfg.Token != "" {
		client.SetAuthToken(cfg.Token)
	}

	if proxySupplier != nil {
		if proxyURL := proxySupplier.Get(); proxyURL != "" {
			client.SetProxy(proxyURL)
			log.Infof("🔗 Using proxy: %s", proxyURL)
		}
	}

	rl := ratelimit.NewUnlimited()
	if cfg.MaxRequestsPerSecond > 0 {
		rl = ratelimit.New(cfg.MaxRequestsPerSecond)
	}

	return &wardrobeClient{
		rl:            rl,
		config:        cfg,
		httpClient:    client,
		proxySupplier: proxySupplier,
		throttle:      newCooldown(cfg.CooldownDuration()),
	}
}

func (c *wardrobeClient) GetWardrobe(ctx context.Context, category domain.Category) ([]domain.ClothingItem, error) {
	var items []domain.ClothingItem

	req := c.request(ctx).SetResult(&items)
	if filter := category.Filter(); filter != "" {
		req.SetQueryParam("category", filter)
	}

	if err := c.do(ctx, "get wardrobe", req, http.MethodGet, "/wardrobe"); err != nil {
		return nil, err
	}

	log.Debugf("Fetched %d wardrobe items (category=%q)", len(items), category.Filter())
	if items == nil {
		items = []domain.ClothingItem{}
	}
	return items, nil
}

func (c *wardrobeClient) GetTodaysOutfit(ctx context.Context) (*domain.Outfit, error) {
	var outfit domain.Outfit

	req := c.request(ctx).SetResult(&outfit)
	if err := c.do(ctx, "get today's outfit", req, http.MethodGet, "/outfits/today"); err != nil {
		return nil, err
	}

	return &outfit, nil
}

func (c *wardrobeClient) GenerateOutfit(ctx context.Context, style string) (*domain.Outfit, error) {
	var outfit domain.Outfit

	body := struct {
		Style string `json:"style,omitempty"`
	}{Style: style}

	req := c.request(ctx).SetBody(body).SetResult(&outfit)
	if err := c.do(ctx, "generate outfit", req, http.MethodPost, "/outfits/generate"); err != nil {
		return nil, err
	}

	log.Debugf("Generated outfit %d (style=%q)", outfit.ID, style)
	return &outfit, nil
}

func (c *wardrobeClient) SubmitOutfitFeedback(ctx context.Context, outfitID int64, feedback domain.OutfitFeedback) (*domain.Outfit, error) {
	var outfit domain.Outfit

	req := c.request(ctx).
		SetPathParam("id", strconv.FormatInt(outfitID, 10)).
		SetBody(feedback).
		SetResult(&outfit)
	if err := c.do(ctx, "submit outfit feedback", req, http.MethodPost, "/outfits/{id}/feedback"); err != nil {
		return nil, err
	}

	return &outfit, nil
}

func (c *wardrobeClient) GetOutfitHistory(ctx context.Context, limit int) ([]domain.Outfit, error) {
	var outfits []domain.Outfit

	req := c.request(ctx).
		SetQueryParam("limit", strconv.Itoa(limit)).
		SetResult(&outfits)
	if err := c.do(ctx, "get outfit history", req, http.MethodGet, "/outfits/history"); err != nil {
		return nil, err
	}

	if outfits == nil {
		outfits = []domain.Outfit{}
	}
	return outfits, nil
}

func (c *wardrobeClient) request(ctx context.Context) *resty.Request {
	return c.httpClient.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", uuid.NewString()).
		SetError(&errorBody{})
}

func (c *wardrobeClient) do(ctx context.Context, op string, req *resty.Request, method, path string) error {
	if left := c.throttle.remaining(time.Now()); left > 0 {
		log.Debugf("🚫 %s skipped, throttled for another %v", op, left.Round(time.Second))
		return &APIError{
			Op:         op,
			StatusCode: http.StatusTooManyRequests,
			Message:    fmt.Sprintf("too many requests - try again in %v", left.Round(time.Second)),
		}
	}

	c.rl.Take()

	c.proxyMutex.RLock()
	resp, err := req.Execute(method, path)
	c.proxyMutex.RUnlock()

	if err != nil {
		if ctx.Err() != nil {
			return &APIError{Op: op, Err: fmt.Errorf("request cancelled: %w", ctx.Err())}
		}
		c.rotateProxy()
		return &APIError{Op: op, Err: err}
	}

	if resp.IsError() {
		if resp.StatusCode() == http.StatusTooManyRequests {
			c.throttle.start(time.Now(), parseRetryAfter(resp.Header().Get("Retry-After")))
		}

		apiErr := &APIError{Op: op, StatusCode: resp.StatusCode()}
		if body, ok := resp.Error().(*errorBody); ok {
			apiErr.Message = body.text()
		}
		if apiErr.Message == "" {
			apiErr.Message = fmt.Sprintf("%s failed: %s", op, resp.Status())
		}
		return apiErr
	}

	return nil
}

func (c *wardrobeClient) rotateProxy() {
	if c.proxySupplier == nil {
		return
	}
	next := c.proxySupplier.Get()
	if next == "" {
		return
	}

	c.proxyMutex.Lock()
	defer c.proxyMutex.Unlock()

	log.Infof("🔄 Switching to proxy: %s", next)
	c.httpClient.SetProxy(next)
}
