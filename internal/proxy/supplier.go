package proxy

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"resty.dev/v3"
)

const maxParallelChecks = 8

// ProxySupplier hands out proxy URLs in round-robin order. An empty string means
// connect directly.
type ProxySupplier interface {
	Get() string
	Len() int
}

type proxySupplier struct {
	proxies []string
	current int
	mutex   sync.Mutex
}

// NewProxySupplier keeps only the proxies through which healthURL answers without
// a transport error. Any HTTP status counts as reachable.
func NewProxySupplier(ctx context.Context, proxies []string, healthURL string) ProxySupplier {
	if len(proxies) == 0 {
		return &proxySupplier{}
	}

	log.Infof("🔄 Checking %d proxies...", len(proxies))

	valid := make([]bool, len(proxies))
	semaphore := make(chan struct{}, maxParallelChecks)

	var wg sync.WaitGroup
	for i, proxyURL := range proxies {
		wg.Add(1)

		go func(index int, proxyURL string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			valid[index] = isProxyReachable(ctx, proxyURL, healthURL)
		}(i, proxyURL)
	}
	wg.Wait()

	// Keep configured order so rotation is predictable.
	working := make([]string, 0, len(proxies))
	for i, proxyURL := range proxies {
		if valid[i] {
			working = append(working, proxyURL)
		} else {
			log.Warnf("❌ Proxy %s is not reachable, skipping", proxyURL)
		}
	}

	log.Infof("✅ %d of %d proxies usable", len(working), len(proxies))

	return newStaticSupplier(working)
}

func newStaticSupplier(proxies []string) *proxySupplier {
	return &proxySupplier{proxies: proxies}
}

func (p *proxySupplier) Get() string {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if len(p.proxies) == 0 {
		return ""
	}

	proxy := p.proxies[p.current]
	p.current = (p.current + 1) % len(p.proxies)

	return proxy
}

func (p *proxySupplier) Len() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return len(p.proxies)
}

func isProxyReachable(ctx context.Context, proxyURL, healthURL string) bool {
	client := resty.New().
		SetTimeout(5 * time.Second).
		SetRetryCount(0).
		SetProxy(proxyURL)
	defer client.Close()

	_, err := client.R().
		SetContext(ctx).
		Get(healthURL)
	if err != nil {
		log.Debugf("Proxy check failed for %s: %v", proxyURL, err)
		return false
	}

	return true
}
