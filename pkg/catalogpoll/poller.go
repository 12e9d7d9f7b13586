// Package catalogpoll keeps a displayed inventory view reasonably current
// without server push. The query API refuses to be cached, so each view
// polls it on a fixed interval, revalidates on focus or reconnect through
// Refresh, and issues one extra cache-busting fetch after a mutation
// through Invalidate. Convergence is best-effort: two viewers agree within
// the larger of the poll interval and the dedup window.
package catalogpoll

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// Poll intervals matching the site's views.
const (
	CatalogInterval = 15 * time.Second // full public catalog
	NewestInterval  = 10 * time.Second // home page newest vehicles
	DetailInterval  = 30 * time.Second // single vehicle detail

	// DefaultDedupWindow collapses overlapping triggers, e.g. a focus
	// revalidation landing together with an interval tick.
	DefaultDedupWindow = 5 * time.Second
)

// Config configures a Poller.
type Config struct {
	// URL is the inventory endpoint to poll.
	URL string
	// Interval between automatic fetches. Defaults to CatalogInterval.
	Interval time.Duration
	// DedupWindow suppresses fetches arriving too soon after the previous
	// one. Defaults to DefaultDedupWindow.
	DedupWindow time.Duration
	// Client is the HTTP client to use. Defaults to http.DefaultClient.
	Client *http.Client
	// OnUpdate is called with the response body whenever it changes.
	OnUpdate func(body []byte)
	// OnError is called on fetch failures. Optional; errors are otherwise
	// dropped and the next tick retries.
	OnError func(err error)
}

// Poller periodically refetches one inventory endpoint.
type Poller struct {
	cfg Config

	mu        sync.Mutex
	lastFetch time.Time
	lastSum   [sha256.Size]byte
	haveSum   bool
}

// New creates a Poller, filling config defaults.
func New(cfg Config) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = CatalogInterval
	}
	if cfg.DedupWindow <= 0 {
		cfg.DedupWindow = DefaultDedupWindow
	}
	if cfg.Client == nil {
		cfg.Client = http.DefaultClient
	}
	return &Poller{cfg: cfg}
}

// Run fetches once immediately, then on every interval tick until ctx is
// cancelled.
func (p *Poller) Run(ctx context.Context) {
	p.fetchIfDue(ctx, true)

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchIfDue(ctx, false)
		}
	}
}

// Refresh revalidates now unless a fetch already happened inside the dedup
// window. Use for manual refresh affordances and focus or reconnect events.
func (p *Poller) Refresh(ctx context.Context) {
	p.fetchIfDue(ctx, false)
}

// Invalidate forces a cache-busting fetch regardless of the dedup window.
// Call after a mutation so shared intermediaries see fresh data ahead of
// the next natural poll.
func (p *Poller) Invalidate(ctx context.Context) {
	p.fetchIfDue(ctx, true)
}

func (p *Poller) fetchIfDue(ctx context.Context, force bool) {
	p.mu.Lock()
	if !force && time.Since(p.lastFetch) < p.cfg.DedupWindow {
		p.mu.Unlock()
		return
	}
	p.lastFetch = time.Now()
	p.mu.Unlock()

	body, err := p.fetch(ctx)
	if err != nil {
		if p.cfg.OnError != nil {
			p.cfg.OnError(err)
		}
		return
	}

	sum := sha256.Sum256(body)
	p.mu.Lock()
	changed := !p.haveSum || sum != p.lastSum
	p.lastSum = sum
	p.haveSum = true
	p.mu.Unlock()

	if changed && p.cfg.OnUpdate != nil {
		p.cfg.OnUpdate(body)
	}
}

// fetch issues one cache-busting request.
func (p *Poller) fetch(ctx context.Context) ([]byte, error) {
	u, err := url.Parse(p.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid poll URL %s: %w", p.cfg.URL, err)
	}
	// Timestamp query parameter defeats caches that ignore headers.
	q := u.Query()
	q.Set("t", strconv.FormatInt(time.Now().UnixNano(), 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	req.Header.Set("Pragma", "no-cache")

	resp, err := p.cfg.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("poll request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("poll request returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
