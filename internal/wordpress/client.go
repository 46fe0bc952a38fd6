// Package wordpress fetches published posts from a WordPress content API.
// It is the only I/O-bound collaborator in the audit pipeline; the audit
// core never performs network calls itself.
package wordpress

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/gymbeam/geoaudit/internal/logging"
	"github.com/gymbeam/geoaudit/internal/telemetry"
)

// Default client settings.
const (
	defaultTimeout        = 30 * time.Second
	defaultRequestsPerSec = 2
	defaultBurst          = 2
	maxResponseBytes      = 32 << 20 // 32 MiB
)

// RenderedField is WordPress's {"rendered": "..."} wrapper.
type RenderedField struct {
	Rendered string `json:"rendered"`
}

// YoastHead carries the SEO plugin metadata the audit needs.
type YoastHead struct {
	Description string `json:"description"`
}

// Post is one post as returned by /wp-json/wp/v2/posts.
type Post struct {
	ID      int           `json:"id"`
	Link    string        `json:"link"`
	Title   RenderedField `json:"title"`
	Content RenderedField `json:"content"`
	Yoast   YoastHead     `json:"yoast_head_json"`
}

// Client talks to one WordPress site's REST content API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	telemetry  *telemetry.Provider
	logger     logging.Logger
}

// Config holds client settings.
type Config struct {
	BaseURL        string        `env:"WP_BASE_URL"  yaml:"base_url"`
	Timeout        time.Duration `yaml:"timeout"`
	RequestsPerSec int           `yaml:"requests_per_sec"`
	Burst          int           `yaml:"burst"`
}

// NewClient creates a rate-limited WordPress API client. The telemetry
// provider is optional; without one no fetch metrics are recorded.
func NewClient(cfg Config, provider *telemetry.Provider, logger logging.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RequestsPerSec <= 0 {
		cfg.RequestsPerSec = defaultRequestsPerSec
	}
	if cfg.Burst <= 0 {
		cfg.Burst = defaultBurst
	}
	if logger == nil {
		logger = logging.Nop()
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), cfg.Burst),
		telemetry:  provider,
		logger:     logger,
	}
}

// FetchPosts retrieves up to perPage published posts.
func (c *Client) FetchPosts(ctx context.Context, perPage int) ([]Post, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		c.recordFailure(ctx, "cancelled")
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	url := fmt.Sprintf("%s/wp-json/wp/v2/posts?per_page=%d", c.baseURL, perPage)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordFailure(ctx, "transport")
		return nil, fmt.Errorf("fetch posts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.recordFailure(ctx, fmt.Sprintf("status_%d", resp.StatusCode))
		return nil, fmt.Errorf("fetch posts: unexpected status %d", resp.StatusCode)
	}

	var posts []Post
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&posts); err != nil {
		c.recordFailure(ctx, "decode")
		return nil, fmt.Errorf("decode posts: %w", err)
	}

	if c.telemetry != nil {
		c.telemetry.RecordFetch(ctx, len(posts), time.Since(start))
	}
	c.logger.Info("posts fetched",
		logging.String("base_url", c.baseURL),
		logging.Int("count", len(posts)),
		logging.Duration("duration", time.Since(start)),
	)

	return posts, nil
}

func (c *Client) recordFailure(ctx context.Context, reason string) {
	if c.telemetry != nil {
		c.telemetry.RecordFetchFailure(ctx, reason)
	}
}

// SavePosts writes posts to a local JSON cache file.
func SavePosts(posts []Post, path string) error {
	data, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		return fmt.Errorf("encode posts: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write posts file: %w", err)
	}
	return nil
}

// LoadPosts reads posts from a local JSON cache file.
func LoadPosts(path string) ([]Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read posts file: %w", err)
	}
	var posts []Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("decode posts file: %w", err)
	}
	return posts, nil
}
