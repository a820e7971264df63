package goalserve

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/goalserve-heatmap/internal/platform/logging"
	"github.com/riskibarqy/goalserve-heatmap/internal/platform/resilience"
	"github.com/riskibarqy/goalserve-heatmap/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultBaseURL     = "https://www.goalserve.com/getfeed"
	defaultTimeout     = 30 * time.Second
	defaultLiveTimeout = 15 * time.Second
	maxBodyBytes       = 32 << 20
)

var errGoalserveTransient = crerr.New("goalserve transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	LiveTimeout    time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads goalserve JSON feeds. It does not retry; a breaker fails fast
// while the upstream keeps failing and concurrent reads of the same feed share
// one request.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	timeout     time.Duration
	liveTimeout time.Duration
	logger      *logging.Logger
	breaker     *resilience.CircuitBreaker
	flight      resilience.SingleFlight[[]byte]
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	liveTimeout := cfg.LiveTimeout
	if liveTimeout <= 0 {
		liveTimeout = defaultLiveTimeout
	}

	return &Client{
		httpClient:  httpClient,
		baseURL:     baseURL,
		apiKey:      strings.TrimSpace(cfg.APIKey),
		timeout:     timeout,
		liveTimeout: liveTimeout,
		logger:      logger.Named("goalserve"),
		breaker:     resilience.BreakerFromConfig(cfg.CircuitBreaker),
	}
}

// Breaker exposes the breaker state for health reporting.
func (c *Client) Breaker() resilience.Snapshot {
	return c.breaker.Snapshot()
}

// fetchJSON reads feedPath and decodes the body into a generic tree. The
// top level value must be an object.
func (c *Client) fetchJSON(ctx context.Context, feedPath string, timeout time.Duration) (map[string]any, error) {
	raw, err := c.fetch(ctx, feedPath, timeout)
	if err != nil {
		return nil, err
	}

	var payload map[string]any
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return nil, crerr.Mark(
			fmt.Errorf("decode %s payload: %w body=%s", feedPath, err, abbreviateBody(raw)),
			usecase.ErrDecodeFailure,
		)
	}
	if payload == nil {
		return nil, crerr.Mark(fmt.Errorf("decode %s payload: empty document", feedPath), usecase.ErrDecodeFailure)
	}

	return payload, nil
}

func (c *Client) fetch(ctx context.Context, feedPath string, timeout time.Duration) ([]byte, error) {
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "goalserve circuit breaker rejected request", "feed", feedPath, "state", c.breaker.State())
		return nil, crerr.Mark(fmt.Errorf("feed %s: %w", feedPath, err), usecase.ErrUpstreamUnavailable)
	}

	raw, err, _ := c.flight.Do(feedPath, func() ([]byte, error) {
		body, reqErr := c.executeRequest(ctx, c.feedURL(feedPath), timeout)
		switch {
		case reqErr == nil:
			c.breaker.RecordSuccess()
		case ctx.Err() != nil:
			c.breaker.Release()
		case crerr.Is(reqErr, errGoalserveTransient):
			c.breaker.RecordFailure()
		default:
			c.breaker.RecordSuccess()
		}
		return body, reqErr
	})
	if err != nil {
		return nil, err
	}

	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %s", sanitizeSensitiveText(err.Error(), c.apiKey))
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		reqErr := crerr.Mark(
			fmt.Errorf("%w: send request: %s", errGoalserveTransient, sanitizeSensitiveText(err.Error(), c.apiKey)),
			usecase.ErrUpstreamUnavailable,
		)
		c.logger.WarnContext(ctx, "goalserve request failed", "url", redactFeedURL(fullURL, c.apiKey), "error", reqErr)
		return nil, reqErr
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if readErr != nil {
		reqErr := crerr.Mark(
			fmt.Errorf("%w: read response body: %s", errGoalserveTransient, sanitizeSensitiveText(readErr.Error(), c.apiKey)),
			usecase.ErrUpstreamUnavailable,
		)
		c.logger.WarnContext(ctx, "goalserve request failed", "url", redactFeedURL(fullURL, c.apiKey), "error", reqErr)
		return nil, reqErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var reqErr error
		if isRetryableStatus(resp.StatusCode) {
			reqErr = fmt.Errorf("%w: provider status=%d body=%s", errGoalserveTransient, resp.StatusCode, abbreviateBody(raw))
		} else {
			reqErr = fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
		}
		reqErr = crerr.Mark(reqErr, usecase.ErrUpstreamUnavailable)
		c.logger.WarnContext(ctx, "goalserve request failed",
			"url", redactFeedURL(fullURL, c.apiKey),
			"status", resp.StatusCode,
			"error", reqErr,
		)
		return nil, reqErr
	}

	c.logger.DebugContext(ctx, "goalserve request completed",
		"url", redactFeedURL(fullURL, c.apiKey),
		"bytes", len(raw),
		"duration", time.Since(start),
	)
	return raw, nil
}

// feedURL renders {base}/{api_key}/{path}?json=1.
func (c *Client) feedURL(feedPath string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(c.baseURL)
	_ = buf.WriteByte('/')
	_, _ = buf.WriteString(url.PathEscape(c.apiKey))
	_ = buf.WriteByte('/')
	_, _ = buf.WriteString(feedPath)
	_, _ = buf.WriteString("?json=1")

	return buf.String()
}

// feedPath joins escaped path segments, for example ("soccerleague", "1204").
func feedPath(segments ...string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for i, segment := range segments {
		if i > 0 {
			_ = buf.WriteByte('/')
		}
		_, _ = buf.WriteString(url.PathEscape(segment))
	}
	return buf.String()
}

func sanitizeSensitiveText(value, apiKey string) string {
	value = strings.TrimSpace(value)
	if value == "" || apiKey == "" {
		return value
	}
	value = strings.ReplaceAll(value, url.PathEscape(apiKey), "REDACTED")
	return strings.ReplaceAll(value, apiKey, "REDACTED")
}

func redactFeedURL(rawURL, apiKey string) string {
	return sanitizeSensitiveText(rawURL, apiKey)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
