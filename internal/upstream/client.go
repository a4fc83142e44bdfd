package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"

	"github.com/GriffinCanCode/teveclub/internal/infrastructure/logging"
	"github.com/GriffinCanCode/teveclub/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/teveclub/internal/scraper"
	"github.com/GriffinCanCode/teveclub/internal/types"
)

var (
	// ErrHostNotAllowed is returned for targets outside the remote site
	ErrHostNotAllowed = errors.New("target host not allowed")
	// ErrMethodNotAllowed is returned for methods other than GET and POST
	ErrMethodNotAllowed = errors.New("method not allowed")

	errServerStatus = errors.New("upstream server error")
)

// Site pages read by the status helpers
const (
	PetPath   = "/myteve.pet"
	TeachPath = "/tanit.pet"
)

// Recorder receives upstream call metrics
type Recorder interface {
	RecordUpstreamCall(method, status string, duration time.Duration)
}

// Config configures a Client
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	Retries   int
	RetryWait time.Duration
	RPS       float64
	Burst     int
	UserAgent string
	// Breaker is shared by all clients talking to the same site
	Breaker  *resilience.Breaker
	Logger   *logging.Logger
	Recorder Recorder
}

func (c *Config) defaults() error {
	if c.BaseURL == "" {
		c.BaseURL = "https://teveclub.hu"
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.Retries < 0 {
		c.Retries = 0
	}
	if c.RetryWait <= 0 {
		c.RetryWait = 250 * time.Millisecond
	}
	if c.UserAgent == "" {
		c.UserAgent = "Mozilla/5.0"
	}
	if c.Breaker == nil {
		c.Breaker = resilience.New("upstream", resilience.Settings{})
	}
	if c.Logger == nil {
		c.Logger = logging.NewNop()
	}
	if c.Recorder == nil {
		c.Recorder = nopRecorder{}
	}
	return nil
}

// Page is one fetched remote page, decoded to UTF-8
type Page struct {
	URL         string
	Status      int
	ContentType string
	Body        string
}

// Client forwards requests to the remote site for one browser session.
// Its cookie jar carries the remote login between calls.
type Client struct {
	resty    *resty.Client
	base     *url.URL
	allowed  map[string]struct{}
	limiter  *rate.Limiter
	breaker  *resilience.Breaker
	logger   *logging.Logger
	recorder Recorder
}

// New creates a Client with its own cookie jar
func New(cfg Config) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, err
	}

	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", cfg.BaseURL)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.Retries
	retryClient.RetryWaitMin = cfg.RetryWait
	retryClient.RetryWaitMax = 8 * cfg.RetryWait
	retryClient.Logger = nil
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	// redirects are followed by the outer client so the jar sees every hop
	retryClient.HTTPClient.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	restyClient := resty.New().
		SetTransport(idempotentRetry{
			retry:  &retryablehttp.RoundTripper{Client: retryClient},
			direct: retryClient.HTTPClient.Transport,
		}).
		SetCookieJar(jar).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(10)).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8").
		SetHeader("Accept-Language", "hu-HU,hu;q=0.9,en;q=0.5")

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RPS > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = int(cfg.RPS) + 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RPS), burst)
	}

	return &Client{
		resty:    restyClient,
		base:     base,
		allowed:  allowedHosts(base.Hostname()),
		limiter:  limiter,
		breaker:  cfg.Breaker,
		logger:   cfg.Logger.Named("upstream"),
		recorder: cfg.Recorder,
	}, nil
}

// Forward performs req against the remote site. Any HTTP status yields a
// Page; errors mean the site could not be reached or the request was refused.
func (c *Client) Forward(ctx context.Context, req types.ProxyRequest) (*Page, error) {
	target, err := c.resolve(req.TargetURL)
	if err != nil {
		return nil, err
	}

	method := req.NormalizedMethod()
	if method != http.MethodGet && method != http.MethodPost {
		return nil, fmt.Errorf("%w: %s", ErrMethodNotAllowed, method)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	r := c.resty.R().SetContext(ctx)
	if method == http.MethodPost && len(req.Form) > 0 {
		r.SetFormData(req.Form)
	}

	start := time.Now()
	var resp *resty.Response
	err = c.breaker.Do(func() error {
		var execErr error
		resp, execErr = r.Execute(method, target)
		if execErr != nil {
			return execErr
		}
		if resp.StatusCode() >= http.StatusInternalServerError {
			return errServerStatus
		}
		return nil
	})
	if err != nil && !errors.Is(err, errServerStatus) {
		c.recorder.RecordUpstreamCall(method, "error", time.Since(start))
		c.logger.Warn("upstream call failed",
			zap.String("method", method),
			zap.String("url", target),
			zap.Error(err))
		return nil, fmt.Errorf("%s %s: %w", method, target, err)
	}

	status := resp.StatusCode()
	c.recorder.RecordUpstreamCall(method, strconv.Itoa(status), time.Since(start))

	contentType := resp.Header().Get("Content-Type")
	body, err := scraper.DecodeBody(resp.Body(), contentType)
	if err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	c.logger.Debug("upstream call",
		zap.String("method", method),
		zap.String("url", target),
		zap.Int("status", status),
		zap.Int("bytes", len(body)),
		zap.Duration("duration", time.Since(start)))

	return &Page{
		URL:         resp.Request.URL,
		Status:      status,
		ContentType: contentType,
		Body:        body,
	}, nil
}

// FoodDrink reads the current food and drink icons from the pet page
func (c *Client) FoodDrink(ctx context.Context) (types.FoodDrink, error) {
	page, err := c.Forward(ctx, types.ProxyRequest{TargetURL: c.URL(PetPath)})
	if err != nil {
		return types.FoodDrink{FoodIcon: types.DefaultIcon, DrinkIcon: types.DefaultIcon}, err
	}
	return scraper.ExtractFoodDrink(page.Body), nil
}

// CurrentTrick reads the trick being taught from the teaching page.
// An empty string means none.
func (c *Client) CurrentTrick(ctx context.Context) (string, error) {
	page, err := c.Forward(ctx, types.ProxyRequest{TargetURL: c.URL(TeachPath)})
	if err != nil {
		return "", err
	}
	return scraper.ExtractTrick(page.Body), nil
}

// URL joins path onto the base URL
func (c *Client) URL(path string) string {
	return c.base.String() + path
}

// BaseURL returns the remote site root
func (c *Client) BaseURL() string {
	return c.base.String()
}

func (c *Client) resolve(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("target url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid target url: %w", err)
	}
	if !u.IsAbs() {
		u = c.base.ResolveReference(u)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: scheme %q", ErrHostNotAllowed, u.Scheme)
	}
	if _, ok := c.allowed[strings.ToLower(u.Hostname())]; !ok {
		return "", fmt.Errorf("%w: %s", ErrHostNotAllowed, u.Hostname())
	}
	return u.String(), nil
}

func allowedHosts(host string) map[string]struct{} {
	host = strings.ToLower(host)
	bare := strings.TrimPrefix(host, "www.")
	return map[string]struct{}{
		bare:          {},
		"www." + bare: {},
	}
}

// idempotentRetry retries GETs only; a repeated POST could feed twice
type idempotentRetry struct {
	retry  http.RoundTripper
	direct http.RoundTripper
}

func (t idempotentRetry) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method == http.MethodGet || req.Method == http.MethodHead {
		return t.retry.RoundTrip(req)
	}
	return t.direct.RoundTrip(req)
}

type nopRecorder struct{}

func (nopRecorder) RecordUpstreamCall(string, string, time.Duration) {}
