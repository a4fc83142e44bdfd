package proxy

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"

	"github.com/GriffinCanCode/teveclub/internal/infrastructure/logging"
	"github.com/GriffinCanCode/teveclub/internal/types"
)

const proxyPath = "/api/proxy/"

// Options configures a Transport
type Options struct {
	ServerURL  string
	Timeout    time.Duration
	CookieName string
	HeaderName string
	// Token skips the token fetch when set
	Token  string
	Logger *logging.Logger
}

// Transport carries remote actions through a running proxy server.
// It keeps the server's session cookie, so the upstream login persists
// across calls.
type Transport struct {
	client     *resty.Client
	serverURL  string
	headerName string
	token      string
	logger     *logging.Logger
}

type proxyEnvelope struct {
	Success bool   `json:"success"`
	HTML    string `json:"html"`
	Message string `json:"message"`
}

type statusEnvelope struct {
	Success bool             `json:"success"`
	Data    *types.FoodDrink `json:"data"`
	Trick   string           `json:"trick"`
	Message string           `json:"message"`
}

// New creates a Transport and acquires the anti-forgery token once.
// A missing token is logged, not fatal; the server will refuse unsafe calls.
func New(ctx context.Context, opts Options) (*Transport, error) {
	if opts.ServerURL == "" {
		return nil, fmt.Errorf("server url is required")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.HeaderName == "" {
		opts.HeaderName = DefaultHeaderName
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	client := resty.New().
		SetCookieJar(jar).
		SetTimeout(opts.Timeout).
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal)

	t := &Transport{
		client:     client,
		serverURL:  strings.TrimRight(opts.ServerURL, "/"),
		headerName: opts.HeaderName,
		token:      opts.Token,
		logger:     opts.Logger.Named("proxy"),
	}

	if t.token == "" {
		token, err := FetchToken(ctx, client, t.serverURL, opts.CookieName)
		if err != nil {
			t.logger.Warn("continuing without csrf token", zap.Error(err))
		}
		t.token = token
	}

	return t, nil
}

// Proxy forwards one remote request through the server
func (t *Transport) Proxy(ctx context.Context, req types.ProxyRequest) types.ProxyResponse {
	var env proxyEnvelope
	if msg, ok := t.call(ctx, http.MethodPost, proxyPath, req, &env); !ok {
		return types.ProxyResponse{TransportOK: false, Message: msg}
	}
	if !env.Success {
		return types.ProxyResponse{TransportOK: false, Body: env.HTML, Message: nonEmpty(env.Message, "proxy request failed")}
	}
	return types.ProxyResponse{TransportOK: true, Body: env.HTML, Message: env.Message}
}

// Status queries one of the server's status endpoints
func (t *Transport) Status(ctx context.Context, endpoint string) types.StatusResponse {
	var env statusEnvelope
	path := "/api/" + strings.Trim(endpoint, "/") + "/"
	if msg, ok := t.call(ctx, http.MethodGet, path, nil, &env); !ok {
		return types.StatusResponse{TransportOK: false, Message: msg}
	}
	if !env.Success {
		return types.StatusResponse{TransportOK: false, Message: nonEmpty(env.Message, "status request failed")}
	}

	out := types.StatusResponse{TransportOK: true, Trick: env.Trick, Message: env.Message}
	if env.Data != nil {
		out.FoodIcon = env.Data.FoodIcon
		out.DrinkIcon = env.Data.DrinkIcon
	}
	return out
}

// call sends one request and decodes the JSON envelope whatever the status.
// On failure it returns a user-facing message.
func (t *Transport) call(ctx context.Context, method, path string, body any, out any) (string, bool) {
	r := t.client.R().SetContext(ctx).SetHeader("Content-Type", "application/json")
	if t.token != "" {
		r.SetHeader(t.headerName, t.token)
	}
	if body != nil {
		r.SetBody(body)
	}

	resp, err := r.Execute(method, t.serverURL+path)
	if err != nil {
		t.logger.Warn("server unreachable", zap.String("path", path), zap.Error(err))
		return "Network error: " + err.Error(), false
	}

	if err := sonic.Unmarshal(resp.Body(), out); err != nil {
		t.logger.Warn("server answered with non-JSON body",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode()),
			zap.Int("bytes", len(resp.Body())))
		return "Server error: Response is not JSON. Check the server log for errors.", false
	}
	return "", true
}

// Token returns the anti-forgery token in use
func (t *Transport) Token() string {
	return t.token
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
