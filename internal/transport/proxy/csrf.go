package proxy

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/GriffinCanCode/teveclub/internal/scraper"
)

// Default anti-forgery names shared with the server
const (
	DefaultCookieName = "csrftoken"
	DefaultHeaderName = "X-CSRFToken"
	tokenInputName    = "csrfmiddlewaretoken"
)

// ErrNoToken is returned when the server page carries no token
var ErrNoToken = errors.New("no csrf token found")

// FetchToken loads the server root page and returns its anti-forgery token:
// the cookie first, then the hidden form input.
func FetchToken(ctx context.Context, client *resty.Client, serverURL, cookieName string) (string, error) {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}

	resp, err := client.R().SetContext(ctx).Get(strings.TrimRight(serverURL, "/") + "/")
	if err != nil {
		return "", fmt.Errorf("fetch csrf token: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return "", fmt.Errorf("fetch csrf token: status %d", resp.StatusCode())
	}

	for _, c := range resp.Cookies() {
		if c.Name == cookieName && c.Value != "" {
			return c.Value, nil
		}
	}

	if v, ok := scraper.ExtractInputValue(resp.String(), tokenInputName); ok && v != "" {
		return v, nil
	}
	return "", ErrNoToken
}
