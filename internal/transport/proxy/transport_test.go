package proxy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/teveclub/internal/types"
)

// fakeServer mimics the proxy server's API surface
func fakeServer(t *testing.T, root http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", root)
	mux.HandleFunc("/api/proxy/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(DefaultHeaderName) != "tok" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`<h1>403 Forbidden</h1>`))
			return
		}
		var req types.ProxyRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(req.TargetURL, "/down"):
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"success":false,"message":"upstream unreachable"}`))
		default:
			_, _ = w.Write([]byte(`{"success":true,"html":"` + req.Method + ` ` + req.Form["kaja"] + `"}`))
		}
	})
	mux.HandleFunc("/api/current-food-drink/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{"foodIcon":"k1.gif","drinkIcon":"p2.gif"}}`))
	})
	mux.HandleFunc("/api/current-trick/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"trick":"Pacsi"}`))
	})
	return httptest.NewServer(mux)
}

func cookieRoot(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: DefaultCookieName, Value: "tok", Path: "/"})
	_, _ = w.Write([]byte("<html></html>"))
}

func TestFetchToken(t *testing.T) {
	tests := []struct {
		name    string
		root    http.HandlerFunc
		want    string
		wantErr error
	}{
		{
			name: "cookie",
			root: cookieRoot,
			want: "tok",
		},
		{
			name: "hidden input",
			root: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`<form><input type="hidden" name="csrfmiddlewaretoken" value="from-form"></form>`))
			},
			want: "from-form",
		},
		{
			name: "none",
			root: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`<p>plain</p>`))
			},
			wantErr: ErrNoToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := fakeServer(t, tt.root)
			defer srv.Close()

			token, err := FetchToken(context.Background(), resty.New(), srv.URL, "")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, token)
		})
	}
}

func TestProxy(t *testing.T) {
	srv := fakeServer(t, cookieRoot)
	defer srv.Close()

	tr, err := New(context.Background(), Options{ServerURL: srv.URL + "/"})
	require.NoError(t, err)
	assert.Equal(t, "tok", tr.Token())

	resp := tr.Proxy(context.Background(), types.ProxyRequest{
		TargetURL: "https://teveclub.hu/myteve.pet",
		Method:    http.MethodPost,
		Form:      map[string]string{"kaja": "1"},
	})
	assert.True(t, resp.TransportOK)
	assert.Equal(t, "POST 1", resp.Body)

	resp = tr.Proxy(context.Background(), types.ProxyRequest{TargetURL: "https://teveclub.hu/down"})
	assert.False(t, resp.TransportOK)
	assert.Equal(t, "upstream unreachable", resp.Message)
}

func TestProxyNonJSON(t *testing.T) {
	srv := fakeServer(t, func(w http.ResponseWriter, _ *http.Request) {})
	defer srv.Close()

	// no token: the server answers with an HTML error page
	tr, err := New(context.Background(), Options{ServerURL: srv.URL})
	require.NoError(t, err)
	assert.Empty(t, tr.Token())

	resp := tr.Proxy(context.Background(), types.ProxyRequest{TargetURL: "https://teveclub.hu/"})
	assert.False(t, resp.TransportOK)
	assert.True(t, strings.HasPrefix(resp.Message, "Server error: Response is not JSON"))
}

func TestProxyNetworkError(t *testing.T) {
	srv := fakeServer(t, cookieRoot)
	tr, err := New(context.Background(), Options{ServerURL: srv.URL, Token: "tok"})
	require.NoError(t, err)
	srv.Close()

	resp := tr.Proxy(context.Background(), types.ProxyRequest{TargetURL: "https://teveclub.hu/"})
	assert.False(t, resp.TransportOK)
	assert.True(t, strings.HasPrefix(resp.Message, "Network error: "))

	status := tr.Status(context.Background(), types.EndpointCurrentTrick)
	assert.False(t, status.TransportOK)
}

func TestStatus(t *testing.T) {
	srv := fakeServer(t, cookieRoot)
	defer srv.Close()

	tr, err := New(context.Background(), Options{ServerURL: srv.URL})
	require.NoError(t, err)

	fd := tr.Status(context.Background(), types.EndpointCurrentFoodDrink)
	assert.True(t, fd.TransportOK)
	assert.Equal(t, "k1.gif", fd.FoodIcon)
	assert.Equal(t, "p2.gif", fd.DrinkIcon)

	trick := tr.Status(context.Background(), types.EndpointCurrentTrick)
	assert.True(t, trick.TransportOK)
	assert.Equal(t, "Pacsi", trick.Trick)
}

func TestNewRequiresServerURL(t *testing.T) {
	_, err := New(context.Background(), Options{})
	assert.Error(t, err)
}
