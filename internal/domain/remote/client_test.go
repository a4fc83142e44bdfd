package remote

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/teveclub/internal/types"
)

const (
	pageCanFeed = `<form><input type="submit" name="etet" value="Mehet!"></form>`
	pageFull    = `<p>A teve most nem éhes.</p>`
	pageHungry  = `<p>Nyammm.</p>`
	pageSated   = `<p>A tevéd elég jóllakott.</p>`
)

// fakeTransport answers proxy calls through a handler and records them
type fakeTransport struct {
	mu      sync.Mutex
	calls   []types.ProxyRequest
	handle  func(req types.ProxyRequest, n int) types.ProxyResponse
	status  map[string]types.StatusResponse
	queried []string
}

func (f *fakeTransport) Proxy(_ context.Context, req types.ProxyRequest) types.ProxyResponse {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	n := len(f.calls)
	f.mu.Unlock()
	return f.handle(req, n)
}

func (f *fakeTransport) Status(_ context.Context, endpoint string) types.StatusResponse {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queried = append(f.queried, endpoint)
	return f.status[endpoint]
}

func (f *fakeTransport) submissions() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Method == http.MethodPost && c.Form["etet"] == "Mehet!" {
			n++
		}
	}
	return n
}

func ok(body string) types.ProxyResponse {
	return types.ProxyResponse{TransportOK: true, Body: body}
}

func broken(msg string) types.ProxyResponse {
	return types.ProxyResponse{TransportOK: false, Message: msg}
}

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) RecordAction(action string, result types.ActionResult) {
	m.Called(action, result)
}

func (m *mockRecorder) RecordFeedSubmissions(n int) {
	m.Called(n)
}

func newTestClient(t *testing.T, ft *fakeTransport, mutate ...func(*Config)) (*Client, *int) {
	t.Helper()
	waits := 0
	cfg := Config{
		Transport: ft,
		BaseURL:   "https://teveclub.hu/",
		FeedDelay: time.Millisecond,
		Wait: func(ctx context.Context, _ time.Duration) error {
			waits++
			return ctx.Err()
		},
	}
	for _, fn := range mutate {
		fn(&cfg)
	}
	c, err := New(cfg)
	require.NoError(t, err)
	return c, &waits
}

func TestNewRequiresTransport(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name     string
		resp     types.ProxyResponse
		wantOK   bool
		wantKind types.FailureKind
		wantMsg  string
	}{
		{"accepted", ok("Teve Legyen Veled!"), true, types.KindNone, "logged in as bob"},
		{"rejected", ok("Hibás név vagy jelszó"), false, types.KindDomain, "invalid credentials"},
		{"unrecognized", ok("<html></html>"), false, types.KindDomain, "unexpected response"},
		{"transport", broken("Network error: refused"), false, types.KindTransport, "login failed: Network error: refused"},
		{"transport with marker body", types.ProxyResponse{TransportOK: false, Body: "Teve Legyen Veled!", Message: "boom"}, false, types.KindTransport, "login failed: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ft := &fakeTransport{handle: func(types.ProxyRequest, int) types.ProxyResponse { return tt.resp }}
			c, _ := newTestClient(t, ft)

			result := c.Login(context.Background(), "bob", "secret")

			assert.Equal(t, tt.wantOK, result.OK())
			assert.Equal(t, tt.wantKind, result.Kind)
			assert.Equal(t, tt.wantMsg, result.Message)

			require.Len(t, ft.calls, 1)
			req := ft.calls[0]
			assert.Equal(t, "https://teveclub.hu/", req.TargetURL)
			assert.Equal(t, http.MethodPost, req.Method)
			assert.Equal(t, map[string]string{
				"tevenev": "bob", "pass": "secret", "x": "38", "y": "42", "login": "Gyere!",
			}, req.Form)
		})
	}
}

func TestFeedAlreadyFull(t *testing.T) {
	ft := &fakeTransport{handle: func(types.ProxyRequest, int) types.ProxyResponse { return ok(pageFull) }}
	c, waits := newTestClient(t, ft)

	result := c.Feed(context.Background())

	assert.True(t, result.OK())
	assert.Equal(t, "already full", result.Message)
	assert.Equal(t, 0, ft.submissions())
	assert.Len(t, ft.calls, 1)
	assert.Equal(t, 0, *waits)
}

func TestFeedUntilSated(t *testing.T) {
	submitted := 0
	ft := &fakeTransport{handle: func(req types.ProxyRequest, _ int) types.ProxyResponse {
		if req.Method == http.MethodGet {
			return ok(pageCanFeed)
		}
		submitted++
		if submitted == 3 {
			return ok(pageSated)
		}
		return ok(pageHungry)
	}}
	rec := &mockRecorder{}
	rec.On("RecordAction", "feed", mock.AnythingOfType("types.ActionResult")).Once()
	rec.On("RecordFeedSubmissions", 3).Once()

	c, waits := newTestClient(t, ft, func(cfg *Config) { cfg.Recorder = rec })

	result := c.Feed(context.Background())

	assert.True(t, result.OK())
	assert.Equal(t, "fed 3 times and satisfied", result.Message)
	assert.Equal(t, 3, ft.submissions())
	assert.Equal(t, 2, *waits)
	rec.AssertExpectations(t)

	post := ft.calls[1]
	assert.Equal(t, "https://teveclub.hu/myteve.pet", post.TargetURL)
	assert.Equal(t, map[string]string{"kaja": "1", "pia": "1", "etet": "Mehet!"}, post.Form)
}

func TestFeedFormDisappears(t *testing.T) {
	probes := 0
	ft := &fakeTransport{handle: func(req types.ProxyRequest, _ int) types.ProxyResponse {
		if req.Method == http.MethodGet {
			probes++
			if probes > 2 {
				return ok(pageFull)
			}
			return ok(pageCanFeed)
		}
		return ok(pageHungry)
	}}
	c, _ := newTestClient(t, ft)

	result := c.Feed(context.Background())

	assert.True(t, result.OK())
	assert.Equal(t, "fed 2 times and full", result.Message)
	assert.Equal(t, 2, ft.submissions())
}

func TestFeedNeverExceedsCap(t *testing.T) {
	ft := &fakeTransport{handle: func(req types.ProxyRequest, _ int) types.ProxyResponse {
		if req.Method == http.MethodGet {
			return ok(pageCanFeed)
		}
		return ok(pageHungry)
	}}

	for _, limit := range []int{0, 3, 10, 50} {
		ft.calls = nil
		c, waits := newTestClient(t, ft, func(cfg *Config) { cfg.MaxFeedAttempts = limit })

		result := c.Feed(context.Background())

		want := limit
		if limit <= 0 || limit > types.MaxFeedAttempts {
			want = types.MaxFeedAttempts
		}
		assert.True(t, result.OK())
		assert.Equal(t, want, ft.submissions())
		assert.LessOrEqual(t, ft.submissions(), types.MaxFeedAttempts)
		assert.Equal(t, want-1, *waits, "no pause after the last submission")
		assert.True(t, strings.HasSuffix(result.Message, "(attempt cap reached)"))
	}
}

func TestFeedTransportFailure(t *testing.T) {
	t.Run("probe", func(t *testing.T) {
		ft := &fakeTransport{handle: func(types.ProxyRequest, int) types.ProxyResponse { return broken("timeout") }}
		c, _ := newTestClient(t, ft)

		result := c.Feed(context.Background())
		assert.True(t, result.IsTransport())
		assert.Equal(t, "feed failed: timeout", result.Message)
	})

	t.Run("after one submission", func(t *testing.T) {
		ft := &fakeTransport{handle: func(req types.ProxyRequest, n int) types.ProxyResponse {
			switch {
			case n <= 2 && req.Method == http.MethodGet:
				return ok(pageCanFeed)
			case n <= 2:
				return ok(pageHungry)
			default:
				return broken("reset")
			}
		}}
		c, _ := newTestClient(t, ft)

		result := c.Feed(context.Background())
		assert.True(t, result.IsTransport())
		assert.Equal(t, "feed failed after 1 time: reset", result.Message)
		assert.Equal(t, 1, ft.submissions())
	})
}

func TestFeedCancelledDuringPause(t *testing.T) {
	ft := &fakeTransport{handle: func(req types.ProxyRequest, _ int) types.ProxyResponse {
		if req.Method == http.MethodGet {
			return ok(pageCanFeed)
		}
		return ok(pageHungry)
	}}
	ctx, cancel := context.WithCancel(context.Background())
	c, _ := newTestClient(t, ft, func(cfg *Config) {
		cfg.Wait = func(context.Context, time.Duration) error {
			cancel()
			return context.Canceled
		}
	})

	result := c.Feed(ctx)

	assert.False(t, result.OK())
	assert.Equal(t, 1, ft.submissions())
}

func TestLearn(t *testing.T) {
	const (
		choicePage    = `<p>Válaszd ki, hogy mit tanuljon a tevéd:</p>
<select name="tudomany"><option value="7">Ugrás</option><option value="9">Pacsi</option></select>`
		exhaustedPage = `<p>Nincs több olyan trükk, amit a tevéd meg tud tanulni!</p>`
		plainPage     = `<p>Tanítsd a tevédet!</p>`
	)

	// page answers the GET, then every POST gets posted
	site := func(page string, posted types.ProxyResponse) *fakeTransport {
		return &fakeTransport{handle: func(req types.ProxyRequest, _ int) types.ProxyResponse {
			if req.Method == http.MethodGet {
				return ok(page)
			}
			return posted
		}}
	}

	t.Run("plain page is taught", func(t *testing.T) {
		ft := site(plainPage, ok("megtanulta"))
		c, _ := newTestClient(t, ft)

		result := c.Learn(context.Background())
		assert.True(t, result.OK())
		assert.Equal(t, "trick learned", result.Message)
		require.Len(t, ft.calls, 2)
		assert.Equal(t, http.MethodGet, ft.calls[0].Method)
		assert.Equal(t, "https://teveclub.hu/tanit.pet", ft.calls[0].TargetURL)
		assert.Equal(t, http.MethodPost, ft.calls[1].Method)
		assert.Equal(t, map[string]string{"farmdoit": "tanit", "learn": "Tanulj teve!"}, ft.calls[1].Form)
	})

	t.Run("choice page submits one option", func(t *testing.T) {
		ft := site(choicePage, ok("megtanulta"))
		var offered []string
		c, _ := newTestClient(t, ft, func(cfg *Config) {
			cfg.Choose = func(options []string) string {
				offered = options
				return options[1]
			}
		})

		result := c.Learn(context.Background())
		assert.True(t, result.OK())
		assert.Equal(t, []string{"7", "9"}, offered)
		require.Len(t, ft.calls, 2)
		assert.Equal(t, map[string]string{"learn": "Tanulj teve!", "tudomany": "9"}, ft.calls[1].Form)
	})

	t.Run("choice without options", func(t *testing.T) {
		ft := site("Válaszd ki, hogy mit tanuljon a tevéd:", ok("megtanulta"))
		c, _ := newTestClient(t, ft)

		result := c.Learn(context.Background())
		assert.True(t, result.IsDomain())
		assert.Len(t, ft.calls, 1)
	})

	t.Run("exhausted page is never submitted", func(t *testing.T) {
		ft := site(exhaustedPage, ok("megtanulta"))
		c, _ := newTestClient(t, ft)

		result := c.Learn(context.Background())
		assert.True(t, result.IsDomain())
		assert.False(t, result.IsTransport())
		assert.Equal(t, "no tricks available", result.Message)
		require.Len(t, ft.calls, 1)
		assert.Equal(t, http.MethodGet, ft.calls[0].Method)
	})

	t.Run("submission without learned marker", func(t *testing.T) {
		ft := site(plainPage, ok("<p>Hmm.</p>"))
		c, _ := newTestClient(t, ft)

		result := c.Learn(context.Background())
		assert.True(t, result.IsDomain())
		assert.Len(t, ft.calls, 2)
	})

	t.Run("transport error on the page", func(t *testing.T) {
		ft := &fakeTransport{handle: func(types.ProxyRequest, int) types.ProxyResponse { return broken("down") }}
		c, _ := newTestClient(t, ft)

		result := c.Learn(context.Background())
		assert.True(t, result.IsTransport())
		assert.False(t, result.IsDomain())
		assert.Len(t, ft.calls, 1)
	})

	t.Run("transport error on the submission", func(t *testing.T) {
		ft := site(plainPage, broken("down"))
		c, _ := newTestClient(t, ft)

		result := c.Learn(context.Background())
		assert.True(t, result.IsTransport())
		assert.Len(t, ft.calls, 2)
	})
}

func TestGuessAndLogout(t *testing.T) {
	ft := &fakeTransport{handle: func(types.ProxyRequest, int) types.ProxyResponse { return ok("") }}
	c, _ := newTestClient(t, ft)

	assert.True(t, c.Guess(context.Background()).OK())
	assert.True(t, c.Logout(context.Background()).OK())

	require.Len(t, ft.calls, 2)
	assert.Equal(t, map[string]string{"honnan": "403", "tipp": "Ez a tippem!"}, ft.calls[0].Form)
	assert.Equal(t, "https://teveclub.hu/logout.pet", ft.calls[1].TargetURL)
	assert.Equal(t, http.MethodGet, ft.calls[1].Method)

	ft.handle = func(types.ProxyRequest, int) types.ProxyResponse { return broken("gone") }
	assert.True(t, c.Guess(context.Background()).IsTransport())
	assert.True(t, c.Logout(context.Background()).IsTransport())
}

func TestSetFoodIsRepeatable(t *testing.T) {
	ft := &fakeTransport{handle: func(types.ProxyRequest, int) types.ProxyResponse { return ok("<html>ok</html>") }}
	c, _ := newTestClient(t, ft)

	first := c.SetFood(context.Background(), "12")
	second := c.SetFood(context.Background(), "12")

	assert.True(t, first.OK())
	assert.Equal(t, first, second)
	require.Len(t, ft.calls, 2)
	assert.Equal(t, map[string]string{"kaja": "12"}, ft.calls[1].Form)

	drink := c.SetDrink(context.Background(), "3")
	assert.True(t, drink.OK())
	assert.Equal(t, map[string]string{"pia": "3"}, ft.calls[2].Form)

	blank := c.SetDrink(context.Background(), " ")
	assert.True(t, blank.IsDomain())
	assert.Len(t, ft.calls, 3)
}

func TestFetchStatus(t *testing.T) {
	ft := &fakeTransport{status: map[string]types.StatusResponse{
		types.EndpointCurrentFoodDrink: {TransportOK: true, FoodIcon: "kaja12.gif"},
		types.EndpointCurrentTrick:     {TransportOK: true, Trick: "Pacsi"},
	}}
	c, _ := newTestClient(t, ft)

	fd, result := c.FetchCurrentFoodDrink(context.Background())
	assert.True(t, result.OK())
	assert.Equal(t, "kaja12.gif", fd.FoodIcon)
	assert.Equal(t, types.DefaultIcon, fd.DrinkIcon)

	trick, result := c.FetchCurrentTrick(context.Background())
	assert.True(t, result.OK())
	assert.Equal(t, "Pacsi", trick)

	ft.status = map[string]types.StatusResponse{
		types.EndpointCurrentTrick: {TransportOK: true},
	}
	fd, result = c.FetchCurrentFoodDrink(context.Background())
	assert.True(t, result.IsTransport())
	assert.Equal(t, types.FoodDrink{FoodIcon: types.DefaultIcon, DrinkIcon: types.DefaultIcon}, fd)

	trick, result = c.FetchCurrentTrick(context.Background())
	assert.True(t, result.OK())
	assert.Empty(t, trick)
	assert.Equal(t, "no active trick", result.Message)
}

func TestTimerWait(t *testing.T) {
	assert.NoError(t, timerWait(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, timerWait(ctx, time.Hour), context.Canceled)
	assert.ErrorIs(t, timerWait(ctx, 0), context.Canceled)
}
