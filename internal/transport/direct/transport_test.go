package direct

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/GriffinCanCode/teveclub/internal/types"
	"github.com/GriffinCanCode/teveclub/internal/upstream"
)

type mockUpstream struct {
	mock.Mock
}

func (m *mockUpstream) Forward(_ context.Context, req types.ProxyRequest) (*upstream.Page, error) {
	args := m.Called(req)
	page, _ := args.Get(0).(*upstream.Page)
	return page, args.Error(1)
}

func (m *mockUpstream) FoodDrink(context.Context) (types.FoodDrink, error) {
	args := m.Called()
	return args.Get(0).(types.FoodDrink), args.Error(1)
}

func (m *mockUpstream) CurrentTrick(context.Context) (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func TestProxy(t *testing.T) {
	u := &mockUpstream{}
	ok := types.ProxyRequest{TargetURL: "https://teveclub.hu/myteve.pet"}
	bad := types.ProxyRequest{TargetURL: "https://evil.example/"}
	u.On("Forward", ok).Return(&upstream.Page{Status: 200, Body: "Mehet!"}, nil)
	u.On("Forward", bad).Return(nil, upstream.ErrHostNotAllowed)

	tr := New(u)

	resp := tr.Proxy(context.Background(), ok)
	assert.True(t, resp.TransportOK)
	assert.Equal(t, "Mehet!", resp.Body)

	resp = tr.Proxy(context.Background(), bad)
	assert.False(t, resp.TransportOK)
	assert.Contains(t, resp.Message, "target host not allowed")
	u.AssertExpectations(t)
}

func TestStatus(t *testing.T) {
	u := &mockUpstream{}
	u.On("FoodDrink").Return(types.FoodDrink{FoodIcon: "k1.gif", DrinkIcon: "p1.gif"}, nil).Once()
	u.On("CurrentTrick").Return("", errors.New("timeout")).Once()

	tr := New(u)

	fd := tr.Status(context.Background(), types.EndpointCurrentFoodDrink)
	assert.True(t, fd.TransportOK)
	assert.Equal(t, "k1.gif", fd.FoodIcon)

	trick := tr.Status(context.Background(), types.EndpointCurrentTrick)
	assert.False(t, trick.TransportOK)
	assert.Equal(t, "Network error: timeout", trick.Message)

	unknown := tr.Status(context.Background(), "weather")
	assert.False(t, unknown.TransportOK)
	u.AssertExpectations(t)
}
