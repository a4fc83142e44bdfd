package pool

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/teveclub/internal/shared/id"
)

type jar struct {
	owner id.SessionID
}

func TestPoolLifecycle(t *testing.T) {
	created := 0
	var sizes []int
	p := New(func(sid id.SessionID) (*jar, error) {
		created++
		return &jar{owner: sid}, nil
	}, time.Minute, nil, func(n int) { sizes = append(sizes, n) })

	now := time.Unix(1_700_000_000, 0)
	p.now = func() time.Time { return now }

	a, b := id.NewSessionID(), id.NewSessionID()

	_, err := p.Lookup(a)
	assert.ErrorIs(t, err, ErrNoSession)

	ja, err := p.Get(a)
	require.NoError(t, err)
	assert.Equal(t, a, ja.owner)
	again, err := p.Get(a)
	require.NoError(t, err)
	assert.Same(t, ja, again)

	_, err = p.Get(b)
	require.NoError(t, err)
	assert.Equal(t, 2, created)
	assert.Equal(t, 2, p.Len())

	// b goes idle, a stays in use
	now = now.Add(45 * time.Second)
	_, err = p.Lookup(a)
	require.NoError(t, err)
	now = now.Add(30 * time.Second)

	assert.Equal(t, 1, p.Sweep())
	_, err = p.Lookup(b)
	assert.ErrorIs(t, err, ErrNoSession)

	p.Drop(a)
	p.Drop(a)
	assert.Equal(t, 0, p.Len())
	assert.Equal(t, []int{1, 2, 1, 0}, sizes)
}

func TestPoolFactoryError(t *testing.T) {
	p := New(func(id.SessionID) (*jar, error) { return nil, errors.New("boom") }, 0, nil, nil)

	_, err := p.Get(id.NewSessionID())
	assert.Error(t, err)
	assert.Equal(t, 0, p.Len())
}

func TestPoolRunStopsOnCancel(t *testing.T) {
	p := New(func(id.SessionID) (int, error) { return 1, nil }, time.Nanosecond, nil, nil)
	_, err := p.Get(id.NewSessionID())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx, time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return p.Len() == 0 }, time.Second, time.Millisecond)
	cancel()
	<-done
}
