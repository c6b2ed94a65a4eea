package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want error
	}{
		{name: "empty", url: "", want: ErrEmptyConnectionURL},
		{name: "http scheme", url: "http://localhost:6379", want: ErrFailedToParseURL},
		{name: "no scheme", url: "localhost:6379", want: ErrFailedToParseURL},
		{name: "invalid port", url: "redis://localhost:notaport", want: ErrFailedToParseURL},
		{name: "invalid database", url: "redis://localhost:6379/notanumber", want: ErrFailedToParseURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, err := Open(context.Background(), Config{URL: tt.url})
			require.ErrorIs(t, err, tt.want)
			assert.Nil(t, client)
		})
	}
}

func TestOptions(t *testing.T) {
	t.Parallel()

	opts, err := options(Config{
		URL:         "rediss://:pw@cache.internal:6380/2",
		PoolSize:    4,
		DialTimeout: time.Second,
		IOTimeout:   2 * time.Second,
	})
	require.NoError(t, err)

	assert.Equal(t, "cache.internal:6380", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 2, opts.DB)
	assert.NotNil(t, opts.TLSConfig)
	assert.Equal(t, 4, opts.PoolSize)
	assert.Equal(t, time.Second, opts.DialTimeout)
	assert.Equal(t, 2*time.Second, opts.ReadTimeout)
	assert.Equal(t, 2*time.Second, opts.WriteTimeout)
}

func TestOpen_Unreachable(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), Config{
		URL:           "redis://127.0.0.1:1/0",
		DialTimeout:   100 * time.Millisecond,
		RetryAttempts: 2,
		RetryInterval: 10 * time.Millisecond,
	})
	require.ErrorIs(t, err, ErrConnectionFailed)
}

func TestHealthcheck_NilClient(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, Healthcheck(nil)(context.Background()), ErrHealthcheckFailed)
}

type closer struct {
	err    error
	closed bool
}

func (c *closer) Close() error {
	c.closed = true
	return c.err
}

func TestShutdown(t *testing.T) {
	t.Parallel()

	c := &closer{}
	require.NoError(t, Shutdown(c)(context.Background()))
	assert.True(t, c.closed)

	boom := errors.New("boom")
	require.ErrorIs(t, Shutdown(&closer{err: boom})(context.Background()), boom)
}

func TestWait(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, wait(ctx, time.Hour), context.Canceled)
	require.NoError(t, wait(context.Background(), time.Millisecond))
}
