package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	cfg := Config{URL: "redis://localhost:6379/2", ReadTimeout: 1, WriteTimeout: 2, DialTimeout: 3}
	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, time.Second, opts.ReadTimeout)
	assert.Equal(t, 2*time.Second, opts.WriteTimeout)
	assert.Equal(t, 3*time.Second, opts.DialTimeout)
}

func TestOptionsRejectsEmptyAndInvalidURL(t *testing.T) {
	_, err := (&Config{}).Options()
	assert.Error(t, err)

	_, err = (&Config{URL: "not-a-url://x"}).Options()
	assert.Error(t, err)
}

func TestNewPings(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := Config{URL: "redis://" + mr.Addr(), ReadTimeout: 1, WriteTimeout: 1, DialTimeout: 1}

	client, err := cfg.New(context.Background())
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}
