package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *time.Time) {
	t.Helper()
	stop := make(chan struct{})
	t.Cleanup(func() { close(stop) })
	c := New(true, stop)
	now := time.Date(2025, 10, 7, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestSetGetExpire(t *testing.T) {
	c, now := newTestCache(t)

	etag := c.Set("games:all", []byte(`[]`), time.Minute)
	data, got, ok := c.Get("games:all")
	require.True(t, ok)
	assert.Equal(t, []byte(`[]`), data)
	assert.Equal(t, etag, got)

	*now = now.Add(2 * time.Minute)
	_, _, ok = c.Get("games:all")
	assert.False(t, ok)

	stats := c.Stats()
	assert.Equal(t, 1, stats["total_keys"])
	assert.Equal(t, 1, stats["expired_keys"])

	c.evict()
	assert.Equal(t, 0, c.Stats()["total_keys"])
}

func TestDisabledCache(t *testing.T) {
	c := New(false, nil)
	etag := c.Set("k", []byte("v"), time.Hour)
	assert.Equal(t, ComputeETag([]byte("v")), etag)
	_, _, ok := c.Get("k")
	assert.False(t, ok)
	assert.False(t, c.Enabled())
}

func TestDeletePrefixAndFlush(t *testing.T) {
	c, _ := newTestCache(t)
	c.Set("games:all", []byte("1"), time.Hour)
	c.Set("games:Heat", []byte("2"), time.Hour)
	c.Set("scores:all", []byte("3"), time.Hour)

	assert.Equal(t, 2, c.DeletePrefix("games:"))
	_, _, ok := c.Get("scores:all")
	assert.True(t, ok)

	c.Flush()
	_, _, ok = c.Get("scores:all")
	assert.False(t, ok)
}

func TestETag(t *testing.T) {
	a := ComputeETag([]byte("a"))
	assert.Equal(t, a, ComputeETag([]byte("a")))
	assert.NotEqual(t, a, ComputeETag([]byte("b")))
	assert.Regexp(t, `^W/"[0-9a-f]{16}"$`, a)

	assert.False(t, CheckETagMatch("", a))
	assert.True(t, CheckETagMatch("*", a))
	assert.True(t, CheckETagMatch(a, a))
	assert.True(t, CheckETagMatch(`W/"0000000000000000", `+a, a))
	assert.False(t, CheckETagMatch(`W/"0000000000000000"`, a))
}
