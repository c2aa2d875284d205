package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResponseCacheHitAndPurge(t *testing.T) {
	c := NewResponseCache(4, time.Minute)
	c.Add("/atms", []byte(`[{"id":1}]`))

	body, ok := c.Get("/atms")
	assert.True(t, ok)
	assert.Equal(t, `[{"id":1}]`, string(body))

	c.Purge()
	_, ok = c.Get("/atms")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestResponseCacheExpires(t *testing.T) {
	c := NewResponseCache(4, 20*time.Millisecond)
	c.Add("/vendors", []byte(`[]`))
	time.Sleep(60 * time.Millisecond)
	_, ok := c.Get("/vendors")
	assert.False(t, ok)
}

func TestResponseCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewResponseCache(2, time.Minute)
	c.Add("/atms", []byte("a"))
	c.Add("/vendors", []byte("v"))
	c.Get("/atms")
	c.Add("/movements", []byte("m"))

	_, ok := c.Get("/vendors")
	assert.False(t, ok)
	_, ok = c.Get("/atms")
	assert.True(t, ok)
}

func TestDisabledCache(t *testing.T) {
	c := NewResponseCache(10, 0)
	assert.Nil(t, c)
	c.Add("/atms", []byte("a"))
	_, ok := c.Get("/atms")
	assert.False(t, ok)
	c.Purge()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, time.Duration(0), c.TTL())
}
