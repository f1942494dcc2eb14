package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PavelNikolaichev/LangLearn.Backend/internal/domain"
)

type cachedDeck struct {
	ID    string   `json:"id"`
	Cards []string `json:"cards"`
}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	c := New(s.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return NewCache(c, "langlearn:"), s
}

func TestCache_SetGet_RoundTrip(t *testing.T) {
	c, s := newTestCache(t)
	ctx := context.Background()

	in := cachedDeck{ID: "d-1", Cards: []string{"a", "b"}}
	require.NoError(t, c.Set(ctx, "deck:u1:d-1", in, time.Minute))
	assert.True(t, s.Exists("langlearn:deck:u1:d-1"), "key must carry the prefix")

	var out cachedDeck
	found, err := c.Get(ctx, "deck:u1:d-1", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

func TestCache_Get_Miss(t *testing.T) {
	c, _ := newTestCache(t)

	var out cachedDeck
	found, err := c.Get(context.Background(), "nope", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_TTLExpires(t *testing.T) {
	c, s := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", cachedDeck{ID: "x"}, time.Second))
	s.FastForward(2 * time.Second)

	var out cachedDeck
	found, err := c.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_Delete(t *testing.T) {
	c, s := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", 1, time.Minute))
	require.NoError(t, c.Set(ctx, "b", 2, time.Minute))
	require.NoError(t, c.Delete(ctx, "a", "b"))
	assert.False(t, s.Exists("langlearn:a"))
	assert.False(t, s.Exists("langlearn:b"))

	require.NoError(t, c.Delete(ctx))
}

func TestCache_CorruptEntryIsAMiss(t *testing.T) {
	c, s := newTestCache(t)
	require.NoError(t, s.Set("langlearn:bad", "{not json"))

	var out cachedDeck
	found, err := c.Get(context.Background(), "bad", &out)
	require.NoError(t, err)
	assert.False(t, found)
	assert.False(t, s.Exists("langlearn:bad"))
}

func TestCache_ServerDown_ReportsCacheUnavailable(t *testing.T) {
	c, s := newTestCache(t)
	s.Close()

	var out cachedDeck
	_, err := c.Get(context.Background(), "k", &out)
	assert.True(t, domain.Is(err, "cache_unavailable"), "got %v", err)
}

func TestCache_NilClientIsNoop(t *testing.T) {
	c := NewCache(nil, "")
	ctx := context.Background()

	var out cachedDeck
	found, err := c.Get(ctx, "k", &out)
	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, c.Set(ctx, "k", out, time.Minute))
	assert.NoError(t, c.Delete(ctx, "k"))
}

func TestCache_Scan_StripsPrefixAndReportsTTL(t *testing.T) {
	c, s := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "deck:u1:d1", cachedDeck{ID: "d1"}, time.Minute))
	require.NoError(t, c.Set(ctx, "deck:u1:d2", cachedDeck{ID: "d2"}, time.Minute))
	require.NoError(t, c.Set(ctx, "grammarset:u1:s1", cachedDeck{ID: "s1"}, time.Minute))
	require.NoError(t, s.Set("other:deck:u1:d3", "{}"))

	got := map[string]Entry{}
	require.NoError(t, c.Scan(ctx, "deck:*", func(e Entry) error {
		got[e.Key] = e
		return nil
	}))

	require.Len(t, got, 2)
	assert.Contains(t, got, "deck:u1:d1")
	assert.Equal(t, time.Minute, got["deck:u1:d2"].TTL)
	assert.JSONEq(t, `{"id":"d2","cards":null}`, got["deck:u1:d2"].Raw)
}

func TestCache_Scan_CallbackErrorStops(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "a", 1, time.Minute))

	stop := assert.AnError
	err := c.Scan(ctx, "*", func(Entry) error { return stop })
	assert.ErrorIs(t, err, stop)
}

func TestCache_Purge(t *testing.T) {
	c, s := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "deck:u1:d1", 1, time.Minute))
	require.NoError(t, c.Set(ctx, "deck:u2:d2", 1, time.Minute))
	require.NoError(t, c.Set(ctx, "grammarset:u1:s1", 1, time.Minute))

	n, err := c.Purge(ctx, "deck:*")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.False(t, s.Exists("langlearn:deck:u1:d1"))
	assert.True(t, s.Exists("langlearn:grammarset:u1:s1"))

	n, err = c.Purge(ctx, "deck:*")
	require.NoError(t, err)
	assert.Zero(t, n)
}
