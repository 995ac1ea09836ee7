package cache

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache[string], *time.Time) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	c := New[string](logger)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestFetch_FreshHitSkipsLoader(t *testing.T) {
	c, _ := newTestCache(t)
	var calls int32

	loader := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "loaded", nil
	}

	val, err := c.Fetch(context.Background(), "key", loader, FetchOptions{TTL: 10 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, "loaded", val)

	val, err = c.Fetch(context.Background(), "key", loader, FetchOptions{TTL: 10 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, "loaded", val)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFetch_ExpiredEntryReloadsSynchronously(t *testing.T) {
	c, now := newTestCache(t)

	_, err := c.Fetch(context.Background(), "key",
		func(ctx context.Context) (string, error) { return "first", nil },
		FetchOptions{TTL: 10 * time.Second})
	require.NoError(t, err)

	// Запись пережила и SWR-окно, пригодных данных не осталось
	*now = now.Add(51 * time.Second)

	val, err := c.Fetch(context.Background(), "key",
		func(ctx context.Context) (string, error) { return "second", nil },
		FetchOptions{TTL: 10 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, "second", val)
}

func TestFetch_StaleWhileRevalidateReturnsStaleImmediately(t *testing.T) {
	c, now := newTestCache(t)

	_, err := c.Fetch(context.Background(), "key",
		func(ctx context.Context) (string, error) { return "stale", nil },
		FetchOptions{TTL: 10 * time.Second})
	require.NoError(t, err)

	// Просрочено, но в пределах SWR-окна
	*now = now.Add(20 * time.Second)

	refreshed := make(chan struct{})
	val, err := c.Fetch(context.Background(), "key",
		func(ctx context.Context) (string, error) {
			defer close(refreshed)
			return "fresh", nil
		},
		FetchOptions{TTL: 10 * time.Second, StaleWhileRevalidate: true})
	require.NoError(t, err)
	assert.Equal(t, "stale", val, "stale value is served while refresh runs in background")

	select {
	case <-refreshed:
	case <-time.After(2 * time.Second):
		t.Fatal("background refresh did not run")
	}

	require.Eventually(t, func() bool {
		entry := c.Get("key")
		return entry != nil && entry.Data == "fresh"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestFetch_BackgroundRefreshFailureKeepsStaleData(t *testing.T) {
	c, now := newTestCache(t)

	_, err := c.Fetch(context.Background(), "key",
		func(ctx context.Context) (string, error) { return "stale", nil },
		FetchOptions{TTL: 10 * time.Second})
	require.NoError(t, err)

	*now = now.Add(20 * time.Second)

	failed := make(chan struct{})
	val, err := c.Fetch(context.Background(), "key",
		func(ctx context.Context) (string, error) {
			defer close(failed)
			return "", errors.New("upstream down")
		},
		FetchOptions{TTL: 10 * time.Second, StaleWhileRevalidate: true})
	require.NoError(t, err, "background failure must not surface to the caller")
	assert.Equal(t, "stale", val)

	select {
	case <-failed:
	case <-time.After(2 * time.Second):
		t.Fatal("background refresh did not run")
	}

	entry := c.Get("key")
	require.NotNil(t, entry)
	assert.Equal(t, "stale", entry.Data)
}

func TestFetch_ConcurrentMissesShareOneRequest(t *testing.T) {
	c, _ := newTestCache(t)
	var calls int32
	release := make(chan struct{})

	loader := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "shared", nil
	}

	const workers = 5
	var wg sync.WaitGroup
	results := make([]string, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			val, err := c.Fetch(context.Background(), "key", loader, FetchOptions{TTL: 10 * time.Second})
			assert.NoError(t, err)
			results[i] = val
		}(i)
	}

	// Даем конкурентам время присоединиться к выполняющейся загрузке
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) >= 1
	}, 2*time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "all callers share a single in-flight request")
	for _, val := range results {
		assert.Equal(t, "shared", val)
	}
}

func TestFetch_ForceRefreshBypassesFreshEntry(t *testing.T) {
	c, _ := newTestCache(t)

	_, err := c.Fetch(context.Background(), "key",
		func(ctx context.Context) (string, error) { return "first", nil },
		FetchOptions{TTL: 10 * time.Second})
	require.NoError(t, err)

	val, err := c.Fetch(context.Background(), "key",
		func(ctx context.Context) (string, error) { return "second", nil },
		FetchOptions{TTL: 10 * time.Second, ForceRefresh: true})
	require.NoError(t, err)
	assert.Equal(t, "second", val)
}

func TestGet_ReturnsNilBeyondUsableWindow(t *testing.T) {
	c, now := newTestCache(t)
	c.Set("key", "value", 10*time.Second)

	*now = now.Add(20 * time.Second)
	require.NotNil(t, c.Get("key"), "expired entry is still usable within the stale window")

	*now = now.Add(40 * time.Second)
	assert.Nil(t, c.Get("key"), "entry past the stale window is gone")
}

func TestPatch_PreservesEntryAge(t *testing.T) {
	c, now := newTestCache(t)
	c.Set("key", "old", 10*time.Second)
	storedAt := c.Get("key").StoredAt

	*now = now.Add(3 * time.Second)
	c.Patch("key", func(v string) string { return "patched" })

	entry := c.Get("key")
	require.NotNil(t, entry)
	assert.Equal(t, "patched", entry.Data)
	assert.Equal(t, storedAt, entry.StoredAt, "patch must not rejuvenate the entry")
}

func TestPatch_MissIsNoop(t *testing.T) {
	c, _ := newTestCache(t)
	c.Patch("absent", func(v string) string { return "never" })
	assert.Nil(t, c.Get("absent"))
}

func TestInvalidatePrefix(t *testing.T) {
	c, _ := newTestCache(t)
	c.Set("incidents:history:1", "h1", time.Minute)
	c.Set("incidents:history:2", "h2", time.Minute)
	c.Set("incidents:list", "list", time.Minute)

	c.InvalidatePrefix("incidents:history:")

	assert.Nil(t, c.Get("incidents:history:1"))
	assert.Nil(t, c.Get("incidents:history:2"))
	assert.NotNil(t, c.Get("incidents:list"))
}
