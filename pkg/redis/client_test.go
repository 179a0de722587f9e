package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestSessionCartIDLifecycle(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	if _, found, err := client.GetCartID(ctx, "visitor-1"); err != nil || found {
		t.Fatalf("expected clean miss, got found=%v err=%v", found, err)
	}

	if err := client.StoreCartID(ctx, "visitor-1", "cart-abc", time.Hour); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	cartID, found, err := client.GetCartID(ctx, "visitor-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !found || cartID != "cart-abc" {
		t.Fatalf("expected stored cart id, got %q found=%v", cartID, found)
	}
}

func TestGetSlidingRefreshesTTL(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	key := client.CacheKey("album_42")
	if err := client.Set(ctx, key, `{"title":"Kind of Blue"}`, 10*time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, found, err := client.GetSliding(ctx, key, 10*time.Minute)
	if err != nil {
		t.Fatalf("sliding get failed: %v", err)
	}
	if !found || val == "" {
		t.Fatalf("expected hit, got found=%v val=%q", found, val)
	}
	if len(mock.getexCalls) != 1 || mock.getexCalls[0].ttl != 10*time.Minute {
		t.Fatalf("expected one sliding refresh, got %+v", mock.getexCalls)
	}

	_, found, err = client.GetSliding(ctx, client.CacheKey("album_404"), 10*time.Minute)
	if err != nil {
		t.Fatalf("sliding miss errored: %v", err)
	}
	if found {
		t.Fatal("expected miss for unknown key")
	}
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	if got := client.SessionKey("tok"); got != "ms:session:tok" {
		t.Fatalf("unexpected session key %s", got)
	}
	if got := client.CacheKey("album_7"); got != "ms:cache:album_7" {
		t.Fatalf("unexpected cache key %s", got)
	}
	if got := client.buildKey("session", ""); got != "ms:session" {
		t.Fatalf("empty parts should be skipped, got %s", got)
	}
}

type mockCmdable struct {
	data       map[string]string
	getexCalls []getexCall
}

type getexCall struct {
	key string
	ttl time.Duration
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: make(map[string]string)}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	m.data[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) GetEx(ctx context.Context, key string, expiration time.Duration) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	m.getexCalls = append(m.getexCalls, getexCall{key: key, ttl: expiration})
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(m.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}
