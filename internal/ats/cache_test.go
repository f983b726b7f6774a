package ats

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestScorer_NilRedis(t *testing.T) {
	s := NewScorer(nil, 0)
	r, cached, err := s.Score(context.Background(), "teamwork", "teamwork SQL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cached {
		t.Error("expected uncached result")
	}
	if len(r.Present) != 1 {
		t.Errorf("expected one present keyword, got %v", r.Present)
	}
}

func TestScorer_CachesResult(t *testing.T) {
	mr, client := setupTestRedis(t)
	s := NewScorer(client, time.Minute)
	ctx := context.Background()

	first, cached, err := s.Score(ctx, "teamwork", "teamwork SQL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cached {
		t.Error("first call should not be cached")
	}

	key := CacheKey("teamwork", "teamwork SQL")
	if !mr.Exists(key) {
		t.Fatal("expected cache entry to be written")
	}
	if ttl := mr.TTL(key); ttl != time.Minute {
		t.Errorf("expected ttl 1m, got %v", ttl)
	}

	second, cached, err := s.Score(ctx, "teamwork", "teamwork SQL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cached {
		t.Error("second call should be cached")
	}
	if second.Score != first.Score {
		t.Errorf("expected cached score %d, got %d", first.Score, second.Score)
	}
	if len(second.Missing) != 1 || second.Missing[0] != "sql" {
		t.Errorf("unexpected cached missing list %v", second.Missing)
	}
}

func TestScorer_EmptyListsSurviveCache(t *testing.T) {
	_, client := setupTestRedis(t)
	s := NewScorer(client, time.Minute)
	ctx := context.Background()

	_, _, _ = s.Score(ctx, "", "")
	r, cached, err := s.Score(ctx, "", "")
	if err != nil || !cached {
		t.Fatalf("expected cached result, err=%v cached=%v", err, cached)
	}
	if r.Present == nil || r.Missing == nil {
		t.Error("cached lists must not be nil")
	}
}

func TestScorer_RedisDown(t *testing.T) {
	mr, client := setupTestRedis(t)
	mr.Close()

	s := NewScorer(client, time.Minute)
	r, cached, err := s.Score(context.Background(), "teamwork", "teamwork")
	if err == nil {
		t.Error("expected cache error to be reported")
	}
	if cached {
		t.Error("expected uncached result")
	}
	if len(r.Present) != 1 {
		t.Errorf("expected result despite cache failure, got %v", r.Present)
	}
}

func TestCacheKey_Distinguishes(t *testing.T) {
	if CacheKey("ab", "c") == CacheKey("a", "bc") {
		t.Error("cache keys must not collide across the input boundary")
	}
}
