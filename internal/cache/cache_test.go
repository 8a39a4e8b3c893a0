package cache

import (
	"testing"
	"time"

	"jobpulse/pkg/log"
)

func openCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()
	c, err := Open(t.TempDir(), ttl, log.NewLogger())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

type payload struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

func TestCacheSetGet(t *testing.T) {
	c := openCache(t, time.Minute)

	want := payload{Name: "Acme", Count: 42}
	if err := c.Set("k", want); err != nil {
		t.Fatal(err)
	}
	var got payload
	found, err := c.Get("k", &got)
	if err != nil {
		t.Fatal(err)
	}
	if !found || got != want {
		t.Fatalf("found=%v got=%+v", found, got)
	}
}

func TestCacheMiss(t *testing.T) {
	c := openCache(t, time.Minute)
	var got payload
	found, err := c.Get("absent", &got)
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Fatal("expected miss")
	}
}

func TestCacheExpiry(t *testing.T) {
	c := openCache(t, time.Second)
	if err := c.Set("k", payload{Name: "x"}); err != nil {
		t.Fatal(err)
	}
	time.Sleep(1500 * time.Millisecond)
	var got payload
	found, err := c.Get("k", &got)
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Fatal("entry should have expired")
	}
}

func TestCacheBust(t *testing.T) {
	c := openCache(t, time.Minute)
	if err := c.Set("a", payload{Name: "a"}); err != nil {
		t.Fatal(err)
	}
	if err := c.Set("b", payload{Name: "b"}); err != nil {
		t.Fatal(err)
	}
	if err := c.Bust(); err != nil {
		t.Fatal(err)
	}
	var got payload
	for _, k := range []string{"a", "b"} {
		found, err := c.Get(k, &got)
		if err != nil {
			t.Fatal(err)
		}
		if found {
			t.Fatalf("key %q survived bust", k)
		}
	}
}

func TestSummaryKeyDistinguishesParams(t *testing.T) {
	a := SummaryKey("data/jobs.csv", 20000, "week")
	b := SummaryKey("data/jobs.csv", 20000, "month")
	c := SummaryKey("data/jobs.csv", 100, "week")
	if a == b || a == c || b == c {
		t.Fatalf("keys collide: %q %q %q", a, b, c)
	}
}
