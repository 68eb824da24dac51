package content

import (
	"sync"
	"testing"
	"time"
)

func TestCache(t *testing.T) {
	c := NewCache()
	if _, ok := c.Get("a.md"); ok {
		t.Error("empty cache returned an entry")
	}
	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p1 := &FeedPost{PostSummary: PostSummary{Title: "one"}}
	c.Put("a.md", t1, p1)
	e, ok := c.Get("a.md")
	if !ok || e.Post != p1 || !e.ModTime.Equal(t1) {
		t.Errorf("unexpected entry %#v", e)
	}

	p2 := &FeedPost{PostSummary: PostSummary{Title: "two"}}
	c.Put("a.md", t1.Add(time.Second), p2)
	e, _ = c.Get("a.md")
	if e.Post != p2 || c.Len() != 1 {
		t.Errorf("entry not replaced: %#v, len %d", e, c.Len())
	}
}

func TestCacheConcurrent(t *testing.T) {
	const count = 8
	c := NewCache()
	var wg sync.WaitGroup
	wg.Add(count)
	for i := 0; i < count; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Put("a.md", time.Unix(int64(j), 0), &FeedPost{})
				c.Get("a.md")
			}
		}()
	}
	wg.Wait()
	if c.Len() != 1 {
		t.Errorf("len = %d", c.Len())
	}
}

func TestCacheClaim(t *testing.T) {
	c := NewCache()
	a, b := &Loader{}, &Loader{}
	if err := c.claim(a); err != nil {
		t.Fatal(err)
	}
	if err := c.claim(a); err != nil {
		t.Errorf("owner could not claim again: %v", err)
	}
	if err := c.claim(b); err != ErrCacheInUse {
		t.Errorf("expected ErrCacheInUse, got %v", err)
	}
}
