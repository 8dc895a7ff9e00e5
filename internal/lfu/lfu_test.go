package lfu

import "testing"

func TestEvictsLeastFrequentlyUsed(t *testing.T) {
	c := New(2)
	c.Put("a", "1")
	c.Put("b", "2")
	c.Get("a") // a now freq 2, b freq 1
	c.Put("c", "3") // evicts b (min frequency)

	if c.Contains("b") {
		t.Fatalf("expected b evicted as least-frequently-used")
	}
	if !c.Contains("a") || !c.Contains("c") {
		t.Fatalf("expected a and c to remain")
	}
}

func TestFrequencyTracksAccessCount(t *testing.T) {
	c := New(4)
	c.Put("a", "1")
	for i := 0; i < 3; i++ {
		c.Get("a")
	}
	// 1 put + 3 gets = 4 successful operations on "a"
	if got := c.Frequency("a"); got != 4 {
		t.Fatalf("Frequency(a) = %d, want 4", got)
	}
}

func TestGetMissingReturnsEmptySentinel(t *testing.T) {
	c := New(2)
	if got := c.Get("missing"); got != "" {
		t.Fatalf("Get(missing) = %q, want empty", got)
	}
}

func TestMinFrequencyAdvancesPastEmptiedBucket(t *testing.T) {
	c := New(3)
	c.Put("a", "1")
	c.Put("b", "2")
	c.Put("c", "3")
	// bump b and c to freq 2, leaving a alone at freq 1.
	c.Get("b")
	c.Get("c")
	c.Remove("a") // empties the freq-1 bucket entirely

	c.Put("d", "4") // d enters at freq 1, so minFreq must go back to 1
	c.Get("b")
	c.Get("c")
	// now b, c at freq 3; d at freq 1 is the sole minimum.
	c.Put("e", "5") // forces an eviction; "d" (min frequency) should go
	if c.Contains("d") {
		t.Fatalf("expected d (min frequency) evicted, cache=%v", map[string]bool{
			"b": c.Contains("b"), "c": c.Contains("c"), "d": c.Contains("d"), "e": c.Contains("e"),
		})
	}
}

func TestCapacityNeverExceeded(t *testing.T) {
	c := New(3)
	for _, k := range []string{"a", "b", "c", "d", "e"} {
		c.Put(k, k)
		if c.Size() > 3 {
			t.Fatalf("size exceeded capacity")
		}
	}
}

func TestRemoveOnEmptyCacheResetsMinFreqToZero(t *testing.T) {
	c := New(2)
	c.Put("a", "1")
	c.Remove("a")
	if c.Size() != 0 {
		t.Fatalf("expected empty cache")
	}
	// Putting again should behave as a fresh insert at frequency 1.
	c.Put("b", "2")
	if got := c.Frequency("b"); got != 1 {
		t.Fatalf("Frequency(b) = %d, want 1", got)
	}
}
