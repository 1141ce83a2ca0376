// ABOUTME: Unit tests for the TTL cache
// ABOUTME: Covers hits, expiration, custom TTLs, and key derivation

package cache

import (
	"testing"
	"time"
)

func TestCache_SetAndGet(t *testing.T) {
	c := New(time.Minute)
	c.Set("key", "value")

	got, ok := c.Get("key")
	if !ok {
		t.Fatal("Expected cache hit")
	}
	if got != "value" {
		t.Errorf("Got %v, want value", got)
	}
}

func TestCache_Miss(t *testing.T) {
	c := New(time.Minute)
	if _, ok := c.Get("missing"); ok {
		t.Error("Expected cache miss")
	}
}

func TestCache_Expiration(t *testing.T) {
	c := New(10 * time.Millisecond)
	c.Set("key", "value")

	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("key"); ok {
		t.Error("Expected entry to expire")
	}
}

func TestCache_SetWithTTL(t *testing.T) {
	c := New(10 * time.Millisecond)
	c.SetWithTTL("key", "value", time.Minute)

	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("key"); !ok {
		t.Error("Custom TTL should outlive default")
	}
}

func TestCache_Clear(t *testing.T) {
	c := New(time.Minute)
	c.Set("key", "value")
	c.Clear("key")

	if _, ok := c.Get("key"); ok {
		t.Error("Expected entry to be cleared")
	}
}

func TestKey_Deterministic(t *testing.T) {
	a := Key("analyze", []byte(`{"services":[]}`))
	b := Key("analyze", []byte(`{"services":[]}`))
	if a != b {
		t.Error("Same body should produce the same key")
	}

	c := Key("analyze", []byte(`{"services":[1]}`))
	if a == c {
		t.Error("Different bodies should produce different keys")
	}

	d := Key("simulate", []byte(`{"services":[]}`))
	if a == d {
		t.Error("Different prefixes should produce different keys")
	}
}
