package cache

import (
	"testing"
	"time"
)

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("expected miss for unknown key")
	}

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, found := c.Get("k")
	if !found || string(val) != "v" {
		t.Errorf("expected hit with value v, got %q found=%v", val, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("expected miss after delete")
	}
}

func TestPairKeyOrderIndependent(t *testing.T) {
	k1 := PairKey("we are the market leader", "as a startup entering this space")
	k2 := PairKey("as a startup entering this space", "we are the market leader")

	if k1 != k2 {
		t.Error("pair key must be order-independent")
	}

	k3 := PairKey("we are the market leader", "a different claim")
	if k1 == k3 {
		t.Error("different pairs must not collide")
	}
}

func TestKeyStableAndDistinct(t *testing.T) {
	if Key("a") != Key("a") {
		t.Error("key must be deterministic")
	}
	if Key("a") == Key("b") {
		t.Error("distinct inputs must yield distinct keys")
	}
}
