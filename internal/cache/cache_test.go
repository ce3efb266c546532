package cache

import (
	"bytes"
	"testing"
)

func TestCachePutGet(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	key := Key([]byte("config"), []byte("manifest"))
	if _, ok := c.Get(key); ok {
		t.Fatal("unexpected hit on empty cache")
	}

	css := []byte(".a { color: red; }\n")
	if err := c.Put(key, css); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, ok := c.Get(key)
	if !ok {
		t.Fatal("expected a hit after Put")
	}
	if !bytes.Equal(got, css) {
		t.Errorf("Get returned %q, want %q", got, css)
	}
}

func TestKeyDependsOnAllInputs(t *testing.T) {
	a := Key([]byte("one"), []byte("two"))
	b := Key([]byte("one"), []byte("three"))
	c := Key([]byte("onet"), []byte("wo"))

	if a == b {
		t.Error("keys with different inputs must differ")
	}
	if a == c {
		t.Error("input boundaries must affect the key")
	}
}

func TestCachePersistsAcrossOpens(t *testing.T) {
	dir := t.TempDir()
	key := Key([]byte("stable"))

	c1, err := New(dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := c1.Put(key, []byte("body")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	c2, err := New(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if got, ok := c2.Get(key); !ok || string(got) != "body" {
		t.Errorf("Get after reopen = %q, %v", got, ok)
	}
}

func TestCacheDeleteAndClear(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	k1 := Key([]byte("a"))
	k2 := Key([]byte("b"))
	if err := c.Put(k1, []byte("1")); err != nil {
		t.Fatal(err)
	}
	if err := c.Put(k2, []byte("2")); err != nil {
		t.Fatal(err)
	}

	if err := c.Delete(k1); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := c.Get(k1); ok {
		t.Error("deleted key still hits")
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, ok := c.Get(k2); ok {
		t.Error("cleared key still hits")
	}
}
