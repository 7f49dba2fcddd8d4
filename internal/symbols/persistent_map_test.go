package symbols

import (
	"fmt"
	"testing"
)

func TestPersistentMapPutLeavesOriginalUntouched(t *testing.T) {
	m1 := EmptyMap[int]().Put("a", 1)
	m2 := m1.Put("b", 2)
	m3 := m2.Put("a", 10)

	if m1.Len() != 1 || m2.Len() != 2 || m3.Len() != 2 {
		t.Fatalf("unexpected sizes: %d %d %d", m1.Len(), m2.Len(), m3.Len())
	}
	if v, _ := m2.Get("a"); v != 1 {
		t.Errorf("expected m2[a] = 1, got %d", v)
	}
	if v, _ := m3.Get("a"); v != 10 {
		t.Errorf("expected m3[a] = 10, got %d", v)
	}
	if m1.Contains("b") {
		t.Errorf("m1 must not see b")
	}
}

func TestPersistentMapManyKeys(t *testing.T) {
	m := EmptyMap[int]()
	const n = 2000
	for i := 0; i < n; i++ {
		m = m.Put(fmt.Sprintf("k%d", i), i)
	}
	if m.Len() != n {
		t.Fatalf("expected %d entries, got %d", n, m.Len())
	}
	for i := 0; i < n; i++ {
		v, ok := m.Get(fmt.Sprintf("k%d", i))
		if !ok || v != i {
			t.Fatalf("k%d: expected %d, got %d (found=%v)", i, i, v, ok)
		}
	}
	for i := 0; i < n; i += 2 {
		m = m.Remove(fmt.Sprintf("k%d", i))
	}
	if m.Len() != n/2 {
		t.Fatalf("expected %d entries after removal, got %d", n/2, m.Len())
	}
	for i := 0; i < n; i++ {
		_, ok := m.Get(fmt.Sprintf("k%d", i))
		if ok != (i%2 == 1) {
			t.Fatalf("k%d: presence %v is wrong", i, ok)
		}
	}
}

func TestHamtCollisionBucket(t *testing.T) {
	// Force identical hashes through the node API.
	root := &hamtNode[string]{}
	root, _ = root.put(42, "x", "first", 0)
	root, added := root.put(42, "y", "second", 0)
	if !added {
		t.Fatalf("expected second key to be added")
	}
	if v, ok := root.get(42, "x", 0); !ok || v != "first" {
		t.Errorf("expected x = first, got %q", v)
	}
	if v, ok := root.get(42, "y", 0); !ok || v != "second" {
		t.Errorf("expected y = second, got %q", v)
	}
	root, removed := root.remove(42, "x", 0)
	if !removed {
		t.Fatalf("expected x to be removed")
	}
	if _, ok := root.get(42, "x", 0); ok {
		t.Errorf("x still present after removal")
	}
	if v, ok := root.get(42, "y", 0); !ok || v != "second" {
		t.Errorf("expected y to survive removal of x")
	}
}

func TestKeysAreSorted(t *testing.T) {
	m := EmptyMap[bool]().Put("c", true).Put("a", true).Put("b", true)
	keys := m.Keys()
	if len(keys) != 3 || keys[0] != "a" || keys[1] != "b" || keys[2] != "c" {
		t.Errorf("expected [a b c], got %v", keys)
	}
}
