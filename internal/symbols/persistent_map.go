package symbols

import (
	"hash/fnv"
	"math/bits"
	"sort"
)

// Persistent Hash Array Mapped Trie (HAMT) keyed by strings.
// Every Put/Remove returns a new map sharing untouched nodes with the old one.

const (
	hamtBits = 5
	hamtSize = 1 << hamtBits // 32
	hamtMask = hamtSize - 1
)

// PersistentMap is an immutable hash map
type PersistentMap[V any] struct {
	root  *hamtNode[V]
	count int
}

// hamtNode is a node in the HAMT
type hamtNode[V any] struct {
	bitmap uint32        // which indices are populated
	nodes  []interface{} // hamtEntry[V] or *hamtNode[V]
}

// hamtEntry holds a key-value pair
type hamtEntry[V any] struct {
	hash  uint32
	key   string
	value V
}

// EmptyMap returns an empty persistent map
func EmptyMap[V any]() *PersistentMap[V] {
	return &PersistentMap[V]{}
}

// Len returns the number of entries
func (m *PersistentMap[V]) Len() int {
	return m.count
}

// Get returns the value for a key
func (m *PersistentMap[V]) Get(key string) (V, bool) {
	if m.root == nil {
		var zero V
		return zero, false
	}
	return m.root.get(hashKey(key), key, 0)
}

// Contains checks if a key exists
func (m *PersistentMap[V]) Contains(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Put returns a new map with the key-value pair added/updated
func (m *PersistentMap[V]) Put(key string, value V) *PersistentMap[V] {
	root := m.root
	if root == nil {
		root = &hamtNode[V]{}
	}
	newRoot, added := root.put(hashKey(key), key, value, 0)

	newCount := m.count
	if added {
		newCount++
	}
	return &PersistentMap[V]{root: newRoot, count: newCount}
}

// Remove returns a new map with the key removed
func (m *PersistentMap[V]) Remove(key string) *PersistentMap[V] {
	if m.root == nil {
		return m
	}
	newRoot, removed := m.root.remove(hashKey(key), key, 0)
	if !removed {
		return m
	}
	return &PersistentMap[V]{root: newRoot, count: m.count - 1}
}

// Keys returns all keys in sorted order
func (m *PersistentMap[V]) Keys() []string {
	keys := make([]string, 0, m.count)
	if m.root != nil {
		m.root.collectKeys(&keys)
	}
	sort.Strings(keys)
	return keys
}

// --- hamtNode methods ---

func (n *hamtNode[V]) get(hash uint32, key string, shift uint) (V, bool) {
	var zero V
	if shift >= 32 {
		// Collision bucket search
		for _, node := range n.nodes {
			if entry, ok := node.(hamtEntry[V]); ok && entry.key == key {
				return entry.value, true
			}
		}
		return zero, false
	}

	idx := (hash >> shift) & hamtMask
	bit := uint32(1) << idx
	if n.bitmap&bit == 0 {
		return zero, false
	}

	switch v := n.nodes[index(n.bitmap, bit)].(type) {
	case hamtEntry[V]:
		if v.hash == hash && v.key == key {
			return v.value, true
		}
	case *hamtNode[V]:
		return v.get(hash, key, shift+hamtBits)
	}
	return zero, false
}

func (n *hamtNode[V]) put(hash uint32, key string, value V, shift uint) (*hamtNode[V], bool) {
	newNode := n.clone()
	entry := hamtEntry[V]{hash: hash, key: key, value: value}

	// Exhausted the hash bits: the node is a flat collision bucket.
	if shift >= 32 {
		for i, node := range newNode.nodes {
			if e, ok := node.(hamtEntry[V]); ok && e.key == key {
				newNode.nodes[i] = entry
				return newNode, false
			}
		}
		newNode.nodes = append(newNode.nodes, entry)
		return newNode, true
	}

	idx := (hash >> shift) & hamtMask
	bit := uint32(1) << idx

	if n.bitmap&bit == 0 {
		newNode.bitmap |= bit
		pos := index(newNode.bitmap, bit)
		newNode.nodes = append(newNode.nodes, nil)
		copy(newNode.nodes[pos+1:], newNode.nodes[pos:])
		newNode.nodes[pos] = entry
		return newNode, true
	}

	pos := index(n.bitmap, bit)
	switch v := newNode.nodes[pos].(type) {
	case hamtEntry[V]:
		if v.hash == hash && v.key == key {
			newNode.nodes[pos] = entry
			return newNode, false
		}
		// Push both entries one level down
		child := &hamtNode[V]{}
		child, _ = child.put(v.hash, v.key, v.value, shift+hamtBits)
		child, _ = child.put(hash, key, value, shift+hamtBits)
		newNode.nodes[pos] = child
		return newNode, true
	case *hamtNode[V]:
		newChild, added := v.put(hash, key, value, shift+hamtBits)
		newNode.nodes[pos] = newChild
		return newNode, added
	}
	return newNode, false
}

func (n *hamtNode[V]) remove(hash uint32, key string, shift uint) (*hamtNode[V], bool) {
	if shift >= 32 {
		for i, node := range n.nodes {
			if e, ok := node.(hamtEntry[V]); ok && e.key == key {
				return n.without(i, n.bitmap), true
			}
		}
		return n, false
	}

	idx := (hash >> shift) & hamtMask
	bit := uint32(1) << idx
	if n.bitmap&bit == 0 {
		return n, false
	}

	pos := index(n.bitmap, bit)
	switch v := n.nodes[pos].(type) {
	case hamtEntry[V]:
		if v.hash == hash && v.key == key {
			return n.without(pos, n.bitmap&^bit), true
		}
		return n, false
	case *hamtNode[V]:
		newChild, removed := v.remove(hash, key, shift+hamtBits)
		if !removed {
			return n, false
		}
		if len(newChild.nodes) == 0 {
			return n.without(pos, n.bitmap&^bit), true
		}
		newNode := n.clone()
		// A child holding a single entry collapses into this node.
		if len(newChild.nodes) == 1 {
			if entry, ok := newChild.nodes[0].(hamtEntry[V]); ok {
				newNode.nodes[pos] = entry
				return newNode, true
			}
		}
		newNode.nodes[pos] = newChild
		return newNode, true
	}
	return n, false
}

func (n *hamtNode[V]) clone() *hamtNode[V] {
	newNode := &hamtNode[V]{bitmap: n.bitmap, nodes: make([]interface{}, len(n.nodes))}
	copy(newNode.nodes, n.nodes)
	return newNode
}

func (n *hamtNode[V]) without(pos int, bitmap uint32) *hamtNode[V] {
	newNode := &hamtNode[V]{bitmap: bitmap, nodes: make([]interface{}, len(n.nodes)-1)}
	copy(newNode.nodes[:pos], n.nodes[:pos])
	copy(newNode.nodes[pos:], n.nodes[pos+1:])
	return newNode
}

func (n *hamtNode[V]) collectKeys(keys *[]string) {
	for _, node := range n.nodes {
		switch v := node.(type) {
		case hamtEntry[V]:
			*keys = append(*keys, v.key)
		case *hamtNode[V]:
			v.collectKeys(keys)
		}
	}
}

// --- Helper functions ---

func hashKey(key string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(key))
	return h.Sum32()
}

// index is the position of bit among the populated slots of bitmap.
func index(bitmap, bit uint32) int {
	return bits.OnesCount32(bitmap & (bit - 1))
}
