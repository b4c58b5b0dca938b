// Package hashindex implements the fixed-capacity, separately chained hash
// table that backs every record store.
//
// The bucket count is chosen at construction and never changes: there is no
// rehashing and no load-factor management. Chains grow at the head, so
// inserts are O(1) and lookups are O(1 + chain length).
package hashindex

import "hash/fnv"

const DefaultBuckets = 50

type entry[V any] struct {
	key   string
	value V
	next  *entry[V]
}

// Index maps string keys to values. It is not safe for concurrent use.
type Index[V any] struct {
	buckets []*entry[V]
	count   int
}

func New[V any](buckets int) *Index[V] {
	if buckets <= 0 {
		buckets = DefaultBuckets
	}
	return &Index[V]{buckets: make([]*entry[V], buckets)}
}

// Hash is 32-bit FNV-1a over the bytes of key.
func Hash(key string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(key))
	return h.Sum32()
}

func (ix *Index[V]) slot(key string) int {
	return int(Hash(key) % uint32(len(ix.buckets)))
}

// Put inserts v at the head of key's chain. An existing entry with the same
// key is shadowed, not replaced.
func (ix *Index[V]) Put(key string, v V) {
	i := ix.slot(key)
	ix.buckets[i] = &entry[V]{key: key, value: v, next: ix.buckets[i]}
	ix.count++
}

func (ix *Index[V]) Get(key string) (V, bool) {
	for e := ix.buckets[ix.slot(key)]; e != nil; e = e.next {
		if e.key == key {
			return e.value, true
		}
	}
	var zero V
	return zero, false
}

func (ix *Index[V]) Contains(key string) bool {
	_, ok := ix.Get(key)
	return ok
}

// Each walks every bucket in order and every chain from its head. Returning
// false from fn stops the walk.
func (ix *Index[V]) Each(fn func(key string, v V) bool) {
	for _, head := range ix.buckets {
		for e := head; e != nil; e = e.next {
			if !fn(e.key, e.value) {
				return
			}
		}
	}
}

// Values returns every stored value in Each order.
func (ix *Index[V]) Values() []V {
	out := make([]V, 0, ix.count)
	ix.Each(func(_ string, v V) bool {
		out = append(out, v)
		return true
	})
	return out
}

func (ix *Index[V]) Len() int { return ix.count }

func (ix *Index[V]) Buckets() int { return len(ix.buckets) }
