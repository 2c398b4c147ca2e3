package store

import "iter"

// orderedMap is a string-keyed map that remembers insertion order.
// It is not safe for concurrent use; each store guards its maps with its own lock.
type orderedMap[V any] struct {
	keys []string
	m    map[string]V
}

func newOrderedMap[V any]() *orderedMap[V] {
	return &orderedMap[V]{m: make(map[string]V)}
}

func (o *orderedMap[V]) get(key string) (V, bool) {
	v, ok := o.m[key]
	return v, ok
}

// set stores v under key. New keys go to the end; existing keys keep their position.
func (o *orderedMap[V]) set(key string, v V) {
	if _, exists := o.m[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.m[key] = v
}

func (o *orderedMap[V]) delete(key string) bool {
	if _, exists := o.m[key]; !exists {
		return false
	}
	delete(o.m, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	return true
}

func (o *orderedMap[V]) len() int {
	return len(o.keys)
}

// all yields entries in insertion order.
func (o *orderedMap[V]) all() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for _, k := range o.keys {
			if !yield(k, o.m[k]) {
				return
			}
		}
	}
}
