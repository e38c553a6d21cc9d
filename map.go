// Copyright 2021 Andrew Werner.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package searchtree

import (
	"fmt"

	"github.com/ajwerner/searchtree/internal/abstract"
)

// Map is an ordered map from K to V.
type Map[K, V any] struct {
	kind Kind
	t    abstract.Map[K, V]
}

func newBalancer[K, V any](kind Kind, o *options) abstract.Balancer[K, V] {
	switch kind {
	case Unbalanced:
		return bst[K, V]{}
	case AVL:
		return avl[K, V]{}
	case RedBlack:
		return redBlack[K, V]{}
	case Splay:
		return splay[K, V]{}
	case Treap:
		return &treap[K, V]{rng: o.rng}
	default:
		panic(fmt.Sprintf("searchtree: unknown kind %d", int(kind)))
	}
}

func (m *Map[K, V]) iter(n abstract.Node) Iterator[K, V] {
	return Iterator[K, V]{it: m.t.IterAt(n)}
}

// Kind returns the rebalancing discipline of the Map.
func (m *Map[K, V]) Kind() Kind { return m.kind }

// Len returns the number of entries in the Map.
func (m *Map[K, V]) Len() int { return m.t.Len() }

// Empty returns whether the Map has no entries.
func (m *Map[K, V]) Empty() bool { return m.t.Len() == 0 }

// Find returns an Iterator positioned at k, or the end if k is absent.
func (m *Map[K, V]) Find(k K) Iterator[K, V] {
	return m.iter(m.t.Find(k))
}

// Get returns the value stored under k.
func (m *Map[K, V]) Get(k K) (v V, ok bool) {
	n := m.t.Find(k)
	if n == m.t.End() {
		return v, false
	}
	return m.t.Value(n), true
}

// Contains returns whether k is present.
func (m *Map[K, V]) Contains(k K) bool {
	return m.t.Find(k) != m.t.End()
}

// Insert adds k with value v and returns an Iterator positioned at the new
// entry. If k is already present the Map is not modified and the end is
// returned.
func (m *Map[K, V]) Insert(k K, v V) Iterator[K, V] {
	return m.iter(m.t.Insert(k, v))
}

// Ref returns a pointer to the value stored under k, inserting the zero
// value if k is absent. The pointer must not be used after the next
// mutation of the Map.
func (m *Map[K, V]) Ref(k K) *V { return m.t.Ref(k) }

// Upsert stores v under k, replacing any previous value. It returns
// whether a new entry was added.
func (m *Map[K, V]) Upsert(k K, v V) (added bool) { return m.t.Upsert(k, v) }

// Erase removes k. It returns false if k was not present.
func (m *Map[K, V]) Erase(k K) bool { return m.t.Erase(k) }

// EraseAt removes the entry under it, which must be valid. Iterators
// positioned at other entries may be invalidated as well.
func (m *Map[K, V]) EraseAt(it Iterator[K, V]) {
	if !it.Valid() {
		panic("searchtree: EraseAt called with an invalid iterator")
	}
	m.t.EraseNode(it.it.Node())
}

// Begin returns an Iterator positioned at the smallest key.
func (m *Map[K, V]) Begin() Iterator[K, V] { return m.iter(m.t.First()) }

// End returns the past-the-end Iterator.
func (m *Map[K, V]) End() Iterator[K, V] { return m.iter(m.t.End()) }

// Root returns an Iterator positioned at the root of the tree. It is not
// valid when the Map is empty.
func (m *Map[K, V]) Root() Iterator[K, V] { return m.iter(m.t.Root()) }

// Iterator returns an Iterator positioned at the end. Use First, Last or
// a seek to position it.
func (m *Map[K, V]) Iterator() Iterator[K, V] { return m.iter(m.t.End()) }

// Nth returns an Iterator positioned at the i-th smallest key, counting
// from zero, or the end if i is out of range.
func (m *Map[K, V]) Nth(i int) Iterator[K, V] { return m.iter(m.t.Nth(i)) }

// Rank returns the number of keys less than k and whether k is present.
func (m *Map[K, V]) Rank(k K) (int, bool) { return m.t.Rank(k) }

// Height returns the number of entries on the longest root-to-leaf path.
func (m *Map[K, V]) Height() int { return m.t.Height() }

// Clear removes every entry. All iterators are invalidated.
func (m *Map[K, V]) Clear() { m.t.Clear() }

// Clone returns an independent deep copy of the Map.
func (m *Map[K, V]) Clone() *Map[K, V] {
	return &Map[K, V]{kind: m.kind, t: m.t.Clone()}
}

// CopyFrom replaces the contents of m with a deep copy of src, including
// its kind. All iterators on m are invalidated.
func (m *Map[K, V]) CopyFrom(src *Map[K, V]) {
	m.t.CopyFrom(&src.t)
	m.kind = src.kind
}

// Check validates the invariants of the tree. A non-nil error is always an
// assertion failure and indicates a bug in this package.
func (m *Map[K, V]) Check() error { return m.t.Check() }

// String renders the shape of the tree.
func (m *Map[K, V]) String() string { return m.t.String() }

// Scan calls fn for every entry in ascending key order until fn returns
// false. fn must not modify the Map.
func (m *Map[K, V]) Scan(fn func(k K, v V) bool) {
	for n := m.t.First(); n != m.t.End(); n = m.t.Successor(n) {
		if !fn(m.t.Key(n), m.t.Value(n)) {
			return
		}
	}
}
