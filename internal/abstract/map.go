// Copyright 2018 The Cockroach Authors.
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

package abstract

// Map is a binary search tree in which every leaf position is an explicit
// external node. The shape of the tree is maintained by the configured
// Balancer.
//
// Map is not safe for concurrent use, not even for reads: lookups on some
// balancers restructure the tree.
type Map[K, V any] struct {
	cfg    Config[K, V]
	np     nodePool[K, V]
	length int

	// epoch invalidates every Iterator when the pool is replaced.
	epoch uint32
}

// MakeMap constructs an empty Map.
func MakeMap[K, V any](cmp func(K, K) int, b Balancer[K, V]) Map[K, V] {
	t := Map[K, V]{cfg: makeConfig(cmp, b)}
	t.reset()
	return t
}

func (t *Map[K, V]) reset() {
	t.np = makeNodePool[K, V]()
	s := t.np.get()
	e := t.np.get()
	t.np.at(s).left = e
	t.np.at(e).parent = s
	t.length = 0
	t.epoch++
}

// Config returns the Map's config.
func (t *Map[K, V]) Config() *Config[K, V] { return &t.cfg }

// Len returns the number of entries in the Map.
func (t *Map[K, V]) Len() int { return t.length }

// finder walks down from the root and stops at the internal node holding k
// or at the external node where k belongs.
func (t *Map[K, V]) finder(k K) Node {
	u := t.Root()
	for {
		c := t.np.at(u)
		if c.left == Nil {
			return u
		}
		switch cmp := t.cfg.cmp(k, c.key); {
		case cmp < 0:
			u = c.left
		case cmp > 0:
			u = c.right
		default:
			return u
		}
	}
}

// Find returns the node holding k or End if k is not present.
func (t *Map[K, V]) Find(k K) Node {
	u := t.finder(k)
	t.cfg.Balancer.Accessed(t, u)
	if !t.IsInternal(u) {
		return superRoot
	}
	return u
}

// Insert adds k with value v. If k is already present the Map is left
// unmodified and End is returned.
func (t *Map[K, V]) Insert(k K, v V) Node {
	u := t.finder(k)
	if t.IsInternal(u) {
		return superRoot
	}
	t.insertAt(u, k, v)
	return u
}

func (t *Map[K, V]) insertAt(u Node, k K, v V) {
	t.Expand(u)
	c := t.np.at(u)
	c.key, c.value = k, v
	t.length++
	t.cfg.Balancer.Inserted(t, u)
}

// Ref returns a pointer to the value stored under k, inserting the zero
// value first if k is absent. The pointer is valid until the next
// mutation of the Map.
func (t *Map[K, V]) Ref(k K) *V {
	u := t.finder(k)
	if t.IsInternal(u) {
		t.cfg.Balancer.Accessed(t, u)
	} else {
		var zero V
		t.insertAt(u, k, zero)
	}
	return &t.np.at(u).value
}

// Upsert inserts k with value v or overwrites the value of an existing
// entry. It returns whether an entry was added.
func (t *Map[K, V]) Upsert(k K, v V) (added bool) {
	u := t.finder(k)
	if t.IsInternal(u) {
		t.np.at(u).value = v
		t.cfg.Balancer.Accessed(t, u)
		return false
	}
	t.insertAt(u, k, v)
	return true
}

// Erase removes k from the Map. It is a no-op returning false if k is not
// present.
func (t *Map[K, V]) Erase(k K) bool {
	u := t.finder(k)
	if !t.IsInternal(u) {
		return false
	}
	t.EraseNode(u)
	return true
}

// EraseNode removes the entry held by the internal node n.
func (t *Map[K, V]) EraseNode(n Node) {
	if n == superRoot || !t.IsInternal(n) {
		panic("abstract: EraseNode called on a node which holds no entry")
	}
	t.cfg.Balancer.Erase(t, n)
	t.length--
}

// Clear removes all entries from the Map. Every outstanding Iterator is
// invalidated.
func (t *Map[K, V]) Clear() {
	epoch := t.epoch
	t.reset()
	t.epoch = epoch + 1
}

// Clone returns a deep copy of the Map, including the balancer metadata of
// every node. The Balancer itself is shared.
func (t *Map[K, V]) Clone() Map[K, V] {
	return Map[K, V]{
		cfg:    t.cfg,
		np:     t.np.clone(),
		length: t.length,
		epoch:  1,
	}
}

// CopyFrom replaces the contents of the Map with a deep copy of src.
// Every outstanding Iterator on the receiver is invalidated.
func (t *Map[K, V]) CopyFrom(src *Map[K, V]) {
	if t == src {
		return
	}
	c := src.Clone()
	c.epoch = t.epoch + 1
	*t = c
}

// Nth returns the internal node holding the i-th smallest key, counting
// from zero, or End if i is out of range.
func (t *Map[K, V]) Nth(i int) Node {
	if i < 0 || i >= t.length {
		return superRoot
	}
	n := t.Root()
	for {
		c := t.np.at(n)
		l := int(t.np.at(c.left).size)
		switch {
		case i < l:
			n = c.left
		case i == l:
			return n
		default:
			i -= l + 1
			n = c.right
		}
	}
}

// Rank returns the number of keys in the Map which are less than k and
// whether k itself is present.
func (t *Map[K, V]) Rank(k K) (rank int, found bool) {
	n := t.Root()
	for t.IsInternal(n) {
		c := t.np.at(n)
		switch cmp := t.cfg.cmp(k, c.key); {
		case cmp < 0:
			n = c.left
		case cmp > 0:
			rank += int(t.np.at(c.left).size) + 1
			n = c.right
		default:
			return rank + int(t.np.at(c.left).size), true
		}
	}
	return rank, false
}

// Height returns the number of internal nodes on the longest path from the
// root to an external node.
func (t *Map[K, V]) Height() int {
	type frame struct {
		n     Node
		depth int
	}
	var h int
	stack := []frame{{t.Root(), 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		c := t.np.at(f.n)
		if c.left == Nil {
			h = max(h, f.depth)
			continue
		}
		stack = append(stack, frame{c.left, f.depth + 1}, frame{c.right, f.depth + 1})
	}
	return h
}
