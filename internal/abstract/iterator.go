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

// Iterator is a cursor over the nodes of a Map. It may be positioned at an
// internal node, at an external node reached through Left or Right, or at
// the end position.
//
// An Iterator refers to a node, not to a key. A mutation of the Map may
// free the node or move it elsewhere in the tree; using an Iterator whose
// node was freed panics.
type Iterator[K, V any] struct {
	r     *Map[K, V]
	n     Node
	gen   uint32
	epoch uint32
}

// MakeIter returns an Iterator positioned at the end.
func (t *Map[K, V]) MakeIter() Iterator[K, V] {
	return t.IterAt(superRoot)
}

// IterAt returns an Iterator positioned at n.
func (t *Map[K, V]) IterAt(n Node) Iterator[K, V] {
	i := Iterator[K, V]{r: t}
	i.setNode(n)
	return i
}

func (i *Iterator[K, V]) setNode(n Node) {
	i.n = n
	i.gen = i.r.np.at(n).gen
	i.epoch = i.r.epoch
}

func (i *Iterator[K, V]) live() bool {
	return i.r != nil && i.epoch == i.r.epoch &&
		i.r.np.contains(i.n) && i.r.np.at(i.n).gen == i.gen
}

func (i *Iterator[K, V]) mustBeLive() {
	if !i.live() {
		panic("abstract: use of an iterator whose node was removed from the tree")
	}
}

func (i *Iterator[K, V]) mustBeValid() {
	i.mustBeLive()
	if !i.r.IsInternal(i.n) {
		panic("abstract: iterator is not positioned at an entry")
	}
}

// Node returns the node the Iterator is positioned at.
func (i *Iterator[K, V]) Node() Node { return i.n }

// Valid returns whether the Iterator is positioned at an entry.
func (i *Iterator[K, V]) Valid() bool {
	return i.live() && i.r.IsInternal(i.n)
}

// IsEnd returns whether the Iterator is positioned at the end.
func (i *Iterator[K, V]) IsEnd() bool {
	return i.live() && i.n == superRoot
}

// IsInternal returns whether the node under the Iterator holds an entry.
func (i *Iterator[K, V]) IsInternal() bool { return i.Valid() }

// Key returns the key at the Iterator's current position. It panics if the
// Iterator is not valid.
func (i *Iterator[K, V]) Key() K {
	i.mustBeValid()
	return i.r.np.at(i.n).key
}

// Value returns the value at the Iterator's current position. It panics if
// the Iterator is not valid.
func (i *Iterator[K, V]) Value() V {
	i.mustBeValid()
	return i.r.np.at(i.n).value
}

// SetValue overwrites the value at the Iterator's current position.
func (i *Iterator[K, V]) SetValue(v V) {
	i.mustBeValid()
	i.r.np.at(i.n).value = v
}

// Left returns an Iterator positioned at the left child.
func (i *Iterator[K, V]) Left() Iterator[K, V] {
	i.mustBeValid()
	return i.r.IterAt(i.r.Left(i.n))
}

// Right returns an Iterator positioned at the right child.
func (i *Iterator[K, V]) Right() Iterator[K, V] {
	i.mustBeValid()
	return i.r.IterAt(i.r.Right(i.n))
}

// Parent returns an Iterator positioned at the parent. The parent of the
// root is the end position.
func (i *Iterator[K, V]) Parent() Iterator[K, V] {
	i.mustBeLive()
	if i.n == superRoot {
		panic("abstract: the end position has no parent")
	}
	return i.r.IterAt(i.r.Parent(i.n))
}

// Equal returns whether both iterators are positioned at the same node of
// the same Map.
func (i *Iterator[K, V]) Equal(o *Iterator[K, V]) bool {
	return i.r == o.r && i.n == o.n && i.gen == o.gen && i.epoch == o.epoch
}

// First seeks to the first key in the Map.
func (i *Iterator[K, V]) First() {
	i.setNode(i.r.First())
}

// Last seeks to the last key in the Map.
func (i *Iterator[K, V]) Last() {
	i.setNode(i.r.Last())
}

// Next positions the Iterator to the key immediately following its current
// position. Next at the end position is a no-op.
func (i *Iterator[K, V]) Next() {
	i.mustBeLive()
	if i.n == superRoot {
		return
	}
	i.mustBeValid()
	i.setNode(i.r.Successor(i.n))
}

// Prev positions the Iterator to the key immediately preceding its current
// position. Prev at the end position moves to the last key.
func (i *Iterator[K, V]) Prev() {
	i.mustBeLive()
	if i.n == superRoot {
		i.Last()
		return
	}
	i.mustBeValid()
	i.setNode(i.r.Predecessor(i.n))
}

// SeekGE seeks to the first key greater-than or equal to the provided
// key.
func (i *Iterator[K, V]) SeekGE(key K) {
	t := i.r
	ge := superRoot
	for n := t.Root(); t.IsInternal(n); {
		c := t.np.at(n)
		switch cmp := t.cfg.cmp(key, c.key); {
		case cmp < 0:
			ge, n = n, c.left
		case cmp > 0:
			n = c.right
		default:
			i.setNode(n)
			return
		}
	}
	i.setNode(ge)
}

// SeekLT seeks to the first key less-than the provided key.
func (i *Iterator[K, V]) SeekLT(key K) {
	t := i.r
	lt := superRoot
	for n := t.Root(); t.IsInternal(n); {
		c := t.np.at(n)
		if t.cfg.cmp(c.key, key) < 0 {
			lt, n = n, c.right
		} else {
			n = c.left
		}
	}
	i.setNode(lt)
}
