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

// The methods in this file are exposed to the balancers within this module.
// They operate on raw node handles and do not validate their arguments
// beyond what is needed to keep the pool consistent.

// End returns the super-root, which is the end position of iteration.
func (t *Map[K, V]) End() Node { return superRoot }

// Root returns the real root of the tree. It is an external node when the
// Map is empty.
func (t *Map[K, V]) Root() Node { return t.np.at(superRoot).left }

// IsRoot returns whether n is the real root.
func (t *Map[K, V]) IsRoot(n Node) bool { return t.np.at(n).parent == superRoot }

// IsInternal returns whether n holds an entry. The super-root is never
// internal.
func (t *Map[K, V]) IsInternal(n Node) bool {
	return n != superRoot && t.np.at(n).left != Nil
}

// Parent returns the parent of n.
func (t *Map[K, V]) Parent(n Node) Node { return t.np.at(n).parent }

// Left returns the left child of the internal node n.
func (t *Map[K, V]) Left(n Node) Node { return t.np.at(n).left }

// Right returns the right child of the internal node n.
func (t *Map[K, V]) Right(n Node) Node { return t.np.at(n).right }

// Sibling returns the other child of n's parent.
func (t *Map[K, V]) Sibling(n Node) Node {
	p := t.np.at(t.np.at(n).parent)
	if p.left == n {
		return p.right
	}
	return p.left
}

// Key returns the key held by n.
func (t *Map[K, V]) Key(n Node) K { return t.np.at(n).key }

// Value returns the value held by n.
func (t *Map[K, V]) Value(n Node) V { return t.np.at(n).value }

// Meta returns the balancer metadata of n. It is zero for external nodes.
func (t *Map[K, V]) Meta(n Node) uint32 { return t.np.at(n).meta }

// SetMeta sets the balancer metadata of n. Setting a non-zero value on an
// external node is not permitted.
func (t *Map[K, V]) SetMeta(n Node, m uint32) {
	c := t.np.at(n)
	if c.left == Nil {
		if m != 0 {
			panic("abstract: metadata set on an external node")
		}
		return
	}
	c.meta = m
}

// Size returns the number of entries in the subtree rooted at n.
func (t *Map[K, V]) Size(n Node) int { return int(t.np.at(n).size) }

// Expand turns the external node at into an internal node with two fresh
// external children. The sizes of its ancestors are incremented.
func (t *Map[K, V]) Expand(at Node) {
	if t.np.at(at).left != Nil {
		panic("abstract: Expand called on an internal node")
	}
	l, r := t.np.get(), t.np.get()
	c := t.np.at(at)
	c.left, c.right = l, r
	t.np.at(l).parent = at
	t.np.at(r).parent = at
	t.adjustSizes(at, 1)
}

func (t *Map[K, V]) adjustSizes(from Node, delta int32) {
	for p := from; p != Nil; p = t.np.at(p).parent {
		t.np.at(p).size += delta
	}
}

func (t *Map[K, V]) resize(n Node) {
	c := t.np.at(n)
	c.size = 1 + t.np.at(c.left).size + t.np.at(c.right).size
}

// replaceChild makes n take old's place under old's parent.
func (t *Map[K, V]) replaceChild(old, n Node) {
	p := t.np.at(old).parent
	pc := t.np.at(p)
	if pc.left == old {
		pc.left = n
	} else {
		pc.right = n
	}
	t.np.at(n).parent = p
}

// RemoveAboveExternal removes the external node at together with its
// parent v, which must be internal, and puts at's sibling in v's place.
// It returns the sibling and the metadata v held. The caller is
// responsible for the Map's length.
func (t *Map[K, V]) RemoveAboveExternal(at Node) (sibling Node, removedMeta uint32) {
	if t.np.at(at).left != Nil {
		panic("abstract: RemoveAboveExternal called on an internal node")
	}
	v := t.np.at(at).parent
	sibling = t.Sibling(at)
	t.replaceChild(v, sibling)
	t.adjustSizes(t.np.at(sibling).parent, -1)
	removedMeta = t.np.at(v).meta
	t.np.put(at)
	t.np.put(v)
	return sibling, removedMeta
}

// RemoveEntry physically removes the entry held by the internal node v.
// If both children of v are internal, the entry of v's in-order successor
// is copied onto v and the successor's node is removed instead. It returns
// the node which took the removed node's place and the removed node's
// metadata.
func (t *Map[K, V]) RemoveEntry(v Node) (Node, uint32) {
	c := t.np.at(v)
	var w Node
	switch {
	case !t.IsInternal(c.left):
		w = c.left
	case !t.IsInternal(c.right):
		w = c.right
	default:
		w = c.right
		for t.IsInternal(w) {
			w = t.np.at(w).left
		}
		u := t.np.at(t.np.at(w).parent)
		c.key, c.value = u.key, u.value
	}
	return t.RemoveAboveExternal(w)
}

// Restructure performs a trinode restructuring of x, its parent y and its
// grandparent z. The three nodes are relinked as a, b, c in key order with
// b on top, preserving the in-order sequence of the subtree. The new
// subtree root b is returned. Metadata is left untouched.
func (t *Map[K, V]) Restructure(x Node) Node {
	y := t.np.at(x).parent
	z := t.np.at(y).parent
	xc, yc, zc := t.np.at(x), t.np.at(y), t.np.at(z)
	var a, b, c, t0, t1, t2, t3 Node
	switch {
	case x == yc.left && y == zc.left:
		a, b, c = x, y, z
		t0, t1, t2, t3 = xc.left, xc.right, yc.right, zc.right
	case x == yc.left && y == zc.right:
		a, b, c = z, x, y
		t0, t1, t2, t3 = zc.left, xc.left, xc.right, yc.right
	case x == yc.right && y == zc.left:
		a, b, c = y, x, z
		t0, t1, t2, t3 = yc.left, xc.left, xc.right, zc.right
	default:
		a, b, c = z, y, x
		t0, t1, t2, t3 = zc.left, yc.left, xc.left, xc.right
	}
	t.replaceChild(z, b)
	t.link(b, a, c)
	t.link(a, t0, t1)
	t.link(c, t2, t3)
	t.resize(a)
	t.resize(c)
	t.resize(b)
	return b
}

func (t *Map[K, V]) link(p, l, r Node) {
	pc := t.np.at(p)
	pc.left, pc.right = l, r
	t.np.at(l).parent = p
	t.np.at(r).parent = p
}

// Rotate lifts the internal node x above its parent, which must not be the
// super-root.
func (t *Map[K, V]) Rotate(x Node) {
	y := t.np.at(x).parent
	xc, yc := t.np.at(x), t.np.at(y)
	t.replaceChild(y, x)
	if yc.left == x {
		yc.left = xc.right
		t.np.at(yc.left).parent = y
		xc.right = y
	} else {
		yc.right = xc.left
		t.np.at(yc.right).parent = y
		xc.left = y
	}
	yc.parent = x
	t.resize(y)
	t.resize(x)
}

// Successor returns the internal node following n in key order, or End.
func (t *Map[K, V]) Successor(n Node) Node {
	if r := t.np.at(n).right; t.IsInternal(r) {
		return t.leftmost(r)
	}
	p, w := n, t.np.at(n).parent
	for w != superRoot && p == t.np.at(w).right {
		p, w = w, t.np.at(w).parent
	}
	return w
}

// Predecessor returns the internal node preceding n in key order, or End.
func (t *Map[K, V]) Predecessor(n Node) Node {
	if l := t.np.at(n).left; t.IsInternal(l) {
		return t.rightmost(l)
	}
	p, w := n, t.np.at(n).parent
	for w != superRoot && p == t.np.at(w).left {
		p, w = w, t.np.at(w).parent
	}
	return w
}

// First returns the internal node with the smallest key, or End.
func (t *Map[K, V]) First() Node {
	if r := t.Root(); t.IsInternal(r) {
		return t.leftmost(r)
	}
	return superRoot
}

// Last returns the internal node with the largest key, or End.
func (t *Map[K, V]) Last() Node {
	if r := t.Root(); t.IsInternal(r) {
		return t.rightmost(r)
	}
	return superRoot
}

func (t *Map[K, V]) leftmost(n Node) Node {
	for l := t.np.at(n).left; t.IsInternal(l); l = t.np.at(n).left {
		n = l
	}
	return n
}

func (t *Map[K, V]) rightmost(n Node) Node {
	for r := t.np.at(n).right; t.IsInternal(r); r = t.np.at(n).right {
		n = r
	}
	return n
}

// PostOrder calls fn for every internal node, children before parents. It
// stops at the first error.
func (t *Map[K, V]) PostOrder(fn func(n Node) error) error {
	type frame struct {
		n        Node
		expanded bool
	}
	stack := []frame{{n: t.Root()}}
	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		if !t.IsInternal(f.n) {
			stack = stack[:len(stack)-1]
			continue
		}
		if f.expanded {
			n := f.n
			stack = stack[:len(stack)-1]
			if err := fn(n); err != nil {
				return err
			}
			continue
		}
		f.expanded = true
		c := t.np.at(f.n)
		stack = append(stack, frame{n: c.right}, frame{n: c.left})
	}
	return nil
}
