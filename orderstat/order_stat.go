// Package orderstat provides a set with order statistics: the i-th smallest
// item and the rank of an item are found in time proportional to the depth
// of the underlying search tree.
package orderstat

import "github.com/ajwerner/searchtree"

// Item is an element of an OrderStatTree.
type Item[T any] interface {
	Less(T) bool
}

// OrderStatTree is an ordered set of items.
type OrderStatTree[T Item[T]] struct {
	m *searchtree.Map[T, struct{}]
}

func compare[T Item[T]](a, b T) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	default:
		return 0
	}
}

// MakeOrderStatTree constructs an empty OrderStatTree backed by a treap.
func MakeOrderStatTree[T Item[T]]() *OrderStatTree[T] {
	return MakeOrderStatTreeOfKind[T](searchtree.Treap)
}

// MakeOrderStatTreeOfKind constructs an empty OrderStatTree backed by a
// search tree of the given kind.
func MakeOrderStatTreeOfKind[T Item[T]](kind searchtree.Kind, opts ...searchtree.Option) *OrderStatTree[T] {
	return &OrderStatTree[T]{
		m: searchtree.New[T, struct{}](kind, compare[T], opts...),
	}
}

// Set adds v to the tree. It returns false if an equal item was present.
func (t *OrderStatTree[T]) Set(v T) (added bool) {
	return t.m.Insert(v, struct{}{}).Valid()
}

// Remove removes v from the tree.
func (t *OrderStatTree[T]) Remove(v T) (removed bool) {
	return t.m.Erase(v)
}

func (t *OrderStatTree[T]) Contains(v T) bool { return t.m.Contains(v) }

func (t *OrderStatTree[T]) Len() int { return t.m.Len() }

// Nth returns the i-th smallest item, counting from zero.
func (t *OrderStatTree[T]) Nth(i int) (v T, ok bool) {
	it := t.m.Nth(i)
	if !it.Valid() {
		return v, false
	}
	return it.Key(), true
}

// Rank returns the number of items less than v.
func (t *OrderStatTree[T]) Rank(v T) int {
	r, _ := t.m.Rank(v)
	return r
}

// Check validates the invariants of the underlying tree.
func (t *OrderStatTree[T]) Check() error { return t.m.Check() }

type OrderStatIterator[T Item[T]] struct {
	t  *OrderStatTree[T]
	it searchtree.Iterator[T, struct{}]
}

func (t *OrderStatTree[T]) MakeIter() OrderStatIterator[T] {
	return OrderStatIterator[T]{
		t:  t,
		it: t.m.Iterator(),
	}
}

// Nth positions the iterator at the i-th smallest item. The iterator is
// invalid if i is out of range.
func (it *OrderStatIterator[T]) Nth(i int) { it.it = it.t.m.Nth(i) }

func (it *OrderStatIterator[T]) SeekGE(v T)  { it.it.SeekGE(v) }
func (it *OrderStatIterator[T]) First()      { it.it.First() }
func (it *OrderStatIterator[T]) Last()       { it.it.Last() }
func (it *OrderStatIterator[T]) Next()       { it.it.Next() }
func (it *OrderStatIterator[T]) Prev()       { it.it.Prev() }
func (it *OrderStatIterator[T]) Valid() bool { return it.it.Valid() }
func (it *OrderStatIterator[T]) Cur() T      { return it.it.Key() }
