package searchtree

import "github.com/ajwerner/searchtree/internal/abstract"

// Iterator is a cursor over a Map. It is positioned at an entry, at the
// end, or, after Left or Right, at an empty leaf position.
//
// Iterators refer to tree nodes. Any mutation of the Map, and any lookup on
// a splay tree, may restructure the tree; re-derive iterators after such
// calls. Using an iterator whose node was removed panics.
type Iterator[K, V any] struct {
	it abstract.Iterator[K, V]
}

// Valid returns whether the Iterator is positioned at an entry.
func (it Iterator[K, V]) Valid() bool { return it.it.Valid() }

// IsEnd returns whether the Iterator is at the past-the-end position.
func (it Iterator[K, V]) IsEnd() bool { return it.it.IsEnd() }

// IsInternal returns whether the position holds an entry.
func (it Iterator[K, V]) IsInternal() bool { return it.it.IsInternal() }

// Key returns the current key. It panics if the Iterator is not valid.
func (it Iterator[K, V]) Key() K { return it.it.Key() }

// Value returns the current value. It panics if the Iterator is not valid.
func (it Iterator[K, V]) Value() V { return it.it.Value() }

// SetValue replaces the current value.
func (it Iterator[K, V]) SetValue(v V) { it.it.SetValue(v) }

func (it *Iterator[K, V]) First()       { it.it.First() }
func (it *Iterator[K, V]) Last()        { it.it.Last() }
func (it *Iterator[K, V]) Next()        { it.it.Next() }
func (it *Iterator[K, V]) Prev()        { it.it.Prev() }
func (it *Iterator[K, V]) SeekGE(key K) { it.it.SeekGE(key) }
func (it *Iterator[K, V]) SeekLT(key K) { it.it.SeekLT(key) }

// Left returns an Iterator positioned at the left child.
func (it Iterator[K, V]) Left() Iterator[K, V] { return Iterator[K, V]{it.it.Left()} }

// Right returns an Iterator positioned at the right child.
func (it Iterator[K, V]) Right() Iterator[K, V] { return Iterator[K, V]{it.it.Right()} }

// Parent returns an Iterator positioned at the parent. The parent of the
// root is the end.
func (it Iterator[K, V]) Parent() Iterator[K, V] { return Iterator[K, V]{it.it.Parent()} }

// Equal returns whether both iterators are at the same position.
func (it Iterator[K, V]) Equal(o Iterator[K, V]) bool { return it.it.Equal(&o.it) }
