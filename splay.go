package searchtree

import "github.com/ajwerner/searchtree/internal/abstract"

// splay keeps no shape invariant. Every access rotates the accessed node
// to the root, which bounds the total cost of m operations on n entries by
// O(m log n).
type splay[K, V any] struct{}

func (splay[K, V]) Inserted(t *abstract.Map[K, V], n abstract.Node) {
	splayToRoot(t, n)
}

// Accessed splays the node holding the key or, after a miss, the last
// internal node on the search path.
func (splay[K, V]) Accessed(t *abstract.Map[K, V], n abstract.Node) {
	if !t.IsInternal(n) {
		if n = t.Parent(n); n == t.End() {
			return
		}
	}
	splayToRoot(t, n)
}

func (splay[K, V]) Erase(t *abstract.Map[K, V], n abstract.Node) {
	r, _ := t.RemoveEntry(n)
	if p := t.Parent(r); p != t.End() {
		splayToRoot(t, p)
	}
}

func splayToRoot[K, V any](t *abstract.Map[K, V], u abstract.Node) {
	for !t.IsRoot(u) {
		p := t.Parent(u)
		if t.IsRoot(p) {
			// zig
			t.Rotate(u)
			return
		}
		g := t.Parent(p)
		if (u == t.Left(p)) == (p == t.Left(g)) {
			// zig-zig
			t.Rotate(p)
			t.Rotate(u)
		} else {
			// zig-zag
			t.Rotate(u)
			t.Rotate(u)
		}
	}
}
