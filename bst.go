package searchtree

import "github.com/ajwerner/searchtree/internal/abstract"

// bst never rebalances. Its depth is bounded only by the number of
// entries, which makes it the reference the other kinds are compared to.
type bst[K, V any] struct{}

func (bst[K, V]) Inserted(*abstract.Map[K, V], abstract.Node) {}

func (bst[K, V]) Accessed(*abstract.Map[K, V], abstract.Node) {}

func (bst[K, V]) Erase(t *abstract.Map[K, V], n abstract.Node) {
	t.RemoveEntry(n)
}
