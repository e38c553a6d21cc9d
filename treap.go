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
	"math/rand/v2"

	"github.com/ajwerner/searchtree/internal/abstract"
	"github.com/cockroachdb/errors"
)

// treap assigns every entry a random priority, kept in node metadata, and
// maintains heap order on it: a node's priority is never larger than the
// priorities of its internal children. Smaller priorities sit nearer the
// root.
type treap[K, V any] struct {
	rng *rand.Rand
}

func (b *treap[K, V]) priority() uint32 {
	if b.rng != nil {
		return b.rng.Uint32()
	}
	return rand.Uint32()
}

func (b *treap[K, V]) Inserted(t *abstract.Map[K, V], n abstract.Node) {
	t.SetMeta(n, b.priority())
	for !t.IsRoot(n) && t.Meta(n) < t.Meta(t.Parent(n)) {
		t.Rotate(n)
	}
}

func (b *treap[K, V]) Accessed(*abstract.Map[K, V], abstract.Node) {}

// Erase rotates n down, always lifting the child with the smaller priority,
// until one of its children is external, and then splices it out.
func (b *treap[K, V]) Erase(t *abstract.Map[K, V], n abstract.Node) {
	for {
		l, r := t.Left(n), t.Right(n)
		switch {
		case !t.IsInternal(l):
			t.RemoveAboveExternal(l)
			return
		case !t.IsInternal(r):
			t.RemoveAboveExternal(r)
			return
		case t.Meta(l) < t.Meta(r):
			t.Rotate(l)
		default:
			t.Rotate(r)
		}
	}
}

func (b *treap[K, V]) Describe(t *abstract.Map[K, V], n abstract.Node) string {
	return fmt.Sprintf("p=%d", t.Meta(n))
}

func (b *treap[K, V]) Check(t *abstract.Map[K, V]) error {
	return t.PostOrder(func(n abstract.Node) error {
		for _, c := range [2]abstract.Node{t.Left(n), t.Right(n)} {
			if t.IsInternal(c) && t.Meta(c) < t.Meta(n) {
				return errors.AssertionFailedf("key %v: priority %d above child %v with priority %d",
					t.Key(n), t.Meta(n), t.Key(c), t.Meta(c))
			}
		}
		return nil
	})
}
