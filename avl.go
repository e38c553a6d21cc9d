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
	"github.com/cockroachdb/errors"
)

// avl maintains the height-balance property: the heights of the two
// children of every internal node differ by at most one. The height of a
// node is kept in its metadata; external nodes have height zero.
type avl[K, V any] struct{}

func (avl[K, V]) Inserted(t *abstract.Map[K, V], n abstract.Node) {
	setHeight(t, n)
	rebalanceAVL(t, n, true /* insertion */)
}

func (avl[K, V]) Accessed(*abstract.Map[K, V], abstract.Node) {}

func (avl[K, V]) Erase(t *abstract.Map[K, V], n abstract.Node) {
	r, _ := t.RemoveEntry(n)
	rebalanceAVL(t, r, false /* insertion */)
}

func (avl[K, V]) Describe(t *abstract.Map[K, V], n abstract.Node) string {
	return fmt.Sprintf("h=%d", height(t, n))
}

func (avl[K, V]) Check(t *abstract.Map[K, V]) error {
	return t.PostOrder(func(n abstract.Node) error {
		hl, hr := height(t, t.Left(n)), height(t, t.Right(n))
		if want := 1 + max(hl, hr); height(t, n) != want {
			return errors.AssertionFailedf("key %v: height %d, want %d", t.Key(n), height(t, n), want)
		}
		if hl-hr > 1 || hr-hl > 1 {
			return errors.AssertionFailedf("key %v: child heights %d and %d", t.Key(n), hl, hr)
		}
		return nil
	})
}

func height[K, V any](t *abstract.Map[K, V], n abstract.Node) int {
	if !t.IsInternal(n) {
		return 0
	}
	return int(t.Meta(n))
}

func setHeight[K, V any](t *abstract.Map[K, V], n abstract.Node) {
	t.SetMeta(n, uint32(1+max(height(t, t.Left(n)), height(t, t.Right(n)))))
}

func isBalanced[K, V any](t *abstract.Map[K, V], n abstract.Node) bool {
	d := height(t, t.Left(n)) - height(t, t.Right(n))
	return -1 <= d && d <= 1
}

// tallGrandchild returns the child of z's taller child which is itself
// taller. Ties prefer the grandchild aligned with the child, which makes
// the restructuring a single rotation.
func tallGrandchild[K, V any](t *abstract.Map[K, V], z abstract.Node) abstract.Node {
	zl, zr := t.Left(z), t.Right(z)
	if height(t, zl) >= height(t, zr) {
		if height(t, t.Left(zl)) >= height(t, t.Right(zl)) {
			return t.Left(zl)
		}
		return t.Right(zl)
	}
	if height(t, t.Right(zr)) >= height(t, t.Left(zr)) {
		return t.Right(zr)
	}
	return t.Left(zr)
}

// rebalanceAVL walks from v to the root updating heights and restructuring
// every unbalanced ancestor. After an insertion a single restructuring
// restores the subtree to its previous height, so the walk stops there.
func rebalanceAVL[K, V any](t *abstract.Map[K, V], v abstract.Node, insertion bool) {
	for z := v; !t.IsRoot(z); {
		z = t.Parent(z)
		setHeight(t, z)
		if isBalanced(t, z) {
			continue
		}
		z = t.Restructure(tallGrandchild(t, z))
		setHeight(t, t.Left(z))
		setHeight(t, t.Right(z))
		setHeight(t, z)
		if insertion {
			return
		}
	}
}
