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
	"github.com/ajwerner/searchtree/internal/abstract"
	"github.com/cockroachdb/errors"
)

// Colors are stored in node metadata. External nodes carry zero metadata
// and are therefore black.
const (
	black uint32 = 0
	red   uint32 = 1
)

// redBlack maintains the red-black properties:
//
//   - the root is black,
//   - every external node is black,
//   - the children of a red node are black,
//   - every path from the root to an external node has the same number of
//     black nodes.
type redBlack[K, V any] struct{}

func isRed[K, V any](t *abstract.Map[K, V], n abstract.Node) bool {
	return t.IsInternal(n) && t.Meta(n) == red
}

func (redBlack[K, V]) Inserted(t *abstract.Map[K, V], n abstract.Node) {
	if t.IsRoot(n) {
		t.SetMeta(n, black)
		return
	}
	t.SetMeta(n, red)
	remedyDoubleRed(t, n)
}

func (redBlack[K, V]) Accessed(*abstract.Map[K, V], abstract.Node) {}

func (redBlack[K, V]) Erase(t *abstract.Map[K, V], n abstract.Node) {
	r, removed := t.RemoveEntry(n)
	if t.IsRoot(r) || isRed(t, r) || removed == red {
		t.SetMeta(r, black)
		return
	}
	remedyDoubleBlack(t, r)
}

// remedyDoubleRed resolves a red node z with a red parent.
func remedyDoubleRed[K, V any](t *abstract.Map[K, V], z abstract.Node) {
	for {
		v := t.Parent(z)
		if t.IsRoot(v) || !isRed(t, v) {
			return
		}
		if !isRed(t, t.Sibling(v)) {
			v = t.Restructure(z)
			t.SetMeta(v, black)
			t.SetMeta(t.Left(v), red)
			t.SetMeta(t.Right(v), red)
			return
		}
		t.SetMeta(v, black)
		t.SetMeta(t.Sibling(v), black)
		u := t.Parent(v)
		if t.IsRoot(u) {
			return
		}
		t.SetMeta(u, red)
		z = u
	}
}

// remedyDoubleBlack resolves the black deficiency of r, which replaced a
// removed black node and is itself black.
func remedyDoubleBlack[K, V any](t *abstract.Map[K, V], r abstract.Node) {
	for {
		x, y := t.Parent(r), t.Sibling(r)
		if isRed(t, y) {
			// Rotate y above x so that r gets a black sibling, then
			// retry.
			z := t.Left(y)
			if y == t.Right(x) {
				z = t.Right(y)
			}
			t.Restructure(z)
			t.SetMeta(y, black)
			t.SetMeta(x, red)
			continue
		}
		if z := redChild(t, y); z != t.End() {
			top := t.Meta(x)
			z = t.Restructure(z)
			t.SetMeta(z, top)
			t.SetMeta(r, black)
			t.SetMeta(t.Left(z), black)
			t.SetMeta(t.Right(z), black)
			return
		}
		t.SetMeta(r, black)
		t.SetMeta(y, red)
		if isRed(t, x) || t.IsRoot(x) {
			t.SetMeta(x, black)
			return
		}
		r = x
	}
}

func redChild[K, V any](t *abstract.Map[K, V], y abstract.Node) abstract.Node {
	switch {
	case isRed(t, t.Left(y)):
		return t.Left(y)
	case isRed(t, t.Right(y)):
		return t.Right(y)
	default:
		return t.End()
	}
}

func (redBlack[K, V]) Describe(t *abstract.Map[K, V], n abstract.Node) string {
	if isRed(t, n) {
		return "(red)"
	}
	return "(black)"
}

func (redBlack[K, V]) Check(t *abstract.Map[K, V]) error {
	if isRed(t, t.Root()) {
		return errors.AssertionFailedf("root %v is red", t.Key(t.Root()))
	}
	// blackHeight holds, for every visited node, the number of black nodes
	// below it on any path to an external node.
	blackHeight := make(map[abstract.Node]int)
	below := func(n abstract.Node) int {
		if !t.IsInternal(n) {
			return 1
		}
		h := blackHeight[n]
		if !isRed(t, n) {
			h++
		}
		return h
	}
	return t.PostOrder(func(n abstract.Node) error {
		l, r := t.Left(n), t.Right(n)
		if isRed(t, n) && (isRed(t, l) || isRed(t, r)) {
			return errors.AssertionFailedf("red node %v has a red child", t.Key(n))
		}
		if t.Meta(n) != red && t.Meta(n) != black {
			return errors.AssertionFailedf("key %v: invalid color %d", t.Key(n), t.Meta(n))
		}
		hl, hr := below(l), below(r)
		if hl != hr {
			return errors.AssertionFailedf("key %v: black depth %d on the left, %d on the right",
				t.Key(n), hl, hr)
		}
		blackHeight[n] = hl
		return nil
	})
}
