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

// Package searchtree implements ordered maps as binary search trees in
// which every leaf position is an explicit external node. All maps share
// one engine and differ only in how they rebalance: not at all, by height
// (AVL), by color (red-black), by splaying accessed nodes to the root, or
// by random priorities (treap).
//
// A Map is not safe for concurrent use. Lookups on a splay tree modify its
// shape, so even readers must be serialized.
package searchtree

import (
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/ajwerner/searchtree/internal/abstract"
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/constraints"
)

// Kind selects the rebalancing discipline of a Map.
type Kind int

const (
	// Unbalanced performs no rebalancing.
	Unbalanced Kind = iota
	// AVL keeps the heights of sibling subtrees within one of each other.
	AVL
	// RedBlack keeps every root-to-leaf path at the same black depth.
	RedBlack
	// Splay moves every accessed node to the root.
	Splay
	// Treap keeps random node priorities in heap order.
	Treap
)

var kindNames = [...]string{
	Unbalanced: "bst",
	AVL:        "avl",
	RedBlack:   "redblack",
	Splay:      "splay",
	Treap:      "treap",
}

// Kinds returns every Kind.
func Kinds() []Kind {
	return []Kind{Unbalanced, AVL, RedBlack, Splay, Treap}
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// ParseKind returns the Kind named s, as printed by Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(k), nil
		}
	}
	return 0, errors.Newf("unknown tree kind %q", s)
}

// Option configures a Map.
type Option func(*options)

type options struct {
	rng *rand.Rand
}

// WithRand makes a treap draw node priorities from r instead of the
// process-wide generator. It has no effect on other kinds. The generator
// is shared with clones of the Map.
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rng = r }
}

// Compare orders values of an ordered type.
func Compare[T constraints.Ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a == b:
		return 0
	default:
		return 1
	}
}

// New constructs an empty Map of the given kind which orders keys with cmp.
func New[K, V any](kind Kind, cmp func(K, K) int, opts ...Option) *Map[K, V] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	m := &Map[K, V]{kind: kind}
	m.t = abstract.MakeMap[K, V](cmp, newBalancer[K, V](kind, &o))
	return m
}

// NewOrdered constructs an empty Map of the given kind over an ordered key
// type.
func NewOrdered[K constraints.Ordered, V any](kind Kind, opts ...Option) *Map[K, V] {
	return New[K, V](kind, Compare[K], opts...)
}
