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

// Node is a handle to a cell in a Map's node pool. A handle identifies the
// same cell until it is freed by a removal, so it survives rotations.
type Node int32

// Nil is the child of an external node and the parent of the super-root.
const Nil Node = -1

// superRoot is the first cell allocated by every pool. Its left child is
// the real root and it doubles as the end position of iteration.
const superRoot Node = 0

const (
	chunkShift = 7
	chunkSize  = 1 << chunkShift
	chunkMask  = chunkSize - 1
)

type node[K, V any] struct {
	key    K
	value  V
	parent Node
	left   Node
	right  Node

	// size is the number of internal nodes in the subtree, zero for
	// external nodes.
	size int32

	// meta is owned by the Balancer.
	meta uint32

	// gen is incremented every time the cell is freed.
	gen uint32
}

// nodePool hands out cells from fixed size chunks so that a cell never
// moves once allocated; pointers into a cell stay good until it is freed.
// Freed cells are threaded through their parent field.
type nodePool[K, V any] struct {
	chunks [][]node[K, V]
	used   int32
	free   Node
	nFree  int32
}

func makeNodePool[K, V any]() nodePool[K, V] {
	return nodePool[K, V]{free: Nil}
}

func (np *nodePool[K, V]) at(n Node) *node[K, V] {
	return &np.chunks[n>>chunkShift][n&chunkMask]
}

// contains returns whether n refers to a cell which was handed out.
func (np *nodePool[K, V]) contains(n Node) bool {
	return n >= 0 && int32(n) < np.used
}

func (np *nodePool[K, V]) get() Node {
	if np.free != Nil {
		n := np.free
		c := np.at(n)
		np.free = c.parent
		np.nFree--
		*c = node[K, V]{parent: Nil, left: Nil, right: Nil, gen: c.gen}
		return n
	}
	if int(np.used) == len(np.chunks)*chunkSize {
		np.chunks = append(np.chunks, make([]node[K, V], chunkSize))
	}
	n := Node(np.used)
	np.used++
	*np.at(n) = node[K, V]{parent: Nil, left: Nil, right: Nil}
	return n
}

func (np *nodePool[K, V]) put(n Node) {
	c := np.at(n)
	*c = node[K, V]{parent: np.free, left: Nil, right: Nil, gen: c.gen + 1}
	np.free = n
	np.nFree++
}

// clone copies every chunk; the copy shares nothing with the receiver.
func (np *nodePool[K, V]) clone() nodePool[K, V] {
	c := *np
	c.chunks = make([][]node[K, V], len(np.chunks))
	for i, ch := range np.chunks {
		c.chunks[i] = append([]node[K, V](nil), ch...)
	}
	return c
}
