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

// Config is used to configure the tree. It consists of a comparison function
// for keys and the Balancer which maintains the shape of the tree.
type Config[K, V any] struct {

	// Balancer repairs the tree after structural mutations.
	Balancer Balancer[K, V]

	cmp func(K, K) int
}

// Balancer is the rebalancing discipline of a Map. The engine performs the
// search and the structural mutation and then hands the affected node to
// the Balancer, which walks back toward the root repairing its invariant.
type Balancer[K, V any] interface {

	// Inserted is called after the external node n was expanded into an
	// internal node holding a newly inserted entry.
	Inserted(t *Map[K, V], n Node)

	// Erase removes the entry held by the internal node n. Implementations
	// call RemoveEntry or RemoveAboveExternal to perform the splice.
	Erase(t *Map[K, V], n Node)

	// Accessed is called after a lookup stopped at n, which is either the
	// internal node holding the key or the external node where it would
	// be inserted.
	Accessed(t *Map[K, V], n Node)
}

// Checker is implemented by balancers which maintain an invariant beyond
// the ordering of keys.
type Checker[K, V any] interface {
	Check(t *Map[K, V]) error
}

// Describer is implemented by balancers which annotate nodes when the tree
// is printed.
type Describer[K, V any] interface {
	Describe(t *Map[K, V], n Node) string
}

// Compare compares two keys using the same comparison function as the Map.
func (c *Config[K, V]) Compare(a, b K) int { return c.cmp(a, b) }

func makeConfig[K, V any](cmp func(K, K) int, b Balancer[K, V]) (c Config[K, V]) {
	c.Balancer = b
	c.cmp = cmp
	return c
}
