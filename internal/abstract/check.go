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

import "github.com/cockroachdb/errors"

// Check validates the structure of the tree: children and parent links,
// subtree sizes, the length and the strict ordering of keys. If the
// Balancer implements Checker its invariant is validated as well. Every
// violation is reported as an assertion failure.
func (t *Map[K, V]) Check() error {
	s := t.np.at(superRoot)
	if s.right != Nil || s.parent != Nil {
		return errors.AssertionFailedf("super-root is linked into the tree")
	}
	if root := t.Root(); t.np.at(root).parent != superRoot {
		return errors.AssertionFailedf("root %d has parent %d", root, t.np.at(root).parent)
	}
	var internal int
	if err := t.PostOrder(func(n Node) error {
		internal++
		c := t.np.at(n)
		if c.right == Nil {
			return errors.AssertionFailedf("internal node %d has no right child", n)
		}
		for _, ch := range [2]Node{c.left, c.right} {
			cc := t.np.at(ch)
			if cc.parent != n {
				return errors.AssertionFailedf("node %d has parent %d, want %d", ch, cc.parent, n)
			}
			if cc.left == Nil && (cc.right != Nil || cc.size != 0 || cc.meta != 0) {
				return errors.AssertionFailedf("external node %d carries data", ch)
			}
		}
		if want := 1 + t.np.at(c.left).size + t.np.at(c.right).size; c.size != want {
			return errors.AssertionFailedf("node %d has size %d, want %d", n, c.size, want)
		}
		return nil
	}); err != nil {
		return err
	}
	if internal != t.length {
		return errors.AssertionFailedf("found %d entries, length is %d", internal, t.length)
	}
	if int(t.np.at(t.Root()).size) != t.length {
		return errors.AssertionFailedf("root size %d, length is %d", t.np.at(t.Root()).size, t.length)
	}
	if live := int(t.np.used-t.np.nFree) - 1; live != 2*t.length+1 {
		return errors.AssertionFailedf("%d live nodes for %d entries", live, t.length)
	}
	prev := superRoot
	for n := t.First(); n != superRoot; n = t.Successor(n) {
		if prev != superRoot && t.cfg.cmp(t.np.at(prev).key, t.np.at(n).key) >= 0 {
			return errors.AssertionFailedf("keys out of order: %v before %v",
				t.np.at(prev).key, t.np.at(n).key)
		}
		prev = n
	}
	if c, ok := t.cfg.Balancer.(Checker[K, V]); ok {
		if err := c.Check(t); err != nil {
			return errors.NewAssertionErrorWithWrappedErrf(err, "balancer invariant")
		}
	}
	return nil
}
