package abstract

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// String renders the tree with the root at the top. The left child of
// every node is listed before its right child and external nodes are shown
// as "·".
func (t *Map[K, V]) String() string {
	root := t.Root()
	if !t.IsInternal(root) {
		return treeprint.NewWithRoot("·").String()
	}
	tree := treeprint.NewWithRoot(t.label(root))
	type frame struct {
		n      Node
		branch treeprint.Tree
	}
	stack := []frame{{root, tree}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		c := t.np.at(f.n)
		for _, ch := range [2]Node{c.left, c.right} {
			if !t.IsInternal(ch) {
				f.branch.AddNode("·")
				continue
			}
			stack = append(stack, frame{ch, f.branch.AddBranch(t.label(ch))})
		}
	}
	return tree.String()
}

func (t *Map[K, V]) label(n Node) string {
	c := t.np.at(n)
	if d, ok := t.cfg.Balancer.(Describer[K, V]); ok {
		return fmt.Sprintf("%v %s", c.key, d.Describe(t, n))
	}
	return fmt.Sprintf("%v", c.key)
}
