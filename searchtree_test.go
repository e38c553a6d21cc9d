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
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/ajwerner/searchtree/internal/abstract"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func forEachKind(t *testing.T, fn func(t *testing.T, kind Kind)) {
	for _, kind := range Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			t.Parallel()
			fn(t, kind)
		})
	}
}

func newIntMap(kind Kind, seed uint64) *Map[int, int] {
	return NewOrdered[int, int](kind, WithRand(rand.New(rand.NewPCG(seed, seed))))
}

func keysOf(m *Map[int, int]) []int {
	var keys []int
	m.Scan(func(k, _ int) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

func insertAll(t *testing.T, m *Map[int, int], keys ...int) {
	t.Helper()
	for _, k := range keys {
		require.True(t, m.Insert(k, k).Valid(), "insert %d", k)
	}
}

// TestRandomized runs a random workload against every kind and compares it
// with a builtin map.
func TestRandomized(t *testing.T) {
	forEachKind(t, func(t *testing.T, kind Kind) {
		const (
			numOps   = 20000
			keySpace = 700
		)
		rng := rand.New(rand.NewPCG(42, uint64(kind)))
		m := newIntMap(kind, 7)
		ref := make(map[int]int)
		for i := 0; i < numOps; i++ {
			k := rng.IntN(keySpace)
			_, present := ref[k]
			switch op := rng.IntN(6); op {
			case 0:
				it := m.Insert(k, i)
				require.Equal(t, !present, it.Valid(), "insert %d", k)
				if present {
					require.True(t, it.IsEnd())
					require.Equal(t, ref[k], m.Find(k).Value())
				} else {
					require.Equal(t, k, it.Key())
					ref[k] = i
				}
			case 1:
				require.Equal(t, !present, m.Upsert(k, i))
				ref[k] = i
			case 2, 3:
				require.Equal(t, present, m.Erase(k), "erase %d", k)
				delete(ref, k)
			case 4:
				v, ok := m.Get(k)
				require.Equal(t, present, ok)
				require.Equal(t, ref[k], v)
				if ok && kind == Splay {
					require.Equal(t, k, m.Root().Key())
				}
			case 5:
				*m.Ref(k)++
				ref[k]++
			}
			require.Equal(t, len(ref), m.Len())
			require.NoError(t, m.Check(), "after op %d", i)
		}
		require.NoError(t, m.Check())

		want := make([]int, 0, len(ref))
		for k := range ref {
			want = append(want, k)
		}
		slices.Sort(want)
		require.Equal(t, want, keysOf(m))
		for k, v := range ref {
			got, ok := m.Get(k)
			require.True(t, ok)
			require.Equal(t, v, got)
		}
	})
}

func TestSizeAccounting(t *testing.T) {
	forEachKind(t, func(t *testing.T, kind Kind) {
		const n = 300
		m := newIntMap(kind, 1)
		require.True(t, m.Empty())
		require.True(t, m.Begin().IsEnd())
		for i, k := range rand.New(rand.NewPCG(3, 4)).Perm(n) {
			m.Insert(k, k)
			require.Equal(t, i+1, m.Len())
		}
		require.True(t, m.Insert(17, 0).IsEnd())
		require.Equal(t, n, m.Len())
		v, _ := m.Get(17)
		require.Equal(t, 17, v, "duplicate insert must not overwrite")
		require.False(t, m.Erase(n+1))
		require.Equal(t, n, m.Len())
		require.NoError(t, m.Check())

		for i, k := range rand.New(rand.NewPCG(5, 6)).Perm(n) {
			require.True(t, m.Erase(k))
			require.Equal(t, n-i-1, m.Len())
		}
		require.True(t, m.Empty())
		require.Equal(t, 0, m.Height())
		require.False(t, m.Root().Valid())
		require.NoError(t, m.Check())
	})
}

func TestIteration(t *testing.T) {
	forEachKind(t, func(t *testing.T, kind Kind) {
		m := newIntMap(kind, 1)
		keys := rand.New(rand.NewPCG(8, 9)).Perm(200)
		insertAll(t, m, keys...)

		var fwd, back []int
		for it := m.Begin(); !it.IsEnd(); it.Next() {
			fwd = append(fwd, it.Key())
		}
		it := m.Iterator()
		for it.Last(); it.Valid(); it.Prev() {
			back = append(back, it.Key())
		}
		slices.Sort(keys)
		require.Equal(t, keys, fwd)
		slices.Reverse(back)
		require.Equal(t, keys, back)

		end := m.End()
		end.Next()
		require.True(t, end.IsEnd())
		end.Prev()
		require.Equal(t, 199, end.Key())
	})
}

func TestSeek(t *testing.T) {
	forEachKind(t, func(t *testing.T, kind Kind) {
		m := newIntMap(kind, 1)
		for k := 0; k < 100; k += 10 {
			m.Insert(k, k)
		}
		it := m.Iterator()
		it.SeekGE(15)
		require.Equal(t, 20, it.Key())
		it.SeekGE(20)
		require.Equal(t, 20, it.Key())
		it.SeekGE(-5)
		require.Equal(t, 0, it.Key())
		it.SeekGE(95)
		require.True(t, it.IsEnd())
		require.False(t, it.Valid())

		it.SeekLT(15)
		require.Equal(t, 10, it.Key())
		it.SeekLT(10)
		require.Equal(t, 0, it.Key())
		it.SeekLT(0)
		require.True(t, it.IsEnd())
		it.SeekLT(1000)
		require.Equal(t, 90, it.Key())
	})
}

func TestNthRank(t *testing.T) {
	forEachKind(t, func(t *testing.T, kind Kind) {
		rng := rand.New(rand.NewPCG(10, 11))
		m := newIntMap(kind, 1)
		seen := make(map[int]bool)
		for i := 0; i < 500; i++ {
			k := rng.IntN(5000) * 2
			if m.Upsert(k, k) {
				seen[k] = true
			}
		}
		sorted := make([]int, 0, len(seen))
		for k := range seen {
			sorted = append(sorted, k)
		}
		slices.Sort(sorted)

		for i, k := range sorted {
			require.Equal(t, k, m.Nth(i).Key())
			rank, ok := m.Rank(k)
			require.True(t, ok)
			require.Equal(t, i, rank)
			rank, ok = m.Rank(k + 1)
			require.False(t, ok)
			require.Equal(t, i+1, rank)
		}
		rank, ok := m.Rank(-1)
		require.False(t, ok)
		require.Equal(t, 0, rank)
		require.True(t, m.Nth(-1).IsEnd())
		require.True(t, m.Nth(len(sorted)).IsEnd())
	})
}

func TestEraseAt(t *testing.T) {
	forEachKind(t, func(t *testing.T, kind Kind) {
		m := newIntMap(kind, 1)
		insertAll(t, m, rand.New(rand.NewPCG(12, 13)).Perm(100)...)
		for k := 0; k < 100; k += 2 {
			m.EraseAt(m.Find(k))
		}
		require.Equal(t, 50, m.Len())
		require.NoError(t, m.Check())
		for _, k := range keysOf(m) {
			require.Equal(t, 1, k%2)
		}
		require.Panics(t, func() { m.EraseAt(m.End()) })
	})
}

func TestRef(t *testing.T) {
	forEachKind(t, func(t *testing.T, kind Kind) {
		m := NewOrdered[string, int](kind)
		words := strings.Fields("the quick brown fox jumps over the lazy dog the end")
		for _, w := range words {
			*m.Ref(w)++
		}
		require.Equal(t, 9, m.Len())
		n, ok := m.Get("the")
		require.True(t, ok)
		require.Equal(t, 3, n)
		n, _ = m.Get("fox")
		require.Equal(t, 1, n)
		require.NoError(t, m.Check())
	})
}

func TestClone(t *testing.T) {
	forEachKind(t, func(t *testing.T, kind Kind) {
		m := newIntMap(kind, 1)
		insertAll(t, m, rand.New(rand.NewPCG(14, 15)).Perm(100)...)
		shape := m.String()

		c := m.Clone()
		require.Equal(t, kind, c.Kind())
		require.Equal(t, shape, c.String())
		for k := 0; k < 100; k += 3 {
			m.Erase(k)
		}
		m.Insert(1000, 1000)
		c.Find(50).SetValue(-1)

		require.Equal(t, 100, c.Len())
		require.False(t, c.Contains(1000))
		require.True(t, c.Contains(0))
		v, _ := m.Get(50)
		require.Equal(t, 50, v)
		require.NoError(t, m.Check())
		require.NoError(t, c.Check())

		dst := newIntMap(Unbalanced, 1)
		insertAll(t, dst, 1, 2, 3)
		stale := dst.Find(2)
		dst.CopyFrom(m)
		require.False(t, stale.Valid())
		require.Equal(t, kind, dst.Kind())
		require.Equal(t, keysOf(m), keysOf(dst))
		m.Clear()
		require.NotZero(t, dst.Len())
		require.NoError(t, dst.Check())

		dst.CopyFrom(dst)
		require.NoError(t, dst.Check())
	})
}

func TestStaleIterator(t *testing.T) {
	m := newIntMap(Unbalanced, 1)
	insertAll(t, m, 1, 2, 3)
	it := m.Find(3)
	require.True(t, m.Erase(3))
	require.False(t, it.Valid())
	require.Panics(t, func() { it.Key() })
	require.Panics(t, func() { m.End().Key() })

	it = m.Find(1)
	m.Insert(3, 3)
	require.Equal(t, 1, it.Key())
	m.Clear()
	require.False(t, it.Valid())
	require.Panics(t, func() { it.Value() })
	m.Insert(1, 1)
	require.False(t, it.Valid())
}

func TestAVLScenario(t *testing.T) {
	m := newIntMap(AVL, 1)
	insertAll(t, m, 5, 3, 8, 1, 4, 7, 9)
	require.LessOrEqual(t, m.Height(), 4)
	require.Equal(t, []int{1, 3, 4, 5, 7, 8, 9}, keysOf(m))

	m.Clear()
	for k := 0; k < 1023; k++ {
		m.Insert(k, k)
	}
	// An AVL tree of height h holds at least fib(h+2)-1 entries.
	require.LessOrEqual(t, m.Height(), 14)
	require.NoError(t, m.Check())
}

func TestRedBlackScenario(t *testing.T) {
	m := newIntMap(RedBlack, 1)
	insertAll(t, m, 10, 20, 30)
	root := m.Root()
	require.Equal(t, 20, root.Key())
	require.Equal(t, black, m.t.Meta(m.t.Root()))
	require.Equal(t, 10, root.Left().Key())
	require.Equal(t, 30, root.Right().Key())
	require.Equal(t, red, m.t.Meta(m.t.Left(m.t.Root())))
	require.Equal(t, red, m.t.Meta(m.t.Right(m.t.Root())))

	m.Clear()
	for k := 0; k < 1023; k++ {
		m.Insert(k, k)
	}
	require.LessOrEqual(t, m.Height(), 20)
	require.NoError(t, m.Check())
}

func TestSplayScenario(t *testing.T) {
	m := newIntMap(Splay, 1)
	insertAll(t, m, 5, 3, 8, 1, 4, 7, 9)
	require.Equal(t, 9, m.Root().Key())

	require.Equal(t, 1, m.Find(1).Key())
	require.Equal(t, 1, m.Root().Key())
	require.Equal(t, 5, m.Find(5).Key())
	require.Equal(t, 5, m.Root().Key())

	// A miss splays the last node on the search path.
	require.True(t, m.Find(6).IsEnd())
	require.Equal(t, 7, m.Root().Key())

	*m.Ref(4)++
	require.Equal(t, 4, m.Root().Key())
	require.NoError(t, m.Check())

	m = newIntMap(Splay, 1)
	insertAll(t, m, 1, 2, 3, 4, 5)
	for _, k := range []int{1, 5, 3, 1} {
		require.Equal(t, k, m.Find(k).Key())
		require.Equal(t, k, m.Root().Key())
		require.NoError(t, m.Check())
	}
	require.True(t, m.Erase(3))
	require.NoError(t, m.Check())
	require.Equal(t, []int{1, 2, 4, 5}, keysOf(m))
}

func TestTwoChildErase(t *testing.T) {
	m := newIntMap(Unbalanced, 1)
	insertAll(t, m, 5, 3, 8, 7, 9)
	root := m.Root()
	require.True(t, m.Erase(5))
	require.True(t, root.Valid())
	require.True(t, root.Equal(m.Root()))
	require.Equal(t, 7, root.Key())
	require.Equal(t, 3, root.Left().Key())
	require.Equal(t, 8, root.Right().Key())
	require.False(t, root.Right().Left().IsInternal())
	require.NoError(t, m.Check())
}

func TestTreapHeapOrder(t *testing.T) {
	build := func() *Map[int, int] {
		m := newIntMap(Treap, 99)
		insertAll(t, m, rand.New(rand.NewPCG(16, 17)).Perm(1000)...)
		return m
	}
	m := build()
	require.NoError(t, m.Check())
	require.NoError(t, m.t.PostOrder(func(n abstract.Node) error {
		if p := m.t.Parent(n); p != m.t.End() {
			assert.GreaterOrEqual(t, m.t.Meta(n), m.t.Meta(p))
		}
		return nil
	}))
	// The expected height of a treap is logarithmic.
	require.Less(t, m.Height(), 60)
	require.Equal(t, m.String(), build().String())

	for k := 0; k < 1000; k += 2 {
		m.Erase(k)
	}
	require.NoError(t, m.Check())
}

func TestCheckDetectsCorruption(t *testing.T) {
	m := newIntMap(AVL, 1)
	insertAll(t, m, 1, 2, 3)
	m.t.SetMeta(m.t.Root(), 7)
	err := m.Check()
	require.Error(t, err)
	require.True(t, errors.IsAssertionFailure(err))

	rb := newIntMap(RedBlack, 1)
	insertAll(t, rb, 1, 2, 3)
	rb.t.SetMeta(rb.t.Root(), red)
	err = rb.Check()
	require.Error(t, err)
	require.True(t, errors.IsAssertionFailure(err))
	require.Contains(t, err.Error(), "balancer invariant")

	// Two red nodes in a row with a black root.
	rb.t.SetMeta(rb.t.Root(), black)
	rb.Insert(4, 4)
	rb.t.SetMeta(rb.t.Left(rb.t.Root()), black)
	rb.t.SetMeta(rb.t.Right(rb.t.Root()), red)
	err = rb.Check()
	require.Error(t, err)
	require.True(t, errors.IsAssertionFailure(err))

	tr := newIntMap(Treap, 1)
	insertAll(t, tr, 1, 2, 3)
	l := tr.t.Left(tr.t.Root())
	if !tr.t.IsInternal(l) {
		l = tr.t.Right(tr.t.Root())
	}
	tr.t.SetMeta(tr.t.Root(), tr.t.Meta(l)+1)
	err = tr.Check()
	require.Error(t, err)
	require.True(t, errors.IsAssertionFailure(err))

	// Structural violations are reported without involving the balancer.
	for _, kind := range Kinds() {
		s := newIntMap(kind, 1)
		insertAll(t, s, 2, 1, 3)
		s.t.Expand(s.t.Left(s.t.Nth(0)))
		err := s.Check()
		require.Error(t, err, kind.String())
		require.True(t, errors.IsAssertionFailure(err), kind.String())
		require.NotContains(t, err.Error(), "balancer invariant")
	}
}

func TestKind(t *testing.T) {
	for _, kind := range Kinds() {
		got, err := ParseKind(strings.ToUpper(kind.String()))
		require.NoError(t, err)
		require.Equal(t, kind, got)
	}
	_, err := ParseKind("btree")
	require.Error(t, err)
	require.Equal(t, "Kind(9)", Kind(9).String())
	require.Panics(t, func() { NewOrdered[int, int](Kind(9)) })
}

func TestString(t *testing.T) {
	m := newIntMap(AVL, 1)
	require.Contains(t, m.String(), "·")
	insertAll(t, m, 2, 1, 3)
	s := m.String()
	require.Equal(t, 4, strings.Count(s, "·"))
	require.Contains(t, s, "2 h=2")
	require.Contains(t, s, "1 h=1")

	rb := newIntMap(RedBlack, 1)
	insertAll(t, rb, 2, 1, 3)
	require.Contains(t, rb.String(), "2 (black)")
	require.Contains(t, rb.String(), "3 (red)")
}
