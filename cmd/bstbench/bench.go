package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/ajwerner/searchtree"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

var runCmd = &cli.Command{
	Name:  "run",
	Usage: "replay one random workload against several tree kinds",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "kind",
			Usage:   "tree kinds to run",
			Value:   cli.NewStringSlice(kindNames()...),
			EnvVars: []string{"BSTBENCH_KIND"},
		},
		&cli.IntFlag{
			Name:    "n",
			Usage:   "number of keys drawn; draws may repeat",
			Value:   10000,
			EnvVars: []string{"BSTBENCH_N"},
		},
		&cli.IntFlag{
			Name:    "ops",
			Usage:   "number of operations after the initial load",
			Value:   100000,
			EnvVars: []string{"BSTBENCH_OPS"},
		},
		&cli.Uint64Flag{
			Name:    "seed",
			Usage:   "seed for keys, workload and treap priorities",
			Value:   1,
			EnvVars: []string{"BSTBENCH_SEED"},
		},
		&cli.StringFlag{
			Name:    "key-type",
			Usage:   "key type: int or name",
			Value:   "int",
			EnvVars: []string{"BSTBENCH_KEY_TYPE"},
		},
	},
	Action: runBench,
}

func kindNames() []string {
	var names []string
	for _, k := range searchtree.Kinds() {
		names = append(names, k.String())
	}
	return names
}

func parseKinds(names []string) ([]searchtree.Kind, error) {
	var kinds []searchtree.Kind
	for _, name := range names {
		k, err := searchtree.ParseKind(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		if !slices.Contains(kinds, k) {
			kinds = append(kinds, k)
		}
	}
	return kinds, nil
}

func runBench(cctx *cli.Context) error {
	kinds, err := parseKinds(cctx.StringSlice("kind"))
	if err != nil {
		return err
	}
	n, numOps, seed := cctx.Int("n"), cctx.Int("ops"), cctx.Uint64("seed")
	if n <= 0 {
		return fmt.Errorf("--n must be positive, got %d", n)
	}
	if numOps < 0 {
		return fmt.Errorf("--ops must not be negative, got %d", numOps)
	}
	switch kt := cctx.String("key-type"); kt {
	case "int":
		return bench(cctx.Context, kinds, intKeys(n, seed), searchtree.Compare[int], numOps, seed)
	case "name":
		return bench(cctx.Context, kinds, nameKeys(n, seed), strings.Compare, numOps, seed)
	default:
		return fmt.Errorf("unknown key type %q", kt)
	}
}

func intKeys(n int, seed uint64) []int {
	rng := rand.New(rand.NewPCG(seed, 1))
	keys := make([]int, n)
	for i := range keys {
		keys[i] = rng.IntN(4 * n)
	}
	return keys
}

func nameKeys(n int, seed uint64) []string {
	faker := gofakeit.New(int64(seed))
	keys := make([]string, n)
	for i := range keys {
		keys[i] = faker.Username()
	}
	return keys
}

type opKind uint8

const (
	opInsert opKind = iota
	opFind
	opErase
)

func (k opKind) String() string {
	switch k {
	case opInsert:
		return "insert"
	case opFind:
		return "find"
	default:
		return "erase"
	}
}

type op[K any] struct {
	kind opKind
	key  K
}

// genWorkload loads every key once and then issues numOps random
// operations over the same key pool.
func genWorkload[K any](rng *rand.Rand, keys []K, numOps int) []op[K] {
	ops := make([]op[K], 0, len(keys)+numOps)
	for _, i := range rng.Perm(len(keys)) {
		ops = append(ops, op[K]{opInsert, keys[i]})
	}
	for i := 0; i < numOps; i++ {
		ops = append(ops, op[K]{opKind(rng.IntN(3)), keys[rng.IntN(len(keys))]})
	}
	return ops
}

type result[K any] struct {
	kind    searchtree.Kind
	hits    []bool
	keys    []K
	height  int
	elapsed time.Duration
}

func replay[K any](
	ctx context.Context, kind searchtree.Kind, cmp func(a, b K) int, seed uint64, ops []op[K],
) (result[K], error) {
	m := searchtree.New[K, int](kind, cmp, searchtree.WithRand(rand.New(rand.NewPCG(seed, 2))))
	res := result[K]{kind: kind, hits: make([]bool, len(ops))}
	start := time.Now()
	for i, o := range ops {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}
		switch o.kind {
		case opInsert:
			res.hits[i] = m.Insert(o.key, i).Valid()
		case opFind:
			res.hits[i] = m.Contains(o.key)
		case opErase:
			res.hits[i] = m.Erase(o.key)
		}
	}
	res.elapsed = time.Since(start)
	if err := m.Check(); err != nil {
		return res, fmt.Errorf("%s tree is corrupt: %w", kind, err)
	}
	res.height = m.Height()
	res.keys = make([]K, 0, m.Len())
	m.Scan(func(k K, _ int) bool {
		res.keys = append(res.keys, k)
		return true
	})
	return res, nil
}

// diff reports the first operation on which r and ref disagree.
func (r *result[K]) diff(ref *result[K], ops []op[K], cmp func(a, b K) int) error {
	for i := range ops {
		if r.hits[i] != ref.hits[i] {
			return fmt.Errorf("%s disagrees with %s on op %d (%s %v): got %t",
				r.kind, ref.kind, i, ops[i].kind, ops[i].key, r.hits[i])
		}
	}
	if !slices.EqualFunc(r.keys, ref.keys, func(a, b K) bool { return cmp(a, b) == 0 }) {
		return fmt.Errorf("%s and %s hold different keys", r.kind, ref.kind)
	}
	return nil
}

func bench[K any](
	ctx context.Context, kinds []searchtree.Kind, keys []K, cmp func(a, b K) int, numOps int, seed uint64,
) error {
	ops := genWorkload(rand.New(rand.NewPCG(seed, 0)), keys, numOps)
	slog.Debug("generated workload", "keys", len(keys), "ops", len(ops))

	// The unbalanced tree is the reference every other kind is checked
	// against.
	all := []searchtree.Kind{searchtree.Unbalanced}
	for _, k := range kinds {
		if k != searchtree.Unbalanced {
			all = append(all, k)
		}
	}
	results := make([]result[K], len(all))
	g, ctx := errgroup.WithContext(ctx)
	for i, kind := range all {
		g.Go(func() error {
			r, err := replay(ctx, kind, cmp, seed, ops)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	ref := &results[0]
	for i := range results {
		r := &results[i]
		if err := r.diff(ref, ops, cmp); err != nil {
			return err
		}
		if r.kind == searchtree.Unbalanced && !slices.Contains(kinds, searchtree.Unbalanced) {
			continue
		}
		slog.Info("run complete",
			"kind", r.kind,
			"len", len(r.keys),
			"height", r.height,
			"elapsed", r.elapsed,
		)
	}
	return nil
}
