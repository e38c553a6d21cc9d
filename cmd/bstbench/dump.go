package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/ajwerner/searchtree"
	"github.com/urfave/cli/v2"
)

var dumpCmd = &cli.Command{
	Name:      "dump",
	Usage:     "insert keys into a tree and print its shape",
	ArgsUsage: "[key...]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "kind",
			Usage:   "tree kind",
			Value:   searchtree.AVL.String(),
			EnvVars: []string{"BSTBENCH_KIND"},
		},
		&cli.IntSliceFlag{
			Name:  "keys",
			Usage: "keys to insert, in order, before any positional keys",
		},
	},
	Action: runDump,
}

func runDump(cctx *cli.Context) error {
	kind, err := searchtree.ParseKind(cctx.String("kind"))
	if err != nil {
		return err
	}
	keys := cctx.IntSlice("keys")
	for _, arg := range cctx.Args().Slice() {
		k, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("parsing key %q: %w", arg, err)
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return fmt.Errorf("no keys given")
	}
	m := searchtree.NewOrdered[int, struct{}](kind)
	for _, k := range keys {
		if !m.Insert(k, struct{}{}).Valid() {
			slog.Warn("duplicate key ignored", "key", k)
		}
	}
	slog.Debug("built tree", "kind", kind, "len", m.Len(), "height", m.Height())
	fmt.Fprint(cctx.App.Writer, m.String())
	return nil
}
