// Command bstbench drives random workloads through every search tree kind,
// cross-checks their answers and prints tree shapes.
package main

import (
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/carlmjohnson/versioninfo"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	app := cli.App{
		Name:    "bstbench",
		Usage:   "exercise and compare binary search tree kinds",
		Version: versioninfo.Short(),
	}
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "log verbosity (debug, info, warn, error)",
			Value:   "info",
			EnvVars: []string{"BSTBENCH_LOG_LEVEL", "LOG_LEVEL"},
		},
	}
	app.Before = configLogging
	app.Commands = []*cli.Command{
		runCmd,
		dumpCmd,
	}
	return app.Run(args)
}

func configLogging(cctx *cli.Context) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cctx.String("log-level"))); err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)
	return nil
}
