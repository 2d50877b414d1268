package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/rules"
	"github.com/sheikhrachel/go-life/utils"
)

func main() {
	if err := newApp(os.Stdin, os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "go-life"
	app.Usage = "Conway's Game of Life on a bounded grid"
	app.Writer = stdout
	app.ErrWriter = stderr
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "config, c", Value: "config.json", Usage: "JSON configuration file"},
		cli.BoolFlag{Name: "debug", Usage: "enable debug logging"},
	}

	runFlags := []cli.Flag{
		cli.IntFlag{Name: "generations, n", Usage: "stop after this many generations (overrides max_generations)"},
		cli.Uint64Flag{Name: "seed", Usage: "random seed, 0 for a clock-based seed (overrides seed)"},
		cli.StringFlag{Name: "rule, r", Usage: "rule in B/S notation (overrides rule)"},
		cli.StringFlag{Name: "pattern, p", Usage: "board file to seed from (overrides pattern)"},
	}

	app.Commands = []cli.Command{
		{
			Name:   "run",
			Usage:  "animate the board in the terminal",
			Flags:  runFlags,
			Action: runAction,
		},
		{
			Name:      "step",
			Usage:     "advance a board file and print the resulting generation",
			ArgsUsage: "[FILE]",
			Flags: []cli.Flag{
				cli.IntFlag{Name: "generations, n", Value: 1, Usage: "number of generations to advance"},
				cli.StringFlag{Name: "rule, r", Value: rules.Conway.String(), Usage: "rule in B/S notation"},
			},
			Action: func(c *cli.Context) error { return stepAction(c, stdin) },
		},
	}
	app.Action = runAction
	return app
}

// loadConfig falls back to defaults when the file is missing
func loadConfig(path string, logger log.Logger) (utils.Config, error) {
	config, err := utils.LoadConfig(path)
	if err == nil {
		return config, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		level.Warn(logger).Log("msg", "using default configuration", "path", path, "err", err)
		return utils.DefaultConfig(), nil
	}
	return config, err
}

func runAction(c *cli.Context) error {
	logger := utils.NewLogger(c.App.ErrWriter, c.GlobalBool("debug"))

	config, err := loadConfig(c.GlobalString("config"), logger)
	if err != nil {
		return err
	}
	if c.IsSet("generations") {
		config.MaxGenerations = c.Int("generations")
	}
	if c.IsSet("seed") {
		config.Seed = c.Uint64("seed")
	}
	if c.IsSet("rule") {
		config.Rule = c.String("rule")
	}
	if c.IsSet("pattern") {
		config.Pattern = c.String("pattern")
	}

	r, err := initializeGame(config, logger, c.App.Writer)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return r.run(ctx)
}

func stepAction(c *cli.Context, stdin io.Reader) error {
	rule, err := rules.Parse(c.String("rule"))
	if err != nil {
		return errors.Wrap(err, "[step]")
	}
	generations := c.Int("generations")
	if generations < 0 {
		return errors.Errorf("[step] generations must not be negative, got %d", generations)
	}

	var grid *model.Grid
	if path := c.Args().First(); path != "" {
		grid, err = loadPattern(path)
	} else {
		grid, err = model.ParseGrid(stdin)
	}
	if err != nil {
		return errors.Wrap(err, "[step]")
	}

	game := model.NewGameFromGrid(grid, model.WithRule(rule))
	for range generations {
		game.Step()
	}
	_, err = fmt.Fprint(c.App.Writer, game)
	return err
}
