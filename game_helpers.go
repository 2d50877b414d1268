package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

const periodicRefresh = 200

// runner drives the animated terminal loop around one engine
type runner struct {
	config   utils.Config
	game     *model.Game
	pattern  *model.Grid // board restored on restart when loaded from a file
	rng      *rand.Rand
	renderer *model.TerminalRenderer
	stats    *utils.Stats
	detector *model.CycleDetector
	logger   log.Logger
	out      io.Writer
}

// gameStatus summarizes one generation for display
type gameStatus struct {
	livingCells int
	density     float64
	label       string
	period      int
}

// frame is what the simulation hands to the renderer. It owns its board.
type frame struct {
	board          *model.Grid
	generation     int
	lastRestartGen int
	status         gameStatus
	stats          utils.Stats
}

// initializeGame sets up the initial game state
func initializeGame(config utils.Config, logger log.Logger, out io.Writer) (*runner, error) {
	rule, err := config.Validate()
	if err != nil {
		return nil, errors.Wrap(err, "[initializeGame]")
	}

	var opts []model.Option
	opts = append(opts, model.WithRule(rule))
	if config.UseMemoryPool {
		opts = append(opts, model.WithPool(model.NewGridPool()))
	}

	seed := runSeed(config.Seed, time.Now())
	level.Info(logger).Log("msg", "seeding random life", "seed", seed)

	r := &runner{
		config:   config,
		rng:      rand.New(rand.NewSource(seed)),
		renderer: &model.TerminalRenderer{Out: out},
		stats:    utils.NewStats(),
		detector: model.NewCycleDetector(model.DefaultHistoryDepth),
		logger:   logger,
		out:      out,
	}

	if config.Pattern != "" {
		if r.pattern, err = loadPattern(config.Pattern); err != nil {
			return nil, errors.Wrap(err, "[initializeGame]")
		}
		r.game = model.NewGameFromGrid(r.pattern, opts...)
		return r, nil
	}

	if r.game, err = model.NewGame(config.Width, config.Height, opts...); err != nil {
		return nil, errors.Wrap(err, "[initializeGame]")
	}
	if err = r.reseed(); err != nil {
		return nil, errors.Wrap(err, "[initializeGame]")
	}
	return r, nil
}

// runSeed keeps a configured seed and otherwise derives one from the clock
func runSeed(configured uint64, now time.Time) uint64 {
	if configured != 0 {
		return configured
	}
	return uint64(now.UnixNano())
}

func loadPattern(path string) (*model.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "[loadPattern] failed to open pattern: %+v", path)
	}
	defer f.Close()

	grid, err := model.ParseGrid(f)
	if err != nil {
		return nil, errors.Wrapf(err, "[loadPattern] failed to parse pattern: %+v", path)
	}
	return grid, nil
}

// freshBoard returns the seeding board: the loaded pattern, or random life plus patterns
func (r *runner) freshBoard() (*model.Grid, error) {
	if r.pattern != nil {
		return r.pattern, nil
	}
	board := model.MustNewGrid(r.game.GetWidth(), r.game.GetHeight())
	if err := model.SeedInterestingPatterns(board, r.rng, r.config.RandomDensity); err != nil {
		return nil, errors.Wrap(err, "[freshBoard]")
	}
	return board, nil
}

// reseed loads a fresh board into the game
func (r *runner) reseed() error {
	board, err := r.freshBoard()
	if err != nil {
		return err
	}
	return r.game.Load(board)
}

// displayGameInfo shows the initial game information
func (r *runner) displayGameInfo() {
	fmt.Fprintf(r.out, "Rule: %s | Memory Pool: %v\n", r.game.Rule(), r.config.UseMemoryPool)
	fmt.Fprintf(r.out, "Grid: %dx%d | Initial living cells: %d\n",
		r.game.GetWidth(), r.game.GetHeight(), r.game.CountLivingCells())
	fmt.Fprintln(r.out, "Press Ctrl+C to exit gracefully")
	fmt.Fprintln(r.out)
}

// updateGameState updates the stats and cycle history and returns status information
func (r *runner) updateGameState(generation int, lastFrameTime time.Time) gameStatus {
	livingCells := r.game.CountLivingCells()
	r.stats.Update(generation, livingCells, time.Since(lastFrameTime))

	status := gameStatus{
		livingCells: livingCells,
		density:     utils.Density(livingCells, r.game.GetWidth(), r.game.GetHeight()),
		period:      r.detector.Observe(r.game.Grid()),
		label:       "Active",
	}
	switch {
	case livingCells == 0:
		status.label = "Extinct"
	case status.period == 1:
		status.label = "Still life"
	case status.period > 1:
		status.label = fmt.Sprintf("Oscillating (period %d)", status.period)
	}
	return status
}

// displayGameStatus shows the current game status
func (r *runner) displayGameStatus(f frame) {
	fmt.Fprintf(r.out, "Gen: %d | Living: %d | Density: %.1f%% | Status: %s\n",
		f.generation, f.status.livingCells, f.status.density, f.status.label)
	fmt.Fprintf(r.out, "Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		f.stats.GenerationsPerSecond, f.stats.AveragePopulation, time.Since(f.stats.StartTime).Seconds())

	if f.generation > f.lastRestartGen {
		fmt.Fprintf(r.out, "Generations since restart: %d\n", f.generation-f.lastRestartGen)
	}
	fmt.Fprintln(r.out)
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(
	livingCells, stagnantCount, generation int,
	config utils.Config,
) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if config.StagnationThreshold > 0 && stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	if generation > 0 && generation%periodicRefresh == 0 {
		return true, "periodic refresh"
	}
	return false, ""
}

// restartGame reseeds the board in place
func (r *runner) restartGame(reason string) error {
	if err := r.reseed(); err != nil {
		return errors.Wrap(err, "[restartGame]")
	}
	r.detector.Reset()
	level.Info(r.logger).Log("msg", "restarted", "reason", reason, "living", r.game.CountLivingCells())
	return nil
}

// simulate owns the engine: it steps, decides restarts and publishes frames
func (r *runner) simulate(ctx context.Context, frames chan<- frame) error {
	var (
		generation     = 0
		stagnantCount  = 0
		lastRestartGen = 0
		lastFrameTime  = time.Now()
	)

	for {
		frameStart := time.Now()
		status := r.updateGameState(generation, lastFrameTime)
		lastFrameTime = frameStart

		if status.period > 0 {
			stagnantCount++
		} else {
			stagnantCount = 0
		}

		select {
		case frames <- frame{
			board:          r.game.Grid(),
			generation:     generation,
			lastRestartGen: lastRestartGen,
			status:         status,
			stats:          *r.stats,
		}:
		case <-ctx.Done():
			return nil
		}

		if r.config.MaxGenerations > 0 && generation >= r.config.MaxGenerations {
			level.Info(r.logger).Log("msg", "reached maximum generations", "limit", r.config.MaxGenerations)
			return nil
		}

		shouldRestart, restartReason := checkRestartConditions(status.livingCells, stagnantCount, generation, r.config)
		if shouldRestart && r.config.AutoRestart {
			if err := r.restartGame(restartReason); err != nil {
				return err
			}
			lastRestartGen = generation
			stagnantCount = 0
		} else if stagnantCount >= 2 && stagnantCount < r.config.StagnationThreshold {
			// Inject some life to try to break the stagnation
			model.InjectRandomLife(r.game, r.rng, r.config.InjectionCount)
			level.Debug(r.logger).Log("msg", "injected life", "count", r.config.InjectionCount, "generation", generation)
		}

		r.game.Step()
		generation++

		select {
		case <-time.After(r.config.FrameRate):
		case <-ctx.Done():
			return nil
		}
	}
}

// draw renders one frame
func (r *runner) draw(f frame) error {
	if err := r.renderer.Clear(); err != nil {
		return errors.Wrap(err, "[draw] failed to clear terminal")
	}
	r.displayGameStatus(f)
	if err := r.renderer.Display(f.board); err != nil {
		return errors.Wrap(err, "[draw] failed to render board")
	}
	return nil
}

// run steps the engine on one goroutine and renders on another until the
// generation limit is reached or ctx is cancelled
func (r *runner) run(ctx context.Context) error {
	r.displayGameInfo()

	frames := make(chan frame)
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		defer close(frames)
		return r.simulate(ctx, frames)
	})
	eg.Go(func() error {
		for f := range frames {
			if err := r.draw(f); err != nil {
				return err
			}
		}
		return nil
	})

	err := eg.Wait()
	level.Info(r.logger).Log(
		"msg", "shutting down",
		"generations", r.stats.TotalGenerations,
		"runtime", time.Since(r.stats.StartTime).Round(time.Millisecond),
		"avg_population", fmt.Sprintf("%.1f", r.stats.AveragePopulation),
	)
	return err
}
