// Command solve runs the A* solver against a board given on the command line
// and prints the optimal move sequence. Boards come from either a pinned
// layout (--row per grid line) or a seeded shuffle, which makes it handy for
// checking configs and for generating reference solutions.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/npuzzle/game/board"
	"github.com/wricardo/mcp-training/npuzzle/game/engine"
	"github.com/wricardo/mcp-training/npuzzle/game/solver"
)

func main() {
	cmd := newCommand()

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "solve",
		Usage: "find an optimal move sequence for a sliding puzzle board",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "size",
				Aliases: []string{"n"},
				Usage:   "grid size (NxN)",
				Value:   3,
			},
			&cli.StringSliceFlag{
				Name:    "row",
				Aliases: []string{"r"},
				Usage:   "board row, space-separated tile numbers with _ for the blank (repeat per row)",
			},
			&cli.IntFlag{
				Name:  "shuffle",
				Usage: "shuffle depth when no rows are given",
				Value: 30,
			},
			&cli.IntFlag{
				Name:  "seed",
				Usage: "shuffle seed, 0 draws from the clock",
			},
			&cli.IntFlag{
				Name:  "max-expansions",
				Usage: "search expansion cap, 0 uses the default, negative is unlimited",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "abort the search after this duration",
				Value: 30 * time.Second,
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "print every board along the solution path",
			},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	b, err := buildBoard(cmd)
	if err != nil {
		return err
	}

	fmt.Println("Start board:")
	printBoard(b)
	fmt.Printf("Manhattan lower bound: %d moves\n\n", b.Distance())

	ctx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
	defer cancel()

	started := time.Now()
	solution, err := solver.Solve(ctx, b, solver.Options{
		MaxExpansions: cmd.Int("max-expansions"),
	})
	if err != nil {
		return err
	}

	if solution.Length() == 0 {
		fmt.Println("Board is already solved.")
		return nil
	}

	fmt.Printf("Optimal solution: %d moves (expanded %d states in %v)\n\n",
		solution.Length(), solution.Expanded, time.Since(started).Round(time.Millisecond))

	if cmd.Bool("trace") {
		for i, move := range solution.Moves {
			fmt.Printf("%d. %s\n", i+1, move)
			printBoard(solution.Boards[i+1])
			fmt.Println()
		}
	} else {
		fmt.Println(strings.Join(solution.Moves, " "))
	}

	return nil
}

// buildBoard assembles the start board from --row flags, or shuffles a fresh
// one when no rows are given.
func buildBoard(cmd *cli.Command) (*board.Board, error) {
	size := cmd.Int("size")
	rows := cmd.StringSlice("row")

	if len(rows) > 0 {
		labels, err := engine.ParseLayout(size, rows)
		if err != nil {
			return nil, err
		}
		return board.FromLabels(size, labels)
	}

	seed := int64(cmd.Int("seed"))
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	return board.New(size).Shuffle(cmd.Int("shuffle"), rng), nil
}

func printBoard(b *board.Board) {
	for _, row := range engine.FormatLayout(b) {
		fmt.Printf("  %s\n", row)
	}
}
