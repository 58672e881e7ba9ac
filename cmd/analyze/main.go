// Command analyze prints quick, human-readable heuristics about configuration
// files in the project's configs directory. It summarizes grid dimensions,
// shuffle depth, solvability of pinned layouts, and estimates difficulty from
// the Manhattan-distance lower bound and an optimal solve on small boards.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"

	"github.com/wricardo/mcp-training/npuzzle/game/board"
	"github.com/wricardo/mcp-training/npuzzle/game/engine"
	"github.com/wricardo/mcp-training/npuzzle/game/solver"
)

// solveGridLimit bounds the optimal-solve estimate. A* with the Manhattan
// heuristic is instant on 3x3 and usually fine on 4x4, but anything larger
// can blow past the expansion cap on a deep shuffle.
const solveGridLimit = 4

func main() {
	configs := []string{
		"classic.json",
		"easy3.json",
		"fifteen.json",
		"warmup.json",
	}

	for _, configFile := range configs {
		fmt.Printf("\n=== Analyzing %s ===\n", configFile)
		analyzeConfig(filepath.Join("configs", configFile))
	}
}

func analyzeConfig(path string) {
	config, err := engine.LoadPuzzleConfig(path)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return
	}

	fmt.Printf("Name: %s\n", config.Name)
	fmt.Printf("Description: %s\n", config.Description)
	fmt.Printf("Grid Size: %d x %d (%d tiles)\n", config.GridSize, config.GridSize, config.GridSize*config.GridSize-1)

	if len(config.Layout) > 0 {
		analyzeLayout(config)
		return
	}

	fmt.Printf("Start: shuffled, depth %d\n", config.ShuffleMoves)
	if config.Seed != 0 {
		fmt.Printf("Seed: %d (reproducible)\n", config.Seed)
	}
	analyzeShuffleDepth(config)
}

// analyzeLayout reports difficulty metrics for a pinned starting layout.
func analyzeLayout(config *engine.PuzzleConfig) {
	labels, err := engine.ParseLayout(config.GridSize, config.Layout)
	if err != nil {
		fmt.Printf("Error parsing layout: %v\n", err)
		return
	}

	b, err := board.FromLabels(config.GridSize, labels)
	if err != nil {
		fmt.Printf("Error building board: %v\n", err)
		return
	}

	fmt.Println("Start: pinned layout")
	for _, row := range engine.FormatLayout(b) {
		fmt.Printf("  %s\n", row)
	}

	if !b.Solvable() {
		fmt.Println("⚠️  CRITICAL: layout is not solvable, no move sequence reaches the goal")
		return
	}
	fmt.Println("✅ Layout is solvable")

	misplaced := 0
	for i := 0; i < config.GridSize*config.GridSize; i++ {
		tile := b.Tile(i)
		if tile != nil && tile.Number != i {
			misplaced++
		}
	}

	fmt.Printf("Misplaced tiles: %d\n", misplaced)
	fmt.Printf("Manhattan lower bound: %d moves\n", b.Distance())

	if config.GridSize > solveGridLimit {
		fmt.Printf("Optimal solve skipped: grid larger than %dx%d\n", solveGridLimit, solveGridLimit)
		return
	}

	solution, err := solver.Solve(context.Background(), b, solver.Options{})
	if err != nil {
		fmt.Printf("Optimal solve failed: %v\n", err)
		return
	}
	fmt.Printf("Optimal solution: %d moves (expanded %d states)\n", solution.Length(), solution.Expanded)
}

// analyzeShuffleDepth samples a few shuffles to show the spread of starting
// difficulty a player will actually see.
func analyzeShuffleDepth(config *engine.PuzzleConfig) {
	const samples = 5

	seed := config.Seed
	if seed == 0 {
		seed = 1
	}
	rng := rand.New(rand.NewSource(seed))

	minDist, maxDist, total := -1, 0, 0
	for i := 0; i < samples; i++ {
		b := board.New(config.GridSize).Shuffle(config.ShuffleMoves, rng)
		d := b.Distance()
		total += d
		if minDist == -1 || d < minDist {
			minDist = d
		}
		if d > maxDist {
			maxDist = d
		}
	}

	fmt.Printf("Sampled %d shuffles: distance min=%d avg=%d max=%d\n",
		samples, minDist, total/samples, maxDist)

	if maxDist == 0 {
		fmt.Println("⚠️  WARNING: shuffle depth is too shallow, boards start solved")
	} else {
		fmt.Println("✅ Shuffle produces scrambled, solvable boards")
	}
}
