package engine

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/wricardo/mcp-training/npuzzle/game/board"
)

// ValidatePuzzleConfig validates a puzzle configuration for correctness and
// winnability.
func ValidatePuzzleConfig(config *PuzzleConfig) error {
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	if config.GridSize < MinGridSize || config.GridSize > MaxGridSize {
		return fmt.Errorf("config validation: grid_size must be between %d and %d, got %d", MinGridSize, MaxGridSize, config.GridSize)
	}

	if config.ShuffleMoves < 0 || config.ShuffleMoves > MaxShuffleMoves {
		return fmt.Errorf("config validation: shuffle_moves must be between 0 and %d, got %d", MaxShuffleMoves, config.ShuffleMoves)
	}

	if len(config.Layout) == 0 && config.ShuffleMoves == 0 {
		return fmt.Errorf("config validation: either a layout or shuffle_moves is required")
	}

	if len(config.Layout) > 0 {
		labels, err := ParseLayout(config.GridSize, config.Layout)
		if err != nil {
			return fmt.Errorf("config validation: %v", err)
		}
		b, err := board.FromLabels(config.GridSize, labels)
		if err != nil {
			return fmt.Errorf("config validation: %v", err)
		}
		if !b.Solvable() {
			return fmt.Errorf("config validation: layout is not solvable")
		}
	}

	if config.Messages.Welcome == "" {
		return fmt.Errorf("config validation: messages.welcome is required")
	}
	if config.Messages.Solved == "" {
		return fmt.Errorf("config validation: messages.solved is required")
	}
	if !strings.Contains(config.Messages.Solved, "%d") {
		return fmt.Errorf("config validation: messages.solved must contain %%d for the move count")
	}
	if config.Messages.MoveStatus != "" && !strings.Contains(config.Messages.MoveStatus, "%d") {
		return fmt.Errorf("config validation: messages.move_status must contain %%d for the move count")
	}

	return nil
}

// ParseLayout turns layout rows into a FromLabels sequence. Rows hold
// space-separated 1-based tile numbers with "_" for the blank; the stored
// goal index is the number minus one.
func ParseLayout(gridSize int, layout []string) ([]int, error) {
	if len(layout) != gridSize {
		return nil, fmt.Errorf("layout must have %d rows to match grid_size, got %d", gridSize, len(layout))
	}

	labels := make([]int, 0, gridSize*gridSize)
	for i, row := range layout {
		fields := strings.Fields(row)
		if len(fields) != gridSize {
			return nil, fmt.Errorf("layout row %d must have %d cells to match grid_size, got %d", i+1, gridSize, len(fields))
		}
		for j, field := range fields {
			if field == "_" {
				labels = append(labels, board.Empty)
				continue
			}
			number, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("layout row %d, cell %d: invalid tile %q", i+1, j+1, field)
			}
			labels = append(labels, number-1)
		}
	}
	return labels, nil
}

// FormatLayout renders a board as layout rows, the inverse of ParseLayout.
func FormatLayout(b *board.Board) []string {
	size := b.Size()
	rows := make([]string, size)
	for y := 0; y < size; y++ {
		cells := make([]string, size)
		for x := 0; x < size; x++ {
			tile := b.Tile(x + y*size)
			if tile == nil {
				cells[x] = "_"
			} else {
				cells[x] = strconv.Itoa(tile.Number + 1)
			}
		}
		rows[y] = strings.Join(cells, " ")
	}
	return rows
}

// LoadPuzzleConfig loads a puzzle configuration from a JSON file
func LoadPuzzleConfig(filename string) (*PuzzleConfig, error) {
	// Support CONFIG_DIR environment variable for alternative config directory
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config PuzzleConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if err := ValidatePuzzleConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadConfigByName loads a puzzle configuration by name from the configs directory
func LoadConfigByName(configName string) (*PuzzleConfig, error) {
	if !strings.HasSuffix(configName, ".json") {
		configName = configName + ".json"
	}

	configPath := filepath.Join("configs", configName)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file '%s' not found", configName)
	}

	config, err := LoadPuzzleConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("invalid config '%s': %v", configName, err)
	}

	return config, nil
}

// InitBoardFromConfig creates the starting board for a configuration: the
// pinned layout when one is given, otherwise a seeded shuffle of the solved
// layout. A zero seed draws from the clock.
func InitBoardFromConfig(config *PuzzleConfig) (*board.Board, error) {
	if config == nil {
		// Default: a lightly shuffled 3x3.
		config = DefaultConfig()
	}

	if len(config.Layout) > 0 {
		labels, err := ParseLayout(config.GridSize, config.Layout)
		if err != nil {
			return nil, err
		}
		return board.FromLabels(config.GridSize, labels)
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	return board.New(config.GridSize).Shuffle(config.ShuffleMoves, rng), nil
}

// DefaultConfig returns a minimal valid 3x3 configuration.
func DefaultConfig() *PuzzleConfig {
	config := &PuzzleConfig{
		Name:         "default",
		Description:  "Default 3x3 sliding puzzle",
		GridSize:     3,
		ShuffleMoves: 30,
	}
	config.Messages.Welcome = "Welcome! Slide tiles into the blank to restore the order."
	config.Messages.Solved = "Solved in %d moves!"
	config.Messages.CantMove = "That tile can't move"
	config.Messages.Shuffled = "Board shuffled"
	config.Messages.MoveStatus = "Moves: %d, distance: %d"
	config.Messages.AlreadySolved = "Already solved"
	return config
}
