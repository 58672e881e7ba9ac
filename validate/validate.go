// Command validate provides a small CLI that validates puzzle configuration
// JSON files in the ../configs directory. It checks:
//   - JSON structure and required fields
//   - Grid size bounds and shuffle depth limits
//   - Layout shape: one row per grid line, one cell per column
//   - Tile set completeness: every number 1..N²-1 exactly once, one blank
//   - Solvability: the layout's permutation parity admits the goal
//   - Required message keys and their format verbs
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	minGridSize     = 2
	maxGridSize     = 8
	maxShuffleMoves = 10000
)

// Config mirrors the JSON schema for a puzzle configuration.
type Config struct {
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	GridSize     int               `json:"grid_size"`
	ShuffleMoves int               `json:"shuffle_moves"`
	Seed         int64             `json:"seed"`
	Layout       []string          `json:"layout"`
	Messages     map[string]string `json:"messages"`
}

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single configuration JSON file.
// It performs structural checks, layout/tile-set validation, message
// presence, and a solvability check on pinned layouts.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if config.Name == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "name is required")
	}
	if config.Description == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "description is required")
	}

	if config.GridSize < minGridSize || config.GridSize > maxGridSize {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("grid_size must be between %d and %d, got %d", minGridSize, maxGridSize, config.GridSize))
	}

	if config.ShuffleMoves < 0 || config.ShuffleMoves > maxShuffleMoves {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("shuffle_moves must be between 0 and %d, got %d", maxShuffleMoves, config.ShuffleMoves))
	}

	if len(config.Layout) == 0 && config.ShuffleMoves == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "either a layout or shuffle_moves is required")
	}

	var tiles []int
	if len(config.Layout) > 0 && config.GridSize >= minGridSize {
		var layoutErrs []string
		tiles, layoutErrs = parseLayout(config.GridSize, config.Layout)
		if len(layoutErrs) > 0 {
			result.Valid = false
			result.Errors = append(result.Errors, layoutErrs...)
		}
	}

	// Validate messages
	requiredMessages := []string{
		"welcome",
		"solved",
	}
	for _, msg := range requiredMessages {
		if config.Messages[msg] == "" {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Missing required message: %s", msg))
		}
	}
	if solved, ok := config.Messages["solved"]; ok && solved != "" && !strings.Contains(solved, "%d") {
		result.Valid = false
		result.Errors = append(result.Errors, "messages.solved must contain %d for the move count")
	}
	if status, ok := config.Messages["move_status"]; ok && status != "" && !strings.Contains(status, "%d") {
		result.Valid = false
		result.Errors = append(result.Errors, "messages.move_status must contain %d for the move count")
	}

	// Solvability check on pinned layouts
	if result.Valid && tiles != nil {
		if !isSolvable(config.GridSize, tiles) {
			result.Valid = false
			result.Errors = append(result.Errors, "Layout is not solvable: no move sequence reaches the goal")
		}
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Grid: %dx%d", config.GridSize, config.GridSize))
		if len(config.Layout) > 0 {
			result.Errors = append(result.Errors, "✓ Layout: pinned, solvable")
		} else {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Shuffle: %d moves", config.ShuffleMoves))
		}
		if config.Seed != 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Seed: %d (reproducible)", config.Seed))
		}
	}

	return result
}

// parseLayout checks the layout's shape and tile set. It returns the flat
// cell values (0-based tile numbers, -1 for the blank) alongside any errors.
func parseLayout(gridSize int, layout []string) ([]int, []string) {
	var errs []string

	if len(layout) != gridSize {
		errs = append(errs, fmt.Sprintf("Layout must have %d rows to match grid_size, got %d", gridSize, len(layout)))
		return nil, errs
	}

	cells := make([]int, 0, gridSize*gridSize)
	blanks := 0
	seen := make(map[int]bool)

	for i, row := range layout {
		fields := strings.Fields(row)
		if len(fields) != gridSize {
			errs = append(errs, fmt.Sprintf("Layout row %d must have %d cells, got %d", i+1, gridSize, len(fields)))
			return nil, errs
		}
		for j, field := range fields {
			if field == "_" {
				blanks++
				cells = append(cells, -1)
				continue
			}
			number, err := strconv.Atoi(field)
			if err != nil {
				errs = append(errs, fmt.Sprintf("Invalid tile %q at row %d, cell %d", field, i+1, j+1))
				continue
			}
			if number < 1 || number > gridSize*gridSize-1 {
				errs = append(errs, fmt.Sprintf("Tile %d at row %d, cell %d is out of range 1..%d", number, i+1, j+1, gridSize*gridSize-1))
				continue
			}
			if seen[number] {
				errs = append(errs, fmt.Sprintf("Tile %d appears more than once", number))
				continue
			}
			seen[number] = true
			cells = append(cells, number-1)
		}
	}

	if blanks != 1 {
		errs = append(errs, fmt.Sprintf("Layout must have exactly one blank (_), got %d", blanks))
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return cells, nil
}

// isSolvable applies the permutation parity rule: odd grids need an even
// inversion count; even grids need inversions plus the blank's row from the
// bottom to be odd.
func isSolvable(gridSize int, cells []int) bool {
	var sequence []int
	blankRow := 0
	for i, cell := range cells {
		if cell < 0 {
			blankRow = i / gridSize
			continue
		}
		sequence = append(sequence, cell)
	}

	inversions := 0
	for i := 0; i < len(sequence); i++ {
		for j := i + 1; j < len(sequence); j++ {
			if sequence[i] > sequence[j] {
				inversions++
			}
		}
	}

	if gridSize%2 == 1 {
		return inversions%2 == 0
	}
	rowFromBottom := gridSize - blankRow
	return (inversions+rowFromBottom)%2 == 1
}

// main scans ../configs for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
