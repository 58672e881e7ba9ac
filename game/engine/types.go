package engine

// Direction names for sliding moves. A direction describes the travel of the
// sliding tile: "up" slides the tile below the blank upward, and so on.
const (
	Up    = "up"
	Down  = "down"
	Left  = "left"
	Right = "right"
)

const (
	// Validation constants
	MinGridSize         = 2
	MaxGridSize         = 8
	MaxShuffleMoves     = 10000
	MaxBulkMoves        = 50
	WebSocketBufferSize = 256
)

// Directions lists the supported move directions in a stable order.
var Directions = []string{Up, Down, Left, Right}

// PuzzleConfig represents the puzzle configuration from JSON
type PuzzleConfig struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	GridSize    int    `json:"grid_size"`

	// ShuffleMoves is the number of random legal slides applied to the
	// solved layout when no explicit layout is given. Zero with no layout
	// produces a solved board.
	ShuffleMoves int `json:"shuffle_moves"`

	// Seed fixes the shuffle for reproducible puzzles; zero draws a fresh
	// seed each game.
	Seed int64 `json:"seed,omitempty"`

	// Layout optionally pins the starting arrangement: one row per string,
	// space-separated 1-based tile numbers with "_" for the blank.
	Layout []string `json:"layout,omitempty"`

	Messages struct {
		Welcome       string `json:"welcome"`
		Solved        string `json:"solved"`
		CantMove      string `json:"cant_move"`
		Shuffled      string `json:"shuffled"`
		MoveStatus    string `json:"move_status"`
		AlreadySolved string `json:"already_solved"`
	} `json:"messages"`
}

// GameState is the serializable snapshot of a puzzle session. Tiles holds
// goal indices row-major with -1 for the blank; Labels carries the display
// payloads in the same order.
type GameState struct {
	GridSize   int      `json:"grid_size"`
	Tiles      []int    `json:"tiles"`
	Labels     []string `json:"labels"`
	EmptyIndex int      `json:"empty_index"`
	Steps      int      `json:"steps"`
	Heuristic  int      `json:"heuristic"`
	Solved     bool     `json:"solved"`
	Message    string   `json:"message"`
	ConfigName string   `json:"config_name"`

	MoveHistory []MoveHistoryEntry `json:"move_history"`
	TotalMoves  int                `json:"total_moves"`

	// CurrentMoves tracks only the moves since the last reset or shuffle. It
	// mirrors MoveHistory entries but gets cleared while MoveHistory remains
	// cumulative.
	CurrentMoves      []MoveHistoryEntry `json:"current_moves"`
	CurrentMovesCount int                `json:"current_moves_count"`
}

// MoveHistoryEntry represents a single move in the game history
type MoveHistoryEntry struct {
	Action     string `json:"action"`
	TileNumber int    `json:"tile_number,omitempty"` // 1-based label of the slid tile
	FromIndex  int    `json:"from_index"`
	ToIndex    int    `json:"to_index"`
	Timestamp  int64  `json:"timestamp"`
	Success    bool   `json:"success"`
	MoveNumber int    `json:"move_number"`
}
