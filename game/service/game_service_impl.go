package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/mcp-training/npuzzle/game/engine"
	"github.com/wricardo/mcp-training/npuzzle/game/solver"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	// Fallback: return as-is or "default"
	if configName == "" {
		return "default"
	}
	return configName
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// CreateSession creates a new puzzle session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Load configuration
	var config *engine.PuzzleConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			// Provide helpful error message with available options
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, configIDs)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations", configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	// Determine the config identifier to return - prefer the input configName if provided,
	// otherwise look up the config_id by display name
	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     configID, // Return the config_id, not the display name
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.GetState(),
		GameConfig:     session.Config,
	}, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     s.getConfigID(session.Config.Name), // Return config_id consistently
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.GetState(),
		GameConfig:     session.Config,
	}, nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, &SessionInfo{
			ID:             sess.ID,
			ConfigName:     s.getConfigID(sess.Config.Name), // Return config_id consistently
			CreatedAt:      sess.CreatedAt,
			LastAccessedAt: sess.LastAccessedAt,
			GameState:      sess.Engine.GetState(),
			GameConfig:     sess.Config,
		})
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Move executes a single directional slide for a session
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string, reset bool) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	events := []GameEvent{}

	// Handle reset if requested
	if reset {
		if _, err := sess.Engine.Reset(); err != nil {
			return nil, fmt.Errorf("failed to reset: %w", err)
		}
		events = append(events, GameEvent{
			Type:      "reset",
			Message:   "Puzzle reset to starting layout",
			Timestamp: time.Now(),
		})
	}

	success := sess.Engine.Move(strings.ToLower(direction))
	return s.finishMove(sessionID, sess, success, events)
}

// MoveTile slides the tile with the given 1-based number, succeeding only
// when it sits next to the blank.
func (s *gameServiceImpl) MoveTile(ctx context.Context, sessionID string, tileNumber int) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	success := sess.Engine.MoveTile(tileNumber)
	return s.finishMove(sessionID, sess, success, nil)
}

// finishMove assembles the shared MoveResult tail for Move and MoveTile.
// Caller holds the write lock.
func (s *gameServiceImpl) finishMove(sessionID string, sess *Session, success bool, events []GameEvent) (*MoveResult, error) {
	state := sess.Engine.GetState()

	result := &MoveResult{
		Success:       success,
		GameState:     state,
		Message:       state.Message,
		Events:        events,
		PossibleMoves: sess.Engine.GetPossibleMoves(),
	}

	if last := sess.Engine.GetLastMove(); last != nil {
		result.Events = append(result.Events, GameEvent{
			Type:      "move",
			Message:   state.Message,
			Timestamp: time.Now(),
		})
		result.Step = &StepInfo{
			Idx:        1,
			Action:     last.Action,
			TileNumber: last.TileNumber,
			FromIndex:  last.FromIndex,
			ToIndex:    last.ToIndex,
			Steps:      state.Steps,
			Heuristic:  state.Heuristic,
			Success:    last.Success,
			Solved:     state.Solved,
		}
	}

	if success && state.Solved {
		result.Events = append(result.Events, GameEvent{
			Type:      "solved",
			Message:   state.Message,
			Timestamp: time.Now(),
		})
	}

	// Auto-save session after move
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after move: %v\n", sessionID, err)
	}

	return result, nil
}

// BulkMove executes multiple moves in sequence
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, moves []string, reset bool) (*BulkMoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	state := sess.Engine.GetState()

	result := &BulkMoveResult{
		RequestedMoves: len(moves),
		Events:         make([]GameEvent, 0),
		Success:        true,
		StartSteps:     state.Steps,
		StartHeuristic: state.Heuristic,
		Solved:         state.Solved,
		Message:        state.Message,
	}

	// Handle reset
	if reset {
		if _, err := sess.Engine.Reset(); err != nil {
			return nil, fmt.Errorf("failed to reset: %w", err)
		}
		result.Events = append(result.Events, GameEvent{
			Type:      "reset",
			Message:   "Puzzle reset to starting layout",
			Timestamp: time.Now(),
		})
		st := sess.Engine.GetState()
		result.StartSteps = st.Steps
		result.StartHeuristic = st.Heuristic
	}

	// Limit moves to prevent abuse
	if len(moves) > engine.MaxBulkMoves {
		result.Truncated = true
		result.Limit = engine.MaxBulkMoves
		moves = moves[:engine.MaxBulkMoves]
	}

	// Execute moves
	for i, move := range moves {
		if sess.Engine.IsSolved() {
			result.StoppedReason = "puzzle already solved"
			result.StopReasonCode = "solved"
			result.StoppedOnMove = i + 1
			break
		}

		success := sess.Engine.Move(strings.ToLower(move))
		st := sess.Engine.GetState()

		step := StepInfo{
			Idx:       i + 1,
			Action:    move,
			Steps:     st.Steps,
			Heuristic: st.Heuristic,
			Success:   success,
			Solved:    st.Solved,
		}
		if last := sess.Engine.GetLastMove(); last != nil {
			step.TileNumber = last.TileNumber
			step.FromIndex = last.FromIndex
			step.ToIndex = last.ToIndex
		}
		result.Steps = append(result.Steps, step)

		if !success {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("move %d blocked: %s", i+1, move)
			result.StopReasonCode = "invalid_move"
			result.StoppedOnMove = i + 1
			break
		}

		result.MovesExecuted++
		result.Events = append(result.Events, GameEvent{
			Type:      "move",
			Message:   st.Message,
			Timestamp: time.Now(),
		})

		if st.Solved {
			result.Events = append(result.Events, GameEvent{
				Type:      "solved",
				Message:   st.Message,
				Timestamp: time.Now(),
			})
		}
	}

	endState := sess.Engine.GetState()
	result.GameState = endState
	result.EndSteps = endState.Steps
	result.EndHeuristic = endState.Heuristic
	result.Solved = endState.Solved
	result.Message = endState.Message
	result.PossibleMoves = sess.Engine.GetPossibleMoves()

	if result.Solved && result.StopReasonCode == "" {
		result.StopReasonCode = "solved"
	}

	// Auto-save session after bulk moves
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after bulk moves: %v\n", sessionID, err)
	}

	return result, nil
}

// Shuffle applies random legal slides to a session's board
func (s *gameServiceImpl) Shuffle(ctx context.Context, sessionID string, moves int) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	if moves > engine.MaxShuffleMoves {
		return nil, fmt.Errorf("shuffle moves must be at most %d, got %d", engine.MaxShuffleMoves, moves)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	state := sess.Engine.Shuffle(moves)

	// Auto-save session after shuffle
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after shuffle: %v\n", sessionID, err)
	}

	return state, nil
}

// Reset resets a puzzle session to its starting layout
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	state, err := sess.Engine.Reset()
	if err != nil {
		return nil, fmt.Errorf("failed to reset: %w", err)
	}

	// Auto-save session after reset
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after reset: %v\n", sessionID, err)
	}

	return state, nil
}

// Solve computes an optimal move sequence for the session's current board
func (s *gameServiceImpl) Solve(ctx context.Context, sessionID string) (*SolveResult, error) {
	s.mu.RLock()
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		s.mu.RUnlock()
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	current := sess.Engine.Board()
	config := sess.Engine.GetConfig()
	s.mu.RUnlock()

	// The search runs outside the lock; it only reads the immutable board.
	solution, err := solver.Solve(ctx, current, solver.Options{})
	if err != nil {
		return nil, err
	}

	result := &SolveResult{
		Moves:    solution.Moves,
		Length:   solution.Length(),
		Expanded: solution.Expanded,
	}
	if result.Length == 0 {
		result.AlreadySolved = true
		result.Message = config.Messages.AlreadySolved
	} else {
		result.Message = fmt.Sprintf("Solvable in %d moves", result.Length)
	}
	return result, nil
}

// Hint suggests the next move on an optimal path for the session's board
func (s *gameServiceImpl) Hint(ctx context.Context, sessionID string) (*HintResult, error) {
	s.mu.RLock()
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		s.mu.RUnlock()
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	current := sess.Engine.Board()
	config := sess.Engine.GetConfig()
	s.mu.RUnlock()

	solution, err := solver.Solve(ctx, current, solver.Options{})
	if err != nil {
		return nil, err
	}

	if solution.Length() == 0 {
		return &HintResult{Message: config.Messages.AlreadySolved}, nil
	}

	// The sliding tile sits where the blank lands after the first move.
	first := solution.Boards[1]
	tile := solution.Boards[0].Tile(first.EmptyIndex())
	tileNumber := 0
	if tile != nil {
		tileNumber = tile.Number + 1
	}

	return &HintResult{
		Move:       solution.Moves[0],
		TileNumber: tileNumber,
		Remaining:  solution.Length(),
		Message:    fmt.Sprintf("Slide tile %d %s", tileNumber, solution.Moves[0]),
	}, nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.GetState(), nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetMoveHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	// Calculate pagination
	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	// Get the slice of moves
	var moves []engine.MoveHistoryEntry
	if opts.Order == "desc" {
		// Reverse order (most recent first)
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else {
		// Normal chronological order
		if start < total {
			moves = history[start:end]
		}
	}

	// Ensure moves is not nil
	if moves == nil {
		moves = []engine.MoveHistoryEntry{}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available puzzle configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific puzzle configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.PuzzleConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a puzzle configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.PuzzleConfig) error {
	return s.configs.SaveConfig(configName, config)
}
