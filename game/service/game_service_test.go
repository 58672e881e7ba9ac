package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/wricardo/mcp-training/npuzzle/game/engine"
	"github.com/wricardo/mcp-training/npuzzle/game/service"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
	saves    int
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
	}
}

func (m *MockSessionManager) Create(id string, config *engine.PuzzleConfig) (*service.Session, error) {
	// Generate ID if empty (mimics real session manager behavior)
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}

	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	eng, err := engine.NewEngine(config)
	if err != nil {
		return nil, err
	}

	session := &service.Session{
		ID:             id,
		Engine:         eng,
		Config:         config,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, errors.New("session not found")
	}
	return session, nil
}

func (m *MockSessionManager) GetOrCreate(id string, config *engine.PuzzleConfig) (*service.Session, error) {
	if session, exists := m.sessions[id]; exists {
		return session, nil
	}
	return m.Create(id, config)
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	if session, exists := m.sessions[id]; exists {
		session.LastAccessedAt = time.Now()
		return nil
	}
	return errors.New("session not found")
}

func (m *MockSessionManager) Save(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return errors.New("session not found")
	}
	m.saves++
	return nil
}

// MockConfigManager implements service.ConfigManager for testing
type MockConfigManager struct {
	configs map[string]*engine.PuzzleConfig
}

func newTestConfig(name string) *engine.PuzzleConfig {
	config := &engine.PuzzleConfig{
		Name:        name,
		Description: "Test configuration",
		GridSize:    3,
		Layout: []string{
			"1 2 3",
			"4 5 6",
			"7 _ 8",
		},
	}
	config.Messages.Welcome = "Welcome to test!"
	config.Messages.Solved = "Solved in %d moves!"
	config.Messages.CantMove = "Can't move there!"
	config.Messages.Shuffled = "Shuffled!"
	config.Messages.MoveStatus = "Moves: %d, distance: %d"
	config.Messages.AlreadySolved = "Already solved"
	return config
}

func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		configs: map[string]*engine.PuzzleConfig{
			"test": newTestConfig("test"),
		},
	}
}

func (m *MockConfigManager) LoadConfig(name string) (*engine.PuzzleConfig, error) {
	config, exists := m.configs[name]
	if !exists {
		return nil, errors.New("configuration not found")
	}
	return config, nil
}

func (m *MockConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	var infos []*service.ConfigInfo
	for id, config := range m.configs {
		infos = append(infos, &service.ConfigInfo{
			Filename:    id + ".json",
			ConfigID:    id,
			Name:        config.Name,
			Description: config.Description,
			GridSize:    config.GridSize,
			HasLayout:   len(config.Layout) > 0,
		})
	}
	return infos, nil
}

func (m *MockConfigManager) GetDefault() *engine.PuzzleConfig {
	return m.configs["test"]
}

func (m *MockConfigManager) SaveConfig(name string, config *engine.PuzzleConfig) error {
	m.configs[name] = config
	return nil
}

func newTestService() (service.GameService, *MockSessionManager) {
	sessions := NewMockSessionManager()
	return service.NewGameService(sessions, NewMockConfigManager()), sessions
}

func TestCreateSession(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "test")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	if info.ID == "" {
		t.Error("Expected non-empty session ID")
	}
	if info.ConfigName != "test" {
		t.Errorf("Expected config name 'test', got '%s'", info.ConfigName)
	}
	if info.GameState == nil {
		t.Fatal("Expected game state")
	}
	if info.GameState.Steps != 0 {
		t.Errorf("Expected 0 steps for new session, got %d", info.GameState.Steps)
	}
}

func TestCreateSession_UnknownConfig(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateSession(context.Background(), "missing")
	if err == nil {
		t.Error("Expected error for unknown config")
	}
}

func TestCreateSession_DefaultConfig(t *testing.T) {
	svc, _ := newTestService()

	info, err := svc.CreateSession(context.Background(), "")
	if err != nil {
		t.Fatalf("Failed to create session with default config: %v", err)
	}
	if info.ConfigName != "test" {
		t.Errorf("Expected default config id 'test', got '%s'", info.ConfigName)
	}
}

func TestGetSession(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, _ := svc.CreateSession(ctx, "test")

	info, err := svc.GetSession(ctx, created.ID)
	if err != nil {
		t.Fatalf("Failed to get session: %v", err)
	}
	if info.ID != created.ID {
		t.Errorf("Expected session ID '%s', got '%s'", created.ID, info.ID)
	}

	if _, err := svc.GetSession(ctx, "missing"); err == nil {
		t.Error("Expected error for missing session")
	}
}

func TestListAndDeleteSessions(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	first, _ := svc.CreateSession(ctx, "test")
	svc.CreateSession(ctx, "test")

	sessions, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("Failed to list sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Errorf("Expected 2 sessions, got %d", len(sessions))
	}

	if err := svc.DeleteSession(ctx, first.ID); err != nil {
		t.Fatalf("Failed to delete session: %v", err)
	}

	sessions, _ = svc.ListSessions(ctx)
	if len(sessions) != 1 {
		t.Errorf("Expected 1 session after delete, got %d", len(sessions))
	}
}

func TestMove(t *testing.T) {
	svc, sessions := newTestService()
	ctx := context.Background()

	created, _ := svc.CreateSession(ctx, "test")

	// Blank at slot 7: tile 8 slides left and solves the puzzle.
	result, err := svc.Move(ctx, created.ID, "left", false)
	if err != nil {
		t.Fatalf("Failed to move: %v", err)
	}

	if !result.Success {
		t.Error("Expected successful move")
	}
	if !result.GameState.Solved {
		t.Error("Expected puzzle solved after the move")
	}
	if result.Step == nil {
		t.Fatal("Expected step info")
	}
	if result.Step.TileNumber != 8 {
		t.Errorf("Expected tile 8 to have moved, got %d", result.Step.TileNumber)
	}

	solvedEvent := false
	for _, ev := range result.Events {
		if ev.Type == "solved" {
			solvedEvent = true
		}
	}
	if !solvedEvent {
		t.Error("Expected a solved event")
	}

	if sessions.saves == 0 {
		t.Error("Expected session to be persisted after move")
	}
}

func TestMove_Invalid(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, _ := svc.CreateSession(ctx, "test")

	// Blank on the bottom row: no tile below it to slide up.
	result, err := svc.Move(ctx, created.ID, "up", false)
	if err != nil {
		t.Fatalf("Move returned error: %v", err)
	}
	if result.Success {
		t.Error("Expected blocked move to report failure")
	}
	if result.GameState.Steps != 0 {
		t.Error("Expected blocked move to leave the board unchanged")
	}
	if len(result.PossibleMoves) == 0 {
		t.Error("Expected possible moves in result")
	}
}

func TestMove_WithReset(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, _ := svc.CreateSession(ctx, "test")
	svc.Move(ctx, created.ID, "down", false)

	result, err := svc.Move(ctx, created.ID, "left", true)
	if err != nil {
		t.Fatalf("Failed to move with reset: %v", err)
	}
	if result.GameState.Steps != 1 {
		t.Errorf("Expected 1 step after reset+move, got %d", result.GameState.Steps)
	}

	resetEvent := false
	for _, ev := range result.Events {
		if ev.Type == "reset" {
			resetEvent = true
		}
	}
	if !resetEvent {
		t.Error("Expected a reset event")
	}
}

func TestMoveTile(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, _ := svc.CreateSession(ctx, "test")

	result, err := svc.MoveTile(ctx, created.ID, 8)
	if err != nil {
		t.Fatalf("Failed to move tile: %v", err)
	}
	if !result.Success {
		t.Error("Expected adjacent tile to move")
	}
	if !result.GameState.Solved {
		t.Error("Expected puzzle solved")
	}

	// Non-adjacent tile
	created2, _ := svc.CreateSession(ctx, "test")
	result, err = svc.MoveTile(ctx, created2.ID, 1)
	if err != nil {
		t.Fatalf("MoveTile returned error: %v", err)
	}
	if result.Success {
		t.Error("Expected non-adjacent tile not to move")
	}
}

func TestBulkMove(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, _ := svc.CreateSession(ctx, "test")

	// Move away and back, then solve.
	result, err := svc.BulkMove(ctx, created.ID, []string{"down", "up", "left"}, false)
	if err != nil {
		t.Fatalf("Failed to bulk move: %v", err)
	}

	if result.MovesExecuted != 3 {
		t.Errorf("Expected 3 moves executed, got %d", result.MovesExecuted)
	}
	if !result.Success {
		t.Error("Expected bulk move success")
	}
	if !result.Solved {
		t.Error("Expected puzzle solved at the end")
	}
	if result.StopReasonCode != "solved" {
		t.Errorf("Expected stop reason 'solved', got '%s'", result.StopReasonCode)
	}
	if len(result.Steps) != 3 {
		t.Errorf("Expected 3 step records, got %d", len(result.Steps))
	}
	if result.EndSteps != 3 {
		t.Errorf("Expected end steps 3, got %d", result.EndSteps)
	}
}

func TestBulkMove_StopsOnInvalid(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, _ := svc.CreateSession(ctx, "test")

	result, err := svc.BulkMove(ctx, created.ID, []string{"up", "left"}, false)
	if err != nil {
		t.Fatalf("Failed to bulk move: %v", err)
	}

	if result.Success {
		t.Error("Expected bulk move failure")
	}
	if result.MovesExecuted != 0 {
		t.Errorf("Expected 0 moves executed, got %d", result.MovesExecuted)
	}
	if result.StopReasonCode != "invalid_move" {
		t.Errorf("Expected stop reason 'invalid_move', got '%s'", result.StopReasonCode)
	}
	if result.StoppedOnMove != 1 {
		t.Errorf("Expected stop on move 1, got %d", result.StoppedOnMove)
	}
}

func TestBulkMove_Truncation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, _ := svc.CreateSession(ctx, "test")

	moves := make([]string, engine.MaxBulkMoves+10)
	for i := range moves {
		if i%2 == 0 {
			moves[i] = "down"
		} else {
			moves[i] = "up"
		}
	}

	result, err := svc.BulkMove(ctx, created.ID, moves, false)
	if err != nil {
		t.Fatalf("Failed to bulk move: %v", err)
	}
	if !result.Truncated {
		t.Error("Expected truncation flag")
	}
	if result.Limit != engine.MaxBulkMoves {
		t.Errorf("Expected limit %d, got %d", engine.MaxBulkMoves, result.Limit)
	}
	if result.MovesExecuted > engine.MaxBulkMoves {
		t.Errorf("Expected at most %d moves executed, got %d", engine.MaxBulkMoves, result.MovesExecuted)
	}
}

func TestShuffleAndReset(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, _ := svc.CreateSession(ctx, "test")

	state, err := svc.Shuffle(ctx, created.ID, 20)
	if err != nil {
		t.Fatalf("Failed to shuffle: %v", err)
	}
	if state.Steps != 0 {
		t.Errorf("Expected 0 steps after shuffle, got %d", state.Steps)
	}

	if _, err := svc.Shuffle(ctx, created.ID, engine.MaxShuffleMoves+1); err == nil {
		t.Error("Expected error for excessive shuffle depth")
	}

	state, err = svc.Reset(ctx, created.ID)
	if err != nil {
		t.Fatalf("Failed to reset: %v", err)
	}
	if state.EmptyIndex != 7 {
		t.Errorf("Expected the pinned layout restored, got blank at %d", state.EmptyIndex)
	}
}

func TestSolve(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, _ := svc.CreateSession(ctx, "test")

	result, err := svc.Solve(ctx, created.ID)
	if err != nil {
		t.Fatalf("Failed to solve: %v", err)
	}
	if result.Length != 1 {
		t.Errorf("Expected 1-move solution, got %d", result.Length)
	}
	if result.Moves[0] != "left" {
		t.Errorf("Expected move 'left', got '%s'", result.Moves[0])
	}

	// Replaying the solution solves the board.
	bulk, err := svc.BulkMove(ctx, created.ID, result.Moves, false)
	if err != nil {
		t.Fatalf("Failed to replay solution: %v", err)
	}
	if !bulk.Solved {
		t.Error("Expected replayed solution to solve the puzzle")
	}

	// Solving a solved board reports already solved.
	result, err = svc.Solve(ctx, created.ID)
	if err != nil {
		t.Fatalf("Failed to solve solved board: %v", err)
	}
	if !result.AlreadySolved {
		t.Error("Expected already-solved result")
	}
}

func TestHint(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, _ := svc.CreateSession(ctx, "test")

	hint, err := svc.Hint(ctx, created.ID)
	if err != nil {
		t.Fatalf("Failed to get hint: %v", err)
	}
	if hint.Move != "left" {
		t.Errorf("Expected hint 'left', got '%s'", hint.Move)
	}
	if hint.TileNumber != 8 {
		t.Errorf("Expected tile 8 in hint, got %d", hint.TileNumber)
	}
	if hint.Remaining != 1 {
		t.Errorf("Expected 1 remaining move, got %d", hint.Remaining)
	}

	// Following the hint works.
	result, err := svc.MoveTile(ctx, created.ID, hint.TileNumber)
	if err != nil {
		t.Fatalf("Failed to follow hint: %v", err)
	}
	if !result.GameState.Solved {
		t.Error("Expected puzzle solved after following the hint")
	}
}

func TestGetMoveHistory(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, _ := svc.CreateSession(ctx, "test")

	for i := 0; i < 5; i++ {
		svc.Move(ctx, created.ID, "down", false)
		svc.Move(ctx, created.ID, "up", false)
	}

	resp, err := svc.GetMoveHistory(ctx, created.ID, service.HistoryOptions{Limit: 4})
	if err != nil {
		t.Fatalf("Failed to get history: %v", err)
	}
	if resp.TotalMoves != 10 {
		t.Errorf("Expected 10 total moves, got %d", resp.TotalMoves)
	}
	if len(resp.Moves) != 4 {
		t.Errorf("Expected 4 moves on page, got %d", len(resp.Moves))
	}
	if resp.TotalPages != 3 {
		t.Errorf("Expected 3 pages, got %d", resp.TotalPages)
	}
	if !resp.HasNext {
		t.Error("Expected next page")
	}
	if resp.HasPrevious {
		t.Error("Expected no previous page on page 1")
	}

	// Default desc order: most recent first
	if resp.Moves[0].MoveNumber != 10 {
		t.Errorf("Expected most recent move first, got move %d", resp.Moves[0].MoveNumber)
	}

	// Ascending order
	resp, _ = svc.GetMoveHistory(ctx, created.ID, service.HistoryOptions{Limit: 4, Order: "asc"})
	if resp.Moves[0].MoveNumber != 1 {
		t.Errorf("Expected oldest move first in asc order, got move %d", resp.Moves[0].MoveNumber)
	}
}

func TestListConfigs(t *testing.T) {
	svc, _ := newTestService()

	configs, err := svc.ListConfigs(context.Background())
	if err != nil {
		t.Fatalf("Failed to list configs: %v", err)
	}
	if len(configs) != 1 {
		t.Errorf("Expected 1 config, got %d", len(configs))
	}
	if configs[0].ConfigID != "test" {
		t.Errorf("Expected config id 'test', got '%s'", configs[0].ConfigID)
	}
}
