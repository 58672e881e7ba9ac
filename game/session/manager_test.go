package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/wricardo/mcp-training/npuzzle/game/engine"
)

func testPuzzleConfig() *engine.PuzzleConfig {
	config := &engine.PuzzleConfig{
		Name:        "Session Test",
		Description: "Configuration for session tests",
		GridSize:    3,
		Layout: []string{
			"1 2 3",
			"4 5 6",
			"7 _ 8",
		},
	}
	config.Messages.Welcome = "Welcome!"
	config.Messages.Solved = "Solved in %d moves!"
	config.Messages.CantMove = "Can't move"
	config.Messages.Shuffled = "Shuffled"
	config.Messages.MoveStatus = "Moves: %d, distance: %d"
	config.Messages.AlreadySolved = "Already solved"
	return config
}

func TestManager_Create(t *testing.T) {
	manager := NewManager()

	session, err := manager.Create("abcd", testPuzzleConfig())
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	if session.ID != "abcd" {
		t.Errorf("Expected session ID 'abcd', got '%s'", session.ID)
	}
	if session.Engine == nil {
		t.Error("Expected session to have an engine")
	}
	if session.CreatedAt.IsZero() {
		t.Error("Expected creation time to be set")
	}

	// Duplicate IDs are rejected
	if _, err := manager.Create("abcd", testPuzzleConfig()); !errors.Is(err, ErrSessionAlreadyExists) {
		t.Errorf("Expected ErrSessionAlreadyExists, got %v", err)
	}

	// Case-insensitive collision
	if _, err := manager.Create("ABCD", testPuzzleConfig()); !errors.Is(err, ErrSessionAlreadyExists) {
		t.Errorf("Expected case-insensitive collision, got %v", err)
	}
}

func TestManager_Create_GeneratedID(t *testing.T) {
	manager := NewManager()

	session, err := manager.Create("", testPuzzleConfig())
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	if len(session.ID) != 4 {
		t.Errorf("Expected 4-character generated ID, got '%s'", session.ID)
	}
	for _, r := range session.ID {
		if !strings.ContainsRune("0123456789abcdef", r) {
			t.Errorf("Expected hex ID, got '%s'", session.ID)
			break
		}
	}
}

func TestManager_Create_InvalidConfig(t *testing.T) {
	manager := NewManager()

	config := testPuzzleConfig()
	config.Name = ""

	if _, err := manager.Create("", config); err == nil {
		t.Error("Expected error for invalid config")
	}
	if manager.Count() != 0 {
		t.Error("Expected no session to be stored after failed create")
	}
}

func TestManager_Get(t *testing.T) {
	manager := NewManager()

	created, _ := manager.Create("ab12", testPuzzleConfig())

	session, err := manager.Get("ab12")
	if err != nil {
		t.Fatalf("Failed to get session: %v", err)
	}
	if session != created {
		t.Error("Expected the same session instance")
	}

	// Case-insensitive lookup
	session, err = manager.Get("AB12")
	if err != nil {
		t.Fatalf("Failed to get session with different case: %v", err)
	}
	if session != created {
		t.Error("Expected case-insensitive lookup to return the same session")
	}

	if _, err := manager.Get("zzzz"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_GetOrCreate(t *testing.T) {
	manager := NewManager()

	first, err := manager.GetOrCreate("ab12", testPuzzleConfig())
	if err != nil {
		t.Fatalf("Failed to get or create: %v", err)
	}

	second, err := manager.GetOrCreate("ab12", testPuzzleConfig())
	if err != nil {
		t.Fatalf("Failed to get existing: %v", err)
	}
	if first != second {
		t.Error("Expected the same session on second call")
	}
	if manager.Count() != 1 {
		t.Errorf("Expected 1 session, got %d", manager.Count())
	}
}

func TestManager_List(t *testing.T) {
	manager := NewManager()

	for i := 0; i < 3; i++ {
		manager.Create(fmt.Sprintf("ab0%d", i), testPuzzleConfig())
	}

	sessions := manager.List()
	if len(sessions) != 3 {
		t.Errorf("Expected 3 sessions, got %d", len(sessions))
	}
}

func TestManager_Delete(t *testing.T) {
	manager := NewManager()

	manager.Create("ab12", testPuzzleConfig())

	if err := manager.Delete("AB12"); err != nil {
		t.Fatalf("Failed to delete session: %v", err)
	}
	if _, err := manager.Get("ab12"); !errors.Is(err, ErrSessionNotFound) {
		t.Error("Expected session to be gone after delete")
	}

	if err := manager.Delete("ab12"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound deleting twice, got %v", err)
	}
}

func TestManager_UpdateLastAccessed(t *testing.T) {
	manager := NewManager()

	session, _ := manager.Create("ab12", testPuzzleConfig())
	before := session.LastAccessedAt

	time.Sleep(5 * time.Millisecond)
	if err := manager.UpdateLastAccessed("ab12"); err != nil {
		t.Fatalf("Failed to update last accessed: %v", err)
	}

	if !session.LastAccessedAt.After(before) {
		t.Error("Expected last accessed time to advance")
	}

	if err := manager.UpdateLastAccessed("zzzz"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_CleanupExpiredSessions(t *testing.T) {
	manager := NewManager()

	stale, _ := manager.Create("ab01", testPuzzleConfig())
	manager.Create("ab02", testPuzzleConfig())

	stale.LastAccessedAt = time.Now().Add(-2 * time.Hour)

	removed := manager.CleanupExpiredSessions(time.Hour)
	if removed != 1 {
		t.Errorf("Expected 1 removed session, got %d", removed)
	}
	if manager.Count() != 1 {
		t.Errorf("Expected 1 remaining session, got %d", manager.Count())
	}
	if _, err := manager.Get("ab01"); !errors.Is(err, ErrSessionNotFound) {
		t.Error("Expected stale session to be removed")
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	manager := NewManager()

	var wg sync.WaitGroup
	errs := make(chan error, 100)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			_, err := manager.Create(fmt.Sprintf("%04x", id), testPuzzleConfig())
			if err != nil {
				errs <- err
			}
		}(i)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Unexpected error during concurrent create: %v", err)
	}
	if manager.Count() != 50 {
		t.Errorf("Expected 50 sessions, got %d", manager.Count())
	}
}

func TestGenerateSessionID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	collisions := 0
	for i := 0; i < 100; i++ {
		id := generateSessionID()
		if len(id) != 4 {
			t.Fatalf("Expected 4-character ID, got '%s'", id)
		}
		if seen[id] {
			collisions++
		}
		seen[id] = true
	}
	// 100 draws from 65536 values collide rarely; a handful is tolerable
	if collisions > 5 {
		t.Errorf("Suspicious number of ID collisions: %d", collisions)
	}
}
