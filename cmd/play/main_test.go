package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wricardo/mcp-training/npuzzle/game/engine"
)

func testEngine(t *testing.T) *engine.PuzzleEngine {
	t.Helper()
	config := engine.DefaultConfig()
	config.ShuffleMoves = 0
	config.Layout = []string{
		"1 2 3",
		"4 5 6",
		"7 _ 8",
	}

	eng, err := engine.NewEngine(config)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	return eng
}

func TestRenderBoard(t *testing.T) {
	eng := testEngine(t)
	out := renderBoard(eng.GetState())

	for _, want := range []string{"| 1 | 2 | 3 |", "| 4 | 5 | 6 |", "| 7 | _ | 8 |"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in board render, got:\n%s", want, out)
		}
	}
}

func TestModel_SlideSolves(t *testing.T) {
	m := initialModel(testEngine(t))

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = updated.(model)

	if !m.eng.IsSolved() {
		t.Error("Expected board solved after sliding tile 8 left")
	}

	view := m.View()
	if !strings.Contains(view, "Solved") {
		t.Errorf("Expected solved banner in view, got:\n%s", view)
	}
}

func TestModel_Reset(t *testing.T) {
	m := initialModel(testEngine(t))

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = updated.(model)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = updated.(model)

	if m.eng.GetSteps() != 0 {
		t.Errorf("Expected steps reset to 0, got %d", m.eng.GetSteps())
	}
	if m.eng.IsSolved() {
		t.Error("Expected board back at the starting layout after reset")
	}
}

func TestModel_Quit(t *testing.T) {
	m := initialModel(testEngine(t))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
}

func TestModel_HintMessage(t *testing.T) {
	m := initialModel(testEngine(t))

	updated, _ := m.Update(hintMsg{move: "left", tileNumber: 8, remaining: 1})
	m = updated.(model)

	if !strings.Contains(m.hint, "tile 8") || !strings.Contains(m.hint, "left") {
		t.Errorf("Unexpected hint text: %q", m.hint)
	}
}
