// Command play is a terminal UI for the sliding puzzle. Arrow keys slide
// tiles, s shuffles, r resets, h asks the solver for the next optimal move.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wricardo/mcp-training/npuzzle/game/engine"
	"github.com/wricardo/mcp-training/npuzzle/game/solver"
)

type hintMsg struct {
	move       string
	tileNumber int
	remaining  int
	err        error
}

type model struct {
	eng       *engine.PuzzleEngine
	status    string
	hint      string
	solving   bool
	startTime time.Time
}

func initialModel(eng *engine.PuzzleEngine) model {
	return model{
		eng:       eng,
		status:    eng.GetConfig().Messages.Welcome,
		startTime: time.Now(),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

// hintCmd runs A* off the update loop and reports the first optimal move.
func hintCmd(eng *engine.PuzzleEngine) tea.Cmd {
	b := eng.Board()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		solution, err := solver.Solve(ctx, b, solver.Options{})
		if err != nil {
			return hintMsg{err: err}
		}
		if solution.Length() == 0 {
			return hintMsg{}
		}

		next := solution.Boards[1]
		tile := solution.Boards[0].Tile(next.EmptyIndex())
		return hintMsg{
			move:       solution.Moves[0],
			tileNumber: tile.Number + 1,
			remaining:  solution.Length(),
		}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k", "w":
			m.slide(engine.Up)
		case "down", "j":
			m.slide(engine.Down)
		case "left", "a":
			m.slide(engine.Left)
		case "right", "l", "d":
			m.slide(engine.Right)
		case "s":
			state := m.eng.Shuffle(m.eng.GetConfig().ShuffleMoves)
			m.status = state.Message
			m.hint = ""
		case "r":
			if state, err := m.eng.Reset(); err == nil {
				m.status = state.Message
			}
			m.hint = ""
		case "h":
			if m.solving {
				return m, nil
			}
			if m.eng.IsSolved() {
				m.hint = "Already solved"
				return m, nil
			}
			m.solving = true
			m.hint = "Thinking..."
			return m, hintCmd(m.eng)
		}

	case hintMsg:
		m.solving = false
		switch {
		case msg.err != nil:
			m.hint = fmt.Sprintf("Hint failed: %v", msg.err)
		case msg.move == "":
			m.hint = "Already solved"
		default:
			m.hint = fmt.Sprintf("Slide tile %d %s (%d moves remain)", msg.tileNumber, msg.move, msg.remaining)
		}
	}

	return m, nil
}

// slide applies one move and refreshes the status line.
func (m *model) slide(direction string) {
	if m.eng.Move(direction) {
		m.hint = ""
	}
	m.status = m.eng.GetState().Message
}

func (m model) View() string {
	state := m.eng.GetState()

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  •  %dx%d\n\n", state.ConfigName, state.GridSize, state.GridSize))
	b.WriteString(renderBoard(state))
	b.WriteString(fmt.Sprintf("\nSteps: %d   Distance: %d\n", state.Steps, state.Heuristic))

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	if m.hint != "" {
		b.WriteString("Hint: " + m.hint + "\n")
	}

	if state.Solved {
		b.WriteString(fmt.Sprintf("\n🎉 Solved in %s!\n", time.Since(m.startTime).Round(time.Second)))
	}

	b.WriteString("\narrows slide • s shuffle • r reset • h hint • q quit\n")
	return b.String()
}

// renderBoard draws the tile grid with box borders and '_' for the blank.
func renderBoard(state *engine.GameState) string {
	n := state.GridSize

	width := 1
	for _, label := range state.Labels {
		if len(label) > width {
			width = len(label)
		}
	}

	edge := "+" + strings.Repeat(strings.Repeat("-", width+2)+"+", n) + "\n"

	var b strings.Builder
	b.WriteString(edge)
	for y := 0; y < n; y++ {
		b.WriteString("|")
		for x := 0; x < n; x++ {
			label := state.Labels[y*n+x]
			if label == "" {
				label = "_"
			}
			b.WriteString(fmt.Sprintf(" %*s |", width, label))
		}
		b.WriteString("\n")
		b.WriteString(edge)
	}
	return b.String()
}

func main() {
	configName := flag.String("config", "", "Config name from the configs directory")
	size := flag.Int("size", 3, "Grid size when no config is given")
	shuffle := flag.Int("shuffle", 30, "Shuffle depth when no config is given")
	flag.Parse()

	var eng *engine.PuzzleEngine
	if *configName != "" {
		config, err := engine.LoadConfigByName(*configName)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		eng, err = engine.NewEngine(config)
		if err != nil {
			log.Fatalf("Failed to create engine: %v", err)
		}
	} else {
		config := engine.DefaultConfig()
		config.GridSize = *size
		config.ShuffleMoves = *shuffle
		var err error
		eng, err = engine.NewEngine(config)
		if err != nil {
			log.Fatalf("Failed to create engine: %v", err)
		}
	}

	p := tea.NewProgram(initialModel(eng), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}
