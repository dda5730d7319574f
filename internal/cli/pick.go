package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/knightpaths/pkg/board"
)

// Board styles
var (
	squareLightStyle = lipgloss.NewStyle().Background(lipgloss.Color("252")).Foreground(lipgloss.Color("0")).Padding(0, 1)
	squareDarkStyle  = lipgloss.NewStyle().Background(lipgloss.Color("244")).Foreground(lipgloss.Color("0")).Padding(0, 1)
	squareStartStyle = lipgloss.NewStyle().Background(colorGreen).Foreground(lipgloss.Color("0")).Bold(true).Padding(0, 1)
	squareEndStyle   = lipgloss.NewStyle().Background(colorOrange).Foreground(lipgloss.Color("0")).Bold(true).Padding(0, 1)
	boardLabelStyle  = lipgloss.NewStyle().Foreground(colorGray).Padding(0, 1)
)

const (
	markKnight = "♞"
	markReach  = "·"
)

// =============================================================================
// Key Bindings
// =============================================================================

type boardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Select key.Binding
	Undo   key.Binding
	Quit   key.Binding
}

func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Select, k.Undo, k.Quit}
}

func (k boardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var boardKeys = boardKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
	Select: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("⏎", "select")),
	Undo:   key.NewBinding(key.WithKeys("backspace", "u"), key.WithHelp("u", "undo")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// =============================================================================
// BoardModel - Interactive square selection
// =============================================================================

// BoardModel is the bubbletea model for picking a start and an end square.
// The cursor moves over the board; the first selection fixes the start and
// the second fixes the end and quits.
type BoardModel struct {
	Cursor board.Position
	Start  *board.Position
	End    *board.Position
	Quit   bool

	keys boardKeyMap
	help help.Model
}

// NewBoardModel creates a board model with the cursor on d4.
func NewBoardModel() BoardModel {
	return BoardModel{
		Cursor: board.Position{Col: 4, Row: 5},
		keys:   boardKeys,
		help:   help.New(),
	}
}

func (m BoardModel) Init() tea.Cmd {
	return nil
}

func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.Quit = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Up):
		if m.Cursor.Row > 1 {
			m.Cursor.Row--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.Cursor.Row < board.Size {
			m.Cursor.Row++
		}
	case key.Matches(keyMsg, m.keys.Left):
		if m.Cursor.Col > 1 {
			m.Cursor.Col--
		}
	case key.Matches(keyMsg, m.keys.Right):
		if m.Cursor.Col < board.Size {
			m.Cursor.Col++
		}
	case key.Matches(keyMsg, m.keys.Undo):
		m.Start = nil
	case key.Matches(keyMsg, m.keys.Select):
		pos := m.Cursor
		if m.Start == nil {
			m.Start = &pos
			return m, nil
		}
		m.End = &pos
		return m, tea.Quit
	}
	return m, nil
}

// Selected returns the chosen squares once both have been picked.
func (m BoardModel) Selected() (start, end board.Position, ok bool) {
	if m.Quit || m.Start == nil || m.End == nil {
		return board.Position{}, board.Position{}, false
	}
	return *m.Start, *m.End, true
}

func (m BoardModel) View() string {
	var b strings.Builder

	title := "Pick the starting square"
	if m.Start != nil {
		title = "Pick the ending square"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(m.boardTable().Render())
	b.WriteString("\n")

	status := "start: " + m.Cursor.String()
	if m.Start != nil {
		status = "start: " + m.Start.String() + "  end: " + m.Cursor.String()
	}
	b.WriteString(StyleDim.Render(status))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// boardTable renders rank 8 at the top, with the knight on the cursor and
// dots on the squares one move from the chosen start.
func (m BoardModel) boardTable() *table.Table {
	reach := make(map[board.Position]bool)
	if m.Start != nil {
		for _, n := range board.Neighbors(*m.Start) {
			reach[n] = true
		}
	}

	rows := make([][]string, 0, board.Size)
	for row := 1; row <= board.Size; row++ {
		cells := []string{string(rune('0' + board.Size + 1 - row))}
		for col := 1; col <= board.Size; col++ {
			p := board.Position{Col: col, Row: row}
			cell := " "
			switch {
			case p == m.Cursor:
				cell = markKnight
			case reach[p]:
				cell = markReach
			}
			cells = append(cells, cell)
		}
		rows = append(rows, cells)
	}

	return table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("", "a", "b", "c", "d", "e", "f", "g", "h").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 || col == 0 {
				return boardLabelStyle
			}
			p := board.Position{Col: col, Row: row + 1}
			switch {
			case m.Start != nil && p == *m.Start:
				return squareStartStyle
			case m.Start != nil && p == m.Cursor:
				return squareEndStyle
			case (p.Col+p.Row)%2 == 0:
				return squareLightStyle
			default:
				return squareDarkStyle
			}
		})
}

// runBoardPicker shows the board on out and returns the chosen squares.
func runBoardPicker(ctx context.Context, in io.Reader, out io.Writer) (board.Position, board.Position, bool, error) {
	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(out)}
	if in != nil && in != io.Reader(os.Stdin) {
		opts = append(opts, tea.WithInput(in))
	}

	final, err := tea.NewProgram(NewBoardModel(), opts...).Run()
	if err != nil {
		return board.Position{}, board.Position{}, false, err
	}
	start, end, ok := final.(BoardModel).Selected()
	return start, end, ok, nil
}

// pickCommand creates the interactive board picker command.
func (c *CLI) pickCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Choose both squares on an interactive board, then find paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.applyConfig(cmd, c.Config)
			ctx := withLogger(cmd.Context(), c.Logger)

			start, end, ok, err := runBoardPicker(ctx, c.In, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if !ok {
				printWarning(cmd.OutOrStdout(), "No squares selected")
				return nil
			}

			c.Logger.Debug("picked squares", "start", start, "end", end)
			return c.runFind(ctx, cmd, start, end, &flags)
		},
	}

	flags.register(cmd)
	return cmd
}
