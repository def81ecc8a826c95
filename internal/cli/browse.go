package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/deptree/pkg/errors"
	"github.com/matzehuels/deptree/pkg/graph"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand opens the interactive tree browser.
func (c *CLI) browseCommand() *cobra.Command {
	opts := newSourceOpts()
	var reverse bool

	cmd := &cobra.Command{
		Use:   "browse [package]",
		Short: "Explore a dependency tree interactively",
		Example: `  deptree browse A --source repo.txt
  deptree browse --source ./Cargo.toml --transitive`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && opts.root == "" {
				opts.root = args[0]
			}
			l, err := opts.load(cmd.Context(), c.Logger)
			if err != nil {
				return err
			}
			root := l.root
			if len(args) == 1 {
				root = args[0]
			}
			if root == "" {
				return errors.New(errors.ErrCodeMissingField, "no package given; pass one as argument or with --root")
			}

			m := NewTreeModel(l.graph, root, reverse)
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithAltScreen()).Run()
			return err
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVarP(&reverse, "reverse", "r", false, "start with the reverse tree")
	return cmd
}

// =============================================================================
// TreeModel - Interactive dependency tree
// =============================================================================

// TreeModel is the bubbletea model of the tree browser. It shows the
// traversal records of one root; subtrees can be collapsed and the direction
// toggled.
type TreeModel struct {
	Graph     *graph.Graph
	Root      string
	Direction graph.Direction

	records   []graph.Record
	collapsed map[int]bool // indices into records
	Cursor    int          // index into the visible rows
	Offset    int
	Height    int
}

// NewTreeModel creates a browser for root.
func NewTreeModel(g *graph.Graph, root string, reverse bool) TreeModel {
	m := TreeModel{Graph: g, Root: root, Height: 20}
	if reverse {
		m.Direction = graph.Reverse
	}
	m.reload()
	return m
}

func (m *TreeModel) reload() {
	m.records = slices.Collect(m.Graph.Walk(m.Root, graph.WalkOptions{Direction: m.Direction}))
	m.collapsed = make(map[int]bool)
	m.Cursor, m.Offset = 0, 0
}

// hasChildren reports whether records[i] is followed by its subtree.
func (m TreeModel) hasChildren(i int) bool {
	return i+1 < len(m.records) && m.records[i+1].Depth > m.records[i].Depth
}

// visible returns the indices of the records not hidden by a collapsed
// ancestor, in display order.
func (m TreeModel) visible() []int {
	var rows []int
	for i := 0; i < len(m.records); i++ {
		rows = append(rows, i)
		if m.collapsed[i] {
			depth := m.records[i].Depth
			for i+1 < len(m.records) && m.records[i+1].Depth > depth {
				i++
			}
		}
	}
	return rows
}

// Lines returns the visible rows as plain tree lines.
func (m TreeModel) Lines() []string {
	var lines []string
	for _, i := range m.visible() {
		lines = append(lines, graph.FormatRecord(m.records[i]))
	}
	return lines
}

func (m TreeModel) Init() tea.Cmd {
	return nil
}

func (m TreeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		rows := m.visible()
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(rows)-1 {
				m.Cursor++
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = len(rows) - 1
		case "enter", " ", "right", "left", "l", "h":
			if m.Cursor < len(rows) {
				if i := rows[m.Cursor]; m.hasChildren(i) {
					m.collapsed = maps.Clone(m.collapsed)
					switch msg.String() {
					case "right", "l":
						delete(m.collapsed, i)
					case "left", "h":
						m.collapsed[i] = true
					default:
						m.collapsed[i] = !m.collapsed[i]
						if !m.collapsed[i] {
							delete(m.collapsed, i)
						}
					}
				}
			}
		case "e":
			m.collapsed = make(map[int]bool)
		case "c":
			m.collapsed = make(map[int]bool)
			for i, r := range m.records {
				if r.Depth > 0 && m.hasChildren(i) {
					m.collapsed[i] = true
				}
			}
			m.Cursor = 0
		case "r":
			if m.Direction == graph.Forward {
				m.Direction = graph.Reverse
			} else {
				m.Direction = graph.Forward
			}
			m.reload()
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}

	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	return m, nil
}

func (m TreeModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("%s (%s)", m.Root, m.Direction)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ fold  e/c expand/collapse all  r reverse  q quit"))
	b.WriteString("\n\n")

	rows := m.visible()
	end := min(m.Offset+m.Height, len(rows))
	for pos := m.Offset; pos < end; pos++ {
		i := rows[pos]
		r := m.records[i]

		marker := "  "
		switch {
		case m.collapsed[i]:
			marker = "▸ "
		case m.hasChildren(i):
			marker = "▾ "
		}

		name := r.Name
		if r.Status != graph.StatusExpanded {
			name += " " + listDimStyle.Render("("+r.Status.String()+")")
		}
		line := strings.Repeat("  ", r.Depth) + marker + name

		if pos == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(rows))))
	return b.String()
}
