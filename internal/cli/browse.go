package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/mhalvors/golevels/pkg/ontology"
	"github.com/mhalvors/golevels/pkg/summary"
)

// browseCommand creates the interactive summary browser.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <summary-file>",
		Short: "Browse a summary table interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := summary.ReadFile(args[0])
			if err != nil {
				return err
			}
			model := newBrowseModel(t)
			_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}
}

var (
	browseSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	browseDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	browseHeaderStyle   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// browseFilters cycles through no filter plus the three ontologies.
var browseFilters = []ontology.Ontology{"", ontology.BP, ontology.CC, ontology.MF}

// browseModel is the bubbletea model for scrolling through summary rows.
type browseModel struct {
	all     []summary.Record
	rows    []summary.Record // rows after the ontology filter
	filter  int              // index into browseFilters
	cursor  int
	offset  int
	height  int
}

func newBrowseModel(t *summary.Table) browseModel {
	m := browseModel{
		all:    t.Records,
		height: 15,
	}
	m.applyFilter()
	return m
}

func (m *browseModel) applyFilter() {
	ont := browseFilters[m.filter]
	if ont == "" {
		m.rows = m.all
	} else {
		m.rows = nil
		for _, r := range m.all {
			if r.Ontology == ont {
				m.rows = append(m.rows, r)
			}
		}
	}
	m.cursor = 0
	m.offset = 0
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "pgup":
			m.cursor -= m.height
			if m.cursor < 0 {
				m.cursor = 0
			}
			if m.cursor < m.offset {
				m.offset = m.cursor
			}
		case "pgdown":
			m.cursor += m.height
			if m.cursor > len(m.rows)-1 {
				m.cursor = len(m.rows) - 1
			}
			if m.cursor >= m.offset+m.height {
				m.offset = m.cursor - m.height + 1
			}
		case "o":
			m.filter = (m.filter + 1) % len(browseFilters)
			m.applyFilter()
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 8
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m browseModel) View() string {
	var b strings.Builder

	title := "Summary"
	if ont := browseFilters[m.filter]; ont != "" {
		title = fmt.Sprintf("Summary · %s", ont)
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(browseDimStyle.Render("↑/↓ navigate  o filter ontology  q quit"))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(browseDimStyle.Render("  no rows"))
		return b.String()
	}

	end := m.offset + m.height
	if end > len(m.rows) {
		end = len(m.rows)
	}

	rows := [][]string{}
	for i := m.offset; i < end; i++ {
		r := m.rows[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		terminal := ""
		if r.TerminalNode {
			terminal = "✓"
		}
		rows = append(rows, []string{
			cursor,
			r.ID,
			strconv.Itoa(r.ShortestPath),
			strconv.Itoa(r.LongestPath),
			terminal,
			string(r.Ontology),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Term", "Shortest", "Longest", "Terminal", "Ontology").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return browseHeaderStyle
			}
			if m.offset+row == m.cursor {
				return browseSelectedStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(browseDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.rows))))

	return b.String()
}
