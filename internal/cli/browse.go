package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/densitool/pkg/design"
	"github.com/matzehuels/densitool/pkg/report"
)

// listSelectedStyle marks the cursor row; other rows use the shared styles.
var listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

// DesignListModel is the bubbletea model for the interactive density
// browser. Designs are shown sorted by density, densest first.
type DesignListModel struct {
	Designs []design.Design
	Cursor  int
	Height  int
	Offset  int
}

// NewDesignListModel creates a browser over the given designs.
func NewDesignListModel(designs []design.Design) DesignListModel {
	return DesignListModel{
		Designs: designs,
		Cursor:  0,
		Height:  15,
		Offset:  0,
	}
}

func (m DesignListModel) Init() tea.Cmd {
	return nil
}

func (m DesignListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Designs)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m DesignListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Designs by density"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Designs) {
		end = len(m.Designs)
	}

	for i := m.Offset; i < end; i++ {
		d := m.Designs[i]

		cursor := "  "
		style := StyleValue
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}

		row := fmt.Sprintf("%-12s %10.6f poly/mm²", d.Name, d.Density)
		detail := fmt.Sprintf("   %.2f mm²  %d polys", d.AreaMM2, d.PolyCount)

		b.WriteString(cursor + style.Render(row) + StyleDim.Render(detail))
		b.WriteString("\n")
	}

	if len(m.Designs) == 0 {
		b.WriteString(StyleDim.Render("  (empty listing)"))
		b.WriteString("\n")
	}

	return b.String()
}

// browseCommand creates the browse command: an interactive terminal view of
// the density ranking.
func (c *CLI) browseCommand() *cobra.Command {
	var opts loadOpts

	cmd := &cobra.Command{
		Use:   "browse [file]",
		Short: "Browse designs interactively, sorted by density",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd, &opts)
			if err != nil {
				return err
			}
			path, err := resolveInput(args, cfg)
			if err != nil {
				return err
			}
			lib, err := c.loadLibrary(cmd.Context(), path, cfg, &opts)
			if err != nil {
				return err
			}

			m := NewDesignListModel(report.ByDensity(lib))
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	registerLoadFlags(cmd, &opts)

	return cmd
}
