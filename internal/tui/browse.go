package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xcode96/SOC/internal/content"
	"github.com/xcode96/SOC/internal/preview"
	"github.com/xcode96/SOC/internal/styles"
)

var (
	tableStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(styles.Border))

	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(styles.Cyan))
)

// GuideMsg is sent when the guide has been loaded
type GuideMsg struct {
	Guide *content.Guide
	Err   error
}

// LoadFunc fetches the guide to browse
type LoadFunc func() (*content.Guide, error)

type browseModel struct {
	spinner      spinner.Model
	table        table.Model
	viewport     viewport.Model
	guide        *content.Guide
	err          error
	ready        bool
	showingTopic bool
	selected     *content.Topic
	wordWrap     int
	load         LoadFunc
}

// InitBrowseModel creates a topic browser for the guide returned by load
func InitBrowseModel(load LoadFunc, wordWrap int) browseModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	columns := []table.Column{
		{Title: "ID", Width: 24},
		{Title: "Title", Width: 40},
		{Title: "Blocks", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(styles.Border)).
		BorderBottom(true).
		Bold(false)
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color(styles.Background)).
		Background(lipgloss.Color(styles.Yellow)).
		Bold(false)
	t.SetStyles(ts)

	vp := viewport.New(100, 20)
	vp.Style = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(styles.Border)).
		Padding(1)

	return browseModel{
		spinner:  s,
		table:    t,
		viewport: vp,
		wordWrap: wordWrap,
		load:     load,
	}
}

// Browse runs the topic browser until the user quits
func Browse(load LoadFunc, wordWrap int) error {
	_, err := tea.NewProgram(InitBrowseModel(load, wordWrap), tea.WithAltScreen()).Run()
	return err
}

func (m browseModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadGuide())
}

func (m browseModel) loadGuide() tea.Cmd {
	load := m.load
	return func() tea.Msg {
		guide, err := load()
		return GuideMsg{Guide: guide, Err: err}
	}
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 6

	case tea.KeyMsg:
		if m.showingTopic {
			switch msg.String() {
			case "q", "esc":
				m.showingTopic = false
				return m, nil
			case "up", "k", "down", "j", "pgup", "pgdown":
				m.viewport, cmd = m.viewport.Update(msg)
				return m, cmd
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k", "down", "j":
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		case "enter":
			if m.guide == nil || len(m.guide.Topics) == 0 {
				return m, nil
			}
			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.guide.Topics) {
				return m, nil
			}
			m.selected = &m.guide.Topics[idx]
			m.showingTopic = true
			m.viewport.SetContent(preview.Render(preview.Markdown(m.selected.Content), m.wordWrap))
			m.viewport.GotoTop()
			return m, nil
		}

	case spinner.TickMsg:
		if m.ready {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case GuideMsg:
		m.ready = true
		m.guide = msg.Guide
		m.err = msg.Err

		if m.guide != nil {
			rows := make([]table.Row, 0, len(m.guide.Topics))
			for _, topic := range m.guide.Topics {
				rows = append(rows, table.Row{
					topic.ID,
					topic.Title,
					fmt.Sprintf("%d", len(topic.Content)),
				})
			}
			m.table.SetRows(rows)
		}
		return m, nil
	}

	return m, nil
}

func (m browseModel) View() string {
	var b strings.Builder

	if m.err != nil {
		return styles.ErrorStyle.Render("✗ Error: "+m.err.Error()) + "\n"
	}

	if !m.ready || m.guide == nil {
		b.WriteString(fmt.Sprintf("%s Loading guide...\n", m.spinner.View()))
		return b.String()
	}

	b.WriteString(styles.TitleStyle.Render(m.guide.Title))
	b.WriteString("\n\n")

	if m.showingTopic {
		b.WriteString(styles.HighlightStyle.Render(m.selected.Title))
		b.WriteString(" ")
		b.WriteString(styles.DimStyle.Render("#" + m.selected.ID))
		b.WriteString("\n\n")
		b.WriteString(m.viewport.View())
		b.WriteString("\n\n")
		b.WriteString(styles.HelpStyle.Render("↑/k up • ↓/j down • esc/q back"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(styles.DimStyle.Render(fmt.Sprintf("Topics: %d", len(m.guide.Topics))))
	b.WriteString("\n\n")
	b.WriteString(tableStyle.Render(m.table.View()))
	b.WriteString("\n\n")
	b.WriteString(styles.HelpStyle.Render("↑/k up • ↓/j down • enter preview • q quit"))
	b.WriteString("\n")

	return b.String()
}
