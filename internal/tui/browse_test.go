package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xcode96/SOC/internal/content"
)

func testGuide() *content.Guide {
	return &content.Guide{
		Title: "SOC Interactive Guide",
		Topics: []content.Topic{
			{ID: "toc", Title: "Welcome", Content: content.Blocks{
				content.Paragraph{Parts: []content.Part{content.Text{Text: "start here"}}},
			}},
			{ID: "triage", Title: "Triage", Content: content.Blocks{
				content.Heading{Level: 2, Text: "Triage"},
				content.Paragraph{Parts: []content.Part{content.Text{Text: "classify severity"}}},
			}},
		},
	}
}

func loaded(t *testing.T, guide *content.Guide, err error) browseModel {
	t.Helper()
	m := InitBrowseModel(func() (*content.Guide, error) { return guide, err }, 80)
	updated, _ := m.Update(GuideMsg{Guide: guide, Err: err})
	return updated.(browseModel)
}

func press(t *testing.T, m browseModel, key tea.KeyMsg) (browseModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(key)
	return updated.(browseModel), cmd
}

func TestBrowseLoading(t *testing.T) {
	m := InitBrowseModel(func() (*content.Guide, error) { return testGuide(), nil }, 80)
	assert.Contains(t, m.View(), "Loading guide")

	msg := m.loadGuide()()
	guideMsg, ok := msg.(GuideMsg)
	require.True(t, ok, "expected GuideMsg, got %T", msg)
	assert.NoError(t, guideMsg.Err)
	assert.Equal(t, "SOC Interactive Guide", guideMsg.Guide.Title)
}

func TestBrowseListsTopics(t *testing.T) {
	m := loaded(t, testGuide(), nil)

	view := m.View()
	assert.Contains(t, view, "SOC Interactive Guide")
	assert.Contains(t, view, "Topics: 2")
	assert.Contains(t, view, "triage")
	assert.Len(t, m.table.Rows(), 2)
}

func TestBrowseShowsSelectedTopic(t *testing.T) {
	m := loaded(t, testGuide(), nil)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.showingTopic)
	assert.Equal(t, "triage", m.selected.ID)
	assert.Contains(t, m.View(), "#triage")

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showingTopic)
	assert.Nil(t, cmd)
}

func TestBrowseQuit(t *testing.T) {
	m := loaded(t, testGuide(), nil)

	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestBrowseLoadError(t *testing.T) {
	m := loaded(t, nil, errors.New("guide soc not found"))

	assert.Contains(t, m.View(), "guide soc not found")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.showingTopic)
}
