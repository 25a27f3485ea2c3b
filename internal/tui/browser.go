// internal/tui/browser.go
// Package tui provides the interactive terminal leaderboard browser.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwiater/densebench/internal/catalog"
	"github.com/mwiater/densebench/internal/engine"
	"github.com/mwiater/densebench/internal/util"
)

const modelColumnWidth = 18

var (
	activeTabStyle   = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Padding(0, 1)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
)

// tab is one leaderboard ordering. An empty category orders by overall position.
type tab struct {
	label    string
	category catalog.Category
}

var tabs = []tab{
	{label: "Overall"},
	{label: string(catalog.Nuclear), category: catalog.Nuclear},
	{label: string(catalog.Gland), category: catalog.Gland},
	{label: string(catalog.Tissue), category: catalog.Tissue},
}

// Browser is a bubbletea model that shows the leaderboard re-sorted per category tab.
type Browser struct {
	title  string
	views  engine.Views
	active int
	table  table.Model
	width  int
	height int
}

// NewBrowser builds a browser over views, starting on the Overall tab.
func NewBrowser(views engine.Views, title string) *Browser {
	t := table.New(
		table.WithColumns(columns()),
		table.WithFocused(true),
		table.WithHeight(20),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).Bold(true)
	s.Selected = s.Selected.Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62"))
	t.SetStyles(s)

	b := &Browser{title: title, views: views, table: t}
	b.refresh()
	return b
}

func columns() []table.Column {
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Model", Width: modelColumnWidth},
		{Title: "Avg Rank", Width: 9},
	}
	for _, c := range catalog.NamedCategories {
		cols = append(cols, table.Column{Title: string(c), Width: 8})
	}
	return append(cols, table.Column{Title: "Best mDice", Width: 11})
}

// rowsFor renders the leaderboard for one tab.
func (b *Browser) rowsFor(t tab) []table.Row {
	ordered := b.views.CategoryLeaderboard(t.category)
	rows := make([]table.Row, 0, len(ordered))
	for i, lr := range ordered {
		pos := "-"
		switch {
		case t.category == "" && lr.Ranked:
			pos = fmt.Sprintf("%d", lr.Position)
		case t.category != "":
			if _, ok := lr.Categories.Average(t.category); ok {
				pos = fmt.Sprintf("%d", i+1)
			}
		}
		avgRank := util.Unranked
		if lr.Ranked {
			avgRank = lr.AvgRankDisplay
		}
		row := table.Row{pos, util.TruncateRunes(lr.ModelDisplay, modelColumnWidth-1), avgRank}
		for _, c := range catalog.NamedCategories {
			avg, _ := lr.Categories.Average(c)
			row = append(row, util.FormatRank(avg, engine.UnrankedSentinel))
		}
		best := util.Unranked
		if lr.Best != nil {
			best = lr.Best.MDiceDisplay
		}
		rows = append(rows, append(row, best))
	}
	return rows
}

func (b *Browser) refresh() {
	b.table.SetRows(b.rowsFor(tabs[b.active]))
	b.table.SetCursor(0)
}

func (b *Browser) selectTab(i int) {
	n := len(tabs)
	b.active = ((i % n) + n) % n
	b.refresh()
}

// ActiveTab returns the label of the selected tab.
func (b *Browser) ActiveTab() string { return tabs[b.active].label }

// Init implements tea.Model.
func (b *Browser) Init() tea.Cmd { return nil }

// Update handles tab switching and quitting; other keys move the table cursor.
func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "ctrl+c", "q":
			return b, tea.Quit
		case "left", "h", "shift+tab":
			b.selectTab(b.active - 1)
			return b, nil
		case "right", "l", "tab":
			b.selectTab(b.active + 1)
			return b, nil
		case "1", "2", "3", "4":
			b.selectTab(int(key[0] - '1'))
			return b, nil
		}
	case tea.WindowSizeMsg:
		b.width, b.height = msg.Width, msg.Height
		if h := msg.Height - 6; h > 3 {
			b.table.SetHeight(h)
		}
	}

	var cmd tea.Cmd
	b.table, cmd = b.table.Update(msg)
	return b, cmd
}

// View renders the tab bar, the table and a help line.
func (b *Browser) View() string {
	labels := make([]string, len(tabs))
	for i, t := range tabs {
		style := inactiveTabStyle
		if i == b.active {
			style = activeTabStyle
		}
		labels[i] = style.Render(fmt.Sprintf("%d %s", i+1, t.label))
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(b.title))
	sb.WriteString("\n")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, labels...))
	sb.WriteString("\n\n")
	sb.WriteString(b.table.View())
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render(" ←/→ or 1-4 switch category • ↑/↓ move • q quit"))
	return sb.String()
}

// Run starts the browser full screen and blocks until the user quits.
func Run(views engine.Views, title string) error {
	p := tea.NewProgram(NewBrowser(views, title), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
