// Package tui は分類待ちのIssueを対話的に振り分ける画面を提供する
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/douhashi/issuepipe/internal/pipeline"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginLeft(2)

	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).PaddingLeft(2)
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).PaddingLeft(2)
	helpStyle = lipgloss.NewStyle().Faint(true).PaddingLeft(2)
)

// Classifier はIssueを分類ディレクトリへ移動する
type Classifier interface {
	Classify(number int, bucket pipeline.Bucket) error
}

// Summary は振り分けの結果
type Summary struct {
	Accepted []int
	Blocked  []int
	Left     int
}

type issueItem struct {
	issue pipeline.PendingIssue
}

func (i issueItem) Title() string {
	title := i.issue.Title
	if title == "" {
		title = "(no title)"
	}
	return fmt.Sprintf("#%d %s", i.issue.Number, title)
}

func (i issueItem) Description() string { return i.issue.File }
func (i issueItem) FilterValue() string { return i.issue.Title }

// Model は振り分け画面のbubbleteaモデル
type Model struct {
	list       list.Model
	classifier Classifier
	summary    Summary
	status     string
	err        error
	quitting   bool
}

// NewModel は分類待ちのIssueから画面を作成する
func NewModel(c Classifier, pending []pipeline.PendingIssue) Model {
	items := make([]list.Item, len(pending))
	for i, p := range pending {
		items[i] = issueItem{issue: p}
	}

	l := list.New(items, list.NewDefaultDelegate(), 80, 20)
	l.Title = "Pending issues"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = titleStyle

	return Model{list: l, classifier: c}
}

// Summary は現在までの振り分け結果を返す
func (m Model) Summary() Summary {
	s := m.summary
	s.Left = len(m.list.Items())
	return s
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "a":
			return m.classify(pipeline.BucketAccepted)
		case "b":
			return m.classify(pipeline.BucketBlocked)
		case "s":
			m.list.CursorDown()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) classify(bucket pipeline.Bucket) (tea.Model, tea.Cmd) {
	item, ok := m.list.SelectedItem().(issueItem)
	if !ok {
		return m, nil
	}

	number := item.issue.Number
	if err := m.classifier.Classify(number, bucket); err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil

	if bucket == pipeline.BucketBlocked {
		m.summary.Blocked = append(m.summary.Blocked, number)
	} else {
		m.summary.Accepted = append(m.summary.Accepted, number)
	}
	m.status = fmt.Sprintf("#%d → %s", number, bucket)

	index := m.list.Index()
	m.list.RemoveItem(index)
	remaining := len(m.list.Items())
	if remaining == 0 {
		m.quitting = true
		return m, tea.Quit
	}
	if index >= remaining {
		index = remaining - 1
	}
	m.list.Select(index)
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	view := m.list.View() + "\n"
	if m.err != nil {
		view += errStyle.Render("error: "+m.err.Error()) + "\n"
	} else if m.status != "" {
		view += okStyle.Render(m.status) + "\n"
	}
	view += helpStyle.Render("a: accept  b: block  s: skip  q: quit")
	return view
}

// Run は振り分け画面を表示し、終了時の結果を返す
func Run(c Classifier, pending []pipeline.PendingIssue, opts ...tea.ProgramOption) (Summary, error) {
	final, err := tea.NewProgram(NewModel(c, pending), opts...).Run()
	if err != nil {
		return Summary{}, fmt.Errorf("failed to run sorter: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return Summary{}, fmt.Errorf("unexpected model type %T", final)
	}
	return m.Summary(), nil
}
