package ui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/tasklist-go/internal/config"
	"github.com/nibzard/tasklist-go/internal/todo"
	"github.com/nibzard/tasklist-go/internal/view"
)

type focus int

const (
	focusInput focus = iota
	focusList
)

// Screen layout. Mouse handling maps clicks back through these offsets, so
// View must keep them.
const (
	inputLine    = 1 // title on line 0
	rowsTop      = 3 // input, then a blank line
	gutterWidth  = 2 // "> "
	markWidth    = 2 // "✓ "
	controlGap   = 2
	deleteLabel  = "[x]"
	textStart    = gutterWidth + markWidth
	emptyMessage = "Nothing to do."
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	doneStyle    = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("243"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true)
	deleteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("167"))
	faintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpKeyStyle = lipgloss.NewStyle().Bold(true).Width(12)
)

// row is the visual handle for one task.
type row struct {
	id        int64
	text      string
	completed bool
}

// tuiModel is a bubbletea model and the view.Surface for its own rows.
type tuiModel struct {
	ctx  context.Context
	sync *view.Synchronizer
	keys config.KeysConfig

	title string
	rows  []row
	index map[int64]int // task id -> position in rows

	input     textinput.Model
	focus     focus
	cursor    int
	showHelp  bool
	status    string
	statusErr bool
	loaded    bool
	loadState todo.LoadState
}

func newTUIModel(ctx context.Context, store *todo.Store, c *tuiConfig) *tuiModel {
	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 512
	ti.Width = 48
	ti.Focus()

	m := &tuiModel{
		ctx:   ctx,
		keys:  c.keys,
		title: c.title,
		index: make(map[int64]int),
		input: ti,
		focus: focusInput,
	}
	m.sync = view.New(store, m, view.WithLogger(c.logger))
	return m
}

// AppendRow implements view.Surface.
func (m *tuiModel) AppendRow(t todo.Task) {
	m.index[t.ID] = len(m.rows)
	m.rows = append(m.rows, row{id: t.ID, text: t.Text, completed: t.Completed})
}

// SetCompleted implements view.Surface.
func (m *tuiModel) SetCompleted(id int64, completed bool) {
	if i, ok := m.index[id]; ok {
		m.rows[i].completed = completed
	}
}

// RemoveRow implements view.Surface.
func (m *tuiModel) RemoveRow(id int64) {
	i, ok := m.index[id]
	if !ok {
		return
	}
	m.rows = slices.Delete(m.rows, i, i+1)
	delete(m.index, id)
	for j := i; j < len(m.rows); j++ {
		m.index[m.rows[j].id] = j
	}
	m.clampCursor()
}

func (m *tuiModel) Init() tea.Cmd {
	if !m.loaded {
		m.loaded = true
		m.loadState = m.sync.Init(m.ctx)
		switch m.loadState {
		case todo.LoadedReset:
			if !m.sync.Store().Writable() {
				m.setStatus("Storage could not be read; changes will not be saved", true)
			} else {
				m.setStatus("Stored list was unreadable; starting empty", true)
			}
		case todo.LoadedValue:
			m.setStatus(fmt.Sprintf("Loaded %d tasks", len(m.rows)), false)
		}
	}
	return textinput.Blink
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.input.Width = max(10, msg.Width-textStart-2)
		return m, nil
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *tuiModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if m.showHelp {
		if matches(key, m.keys.Help) || matches(key, m.keys.Quit) || key == "esc" {
			m.showHelp = false
		}
		return m, nil
	}
	if matches(key, m.keys.Focus) {
		if m.focus == focusInput {
			m.setFocus(focusList)
		} else {
			m.setFocus(focusInput)
		}
		return m, nil
	}
	if m.focus == focusInput {
		return m.updateInput(key, msg)
	}
	return m.updateList(key)
}

func (m *tuiModel) updateInput(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case "enter":
		m.submit()
		return m, nil
	case "esc":
		m.setFocus(focusList)
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *tuiModel) updateList(key string) (tea.Model, tea.Cmd) {
	switch {
	case matches(key, m.keys.Quit):
		return m, tea.Quit
	case matches(key, m.keys.Help):
		m.showHelp = true
	case matches(key, m.keys.Up) || key == "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case matches(key, m.keys.Down) || key == "down":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case key == "home":
		m.cursor = 0
	case key == "end":
		m.cursor = max(0, len(m.rows)-1)
	case matches(key, m.keys.Toggle) || key == "enter":
		m.toggleAt(m.cursor)
	case matches(key, m.keys.Delete) || key == "delete":
		m.deleteAt(m.cursor)
	case key == "esc":
		m.setFocus(focusInput)
	}
	return m, nil
}

func (m *tuiModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if msg.Y == inputLine {
		m.setFocus(focusInput)
		return m, nil
	}
	i := msg.Y - rowsTop
	if i < 0 || i >= len(m.rows) {
		return m, nil
	}

	m.cursor = i
	m.setFocus(focusList)
	start := deleteColumn(m.rows[i])
	switch {
	case msg.X >= start && msg.X < start+len(deleteLabel):
		m.deleteAt(i)
	case msg.X >= gutterWidth && msg.X < start-controlGap:
		m.toggleAt(i)
	}
	return m, nil
}

func (m *tuiModel) submit() {
	task, err := m.sync.Add(m.ctx, m.input.Value())
	if task == nil {
		return
	}
	m.input.Reset()
	m.cursor = m.index[task.ID]
	m.reportSaved(err, "Added")
}

func (m *tuiModel) toggleAt(i int) {
	if i < 0 || i >= len(m.rows) {
		return
	}
	completed, found, err := m.sync.Toggle(m.ctx, m.rows[i].id)
	if !found {
		return
	}
	if completed {
		m.reportSaved(err, "Completed")
	} else {
		m.reportSaved(err, "Reopened")
	}
}

func (m *tuiModel) deleteAt(i int) {
	if i < 0 || i >= len(m.rows) {
		return
	}
	found, err := m.sync.Delete(m.ctx, m.rows[i].id)
	if !found {
		return
	}
	m.reportSaved(err, "Deleted")
}

func (m *tuiModel) reportSaved(err error, action string) {
	if err != nil {
		m.setStatus(action+" but not saved: "+err.Error(), true)
		return
	}
	m.setStatus(action, false)
}

func (m *tuiModel) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m *tuiModel) setFocus(f focus) {
	m.focus = f
	if f == focusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
		m.clampCursor()
	}
}

func (m *tuiModel) clampCursor() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *tuiModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title) + "\n")
	b.WriteString(m.input.View() + "\n\n")

	if m.showHelp {
		writeHelp(&b, m.keys)
		return b.String()
	}

	if len(m.rows) == 0 {
		b.WriteString(strings.Repeat(" ", gutterWidth) + faintStyle.Render(emptyMessage) + "\n")
	}
	for i, r := range m.rows {
		b.WriteString(m.renderRow(i, r) + "\n")
	}
	b.WriteString("\n")

	if m.status != "" {
		if m.statusErr {
			b.WriteString(errorStyle.Render(m.status) + "\n")
		} else {
			b.WriteString(m.status + "\n")
		}
	}
	b.WriteString(faintStyle.Render(m.footer()) + "\n")
	return b.String()
}

func (m *tuiModel) renderRow(i int, r row) string {
	gutter := strings.Repeat(" ", gutterWidth)
	if m.focus == focusList && i == m.cursor {
		gutter = cursorStyle.Render(">") + " "
	}
	mark := "  "
	text := view.DisplayText(r.text)
	if r.completed {
		mark = "✓ "
		text = doneStyle.Render(text)
	}
	return gutter + mark + text + strings.Repeat(" ", controlGap) + deleteStyle.Render(deleteLabel)
}

// deleteColumn returns the screen column where the delete control of r
// starts.
func deleteColumn(r row) int {
	return textStart + lipgloss.Width(view.DisplayText(r.text)) + controlGap
}

func (m *tuiModel) footer() string {
	done := 0
	for _, r := range m.rows {
		if r.completed {
			done++
		}
	}
	left := fmt.Sprintf("%d/%d done", done, len(m.rows))
	if m.focus == focusInput {
		return left + " | enter add | " + keyName(m.keys.Focus) + " list | ctrl+c quit"
	}
	return fmt.Sprintf("%s | %s toggle | %s delete | %s help | %s quit",
		left, keyName(m.keys.Toggle), keyName(m.keys.Delete), keyName(m.keys.Help), keyName(m.keys.Quit))
}

func writeHelp(b *strings.Builder, keys config.KeysConfig) {
	b.WriteString("Keyboard Shortcuts\n\n")
	line := func(k, desc string) {
		b.WriteString("  " + helpKeyStyle.Render(k) + desc + "\n")
	}
	line("enter", "Add the typed task (input)")
	line(keyName(keys.Focus), "Switch between input and list")
	line(keyName(keys.Up)+", up", "Move up")
	line(keyName(keys.Down)+", down", "Move down")
	line(keyName(keys.Toggle)+", enter", "Toggle completed")
	line(keyName(keys.Delete), "Delete task")
	line(keyName(keys.Help), "Toggle this help screen")
	line(keyName(keys.Quit)+", ctrl+c", "Quit")
	b.WriteString("\n")
	b.WriteString("Mouse: click a task to toggle it, click " + deleteLabel + " to delete it.\n")
}

// matches reports whether key is one of the comma-separated bindings.
func matches(key, binding string) bool {
	if binding == "" {
		return false
	}
	for _, b := range strings.Split(binding, ",") {
		if b == key {
			return true
		}
	}
	return false
}

func keyName(binding string) string {
	names := strings.Split(binding, ",")
	for i, n := range names {
		if n == " " {
			names[i] = "space"
		}
	}
	return strings.Join(names, "/")
}
