// Package watch provides an interactive view of the rename loop: every
// window in the session with its current and computed name, refreshed on
// an interval, with keys to apply names, pin manual ones, and toggle
// per-window renaming.
package watch

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/timvw/window-namer/internal/config"
	"github.com/timvw/window-namer/internal/events"
	"github.com/timvw/window-namer/internal/mux"
	"github.com/timvw/window-namer/internal/renamer"
)

// Styles
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8"))
	staleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // yellow: computed differs
	currentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green: name up to date
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type viewMode int

const (
	modeWindowList viewMode = iota
	modeTextInput
)

// windowRow is one window of the attached session as shown in the list.
type windowRow struct {
	ID       string
	Index    int
	Current  string
	Computed string
	Enabled  bool
}

// messages
type refreshMsg struct {
	rows []windowRow
	err  error
}

type tickMsg struct{}

// TUI runs the interactive watcher.
type TUI struct {
	Mux             *mux.Tmux
	Config          *config.Config
	Sink            events.Sink
	RefreshInterval time.Duration // 0 disables auto-refresh
	AutoApply       bool          // apply computed names on every refresh
}

// model implements tea.Model
type tuiModel struct {
	mux      *mux.Tmux
	cfg      *config.Config
	sink     events.Sink
	ctx      context.Context
	interval time.Duration

	rows   []windowRow
	cursor int
	mode   viewMode

	// text input state (manual rename of the selected window)
	textInput  textinput.Model
	textTarget *windowRow

	// dimensions
	width  int
	height int

	// status
	refreshing   bool
	message      string
	refreshCount int
	autoApply    bool
}

func (t *TUI) Run(ctx context.Context) error {
	ti := textinput.New()
	ti.Placeholder = "New window name, Enter to pin..."
	ti.CharLimit = 256
	ti.Width = 60

	m := &tuiModel{
		mux:       t.Mux,
		cfg:       t.Config,
		sink:      t.Sink,
		ctx:       ctx,
		interval:  t.RefreshInterval,
		textInput: ti,
		autoApply: t.AutoApply,
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *tuiModel) Init() tea.Cmd {
	m.refreshing = true
	return m.doRefresh()
}

// scheduleTick returns a tea.Cmd that sends a tickMsg after the refresh
// interval, or nil when auto-refresh is disabled.
func (m *tuiModel) scheduleTick() tea.Cmd {
	if m.interval <= 0 {
		return nil
	}
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// doRefresh snapshots the session and recomputes every window's name off
// the Update loop.
func (m *tuiModel) doRefresh() tea.Cmd {
	mx := m.mux
	cfg := m.cfg
	sink := m.sink
	ctx := m.ctx
	return func() tea.Msg {
		panes, err := mx.ActivePanes(ctx)
		if err != nil {
			return refreshMsg{err: err}
		}

		r := &renamer.Renamer{Config: cfg, Sink: sink}
		names := r.Rename(ctx, panes)

		byWindow := make(map[string]windowRow, len(panes))
		for _, p := range panes {
			byWindow[p.WindowID] = windowRow{
				ID:      p.WindowID,
				Index:   p.WindowIndex,
				Current: p.WindowName,
				Enabled: mx.WindowEnabled(ctx, p.WindowID),
			}
		}
		rows := make([]windowRow, 0, len(names))
		for _, n := range names {
			row := byWindow[n.WindowID]
			row.Computed = n.Text
			rows = append(rows, row)
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].Index < rows[j].Index })

		return refreshMsg{rows: rows}
	}
}

// selectedRow returns the row under the cursor, or nil.
func (m *tuiModel) selectedRow() *windowRow {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return &m.rows[m.cursor]
}

// applyRow pushes a row's computed name to tmux.
func (m *tuiModel) applyRow(row windowRow) {
	if !row.Enabled {
		m.message = fmt.Sprintf("window %d is manual, press d to re-enable", row.Index)
		return
	}
	if err := m.mux.ApplyName(m.ctx, row.ID, row.Computed); err != nil {
		m.message = fmt.Sprintf("apply failed: %v", err)
		return
	}
	m.message = fmt.Sprintf("renamed window %d to %q", row.Index, row.Computed)
}

// applyAll pushes every enabled window's computed name. Returns how many
// windows actually changed.
func (m *tuiModel) applyAll() int {
	applied := 0
	for _, row := range m.rows {
		if !row.Enabled || row.Current == row.Computed {
			continue
		}
		if err := m.mux.ApplyName(m.ctx, row.ID, row.Computed); err != nil {
			m.message = fmt.Sprintf("apply failed: %v", err)
			continue
		}
		applied++
	}
	return applied
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case refreshMsg:
		m.refreshing = false
		if msg.err != nil {
			m.message = fmt.Sprintf("refresh error: %v", msg.err)
		} else {
			m.rows = msg.rows
			m.refreshCount++
			if m.cursor >= len(m.rows) {
				m.cursor = len(m.rows) - 1
			}
			if m.cursor < 0 {
				m.cursor = 0
			}
			if m.autoApply && m.mode != modeTextInput {
				if n := m.applyAll(); n > 0 {
					m.message = fmt.Sprintf("auto-applied %d window(s)", n)
				}
			}
		}
		if cmd := m.scheduleTick(); cmd != nil {
			return m, cmd
		}
		return m, nil

	case tickMsg:
		// Skip if already refreshing or the user is typing
		if m.refreshing || m.mode == modeTextInput {
			return m, m.scheduleTick()
		}
		m.refreshing = true
		return m, m.doRefresh()
	}

	return m, nil
}

func (m *tuiModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == modeTextInput {
		return m.handleTextInputKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case "enter":
		if row := m.selectedRow(); row != nil {
			if err := m.mux.SelectWindow(m.ctx, row.ID); err != nil {
				m.message = fmt.Sprintf("select failed: %v", err)
			}
		}
		return m, nil

	case "s":
		// Apply the selected window's computed name
		if row := m.selectedRow(); row != nil {
			m.applyRow(*row)
			m.refreshing = true
			return m, m.doRefresh()
		}
		return m, nil

	case "a":
		// Toggle auto-apply
		m.autoApply = !m.autoApply
		if m.autoApply {
			m.message = "auto-apply ON"
		} else {
			m.message = "auto-apply OFF"
		}
		return m, nil

	case "d":
		// Toggle per-window renaming
		if row := m.selectedRow(); row != nil {
			if err := m.mux.SetWindowEnabled(m.ctx, row.ID, !row.Enabled); err != nil {
				m.message = fmt.Sprintf("toggle failed: %v", err)
				return m, nil
			}
			m.refreshing = true
			return m, m.doRefresh()
		}
		return m, nil

	case "t":
		// Pin a manual name on the selected window
		if row := m.selectedRow(); row != nil {
			m.mode = modeTextInput
			m.textTarget = row
			m.textInput.SetValue(row.Current)
			m.textInput.Focus()
			return m, textinput.Blink
		}
		return m, nil

	case "r":
		m.refreshing = true
		m.message = ""
		return m, m.doRefresh()
	}

	return m, nil
}

func (m *tuiModel) handleTextInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "escape":
		m.mode = modeWindowList
		m.textTarget = nil
		m.textInput.Blur()
		return m, nil

	case "enter":
		text := m.textInput.Value()
		if text != "" && m.textTarget != nil {
			if err := m.mux.SetManualName(m.ctx, m.textTarget.ID, text); err != nil {
				m.message = fmt.Sprintf("rename failed: %v", err)
			} else {
				m.message = fmt.Sprintf("pinned window %d as %q", m.textTarget.Index, text)
			}
		}
		m.mode = modeWindowList
		m.textTarget = nil
		m.textInput.Blur()
		m.refreshing = true
		return m, m.doRefresh()
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m *tuiModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.mode {
	case modeWindowList:
		return m.viewWindowList()
	case modeTextInput:
		return m.viewTextInput()
	}
	return ""
}

func (m *tuiModel) viewWindowList() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Window Namer"))
	b.WriteString("  ")
	autoLabel := "a=auto:OFF"
	if m.autoApply {
		autoLabel = "a=auto:ON"
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("Enter=jump  s=apply  %s  d=toggle  t=pin name  r=refresh  q=quit", autoLabel)))
	if m.refreshing {
		b.WriteString("  ")
		b.WriteString(staleStyle.Render("refreshing..."))
	}
	b.WriteString("\n")

	if len(m.rows) == 0 {
		if m.refreshing {
			b.WriteString("  Scanning windows...\n")
		} else {
			b.WriteString("  No windows found.\n")
		}
		return b.String()
	}

	// Layout widths: idx | current | computed | state
	idxWidth := 5
	stateWidth := 8
	separator := " | "
	sepWidth := len(separator)
	nameWidth := (m.width - idxWidth - stateWidth - sepWidth*3) / 2
	if nameWidth < 12 {
		nameWidth = 12
	}

	sep := headerStyle.Render(separator)
	b.WriteString(headerStyle.Render(padRight("  IDX", idxWidth)))
	b.WriteString(sep)
	b.WriteString(headerStyle.Render(padRight("CURRENT", nameWidth)))
	b.WriteString(sep)
	b.WriteString(headerStyle.Render(padRight("COMPUTED", nameWidth)))
	b.WriteString(sep)
	b.WriteString(headerStyle.Render("STATE"))
	b.WriteString("\n")

	stale := 0
	for i, row := range m.rows {
		idxCol := fmt.Sprintf("  %d", row.Index)
		currentCol := truncate(row.Current, nameWidth)
		computedCol := truncate(row.Computed, nameWidth)

		var state string
		switch {
		case !row.Enabled:
			state = dimStyle.Render("manual")
		case row.Current == row.Computed:
			state = currentStyle.Render("ok")
		default:
			state = staleStyle.Render("stale")
			stale++
		}

		if i == m.cursor {
			b.WriteString(selectedStyle.Render(padRight("→ "+strings.TrimLeft(idxCol, " "), idxWidth)))
			b.WriteString(sep)
			b.WriteString(selectedStyle.Render(padRight(currentCol, nameWidth)))
			b.WriteString(sep)
			b.WriteString(selectedStyle.Render(padRight(computedCol, nameWidth)))
		} else {
			b.WriteString(padRight(idxCol, idxWidth))
			b.WriteString(sep)
			b.WriteString(padRight(currentCol, nameWidth))
			b.WriteString(sep)
			if row.Current == row.Computed || !row.Enabled {
				b.WriteString(dimStyle.Render(padRight(computedCol, nameWidth)))
			} else {
				b.WriteString(staleStyle.Render(padRight(computedCol, nameWidth)))
			}
		}
		b.WriteString(sep)
		b.WriteString(state)
		b.WriteString("\n")
	}

	summary := fmt.Sprintf("  %d windows | %d stale | refresh #%d", len(m.rows), stale, m.refreshCount)
	b.WriteString(dimStyle.Render(summary))
	b.WriteString("\n")

	if m.message != "" {
		b.WriteString(statusStyle.Render("  " + m.message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m *tuiModel) viewTextInput() string {
	if m.textTarget == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("  Pin Window Name"))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render("  ─────────────────────────────────────────"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Window:   %d (%s)\n", m.textTarget.Index, m.textTarget.ID))
	b.WriteString(fmt.Sprintf("  Computed: %s\n", m.textTarget.Computed))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  Enter=pin  Escape=cancel"))
	b.WriteString("\n\n")
	b.WriteString("  " + m.textInput.View())
	b.WriteString("\n")

	return b.String()
}

// truncate cuts a string to at most maxLen characters.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// padRight pads a string with spaces to reach the desired visible width.
func padRight(s string, width int) string {
	visible := visibleLen(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

// visibleLen returns the visible length of a string, ignoring ANSI escape
// sequences.
func visibleLen(s string) int {
	n := 0
	inEscape := false
	for _, r := range s {
		if r == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
			continue
		}
		n++
	}
	return n
}
