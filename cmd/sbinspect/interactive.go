package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	lldb "github.com/wippyai/lldb-go"
	"github.com/wippyai/lldb-go/native"
	"github.com/wippyai/lldb-go/projection"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	pidStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const pageSize = 20

type procEntry struct {
	name string
	pid  lldb.PID
}

type modelState int

const (
	stateList modelState = iota
	stateDetail
)

type interactiveModel struct {
	err      error
	lib      *native.Library
	filter   textinput.Model
	detail   string
	procs    []procEntry
	shown    []procEntry
	selected int
	state    modelState
	loaded   bool
	asJSON   bool
}

type loadedMsg struct {
	err   error
	procs []procEntry
}

type detailMsg struct {
	err    error
	detail string
}

func newInteractiveModel(lib *native.Library) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "name or pid"
	ti.Prompt = "filter: "
	ti.Width = 40
	ti.Focus()
	return &interactiveModel{lib: lib, filter: ti, state: stateList}
}

func (m *interactiveModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadProcesses)
}

func (m *interactiveModel) loadProcesses() tea.Msg {
	pids, err := m.lib.ProcessIDs()
	if err != nil {
		return loadedMsg{err: err}
	}
	procs := make([]procEntry, 0, len(pids))
	for _, pid := range pids {
		p, err := lldb.ProcessInfoForPID(m.lib, pid)
		if err != nil {
			continue
		}
		procs = append(procs, procEntry{pid: pid, name: p.Name()})
		p.Close()
	}
	return loadedMsg{procs: procs}
}

// detailCmd loads the selected process. The entry and view mode are captured
// when the command is issued.
func (m *interactiveModel) detailCmd() tea.Cmd {
	lib, pid, asJSON := m.lib, m.shown[m.selected].pid, m.asJSON
	return func() tea.Msg {
		return loadDetail(lib, pid, asJSON)
	}
}

func loadDetail(lib *native.Library, pid lldb.PID, asJSON bool) tea.Msg {
	p, err := lldb.ProcessInfoForPID(lib, pid)
	if err != nil {
		return detailMsg{err: err}
	}
	defer p.Close()

	if asJSON {
		doc, err := projection.ProcessInfoJSON(p)
		if err != nil {
			return detailMsg{err: err}
		}
		return detailMsg{detail: string(doc)}
	}
	return detailMsg{detail: formatProcess(p)}
}

func (m *interactiveModel) applyFilter() {
	q := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.shown = m.shown[:0]
	for _, p := range m.procs {
		if q == "" || strings.Contains(strings.ToLower(p.name), q) || strings.HasPrefix(fmt.Sprint(p.pid), q) {
			m.shown = append(m.shown, p)
		}
	}
	if m.selected >= len(m.shown) {
		m.selected = max(len(m.shown)-1, 0)
	}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "up":
			if m.state == stateList && m.selected > 0 {
				m.selected--
			}
			return m, nil

		case "down":
			if m.state == stateList && m.selected < len(m.shown)-1 {
				m.selected++
			}
			return m, nil

		case "tab":
			m.asJSON = !m.asJSON
			if m.state == stateDetail {
				return m, m.detailCmd()
			}
			return m, nil

		case "enter":
			switch m.state {
			case stateList:
				if len(m.shown) > 0 {
					return m, m.detailCmd()
				}
			case stateDetail:
				m.state = stateList
				m.detail = ""
				m.err = nil
			}
			return m, nil

		case "esc":
			if m.state == stateDetail {
				m.state = stateList
				m.detail = ""
				m.err = nil
				return m, nil
			}
			return m, tea.Quit
		}

	case loadedMsg:
		m.loaded = true
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.procs = msg.procs
		m.applyFilter()
		return m, nil

	case detailMsg:
		m.detail = msg.detail
		m.err = msg.err
		m.state = stateDetail
		return m, nil
	}

	if m.state == stateList {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.applyFilter()
		return m, cmd
	}
	return m, nil
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateDetail {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress ctrl+c to quit.", m.err))
	}
	if !m.loaded {
		return "Loading processes..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("SB Inspect"))
	b.WriteString(fmt.Sprintf(" %d processes\n\n", len(m.procs)))

	switch m.state {
	case stateList:
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
		start := 0
		if m.selected >= pageSize {
			start = m.selected - pageSize + 1
		}
		end := min(start+pageSize, len(m.shown))
		for i := start; i < end; i++ {
			p := m.shown[i]
			line := fmt.Sprintf("%s %s", pidStyle.Render(fmt.Sprintf("%7d", p.pid)), nameStyle.Render(p.name))
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + fmt.Sprintf("%7d %s", p.pid, p.name)))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("type to filter • ↑/↓ select • enter inspect • tab text/json • esc quit"))

	case stateDetail:
		p := m.shown[m.selected]
		b.WriteString(fmt.Sprintf("Process %s\n\n", nameStyle.Render(p.name)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.detail))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("tab text/json • enter back • ctrl+c quit"))
	}

	return b.String()
}

func runInteractive(lib *native.Library) error {
	p := tea.NewProgram(newInteractiveModel(lib), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
