package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	kruntime "github.com/gosuda/kode/runtime"
)

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("24")).Padding(0, 1)

type model struct {
	cfg      appConfig
	viewport viewport.Model
	ready    bool
	status   string
	running  bool
	events   <-chan tea.Msg
	lines    []string
}

func newModel(cfg appConfig) model {
	return model{
		cfg:      cfg,
		viewport: viewport.New(80, 20),
		status:   "starting",
	}
}

func runTUI(cfg appConfig) error {
	p := tea.NewProgram(newModel(cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func startVM(cfg appConfig) tea.Cmd {
	return func() tea.Msg {
		events := make(chan tea.Msg, 256)
		go runVM(cfg, events)
		return vmStartedMsg{events: events}
	}
}

func waitVMEvent(events <-chan tea.Msg) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case msg, ok := <-events:
			if !ok {
				return nil
			}
			return msg
		case <-time.After(20 * time.Millisecond):
			return vmPollMsg{}
		}
	}
}

func (m model) Init() tea.Cmd {
	return startVM(m.cfg)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		vh := msg.Height - 1
		if vh < 1 {
			vh = 1
		}
		m.viewport.Width = msg.Width
		m.viewport.Height = vh
		m.ready = true
		return m, nil

	case vmStartedMsg:
		m.events = msg.events
		m.running = true
		m.status = "running"
		return m, waitVMEvent(m.events)

	case vmOutputMsg:
		m.appendLine(msg.out.Text)
		return m, waitVMEvent(m.events)

	case vmPollMsg:
		if m.running {
			return m, waitVMEvent(m.events)
		}
		return m, nil

	case vmDoneMsg:
		m.running = false
		m.events = nil
		if msg.err != nil {
			m.status = "failed"
			m.appendLine(errStyle.Render(describeError(msg.err)))
			return m, nil
		}
		m.status = "done"
		if msg.result.Kind() != kruntime.VoidKind {
			m.status = "done: " + msg.result.String()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			if m.running {
				return m, nil
			}
			m.lines = nil
			m.viewport.SetContent("")
			m.status = "restarting"
			return m, startVM(m.cfg)
		case "g", "home":
			m.viewport.GotoTop()
			return m, nil
		case "G", "end":
			m.viewport.GotoBottom()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if !m.ready {
		return "initializing..."
	}
	status := statusStyle.Render(fmt.Sprintf("%s  %s  q quit  r rerun", filepath.Base(m.cfg.file), m.status))
	return m.viewport.View() + "\n" + status
}

func (m *model) appendLine(text string) {
	m.lines = append(m.lines, text)
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}
