package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/wippyai/assetgen/envmap"
	"github.com/wippyai/assetgen/generate"
	"github.com/wippyai/assetgen/geometry"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type job struct {
	run    func() (string, error)
	name   string
	result string
	err    error
	done   bool
}

type interactiveModel struct {
	jobs     []job
	spinner  spinner.Model
	selected int
	running  int
}

type jobDoneMsg struct {
	err    error
	result string
	index  int
}

func exampleNames() []string {
	var names []string
	for _, m := range geometry.Examples() {
		names = append(names, m.Name)
	}
	return names
}

func newInteractiveModel(cfg generate.Config, logger *zap.Logger) *interactiveModel {
	jobs := []job{{
		name: "tables",
		run: func() (string, error) {
			return cfg.TablesOut, generate.Tables(cfg)
		},
	}}
	for _, m := range geometry.Examples() {
		m := m
		jobs = append(jobs, job{
			name: m.Name,
			run: func() (string, error) {
				return generate.Example(cfg, m)
			},
		})
	}
	jobs = append(jobs, job{
		name: "env maps",
		run: func() (string, error) {
			f := envmap.NewHTTPFetcher(envmap.WithLogger(logger))
			return cfg.EnvDir, generate.EnvMaps(context.Background(), cfg, f, envmap.DefaultMaps)
		},
	})

	s := spinner.New()
	s.Spinner = spinner.Dot
	return &interactiveModel{jobs: jobs, spinner: s, running: -1}
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *interactiveModel) start(i int) tea.Cmd {
	m.running = i
	run := m.jobs[i].run
	return func() tea.Msg {
		result, err := run()
		return jobDoneMsg{index: i, result: result, err: err}
	}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
		case "down", "j":
			if m.selected < len(m.jobs)-1 {
				m.selected++
			}
		case "enter":
			if m.running < 0 {
				return m, m.start(m.selected)
			}
		}
	case jobDoneMsg:
		j := &m.jobs[msg.index]
		j.done, j.result, j.err = true, msg.result, msg.err
		m.running = -1
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *interactiveModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("assetgen"))
	b.WriteString("\n\n")

	for i, j := range m.jobs {
		status := "  "
		switch {
		case m.running == i:
			status = m.spinner.View()
		case j.done && j.err != nil:
			status = failStyle.Render("✗ ")
		case j.done:
			status = okStyle.Render("✓ ")
		}

		line := fmt.Sprintf("%s %-14s", status, j.name)
		if i == m.selected {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)

		if j.done {
			if j.err != nil {
				b.WriteString(" " + failStyle.Render(j.err.Error()))
			} else {
				b.WriteString(" " + pathStyle.Render(filepath.ToSlash(j.result)))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ select • enter run • q quit"))
	b.WriteString("\n")
	return b.String()
}

func runInteractive(cfg generate.Config, logger *zap.Logger) error {
	// Log lines would tear the TUI; keep only what the model shows.
	generate.SetLogger(zap.NewNop())
	defer generate.SetLogger(logger)

	_, err := tea.NewProgram(newInteractiveModel(cfg, logger)).Run()
	return err
}
