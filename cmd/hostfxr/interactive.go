package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wippyai/hostfxr-go/bridge"
)

var (
	focusedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4"))

	blurredStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))
)

const tableHeight = 10

type pane int

const (
	paneSdks pane = iota
	paneFrameworks
)

type interactiveModel struct {
	err      error
	load     func() (bridge.EnvironmentInfo, error)
	resolve  func() (bridge.ResolveResult, error)
	info     *bridge.EnvironmentInfo
	resolved *bridge.ResolveResult
	root     string

	sdks       table.Model
	frameworks table.Model
	focus      pane
}

type infoMsg struct {
	err  error
	info bridge.EnvironmentInfo
}

type resolveMsg struct {
	err    error
	result bridge.ResolveResult
}

func newInteractiveModel(root string, load func() (bridge.EnvironmentInfo, error), resolve func() (bridge.ResolveResult, error)) *interactiveModel {
	styles := table.DefaultStyles()
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#7D56F4"))

	sdks := table.New(
		table.WithColumns([]table.Column{
			{Title: "Version", Width: 24},
			{Title: "Path", Width: 48},
		}),
		table.WithHeight(tableHeight),
		table.WithFocused(true),
		table.WithStyles(styles),
	)
	frameworks := table.New(
		table.WithColumns([]table.Column{
			{Title: "Name", Width: 32},
			{Title: "Version", Width: 16},
			{Title: "Path", Width: 48},
		}),
		table.WithHeight(tableHeight),
		table.WithStyles(styles),
	)

	return &interactiveModel{
		load:       load,
		resolve:    resolve,
		root:       root,
		sdks:       sdks,
		frameworks: frameworks,
		focus:      paneSdks,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadInfo
}

func (m *interactiveModel) loadInfo() tea.Msg {
	info, err := m.load()
	return infoMsg{info: info, err: err}
}

func (m *interactiveModel) resolveSdk() tea.Msg {
	res, err := m.resolve()
	return resolveMsg{result: res, err: err}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "tab":
			m.toggleFocus()
			return m, nil

		case "r":
			if m.info != nil {
				return m, m.resolveSdk
			}
			return m, nil
		}

	case infoMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.setInfo(msg.info)
		return m, nil

	case resolveMsg:
		m.err = msg.err
		if msg.err == nil {
			res := msg.result
			m.resolved = &res
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == paneSdks {
		m.sdks, cmd = m.sdks.Update(msg)
	} else {
		m.frameworks, cmd = m.frameworks.Update(msg)
	}
	return m, cmd
}

func (m *interactiveModel) toggleFocus() {
	if m.focus == paneSdks {
		m.focus = paneFrameworks
		m.sdks.Blur()
		m.frameworks.Focus()
		return
	}
	m.focus = paneSdks
	m.frameworks.Blur()
	m.sdks.Focus()
}

func (m *interactiveModel) setInfo(info bridge.EnvironmentInfo) {
	m.info = &info

	rows := make([]table.Row, 0, len(info.Sdks))
	for _, s := range info.Sdks {
		rows = append(rows, table.Row{s.Version, s.Path})
	}
	m.sdks.SetRows(rows)

	rows = make([]table.Row, 0, len(info.Frameworks))
	for _, f := range info.Frameworks {
		rows = append(rows, table.Row{f.Name, f.Version, f.Path})
	}
	m.frameworks.SetRows(rows)
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.info == nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.info == nil {
		return "Querying host library..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("hostfxr"))
	b.WriteString(" ")
	b.WriteString(m.root)
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("host version: "))
	b.WriteString(versionStyle.Render(orDash(m.info.HostFxrVersion)))
	b.WriteString("  ")
	b.WriteString(labelStyle.Render("commit: "))
	b.WriteString(pathStyle.Render(orDash(m.info.HostFxrCommitHash)))
	b.WriteString("\n\n")

	sdkStyle, fwStyle := focusedStyle, blurredStyle
	if m.focus == paneFrameworks {
		sdkStyle, fwStyle = blurredStyle, focusedStyle
	}
	b.WriteString(fmt.Sprintf("SDKs (%d)\n", len(m.info.Sdks)))
	b.WriteString(sdkStyle.Render(m.sdks.View()))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Frameworks (%d)\n", len(m.info.Frameworks)))
	b.WriteString(fwStyle.Render(m.frameworks.View()))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	case m.resolved != nil && m.resolved.Resolved():
		b.WriteString("Resolved SDK: ")
		b.WriteString(resultStyle.Render(m.resolved.ResolvedSdkDir))
		if m.resolved.HasGlobalJSON() {
			b.WriteString(" via ")
			b.WriteString(pathStyle.Render(m.resolved.GlobalJSONPath))
		}
		b.WriteString("\n\n")
	case m.resolved != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("No SDK resolved (status %#x)", uint32(m.resolved.Status))))
		b.WriteString("\n\n")
	}

	b.WriteString(helpStyle.Render("↑/↓ move • tab switch table • r resolve for current directory • q quit"))
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func (a *app) uiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Browse installed SDKs and frameworks interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New("ui needs an interactive terminal; use info instead")
			}

			b, hc, err := a.openBridge()
			if err != nil {
				return err
			}
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("working directory: %w", err)
			}

			m := newInteractiveModel(hc.InstallRoot,
				func() (bridge.EnvironmentInfo, error) { return b.GetEnvironmentInfo(hc.InstallRoot) },
				func() (bridge.ResolveResult, error) { return b.ResolveSdk(hc.InstallRoot, wd, 0) },
			)
			_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}
}
