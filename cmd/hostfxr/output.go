package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	versionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)
)

// printer writes command results either as indented JSON or as text,
// styled only when writing to a terminal.
type printer struct {
	w      io.Writer
	json   bool
	styled bool
}

func (p *printer) render(style lipgloss.Style, s string) string {
	if !p.styled {
		return s
	}
	return style.Render(s)
}

// emit writes v as JSON, or calls text for the plain rendering.
func (p *printer) emit(v any, text func()) error {
	if p.json {
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text()
	return nil
}

func (p *printer) field(label, value string, style lipgloss.Style) {
	if value == "" {
		value = "-"
	}
	fmt.Fprintf(p.w, "%s %s\n", p.render(labelStyle, fmt.Sprintf("%-18s", label+":")), p.render(style, value))
}

func (p *printer) heading(s string) {
	fmt.Fprintln(p.w, p.render(titleStyle, s))
}

func (p *printer) table(headers []string, rows [][]string) {
	t := table.New().
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	if p.styled {
		t = t.Border(lipgloss.RoundedBorder()).BorderStyle(helpStyle)
	} else {
		t = t.Border(lipgloss.ASCIIBorder())
	}
	fmt.Fprintln(p.w, t.Render())
}
