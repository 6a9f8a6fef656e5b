package ui

import (
	"github.com/charmbracelet/lipgloss"

	"voicehub/pkg/protocol"
)

// Styles holds the lipgloss styles for the console.
type Styles struct {
	Title      lipgloss.Style
	Status     lipgloss.Style
	Prompt     lipgloss.Style
	Bar        lipgloss.Style
	BarKey     lipgloss.Style
	LangActive lipgloss.Style
	LangIdle   lipgloss.Style
	Categories map[protocol.Category]lipgloss.Style
}

// DefaultStyles returns the default console styling.
func DefaultStyles() Styles {
	return Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		Status:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
		Prompt:     lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
		Bar:        lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		BarKey:     lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		LangActive: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Bold(true),
		LangIdle:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Categories: map[protocol.Category]lipgloss.Style{
			protocol.CategoryInfo:   lipgloss.NewStyle(),
			protocol.CategorySystem: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			protocol.CategoryUser:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
			protocol.CategoryAI:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			protocol.CategoryError:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		},
	}
}

// CategoryStyle returns the style for a display category, falling back
// to the info style.
func (s Styles) CategoryStyle(c protocol.Category) lipgloss.Style {
	if st, ok := s.Categories[c]; ok {
		return st
	}
	return s.Categories[protocol.CategoryInfo]
}
