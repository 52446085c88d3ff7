// Package view renders orchestrator snapshots as terminal output and
// collects record drafts through interactive forms. It holds no domain state:
// everything displayed comes from a snapshot, every intent goes back to the
// orchestrator.
package view

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/avolkov/custody-console/internal/notify"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	warning   = lipgloss.AdaptiveColor{Light: "#C9A227", Dark: "#E8C547"}
	danger    = lipgloss.AdaptiveColor{Light: "#C0392B", Dark: "#FF6B6B"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(0, 2).
			Bold(true).
			MarginBottom(1)

	breadcrumbStyle = lipgloss.NewStyle().
			Foreground(subtle).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1)

	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(highlight)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().Foreground(subtle).Italic(true)
	errStyle   = lipgloss.NewStyle().Foreground(danger).Bold(true)

	notificationStyles = map[notify.Kind]lipgloss.Style{
		notify.KindInfo:    lipgloss.NewStyle().Foreground(highlight),
		notify.KindSuccess: lipgloss.NewStyle().Foreground(special),
		notify.KindWarning: lipgloss.NewStyle().Foreground(warning),
		notify.KindError:   lipgloss.NewStyle().Foreground(danger),
	}
)
