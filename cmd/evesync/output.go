package main

import (
	"github.com/arthur-debert/evesync/pkg/evesync/core"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

func statusMark(status core.StepStatus) string {
	switch status {
	case core.StatusSuccess:
		return okStyle.Render("✓")
	case core.StatusPlanned:
		return okStyle.Render("~")
	case core.StatusSkipped:
		return dimStyle.Render("-")
	default:
		return errorStyle.Render("✗")
	}
}
