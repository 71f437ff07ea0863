// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/AntonC9018/command-terminal/internal/logring"
)

// =============================================================================
// SEVERITY STYLES
// =============================================================================

var (
	// InfoStyle renders ordinary command output.
	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")) // Off-white

	// WarningStyle renders recoverable problems.
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // Yellow/Orange

	// ErrorStyle renders failures.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)

	// HelpNameStyle renders command names in the help listing.
	HelpNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")). // Cyan
			Bold(true)
)

// styleFor maps a log severity to its rendering style.
func styleFor(severity logring.Severity) lipgloss.Style {
	switch severity {
	case logring.Warning:
		return WarningStyle
	case logring.Error:
		return ErrorStyle
	default:
		return InfoStyle
	}
}

// RenderEntry formats one log entry for the terminal.
func RenderEntry(e logring.Entry) string {
	return styleFor(e.Severity).Render(e.Text)
}
