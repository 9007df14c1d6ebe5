// Package tui provides terminal output styling for Rebuttal.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mrz1836/rebuttal/internal/domain"
)

// Shared lipgloss styles for CLI output.
//
//nolint:gochecknoglobals // Read-only style definitions
var (
	// TitleStyle renders topic headers.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

	// LabelStyle renders field labels in summaries.
	LabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	// CreatorStyle renders Creator turn headers.
	CreatorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))

	// CriticStyle renders Critic turn headers.
	CriticStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

	// WarnStyle renders degraded-state notes such as filler substitutions.
	WarnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// RoleStyle returns the header style for a debate role.
func RoleStyle(role domain.Role) lipgloss.Style {
	if role == domain.RoleCritic {
		return CriticStyle
	}
	return CreatorStyle
}

// SessionSummary renders a short styled summary of a session's state.
func SessionSummary(sess *domain.DebateSession) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(sess.Topic))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", LabelStyle.Render("status:"), string(sess.Status()))
	fmt.Fprintf(&b, "%s %d/%d\n", LabelStyle.Render("rounds:"), sess.CurrentRound, sess.TotalRounds)
	if sess.CreatorEngine != "" {
		fmt.Fprintf(&b, "%s %s\n", LabelStyle.Render("creator engine:"), sess.CreatorEngine)
	}
	if sess.FillerTurns > 0 {
		b.WriteString(WarnStyle.Render(fmt.Sprintf("filler turns: %d", sess.FillerTurns)))
		b.WriteString("\n")
	}

	return b.String()
}
