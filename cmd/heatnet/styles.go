package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/heatnet/pkg/config"
	"github.com/dd0wney/heatnet/pkg/script"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF"))

	summaryBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FFFF")).
			Width(12)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)
)

func field(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
}

// renderModelSummary describes one compiled model
func renderModelSummary(m *script.Model, net *config.Network, length int, longest, dest string) string {
	lines := []string{
		titleStyle.Render("Model " + m.Name),
		field("Source", net.Source.String()),
		field("Pipes", fmt.Sprint(net.Pipes)),
		field("Instances", fmt.Sprint(m.InstanceCount())),
		field("Connections", fmt.Sprint(m.ConnectionCount())),
		field("Pipe length", fmt.Sprint(length)),
		field("Longest run", longest),
		field("Build", m.BuildID),
		field("Written to", dest),
	}
	return summaryBoxStyle.Render(strings.Join(lines, "\n"))
}

// renderCampaignSummary tabulates the models written per source and pipe count
func renderCampaignSummary(pkg string, rows []campaignRow) string {
	const format = "%-22s %5s %6s %12s"

	total := 0
	lines := []string{
		titleStyle.Render("Campaign " + pkg),
		headerStyle.Render(fmt.Sprintf(format, "source", "pipes", "models", "pipe length")),
	}
	for _, r := range rows {
		span := fmt.Sprint(r.minLength)
		if r.maxLength != r.minLength {
			span = fmt.Sprintf("%d-%d", r.minLength, r.maxLength)
		}
		lines = append(lines, fmt.Sprintf(format, r.source, fmt.Sprint(r.pipes), fmt.Sprint(r.models), span))
		total += r.models
	}
	lines = append(lines, fmt.Sprintf("%d models", total))
	return summaryBoxStyle.Render(strings.Join(lines, "\n"))
}
