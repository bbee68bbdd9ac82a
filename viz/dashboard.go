// ABOUTME: Terminal dashboard rendering
// ABOUTME: Styled KPI header, active pipeline bars and the recent activity feed
package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/harperreed/hookline/models"
	"github.com/harperreed/hookline/views"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	wonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)
)

// RenderDashboard draws the KPI cards, the active pipeline and the latest
// activities for snap.
func RenderDashboard(snap models.Snapshot) string {
	k := views.ComputeKPIs(snap)
	var out strings.Builder

	out.WriteString(titleStyle.Render("HOOKLINE DASHBOARD"))
	out.WriteString("\n\n")

	cards := []string{
		card("Contacts", valueStyle.Render(fmt.Sprintf("%d", k.TotalContacts))),
		card("Active deals", valueStyle.Render(fmt.Sprintf("%d", k.ActiveDeals))),
		card("Pipeline value", valueStyle.Render(FormatMoney(k.PipelineValue))),
		card("Won this year", wonStyle.Render(FormatMoney(k.WonValue))),
	}
	out.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	out.WriteString("\n\n")

	out.WriteString(headerStyle.Render("PIPELINE"))
	out.WriteString("\n")
	renderPipeline(&out, views.PipelineByStage(snap))
	out.WriteString("\n")

	out.WriteString(headerStyle.Render("RECENT ACTIVITY"))
	out.WriteString("\n")
	if len(k.RecentActivities) == 0 {
		out.WriteString(labelStyle.Render("  No activity yet"))
		out.WriteString("\n")
	}
	for _, a := range k.RecentActivities {
		line := fmt.Sprintf("  %s  %-7s %-16s %s",
			a.Date.Format("2006-01-02 15:04"), a.Type, views.ContactName(snap, a.ContactID), a.Description)
		if title := views.DealTitle(snap, a.DealID); title != "" {
			line += labelStyle.Render(" · " + title)
		}
		out.WriteString(line)
		out.WriteString("\n")
	}

	return out.String()
}

func card(label, value string) string {
	return cardStyle.Render(labelStyle.Render(label) + "\n" + value)
}

func renderPipeline(out *strings.Builder, stages []views.StageSummary) {
	maxCount := 0
	for _, s := range stages {
		if s.Count > maxCount {
			maxCount = s.Count
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	for _, s := range stages {
		// 0-10 blocks
		barLength := (s.Count * 10) / maxCount
		bar := strings.Repeat("█", barLength) + strings.Repeat("░", 10-barLength)

		fmt.Fprintf(out, "  %-12s %s  %2d  %s\n", s.Stage.Title(), bar, s.Count, FormatMoney(s.Value))
	}
}

// FormatMoney renders whole pounds with thousands separators.
func FormatMoney(v float64) string {
	n := int64(math.Round(v))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := fmt.Sprintf("%d", n)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "£" + b.String()
}
