// Package view renders jobs and counters for the terminal
package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"

	"github.com/khrees2412/jobtrack/internal/store"
	"github.com/khrees2412/jobtrack/pkg/models"
)

const accent = lipgloss.Color("#facc15")

var (
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1)
	LabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#94a3b8"))
	HintStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#64748b"))
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ef4444"))

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tileStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#334155")).
			Padding(0, 2).
			Align(lipgloss.Center)
)

var statusColors = map[models.Status]lipgloss.Color{
	models.StatusWishlist:  lipgloss.Color("#64748b"),
	models.StatusApplied:   lipgloss.Color("#3b82f6"),
	models.StatusInterview: lipgloss.Color("#facc15"),
	models.StatusOffer:     lipgloss.Color("#22c55e"),
	models.StatusRejected:  lipgloss.Color("#ef4444"),
}

// StatusColor returns the badge colour for st, slate for anything unknown
func StatusColor(st models.Status) lipgloss.Color {
	if c, ok := statusColors[st]; ok {
		return c
	}
	return statusColors[models.StatusWishlist]
}

// Status renders a coloured status badge
func Status(st models.Status) string {
	return lipgloss.NewStyle().Bold(true).Foreground(StatusColor(st)).Render(string(st))
}

// Link renders url as a terminal hyperlink labelled with the url itself,
// or "-" when there is none
func Link(url string) string {
	if url == "" {
		return "-"
	}
	return ansi.SetHyperlink(url) + url + ansi.ResetHyperlink()
}

// ShortID trims long generated ids for table display
func ShortID(id models.ID) string {
	r := []rune(string(id))
	if len(r) > 13 {
		return string(r[:8]) + "…" + string(r[len(r)-4:])
	}
	return string(id)
}

var columns = []string{"#", "ID", "Job Title", "Company", "Status", "Date Applied", "Link"}

const statusCol = 4

// Table renders the collection in insertion order
func Table(c models.Collection) string {
	return TableWhere(c, nil)
}

// TableWhere renders the records keep accepts. The # column is always the
// record's position in the full collection, so it can be used as a reference.
func TableWhere(c models.Collection, keep func(models.JobRecord) bool) string {
	if len(c) == 0 {
		return HintStyle.Render("No jobs tracked yet. Add one with 'jobtrack job add --title ... --company ...'")
	}

	var (
		rows     [][]string
		statuses []models.Status
	)
	for i, rec := range c {
		if keep != nil && !keep(rec) {
			continue
		}
		statuses = append(statuses, rec.Status)
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			ShortID(rec.ID),
			rec.JobTitle,
			rec.Company,
			string(rec.Status),
			rec.DateApplied,
			Link(rec.JobURL),
		})
	}
	if len(rows) == 0 {
		return HintStyle.Render("No jobs match.")
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#334155"))).
		Headers(columns...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == statusCol && row >= 0 && row < len(statuses) {
				return cellStyle.Bold(true).Foreground(StatusColor(statuses[row]))
			}
			return cellStyle
		})
	return t.String()
}

// Summary renders the counter tiles
func Summary(stats store.Stats) string {
	tiles := stats.Tiles()
	rendered := make([]string, 0, len(tiles))
	for _, tile := range tiles {
		rendered = append(rendered, tileStyle.Render(fmt.Sprintf("%s\n%d", LabelStyle.Render(strings.ToUpper(tile.Label)), tile.Value)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// Breakdown renders the count of every status, including those without a tile
func Breakdown(stats store.Stats) string {
	var b strings.Builder
	for _, st := range models.Statuses {
		n := stats.Count(st)
		pct := 0.0
		if stats.Total > 0 {
			pct = float64(n) / float64(stats.Total) * 100
		}
		fmt.Fprintf(&b, "  %s %d (%.1f%%)\n", Status(st)+":", n, pct)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Record renders one job's details
func Record(rec models.JobRecord) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(rec.JobTitle))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", LabelStyle.Render("Company:"), rec.Company)
	fmt.Fprintf(&b, "%s %s\n", LabelStyle.Render("Status:"), Status(rec.Status))
	fmt.Fprintf(&b, "%s %s\n", LabelStyle.Render("Applied:"), rec.DateApplied)
	fmt.Fprintf(&b, "%s %s\n", LabelStyle.Render("Link:"), Link(rec.JobURL))
	fmt.Fprintf(&b, "%s %s", LabelStyle.Render("ID:"), rec.ID)
	return b.String()
}

// Draft renders the form being edited
func Draft(title string, d models.Draft) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n")
	fields := []struct{ label, value string }{
		{"[1] Job Title:", d.JobTitle},
		{"[2] Company:", d.Company},
		{"[3] Status:", Status(d.Status)},
		{"[4] Job URL:", d.JobURL},
		{"[5] Date Applied:", d.DateApplied},
	}
	for _, f := range fields {
		fmt.Fprintf(&b, "%s %s\n", LabelStyle.Render(f.label), f.value)
	}
	return strings.TrimRight(b.String(), "\n")
}
