package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/hours"
)

// FormatClientList renders the registry as a table in creation order.
func FormatClientList(clients []*domain.Client) string {
	if len(clients) == 0 {
		return Dim("No clients yet. Add one with 'tempo client add'.") + "\n"
	}
	rows := make([][]string, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, []string{
			TruncID(c.ID),
			c.Name,
			c.Category,
			FormatHours(c.AvailableHours),
			FormatRate(c.HasFee, c.HourlyRate),
			Dim(Truncate(c.Info, 40)),
		})
	}
	return RenderTable([]Column{Col("ID"), Col("CLIENT"), Col("CATEGORY"), RCol("BUDGET"), RCol("RATE"), Col("INFO")}, rows)
}

// FormatSessionList renders sessions oldest first.
func FormatSessionList(sessions []*domain.Session, now time.Time) string {
	if len(sessions) == 0 {
		return Dim("No sessions logged.") + "\n"
	}
	rows := make([][]string, 0, len(sessions))
	var total float64
	for _, s := range sessions {
		total += s.Hours
		rows = append(rows, []string{
			HumanDate(s.Date, now),
			s.ClientName,
			s.ProjectName,
			FormatHours(s.Hours),
			Dim(string(s.Source)),
		})
	}
	out := RenderTable([]Column{Col("DATE"), Col("CLIENT"), Col("PROJECT"), RCol("HOURS"), Col("SOURCE")}, rows)
	return out + Dim(fmt.Sprintf("%d sessions, %s total", len(sessions), FormatHours(total))) + "\n"
}

// LowHoursWarning is shown under a client card whose remaining hours are
// below the low-hours threshold.
func LowHoursWarning(remaining float64) string {
	if remaining < 0 {
		return StyleRed.Render(fmt.Sprintf("▲ Over budget by %s", FormatHours(-remaining)))
	}
	return StyleYellow.Render(fmt.Sprintf("▲ Low hours: less than %.0fh remaining", hours.LowHoursThreshold))
}

// FormatClientCard renders one dashboard card.
func FormatClientCard(row hours.ClientSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Dim("Budget   "), FormatHours(row.AvailableHours))
	fmt.Fprintf(&b, "%s  %s\n", Dim("Consumed "), FormatHours(row.ConsumedHours))
	fmt.Fprintf(&b, "%s  %s\n", Dim("Remaining"), RemainingStyle(row.RemainingHours).Render(FormatHours(row.RemainingHours)))
	if row.HasFee {
		fmt.Fprintf(&b, "%s  %s\n", Dim("Rate     "), FormatRate(row.HasFee, row.HourlyRate))
	}
	b.WriteString(RenderBudgetBar(row.ConsumedHours, row.AvailableHours, 20))
	if row.Low {
		b.WriteString("\n" + LowHoursWarning(row.RemainingHours))
	}
	return RenderBox(row.Name, b.String())
}

// FormatDashboard renders every client card followed by a one-line footer.
func FormatDashboard(rows []hours.ClientSummary) string {
	if len(rows) == 0 {
		return Dim("No clients yet. Add one with 'tempo client add'.") + "\n"
	}
	var b strings.Builder
	var consumed float64
	for _, row := range rows {
		consumed += row.ConsumedHours
		b.WriteString(FormatClientCard(row))
		b.WriteString("\n")
	}
	footer := fmt.Sprintf("%d clients, %s consumed", len(rows), FormatHours(consumed))
	if low := hours.LowCount(rows); low > 0 {
		footer += ", " + StyleYellow.Render(fmt.Sprintf("%d low", low))
	}
	b.WriteString(Dim(footer) + "\n")
	return b.String()
}
