package http

import (
	"fmt"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/lorrc/support-analytics/internal/core/domain"
)

// MetricCardDTO is one card of the dashboard header.
type MetricCardDTO struct {
	Title   string            `json:"title"`
	Value   string            `json:"value"`
	Subtext string            `json:"subtext"`
	Trend   string            `json:"trend"`
	Info    map[string]string `json:"info"`
}

// MetricsResponse wraps the cards returned by /metrics.
type MetricsResponse struct {
	MetricData []MetricCardDTO `json:"metricData"`
}

// AutomationRateResponse is the bot/human split.
type AutomationRateResponse struct {
	Bot          int   `json:"bot"`
	Human        int   `json:"human"`
	TotalQueries int64 `json:"totalQueries"`
}

// EscalationRateResponse is the escalated/non-escalated split.
type EscalationRateResponse struct {
	Escalated    int   `json:"escalated"`
	NonEscalated int   `json:"nonEscalated"`
	TotalQueries int64 `json:"totalQueries"`
}

// ResolutionTimeResponse is the average resolution time card.
type ResolutionTimeResponse struct {
	Label   string `json:"label"`
	Range   string `json:"range"`
	Value   string `json:"value"`
	Minutes int64  `json:"minutes"`
}

// AgentRowDTO is one row of the agents table.
type AgentRowDTO struct {
	Name         string `json:"name"`
	Department   string `json:"department"`
	TotalTickets int64  `json:"totalTickets"`
	Avatar       string `json:"avatar"`
}

// AgentsResponse is the agents table.
type AgentsResponse struct {
	Week        string        `json:"week"`
	TotalAgents int           `json:"totalAgents"`
	Data        []AgentRowDTO `json:"data"`
}

const (
	metricsTitle        = "Total Tickets"
	resolutionTimeLabel = "Average Resolution Time"
	// Dashboards key on this value; it does not follow the selector.
	resolutionTimeRange = "this_week"
)

// newPrinter returns an en-US number printer. Printers are not shared
// between requests.
func newPrinter() *message.Printer {
	return message.NewPrinter(language.English)
}

func presentMetrics(summary *domain.MetricsSummary) MetricsResponse {
	p := newPrinter()
	count := p.Sprint(number.Decimal(summary.TotalTickets))

	subtext := "/ This Week"
	if summary.Range.IsMonthly() {
		subtext = "/ This Month"
	}

	return MetricsResponse{
		MetricData: []MetricCardDTO{
			{
				Title:   metricsTitle,
				Value:   count,
				Subtext: subtext,
				Trend:   "+0%",
				Info: map[string]string{
					"Total Tickets": count,
					"Total Amount":  p.Sprint(number.Decimal(summary.TotalAmount, number.MaxFractionDigits(3))),
					"Avg Payout %":  fmt.Sprintf("%.2f%%", summary.AvgPayout),
					"Avg Games":     strconv.FormatInt(int64(domain.RoundHalfUp(summary.AvgGames)), 10),
				},
			},
		},
	}
}

func presentAutomationRate(split *domain.ShareSplit) AutomationRateResponse {
	return AutomationRateResponse{
		Bot:          split.Flagged,
		Human:        split.Unflagged,
		TotalQueries: split.Total,
	}
}

func presentEscalationRate(split *domain.ShareSplit) EscalationRateResponse {
	return EscalationRateResponse{
		Escalated:    split.Flagged,
		NonEscalated: split.Unflagged,
		TotalQueries: split.Total,
	}
}

func presentResolutionTime(rt *domain.ResolutionTime) ResolutionTimeResponse {
	return ResolutionTimeResponse{
		Label:   resolutionTimeLabel,
		Range:   resolutionTimeRange,
		Value:   rt.Display(),
		Minutes: rt.Minutes,
	}
}

func presentAgents(report *domain.AgentsReport) AgentsResponse {
	rows := make([]AgentRowDTO, 0, len(report.Agents))
	for _, a := range report.Agents {
		rows = append(rows, AgentRowDTO{
			Name:         a.Name,
			Department:   a.Department,
			TotalTickets: a.TotalTickets,
			Avatar:       a.Avatar,
		})
	}
	return AgentsResponse{
		Week:        report.Week,
		TotalAgents: len(rows),
		Data:        rows,
	}
}
