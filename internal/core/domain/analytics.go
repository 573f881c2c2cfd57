package domain

import (
	"fmt"
	"math"
	"slices"
	"time"
)

// TicketTotals is the raw result of the metrics aggregation. Averages and
// sums are nil when no ticket matched; use OrZero to read them.
type TicketTotals struct {
	Count       int64
	TotalAmount *float64
	AvgPayout   *float64
	AvgGames    *float64
}

// MetricsSummary holds the numbers behind the metrics card.
type MetricsSummary struct {
	Range        RangeSelector `json:"range"`
	TotalTickets int64         `json:"totalTickets"`
	TotalAmount  float64       `json:"totalAmount"`
	AvgPayout    float64       `json:"avgPayout"`
	AvgGames     float64       `json:"avgGames"`
}

// NewMetricsSummary coerces missing aggregates to zero.
func NewMetricsSummary(selector RangeSelector, totals TicketTotals) MetricsSummary {
	return MetricsSummary{
		Range:        selector,
		TotalTickets: totals.Count,
		TotalAmount:  OrZero(totals.TotalAmount),
		AvgPayout:    OrZero(totals.AvgPayout),
		AvgGames:     OrZero(totals.AvgGames),
	}
}

// ShareSplit partitions a ticket count into a flagged share and the rest,
// both as whole percentages.
type ShareSplit struct {
	Flagged   int   `json:"flagged"`
	Unflagged int   `json:"unflagged"`
	Total     int64 `json:"total"`
}

// NewShareSplit computes the percentages of flagged out of total. A zero
// total yields 0% for both sides.
func NewShareSplit(flagged, total int64) ShareSplit {
	if total <= 0 {
		return ShareSplit{Total: total}
	}
	return ShareSplit{
		Flagged:   int(RoundHalfUp(float64(flagged) / float64(total) * 100)),
		Unflagged: int(RoundHalfUp(float64(total-flagged) / float64(total) * 100)),
		Total:     total,
	}
}

// WeeklyResponseTime is one week bucket of the first-response aggregation.
type WeeklyResponseTime struct {
	WeekStart time.Time
	Bot       *float64
	Human     *float64
}

// FRTPoint is a labelled point on the first-response trend chart.
type FRTPoint struct {
	Week   string  `json:"week"`
	Bot    float64 `json:"bot"`
	Humans float64 `json:"humans"`
}

// NewFRTSeries orders the buckets chronologically and labels them Week1,
// Week2, ... by position.
func NewFRTSeries(buckets []WeeklyResponseTime) []FRTPoint {
	sorted := make([]WeeklyResponseTime, len(buckets))
	copy(sorted, buckets)
	slices.SortStableFunc(sorted, func(a, b WeeklyResponseTime) int {
		return a.WeekStart.Compare(b.WeekStart)
	})

	points := make([]FRTPoint, 0, len(sorted))
	for i, b := range sorted {
		points = append(points, FRTPoint{
			Week:   fmt.Sprintf("Week%d", i+1),
			Bot:    RoundTo(OrZero(b.Bot), 2),
			Humans: RoundTo(OrZero(b.Human), 2),
		})
	}
	return points
}

// ResolutionTime is the average ticket resolution time in whole minutes.
type ResolutionTime struct {
	Range   RangeSelector `json:"range"`
	Minutes int64         `json:"minutes"`
}

// NewResolutionTime rounds the average to whole minutes; nil means no
// resolved ticket matched.
func NewResolutionTime(selector RangeSelector, avgMinutes *float64) ResolutionTime {
	return ResolutionTime{
		Range:   selector,
		Minutes: int64(RoundHalfUp(OrZero(avgMinutes))),
	}
}

func (r ResolutionTime) Hours() int64 {
	return r.Minutes / 60
}

func (r ResolutionTime) RemainderMinutes() int64 {
	return r.Minutes % 60
}

// Display formats the duration as "<h>Hrs <m>Mins".
func (r ResolutionTime) Display() string {
	return fmt.Sprintf("%dHrs %dMins", r.Hours(), r.RemainderMinutes())
}

// AgentWorkload is one row of the agents table.
type AgentWorkload struct {
	Name         string `json:"name"`
	Department   string `json:"department"`
	TotalTickets int64  `json:"totalTickets"`
	Avatar       string `json:"avatar"`
}

// AgentsReport covers the current calendar week.
type AgentsReport struct {
	Week   string          `json:"week"`
	Agents []AgentWorkload `json:"agents"`
}

func (r AgentsReport) TotalAgents() int {
	return len(r.Agents)
}

// OrZero dereferences v, treating nil as 0.
func OrZero(v *float64) float64 {
	if v == nil || math.IsNaN(*v) {
		return 0
	}
	return *v
}

// RoundHalfUp rounds to the nearest integer with ties going toward +Inf.
func RoundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
