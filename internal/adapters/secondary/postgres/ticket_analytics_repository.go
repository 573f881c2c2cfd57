package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lorrc/support-analytics/internal/core/domain"
	"github.com/lorrc/support-analytics/internal/core/ports"
	"github.com/lorrc/support-analytics/internal/core/utils"
)

type TicketAnalyticsRepository struct {
	pool *pgxpool.Pool
}

var _ ports.TicketAnalyticsRepository = (*TicketAnalyticsRepository)(nil)

func NewTicketAnalyticsRepository(pool *pgxpool.Pool) ports.TicketAnalyticsRepository {
	return &TicketAnalyticsRepository{pool: pool}
}

func (r *TicketAnalyticsRepository) CountTickets(ctx context.Context, filter ports.TicketFilter) (int64, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT COUNT(*) FROM tickets WHERE created_at BETWEEN $1 AND $2`)
	args := []any{filter.Window.Start, filter.Window.End}

	if filter.IsBot != nil {
		args = append(args, *filter.IsBot)
		fmt.Fprintf(&sb, " AND is_bot = $%d", len(args))
	}
	if filter.IsEscalated != nil {
		args = append(args, *filter.IsEscalated)
		fmt.Fprintf(&sb, " AND is_escalated = $%d", len(args))
	}

	var count int64
	if err := GetDBTX(ctx, r.pool).QueryRow(ctx, sb.String(), args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *TicketAnalyticsRepository) SummarizeTickets(ctx context.Context, window domain.DateRange) (*domain.TicketTotals, error) {
	const query = `
SELECT COUNT(*),
       SUM(amount_spent),
       AVG(payout_percent),
       AVG((last_game_no - first_game_no)::float8)
FROM tickets
WHERE created_at BETWEEN $1 AND $2
`

	var (
		count       int64
		totalAmount pgtype.Float8
		avgPayout   pgtype.Float8
		avgGames    pgtype.Float8
	)
	row := GetDBTX(ctx, r.pool).QueryRow(ctx, query, window.Start, window.End)
	if err := row.Scan(&count, &totalAmount, &avgPayout, &avgGames); err != nil {
		return nil, err
	}

	return &domain.TicketTotals{
		Count:       count,
		TotalAmount: utils.Float8Ptr(totalAmount),
		AvgPayout:   utils.Float8Ptr(avgPayout),
		AvgGames:    utils.Float8Ptr(avgGames),
	}, nil
}

// WeeklyFirstResponse buckets by date_trunc('week'), which starts weeks on
// Monday. A week with only bot or only human tickets has a NULL average for
// the other series.
func (r *TicketAnalyticsRepository) WeeklyFirstResponse(ctx context.Context, window domain.DateRange) ([]domain.WeeklyResponseTime, error) {
	const query = `
SELECT date_trunc('week', created_at) AS week_start,
       AVG(first_response_time) FILTER (WHERE is_bot),
       AVG(first_response_time) FILTER (WHERE NOT is_bot)
FROM tickets
WHERE created_at BETWEEN $1 AND $2
GROUP BY week_start
ORDER BY week_start
`

	rows, err := GetDBTX(ctx, r.pool).Query(ctx, query, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	weeks := make([]domain.WeeklyResponseTime, 0)
	for rows.Next() {
		var (
			weekStart time.Time
			bot       pgtype.Float8
			human     pgtype.Float8
		)
		if err := rows.Scan(&weekStart, &bot, &human); err != nil {
			return nil, err
		}
		weeks = append(weeks, domain.WeeklyResponseTime{
			WeekStart: weekStart,
			Bot:       utils.Float8Ptr(bot),
			Human:     utils.Float8Ptr(human),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return weeks, nil
}

func (r *TicketAnalyticsRepository) AverageResolutionMinutes(ctx context.Context, window domain.DateRange) (*float64, error) {
	const query = `
SELECT AVG(EXTRACT(EPOCH FROM (resolved_at - created_at)) / 60)::float8
FROM tickets
WHERE status = $3
  AND resolved_at IS NOT NULL
  AND created_at BETWEEN $1 AND $2
`

	var avg pgtype.Float8
	if err := GetDBTX(ctx, r.pool).QueryRow(ctx, query, window.Start, window.End, domain.StatusResolved.String()).Scan(&avg); err != nil {
		return nil, err
	}
	return utils.Float8Ptr(avg), nil
}

func (r *TicketAnalyticsRepository) CountAssigned(ctx context.Context, agentID uuid.UUID, window domain.DateRange) (int64, error) {
	const query = `
SELECT COUNT(*)
FROM tickets
WHERE assigned_to = $1
  AND created_at BETWEEN $2 AND $3
`

	var count int64
	row := GetDBTX(ctx, r.pool).QueryRow(ctx, query, utils.ToUUID(agentID), window.Start, window.End)
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
