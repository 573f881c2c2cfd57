package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lorrc/support-analytics/internal/core/domain"
	"github.com/lorrc/support-analytics/internal/core/ports"
	"github.com/lorrc/support-analytics/internal/core/utils"
)

type AgentRepository struct {
	pool *pgxpool.Pool
}

var _ ports.AgentRepository = (*AgentRepository)(nil)

func NewAgentRepository(pool *pgxpool.Pool) ports.AgentRepository {
	return &AgentRepository{pool: pool}
}

// ListAgents returns users with the agent role in creation order.
func (r *AgentRepository) ListAgents(ctx context.Context) ([]*domain.User, error) {
	const query = `
SELECT id, name, department, avatar, role, created_at
FROM users
WHERE role = $1
ORDER BY created_at, id
`

	rows, err := GetDBTX(ctx, r.pool).Query(ctx, query, domain.RoleAgent)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	agents := make([]*domain.User, 0)
	for rows.Next() {
		var (
			id         pgtype.UUID
			name       string
			department string
			avatar     pgtype.Text
			role       string
			createdAt  time.Time
		)
		if err := rows.Scan(&id, &name, &department, &avatar, &role, &createdAt); err != nil {
			return nil, err
		}
		agents = append(agents, &domain.User{
			ID:         id.Bytes,
			Name:       name,
			Department: department,
			Avatar:     utils.TextPtr(avatar),
			Role:       role,
			CreatedAt:  createdAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return agents, nil
}
