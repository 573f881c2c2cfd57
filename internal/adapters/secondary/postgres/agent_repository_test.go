package postgres

import (
	"testing"

	"github.com/lorrc/support-analytics/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgentRepository_ListAgents(t *testing.T) {
	ctx, tx := txContext(t)
	repo := NewAgentRepository(testPool)

	t.Run("no agents", func(t *testing.T) {
		agents, err := repo.ListAgents(ctx)
		require.NoError(t, err)
		assert.Empty(t, agents)
	})

	avatar := "https://cdn.example.com/bob.png"
	insertUser(t, ctx, tx, "Carol", "Payments", nil, domain.RoleAgent, at(3, 0))
	insertUser(t, ctx, tx, "Admin", "Ops", nil, domain.RoleAdmin, at(1, 0))
	insertUser(t, ctx, tx, "Bob", "Games", &avatar, domain.RoleAgent, at(2, 0))
	insertUser(t, ctx, tx, "Customer", "", nil, domain.RoleCustomer, at(2, 1))

	t.Run("only agents in creation order", func(t *testing.T) {
		agents, err := repo.ListAgents(ctx)
		require.NoError(t, err)
		require.Len(t, agents, 2)

		assert.Equal(t, "Bob", agents[0].Name)
		assert.Equal(t, "Games", agents[0].Department)
		require.NotNil(t, agents[0].Avatar)
		assert.Equal(t, avatar, *agents[0].Avatar)
		assert.Equal(t, domain.RoleAgent, agents[0].Role)

		assert.Equal(t, "Carol", agents[1].Name)
		assert.Nil(t, agents[1].Avatar)
		assert.Equal(t, "", agents[1].AvatarOrEmpty())
	})
}
