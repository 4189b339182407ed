package services

import (
	"context"
	"testing"

	"statement-ledger/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStatementOperation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "u@example.com")

	st, err := f.create(t, u, models.OperationDeposit, 100)
	require.NoError(t, err)

	found, err := f.engine.GetStatementOperation(ctx, u, st.ID)
	require.NoError(t, err)
	assert.Equal(t, st.ID, found.ID)
	assert.Equal(t, "100", found.Amount.String())

	_, err = f.engine.GetStatementOperation(ctx, "invalidUserId", st.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = f.engine.GetStatementOperation(ctx, u, "invalidStatementId")
	assert.ErrorIs(t, err, ErrStatementNotFound)
}

func TestGetStatementOperationEnforcesOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "u@example.com")
	v := f.user(t, "v@example.com")

	owned, err := f.create(t, v, models.OperationDeposit, 100)
	require.NoError(t, err)

	_, err = f.engine.GetStatementOperation(ctx, u, owned.ID)
	assert.ErrorIs(t, err, ErrStatementNotFound)

	_, err = f.statements.FindByID(ctx, owned.ID)
	require.NoError(t, err, "the statement exists, it is only hidden from non-owners")
}

func TestStatementsNeverChange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "u@example.com")

	first, err := f.create(t, u, models.OperationDeposit, 100)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := f.create(t, u, models.OperationWithdraw, 10)
		require.NoError(t, err)

		again, err := f.engine.GetStatementOperation(ctx, u, first.ID)
		require.NoError(t, err)
		assert.Equal(t, first.Amount.String(), again.Amount.String())
		assert.Equal(t, first.Type, again.Type)
		assert.Equal(t, first.UserID, again.UserID)
	}
}
