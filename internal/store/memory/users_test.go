package memory

import (
	"context"
	"testing"

	"statement-ledger/internal/models"
	"statement-ledger/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserDirectory(t *testing.T) {
	ctx := context.Background()
	d := NewUserDirectory()

	created, err := d.Create(ctx, &models.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "x"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	byID, err := d.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", byID.Email)

	byEmail, err := d.FindByEmail(ctx, "ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = d.Create(ctx, &models.User{Name: "Other", Email: "ada@example.com"})
	assert.ErrorIs(t, err, store.ErrDuplicateEmail)

	_, err = d.FindByID(ctx, "nonexistent")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = d.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUserDirectoryRejectsTakenID(t *testing.T) {
	ctx := context.Background()
	d := NewUserDirectory()

	_, err := d.Create(ctx, &models.User{ID: "u1", Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	_, err = d.Create(ctx, &models.User{ID: "u1", Name: "Eve", Email: "eve@example.com"})
	assert.ErrorIs(t, err, store.ErrDuplicateID)

	kept, err := d.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", kept.Email)
	_, err = d.FindByEmail(ctx, "eve@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
