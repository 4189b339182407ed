package mysql

import (
	"context"
	"testing"
	"time"

	"statement-ledger/internal/models"
	"statement-ledger/internal/store"

	"github.com/DATA-DOG/go-sqlmock"
	driver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const insertUser = "INSERT INTO users (id, name, email, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)"

func TestCreateUser(t *testing.T) {
	db, mock := newMock(t)
	d := NewUserDirectory(db)

	mock.ExpectExec(insertUser).
		WithArgs(sqlmock.AnyArg(), "Ada", "ada@example.com", "hash", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	user, err := d.Create(context.Background(), &models.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "hash"})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db, mock := newMock(t)
	d := NewUserDirectory(db)

	mock.ExpectExec(insertUser).WillReturnError(&driver.MySQLError{Number: errDuplicateEntry, Message: "Duplicate entry 'ada@example.com' for key 'users.email'"})

	_, err := d.Create(context.Background(), &models.User{Name: "Ada", Email: "ada@example.com"})
	assert.ErrorIs(t, err, store.ErrDuplicateEmail)
}

func TestCreateUserDuplicateID(t *testing.T) {
	db, mock := newMock(t)
	d := NewUserDirectory(db)

	mock.ExpectExec(insertUser).WillReturnError(&driver.MySQLError{
		Number:  errDuplicateEntry,
		Message: "Duplicate entry 'u1' for key 'users.PRIMARY'",
	})

	_, err := d.Create(context.Background(), &models.User{ID: "u1", Name: "Ada", Email: "ada@example.com"})
	assert.ErrorIs(t, err, store.ErrDuplicateID)
}

func TestFindUser(t *testing.T) {
	db, mock := newMock(t)
	d := NewUserDirectory(db)
	now := time.Now().UTC()
	columns := []string{"id", "name", "email", "password_hash", "created_at", "updated_at"}

	mock.ExpectQuery("SELECT id, name, email, password_hash, created_at, updated_at FROM users WHERE id = ?").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(columns).AddRow("u1", "Ada", "ada@example.com", "hash", now, now))
	mock.ExpectQuery("SELECT id, name, email, password_hash, created_at, updated_at FROM users WHERE email = ?").
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows(columns))

	user, err := d.FindByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)

	_, err = d.FindByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
