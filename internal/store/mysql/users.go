package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"statement-ledger/internal/models"
	"statement-ledger/internal/store"

	driver "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
)

const errDuplicateEntry = 1062

type UserDirectory struct {
	db *sql.DB
}

func NewUserDirectory(db *sql.DB) *UserDirectory {
	return &UserDirectory{db: db}
}

func (d *UserDirectory) Create(ctx context.Context, user *models.User) (*models.User, error) {
	created := *user
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	_, err := d.db.ExecContext(ctx,
		"INSERT INTO users (id, name, email, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		created.ID, created.Name, created.Email, created.PasswordHash, created.CreatedAt, created.UpdatedAt,
	)
	if err != nil {
		var mysqlErr *driver.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == errDuplicateEntry {
			if strings.Contains(mysqlErr.Message, "PRIMARY") {
				return nil, store.ErrDuplicateID
			}
			return nil, store.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return &created, nil
}

func (d *UserDirectory) FindByID(ctx context.Context, id string) (*models.User, error) {
	return d.findOne(ctx, "SELECT id, name, email, password_hash, created_at, updated_at FROM users WHERE id = ?", id)
}

func (d *UserDirectory) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return d.findOne(ctx, "SELECT id, name, email, password_hash, created_at, updated_at FROM users WHERE email = ?", email)
}

func (d *UserDirectory) findOne(ctx context.Context, query string, arg string) (*models.User, error) {
	var user models.User
	err := d.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

var _ store.UserDirectory = (*UserDirectory)(nil)
