package memory

import (
	"context"
	"sync"
	"time"

	"statement-ledger/internal/models"
	"statement-ledger/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatementStore is an in-memory statement store. Statements are kept in
// a slice in insertion order; callers always get copies.
type StatementStore struct {
	mu         sync.Mutex
	statements []models.Statement
	byID       map[string]int
}

func NewStatementStore() *StatementStore {
	return &StatementStore{
		statements: make([]models.Statement, 0),
		byID:       make(map[string]int),
	}
}

func (m *StatementStore) Append(ctx context.Context, statement *models.Statement) (*models.Statement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkDebit(statement); err != nil {
		return nil, err
	}
	return m.insert(statement), nil
}

func (m *StatementStore) AppendTransfer(ctx context.Context, debit, credit *models.Statement) (*models.Statement, *models.Statement, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkDebit(debit); err != nil {
		return nil, nil, err
	}
	return m.insert(debit), m.insert(credit), nil
}

func (m *StatementStore) ListByUser(ctx context.Context, userID string) ([]*models.Statement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]*models.Statement, 0)
	for i := range m.statements {
		if m.statements[i].UserID == userID {
			s := m.statements[i]
			result = append(result, &s)
		}
	}
	return result, nil
}

func (m *StatementStore) GetBalance(ctx context.Context, userID, senderID string) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if senderID == "" {
		return m.balanceLocked(userID), nil
	}

	total := decimal.Zero
	for i := range m.statements {
		if store.InSenderScope(&m.statements[i], userID, senderID) {
			total = total.Add(m.statements[i].Signed())
		}
	}
	return total, nil
}

func (m *StatementStore) FindByID(ctx context.Context, id string) (*models.Statement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i, ok := m.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	s := m.statements[i]
	return &s, nil
}

// checkDebit refuses a debit the owner cannot cover.
func (m *StatementStore) checkDebit(s *models.Statement) error {
	if !s.IsDebit() {
		return nil
	}
	if m.balanceLocked(s.UserID).LessThan(s.Amount) {
		return store.ErrInsufficientFunds
	}
	return nil
}

func (m *StatementStore) balanceLocked(userID string) decimal.Decimal {
	total := decimal.Zero
	for i := range m.statements {
		if m.statements[i].UserID == userID {
			total = total.Add(m.statements[i].Signed())
		}
	}
	return total
}

func (m *StatementStore) insert(s *models.Statement) *models.Statement {
	stored := *s
	stored.ID = uuid.NewString()
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	m.byID[stored.ID] = len(m.statements)
	m.statements = append(m.statements, stored)

	out := stored
	return &out
}

var _ store.StatementStore = (*StatementStore)(nil)
