package services

import (
	"context"
	"sync"
	"testing"

	"statement-ledger/internal/models"
	"statement-ledger/internal/store/memory"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type recordedEvent struct {
	topic string
	event any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, topic string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{topic: topic, event: event})
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.topic)
	}
	return out
}

type fixture struct {
	users      *memory.UserDirectory
	statements *memory.StatementStore
	publisher  *recordingPublisher
	userSvc    *UserService
	engine     *StatementService
	balances   *BalanceService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zerolog.Nop()
	f := &fixture{
		users:      memory.NewUserDirectory(),
		statements: memory.NewStatementStore(),
		publisher:  &recordingPublisher{},
	}
	f.userSvc = NewUserService(f.users, logger)
	f.userSvc.cost = bcrypt.MinCost
	f.engine = NewStatementService(f.users, f.statements, f.publisher, logger)
	f.balances = NewBalanceService(f.users, f.statements, logger)
	return f
}

func (f *fixture) user(t *testing.T, email string) string {
	t.Helper()
	u, err := f.userSvc.Register(context.Background(), &models.RegisterRequest{
		Name: "Test User", Email: email, Password: "password",
	})
	require.NoError(t, err)
	return u.ID
}

func (f *fixture) create(t *testing.T, userID string, typ models.OperationType, amount int64) (*models.Statement, error) {
	t.Helper()
	req := &models.CreateStatementRequest{
		UserID:      userID,
		Type:        typ,
		Amount:      decimal.NewFromInt(amount),
		Description: "test " + string(typ),
	}
	if typ == models.OperationTransfer {
		req.SenderID = userID
	}
	return f.engine.CreateStatement(context.Background(), req)
}

func (f *fixture) balance(t *testing.T, userID string) *models.Balance {
	t.Helper()
	b, err := f.balances.GetBalance(context.Background(), userID)
	require.NoError(t, err)
	return b
}
