package services

import (
	"context"
	"fmt"

	"statement-ledger/internal/models"
	"statement-ledger/internal/store"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type BalanceService struct {
	users      store.UserDirectory
	statements store.StatementStore
	logger     zerolog.Logger
}

func NewBalanceService(users store.UserDirectory, statements store.StatementStore, logger zerolog.Logger) *BalanceService {
	return &BalanceService{
		users:      users,
		statements: statements,
		logger:     logger,
	}
}

// GetBalance returns the user's statements in store order together with
// their signed sum.
func (s *BalanceService) GetBalance(ctx context.Context, userID string) (*models.Balance, error) {
	if _, err := findUser(ctx, s.users, userID); err != nil {
		return nil, err
	}

	statements, err := s.statements.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Error fetching statements")
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &models.Balance{
		UserID:     userID,
		Balance:    models.Fold(statements),
		Statements: statements,
	}, nil
}

// GetTransferBalance sums the transfer legs userID holds from senderID:
// what senderID has sent to userID, or, when both are the same user,
// minus everything userID has sent out.
func (s *BalanceService) GetTransferBalance(ctx context.Context, userID, senderID string) (decimal.Decimal, error) {
	if _, err := findUser(ctx, s.users, userID); err != nil {
		return decimal.Zero, err
	}
	if _, err := findUser(ctx, s.users, senderID); err != nil {
		return decimal.Zero, err
	}

	balance, err := s.statements.GetBalance(ctx, userID, senderID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Str("sender_id", senderID).Msg("Error fetching transfer balance")
		return decimal.Zero, fmt.Errorf("database error: %w", err)
	}
	return balance, nil
}
