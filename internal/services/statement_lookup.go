package services

import (
	"context"
	"errors"
	"fmt"

	"statement-ledger/internal/models"
	"statement-ledger/internal/store"
)

// GetStatementOperation returns one statement owned by userID. A statement
// owned by anyone else is reported as not found.
func (s *StatementService) GetStatementOperation(ctx context.Context, userID, statementID string) (*models.Statement, error) {
	if _, err := findUser(ctx, s.users, userID); err != nil {
		return nil, err
	}

	statement, err := s.statements.FindByID(ctx, statementID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, newError(ErrStatementNotFound, statementID)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("statement_id", statementID).Msg("Error fetching statement")
		return nil, fmt.Errorf("database error: %w", err)
	}

	if statement.UserID != userID {
		s.logger.Warn().
			Str("user_id", userID).
			Str("statement_id", statementID).
			Msg("Statement requested by non-owner")
		return nil, newError(ErrStatementNotFound, statementID)
	}

	return statement, nil
}
