package services

import (
	"context"
	"errors"
	"fmt"

	"statement-ledger/internal/events"
	"statement-ledger/internal/models"
	"statement-ledger/internal/store"

	"github.com/rs/zerolog"
)

// StatementService validates and records statements.
type StatementService struct {
	users      store.UserDirectory
	statements store.StatementStore
	publisher  events.Publisher
	logger     zerolog.Logger
	locks      userLocks
}

func NewStatementService(users store.UserDirectory, statements store.StatementStore, publisher events.Publisher, logger zerolog.Logger) *StatementService {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &StatementService{
		users:      users,
		statements: statements,
		publisher:  publisher,
		logger:     logger,
	}
}

// CreateStatement records one statement for req.UserID. A transfer
// recorded this way is a single leg: the outbound leg (UserID ==
// SenderID) is guarded by the sender's balance, the inbound leg is not.
// Use Transfer to write both legs at once.
func (s *StatementService) CreateStatement(ctx context.Context, req *models.CreateStatementRequest) (*models.Statement, error) {
	if _, err := findUser(ctx, s.users, req.UserID); err != nil {
		return nil, err
	}

	if !req.Type.Valid() {
		return nil, newError(ErrInvalidOperation, string(req.Type))
	}
	if !models.ValidAmount(req.Amount) {
		return nil, newError(ErrInvalidAmount, req.Amount.String())
	}

	statement := &models.Statement{
		UserID:      req.UserID,
		Amount:      req.Amount,
		Type:        req.Type,
		Description: req.Description,
	}
	if req.Type == models.OperationTransfer {
		if req.SenderID == "" {
			return nil, newError(ErrInvalidOperation, "transfer without sender")
		}
		if req.SenderID != req.UserID {
			if _, err := findUser(ctx, s.users, req.SenderID); err != nil {
				return nil, err
			}
		}
		statement.SenderID = req.SenderID
	}

	stored, err := s.appendGuarded(ctx, statement)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("statement_id", stored.ID).
		Str("user_id", stored.UserID).
		Str("type", string(stored.Type)).
		Str("amount", stored.Amount.String()).
		Msg("Statement created")

	s.publish(ctx, events.TopicStatementCreated, statementCreated(stored))
	return stored, nil
}

// Transfer moves req.Amount from the sender to the receiver, writing the
// debit and credit legs in one store transaction.
func (s *StatementService) Transfer(ctx context.Context, req *models.TransferRequest) (*models.Transfer, error) {
	if _, err := findUser(ctx, s.users, req.SenderID); err != nil {
		return nil, err
	}
	if _, err := findUser(ctx, s.users, req.ReceiverID); err != nil {
		return nil, err
	}
	if req.SenderID == req.ReceiverID {
		return nil, newError(ErrSelfTransfer, req.SenderID)
	}
	if !models.ValidAmount(req.Amount) {
		return nil, newError(ErrInvalidAmount, req.Amount.String())
	}

	debit := &models.Statement{
		UserID:      req.SenderID,
		SenderID:    req.SenderID,
		Amount:      req.Amount,
		Type:        models.OperationTransfer,
		Description: req.Description,
	}
	credit := &models.Statement{
		UserID:      req.ReceiverID,
		SenderID:    req.SenderID,
		Amount:      req.Amount,
		Type:        models.OperationTransfer,
		Description: req.Description,
	}

	out, in, err := s.appendTransferGuarded(ctx, debit, credit)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("debit_statement_id", out.ID).
		Str("credit_statement_id", in.ID).
		Str("sender_id", req.SenderID).
		Str("receiver_id", req.ReceiverID).
		Str("amount", req.Amount.String()).
		Msg("Transfer completed")

	s.publish(ctx, events.TopicTransferCompleted, events.TransferCompleted{
		DebitStatementID:  out.ID,
		CreditStatementID: in.ID,
		SenderID:          req.SenderID,
		ReceiverID:        req.ReceiverID,
		Amount:            req.Amount,
		OccurredAt:        out.CreatedAt,
	})
	return &models.Transfer{Debit: out, Credit: in}, nil
}

// appendGuarded holds the owner's lock only for the balance check and the
// append. Events are published after it returns.
func (s *StatementService) appendGuarded(ctx context.Context, statement *models.Statement) (*models.Statement, error) {
	unlock := s.locks.lock(statement.UserID)
	defer unlock()

	if statement.IsDebit() {
		if err := s.ensureFunds(ctx, statement.UserID, statement); err != nil {
			return nil, err
		}
	}

	stored, err := s.statements.Append(ctx, statement)
	if err != nil {
		return nil, s.storeError(err, statement.UserID)
	}
	return stored, nil
}

func (s *StatementService) appendTransferGuarded(ctx context.Context, debit, credit *models.Statement) (*models.Statement, *models.Statement, error) {
	unlock := s.locks.lock(debit.UserID, credit.UserID)
	defer unlock()

	if err := s.ensureFunds(ctx, debit.UserID, debit); err != nil {
		return nil, nil, err
	}

	out, in, err := s.statements.AppendTransfer(ctx, debit, credit)
	if err != nil {
		return nil, nil, s.storeError(err, debit.UserID)
	}
	return out, in, nil
}

// ensureFunds must be called with the user's lock held.
func (s *StatementService) ensureFunds(ctx context.Context, userID string, debit *models.Statement) error {
	balance, err := s.statements.GetBalance(ctx, userID, "")
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Error fetching balance")
		return fmt.Errorf("failed to check balance: %w", err)
	}
	if balance.LessThan(debit.Amount) {
		s.logger.Warn().
			Str("user_id", userID).
			Str("balance", balance.String()).
			Str("amount", debit.Amount.String()).
			Msg("Debit refused")
		return newError(ErrInsufficientFunds, userID)
	}
	return nil
}

func (s *StatementService) storeError(err error, userID string) error {
	switch {
	case errors.Is(err, store.ErrInsufficientFunds):
		return newError(ErrInsufficientFunds, userID)
	case errors.Is(err, store.ErrNotFound):
		return newError(ErrUserNotFound, userID)
	}
	s.logger.Error().Err(err).Str("user_id", userID).Msg("Error appending statement")
	return fmt.Errorf("failed to append statement: %w", err)
}

func (s *StatementService) publish(ctx context.Context, topic string, event any) {
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		s.logger.Warn().Err(err).Str("topic", topic).Msg("Failed to publish event (non-critical)")
	}
}

func statementCreated(st *models.Statement) events.StatementCreated {
	return events.StatementCreated{
		StatementID: st.ID,
		UserID:      st.UserID,
		SenderID:    st.SenderID,
		Type:        string(st.Type),
		Amount:      st.Amount,
		OccurredAt:  st.CreatedAt,
	}
}

func findUser(ctx context.Context, users store.UserDirectory, id string) (*models.User, error) {
	user, err := users.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, newError(ErrUserNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	return user, nil
}
