package handlers

import (
	"encoding/json"
	"net/http"
	"path"

	"statement-ledger/internal/middleware"
	"statement-ledger/internal/models"
	"statement-ledger/internal/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type StatementHandler struct {
	statementService *services.StatementService
	balanceService   *services.BalanceService
	logger           zerolog.Logger
}

func NewStatementHandler(statementService *services.StatementService, balanceService *services.BalanceService, logger zerolog.Logger) *StatementHandler {
	return &StatementHandler{
		statementService: statementService,
		balanceService:   balanceService,
		logger:           logger,
	}
}

// CreateStatement serves POST /statements/{deposit|withdraw|transfers}.
// The operation is taken from the last path segment. A transfer moves
// money from the caller to body.receiver_id and answers with the
// caller's leg.
func (h *StatementHandler) CreateStatement(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized", "User not authenticated")
		return
	}

	opType, err := models.ParseOperationType(path.Base(r.URL.Path))
	if err != nil {
		respondWithError(w, http.StatusNotFound, "unknown_operation", err.Error())
		return
	}

	var body models.StatementBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if opType == models.OperationTransfer {
		transfer, err := h.statementService.Transfer(r.Context(), &models.TransferRequest{
			SenderID:    userID,
			ReceiverID:  body.ReceiverID,
			Amount:      body.Amount,
			Description: body.Description,
		})
		if err != nil {
			h.logger.Error().Err(err).Str("user_id", userID).Msg("Transfer failed")
			respondWithServiceError(w, err)
			return
		}
		respondWithJSON(w, http.StatusCreated, transfer.Debit)
		return
	}

	statement, err := h.statementService.CreateStatement(r.Context(), &models.CreateStatementRequest{
		UserID:      userID,
		Type:        opType,
		Amount:      body.Amount,
		Description: body.Description,
	})
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Str("type", string(opType)).Msg("Statement creation failed")
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, statement)
}

func (h *StatementHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized", "User not authenticated")
		return
	}

	balance, err := h.balanceService.GetBalance(r.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to fetch balance")
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, balance)
}

// GetTransferBalance serves GET /statements/balance/{sender_id}.
func (h *StatementHandler) GetTransferBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized", "User not authenticated")
		return
	}
	senderID := mux.Vars(r)["sender_id"]

	balance, err := h.balanceService.GetTransferBalance(r.Context(), userID, senderID)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to fetch transfer balance")
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":   userID,
		"sender_id": senderID,
		"balance":   balance,
	})
}

func (h *StatementHandler) GetStatementOperation(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized", "User not authenticated")
		return
	}

	statement, err := h.statementService.GetStatementOperation(r.Context(), userID, mux.Vars(r)["statement_id"])
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, statement)
}
