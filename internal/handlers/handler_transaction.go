package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/arcadehub/ledger_engine/internal/core/ports/services"
	"github.com/arcadehub/ledger_engine/internal/dto"
	"github.com/arcadehub/ledger_engine/internal/middleware"
)

// transactionHandler handles HTTP requests related to transactions.
type transactionHandler struct {
	txnService portssvc.TransactionSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{txnService: ts}
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, txnService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(txnService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("/:transactionID", h.getTransaction)
		transactions.POST("/:transactionID/post", h.postTransaction)
		transactions.POST("/:transactionID/void", h.voidTransaction)
	}
}

// createTransaction godoc
// @Summary Create a transaction
// @Description Validates, converts to base currency, and persists a balanced transaction in Pending status. Safe to retry: a repeated idempotency key returns the transaction stored first.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction with entries"
// @Param   X-Actor-ID header string true "Opaque actor identifier for audit attribution"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input or unknown referenced account"
// @Failure 404 {object} map[string]string "No applicable exchange rate"
// @Failure 422 {object} map[string]string "Entries are not balanced"
// @Failure 500 {object} map[string]string "Failed to create transaction"
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Actor-ID header is required"})
		return
	}

	created, err := h.txnService.CreateTransaction(c.Request.Context(), req, actor)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	resp := dto.ToTransactionResponse(created)
	c.JSON(http.StatusCreated, gin.H{"transaction": resp, "entries": dto.ToEntryResponses(created.Entries)})
}

// getTransaction godoc
// @Summary Get a transaction with its entries
// @Tags transactions
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Transaction not found"
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	txn, err := h.txnService.GetTransactionByID(c.Request.Context(), c.Param("transactionID"))
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	resp := dto.ToTransactionResponse(txn)
	c.JSON(http.StatusOK, gin.H{"transaction": resp, "entries": dto.ToEntryResponses(txn.Entries)})
}

// postTransaction godoc
// @Summary Post a pending transaction
// @Description Transitions Pending to Posted; only posted entries affect balances
// @Tags transactions
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Param   X-Actor-ID header string true "Opaque actor identifier for audit attribution"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Transaction is not pending"
// @Router /transactions/{transactionID}/post [post]
func (h *transactionHandler) postTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Actor-ID header is required"})
		return
	}

	posted, err := h.txnService.PostTransaction(c.Request.Context(), c.Param("transactionID"), actor)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(posted))
}

// voidTransaction godoc
// @Summary Void a transaction
// @Description Transitions Pending or Posted to Voided. No compensating entries are created; balance reads exclude the voided transaction immediately.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Param   void body dto.VoidTransactionRequest true "Void reason"
// @Param   X-Actor-ID header string true "Opaque actor identifier for audit attribution"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Transaction already voided"
// @Router /transactions/{transactionID}/void [post]
func (h *transactionHandler) voidTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.VoidTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for VoidTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Actor-ID header is required"})
		return
	}

	voided, err := h.txnService.VoidTransaction(c.Request.Context(), c.Param("transactionID"), req, actor)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(voided))
}
