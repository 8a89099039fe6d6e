package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/arcadehub/ledger_engine/internal/core/ports/services"
	"github.com/arcadehub/ledger_engine/internal/dto"
	"github.com/arcadehub/ledger_engine/internal/middleware"
)

// balanceHandler handles HTTP requests for balances and snapshots.
type balanceHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

// newBalanceHandler creates a new balanceHandler.
func newBalanceHandler(bs portssvc.BalanceSvcFacade) *balanceHandler {
	return &balanceHandler{balanceService: bs}
}

// registerBalanceRoutes registers balance and snapshot routes.
func registerBalanceRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade) {
	h := newBalanceHandler(balanceService)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("/:accountID/balance", h.getBalance)
		accounts.GET("/:accountID/snapshots", h.listSnapshots)
		accounts.POST("/:accountID/snapshots", h.createSnapshot)
	}

	snapshots := rg.Group("/snapshots")
	{
		snapshots.POST("", h.snapshotAll)
	}
}

// getBalance godoc
// @Summary Get an account's balance
// @Description Signed per the account's normal balance: positive means the account carries its normal side. Computed from posted entries only, optionally at a historical date.
// @Tags balances
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   asOf query string false "Point in time (RFC3339); at=date uses the snapshot fast path"
// @Param   date query string false "Historical day (RFC3339); served from the nearest snapshot plus newer entries"
// @Success 200 {object} dto.BalanceResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{accountID}/balance [get]
func (h *balanceHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.Parse(time.RFC3339, dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected RFC3339"})
			return
		}
		resp, err := h.balanceService.GetBalanceAtDate(c.Request.Context(), accountID, date)
		if err != nil {
			respondWithError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	var asOf *time.Time
	if asOfStr := c.Query("asOf"); asOfStr != "" {
		t, err := time.Parse(time.RFC3339, asOfStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date, expected RFC3339"})
			return
		}
		asOf = &t
	}

	resp, err := h.balanceService.GetAccountBalance(c.Request.Context(), accountID, asOf)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// createSnapshot godoc
// @Summary Snapshot an account's balance
// @Description Persists the balance as of a day; re-snapshotting the same day replaces the stored value
// @Tags balances
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   date query string false "Snapshot day (RFC3339), defaults to today"
// @Param   X-Actor-ID header string true "Opaque actor identifier for audit attribution"
// @Success 201 {object} dto.SnapshotResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{accountID}/snapshots [post]
func (h *balanceHandler) createSnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Actor-ID header is required"})
		return
	}

	date := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		var err error
		date, err = time.Parse(time.RFC3339, dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected RFC3339"})
			return
		}
	}

	snapshot, err := h.balanceService.CreateSnapshot(c.Request.Context(), c.Param("accountID"), date, actor)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSnapshotResponse(snapshot))
}

// snapshotAll godoc
// @Summary Snapshot every active account
// @Tags balances
// @Produce  json
// @Param   date query string false "Snapshot day (RFC3339), defaults to today"
// @Param   X-Actor-ID header string true "Opaque actor identifier for audit attribution"
// @Success 201 {object} dto.ListSnapshotsResponse
// @Router /snapshots [post]
func (h *balanceHandler) snapshotAll(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Actor-ID header is required"})
		return
	}

	date := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		var err error
		date, err = time.Parse(time.RFC3339, dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected RFC3339"})
			return
		}
	}

	snapshots, err := h.balanceService.SnapshotAll(c.Request.Context(), date, actor)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToListSnapshotsResponse(snapshots))
}

// listSnapshots godoc
// @Summary List an account's snapshots
// @Tags balances
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   limit query int false "Maximum snapshots to return"
// @Success 200 {object} dto.ListSnapshotsResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{accountID}/snapshots [get]
func (h *balanceHandler) listSnapshots(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	resp, err := h.balanceService.ListSnapshots(c.Request.Context(), c.Param("accountID"), limit)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
