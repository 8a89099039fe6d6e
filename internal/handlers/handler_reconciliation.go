package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/arcadehub/ledger_engine/internal/core/ports/services"
	"github.com/arcadehub/ledger_engine/internal/dto"
	"github.com/arcadehub/ledger_engine/internal/middleware"
)

// reconciliationHandler handles HTTP requests for reconciliation runs.
type reconciliationHandler struct {
	reconService portssvc.ReconciliationSvcFacade
}

// newReconciliationHandler creates a new reconciliationHandler.
func newReconciliationHandler(rs portssvc.ReconciliationSvcFacade) *reconciliationHandler {
	return &reconciliationHandler{reconService: rs}
}

// registerReconciliationRoutes registers reconciliation routes.
func registerReconciliationRoutes(rg *gin.RouterGroup, reconService portssvc.ReconciliationSvcFacade) {
	h := newReconciliationHandler(reconService)

	runs := rg.Group("/reconciliation/runs")
	{
		runs.POST("", h.runReconciliation)
		runs.GET("", h.listRuns)
		runs.GET("/:runID", h.getRun)
	}
}

// runReconciliation godoc
// @Summary Run a reconciliation pass
// @Description Checks ledger-wide debit/credit equality and every active account against its latest snapshot. Only one run executes at a time.
// @Tags reconciliation
// @Produce  json
// @Param   X-Actor-ID header string true "Opaque actor identifier for audit attribution"
// @Success 201 {object} dto.ReconciliationRunResponse
// @Failure 409 {object} map[string]string "A run is already in progress"
// @Router /reconciliation/runs [post]
func (h *reconciliationHandler) runReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Actor-ID header is required"})
		return
	}

	run, err := h.reconService.RunReconciliation(c.Request.Context(), actor)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToReconciliationRunResponse(run))
}

// getRun godoc
// @Summary Get a reconciliation run
// @Tags reconciliation
// @Produce  json
// @Param   runID path string true "Run ID"
// @Success 200 {object} dto.ReconciliationRunResponse
// @Failure 404 {object} map[string]string "Run not found"
// @Router /reconciliation/runs/{runID} [get]
func (h *reconciliationHandler) getRun(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	run, err := h.reconService.GetRunByID(c.Request.Context(), c.Param("runID"))
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReconciliationRunResponse(run))
}

// listRuns godoc
// @Summary List reconciliation runs
// @Tags reconciliation
// @Produce  json
// @Param   limit query int false "Maximum runs to return"
// @Param   nextToken query string false "Cursor from a previous page"
// @Success 200 {object} dto.ListReconciliationRunsResponse
// @Router /reconciliation/runs [get]
func (h *reconciliationHandler) listRuns(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	var nextToken *string
	if token := c.Query("nextToken"); token != "" {
		nextToken = &token
	}

	resp, err := h.reconService.ListRuns(c.Request.Context(), limit, nextToken)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
