package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	portssvc "github.com/arcadehub/ledger_engine/internal/core/ports/services"
	"github.com/arcadehub/ledger_engine/internal/dto"
	"github.com/arcadehub/ledger_engine/internal/middleware"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	rateService portssvc.ExchangeRateSvcFacade
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(rs portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{rateService: rs}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, rateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(rateService)

	rates := rg.Group("/exchange-rates")
	{
		rates.POST("", h.setExchangeRate)
		rates.GET("", h.listExchangeRates)
		rates.GET("/convert", h.convert)
	}
}

// setExchangeRate godoc
// @Summary Set an exchange rate
// @Description Creates or replaces the rate for a currency pair on an effective date
// @Tags exchange-rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.SetExchangeRateRequest true "Exchange rate details"
// @Param   X-Actor-ID header string true "Opaque actor identifier for audit attribution"
// @Success 201 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Currency not registered"
// @Failure 500 {object} map[string]string "Failed to set exchange rate"
// @Router /exchange-rates [post]
func (h *exchangeRateHandler) setExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SetExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetExchangeRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Actor-ID header is required"})
		return
	}

	created, err := h.rateService.SetExchangeRate(c.Request.Context(), req, actor)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(created))
}

// listExchangeRates godoc
// @Summary List exchange rates
// @Description Retrieves stored rates with optional pair and date filters
// @Tags exchange-rates
// @Produce  json
// @Param   from query string false "From currency code"
// @Param   to query string false "To currency code"
// @Param   asOf query string false "Effective date upper bound (RFC3339)"
// @Param   page query int false "Page number (1-based)"
// @Param   pageSize query int false "Page size"
// @Success 200 {object} dto.ListExchangeRatesResponse
// @Failure 500 {object} map[string]string "Failed to list exchange rates"
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) listExchangeRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.ListExchangeRatesParams{}
	if from := c.Query("from"); from != "" {
		params.FromCurrency = &from
	}
	if to := c.Query("to"); to != "" {
		params.ToCurrency = &to
	}
	if asOfStr := c.Query("asOf"); asOfStr != "" {
		asOf, err := time.Parse(time.RFC3339, asOfStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date, expected RFC3339"})
			return
		}
		params.AsOf = &asOf
	}
	params.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	params.PageSize, _ = strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	resp, err := h.rateService.ListExchangeRates(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// convert godoc
// @Summary Convert an amount between currencies
// @Description Applies the effective rate (direct, or reciprocal of the inverse pair) as of a date
// @Tags exchange-rates
// @Produce  json
// @Param   amount query string true "Amount to convert (decimal string)"
// @Param   from query string true "From currency code"
// @Param   to query string true "To currency code"
// @Param   asOf query string false "Conversion date (RFC3339), defaults to now"
// @Success 200 {object} dto.ConversionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "No applicable rate"
// @Router /exchange-rates/convert [get]
func (h *exchangeRateHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount, expected a decimal string"})
		return
	}
	from := c.Query("from")
	to := c.Query("to")
	if len(from) != 3 || len(to) != 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to must be 3-letter currency codes"})
		return
	}

	asOf := time.Now()
	if asOfStr := c.Query("asOf"); asOfStr != "" {
		asOf, err = time.Parse(time.RFC3339, asOfStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date, expected RFC3339"})
			return
		}
	}

	resp, err := h.rateService.Convert(c.Request.Context(), amount, from, to, asOf)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
