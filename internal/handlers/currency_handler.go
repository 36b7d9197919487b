package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "stash/internal/errors"
	"stash/internal/forex"
	"stash/internal/logger"
)

// CurrencyHandler proxies exchange-rate lookups to the upstream rate source.
type CurrencyHandler struct {
	rates forex.RateSource
}

// NewCurrencyHandler creates a new CurrencyHandler.
func NewCurrencyHandler(rates forex.RateSource) *CurrencyHandler {
	return &CurrencyHandler{rates: rates}
}

// CurrencyQuery represents the query parameters for a rate lookup.
type CurrencyQuery struct {
	From string `form:"from" binding:"required,iso4217"`
	To   string `form:"to" binding:"required,iso4217"`
}

// GetRate handles an exchange-rate lookup.
// @Summary     Get exchange rate
// @Description Look up the exchange rate between two ISO 4217 currencies
// @Tags        external
// @Accept      json
// @Produce     json
// @Param       from query string true "Source currency code"
// @Param       to   query string true "Target currency code"
// @Success     200 {object} forex.Rate "Exchange rate"
// @Failure     400 {object} ErrorResponse "Invalid currency code"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     503 {object} ErrorResponse "Upstream unavailable"
// @Router      /external/currency [get]
func (h *CurrencyHandler) GetRate(c *gin.Context) {
	var query CurrencyQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	rate, err := h.rates.GetRate(c.Request.Context(), query.From, query.To)
	if err != nil {
		// The raw upstream error stays in the logs; callers get a
		// generic unavailable response.
		logger.Get().Warnw("exchange rate lookup failed",
			"from", query.From,
			"to", query.To,
			"error", err.Error(),
		)
		respondWithError(c, apperrors.ErrUpstreamUnavailable)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rate": rate})
}
