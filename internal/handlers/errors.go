package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/ops_tracker/internal/apperrors"
	"github.com/SscSPs/ops_tracker/internal/core/domain"
	"github.com/SscSPs/ops_tracker/internal/dto"
	"github.com/SscSPs/ops_tracker/internal/middleware"
	"github.com/SscSPs/ops_tracker/internal/utils"
	"github.com/gin-gonic/gin"
)

// respondError maps service errors to status codes. Anything unexpected is
// logged and hidden behind fallback.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var funds *apperrors.InsufficientFundsError
	switch {
	case errors.As(err, &funds):
		logger.Info("Expense refused", slog.String("error", err.Error()))
		code := domain.CurrencyCode(funds.Currency)
		c.JSON(http.StatusConflict, dto.InsufficientFundsResponse{
			Error:     apperrors.ErrInsufficientFunds.Error(),
			Attempted: utils.FormatWithCurrencyPrecision(funds.Attempted, code),
			Available: utils.FormatWithCurrencyPrecision(funds.Available, code),
			Currency:  funds.Currency,
		})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Action forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrUnsupportedAction):
		logger.Warn("Unsupported action", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: fallback})
	}
}

// bindJSON binds the request body and answers 400 on failure.
func bindJSON(c *gin.Context, req any, operation string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON for "+operation, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return false
	}
	return true
}
