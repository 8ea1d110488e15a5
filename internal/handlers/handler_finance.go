package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/ops_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/ops_tracker/internal/core/ports/services"
	"github.com/SscSPs/ops_tracker/internal/dto"
	"github.com/SscSPs/ops_tracker/internal/middleware"
	"github.com/SscSPs/ops_tracker/internal/utils"
	"github.com/SscSPs/ops_tracker/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// financeHandler handles HTTP requests related to the ledger.
type financeHandler struct {
	controller   portssvc.ContextControllerFacade
	ledger       portssvc.LedgerReaderSvc
	baseCurrency domain.CurrencyCode
	analytics    *utils.PosthogClientWrapper
}

// registerFinanceRoutes registers routes related to transactions and currencies.
func registerFinanceRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer, analytics *utils.PosthogClientWrapper) {
	h := &financeHandler{
		controller:   services.Controller,
		ledger:       services.Ledger,
		baseCurrency: services.BaseCurrency,
		analytics:    analytics,
	}

	finances := rg.Group("/finances")
	{
		finances.GET("/summary", h.getSummary)
		finances.GET("/series", h.getSeries)
		finances.GET("/transactions", h.listTransactions)
		finances.POST("/expenses", h.recordExpense)
		finances.POST("/credits", h.recordBudgetCredit)
	}
	rg.GET("/currencies", h.listCurrencies)
}

// getSummary godoc
// @Summary Get ledger figures
// @Description Total budget, total expenses, balance and utilization of the subject in view
// @Tags finances
// @Produce  json
// @Param   currency query string false "Display currency override"
// @Success 200 {object} dto.LedgerSummaryResponse
// @Failure 400 {object} dto.ErrorResponse "Unsupported currency"
// @Security BearerAuth
// @Router /finances/summary [get]
func (h *financeHandler) getSummary(c *gin.Context) {
	var params dto.SummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	summary, err := h.controller.LedgerSummary(c.Request.Context(), domain.CurrencyCode(params.Currency))
	if err != nil {
		respondError(c, err, "Failed to compute ledger summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerSummaryResponse(summary))
}

// getSeries godoc
// @Summary Get the chart series
// @Description One point per visible transaction in creation order, signed and converted
// @Tags finances
// @Produce  json
// @Param   currency query string false "Display currency override"
// @Success 200 {object} dto.SeriesResponse
// @Failure 400 {object} dto.ErrorResponse "Unsupported currency"
// @Security BearerAuth
// @Router /finances/series [get]
func (h *financeHandler) getSeries(c *gin.Context) {
	var params dto.SummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	seq, code, err := h.controller.Series(c.Request.Context(), domain.CurrencyCode(params.Currency))
	if err != nil {
		respondError(c, err, "Failed to compute series")
		return
	}
	res := dto.SeriesResponse{DisplayCurrency: code, Points: []dto.SeriesPointResponse{}}
	for p := range seq {
		res.Points = append(res.Points, dto.ToSeriesPointResponse(p))
	}
	c.JSON(http.StatusOK, res)
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists visible transactions, newest first
// @Tags finances
// @Produce  json
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid paging parameters"
// @Security BearerAuth
// @Router /finances/transactions [get]
func (h *financeHandler) listTransactions(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	data := h.controller.FilteredData(c.Request.Context())
	txns, next, err := pagination.Page(data.Transactions, func(t domain.Transaction) (time.Time, string) {
		return t.CreatedAt, t.TransactionID
	}, params.Limit, params.NextToken)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ListTransactionsResponse{Transactions: txns, NextToken: next})
}

// recordExpense godoc
// @Summary Record an expense
// @Description The converted amount must not exceed the balance of the subject in view
// @Tags finances
// @Accept  json
// @Produce  json
// @Param   expense body dto.CreateTransactionRequest true "Expense"
// @Success 201 {object} domain.Transaction
// @Failure 400 {object} dto.ErrorResponse "Invalid amount or currency"
// @Failure 404 {object} dto.ErrorResponse "No manager selected"
// @Failure 409 {object} dto.InsufficientFundsResponse "Insufficient funds"
// @Security BearerAuth
// @Router /finances/expenses [post]
func (h *financeHandler) recordExpense(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if !bindJSON(c, &req, "RecordExpense") {
		return
	}
	txn, err := h.controller.RecordExpense(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to record expense")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Expense recorded", slog.String("transaction_id", txn.TransactionID))
	middleware.PosthogEvent(c, h.analytics, "expense_recorded", map[string]any{"currency": string(txn.CurrencyCode)})
	c.JSON(http.StatusCreated, txn)
}

// recordBudgetCredit godoc
// @Summary Credit a manager budget
// @Description Only allowed in the owner role. The credit is attributed to the selected manager.
// @Tags finances
// @Accept  json
// @Produce  json
// @Param   credit body dto.CreateTransactionRequest true "Budget credit"
// @Success 201 {object} domain.Transaction
// @Failure 400 {object} dto.ErrorResponse "Invalid amount or currency"
// @Failure 403 {object} dto.ErrorResponse "Not in the owner role"
// @Failure 404 {object} dto.ErrorResponse "No manager selected"
// @Security BearerAuth
// @Router /finances/credits [post]
func (h *financeHandler) recordBudgetCredit(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if !bindJSON(c, &req, "RecordBudgetCredit") {
		return
	}
	txn, err := h.controller.RecordBudgetCredit(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to record budget credit")
		return
	}
	middleware.PosthogEvent(c, h.analytics, "budget_credited", map[string]any{"currency": string(txn.CurrencyCode)})
	c.JSON(http.StatusCreated, txn)
}

// listCurrencies godoc
// @Summary List supported currencies
// @Description Currencies of the rate table with their rate against the base currency
// @Tags currencies
// @Produce  json
// @Success 200 {object} dto.ListCurrenciesResponse
// @Security BearerAuth
// @Router /currencies [get]
func (h *financeHandler) listCurrencies(c *gin.Context) {
	res := dto.ListCurrenciesResponse{Base: h.baseCurrency, Currencies: []dto.CurrencyResponse{}}
	for _, code := range h.ledger.SupportedCurrencies() {
		rate, err := h.ledger.Rate(code)
		if err != nil {
			respondError(c, err, "Failed to list currencies")
			return
		}
		meta := domain.KnownCurrencies[code]
		res.Currencies = append(res.Currencies, dto.CurrencyResponse{
			CurrencyCode: code,
			Symbol:       meta.Symbol,
			Name:         meta.Name,
			Rate:         rate,
		})
	}
	c.JSON(http.StatusOK, res)
}
