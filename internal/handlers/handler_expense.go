package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/courier_ledger/internal/apperrors"
	portssvc "github.com/SscSPs/courier_ledger/internal/core/ports/services"
	"github.com/SscSPs/courier_ledger/internal/dto"
	"github.com/SscSPs/courier_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// expenseHandler handles HTTP requests related to expenses and expense payments.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

func newExpenseHandler(es portssvc.ExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{
		expenseService: es,
	}
}

// registerExpenseRoutes registers the expense and expense payment routes.
func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := newExpenseHandler(expenseService)

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.GET("/:expenseID", h.getExpense)
		expenses.PUT("/:expenseID", h.updateExpense)
		expenses.DELETE("/:expenseID", h.deleteExpense)
		expenses.GET("/:expenseID/payments", h.listExpensePayments)
	}

	payments := rg.Group("/expense-payments")
	{
		payments.POST("", h.createExpensePayment)
		payments.POST("/bulk", h.bulkCreateExpensePayments)
		payments.PUT("/:paymentID", h.updateExpensePayment)
		payments.DELETE("/:paymentID", h.deleteExpensePayment)
	}
}

// createExpense godoc
// @Summary Record an expense
// @Description Records an expense and an optional first payment
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} map[string]string "Invalid input or unknown reference"
// @Failure 409 {object} map[string]string "Expense number in use or payment above amount"
// @Failure 500 {object} map[string]string "Failed to create expense"
// @Security BearerAuth
// @Router /expenses [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("creator_user_id", creatorUserID))

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create expense")
		return
	}

	logger.Info("Expense created successfully", slog.String("expense_id", expense.ExpenseID))
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// getExpense godoc
// @Summary Get an expense
// @Tags expenses
// @Produce  json
// @Param   expenseID path string true "Expense ID"
// @Param   includeInactive query bool false "Include soft deleted records"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 500 {object} map[string]string "Failed to retrieve expense"
// @Security BearerAuth
// @Router /expenses/{expenseID} [get]
func (h *expenseHandler) getExpense(c *gin.Context) {
	expenseID := c.Param("expenseID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("expense_id", expenseID))

	expense, err := h.expenseService.GetExpense(c.Request.Context(), expenseID, c.Query("includeInactive") == "true")
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// listExpenses godoc
// @Summary List expenses
// @Tags expenses
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Param   centerCode query string false "Filter by center"
// @Param   expenseCategoryCode query string false "Filter by category"
// @Param   isPaid query bool false "Filter by paid state"
// @Param   includeInactive query bool false "Include soft deleted expenses"
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list expenses"
// @Security BearerAuth
// @Router /expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListExpenses", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.expenseService.ListExpenses(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list expenses")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// updateExpense godoc
// @Summary Update an expense
// @Description The amount can only change while the expense has no active payments
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   expenseID path string true "Expense ID"
// @Param   expense body dto.UpdateExpenseRequest true "Fields to change"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 409 {object} map[string]string "Amount locked by payments"
// @Failure 500 {object} map[string]string "Failed to update expense"
// @Security BearerAuth
// @Router /expenses/{expenseID} [put]
func (h *expenseHandler) updateExpense(c *gin.Context) {
	expenseID := c.Param("expenseID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("expense_id", expenseID))
	var req dto.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), expenseID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// deleteExpense godoc
// @Summary Delete an expense
// @Description Soft deletes an expense that has no active payments
// @Tags expenses
// @Param   expenseID path string true "Expense ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 409 {object} map[string]string "Expense has active payments"
// @Failure 500 {object} map[string]string "Failed to delete expense"
// @Security BearerAuth
// @Router /expenses/{expenseID} [delete]
func (h *expenseHandler) deleteExpense(c *gin.Context) {
	expenseID := c.Param("expenseID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("expense_id", expenseID))

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), expenseID, userID); err != nil {
		respondWithError(c, logger, err, "Failed to delete expense")
		return
	}

	logger.Info("Expense deleted successfully")
	c.Status(http.StatusNoContent)
}

// listExpensePayments godoc
// @Summary List payments of an expense
// @Tags expenses
// @Produce  json
// @Param   expenseID path string true "Expense ID"
// @Param   includeInactive query bool false "Include soft deleted payments"
// @Success 200 {array} dto.ExpensePaymentResponse
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 500 {object} map[string]string "Failed to list payments"
// @Security BearerAuth
// @Router /expenses/{expenseID}/payments [get]
func (h *expenseHandler) listExpensePayments(c *gin.Context) {
	expenseID := c.Param("expenseID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("expense_id", expenseID))

	payments, err := h.expenseService.ListExpensePayments(c.Request.Context(), expenseID, c.Query("includeInactive") == "true")
	if err != nil {
		respondWithError(c, logger, err, "Failed to list payments")
		return
	}

	resp := make([]dto.ExpensePaymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = dto.ToExpensePaymentResponse(p)
	}
	c.JSON(http.StatusOK, resp)
}

// createExpensePayment godoc
// @Summary Pay an expense
// @Description Records a payment against an expense. The response carries the resulting payment state.
// @Tags expense-payments
// @Accept  json
// @Produce  json
// @Param   payment body dto.CreateExpensePaymentRequest true "Payment details"
// @Success 201 {object} dto.ExpensePaymentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 409 {object} map[string]any "Payment exceeds the remaining balance"
// @Failure 500 {object} map[string]string "Failed to record payment"
// @Security BearerAuth
// @Router /expense-payments [post]
func (h *expenseHandler) createExpensePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExpensePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateExpensePayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("expense_id", req.ExpenseID))

	result, err := h.expenseService.CreateExpensePayment(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to record payment")
		return
	}
	c.JSON(http.StatusCreated, dto.ToExpensePaymentResultResponse(*result))
}

// bulkCreateExpensePayments godoc
// @Summary Pay several expenses
// @Description Records each payment independently. The batch is kept when at least one payment succeeds.
// @Tags expense-payments
// @Accept  json
// @Produce  json
// @Param   payments body dto.BulkCreateExpensePaymentsRequest true "Payments"
// @Success 201 {object} dto.BulkExpensePaymentResponse "Every payment recorded"
// @Success 207 {object} dto.BulkExpensePaymentResponse "Some payments rejected"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} dto.BulkExpensePaymentResponse "Every payment rejected"
// @Failure 500 {object} map[string]string "Failed to record payments"
// @Security BearerAuth
// @Router /expense-payments/bulk [post]
func (h *expenseHandler) bulkCreateExpensePayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BulkCreateExpensePaymentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for BulkCreateExpensePayments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	result, err := h.expenseService.BulkCreateExpensePayments(c.Request.Context(), req.Payments, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrBatchFailed) && result != nil {
			logger.Warn("Every bulk payment was rejected", slog.Int("count", len(result.Failed)))
			c.JSON(http.StatusConflict, dto.ToBulkExpensePaymentResponse(result))
			return
		}
		respondWithError(c, logger, err, "Failed to record payments")
		return
	}

	status := http.StatusCreated
	if len(result.Failed) > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, dto.ToBulkExpensePaymentResponse(result))
}

// updateExpensePayment godoc
// @Summary Amend an expense payment
// @Tags expense-payments
// @Accept  json
// @Produce  json
// @Param   paymentID path string true "Payment ID"
// @Param   payment body dto.UpdateExpensePaymentRequest true "Fields to change"
// @Success 200 {object} dto.ExpensePaymentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 409 {object} map[string]any "Payment exceeds the remaining balance"
// @Failure 500 {object} map[string]string "Failed to update payment"
// @Security BearerAuth
// @Router /expense-payments/{paymentID} [put]
func (h *expenseHandler) updateExpensePayment(c *gin.Context) {
	paymentID := c.Param("paymentID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("payment_id", paymentID))
	var req dto.UpdateExpensePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateExpensePayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	result, err := h.expenseService.UpdateExpensePayment(c.Request.Context(), paymentID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpensePaymentResultResponse(*result))
}

// deleteExpensePayment godoc
// @Summary Delete an expense payment
// @Description Soft deletes a payment and returns the expense's new payment state
// @Tags expense-payments
// @Produce  json
// @Param   paymentID path string true "Payment ID"
// @Success 200 {object} dto.ExpenseStatusResponse
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 500 {object} map[string]string "Failed to delete payment"
// @Security BearerAuth
// @Router /expense-payments/{paymentID} [delete]
func (h *expenseHandler) deleteExpensePayment(c *gin.Context) {
	paymentID := c.Param("paymentID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("payment_id", paymentID))

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	status, err := h.expenseService.DeleteExpensePayment(c.Request.Context(), paymentID, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to delete payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseStatusResponse(*status))
}
