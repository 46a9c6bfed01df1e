package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/denialp88/tickets/internal/model"
	"github.com/denialp88/tickets/internal/service"
)

// ExpenseHandler handles expense endpoints.
type ExpenseHandler struct {
	expenseService service.ExpenseService
}

// NewExpenseHandler creates a new expense handler.
func NewExpenseHandler(expenseService service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// ExpenseRequest represents an expense creation request.
type ExpenseRequest struct {
	EventID     *uint           `json:"event_id"`
	Category    string          `json:"expense_category" validate:"required"`
	Description string          `json:"description" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Date        string          `json:"expense_date" validate:"required"`
	Notes       string          `json:"notes"`
}

// ListExpenses godoc
// @Summary List all expenses with event names
// @Tags expenses
// @Produce json
// @Success 200 {array} model.ExpenseWithEvent
// @Failure 403 {object} errors.ErrorResponse
// @Router /expenses [get]
// @Security BearerAuth
func (h *ExpenseHandler) ListExpenses(c echo.Context) error {
	expenses, err := h.expenseService.List(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, expenses)
}

// CreateExpense godoc
// @Summary Record an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param request body ExpenseRequest true "Expense data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /expenses [post]
// @Security BearerAuth
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !req.Amount.IsPositive() {
		return echo.NewHTTPError(http.StatusBadRequest, "amount must be positive")
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid expense_date")
	}

	expense, err := h.expenseService.Create(c.Request().Context(), service.ExpenseInput{
		EventID:     req.EventID,
		Category:    model.ExpenseCategory(req.Category),
		Description: req.Description,
		Amount:      req.Amount,
		Date:        date,
		Notes:       req.Notes,
	})
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":    "expense created successfully",
		"expense_id": expense.ID,
	})
}

// DeleteExpense godoc
// @Summary Delete an expense
// @Tags expenses
// @Produce json
// @Param id path int true "Expense ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /expenses/{id} [delete]
// @Security BearerAuth
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.expenseService.Delete(c.Request().Context(), uint(id)); err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "expense deleted successfully",
	})
}
