package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/denialp88/tickets/internal/model"
	"github.com/denialp88/tickets/internal/service"
)

// EventHandler handles event endpoints.
type EventHandler struct {
	eventService service.EventService
}

// NewEventHandler creates a new event handler.
func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// EventRequest represents an event create or update request.
type EventRequest struct {
	Name                string          `json:"name" validate:"required"`
	Date                string          `json:"date" validate:"required"`
	Location            string          `json:"location"`
	Description         string          `json:"description"`
	CommissionPerTicket decimal.Decimal `json:"commission_per_ticket"`
	IsAdminEvent        bool            `json:"is_admin_event"`
}

func (r EventRequest) toInput() (service.EventInput, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return service.EventInput{}, errInvalidEventDate
	}
	if r.CommissionPerTicket.IsNegative() {
		return service.EventInput{}, errNegativeCommission
	}
	return service.EventInput{
		Name:                r.Name,
		Date:                date,
		Location:            r.Location,
		Description:         r.Description,
		CommissionPerTicket: r.CommissionPerTicket,
		IsAdminEvent:        r.IsAdminEvent,
	}, nil
}

var (
	errNegativeCommission = echo.NewHTTPError(http.StatusBadRequest, "commission per ticket must be non-negative")
	errInvalidEventDate   = echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
)

// EventDetailResponse bundles an event with its transactions.
type EventDetailResponse struct {
	Event        *model.Event        `json:"event"`
	Transactions []model.Transaction `json:"transactions"`
}

// ListEvents godoc
// @Summary List events; bookers receive a redacted projection
// @Tags events
// @Produce json
// @Success 200 {array} model.Event
// @Router /events [get]
// @Security BearerAuth
func (h *EventHandler) ListEvents(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	if claims.Role == model.RoleBooker {
		summaries, err := h.eventService.ListRedacted(c.Request().Context())
		if err != nil {
			return domainError(err)
		}
		return c.JSON(http.StatusOK, summaries)
	}

	events, err := h.eventService.List(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, events)
}

// GetEvent godoc
// @Summary Get an event with its transactions
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} EventDetailResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /events/{id} [get]
// @Security BearerAuth
func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	event, txns, err := h.eventService.GetWithTransactions(c.Request().Context(), uint(id))
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, EventDetailResponse{
		Event:        event,
		Transactions: txns,
	})
}

// CreateEvent godoc
// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Param request body EventRequest true "Event data"
// @Success 201 {object} model.Event
// @Failure 400 {object} errors.ErrorResponse
// @Router /events [post]
// @Security BearerAuth
func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req EventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in, err := req.toInput()
	if err != nil {
		return err
	}

	event, err := h.eventService.Create(c.Request().Context(), in)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, event)
}

// UpdateEvent godoc
// @Summary Update an event
// @Tags events
// @Accept json
// @Produce json
// @Param id path int true "Event ID"
// @Param request body EventRequest true "Event data"
// @Success 200 {object} model.Event
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /events/{id} [put]
// @Security BearerAuth
func (h *EventHandler) UpdateEvent(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req EventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in, err := req.toInput()
	if err != nil {
		return err
	}

	event, err := h.eventService.Update(c.Request().Context(), uint(id), in)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event, cascading its transactions
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} map[string]string
// @Router /events/{id} [delete]
// @Security BearerAuth
func (h *EventHandler) DeleteEvent(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.eventService.Delete(c.Request().Context(), uint(id)); err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "event deleted successfully",
	})
}
