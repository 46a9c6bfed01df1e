package handler

import (
	"mime"
	"mime/multipart"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apperrors "github.com/denialp88/tickets/internal/errors"
	"github.com/denialp88/tickets/internal/model"
	"github.com/denialp88/tickets/internal/service"
	"github.com/denialp88/tickets/internal/storage"
)

// TransactionHandler handles transaction endpoints.
type TransactionHandler struct {
	txnService service.TransactionService
	proofStore storage.ProofStore
}

// NewTransactionHandler creates a new transaction handler. proofStore may be
// nil when object storage is not configured; proof uploads are then skipped.
func NewTransactionHandler(txnService service.TransactionService, proofStore storage.ProofStore) *TransactionHandler {
	return &TransactionHandler{
		txnService: txnService,
		proofStore: proofStore,
	}
}

// CommissionStatusRequest represents a commission status update request.
type CommissionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid"`
}

// maxProofImageSize caps proof uploads at 5 MB.
const maxProofImageSize = 5 << 20

var allowedProofExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// validateProofImage enforces the size cap and image-only filter on an
// uploaded proof part.
func validateProofImage(file *multipart.FileHeader) error {
	if file.Size > maxProofImageSize {
		return echo.NewHTTPError(http.StatusBadRequest, "proof image must be 5MB or smaller")
	}
	if !allowedProofExtensions[strings.ToLower(path.Ext(file.Filename))] {
		return echo.NewHTTPError(http.StatusBadRequest, "proof image must be a jpeg, jpg, png, gif or webp file")
	}
	if ct := file.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return echo.NewHTTPError(http.StatusBadRequest, "proof image must be an image")
	}
	return nil
}

// CreateTransaction godoc
// @Summary Record a ticket purchase or sale
// @Description Multipart form; an optional proof_image part is stored in
// @Description object storage and its key recorded on the transaction.
// @Tags transactions
// @Accept mpfd
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /transactions [post]
// @Security BearerAuth
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	eventID, err := strconv.Atoi(c.FormValue("event_id"))
	if err != nil || eventID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "missing required fields")
	}
	numTickets, err := strconv.Atoi(c.FormValue("num_tickets"))
	if err != nil || numTickets < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "num_tickets must be a positive integer")
	}
	price, err := decimal.NewFromString(c.FormValue("price_per_ticket"))
	if err != nil || price.IsNegative() {
		return echo.NewHTTPError(http.StatusBadRequest, "price_per_ticket must be a non-negative amount")
	}

	partyName := c.FormValue("party_name")
	txnType := c.FormValue("transaction_type")
	dateValue := c.FormValue("transaction_date")
	if partyName == "" || txnType == "" || dateValue == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing required fields")
	}
	date, err := parseDate(dateValue)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid transaction_date")
	}

	proofPath := ""
	if file, err := c.FormFile("proof_image"); err == nil {
		if err := validateProofImage(file); err != nil {
			return err
		}
		if h.proofStore != nil {
			src, err := file.Open()
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid proof image")
			}
			defer src.Close()

			key, err := h.proofStore.Put(c.Request().Context(), file.Filename, src, file.Size, file.Header.Get("Content-Type"))
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "failed to store proof image")
			}
			proofPath = key
		}
	}

	noCommission, _ := strconv.ParseBool(c.FormValue("no_commission"))

	txn, err := h.txnService.Create(c.Request().Context(), claims.Role, service.TransactionInput{
		EventID:          uint(eventID),
		Type:             model.TransactionType(txnType),
		NumTickets:       numTickets,
		PricePerTicket:   price,
		PartyName:        partyName,
		PartyMobile:      c.FormValue("party_mobile"),
		UPIID:            c.FormValue("upi_id"),
		PaymentReference: c.FormValue("payment_reference"),
		ProofImagePath:   proofPath,
		Date:             date,
		Notes:            c.FormValue("notes"),
		NoCommission:     noCommission,
	})
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"id":      txn.ID,
		"message": "transaction created successfully",
	})
}

// ListTransactions godoc
// @Summary List all transactions with event names
// @Tags transactions
// @Produce json
// @Success 200 {array} model.TransactionWithEvent
// @Failure 403 {object} errors.ErrorResponse
// @Router /transactions [get]
// @Security BearerAuth
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	txns, err := h.txnService.ListAll(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, txns)
}

// DeleteTransaction godoc
// @Summary Delete a transaction
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} map[string]string
// @Router /transactions/{id} [delete]
// @Security BearerAuth
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	txn, err := h.txnService.Get(c.Request().Context(), uint(id))
	if err != nil {
		return domainError(err)
	}

	if err := h.txnService.Delete(c.Request().Context(), uint(id)); err != nil {
		return domainError(err)
	}

	// Best effort; an orphaned object is preferable to a failed delete.
	if txn.ProofImagePath != "" && h.proofStore != nil {
		_ = h.proofStore.Delete(c.Request().Context(), txn.ProofImagePath)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "transaction deleted successfully",
	})
}

// GetTransactionProof godoc
// @Summary Stream a transaction's payment-proof image
// @Tags transactions
// @Produce octet-stream
// @Param id path int true "Transaction ID"
// @Success 200 {file} binary
// @Failure 404 {object} errors.ErrorResponse
// @Router /transactions/{id}/proof [get]
// @Security BearerAuth
func (h *TransactionHandler) GetTransactionProof(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	txn, err := h.txnService.Get(c.Request().Context(), uint(id))
	if err != nil {
		return domainError(err)
	}
	if txn.ProofImagePath == "" || h.proofStore == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no proof image for this transaction")
	}

	obj, err := h.proofStore.Get(c.Request().Context(), txn.ProofImagePath)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to read proof image")
	}
	defer obj.Close()

	contentType := mime.TypeByExtension(path.Ext(txn.ProofImagePath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return c.Stream(http.StatusOK, contentType, obj)
}

// UpdateCommissionStatus godoc
// @Summary Set one transaction's commission status
// @Tags commissions
// @Accept json
// @Produce json
// @Param transactionId path int true "Transaction ID"
// @Param request body CommissionStatusRequest true "New status"
// @Success 200 {object} model.Transaction
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/update-commission-status/{transactionId} [post]
// @Security BearerAuth
func (h *TransactionHandler) UpdateCommissionStatus(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("transactionId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req CommissionStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return domainError(apperrors.ErrInvalidCommissionStatus)
	}

	txn, err := h.txnService.UpdateCommissionStatus(c.Request().Context(), uint(id), model.CommissionStatus(req.Status))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, txn)
}

// MarkEventCommissionsPaid godoc
// @Summary Mark all pending commissions of an event paid
// @Tags commissions
// @Produce json
// @Param eventId path int true "Event ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/mark-commission-paid/{eventId} [post]
// @Security BearerAuth
func (h *TransactionHandler) MarkEventCommissionsPaid(c echo.Context) error {
	eventID, err := strconv.Atoi(c.Param("eventId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.txnService.MarkEventCommissionsPaid(c.Request().Context(), uint(eventID)); err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "commission marked as paid for all transactions in this event",
	})
}
