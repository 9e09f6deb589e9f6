package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"invoicefx/internal/application/service"
	"invoicefx/internal/infrastructure/logger"
	"invoicefx/internal/infrastructure/middleware"

	"github.com/gorilla/mux"
)

// LedgerHandler handles HTTP requests for invoices and payments
type LedgerHandler struct {
	service *service.LedgerService
	logger  logger.Logger
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(service *service.LedgerService, log logger.Logger) *LedgerHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &LedgerHandler{
		service: service,
		logger:  log,
	}
}

// RegisterRoutes registers the ledger routes on the router
func (h *LedgerHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/invoices", h.CreateInvoice).Methods(http.MethodPost)
	router.HandleFunc("/invoices", h.ListInvoices).Methods(http.MethodGet)
	router.HandleFunc("/invoices/{id}", h.GetInvoice).Methods(http.MethodGet)
	router.HandleFunc("/invoices/{id}/payments", h.ListInvoicePayments).Methods(http.MethodGet)
	router.HandleFunc("/payments", h.CreatePayment).Methods(http.MethodPost)
	router.HandleFunc("/payments/{id}", h.GetPayment).Methods(http.MethodGet)
}

// CreateInvoice handles the creation of a new invoice
func (h *LedgerHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, "Invalid request body",
			"The request body could not be parsed as valid JSON", http.StatusBadRequest, requestID)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		sendErrorResponse(w, "Invalid date format",
			"Date must be in YYYY-MM-DD format", http.StatusBadRequest, requestID)
		return
	}

	inv, err := h.service.CreateInvoice(r.Context(), service.InvoiceDraft{
		Amount:   req.Amount,
		Currency: req.Currency,
		Date:     date,
	})
	if err != nil {
		sendServiceError(w, h.logger, err, requestID)
		return
	}

	sendJSON(w, http.StatusCreated, invoiceResponse(inv))
}

// ListInvoices returns all invoices
func (h *LedgerHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices := h.service.ListInvoices(r.Context())

	resp := make([]InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		resp = append(resp, invoiceResponse(&invoices[i]))
	}

	sendJSON(w, http.StatusOK, resp)
}

// GetInvoice returns a single invoice by ID
func (h *LedgerHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := mux.Vars(r)["id"]

	inv, err := h.service.GetInvoiceByID(r.Context(), id)
	if err != nil {
		sendServiceError(w, h.logger, err, requestID)
		return
	}

	sendJSON(w, http.StatusOK, invoiceResponse(inv))
}

// ListInvoicePayments returns all payments booked against an invoice
func (h *LedgerHandler) ListInvoicePayments(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := mux.Vars(r)["id"]

	// Surface unknown invoices as 404 rather than an empty list
	if _, err := h.service.GetInvoiceByID(r.Context(), id); err != nil {
		sendServiceError(w, h.logger, err, requestID)
		return
	}

	payments := h.service.ListPayments(r.Context(), id)
	resp := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		resp = append(resp, paymentResponse(&payments[i]))
	}

	sendJSON(w, http.StatusOK, resp)
}

// CreatePayment handles the creation of a new payment
func (h *LedgerHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, "Invalid request body",
			"The request body could not be parsed as valid JSON", http.StatusBadRequest, requestID)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		sendErrorResponse(w, "Invalid date format",
			"Date must be in YYYY-MM-DD format", http.StatusBadRequest, requestID)
		return
	}

	p, err := h.service.CreatePayment(r.Context(), service.PaymentDraft{
		InvoiceID: req.InvoiceID,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Date:      date,
	})
	if err != nil {
		sendServiceError(w, h.logger, err, requestID)
		return
	}

	sendJSON(w, http.StatusCreated, paymentResponse(p))
}

// GetPayment returns a single payment by ID
func (h *LedgerHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := mux.Vars(r)["id"]

	p, err := h.service.GetPayment(r.Context(), id)
	if err != nil {
		sendServiceError(w, h.logger, err, requestID)
		return
	}

	sendJSON(w, http.StatusOK, paymentResponse(p))
}
