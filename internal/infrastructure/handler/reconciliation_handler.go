// Package handler internal/infrastructure/handler/reconciliation_handler.go
package handler

import (
	"net/http"

	"invoicefx/internal/application/service"
	"invoicefx/internal/infrastructure/logger"
	"invoicefx/internal/infrastructure/middleware"

	"github.com/gorilla/mux"
)

// ReconciliationHandler handles HTTP requests for settlement and
// exchange-rate difference computation
type ReconciliationHandler struct {
	service *service.ReconciliationService
	logger  logger.Logger
}

// NewReconciliationHandler creates a new reconciliation handler
func NewReconciliationHandler(service *service.ReconciliationService, log logger.Logger) *ReconciliationHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &ReconciliationHandler{
		service: service,
		logger:  log,
	}
}

// RegisterRoutes registers the reconciliation routes on the router
func (h *ReconciliationHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/invoices/{id}/settlement", h.ComputeSettlement).Methods(http.MethodPost)
	router.HandleFunc("/payments/{id}/difference", h.ComputeDifference).Methods(http.MethodPost)
}

// ComputeSettlement recomputes and returns the settlement status of an invoice
func (h *ReconciliationHandler) ComputeSettlement(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := mux.Vars(r)["id"]

	h.logger.Info("Handling settlement request", map[string]interface{}{
		"request_id": requestID,
		"invoice_id": id,
	})

	result, err := h.service.ComputeInvoiceStatus(r.Context(), id)
	if err != nil {
		sendServiceError(w, h.logger, err, requestID)
		return
	}

	sendJSON(w, http.StatusOK, SettlementResponse{
		InvoiceID:    id,
		PaidTotal:    result.PaidTotal,
		InvoiceValue: result.InvoiceValue,
		Status:       string(result.Status),
	})
}

// ComputeDifference computes the exchange-rate difference for a payment
func (h *ReconciliationHandler) ComputeDifference(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := mux.Vars(r)["id"]

	h.logger.Info("Handling difference request", map[string]interface{}{
		"request_id": requestID,
		"payment_id": id,
	})

	result, err := h.service.ComputeExchangeRateDifference(r.Context(), id)
	if err != nil {
		sendServiceError(w, h.logger, err, requestID)
		return
	}

	sendJSON(w, http.StatusOK, DifferenceResponse{
		PaymentID:  id,
		Difference: result.Difference,
	})
}
