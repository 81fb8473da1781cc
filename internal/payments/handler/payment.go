package handler

import (
	"net/http"

	"marketplace/internal/payments/service"
	httputil "marketplace/pkg/http"
	"marketplace/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type PaymentHandler struct {
	service service.PaymentService
	log     *logger.Logger
}

func NewPaymentHandler(service service.PaymentService, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log,
	}
}

func (h *PaymentHandler) ListForProvider(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	payments, err := h.service.ListForProvider(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "ListForProvider", err)
		return
	}

	if err := httputil.WriteList(w, payments); err != nil {
		h.log.Error("failed to write list response", "handler", "ListForProvider", "operation", "WriteList", "error", err)
	}
}

func (h *PaymentHandler) ListForUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	payments, err := h.service.ListForUser(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "ListForUser", err)
		return
	}

	if err := httputil.WriteList(w, payments); err != nil {
		h.log.Error("failed to write list response", "handler", "ListForUser", "operation", "WriteList", "error", err)
	}
}

func (h *PaymentHandler) Earnings(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	summary, err := h.service.EarningsSummary(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "Earnings", err)
		return
	}

	if err := httputil.WriteSuccess(w, summary); err != nil {
		h.log.Error("failed to write success response", "handler", "Earnings", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PaymentHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *PaymentHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/providers/:id/payments", h.ListForProvider)
	router.GET("/api/v1/providers/:id/earnings", h.Earnings)
	router.GET("/api/v1/users/:id/payments", h.ListForUser)
}
