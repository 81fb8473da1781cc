package handler

import (
	"net/http"

	"marketplace/internal/dashboard/service"
	httputil "marketplace/pkg/http"
	"marketplace/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type DashboardHandler struct {
	service service.DashboardService
	log     *logger.Logger
}

func NewDashboardHandler(service service.DashboardService, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		log:     log,
	}
}

func (h *DashboardHandler) Provider(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	overview, err := h.service.ProviderOverview(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "Provider", err)
		return
	}

	if err := httputil.WriteSuccess(w, overview); err != nil {
		h.log.Error("failed to write success response", "handler", "Provider", "operation", "WriteSuccess", "error", err)
	}
}

func (h *DashboardHandler) User(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	overview, err := h.service.UserOverview(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "User", err)
		return
	}

	if err := httputil.WriteSuccess(w, overview); err != nil {
		h.log.Error("failed to write success response", "handler", "User", "operation", "WriteSuccess", "error", err)
	}
}

func (h *DashboardHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *DashboardHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/providers/:id/dashboard", h.Provider)
	router.GET("/api/v1/users/:id/dashboard", h.User)
}
