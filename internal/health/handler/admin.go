package handler

import (
	"net/http"

	apperrors "marketplace/pkg/errors"
	httputil "marketplace/pkg/http"
	"marketplace/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type Resetter interface {
	Reset()
	Counts() map[string]int
}

// AdminHandler restores the demo data. It refuses unless enabled.
type AdminHandler struct {
	store   Resetter
	enabled bool
	log     *logger.Logger
}

func NewAdminHandler(store Resetter, enabled bool, log *logger.Logger) *AdminHandler {
	return &AdminHandler{
		store:   store,
		enabled: enabled,
		log:     log,
	}
}

func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !h.enabled {
		if err := httputil.WriteError(w, apperrors.Forbidden("Data reset is disabled")); err != nil {
			h.log.Error("failed to write error response", "handler", "Reset", "operation", "WriteError", "error", err)
		}
		return
	}

	h.store.Reset()
	h.log.Warn("Data store reset by admin request", "remote_addr", r.RemoteAddr)

	if err := httputil.WriteSuccess(w, h.store.Counts()); err != nil {
		h.log.Error("failed to write success response", "handler", "Reset", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AdminHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/admin/reset", h.Reset)
}
