package handler

import (
	"fmt"
	"net/http"

	"marketplace/internal/location"
	apperrors "marketplace/pkg/errors"
	httputil "marketplace/pkg/http"
	"marketplace/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type LocationHandler struct {
	directory *location.Directory
	log       *logger.Logger
}

func NewLocationHandler(directory *location.Directory, log *logger.Logger) *LocationHandler {
	return &LocationHandler{
		directory: directory,
		log:       log,
	}
}

func (h *LocationHandler) States(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteList(w, h.directory.States()); err != nil {
		h.log.Error("failed to write list response", "handler", "States", "operation", "WriteList", "error", err)
	}
}

func (h *LocationHandler) Cities(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	state := ps.ByName("state")
	cities, ok := h.directory.Cities(state)
	if !ok {
		if err := httputil.WriteError(w, apperrors.NotFound(fmt.Sprintf("State %q", state))); err != nil {
			h.log.Error("failed to write error response", "handler", "Cities", "operation", "WriteError", "error", err)
		}
		return
	}

	if err := httputil.WriteList(w, cities); err != nil {
		h.log.Error("failed to write list response", "handler", "Cities", "operation", "WriteList", "error", err)
	}
}

func (h *LocationHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	result := h.directory.Search(r.URL.Query().Get("q"))
	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "Search", "operation", "WriteSuccess", "error", err)
	}
}

func (h *LocationHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/locations/states", h.States)
	router.GET("/api/v1/locations/states/:state/cities", h.Cities)
	router.GET("/api/v1/locations/search", h.Search)
}
