package handler

import (
	"net/http"

	"marketplace/internal/reviews/service"
	httputil "marketplace/pkg/http"
	"marketplace/pkg/logger"
	"marketplace/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type ReviewHandler struct {
	service service.ReviewService
	log     *logger.Logger
}

type ratingResponse struct {
	ProviderID string  `json:"provider_id"`
	Rating     float64 `json:"rating"`
}

func NewReviewHandler(service service.ReviewService, log *logger.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log,
	}
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var review model.Review
	if err := httputil.DecodeJSON(r, &review); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := h.service.Add(r.Context(), &review); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, review); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *ReviewHandler) ListForProvider(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reviews, err := h.service.ListForProvider(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "ListForProvider", err)
		return
	}

	if err := httputil.WriteList(w, reviews); err != nil {
		h.log.Error("failed to write list response", "handler", "ListForProvider", "operation", "WriteList", "error", err)
	}
}

func (h *ReviewHandler) Rating(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	providerID := ps.ByName("id")
	rating, err := h.service.ProviderRating(r.Context(), providerID)
	if err != nil {
		h.writeError(w, "Rating", err)
		return
	}

	if err := httputil.WriteSuccess(w, ratingResponse{ProviderID: providerID, Rating: rating}); err != nil {
		h.log.Error("failed to write success response", "handler", "Rating", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReviewHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *ReviewHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/reviews", h.Create)
	router.GET("/api/v1/providers/:id/reviews", h.ListForProvider)
	router.GET("/api/v1/providers/:id/rating", h.Rating)
}
