package handler

import (
	"net/http"

	"marketplace/internal/session/service"
	apperrors "marketplace/pkg/errors"
	httputil "marketplace/pkg/http"
	"marketplace/pkg/logger"
	"marketplace/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type SessionHandler struct {
	service service.SessionService
	log     *logger.Logger
}

func NewSessionHandler(service service.SessionService, log *logger.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		log:     log,
	}
}

type meResponse struct {
	User  *model.User `json:"user"`
	Theme string      `json:"theme"`
	Graph string      `json:"graph"`
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var credentials model.Credentials
	if err := httputil.DecodeJSON(r, &credentials); err != nil {
		h.writeError(w, "Login", err)
		return
	}

	sess, err := h.service.Login(r.Context(), &credentials)
	if err != nil {
		h.writeError(w, "Login", err)
		return
	}

	if err := httputil.WriteSuccess(w, sess); err != nil {
		h.log.Error("failed to write success response", "handler", "Login", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SessionHandler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var registration model.Registration
	if err := httputil.DecodeJSON(r, &registration); err != nil {
		h.writeError(w, "Register", err)
		return
	}

	sess, err := h.service.Register(r.Context(), &registration)
	if err != nil {
		h.writeError(w, "Register", err)
		return
	}

	if err := httputil.WriteCreated(w, sess); err != nil {
		h.log.Error("failed to write created response", "handler", "Register", "operation", "WriteCreated", "error", err)
	}
}

func (h *SessionHandler) DemoLogin(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var (
		sess *model.Session
		err  error
	)
	switch ps.ByName("role") {
	case model.RoleUser:
		sess, err = h.service.LoginAsUser(r.Context(), ps.ByName("id"))
	case model.RoleProvider:
		sess, err = h.service.LoginAsProvider(r.Context(), ps.ByName("id"))
	default:
		err = apperrors.InvalidInput("role must be one of: user, provider")
	}
	if err != nil {
		h.writeError(w, "DemoLogin", err)
		return
	}

	if err := httputil.WriteSuccess(w, sess); err != nil {
		h.log.Error("failed to write success response", "handler", "DemoLogin", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := h.service.Logout(httputil.BearerToken(r)); err != nil {
		h.writeError(w, "Logout", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *SessionHandler) Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	token := httputil.BearerToken(r)
	user, err := h.service.Current(token)
	if err != nil {
		h.writeError(w, "Me", err)
		return
	}
	theme, err := h.service.Theme(token)
	if err != nil {
		h.writeError(w, "Me", err)
		return
	}

	resp := meResponse{User: user, Theme: theme, Graph: h.service.Graph(user)}
	if err := httputil.WriteSuccess(w, resp); err != nil {
		h.log.Error("failed to write success response", "handler", "Me", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SessionHandler) UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var update model.UserUpdate
	if err := httputil.DecodeJSON(r, &update); err != nil {
		h.writeError(w, "UpdateProfile", err)
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), httputil.BearerToken(r), &update)
	if err != nil {
		h.writeError(w, "UpdateProfile", err)
		return
	}

	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateProfile", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SessionHandler) SetTheme(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var update model.ThemeUpdate
	if err := httputil.DecodeJSON(r, &update); err != nil {
		h.writeError(w, "SetTheme", err)
		return
	}

	if err := h.service.SetTheme(httputil.BearerToken(r), update.Theme); err != nil {
		h.writeError(w, "SetTheme", err)
		return
	}

	if err := httputil.WriteSuccess(w, update); err != nil {
		h.log.Error("failed to write success response", "handler", "SetTheme", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SessionHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *SessionHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/auth/login", h.Login)
	router.POST("/api/v1/auth/register", h.Register)
	router.POST("/api/v1/auth/demo/:role/:id", h.DemoLogin)
	router.POST("/api/v1/auth/logout", h.Logout)
	router.GET("/api/v1/auth/me", h.Me)
	router.PATCH("/api/v1/auth/me", h.UpdateProfile)
	router.PUT("/api/v1/auth/me/theme", h.SetTheme)
}
