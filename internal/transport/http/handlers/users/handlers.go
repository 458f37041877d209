package usershandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"enroll/internal/domain/accounts"
	"enroll/internal/domain/auth"
	"enroll/internal/platform/requestctx"
	"enroll/internal/transport/http/api"
	"enroll/internal/transport/http/middleware"
	"enroll/internal/transport/http/shared"
)

type Handler struct {
	Accounts *accounts.Service
}

func NewHandler(accountsSvc *accounts.Service) *Handler {
	return &Handler{Accounts: accountsSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleSuperadmin))
		r.Get("/users", h.HandleList)
		r.Post("/users", h.HandleCreate)
		r.Delete("/users/{id}", h.HandleDelete)
	})
}

type createRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	infos, err := h.Accounts.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "server_error", "failed to list accounts", reqID)
		return
	}
	api.Success(w, infos, reqID)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	var payload createRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("username", payload.Username, "is required")
	v.Required("password", payload.Password, "is required")
	v.MinLen("password", payload.Password, 8, "must be at least 8 characters")
	if v.Reject(w, reqID) {
		return
	}

	id, err := h.Accounts.CreateAdmin(r.Context(), payload.Username, payload.Password)
	if errors.Is(err, accounts.ErrDuplicate) {
		api.Fail(w, http.StatusConflict, "conflict", "username already taken", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "server_error", "failed to create account", reqID)
		return
	}

	api.Created(w, map[string]any{"id": id, "username": payload.Username, "role": auth.RoleAdmin}, reqID)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	targetID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid account id", reqID)
		return
	}

	caller, _ := middleware.GetUser(r.Context())
	err = h.Accounts.Delete(r.Context(), caller.UserID, targetID)
	switch {
	case errors.Is(err, accounts.ErrProtected):
		api.Fail(w, http.StatusForbidden, "forbidden", "cannot delete this account", reqID)
	case errors.Is(err, accounts.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "account not found", reqID)
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "server_error", "failed to delete account", reqID)
	default:
		api.Success(w, map[string]string{"status": "deleted"}, reqID)
	}
}
