// AngelaMos | 2026
// handler.go

package notification

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/tenanthub/internal/core"
	"github.com/carterperez-dev/tenanthub/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/notifications", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/{email}", h.ListByEmail)
		r.Post("/", h.Create)
	})
}

func (h *Handler) ListByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	if !canAccess(r, email) {
		core.Forbidden(w, "cannot read another user's notifications")
		return
	}

	notifications, err := h.service.ListByEmail(r.Context(), email)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, notifications)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if !canAccess(r, req.Email) {
		core.Forbidden(w, "cannot notify another user")
		return
	}

	n, err := h.service.Create(r.Context(), req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, n)
}

func canAccess(r *http.Request, email string) bool {
	if middleware.IsAdmin(r.Context()) {
		return true
	}
	claims := middleware.GetClaims(r.Context())
	return claims != nil && strings.EqualFold(claims.Email, email)
}
