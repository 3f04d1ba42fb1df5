// AngelaMos | 2026
// handler.go

package organization

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/tenanthub/internal/core"
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
	r.Route("/org", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/organizations", h.Create)
		r.Get("/organizations", h.List)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	org, err := h.service.Create(r.Context(), req)
	if errors.Is(err, ErrOrganizationExists) {
		core.Conflict(w, "ORGANIZATION_EXISTS", "Organization with this email already exists")
		return
	}
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, org)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, orgs)
}
