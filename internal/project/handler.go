// AngelaMos | 2026
// handler.go

package project

import (
	"encoding/json"
	"errors"
	"net/http"

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
	r.Route("/proj", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/projects", h.Create)
		r.Get("/projects", h.List)
		r.Get("/{projectID}", h.Get)
		r.Put("/{projectID}", h.Update)
		r.Delete("/{projectID}", h.Delete)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	p, err := h.service.Create(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, p)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, projects)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "projectID"),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, p)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	p, err := h.service.Update(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "projectID"),
		req,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, p)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "projectID"),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, map[string]string{"message": "Project deleted successfully"})
}

// WriteError renders the project errors shared with the resource handlers.
func WriteError(w http.ResponseWriter, err error) {
	writeError(w, err)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNoActiveSubscription):
		core.JSONError(w, core.NewAppError(err,
			"User does not have an active subscription",
			http.StatusBadRequest, "NO_ACTIVE_SUBSCRIPTION"))
	case errors.Is(err, ErrProjectNotFound):
		core.JSONError(w, core.NewAppError(err,
			"Project not found or unauthorized",
			http.StatusNotFound, "PROJECT_NOT_FOUND"))
	case errors.Is(err, ErrOwnerNotFound):
		core.NotFound(w, "user")
	default:
		core.JSONError(w, err)
	}
}
