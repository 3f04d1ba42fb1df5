// AngelaMos | 2026
// handler.go

package datastore

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/tenanthub/internal/core"
	"github.com/carterperez-dev/tenanthub/internal/middleware"
	"github.com/carterperez-dev/tenanthub/internal/project"
)

type Handler struct {
	service   *Service
	verifier  middleware.TokenVerifier
	validator *validator.Validate
}

func NewHandler(service *Service, verifier middleware.TokenVerifier) *Handler {
	return &Handler{
		service:   service,
		verifier:  verifier,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes mounts /datastore. Create checks the bearer token itself;
// the other routes go through authenticator.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/datastore", func(r chi.Router) {
		r.Post("/", h.Create)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)

			r.Get("/", h.List)
			r.Get("/{dataStoreID}", h.Get)
			r.Put("/{dataStoreID}", h.Update)
			r.Delete("/{dataStoreID}", h.Delete)
		})
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.VerifyRequest(r, h.verifier)
	if err != nil {
		middleware.WriteAuthError(w, err)
		return
	}

	var req CreateDataStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	ds, err := h.service.Create(r.Context(), claims.UserID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, ds)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	stores, err := h.service.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, stores)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ds, err := h.service.Get(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "dataStoreID"),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ds)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateDataStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	ds, err := h.service.Update(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "dataStoreID"),
		req,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ds)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "dataStoreID"),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, map[string]string{"message": "DataStore deleted successfully"})
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrDataStoreNotFound) {
		core.NotFound(w, "data store")
		return
	}
	project.WriteError(w, err)
}
