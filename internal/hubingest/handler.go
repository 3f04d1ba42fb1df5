// AngelaMos | 2026
// handler.go

package hubingest

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

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/hubingest", func(r chi.Router) {
		r.Post("/", h.Create)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)

			r.Get("/", h.ListMine)
			r.Get("/user/{userID}", h.ListForUser)
			r.Put("/{hubIngestID}", h.Update)
			r.Delete("/{hubIngestID}", h.Delete)
		})
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.VerifyRequest(r, h.verifier)
	if err != nil {
		middleware.WriteAuthError(w, err)
		return
	}

	var req CreateHubIngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	ingest, err := h.service.Create(r.Context(), claims.UserID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, ingest)
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	ingests, err := h.service.ListMine(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ingests)
}

func (h *Handler) ListForUser(w http.ResponseWriter, r *http.Request) {
	ingests, err := h.service.ListForUser(
		r.Context(),
		middleware.GetUserID(r.Context()),
		middleware.IsAdmin(r.Context()),
		chi.URLParam(r, "userID"),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ingests)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateHubIngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	ingest, err := h.service.Update(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "hubIngestID"),
		req,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ingest)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "hubIngestID"),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, map[string]string{"message": "HubIngest deleted successfully"})
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrHubIngestNotFound) {
		core.NotFound(w, "hub ingest")
		return
	}
	project.WriteError(w, err)
}
