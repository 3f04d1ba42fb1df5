// AngelaMos | 2026
// handler.go

package member

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/carterperez-dev/tenanthub/internal/core"
)

// Handler serves the directory straight off the repository; there is no
// logic beyond validation.
type Handler struct {
	repo      Repository
	validator *validator.Validate
}

func NewHandler(repo Repository) *Handler {
	return &Handler{
		repo:      repo,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/add-user", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/add-user", h.Create)
		r.Get("/", h.List)
		r.Get("/{memberID}", h.Get)
		r.Put("/{memberID}", h.Update)
		r.Delete("/delete-user/{memberID}", h.Delete)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	m := fromRequest(uuid.New().String(), req)
	if err := h.repo.Create(r.Context(), m); err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, m)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.repo.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, members)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := memberID(w, r)
	if !ok {
		return
	}

	m, err := h.repo.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, m)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := memberID(w, r)
	if !ok {
		return
	}

	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	m := fromRequest(id, req)
	if err := h.repo.Update(r.Context(), m); err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, m)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := memberID(w, r)
	if !ok {
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, map[string]string{"message": "User deleted successfully"})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (MemberRequest, bool) {
	var req MemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return req, false
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return req, false
	}

	return req, true
}

func memberID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "memberID")
	if _, err := uuid.Parse(id); err != nil {
		core.NotFound(w, "user")
		return "", false
	}
	return id, true
}

func fromRequest(id string, req MemberRequest) *Member {
	return &Member{
		ID:            id,
		UserName:      strings.TrimSpace(req.UserName),
		UserAdminName: strings.TrimSpace(req.UserAdminName),
		UserType:      req.UserType,
		CompanyName:   strings.TrimSpace(req.CompanyName),
	}
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrMemberNotFound) {
		core.NotFound(w, "user")
		return
	}
	core.InternalServerError(w, err)
}
