// AngelaMos | 2026
// handler.go

package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/tenanthub/internal/core"
)

type Handler struct {
	catalog   *Catalog
	validator *validator.Validate
}

func NewHandler(catalog *Catalog) *Handler {
	return &Handler{
		catalog:   catalog,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes mounts the catalog. Reads are public, writes need
// authenticator.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Get("/categories-with-services", h.ListWithServices)

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.ListCategories)
		r.Get("/{categoryID}", h.GetCategory)
		r.Get("/{categoryID}/with-services", h.GetWithServices)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)

			r.Post("/", h.CreateCategories)
			r.Post("/services", h.CreateService)
		})
	})
}

func (h *Handler) CreateCategories(w http.ResponseWriter, r *http.Request) {
	var reqs []CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		core.BadRequest(w, "request body must be an array of categories")
		return
	}

	if len(reqs) == 0 {
		core.BadRequest(w, "at least one category is required")
		return
	}

	if err := h.validator.Var(reqs, "dive"); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	categories, err := h.catalog.CreateCategories(r.Context(), reqs)
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, categories)
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, categories)
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.catalog.GetCategory(r.Context(), chi.URLParam(r, "categoryID"))
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, category)
}

func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	svc, err := h.catalog.CreateService(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, svc)
}

func (h *Handler) ListWithServices(w http.ResponseWriter, r *http.Request) {
	out, err := h.catalog.CategoriesWithServices(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, out)
}

func (h *Handler) GetWithServices(w http.ResponseWriter, r *http.Request) {
	out, err := h.catalog.CategoryWithServices(r.Context(), chi.URLParam(r, "categoryID"))
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, out)
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrCategoryNotFound) {
		core.NotFound(w, "category")
		return
	}
	core.InternalServerError(w, err)
}
