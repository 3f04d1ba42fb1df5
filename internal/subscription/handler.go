// AngelaMos | 2026
// handler.go

package subscription

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

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
	r.Route("/subscriptions", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/create", h.Create)
		r.Get("/me", h.GetMine)
	})
}

// RegisterAdminRoutes mounts the request review endpoints. They sit beside
// /admin/users and /admin/stats, so they are registered as plain routes
// rather than a mounted /admin subrouter.
func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/admin/requests", h.ListRequests)
		r.Put("/admin/approve/{requestID}", h.Approve)
		r.Put("/admin/reject/{requestID}", h.Reject)
		r.Put("/admin/requests/{requestID}/status", h.OverwriteStatus)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	out, err := h.service.RequestSubscription(
		r.Context(),
		middleware.GetUserID(r.Context()),
		req.SubscriptionType,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, out)
}

func (h *Handler) GetMine(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetForUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	params := ListRequestsParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
		Status:   r.URL.Query().Get("status"),
	}

	requests, total, err := h.service.ListRequests(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}

	params.Normalize()
	core.Paginated(w, requests, params.Page, params.PageSize, total)
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ApproveOrganizationRequest(
		r.Context(),
		chi.URLParam(r, "requestID"),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, result)
}

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	req, err := h.service.RejectOrganizationRequest(
		r.Context(),
		chi.URLParam(r, "requestID"),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, map[string]any{
		"message": "Organization request rejected.",
		"request": req,
	})
}

func (h *Handler) OverwriteStatus(w http.ResponseWriter, r *http.Request) {
	var body UpdateRequestStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(body); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	req, err := h.service.OverwriteRequestStatus(
		r.Context(),
		chi.URLParam(r, "requestID"),
		body.Status,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, req)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidPlan):
		core.JSONError(w, core.NewAppError(err,
			"Invalid subscription type. Allowed types are: FreeTrial, Organization.",
			http.StatusBadRequest, "INVALID_PLAN"))
	case errors.Is(err, ErrInvalidStatus):
		core.JSONError(w, core.NewAppError(err,
			"Invalid status. Allowed values are: pending, approved, rejected.",
			http.StatusBadRequest, "INVALID_STATUS"))
	case errors.Is(err, ErrAlreadySubscribed):
		core.Conflict(w, "ALREADY_SUBSCRIBED", "You already have an active subscription.")
	case errors.Is(err, ErrRequestAlreadyPending):
		core.Conflict(w, "REQUEST_PENDING", "You already have a pending organization request.")
	case errors.Is(err, ErrAlreadyProcessed):
		core.Conflict(w, "ALREADY_PROCESSED", "Request already processed.")
	case errors.Is(err, ErrRequestNotFound):
		core.JSONError(w, core.NewAppError(err,
			"Request not found", http.StatusNotFound, "REQUEST_NOT_FOUND"))
	case errors.Is(err, ErrUserNotFound):
		core.NotFound(w, "user")
	default:
		core.InternalServerError(w, err)
	}
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
