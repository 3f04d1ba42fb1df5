// AngelaMos | 2026
// user_test.go

package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/tenanthub/internal/core"
	"github.com/carterperez-dev/tenanthub/internal/middleware"
	"github.com/carterperez-dev/tenanthub/internal/plan"
)

type memoryRepo struct {
	mu    sync.Mutex
	users map[string]*User
	refs  map[string][]ProjectRef
}

func newMemoryRepo(users ...*User) *memoryRepo {
	m := &memoryRepo{users: map[string]*User{}, refs: map[string][]ProjectRef{}}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *memoryRepo) Create(_ context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return core.ErrDuplicateKey
		}
	}
	u.SubscriptionStatus = string(plan.StatusInactive)
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memoryRepo) GetByID(_ context.Context, id string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok || u.IsDeleted() {
		return nil, core.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memoryRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email && !u.IsDeleted() {
			cp := *u
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (m *memoryRepo) UpdatePassword(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return core.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (m *memoryRepo) UpdateRole(_ context.Context, id, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return core.ErrNotFound
	}
	u.Role = role
	return nil
}

func (m *memoryRepo) UpdateSnapshot(_ context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; !ok {
		return core.ErrNotFound
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memoryRepo) SoftDelete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok || u.IsDeleted() {
		return core.ErrNotFound
	}
	now := time.Now()
	u.DeletedAt = &now
	return nil
}

func (m *memoryRepo) List(_ context.Context, p ListUsersParams) ([]User, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []User{}
	for _, u := range m.users {
		if u.IsDeleted() {
			continue
		}
		if p.SubscriptionType != "" &&
			(u.SubscriptionType == nil || *u.SubscriptionType != p.SubscriptionType) {
			continue
		}
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (m *memoryRepo) ListProjectRefs(_ context.Context, userID string) ([]ProjectRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ProjectRef{}, m.refs[userID]...), nil
}

func (m *memoryRepo) ListHubIngestRefs(context.Context, string) ([]HubIngestRef, error) {
	return []HubIngestRef{}, nil
}

type notes struct {
	mu    sync.Mutex
	types []string
	msgs  []string
}

func (n *notes) Record(_ context.Context, _, message, typ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.types = append(n.types, typ)
	n.msgs = append(n.msgs, message)
}

func seedUser(id, email, role string) *User {
	return &User{
		ID:       id,
		Email:    email,
		FullName: "Test " + id,
		Role:     role,
		SnapshotColumns: plan.SnapshotColumns{
			SubscriptionStatus: string(plan.StatusInactive),
		},
	}
}

func TestUpdateSubscriptionSnapshot(t *testing.T) {
	repo := newMemoryRepo(seedUser("u1", "u1@x.com", RoleUser))
	n := &notes{}
	svc := NewService(repo, n)
	fixed := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	ctx := context.Background()

	_, err := svc.UpdateSubscriptionSnapshot(ctx, "u1", "FreeTrial", 0)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = svc.UpdateSubscriptionSnapshot(ctx, "u1", "FreeTrial", -3)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = svc.UpdateSubscriptionSnapshot(ctx, "u1", "FreeTrial", MaxDurationInDays+1)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = svc.UpdateSubscriptionSnapshot(ctx, "u1", "Gold", 30)
	assert.ErrorIs(t, err, plan.ErrUnknownType)

	u, err := svc.UpdateSubscriptionSnapshot(ctx, "u1", "Organization", 30)
	require.NoError(t, err)

	snap := u.Snapshot()
	assert.Equal(t, plan.Organization, snap.Type)
	assert.Equal(t, 30, snap.DurationInDays)
	assert.Equal(t, plan.StatusActive, snap.Status)
	require.NotNil(t, snap.EndDate)
	assert.Equal(t, fixed.AddDate(0, 0, 30), *snap.EndDate)

	stored, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, stored.Snapshot().IsActive())

	assert.Equal(t, []string{"subscription_update"}, n.types)
	assert.Equal(t, `Your subscription has been updated to "Organization".`, n.msgs[0])

	_, err = svc.UpdateSubscriptionSnapshot(ctx, "missing", "FreeTrial", 10)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestGetDetailsByEmailAccess(t *testing.T) {
	repo := newMemoryRepo(
		seedUser("u1", "owner@x.com", RoleUser),
		seedUser("u2", "other@x.com", RoleUser),
	)
	repo.refs["u1"] = []ProjectRef{{ProjectID: "p1", ProjectName: "alpha"}}
	n := &notes{}
	svc := NewService(repo, n)
	ctx := context.Background()

	resp, err := svc.GetDetailsByEmail(ctx, "u1", false, "Owner@X.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", resp.ID)
	require.Len(t, resp.Projects, 1)
	assert.Equal(t, "alpha", resp.Projects[0].ProjectName)

	_, err = svc.GetDetailsByEmail(ctx, "u2", false, "owner@x.com")
	assert.ErrorIs(t, err, core.ErrForbidden)

	_, err = svc.GetDetailsByEmail(ctx, "admin", true, "owner@x.com")
	assert.NoError(t, err)

	assert.Equal(t, []string{"get_user_details", "get_user_details"}, n.types)
}

func TestCanDeleteUser(t *testing.T) {
	repo := newMemoryRepo(
		seedUser("admin", "admin@x.com", RoleAdmin),
		seedUser("other-admin", "a2@x.com", RoleAdmin),
		seedUser("u1", "u1@x.com", RoleUser),
	)
	svc := NewService(repo, &notes{})
	ctx := context.Background()

	assert.ErrorIs(t, svc.CanDeleteUser(ctx, "admin", "admin"), core.ErrForbidden)
	assert.ErrorIs(t, svc.CanDeleteUser(ctx, "admin", "other-admin"), core.ErrForbidden)
	assert.NoError(t, svc.CanDeleteUser(ctx, "admin", "u1"))
	assert.ErrorIs(t, svc.CanDeleteUser(ctx, "admin", "ghost"), core.ErrNotFound)
}

func TestPromoteByEmail(t *testing.T) {
	repo := newMemoryRepo(seedUser("u1", "boss@x.com", RoleUser))
	svc := NewService(repo, &notes{})

	u, err := svc.PromoteByEmail(context.Background(), "BOSS@x.com")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin())
}

func withClaims(claims *middleware.AccessTokenClaims) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithClaims(r.Context(), claims)))
		})
	}
}

func newRouter(svc *Service, claims *middleware.AccessTokenClaims) chi.Router {
	h := NewHandler(svc)
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Route("/user", func(r chi.Router) {
			h.RegisterRoutes(r, withClaims(claims))
		})
		h.RegisterAdminRoutes(r, withClaims(claims), middleware.RequireAdmin)
	})
	return r
}

func TestHandlerUpdateSubscription(t *testing.T) {
	repo := newMemoryRepo(seedUser("u1", "u1@x.com", RoleUser))
	router := newRouter(NewService(repo, &notes{}), &middleware.AccessTokenClaims{UserID: "u1", Role: RoleUser})

	send := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPut, "/api/user/subscription", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	rec := send(`{"subscriptionType":"FreeTrial","durationInDays":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_DURATION")

	rec = send(`{"subscriptionType":"FreeTrial","durationInDays":9223372036854775807}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_DURATION")

	rec = send(`{"subscriptionType":"FreeTrial","durationInDays":36500}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = send(`{"subscriptionType":"Platinum","durationInDays":10}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = send(`{"subscriptionType":"FreeTrial","durationInDays":14}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var env struct {
		Data UserResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, plan.FreeTrial, env.Data.Subscription.Type)
	assert.Equal(t, 14, env.Data.Subscription.DurationInDays)
}

func TestHandlerMeAndAdminRoutes(t *testing.T) {
	const u2 = "3d5b7f0a-2c41-4e8b-9f6d-a1b2c3d4e5f6"
	repo := newMemoryRepo(
		seedUser("u1", "u1@x.com", RoleUser),
		seedUser(u2, "u2@x.com", RoleUser),
	)
	svc := NewService(repo, &notes{})

	userRouter := newRouter(svc, &middleware.AccessTokenClaims{UserID: "u1", Role: RoleUser})

	rec := httptest.NewRecorder()
	userRouter.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/user/me", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"projects":[]`)

	rec = httptest.NewRecorder()
	userRouter.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/user/u2@x.com", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	userRouter.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/users", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminRouter := newRouter(svc, &middleware.AccessTokenClaims{UserID: "root", Role: RoleAdmin})

	rec = httptest.NewRecorder()
	adminRouter.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/users", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":2`)

	rec = httptest.NewRecorder()
	adminRouter.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/users/subscription/Gold", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	adminRouter.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/users/"+u2, nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	adminRouter.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/admin/users/"+u2, nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, err := repo.GetByID(context.Background(), u2)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRepositoryUpdateSnapshot(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	u := &User{ID: "u1"}
	u.SetSnapshot(plan.NewSnapshot(plan.FreeTrial, 365, start))

	updated := start.Add(time.Minute)
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users")).
		WithArgs("u1", "FreeTrial", 365, start, start.AddDate(0, 0, 365), "active").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(updated))

	repo := NewRepository(sqlx.NewDb(db, "pgx"))
	require.NoError(t, repo.UpdateSnapshot(context.Background(), u))
	assert.Equal(t, updated, u.UpdatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositorySoftDeleteMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewRepository(sqlx.NewDb(db, "pgx"))
	err = repo.SoftDelete(context.Background(), "ghost")
	assert.ErrorIs(t, err, core.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminUserRoutesMalformedID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewService(NewRepository(sqlx.NewDb(db, "pgx")), &notes{})
	router := newRouter(svc, &middleware.AccessTokenClaims{UserID: "root", Role: RoleAdmin})

	tests := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/api/admin/users/nope", ""},
		{http.MethodPut, "/api/admin/users/nope/role", `{"role":"admin"}`},
		{http.MethodDelete, "/api/admin/users/12345", ""},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(
				tt.method, tt.path, bytes.NewBufferString(tt.body)))
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Contains(t, rec.Body.String(), "user not found")
		})
	}

	require.NoError(t, mock.ExpectationsWereMet())
}
