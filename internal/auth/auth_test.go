// AngelaMos | 2026
// auth_test.go

package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/tenanthub/internal/config"
	"github.com/carterperez-dev/tenanthub/internal/core"
	"github.com/carterperez-dev/tenanthub/internal/mail"
	"github.com/carterperez-dev/tenanthub/internal/middleware"
	"github.com/carterperez-dev/tenanthub/internal/plan"
)

type memoryUsers struct {
	mu      sync.Mutex
	byEmail map[string]*UserInfo
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byEmail: map[string]*UserInfo{}}
}

func (m *memoryUsers) GetByEmail(_ context.Context, email string) (*UserInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byEmail[email]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memoryUsers) GetByID(_ context.Context, id string) (*UserInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (m *memoryUsers) Create(_ context.Context, nu NewUser) (*UserInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[nu.Email]; ok {
		return nil, core.ErrDuplicateKey
	}
	u := &UserInfo{
		ID:           uuid.New().String(),
		Email:        nu.Email,
		FullName:     nu.FullName,
		PasswordHash: nu.PasswordHash,
		Role:         "user",
		Designation:  nu.Designation,
		Subscription: plan.Snapshot{Status: plan.StatusInactive},
		CreatedAt:    time.Now(),
	}
	m.byEmail[nu.Email] = u
	cp := *u
	return &cp, nil
}

func (m *memoryUsers) UpdatePassword(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byEmail {
		if u.ID == id {
			u.PasswordHash = hash
			return nil
		}
	}
	return core.ErrNotFound
}

type recordedNote struct {
	email, message, typ string
}

type memoryNotifier struct {
	mu    sync.Mutex
	notes []recordedNote
}

func (n *memoryNotifier) Record(_ context.Context, email, message, typ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notes = append(n.notes, recordedNote{email, message, typ})
}

type captureMailer struct {
	sent []mail.Message
	err  error
}

func (c *captureMailer) Send(_ context.Context, msg mail.Message) error {
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, msg)
	return nil
}

type fixture struct {
	service  *Service
	handler  *Handler
	jwt      *JWTManager
	users    *memoryUsers
	notifier *memoryNotifier
	mailer   *captureMailer
	redis    *miniredis.Miniredis
	router   chi.Router
}

func newJWTManager(t *testing.T) *JWTManager {
	t.Helper()
	dir := t.TempDir()
	priv := filepath.Join(dir, "private.pem")
	pub := filepath.Join(dir, "public.pem")
	require.NoError(t, GenerateKeyPair(priv, pub))

	m, err := NewJWTManager(config.JWTConfig{
		PrivateKeyPath:    priv,
		PublicKeyPath:     pub,
		AccessTokenExpire: 720 * time.Hour,
		Issuer:            "tenanthub",
		Audience:          "tenanthub-api",
	})
	require.NoError(t, err)
	return m
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	jwtManager := newJWTManager(t)
	revocations := NewRevocationList(client)
	jwtManager.WithRevocations(revocations)

	f := &fixture{
		jwt:      jwtManager,
		users:    newMemoryUsers(),
		notifier: &memoryNotifier{},
		mailer:   &captureMailer{},
		redis:    mr,
	}

	f.service = NewService(ServiceDeps{
		JWT:          jwtManager,
		UserProvider: f.users,
		OTPs:         NewRedisOTPStore(client, "otp:"),
		Mailer:       f.mailer,
		Notifier:     f.notifier,
		Revoker:      revocations,
		OTPConfig:    config.OTPConfig{Length: 6, TTL: 5 * time.Minute},
	})
	f.handler = NewHandler(f.service)

	passthrough := func(next http.Handler) http.Handler { return next }
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Route("/user", func(r chi.Router) {
			f.handler.RegisterAccountRoutes(r, passthrough)
		})
		f.handler.RegisterRoutes(r, middleware.Authenticator(jwtManager), passthrough)
	})
	f.router = r

	return f
}

func (f *fixture) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func validSignup(email string) SignupRequest {
	return SignupRequest{
		FullName:    "Ada Lovelace",
		Email:       email,
		Password:    "correct-horse",
		Mobile:      "9876543210",
		Country:     "India",
		State:       "Karnataka",
		CompanyName: "Analytical Engines",
		Designation: "Software Developer",
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestSignupSigninRoundTrip(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/user/signup", validSignup("a@x.com"), "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var signup SignupResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &signup))
	assert.Equal(t, "a@x.com", signup.User.Email)
	assert.NotContains(t, rec.Body.String(), "token")

	rec = f.do(t, http.MethodPost, "/api/user/signin",
		SigninRequest{Email: "a@x.com", Password: "wrong-password"}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Invalid email or password", env.Error.Message)

	rec = f.do(t, http.MethodPost, "/api/user/signin",
		SigninRequest{Email: "A@X.com", Password: "correct-horse"}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var signin SigninResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &signin))
	require.NotEmpty(t, signin.Token)

	resolved, err := f.service.ResolveToken(context.Background(), signin.Token)
	require.NoError(t, err)
	assert.Equal(t, signup.User.ID, resolved.ID)

	types := make([]string, 0, len(f.notifier.notes))
	for _, n := range f.notifier.notes {
		types = append(types, n.typ)
	}
	assert.Equal(t, []string{"signup", "signin"}, types)
	assert.Equal(t,
		"Welcome back, a@x.com! You have successfully signed in.",
		f.notifier.notes[1].message,
	)
}

func TestSigninUnknownEmail(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/user/signin",
		SigninRequest{Email: "ghost@x.com", Password: "whatever1"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email or password")
}

func TestSignupDuplicateAndValidation(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/user/signup", validSignup("dup@x.com"), "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/user/signup", validSignup("dup@x.com"), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "EMAIL_EXISTS")

	bad := validSignup("short@x.com")
	bad.Password = "short"
	rec = f.do(t, http.MethodPost, "/api/user/signup", bad, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	bad = validSignup("phone@x.com")
	bad.Mobile = "12345"
	rec = f.do(t, http.MethodPost, "/api/user/signup", bad, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	bad = validSignup("role@x.com")
	bad.Designation = "Astronaut"
	rec = f.do(t, http.MethodPost, "/api/user/signup", bad, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	ok := validSignup("ux@x.com")
	ok.Designation = "UI/UX Designer"
	rec = f.do(t, http.MethodPost, "/api/user/signup", ok, "")
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestTokenClaims(t *testing.T) {
	m := newJWTManager(t)
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return fixed }

	issued, err := m.CreateAccessToken(TokenSubject{UserID: "user-1", Email: "u@x.com", Role: "user"})
	require.NoError(t, err)
	assert.Equal(t, fixed.Add(30*24*time.Hour), issued.ExpiresAt)

	claims, err := m.VerifyAccessToken(context.Background(), issued.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "u@x.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.NotEmpty(t, claims.TokenID)

	m.now = func() time.Time { return fixed.Add(31 * 24 * time.Hour) }
	_, err = m.VerifyAccessToken(context.Background(), issued.Token)
	assert.ErrorIs(t, err, core.ErrTokenExpired)

	_, err = m.VerifyAccessToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestTokenFromOtherKeyRejected(t *testing.T) {
	a := newJWTManager(t)
	b := newJWTManager(t)

	issued, err := a.CreateAccessToken(TokenSubject{UserID: "u", Role: "user"})
	require.NoError(t, err)

	_, err = b.VerifyAccessToken(context.Background(), issued.Token)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newFixture(t)

	issued, err := f.jwt.CreateAccessToken(TokenSubject{UserID: "u1", Role: "user"})
	require.NoError(t, err)

	rec := f.do(t, http.MethodPost, "/api/auth/logout", nil, issued.Token)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	_, err = f.jwt.VerifyAccessToken(context.Background(), issued.Token)
	assert.ErrorIs(t, err, core.ErrTokenRevoked)

	rec = f.do(t, http.MethodPost, "/api/auth/logout", nil, issued.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWKSHandler(t *testing.T) {
	m := newJWTManager(t)

	rec := httptest.NewRecorder()
	m.GetJWKSHandler()(rec, httptest.NewRequest(http.MethodGet, "/.well-known/jwks.json", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), m.GetKeyID())
	assert.NotContains(t, rec.Body.String(), `"d"`)
}

func TestRedisOTPStoreConsumeOnce(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisOTPStore(client, "otp:")
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.Save(ctx, "Bob@x.com", "123456", now.Add(5*time.Minute)))
	assert.True(t, mr.Exists("otp:bob@x.com"))

	ok, err := store.Verify(ctx, "bob@x.com", "123456", now)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Verify(ctx, "bob@x.com", "654321", now)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.Consume(ctx, "bob@x.com", "123456", now)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Consume(ctx, "bob@x.com", "123456", now)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisOTPStoreExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisOTPStore(client, "otp:")
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.Save(ctx, "c@x.com", "111111", now.Add(time.Minute)))
	require.NoError(t, store.Save(ctx, "c@x.com", "222222", now.Add(10*time.Minute)))

	later := now.Add(2 * time.Minute)
	ok, err := store.Verify(ctx, "c@x.com", "111111", later)
	require.NoError(t, err)
	assert.False(t, ok)

	members, err := client.ZCard(ctx, "otp:c@x.com").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), members)

	ok, err = store.Consume(ctx, "c@x.com", "222222", later)
	require.NoError(t, err)
	assert.True(t, ok)
}

var otpPattern = regexp.MustCompile(`\b(\d{6})\b`)

func TestPasswordResetFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Signup(ctx, validSignup("reset@x.com"))
	require.NoError(t, err)

	rec := f.do(t, http.MethodPost, "/api/auth/forgot-password",
		ForgotPasswordRequest{Email: "reset@x.com"}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "Password Reset OTP", f.mailer.sent[0].Subject)

	match := otpPattern.FindStringSubmatch(f.mailer.sent[0].Body)
	require.Len(t, match, 2)
	code := match[1]

	rec = f.do(t, http.MethodPost, "/api/auth/verify-otp",
		VerifyOTPRequest{Email: "reset@x.com", OTP: "000000"}, "")
	if code != "000000" {
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid or expired OTP")
	}

	rec = f.do(t, http.MethodPost, "/api/auth/verify-otp",
		VerifyOTPRequest{Email: "reset@x.com", OTP: code}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "OTP verified successfully")

	reset := ResetPasswordRequest{Email: "reset@x.com", OTP: code, NewPassword: "brand-new-pass"}
	rec = f.do(t, http.MethodPost, "/api/auth/reset-password", reset, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = f.do(t, http.MethodPost, "/api/auth/reset-password", reset, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	_, err = f.service.Signin(ctx, SigninRequest{Email: "reset@x.com", Password: "brand-new-pass"})
	assert.NoError(t, err)
}

func TestForgotPasswordFailures(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/auth/forgot-password",
		ForgotPasswordRequest{Email: "nobody@x.com"}, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	_, err := f.service.Signup(context.Background(), validSignup("mail@x.com"))
	require.NoError(t, err)
	f.mailer.err = errors.New("smtp down")

	rec = f.do(t, http.MethodPost, "/api/auth/forgot-password",
		ForgotPasswordRequest{Email: "mail@x.com"}, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error sending email")
}
