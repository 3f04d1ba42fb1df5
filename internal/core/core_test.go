// AngelaMos | 2026
// core_test.go

package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/tenanthub/internal/config"
)

func TestRetryPolicyGivesUp(t *testing.T) {
	calls := 0
	policy := RetryPolicy{Attempts: 5, Interval: 0}

	err := policy.Do(context.Background(), "db", func(context.Context) error {
		calls++
		return errors.New("refused")
	})

	require.Error(t, err)
	assert.Equal(t, 5, calls)
	assert.Contains(t, err.Error(), "giving up after 5 attempts")
}

func TestRetryPolicyStopsOnSuccess(t *testing.T) {
	calls := 0
	policy := RetryPolicy{Attempts: 5, Interval: 0}

	err := policy.Do(context.Background(), "db", func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("refused")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryPolicyHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	policy := RetryPolicy{Attempts: 5, Interval: time.Hour}
	calls := 0
	err := policy.Do(ctx, "db", func(context.Context) error {
		calls++
		cancel()
		return errors.New("refused")
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
	assert.NotContains(t, err.Error(), "giving up")
}

func TestRetryPolicyCanceledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := RetryPolicy{Attempts: 3}.Do(ctx, "redis", func(context.Context) error {
		calls++
		return nil
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}

func TestRetryPolicyZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	err := RetryPolicy{}.Do(context.Background(), "db", func(context.Context) error {
		calls++
		return errors.New("refused")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Contains(t, err.Error(), "db: giving up after 1 attempts: refused")
}

func TestNewDatabaseRetriesConnect(t *testing.T) {
	cfg := config.DatabaseConfig{
		URL:            "postgres://unreachable",
		ConnectRetries: 5,
	}

	attempts := 0
	_, err := newDatabase(context.Background(), cfg,
		func(context.Context, string, string) (*sqlx.DB, error) {
			attempts++
			return nil, errors.New("connection refused")
		})

	require.Error(t, err)
	assert.Equal(t, 5, attempts)
}

func TestNewDatabaseConnects(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	mock.ExpectPing()

	cfg := config.DatabaseConfig{ConnectRetries: 5, MaxOpenConns: 3}

	db, err := newDatabase(context.Background(), cfg,
		func(context.Context, string, string) (*sqlx.DB, error) {
			return sqlx.NewDb(mockDB, "pgx"), nil
		})

	require.NoError(t, err)
	assert.Equal(t, 3, db.Stats().MaxOpenConnections)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "subscriptions_user_id_key"}
	wrapped := fmt.Errorf("insert: %w", pgErr)

	assert.True(t, IsUniqueViolation(wrapped, ""))
	assert.True(t, IsUniqueViolation(wrapped, "subscriptions_user_id_key"))
	assert.False(t, IsUniqueViolation(wrapped, "other"))
	assert.False(t, IsUniqueViolation(errors.New("x"), ""))
}

func TestGenerateNumericCode(t *testing.T) {
	for range 50 {
		code, err := GenerateNumericCode(6)
		require.NoError(t, err)
		assert.Len(t, code, 6)
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9')
		}
	}

	_, err := GenerateNumericCode(0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	check, err := CheckPassword("correct horse", hash)
	require.NoError(t, err)
	assert.True(t, check.Valid)
	assert.Empty(t, check.Upgrade)

	check, err = CheckPassword("wrong horse", hash)
	require.NoError(t, err)
	assert.False(t, check.Valid)

	check, err = CheckPassword("anything", "")
	require.NoError(t, err)
	assert.False(t, check.Valid)

	_, err = CheckPassword("anything", "$bcrypt$nope")
	assert.ErrorIs(t, err, errMalformedHash)
}

func TestCheckPasswordUpgradesWeakParams(t *testing.T) {
	weak := argonParams{memory: 8 * 1024, time: 1, threads: 1, keyLen: 32}
	salt := []byte("0123456789abcdef")
	hash := weak.encode(salt, weak.derive("pw", salt))

	check, err := CheckPassword("pw", hash)
	require.NoError(t, err)
	require.True(t, check.Valid)
	require.NotEmpty(t, check.Upgrade)

	upgraded, err := CheckPassword("pw", check.Upgrade)
	require.NoError(t, err)
	assert.True(t, upgraded.Valid)
	assert.Empty(t, upgraded.Upgrade)
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestJSONErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", fmt.Errorf("get: %w", ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"duplicate", fmt.Errorf("insert: %w", ErrDuplicateKey), http.StatusBadRequest, "DUPLICATE"},
		{"conflict", ConflictError("ALREADY_SUBSCRIBED", "already subscribed"), http.StatusBadRequest, "ALREADY_SUBSCRIBED"},
		{"validation", ValidationError("bad"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"expired", ErrTokenExpired, http.StatusUnauthorized, "TOKEN_EXPIRED"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			JSONError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			resp := decodeResponse(t, rec)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestPaginated(t *testing.T) {
	rec := httptest.NewRecorder()
	Paginated(rec, []string{"a", "b"}, 2, 2, 5)

	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestFormatValidationError(t *testing.T) {
	type req struct {
		Email  string `validate:"required,email"`
		Mobile string `validate:"required,numeric,len=10"`
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.Struct(req{Email: "nope", Mobile: "123"})
	require.Error(t, err)

	msg := FormatValidationError(err)
	assert.Contains(t, msg, "Email must be a valid email address")
	assert.Contains(t, msg, "Mobile must be exactly 10 characters")
}

func TestTelemetryDisabled(t *testing.T) {
	tel, err := NewTelemetry(context.Background(),
		config.OtelConfig{Enabled: false, Endpoint: "collector:4317"},
		config.AppConfig{Name: "tenanthub"},
	)
	require.NoError(t, err)
	require.NoError(t, tel.Shutdown(context.Background()))

	ctx, span := StartSpan(context.Background(), "noop")
	defer span.End()
	assert.Empty(t, TraceIDFromContext(ctx))
}

func TestSampleRate(t *testing.T) {
	assert.InDelta(t, defaultSampleRate, sampleRate(0), 0)
	assert.InDelta(t, defaultSampleRate, sampleRate(1.5), 0)
	assert.InDelta(t, 0.5, sampleRate(0.5), 0)
}
