// AngelaMos | 2026
// admin_test.go

package admin

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/tenanthub/internal/subscription"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

type fixedWorkflow struct {
	stats *subscription.WorkflowStats
	err   error
}

func (f fixedWorkflow) Stats(context.Context) (*subscription.WorkflowStats, error) {
	return f.stats, f.err
}

func passthrough(next http.Handler) http.Handler { return next }

func newRouter(cfg HandlerConfig) chi.Router {
	r := chi.NewRouter()
	NewHandler(cfg).RegisterRoutes(r, passthrough, passthrough)
	return r
}

func TestSystemStats(t *testing.T) {
	r := newRouter(HandlerConfig{
		DB:      pingFunc(func(context.Context) error { return nil }),
		Redis:   pingFunc(func(context.Context) error { return errors.New("down") }),
		DBStats: func() sql.DBStats { return sql.DBStats{OpenConnections: 3, InUse: 1} },
		Workflow: fixedWorkflow{stats: &subscription.WorkflowStats{
			Subscriptions: map[string]int{"FreeTrial": 2},
			Requests:      map[string]int{"pending": 1},
		}},
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data SystemStatsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.True(t, body.Data.Database.Healthy)
	require.NotNil(t, body.Data.Database.Stats)
	assert.Equal(t, 3, body.Data.Database.Stats.OpenConnections)
	assert.False(t, body.Data.Redis.Healthy)
	assert.Nil(t, body.Data.Redis.Stats)
	require.NotNil(t, body.Data.Workflow)
	assert.Equal(t, 2, body.Data.Workflow.Subscriptions["FreeTrial"])
	assert.NotEmpty(t, body.Data.Runtime.GoVersion)
}

func TestWorkflowStats(t *testing.T) {
	tests := []struct {
		name     string
		workflow WorkflowSource
		want     int
	}{
		{
			name: "reports counts",
			workflow: fixedWorkflow{stats: &subscription.WorkflowStats{
				Requests: map[string]int{"approved": 4},
			}},
			want: http.StatusOK,
		},
		{
			name:     "source failure",
			workflow: fixedWorkflow{err: errors.New("boom")},
			want:     http.StatusInternalServerError,
		},
		{
			name: "not configured",
			want: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(HandlerConfig{Workflow: tt.workflow})

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/stats/workflow", nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
