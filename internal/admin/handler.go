// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"database/sql"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/tenanthub/internal/core"
	"github.com/carterperez-dev/tenanthub/internal/subscription"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// WorkflowSource reports ledger and request counts.
type WorkflowSource interface {
	Stats(ctx context.Context) (*subscription.WorkflowStats, error)
}

type HandlerConfig struct {
	DB         Pinger
	Redis      Pinger
	DBStats    func() sql.DBStats
	RedisStats func() *redis.PoolStats
	Workflow   WorkflowSource
	StartedAt  time.Time
}

type Handler struct {
	cfg HandlerConfig
}

func NewHandler(cfg HandlerConfig) *Handler {
	if cfg.StartedAt.IsZero() {
		cfg.StartedAt = time.Now()
	}
	return &Handler{cfg: cfg}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/stats", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/", h.GetSystemStats)
		r.Get("/db", h.GetDatabaseStats)
		r.Get("/redis", h.GetRedisStats)
		r.Get("/runtime", h.GetRuntimeStats)
		r.Get("/workflow", h.GetWorkflowStats)
	})
}

func (h *Handler) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	var (
		wg              sync.WaitGroup
		dbErr, redisErr error
		workflow        *subscription.WorkflowStats
		workflowErr     error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		dbErr = ping(ctx, h.cfg.DB)
	}()
	go func() {
		defer wg.Done()
		redisErr = ping(ctx, h.cfg.Redis)
	}()
	go func() {
		defer wg.Done()
		workflow, workflowErr = h.workflowStats(ctx)
	}()
	wg.Wait()

	response := SystemStatsResponse{
		Uptime: time.Since(h.cfg.StartedAt).Round(time.Second).String(),
		Database: ComponentStatus[DBPoolStats]{
			Healthy: dbErr == nil,
			Stats:   h.dbPool(),
		},
		Redis: ComponentStatus[RedisPoolStats]{
			Healthy: redisErr == nil,
			Stats:   h.redisPool(),
		},
		Runtime: readRuntime(),
	}
	if workflowErr == nil {
		response.Workflow = workflow
	}

	core.OK(w, response)
}

func (h *Handler) GetDatabaseStats(w http.ResponseWriter, _ *http.Request) {
	core.OK(w, h.dbPool())
}

func (h *Handler) GetRedisStats(w http.ResponseWriter, _ *http.Request) {
	core.OK(w, h.redisPool())
}

func (h *Handler) GetRuntimeStats(w http.ResponseWriter, _ *http.Request) {
	core.OK(w, readRuntime())
}

func (h *Handler) GetWorkflowStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.workflowStats(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, stats)
}

func (h *Handler) workflowStats(ctx context.Context) (*subscription.WorkflowStats, error) {
	if h.cfg.Workflow == nil {
		return &subscription.WorkflowStats{
			Subscriptions: map[string]int{},
			Requests:      map[string]int{},
		}, nil
	}
	return h.cfg.Workflow.Stats(ctx)
}

func ping(ctx context.Context, p Pinger) error {
	if p == nil {
		return errNotConfigured
	}
	return p.Ping(ctx)
}

func (h *Handler) dbPool() *DBPoolStats {
	if h.cfg.DBStats == nil {
		return nil
	}

	stats := h.cfg.DBStats()
	return &DBPoolStats{
		MaxOpenConnections: stats.MaxOpenConnections,
		OpenConnections:    stats.OpenConnections,
		InUse:              stats.InUse,
		Idle:               stats.Idle,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration.String(),
		MaxIdleClosed:      stats.MaxIdleClosed,
		MaxLifetimeClosed:  stats.MaxLifetimeClosed,
	}
}

func (h *Handler) redisPool() *RedisPoolStats {
	if h.cfg.RedisStats == nil {
		return nil
	}

	stats := h.cfg.RedisStats()
	if stats == nil {
		return nil
	}
	return &RedisPoolStats{
		Hits:       stats.Hits,
		Misses:     stats.Misses,
		Timeouts:   stats.Timeouts,
		TotalConns: stats.TotalConns,
		IdleConns:  stats.IdleConns,
		StaleConns: stats.StaleConns,
	}
}

func readRuntime() RuntimeStats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return RuntimeStats{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		HeapAlloc:    mem.HeapAlloc,
		Sys:          mem.Sys,
		NumGC:        mem.NumGC,
	}
}
