// AngelaMos | 2026
// dto.go

package admin

import (
	"errors"

	"github.com/carterperez-dev/tenanthub/internal/subscription"
)

var errNotConfigured = errors.New("checker not configured")

type SystemStatsResponse struct {
	Uptime   string                          `json:"uptime"`
	Database ComponentStatus[DBPoolStats]    `json:"database"`
	Redis    ComponentStatus[RedisPoolStats] `json:"redis"`
	Runtime  RuntimeStats                    `json:"runtime"`
	Workflow *subscription.WorkflowStats     `json:"workflow,omitempty"`
}

type ComponentStatus[T any] struct {
	Healthy bool `json:"healthy"`
	Stats   *T   `json:"stats,omitempty"`
}

type DBPoolStats struct {
	MaxOpenConnections int    `json:"max_open_connections"`
	OpenConnections    int    `json:"open_connections"`
	InUse              int    `json:"in_use"`
	Idle               int    `json:"idle"`
	WaitCount          int64  `json:"wait_count"`
	WaitDuration       string `json:"wait_duration"`
	MaxIdleClosed      int64  `json:"max_idle_closed"`
	MaxLifetimeClosed  int64  `json:"max_lifetime_closed"`
}

type RedisPoolStats struct {
	Hits       uint32 `json:"hits"`
	Misses     uint32 `json:"misses"`
	Timeouts   uint32 `json:"timeouts"`
	TotalConns uint32 `json:"total_conns"`
	IdleConns  uint32 `json:"idle_conns"`
	StaleConns uint32 `json:"stale_conns"`
}

type RuntimeStats struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	NumCPU       int    `json:"num_cpu"`
	HeapAlloc    uint64 `json:"heap_alloc_bytes"`
	Sys          uint64 `json:"sys_bytes"`
	NumGC        uint32 `json:"num_gc"`
}
