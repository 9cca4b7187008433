package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// HealthStatus represents current status of external collaborators.
type HealthStatus struct {
	Redis     bool      `json:"redis"`
	Dots      bool      `json:"dots"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor performs periodic health checks and updates in-memory
// state. dotsPing should perform a cheap call against the integration layer.
func StartHealthMonitor(cache *redis.Client, dotsPing func(ctx context.Context) error) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)

			status := HealthStatus{CheckedAt: time.Now()}
			if cache != nil {
				status.Redis = cache.Ping(ctx).Err() == nil
			}
			if dotsPing != nil {
				status.Dots = dotsPing(ctx) == nil
			}

			healthMu.Lock()
			currentHealth = status
			healthMu.Unlock()
			cancel()
		}
	}()
}
