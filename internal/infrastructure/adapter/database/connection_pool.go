package database

import (
	"fmt"
	"sync"
	"time"

	coreport "github.com/wanjiru-dev/church-ledger/internal/domain/port/core"
)

// PoolStats is a snapshot of database connection pool state
type PoolStats struct {
	OpenConnections    int
	IdleConnections    int
	MaxOpenConnections int
	InUse              int
	WaitCount          int64
	WaitDuration       time.Duration
}

// PoolMonitor periodically samples the connection pool and logs when it
// looks saturated
type PoolMonitor struct {
	db       *Manager
	logger   coreport.Logger
	cached   PoolStats
	mutex    sync.RWMutex
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewPoolMonitor creates a new pool monitor
func NewPoolMonitor(db *Manager, logger coreport.Logger) *PoolMonitor {
	return &PoolMonitor{
		db:       db,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start begins sampling the connection pool at the given interval
func (m *PoolMonitor) Start(interval time.Duration) {
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := m.sample(); err != nil {
					m.logger.Error("Failed to sample connection pool", map[string]any{
						"error": err.Error(),
					})
				}
			case <-m.stopChan:
				return
			}
		}
	}()
}

// Stop stops the monitoring
func (m *PoolMonitor) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopChan)
	})
}

// Stats returns the most recent pool snapshot
func (m *PoolMonitor) Stats() PoolStats {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.cached
}

func (m *PoolMonitor) sample() error {
	sqlDB, err := m.db.DB().DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	stats := sqlDB.Stats()
	snapshot := PoolStats{
		OpenConnections:    stats.OpenConnections,
		IdleConnections:    stats.Idle,
		MaxOpenConnections: stats.MaxOpenConnections,
		InUse:              stats.InUse,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration,
	}

	m.mutex.Lock()
	m.cached = snapshot
	m.mutex.Unlock()

	// Only worth a log line when requests have had to queue for a connection
	if snapshot.WaitCount > 0 && snapshot.InUse >= snapshot.MaxOpenConnections {
		m.logger.Warn("Connection pool saturated", map[string]any{
			"open":          snapshot.OpenConnections,
			"in_use":        snapshot.InUse,
			"max_open":      snapshot.MaxOpenConnections,
			"wait_count":    snapshot.WaitCount,
			"wait_duration": snapshot.WaitDuration.String(),
		})
	}

	return nil
}
