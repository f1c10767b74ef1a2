package main

import (
	"runtime"
	"sync"
	"time"

	"github.com/farxc/tuition_status/internal/logger"
)

type runStats struct {
	PeakHeapMB     uint64
	PeakGoroutines int
}

// resourceMonitor samples heap and goroutine counts while a run is in flight.
type resourceMonitor struct {
	mu    sync.Mutex
	stats runStats
	stop  chan struct{}
	done  chan struct{}
}

func newResourceMonitor() *resourceMonitor {
	return &resourceMonitor{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

func (m *resourceMonitor) Start(interval time.Duration, appLogger *logger.Logger) {
	go func() {
		defer close(m.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.sample(appLogger)
			case <-m.stop:
				return
			}
		}
	}()
}

func (m *resourceMonitor) sample(appLogger *logger.Logger) {
	const component = "Monitor"

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	heapMB := mem.HeapAlloc / 1024 / 1024
	goroutines := runtime.NumGoroutine()

	m.mu.Lock()
	m.stats.PeakHeapMB = max(m.stats.PeakHeapMB, heapMB)
	m.stats.PeakGoroutines = max(m.stats.PeakGoroutines, goroutines)
	m.mu.Unlock()

	appLogger.Debug(component, "heapMB=%d goroutines=%d", heapMB, goroutines)
}

// Stop takes a last sample and returns the peaks seen.
func (m *resourceMonitor) Stop(appLogger *logger.Logger) runStats {
	close(m.stop)
	<-m.done
	m.sample(appLogger)

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}
