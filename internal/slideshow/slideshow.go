// Package slideshow advances the open photo on a timer. The caller
// supplies the advance step, so the package stays free of any UI
// toolkit and of the viewer itself.
package slideshow

import (
	"sync"
	"time"

	"k8s.io/klog/v2"
)

// DefaultInterval is used when the configured interval is not positive.
const DefaultInterval = 5 * time.Second

// AdvanceFunc performs one slideshow step. It reports false when there
// is nothing left to advance to, which stops the show.
type AdvanceFunc func() bool

// Manager runs the slideshow ticker. All methods are safe for
// concurrent use.
type Manager struct {
	mu       sync.Mutex
	interval time.Duration
	advance  AdvanceFunc
	stop     chan struct{}
	running  bool
}

// NewManager creates a stopped Manager stepping with advance every
// interval.
func NewManager(interval time.Duration, advance AdvanceFunc) *Manager {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Manager{interval: interval, advance: advance}
}

// IsRunning reports whether the ticker goroutine is active.
func (m *Manager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// Start launches the ticker. Starting a running Manager is a no-op.
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return
	}
	m.running = true
	m.stop = make(chan struct{})
	go m.run(m.stop)
	klog.V(1).Info("slideshow started")
}

// Stop halts the ticker. Stopping a stopped Manager is a no-op.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
}

// Toggle starts the slideshow if stopped and stops it if running. It
// reports whether the slideshow is running afterwards.
func (m *Manager) Toggle() bool {
	if m.IsRunning() {
		m.Stop()
		return false
	}
	m.Start()
	return true
}

func (m *Manager) stopLocked() {
	if !m.running {
		return
	}
	m.running = false
	close(m.stop)
	klog.V(1).Info("slideshow stopped")
}

func (m *Manager) run(stop chan struct{}) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !m.advance() {
				m.mu.Lock()
				if m.stop == stop {
					m.stopLocked()
				}
				m.mu.Unlock()
				return
			}
		}
	}
}
