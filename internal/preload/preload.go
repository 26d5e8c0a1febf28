// Package preload opportunistically fetches the neighbors of the photo
// currently on screen so navigation does not wait on the network.
package preload

import (
	"sync"

	"k8s.io/klog/v2"

	"fynebox/internal/catalog"
)

// DefaultRadius is how many neighbors on each side get preloaded.
const DefaultRadius = 1

// FetchFunc retrieves resource bytes for a location.
type FetchFunc func(src string) ([]byte, error)

// Store receives fetched image bytes.
type Store interface {
	Has(key string) bool
	Put(key string, data []byte) error
}

// Scheduler fires preload fetches for the neighbors of a focal index.
// Fetches are fire-and-forget: the caller never blocks on them and
// failures are swallowed, since a failed preload only means a later
// on-demand fetch.
type Scheduler struct {
	cat    *catalog.Catalog
	locate func(filename string) string
	fetch  FetchFunc
	store  Store
	radius int

	mu       sync.Mutex
	inflight map[string]bool
	wg       sync.WaitGroup
}

// NewScheduler creates a Scheduler. A radius below 1 falls back to
// DefaultRadius.
func NewScheduler(cat *catalog.Catalog, locate func(string) string, fetch FetchFunc, store Store, radius int) *Scheduler {
	if radius < 1 {
		radius = DefaultRadius
	}
	return &Scheduler{
		cat:      cat,
		locate:   locate,
		fetch:    fetch,
		store:    store,
		radius:   radius,
		inflight: map[string]bool{},
	}
}

// Schedule starts fetches for the in-range neighbors of index i. The
// focal photo itself is never fetched here; it is already on screen.
func (s *Scheduler) Schedule(i int) {
	for off := 1; off <= s.radius; off++ {
		s.scheduleIndex(i - off)
		s.scheduleIndex(i + off)
	}
}

func (s *Scheduler) scheduleIndex(i int) {
	photo, err := s.cat.At(i)
	if err != nil {
		return // boundary neighbor, nothing to do
	}
	key := s.locate(photo.Filename)

	s.mu.Lock()
	if s.inflight[key] || s.store.Has(key) {
		s.mu.Unlock()
		return
	}
	s.inflight[key] = true
	s.mu.Unlock()

	s.wg.Add(1)
	go s.fetchOne(key)
}

func (s *Scheduler) fetchOne(key string) {
	defer s.wg.Done()
	data, err := s.fetch(key)

	s.mu.Lock()
	delete(s.inflight, key)
	s.mu.Unlock()

	if err != nil {
		klog.V(1).Infof("preload of %s failed: %v", key, err)
		return
	}
	if err := s.store.Put(key, data); err != nil {
		klog.V(1).Infof("preload cache write for %s failed: %v", key, err)
	}
}

// InFlight returns the number of fetches currently running.
func (s *Scheduler) InFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inflight)
}

// Wait blocks until all scheduled fetches have finished. Used on
// shutdown and in tests; normal callers never wait.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}
