package utils

import (
	"math/rand"
	"sync"
	"time"
)

// Pacer spaces requests out by sleeping a random interval drawn uniformly
// from [min, max] between consecutive items. It is a rate-limit device, not
// a scheduling primitive.
type Pacer struct {
	min time.Duration
	max time.Duration

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewPacer creates a Pacer for the given interval bounds. If max < min the
// bounds are swapped.
func NewPacer(min, max time.Duration) *Pacer {
	if max < min {
		min, max = max, min
	}
	return &Pacer{
		min: min,
		max: max,
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Interval returns the next randomized delay.
func (p *Pacer) Interval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	spread := p.max - p.min
	if spread <= 0 {
		return p.min
	}
	return p.min + time.Duration(p.rnd.Int63n(int64(spread)+1))
}

// Sleep blocks for the next randomized delay.
func (p *Pacer) Sleep() {
	if d := p.Interval(); d > 0 {
		time.Sleep(d)
	}
}

// URLSet is a thread-safe set for tracking URLs already seen within a run.
type URLSet struct {
	mu   sync.RWMutex
	seen map[string]struct{}
}

// NewURLSet creates an empty URLSet.
func NewURLSet() *URLSet {
	return &URLSet{seen: make(map[string]struct{})}
}

// Add returns true if the URL was newly added, false if already present.
func (s *URLSet) Add(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.seen[url]; exists {
		return false
	}
	s.seen[url] = struct{}{}
	return true
}

// Contains returns true if the URL has already been seen.
func (s *URLSet) Contains(url string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.seen[url]
	return exists
}

// Size returns the number of unique URLs tracked.
func (s *URLSet) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.seen)
}
