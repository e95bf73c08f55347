package service

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"health-wheel/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

var ErrInvalidScore = errors.New("score must be between 1 and 5")

// Draft holds the in-progress answers of one survey session: criterion
// name to selected star rating. It is never persisted.
type Draft struct {
	mu        sync.RWMutex
	responses map[string]int
	lastUsed  atomic.Int64 // Unix nanoseconds
}

func newDraft(now time.Time) *Draft {
	d := &Draft{responses: make(map[string]int)}
	d.lastUsed.Store(now.UnixNano())
	return d
}

func (d *Draft) touch() {
	d.lastUsed.Store(time.Now().UnixNano())
}

func (d *Draft) Set(criterion string, score int) error {
	if score < entity.MinRating || score > entity.MaxRating {
		return ErrInvalidScore
	}
	d.mu.Lock()
	d.responses[criterion] = score
	d.mu.Unlock()
	d.touch()
	return nil
}

func (d *Draft) Get(criterion string) (int, bool) {
	d.mu.RLock()
	score, ok := d.responses[criterion]
	d.mu.RUnlock()
	d.touch()
	return score, ok
}

func (d *Draft) Remove(criterion string) {
	d.mu.Lock()
	delete(d.responses, criterion)
	d.mu.Unlock()
	d.touch()
}

// Snapshot returns a copy safe to encode while other requests write.
func (d *Draft) Snapshot() map[string]int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make(map[string]int, len(d.responses))
	for k, v := range d.responses {
		out[k] = v
	}
	return out
}

func (d *Draft) Clear() {
	d.mu.Lock()
	d.responses = make(map[string]int)
	d.mu.Unlock()
}

const (
	minJanitorInterval = time.Second
	maxJanitorInterval = 10 * time.Minute
)

// DraftRegistry owns the drafts of all open survey sessions, keyed by
// session id. Drafts unused for longer than the idle TTL are evicted by a
// background goroutine; call Stop() during shutdown.
type DraftRegistry struct {
	mu      sync.Mutex
	drafts  map[string]*Draft
	idleTTL time.Duration
	log     *logrus.Logger

	// Graceful shutdown
	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

func NewDraftRegistry(idleTTL time.Duration, log *logrus.Logger) *DraftRegistry {
	if idleTTL <= 0 {
		idleTTL = 2 * time.Hour
	}
	r := &DraftRegistry{
		drafts:   make(map[string]*Draft),
		idleTTL:  idleTTL,
		log:      log,
		stopChan: make(chan struct{}),
	}

	r.wg.Add(1)
	go r.janitorLoop()

	return r
}

// Stop terminates the janitor. Safe to call multiple times.
func (r *DraftRegistry) Stop() {
	if r.stopped.CompareAndSwap(false, true) {
		close(r.stopChan)
		r.wg.Wait()
		r.log.Info("DraftRegistry stopped")
	}
}

// Open returns the session's draft, creating an empty one if needed.
func (r *DraftRegistry) Open(sessionID string) *Draft {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.drafts[sessionID]
	if !ok {
		d = newDraft(time.Now())
		r.drafts[sessionID] = d
	}
	d.touch()
	return d
}

func (r *DraftRegistry) Lookup(sessionID string) (*Draft, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.drafts[sessionID]
	return d, ok
}

// Discard tears the session's draft down.
func (r *DraftRegistry) Discard(sessionID string) {
	r.mu.Lock()
	delete(r.drafts, sessionID)
	r.mu.Unlock()
}

func (r *DraftRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.drafts)
}

func (r *DraftRegistry) janitorLoop() {
	defer r.wg.Done()

	ticker := time.NewTicker(janitorInterval(r.idleTTL))
	defer ticker.Stop()

	for {
		select {
		case <-r.stopChan:
			return
		case now := <-ticker.C:
			if n := r.evictIdle(now); n > 0 {
				r.log.Debugf("Evicted %d idle survey drafts", n)
			}
		}
	}
}

// evictIdle removes drafts not used since now minus the idle TTL.
func (r *DraftRegistry) evictIdle(now time.Time) int {
	threshold := now.Add(-r.idleTTL).UnixNano()

	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, d := range r.drafts {
		if d.lastUsed.Load() < threshold {
			delete(r.drafts, id)
			evicted++
		}
	}
	return evicted
}

func janitorInterval(ttl time.Duration) time.Duration {
	interval := ttl / 4
	if interval < minJanitorInterval {
		return minJanitorInterval
	}
	if interval > maxJanitorInterval {
		return maxJanitorInterval
	}
	return interval
}
