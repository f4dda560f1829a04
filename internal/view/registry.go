package view

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"docportal/internal/service"
	"docportal/internal/session"
	"docportal/internal/storage"
)

const defaultCleanupInterval = 5 * time.Minute

// Purger removes expired entries from durable storage.
type Purger interface {
	Purge(ctx context.Context) (int64, error)
}

// Registry maps client ids to controllers and evicts idle ones.
// An evicted client is rebuilt from durable storage on its next request.
type Registry struct {
	storage storage.Storage
	auth    service.AuthGateway
	docs    service.DocumentService
	qa      service.QAService
	log     *zap.Logger

	idleTimeout     time.Duration
	cleanupInterval time.Duration
	storeOpts       []session.Option
	purger          Purger
	now             func() time.Time

	mu          sync.Mutex
	controllers map[string]*Controller

	done     chan struct{}
	stopOnce sync.Once
}

// RegistryOption customizes a Registry.
type RegistryOption func(*Registry)

// WithIdleTimeout sets how long an unused controller stays in memory.
func WithIdleTimeout(d time.Duration) RegistryOption {
	return func(r *Registry) { r.idleTimeout = d }
}

// WithCleanupInterval sets how often idle controllers are swept.
func WithCleanupInterval(d time.Duration) RegistryOption {
	return func(r *Registry) { r.cleanupInterval = d }
}

// WithStoreOptions applies options to every session store the registry creates.
func WithStoreOptions(opts ...session.Option) RegistryOption {
	return func(r *Registry) { r.storeOpts = append(r.storeOpts, opts...) }
}

// WithPurger runs p on every sweep.
func WithPurger(p Purger) RegistryOption {
	return func(r *Registry) { r.purger = p }
}

// NewRegistry creates an empty registry. Call Start to begin idle sweeps.
func NewRegistry(st storage.Storage, auth service.AuthGateway, docs service.DocumentService, qa service.QAService, log *zap.Logger, opts ...RegistryOption) *Registry {
	r := &Registry{
		storage:         st,
		auth:            auth,
		docs:            docs,
		qa:              qa,
		log:             log,
		idleTimeout:     30 * time.Minute,
		cleanupInterval: defaultCleanupInterval,
		now:             time.Now,
		controllers:     make(map[string]*Controller),
		done:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the client's controller, creating and rehydrating it on first use.
// A rehydration failure is logged; the session stays loading and is retried next time.
func (r *Registry) Get(ctx context.Context, clientID string) *Controller {
	r.mu.Lock()
	c, ok := r.controllers[clientID]
	if !ok {
		store := session.NewStore(clientID, r.storage, r.log, r.storeOpts...)
		c = NewController(store, r.auth, r.docs, r.qa, r.log)
		c.now = r.now
		r.controllers[clientID] = c
		r.log.Debug("controller_created", zap.String("client_id", clientID))
	}
	r.mu.Unlock()

	c.Touch()
	if err := c.Session().Rehydrate(ctx); err != nil {
		r.log.Warn("session_rehydrate_failed", zap.String("client_id", clientID), zap.Error(err))
	}
	return c
}

// Len returns the number of live controllers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.controllers)
}

// Start launches the periodic sweep.
func (r *Registry) Start() {
	ticker := time.NewTicker(r.cleanupInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.Sweep(context.Background())
			case <-r.done:
				r.log.Info("registry_cleanup_stopped")
				return
			}
		}
	}()
}

// Stop ends the periodic sweep. It is safe to call more than once.
func (r *Registry) Stop() {
	r.stopOnce.Do(func() { close(r.done) })
}

// Sweep evicts controllers idle for longer than the timeout and purges expired storage.
func (r *Registry) Sweep(ctx context.Context) int {
	cutoff := r.now().Add(-r.idleTimeout)

	r.mu.Lock()
	evicted := 0
	for id, c := range r.controllers {
		if c.LastUsed().Before(cutoff) {
			delete(r.controllers, id)
			evicted++
		}
	}
	r.mu.Unlock()

	if evicted > 0 {
		r.log.Info("controllers_evicted", zap.Int("count", evicted))
	}
	if r.purger != nil {
		n, err := r.purger.Purge(ctx)
		if err != nil {
			r.log.Warn("storage_purge_failed", zap.Error(err))
		} else if n > 0 {
			r.log.Info("storage_purged", zap.Int64("rows", n))
		}
	}
	return evicted
}
