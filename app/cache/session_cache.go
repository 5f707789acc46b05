package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"willvault-auth/app/domain"
	"willvault-auth/app/port"

	"golang.org/x/sync/singleflight"
)

// fetchKey is the single-flight key; each cache holds one identity, so
// one key is enough.
const fetchKey = "identity"

// Listener is notified with the new cached value after every cache
// mutation (set, clear, refresh-complete).
type Listener func(identity *domain.SessionIdentity)

// SessionCache holds the resolved identity for one session and
// coalesces concurrent resolutions into a single call to the identity
// resolver. All callers of a shared flight observe the same outcome.
type SessionCache struct {
	resolver port.IdentityResolver
	sessions port.SessionProvider
	request  domain.RequestIdentity
	logger   *slog.Logger

	group singleflight.Group

	mu        sync.RWMutex
	user      *domain.SessionIdentity
	loaded    bool
	listeners map[int]Listener
	nextID    int
}

// NewSessionCache creates a cache bound to one request identity (its
// session cookie or trusted attributes).
func NewSessionCache(resolver port.IdentityResolver, sessions port.SessionProvider, request domain.RequestIdentity, logger *slog.Logger) *SessionCache {
	return &SessionCache{
		resolver:  resolver,
		sessions:  sessions,
		request:   request,
		logger:    logger.With("component", "session_cache"),
		listeners: make(map[int]Listener),
	}
}

// FetchUser returns the cached identity, or resolves it exactly once no
// matter how many callers arrive concurrently. The outcome (identity
// or nil) is cached either way; a failed resolution caches nil so
// consumers render a logged-out state instead of hanging, and the error
// is returned to every caller of the shared flight.
func (c *SessionCache) FetchUser(ctx context.Context) (*domain.SessionIdentity, error) {
	c.mu.RLock()
	if c.loaded {
		user := c.user
		c.mu.RUnlock()
		return user, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.group.Do(fetchKey, func() (interface{}, error) {
		identity, resolveErr := c.resolver.Resolve(ctx, c.request)
		switch {
		case resolveErr == nil:
			c.store(identity)
			return identity, nil
		case errors.Is(resolveErr, domain.ErrUnauthenticated):
			// Not an error: a valid terminal state.
			c.store(nil)
			return (*domain.SessionIdentity)(nil), nil
		default:
			c.logger.ErrorContext(ctx, "identity resolution failed", "error", resolveErr)
			c.store(nil)
			return (*domain.SessionIdentity)(nil), fmt.Errorf("%w: %w", domain.ErrSessionRefresh, resolveErr)
		}
	})

	identity, _ := v.(*domain.SessionIdentity)
	return identity, err
}

// GetUser returns whatever is currently cached. It never triggers a
// resolution.
func (c *SessionCache) GetUser() *domain.SessionIdentity {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user
}

// Subscribe registers a listener and returns its unsubscribe function.
func (c *SessionCache) Subscribe(listener Listener) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = listener
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// ClearUser empties the cache and notifies listeners. The next
// FetchUser triggers a fresh resolution.
func (c *SessionCache) ClearUser() {
	c.mu.Lock()
	c.user = nil
	c.loaded = false
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	c.group.Forget(fetchKey)
	c.notify(listeners, nil)
}

// RefreshUser invalidates the cache and resolves again, guaranteeing a
// fresh resolution even when a value was cached. Listeners are notified
// once the refresh completes.
func (c *SessionCache) RefreshUser(ctx context.Context) (*domain.SessionIdentity, error) {
	c.mu.Lock()
	c.user = nil
	c.loaded = false
	c.mu.Unlock()

	c.group.Forget(fetchKey)
	return c.FetchUser(ctx)
}

// SignOut invalidates the underlying provider session, then clears the
// cache. On provider failure the cache is left untouched so a failed
// sign-out does not silently log the caller out.
func (c *SessionCache) SignOut(ctx context.Context) error {
	if err := c.sessions.SignOut(ctx, c.request.SessionCookie); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSignOutFailed, err)
	}
	c.ClearUser()
	return nil
}

// store caches the resolved value and notifies listeners.
func (c *SessionCache) store(identity *domain.SessionIdentity) {
	c.mu.Lock()
	c.user = identity
	c.loaded = true
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	c.notify(listeners, identity)
}

// snapshotListeners must be called with c.mu held.
func (c *SessionCache) snapshotListeners() []Listener {
	listeners := make([]Listener, 0, len(c.listeners))
	for _, l := range c.listeners {
		listeners = append(listeners, l)
	}
	return listeners
}

// notify invokes listeners outside the lock. A panicking listener is
// logged and must not block notification of the others.
func (c *SessionCache) notify(listeners []Listener, identity *domain.SessionIdentity) {
	for _, listener := range listeners {
		func() {
			defer func() {
				if r := recover(); r != nil {
					c.logger.Error("session cache listener panicked", "panic", r)
				}
			}()
			listener(identity)
		}()
	}
}
