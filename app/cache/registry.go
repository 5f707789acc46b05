package cache

import (
	"log/slog"
	"sync"
	"time"

	"willvault-auth/app/domain"
	"willvault-auth/app/port"
)

// registryEntry pairs a session cache with its eviction deadline.
type registryEntry struct {
	cache     *SessionCache
	expiresAt time.Time
}

// Registry owns one SessionCache per session, replacing the global
// singleton of the original design with an explicit, injectable
// lifecycle. Entries expire on a sliding TTL and are swept
// periodically.
type Registry struct {
	resolver port.IdentityResolver
	sessions port.SessionProvider
	logger   *slog.Logger
	ttl      time.Duration

	mu      sync.Mutex
	entries map[string]*registryEntry
}

// NewRegistry creates a session cache registry with the given entry TTL.
func NewRegistry(resolver port.IdentityResolver, sessions port.SessionProvider, ttl time.Duration, logger *slog.Logger) *Registry {
	r := &Registry{
		resolver: resolver,
		sessions: sessions,
		logger:   logger.With("component", "session_cache_registry"),
		ttl:      ttl,
		entries:  make(map[string]*registryEntry),
	}
	go r.cleanupLoop()
	return r
}

// For returns the cache for the request's session, creating one on
// first sight. Access slides the eviction deadline forward.
func (r *Registry) For(request domain.RequestIdentity) *SessionCache {
	key := cacheKey(request)

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, found := r.entries[key]
	if !found {
		entry = &registryEntry{
			cache: NewSessionCache(r.resolver, r.sessions, request, r.logger),
		}
		r.entries[key] = entry
	}
	entry.expiresAt = time.Now().Add(r.ttl)
	return entry.cache
}

// Drop removes the cache for the request's session, used after sign-out.
func (r *Registry) Drop(request domain.RequestIdentity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, cacheKey(request))
}

// Len reports the number of live entries.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func cacheKey(request domain.RequestIdentity) string {
	if request.SessionCookie != "" {
		return request.SessionCookie
	}
	return "trusted:" + request.UserID
}

// cleanup removes expired entries.
func (r *Registry) cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for key, entry := range r.entries {
		if now.After(entry.expiresAt) {
			delete(r.entries, key)
		}
	}
}

// cleanupLoop runs periodic cleanup of expired entries.
func (r *Registry) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		r.cleanup()
	}
}
