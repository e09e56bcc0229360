package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// RevocationStore tracks tokens explicitly invalidated before their natural
// expiry (logout) plus a cache of tokens already proven invalid, so replayed
// dead tokens skip repeated signature checks. The store is owned by the
// process and shared by every request handler; all access goes through the
// internal mutex.
type RevocationStore struct {
	tokens *TokenManager
	logger *zap.Logger

	mu             sync.RWMutex
	revoked        map[string]time.Time
	knownExpired   map[string]struct{}
	expiredMaxSize int
	sweepInterval  time.Duration
}

// RevocationStats reports store sizes for diagnostics.
type RevocationStats struct {
	RevokedCount      int `json:"revokedCount"`
	ExpiredCacheCount int `json:"expiredCacheCount"`
}

// NewRevocationStore builds the store. expiredMaxSize bounds the
// known-expired cache; once exceeded the sweep clears it wholesale.
func NewRevocationStore(tokens *TokenManager, logger *zap.Logger, sweepInterval time.Duration, expiredMaxSize int) *RevocationStore {
	if sweepInterval <= 0 {
		sweepInterval = time.Hour
	}
	if expiredMaxSize <= 0 {
		expiredMaxSize = 1000
	}
	return &RevocationStore{
		tokens:         tokens,
		logger:         logger,
		revoked:        make(map[string]time.Time),
		knownExpired:   make(map[string]struct{}),
		expiredMaxSize: expiredMaxSize,
		sweepInterval:  sweepInterval,
	}
}

// Revoke adds the token to the revoked set. Revoking twice is a no-op.
// Revocation is irreversible: entries only leave the set once the underlying
// token no longer verifies at all.
func (s *RevocationStore) Revoke(token string) {
	if strings.TrimSpace(token) == "" {
		return
	}
	s.mu.Lock()
	if _, exists := s.revoked[token]; !exists {
		s.revoked[token] = time.Now()
	}
	total := len(s.revoked)
	s.mu.Unlock()

	s.logger.Info("token revoked", zap.Int("revoked_total", total))
}

// IsRevoked reports membership in the revoked set.
func (s *RevocationStore) IsRevoked(token string) bool {
	if strings.TrimSpace(token) == "" {
		return false
	}
	s.mu.RLock()
	_, revoked := s.revoked[token]
	s.mu.RUnlock()
	return revoked
}

// IsValid reports whether the token is usable: not revoked, not already
// known to be dead, and passing cryptographic verification. Verification
// failures are cached so the next replay short-circuits.
func (s *RevocationStore) IsValid(token string) bool {
	if strings.TrimSpace(token) == "" {
		return false
	}

	s.mu.RLock()
	_, revoked := s.revoked[token]
	_, expired := s.knownExpired[token]
	s.mu.RUnlock()

	if revoked || expired {
		return false
	}

	if _, err := s.tokens.Verify(token); err != nil {
		s.mu.Lock()
		s.knownExpired[token] = struct{}{}
		s.mu.Unlock()
		s.logger.Debug("token cached as invalid", zap.Error(err))
		return false
	}
	return true
}

// Stats returns current store sizes.
func (s *RevocationStore) Stats() RevocationStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return RevocationStats{
		RevokedCount:      len(s.revoked),
		ExpiredCacheCount: len(s.knownExpired),
	}
}

// Run sweeps on a fixed interval until ctx is cancelled. The sweep is the
// only background writer; request paths never wait on it beyond the short
// critical sections above.
func (s *RevocationStore) Run(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Sweep drops revoked entries whose token no longer verifies: once a token
// is past its natural lifetime the explicit entry is redundant. Any
// verification error counts as "remove it"; a bad entry never aborts the
// sweep. The known-expired cache is cleared wholesale when over its bound.
func (s *RevocationStore) Sweep() {
	s.mu.RLock()
	candidates := make([]string, 0, len(s.revoked))
	for token := range s.revoked {
		candidates = append(candidates, token)
	}
	s.mu.RUnlock()

	// Verification runs outside the lock; it is pure CPU work.
	stale := make([]string, 0, len(candidates))
	for _, token := range candidates {
		if _, err := s.tokens.Verify(token); err != nil {
			stale = append(stale, token)
		}
	}

	s.mu.Lock()
	before := len(s.revoked)
	for _, token := range stale {
		delete(s.revoked, token)
	}
	after := len(s.revoked)
	clearedCache := false
	if len(s.knownExpired) > s.expiredMaxSize {
		s.knownExpired = make(map[string]struct{})
		clearedCache = true
	}
	s.mu.Unlock()

	s.logger.Info("revocation sweep completed",
		zap.Int("revoked_before", before),
		zap.Int("revoked_after", after),
		zap.Bool("expired_cache_cleared", clearedCache))
}
