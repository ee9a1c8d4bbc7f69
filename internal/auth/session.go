package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	userDatamodel "github.com/hanifm/school-management/internal/core/datamodel/user"
)

// Session is the domain view of one logged-in device.
type Session struct {
	ID           string     `json:"id"`
	UserID       int64      `json:"user_id"`
	TokenID      string     `json:"-"`
	UserAgent    *string    `json:"user_agent,omitempty"`
	IPAddress    *string    `json:"ip_address,omitempty"`
	DeviceType   *string    `json:"device_type,omitempty"`
	IsActive     bool       `json:"is_active"`
	IssuedAt     time.Time  `json:"issued_at"`
	ExpiresAt    time.Time  `json:"expires_at"`
	LastActivity time.Time  `json:"last_activity"`
	RevokedAt    *time.Time `json:"revoked_at,omitempty"`
}

// SessionMetadata is captured from the login request.
type SessionMetadata struct {
	UserAgent  string
	IPAddress  string
	DeviceType string
}

var ErrSessionExpiryBeforeIssue = errors.New("session expiry precedes issue time")

// ActivityCache is an optional fast path for IsActive checks. A nil cache
// or a cache error always falls through to the store, which remains the
// single point of truth.
type ActivityCache interface {
	MarkActive(ctx context.Context, tokenID string, ttl time.Duration) error
	IsActive(ctx context.Context, tokenID string) (bool, error)
	Invalidate(ctx context.Context, tokenID string) error
}

// SessionTracker records active sessions for revocation. Concurrent logins
// from one user create independent rows; no per-user cap is enforced.
type SessionTracker struct {
	repo   SessionRepositoryAPI
	cache  ActivityCache
	logger *slog.Logger
}

func NewSessionTracker(repo SessionRepositoryAPI, cache ActivityCache, logger *slog.Logger) *SessionTracker {
	return &SessionTracker{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// Open creates a session row for a fresh login.
func (t *SessionTracker) Open(ctx context.Context, userID int64, tokenID string, meta SessionMetadata, issuedAt, expiresAt time.Time) (*Session, error) {
	if !expiresAt.After(issuedAt) {
		return nil, ErrSessionExpiryBeforeIssue
	}

	row := &userDatamodel.Session{
		ID:           uuid.NewString(),
		UserID:       userID,
		TokenID:      tokenID,
		IsActive:     true,
		IssuedAt:     issuedAt,
		ExpiresAt:    expiresAt,
		LastActivity: issuedAt,
	}
	if meta.UserAgent != "" {
		row.UserAgent = &meta.UserAgent
	}
	if meta.IPAddress != "" {
		row.IPAddress = &meta.IPAddress
	}
	if meta.DeviceType != "" {
		row.DeviceType = &meta.DeviceType
	}

	if err := t.repo.Create(row); err != nil {
		return nil, err
	}

	t.cacheMarkActive(ctx, tokenID, time.Until(expiresAt))

	t.logger.Info("session opened", "session_id", row.ID, "user_id", userID)
	return sessionFromDataModel(row), nil
}

// IsActive is true only while the session exists, is not revoked, and has
// not passed its expiry.
func (t *SessionTracker) IsActive(ctx context.Context, tokenID string) (bool, error) {
	if t.cache != nil {
		active, err := t.cache.IsActive(ctx, tokenID)
		if err == nil && active {
			return true, nil
		}
		if err != nil {
			t.logger.Warn("session cache read failed, falling back to store", "error", err)
		}
	}

	row, err := t.repo.GetByTokenID(tokenID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return false, nil
		}
		return false, err
	}

	now := time.Now()
	active := row.IsActive && row.RevokedAt == nil && row.ExpiresAt.After(now)
	if active {
		t.cacheMarkActive(ctx, tokenID, row.ExpiresAt.Sub(now))
	}
	return active, nil
}

// Revoke marks the session revoked. Idempotent: revoking an already
// revoked session is a no-op. The cache entry goes first so a crash
// between the two steps fails closed.
func (t *SessionTracker) Revoke(ctx context.Context, tokenID string) error {
	if t.cache != nil {
		if err := t.cache.Invalidate(ctx, tokenID); err != nil {
			t.logger.Warn("session cache invalidation failed", "error", err)
		}
	}
	return t.repo.Revoke(tokenID, time.Now())
}

// RevokeByID revokes one session by row id, checking ownership.
func (t *SessionTracker) RevokeByID(ctx context.Context, userID int64, sessionID string) error {
	row, err := t.repo.GetByID(sessionID)
	if err != nil {
		return err
	}
	if row.UserID != userID {
		return ErrSessionNotFound
	}
	if t.cache != nil {
		if err := t.cache.Invalidate(ctx, row.TokenID); err != nil {
			t.logger.Warn("session cache invalidation failed", "error", err)
		}
	}
	return t.repo.RevokeByID(sessionID, time.Now())
}

// RevokeAllForUser revokes every active session of a user except the one
// carrying exceptTokenID. Used on password change.
func (t *SessionTracker) RevokeAllForUser(ctx context.Context, userID int64, exceptTokenID string) (int64, error) {
	sessions, err := t.repo.ListActiveForUser(userID, time.Now())
	if err != nil {
		return 0, err
	}
	if t.cache != nil {
		for _, s := range sessions {
			if s.TokenID == exceptTokenID {
				continue
			}
			if err := t.cache.Invalidate(ctx, s.TokenID); err != nil {
				t.logger.Warn("session cache invalidation failed", "error", err)
			}
		}
	}
	return t.repo.RevokeAllForUser(userID, time.Now(), exceptTokenID)
}

// Touch updates the last-activity timestamp. Called on every validated
// request.
func (t *SessionTracker) Touch(ctx context.Context, tokenID string) error {
	return t.repo.Touch(tokenID, time.Now())
}

// ListActive returns the caller's active sessions.
func (t *SessionTracker) ListActive(userID int64) ([]*Session, error) {
	rows, err := t.repo.ListActiveForUser(userID, time.Now())
	if err != nil {
		return nil, err
	}
	sessions := make([]*Session, 0, len(rows))
	for _, row := range rows {
		sessions = append(sessions, sessionFromDataModel(row))
	}
	return sessions, nil
}

// CleanupExpired deactivates rows whose expiry has passed. Run from the
// cleanup-sessions command.
func (t *SessionTracker) CleanupExpired(ctx context.Context) (int64, error) {
	n, err := t.repo.DeactivateExpired(time.Now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		t.logger.Info("expired sessions deactivated", "count", n)
	}
	return n, nil
}

func (t *SessionTracker) cacheMarkActive(ctx context.Context, tokenID string, ttl time.Duration) {
	if t.cache == nil || ttl <= 0 {
		return
	}
	if err := t.cache.MarkActive(ctx, tokenID, ttl); err != nil {
		t.logger.Warn("session cache write failed", "error", err)
	}
}

func sessionFromDataModel(row *userDatamodel.Session) *Session {
	return &Session{
		ID:           row.ID,
		UserID:       row.UserID,
		TokenID:      row.TokenID,
		UserAgent:    row.UserAgent,
		IPAddress:    row.IPAddress,
		DeviceType:   row.DeviceType,
		IsActive:     row.IsActive,
		IssuedAt:     row.IssuedAt,
		ExpiresAt:    row.ExpiresAt,
		LastActivity: row.LastActivity,
		RevokedAt:    row.RevokedAt,
	}
}
