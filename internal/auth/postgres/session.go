package postgres

import (
	"time"

	"github.com/hanifm/school-management/internal/auth"
	userDatamodel "github.com/hanifm/school-management/internal/core/datamodel/user"
	"gorm.io/gorm"
)

// SessionRepository persists session rows in user_sessions.
type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(session *userDatamodel.Session) error {
	return r.db.Create(session).Error
}

func (r *SessionRepository) GetByTokenID(tokenID string) (*userDatamodel.Session, error) {
	var session userDatamodel.Session
	err := r.db.Where("token_id = ?", tokenID).First(&session).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, auth.ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) GetByID(id string) (*userDatamodel.Session, error) {
	var session userDatamodel.Session
	err := r.db.Where("id = ?", id).First(&session).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, auth.ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

// Revoke deactivates the session with the given token id. Revoking an
// already revoked session is a no-op, not an error.
func (r *SessionRepository) Revoke(tokenID string, at time.Time) error {
	return r.db.Model(&userDatamodel.Session{}).
		Where("token_id = ? AND is_active = ?", tokenID, true).
		Updates(map[string]interface{}{
			"is_active":  false,
			"revoked_at": at,
		}).Error
}

func (r *SessionRepository) RevokeByID(id string, at time.Time) error {
	return r.db.Model(&userDatamodel.Session{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]interface{}{
			"is_active":  false,
			"revoked_at": at,
		}).Error
}

// RevokeAllForUser deactivates every active session of a user, keeping
// the one identified by exceptTokenID alive when it is non-empty.
func (r *SessionRepository) RevokeAllForUser(userID int64, at time.Time, exceptTokenID string) (int64, error) {
	query := r.db.Model(&userDatamodel.Session{}).
		Where("user_id = ? AND is_active = ?", userID, true)
	if exceptTokenID != "" {
		query = query.Where("token_id <> ?", exceptTokenID)
	}
	result := query.Updates(map[string]interface{}{
		"is_active":  false,
		"revoked_at": at,
	})
	return result.RowsAffected, result.Error
}

func (r *SessionRepository) Touch(tokenID string, at time.Time) error {
	return r.db.Model(&userDatamodel.Session{}).
		Where("token_id = ?", tokenID).
		Update("last_activity", at).Error
}

func (r *SessionRepository) ListActiveForUser(userID int64, now time.Time) ([]*userDatamodel.Session, error) {
	var sessions []*userDatamodel.Session
	err := r.db.Where("user_id = ? AND is_active = ? AND expires_at > ?", userID, true, now).
		Order("last_activity DESC").
		Find(&sessions).Error
	return sessions, err
}

// DeactivateExpired flips is_active off for sessions past their expiry.
// Run from the cleanup-sessions command.
func (r *SessionRepository) DeactivateExpired(now time.Time) (int64, error) {
	result := r.db.Model(&userDatamodel.Session{}).
		Where("is_active = ? AND expires_at <= ?", true, now).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}
