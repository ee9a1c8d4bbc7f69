package postgres

import (
	"time"

	"github.com/hanifm/school-management/internal/auth"
	userDatamodel "github.com/hanifm/school-management/internal/core/datamodel/user"
	"gorm.io/gorm"
)

// Repository resolves user credentials against the users table.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetByEmailOrUsername matches the login field against either column so
// the login form can accept both.
func (r *Repository) GetByEmailOrUsername(login string) (*userDatamodel.User, error) {
	var user userDatamodel.User
	err := r.db.Where("email = ? OR username = ?", login, login).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetByID(userID int64) (*userDatamodel.User, error) {
	var user userDatamodel.User
	err := r.db.Where("id = ?", userID).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) UpdateLastLogin(userID int64, at time.Time) error {
	return r.db.Model(&userDatamodel.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"last_login": at,
			"updated_at": time.Now(),
		}).Error
}

func (r *Repository) UpdatePasswordHash(userID int64, hash string) error {
	return r.db.Model(&userDatamodel.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password_hash": hash,
			"updated_at":    time.Now(),
		}).Error
}
