package postgres

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	userDatamodel "github.com/hanifm/school-management/internal/core/datamodel/user"
	"github.com/hanifm/school-management/internal/user"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(u *user.User) error {
	dm := user.ToDataModel(u)
	if err := r.db.Create(dm).Error; err != nil {
		if isUniqueViolation(err) {
			return user.ErrDuplicateEmail
		}
		return err
	}
	u.ID = dm.ID
	return nil
}

func (r *Repository) GetByID(id int64) (*user.User, error) {
	var dm userDatamodel.User
	if err := r.db.First(&dm, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&dm), nil
}

func (r *Repository) GetByEmail(email string) (*user.User, error) {
	var dm userDatamodel.User
	if err := r.db.Where("email = ?", email).First(&dm).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&dm), nil
}

func (r *Repository) List(filter user.ListUsersFilter, limit, offset int) ([]*user.User, error) {
	query := r.db.Model(&userDatamodel.User{})
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Active != nil {
		query = query.Where("is_active = ?", *filter.Active)
	}

	var rows []*userDatamodel.User
	err := query.
		Order("email ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	users := make([]*user.User, 0, len(rows))
	for _, dm := range rows {
		users = append(users, user.FromDataModel(dm))
	}
	return users, nil
}

func (r *Repository) Update(u *user.User) error {
	return r.db.Save(user.ToDataModel(u)).Error
}

func (r *Repository) SetActive(id int64, active bool) error {
	result := r.db.Model(&userDatamodel.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  active,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// ListActiveUserIDs feeds notification broadcasts. An empty role means
// every active account.
func (r *Repository) ListActiveUserIDs(role string) ([]int64, error) {
	query := r.db.Model(&userDatamodel.User{}).Where("is_active = ?", true)
	if role != "" {
		query = query.Where("role = ?", role)
	}

	var ids []int64
	if err := query.Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
