package user

import (
	"errors"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type RepositoryAPI interface {
	Create(u *User) error
	GetByID(id int64) (*User, error)
	GetByEmail(email string) (*User, error)
	List(filter ListUsersFilter, limit, offset int) ([]*User, error)
	Update(u *User) error
	SetActive(id int64, active bool) error
}

type Service struct {
	repo       RepositoryAPI
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) CreateUser(dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByEmail(dto.Email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, err
	}

	now := time.Now()
	u := &User{
		Email:        dto.Email,
		Username:     dto.Username,
		PasswordHash: string(hash),
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		Phone:        dto.Phone,
		Role:         dto.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(u); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", dto.Email)
		return nil, err
	}

	s.logger.Info("user created", "user_id", u.ID, "role", u.Role)
	return u, nil
}

func (s *Service) GetUser(id int64) (*User, error) {
	return s.repo.GetByID(id)
}

func (s *Service) ListUsers(filter ListUsersFilter, limit, offset int) ([]*User, error) {
	return s.repo.List(filter, limit, offset)
}

func (s *Service) UpdateUser(id int64, dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if dto.FirstName != nil {
		u.FirstName = *dto.FirstName
	}
	if dto.LastName != nil {
		u.LastName = *dto.LastName
	}
	if dto.Phone != nil {
		u.Phone = dto.Phone
	}
	if dto.Role != nil {
		u.Role = *dto.Role
	}
	u.UpdatedAt = time.Now()

	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, err
	}
	return u, nil
}

// DeactivateUser disables login without deleting the row; grades and
// fee history keep their author references.
func (s *Service) DeactivateUser(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	if err := s.repo.SetActive(id, false); err != nil {
		s.logger.Error("failed to deactivate user", "error", err, "user_id", id)
		return err
	}
	s.logger.Info("user deactivated", "user_id", id)
	return nil
}

func (s *Service) ActivateUser(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	return s.repo.SetActive(id, true)
}
