package auth

import (
	"context"
	"errors"
	"time"

	userDatamodel "github.com/hanifm/school-management/internal/core/datamodel/user"
)

// UserSummary is the shape of the user object embedded in login responses.
type UserSummary struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Role       string `json:"role"`
	IsActive   bool   `json:"is_active"`
	IsVerified bool   `json:"is_verified"`
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type LoginResult struct {
	AuthTokens
	User UserSummary `json:"user"`
}

// ServiceAPI is what the HTTP layer needs from the auth service.
type ServiceAPI interface {
	Authenticate(ctx context.Context, dto LoginDTO, meta SessionMetadata) (*LoginResult, error)
	RefreshTokens(ctx context.Context, refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	Logout(ctx context.Context, tokenID string) error
	SessionIsActive(ctx context.Context, tokenID string) (bool, error)
	TouchSession(ctx context.Context, tokenID string) error
	CurrentUser(userID int64) (*UserSummary, error)
	ChangePassword(ctx context.Context, userID int64, dto ChangePasswordDTO, currentTokenID string) error
	ActiveSessions(userID int64) ([]*Session, error)
	RevokeSession(ctx context.Context, userID int64, sessionID string) error
	PermissionsFor(role Role) []string
	HashPassword(password string) (string, error)
}

// RepositoryAPI resolves user credentials and profile rows.
type RepositoryAPI interface {
	GetByEmailOrUsername(login string) (*userDatamodel.User, error)
	GetByID(userID int64) (*userDatamodel.User, error)
	UpdateLastLogin(userID int64, at time.Time) error
	UpdatePasswordHash(userID int64, hash string) error
}

// SessionRepositoryAPI persists session rows. The store is the single
// point of truth; the Redis cache in front of it is advisory only.
type SessionRepositoryAPI interface {
	Create(session *userDatamodel.Session) error
	GetByTokenID(tokenID string) (*userDatamodel.Session, error)
	GetByID(id string) (*userDatamodel.Session, error)
	Revoke(tokenID string, at time.Time) error
	RevokeByID(id string, at time.Time) error
	RevokeAllForUser(userID int64, at time.Time, exceptTokenID string) (int64, error)
	Touch(tokenID string, at time.Time) error
	ListActiveForUser(userID int64, now time.Time) ([]*userDatamodel.Session, error)
	DeactivateExpired(now time.Time) (int64, error)
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(userID int64, email string, role Role, tokenID string) (string, error)
	GenerateRefreshToken(userID int64, email string, role Role, tokenID string) (string, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	ValidateRefreshToken(tokenString string) (*Claims, error)
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrSessionRevoked     = errors.New("session revoked or expired")
	ErrUserInactive       = errors.New("user is inactive")
	ErrSessionNotFound    = errors.New("session not found")
)

func SummaryFromDataModel(u *userDatamodel.User) UserSummary {
	return UserSummary{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Role:       u.Role,
		IsActive:   u.IsActive,
		IsVerified: u.IsVerified,
	}
}
