package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hanifm/school-management/internal/core/events"
)

// Service wires the token generator, the session tracker and the
// credential store into the login/refresh/logout flows.
type Service struct {
	userRepo   RepositoryAPI
	sessions   *SessionTracker
	tokenGen   TokenGeneratorAPI
	roles      *RoleTable
	bus        *events.EventBus
	bcryptCost int
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     *slog.Logger
}

func NewService(userRepo RepositoryAPI, sessions *SessionTracker, tokenGen TokenGeneratorAPI, roles *RoleTable, bus *events.EventBus, bcryptCost int, accessTTL, refreshTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{
		userRepo:   userRepo,
		sessions:   sessions,
		tokenGen:   tokenGen,
		roles:      roles,
		bus:        bus,
		bcryptCost: bcryptCost,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		logger:     logger,
	}
}

// Authenticate validates credentials, opens a session and issues tokens.
// Every failure before token issuance maps to the same unauthorized
// response at the HTTP edge.
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO, meta SessionMetadata) (*LoginResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmailOrUsername(dto.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	now := time.Now()
	tokenID := uuid.NewString()

	// The session outlives the access token; it expires with the refresh
	// token, since that is the last credential that can act on it.
	if _, err := s.sessions.Open(ctx, user.ID, tokenID, meta, now, now.Add(s.refreshTTL)); err != nil {
		s.logger.Error("failed to open session", "user_id", user.ID, "error", err)
		return nil, err
	}

	role := Role(user.Role)
	accessToken, err := s.tokenGen.GenerateAccessToken(user.ID, user.Email, role, tokenID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokenGen.GenerateRefreshToken(user.ID, user.Email, role, tokenID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastLogin(user.ID, now); err != nil {
		s.logger.Warn("failed to update last login", "user_id", user.ID, "error", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID, "role", user.Role)

	return &LoginResult{
		AuthTokens: AuthTokens{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			TokenType:    "bearer",
			ExpiresIn:    int64(s.accessTTL.Seconds()),
		},
		User: SummaryFromDataModel(user),
	}, nil
}

// RefreshTokens mints a new access token against a still-active session.
// The refresh token itself is returned unchanged.
func (s *Service) RefreshTokens(ctx context.Context, refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGen.ValidateRefreshToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	active, err := s.sessions.IsActive(ctx, claims.TokenID)
	if err != nil {
		return AuthTokens{}, err
	}
	if !active {
		return AuthTokens{}, ErrSessionRevoked
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return AuthTokens{}, ErrInvalidToken
	}
	if !user.IsActive {
		return AuthTokens{}, ErrUserInactive
	}

	accessToken, err := s.tokenGen.GenerateAccessToken(user.ID, user.Email, Role(user.Role), claims.TokenID)
	if err != nil {
		return AuthTokens{}, err
	}

	if err := s.sessions.Touch(ctx, claims.TokenID); err != nil {
		s.logger.Warn("failed to touch session on refresh", "error", err)
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGen.ValidateAccessToken(tokenString)
}

// Logout revokes the session behind the presented token.
func (s *Service) Logout(ctx context.Context, tokenID string) error {
	return s.sessions.Revoke(ctx, tokenID)
}

func (s *Service) SessionIsActive(ctx context.Context, tokenID string) (bool, error) {
	return s.sessions.IsActive(ctx, tokenID)
}

func (s *Service) TouchSession(ctx context.Context, tokenID string) error {
	return s.sessions.Touch(ctx, tokenID)
}

func (s *Service) CurrentUser(userID int64) (*UserSummary, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	summary := SummaryFromDataModel(user)
	return &summary, nil
}

// ChangePassword verifies the current password, stores a new hash and
// revokes the user's other sessions.
func (s *Service) ChangePassword(ctx context.Context, userID int64, dto ChangePasswordDTO, currentTokenID string) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(dto.CurrentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := s.HashPassword(dto.NewPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePasswordHash(userID, hash); err != nil {
		return err
	}

	revoked, err := s.sessions.RevokeAllForUser(ctx, userID, currentTokenID)
	if err != nil {
		s.logger.Warn("failed to revoke sessions after password change", "user_id", userID, "error", err)
	}

	s.logger.Info("password changed", "user_id", userID, "sessions_revoked", revoked)

	if s.bus != nil {
		_ = s.bus.Publish(ctx, events.NewUserPasswordChangedEvent(userID))
	}
	return nil
}

func (s *Service) ActiveSessions(userID int64) ([]*Session, error) {
	return s.sessions.ListActive(userID)
}

func (s *Service) RevokeSession(ctx context.Context, userID int64, sessionID string) error {
	return s.sessions.RevokeByID(ctx, userID, sessionID)
}

func (s *Service) PermissionsFor(role Role) []string {
	return s.roles.PermissionsFor(role)
}

func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
