package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi"

	"github.com/hanifm/school-management/internal"
	"github.com/hanifm/school-management/internal/transport"
	"github.com/hanifm/school-management/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// Login accepts form-encoded credentials and returns the token pair plus
// a user summary. Every authentication failure collapses to the same 401.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	dto := LoginDTO{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	meta := SessionMetadata{
		UserAgent:  r.UserAgent(),
		IPAddress:  remoteIP(r),
		DeviceType: r.PostFormValue("device_type"),
	}

	result, err := h.Service.Authenticate(r.Context(), dto, meta)
	if err != nil {
		h.Logger.Warn("authentication failed", "error", err)

		switch err {
		case ErrInvalidCredentials, ErrUserInactive:
			h.WriteError(w, http.StatusUnauthorized, "invalid credentials")
		default:
			if _, ok := err.(ValidationError); ok {
				h.WriteError(w, http.StatusBadRequest, err.Error())
			} else {
				h.WriteError(w, http.StatusInternalServerError, "internal server error")
			}
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var dto RefreshTokenDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tokens, err := h.Service.RefreshTokens(r.Context(), dto.RefreshToken)
	if err != nil {
		h.Logger.Warn("token refresh failed", "error", err)

		switch err {
		case ErrInvalidToken, ErrTokenExpired, ErrSessionRevoked, ErrUserInactive:
			h.WriteError(w, http.StatusUnauthorized, "invalid refresh token")
		default:
			h.WriteError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

// Logout revokes the session behind the presented bearer token.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := h.ExtractTokenFromHeader(r)
	if token == "" {
		h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	claims, err := h.Service.ValidateAccessToken(token)
	if err != nil {
		h.WriteError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	if err := h.Service.Logout(r.Context(), claims.TokenID); err != nil {
		h.Logger.Error("logout failed", "user_id", claims.UserID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	summary, err := h.Service.CurrentUser(user.ID)
	if err != nil {
		h.Logger.Error("failed to load current user", "user_id", user.ID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto ChangePasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.ChangePassword(r.Context(), user.ID, dto, user.SessionID); err != nil {
		switch err.(type) {
		case ValidationError:
			h.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err == ErrInvalidCredentials {
			h.WriteError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.Logger.Error("password change failed", "user_id", user.ID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	sessions, err := h.Service.ActiveSessions(user.ID)
	if err != nil {
		h.Logger.Error("failed to list sessions", "user_id", user.ID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"sessions": sessions})
}

func (h *Handler) RevokeSession(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	sessionID := chi.URLParam(r, "id")
	if err := h.Service.RevokeSession(r.Context(), user.ID, sessionID); err != nil {
		if err == ErrSessionNotFound {
			h.WriteError(w, http.StatusNotFound, "session not found")
			return
		}
		h.Logger.Error("failed to revoke session", "user_id", user.ID, "session_id", sessionID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AuthMiddleware validates the bearer token, confirms the session is
// still active, records activity and places the caller's identity in
// context. Token and session failures are indistinguishable to clients.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		claims, err := h.Service.ValidateAccessToken(token)
		if err != nil {
			h.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		active, err := h.Service.SessionIsActive(r.Context(), claims.TokenID)
		if err != nil {
			h.Logger.Error("session lookup failed", "user_id", claims.UserID, "error", err)
			h.WriteError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if !active {
			h.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		if err := h.Service.TouchSession(r.Context(), claims.TokenID); err != nil {
			h.Logger.Warn("failed to touch session", "error", err)
		}

		user := &internal.AuthUser{
			ID:          claims.UserID,
			Email:       claims.Email,
			Role:        claims.Role,
			SessionID:   claims.TokenID,
			Permissions: h.Service.PermissionsFor(Role(claims.Role)),
		}

		ctx := internal.ContextWithUser(r.Context(), user)
		ctx = logger.WithUser(ctx, user.ID, user.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func remoteIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host := r.RemoteAddr
	if idx := strings.LastIndex(host, ":"); idx > 0 {
		host = host[:idx]
	}
	return host
}
