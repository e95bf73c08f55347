package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"health-wheel/internal/service"
	"health-wheel/pkg/jwt"
	"health-wheel/pkg/response"

	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	PatientIDKey          contextKey = "patient_id"
	EmailKey              contextKey = "email"
	RoleKey               contextKey = "role"
	SessionIDKey          contextKey = "session_id"
	EffectivePatientIDKey contextKey = "effective_patient_id"
)

type AuthMiddleware struct {
	log        *logrus.Logger
	jwtService *jwt.JWTService
	sessions   service.SessionStore
}

func NewAuthMiddleware(log *logrus.Logger, jwtService *jwt.JWTService, sessions service.SessionStore) *AuthMiddleware {
	return &AuthMiddleware{
		log:        log,
		jwtService: jwtService,
		sessions:   sessions,
	}
}

// Authenticate rejects the request with 401 unless it carries a valid,
// unrevoked session token. The wrapped handler is never reached otherwise.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrSecretNotConfigured) {
				m.log.Errorf("Session secret is not configured")
				response.InternalServerError(w, "Authentication is not configured")
				return
			}
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		// Check the session is still on the allow-list (not signed out)
		live, err := m.sessions.Exists(r.Context(), claims.PatientID, claims.SessionID)
		if err != nil {
			m.log.Warnf("Failed to check session: %+v", err)
			response.InternalServerError(w, "Failed to validate session")
			return
		}
		if !live {
			response.Unauthorized(w, "Session has been revoked")
			return
		}

		ctx := context.WithValue(r.Context(), PatientIDKey, claims.PatientID)
		ctx = context.WithValue(ctx, EmailKey, claims.Email)
		ctx = context.WithValue(ctx, RoleKey, claims.Role)
		ctx = context.WithValue(ctx, SessionIDKey, claims.SessionID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetPatientIDFromContext extracts the session patient ID from context
func GetPatientIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(PatientIDKey).(int64)
	return id, ok
}

func GetEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(EmailKey).(string)
	return email, ok
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}

func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(SessionIDKey).(string)
	return sessionID, ok
}
