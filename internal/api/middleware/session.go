package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/errors"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/models"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/utils/response"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	SessionCookieName = "parts_cart_session"
	SessionHeader     = "X-Cart-Session"
)

type contextKey uuid.UUID

var SessionContextKey = contextKey(uuid.New())

// SessionMiddleware gives every visitor an anonymous cart session carried in
// a signed token. Missing, invalid or expired tokens start a new session.
type SessionMiddleware struct {
	jwtKey       []byte
	ttl          time.Duration
	secureCookie bool
	now          func() time.Time
}

func NewSessionMiddleware(jwtKey []byte, ttl time.Duration, secureCookie bool) *SessionMiddleware {
	return &SessionMiddleware{jwtKey: jwtKey, ttl: ttl, secureCookie: secureCookie, now: time.Now}
}

func (m *SessionMiddleware) Session(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		// the header wins over the cookie for non-browser clients
		tokenString := r.Header.Get(SessionHeader)
		if tokenString == "" {
			if cookie, err := r.Cookie(SessionCookieName); err == nil {
				tokenString = cookie.Value
			}
		}

		var claims *models.SessionClaims

		if tokenString != "" {
			parsed, err := m.ParseToken(tokenString)
			if err != nil {
				logger.Warn("Discarding invalid cart session token", slog.String("error", err.Error()))
			} else {
				claims = parsed
			}
		}

		if claims == nil {
			issued, token, err := m.IssueToken(uuid.NewString())
			if err != nil {
				logger.Error("Failed to issue cart session", slog.Any("error", err))
				response.Error(w, errors.InternalError("Failed to start session").WithError(err))
				return
			}

			claims = issued
			tokenString = token

			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName,
				Value:    token,
				Path:     "/",
				Expires:  claims.ExpiresAt.Time,
				HttpOnly: true,
				Secure:   m.secureCookie,
				SameSite: http.SameSiteLaxMode,
			})

			logger.Info("Cart session started", slog.String("sessionID", claims.SessionID))
		}

		w.Header().Set(SessionHeader, tokenString)

		ctx := context.WithValue(r.Context(), SessionContextKey, claims)

		requestScopedLogger := logger.With(slog.String("sessionID", claims.SessionID))
		ctx = context.WithValue(ctx, LoggerKey, requestScopedLogger)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// IssueToken signs a session token for sessionID.
func (m *SessionMiddleware) IssueToken(sessionID string) (*models.SessionClaims, string, error) {

	now := m.now()

	claims := &models.SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.jwtKey)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return claims, token, nil
}

func (m *SessionMiddleware) ParseToken(tokenString string) (*models.SessionClaims, error) {

	claims := &models.SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.jwtKey, nil
	}, jwt.WithTimeFunc(m.now))

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}

	if claims.SessionID == "" {
		return nil, fmt.Errorf("session token has no session id")
	}

	return claims, nil
}

// SessionIDFromContext returns the session attached by Session.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	claims, ok := ctx.Value(SessionContextKey).(*models.SessionClaims)
	if !ok || claims.SessionID == "" {
		return "", false
	}

	return claims.SessionID, true
}
