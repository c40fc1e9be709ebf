// Package middleware содержит HTTP middleware пекарни.
package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const sessionIDKey contextKey = "sessionID"

const (
	// SessionCookieName — имя cookie с идентификатором сессии.
	SessionCookieName = "sessionId"
	sessionCookieTTL  = 30 * 24 * time.Hour
)

// SessionMiddleware выдаёт и проверяет подписанный идентификатор сессии посетителя.
type SessionMiddleware struct {
	secretKey []byte
}

// NewSessionMiddleware создаёт SessionMiddleware с указанным секретным ключом.
// Пустой ключ заменяется случайным.
func NewSessionMiddleware(secret string) *SessionMiddleware {
	key := []byte(secret)
	if len(key) == 0 {
		randomKey := make([]byte, 32)
		if _, err := rand.Read(randomKey); err == nil {
			key = randomKey
		} else {
			key = []byte("default-secret-key")
		}
	}

	return &SessionMiddleware{
		secretKey: key,
	}
}

// Middleware находит сессию по cookie или создаёт новую и добавляет её идентификатор в контекст запроса.
func (s *SessionMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := "", false
		if cookie, err := r.Cookie(SessionCookieName); err == nil {
			sessionID, ok = s.parseCookie(cookie.Value)
		}

		if !ok {
			sessionID = uuid.NewString()
			s.SetSessionCookie(w, sessionID)
		}

		next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), sessionID)))
	})
}

// SetSessionCookie устанавливает cookie с подписанным идентификатором сессии.
func (s *SessionMiddleware) SetSessionCookie(w http.ResponseWriter, sessionID string) {
	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID + "." + s.sign(sessionID),
		Path:     "/",
		Expires:  time.Now().Add(sessionCookieTTL),
		MaxAge:   int(sessionCookieTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	http.SetCookie(w, cookie)
}

func (s *SessionMiddleware) sign(sessionID string) string {
	mac := hmac.New(sha256.New, s.secretKey)
	mac.Write([]byte(sessionID))
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *SessionMiddleware) parseCookie(cookieValue string) (string, bool) {
	sessionID, signature, found := strings.Cut(cookieValue, ".")
	if !found {
		return "", false
	}

	if !hmac.Equal([]byte(signature), []byte(s.sign(sessionID))) {
		return "", false
	}

	if _, err := uuid.Parse(sessionID); err != nil {
		return "", false
	}

	return sessionID, true
}

// GetSessionIDFromContext извлекает идентификатор сессии из контекста запроса.
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey).(string)
	return id, ok
}

// WithSessionID возвращает контекст с идентификатором сессии.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}
