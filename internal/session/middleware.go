package session

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/osse101/DreamJournal_Go/internal/logger"
)

// Middleware requires a valid Bearer session on every request
func Middleware(m *Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get(HeaderAuthorization)
			if authHeader == "" {
				reject(w, ErrMsgMissingToken)
				return
			}

			scheme, tokenString, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, BearerScheme) || tokenString == "" {
				reject(w, ErrMsgInvalidFormat)
				return
			}

			claims, err := m.Validate(strings.TrimSpace(tokenString))
			if err != nil {
				logger.FromContext(r.Context()).Debug(LogMsgSessionRejected, "path", r.URL.Path, "error", err)
				if errors.Is(err, ErrExpiredToken) {
					reject(w, ErrMsgExpired)
				} else {
					reject(w, ErrMsgInvalid)
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func reject(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", BearerScheme)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
