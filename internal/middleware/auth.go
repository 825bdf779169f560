package middleware

import (
	"errors"
	"net/http"
	"strings"

	"taskboard/internal/auth"
	"taskboard/internal/logger"

	"go.uber.org/zap"
)

type TokenValidator interface {
	Validate(token string) (auth.Identity, error)
}

// Authenticate проверяет bearer-токен и кладёт личность в контекст запроса.
func Authenticate(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				unauthorized(w, r, auth.ErrMissingToken)
				return
			}

			id, err := tokens.Validate(token)
			if err != nil {
				unauthorized(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

// RequireAdmin пропускает только администраторов. Ставится после Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.FromContext(r.Context())
		if !ok {
			unauthorized(w, r, auth.ErrMissingToken)
			return
		}
		if auth.RequireAdmin(id) != nil {
			logger.Warn("HTTP: Нет прав администратора",
				zap.String("user_id", id.UserID.String()),
				zap.String("path", r.URL.Path),
				zap.String("request_id", GetRequestID(r.Context())))

			writeJSON(w, http.StatusForbidden, map[string]any{
				"success": false,
				"message": "Admin access required",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func unauthorized(w http.ResponseWriter, r *http.Request, err error) {
	message := "Invalid token"
	switch {
	case errors.Is(err, auth.ErrMissingToken):
		message = "Access token required"
	case errors.Is(err, auth.ErrExpiredToken):
		message = "Token expired"
	}

	logger.Warn("HTTP: Отказ в аутентификации",
		zap.String("reason", err.Error()),
		zap.String("path", r.URL.Path),
		zap.String("client_ip", r.RemoteAddr),
		zap.String("request_id", GetRequestID(r.Context())))

	writeJSON(w, http.StatusUnauthorized, map[string]any{
		"success": false,
		"message": message,
	})
}
