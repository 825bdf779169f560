package handlers

import (
	"errors"
	"net/http"
	"sync/atomic"

	"taskboard/internal/auth"
	"taskboard/internal/logger"
	"taskboard/internal/middleware"
	"taskboard/internal/service"

	"go.uber.org/zap"
)

var exposeInternalErrors atomic.Bool

// ExposeInternalErrors включает текст внутренней ошибки в ответах 500.
// Только для режима разработки.
func ExposeInternalErrors(on bool) {
	exposeInternalErrors.Store(on)
}

func handleError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	requestID := middleware.GetRequestID(r.Context())

	var businessErr *service.BusinessError
	if errors.As(err, &businessErr) {
		statusCode := mapBusinessErrorToHTTP(businessErr.Code)

		logger.Warn("HTTP: Бизнес-ошибка",
			zap.String("operation", operation),
			zap.String("error_code", businessErr.Code),
			zap.Int("http_status", statusCode),
			zap.String("request_id", requestID))

		extra := []Payload{toPayload("error", businessErr.Code)}
		for key, detail := range businessErr.Details {
			extra = append(extra, toPayload(key, detail))
		}
		responseWithError(w, statusCode, businessErr.Message, extra...)
		return
	}

	switch {
	case errors.Is(err, auth.ErrForbidden):
		responseWithError(w, http.StatusForbidden, "Access denied")
		return
	case errors.Is(err, auth.ErrMissingToken), errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrExpiredToken):
		responseWithError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	logger.Error("HTTP: Ошибка Service", err,
		zap.String("operation", operation),
		zap.String("request_id", requestID),
		zap.String("client_ip", r.RemoteAddr))

	if exposeInternalErrors.Load() {
		responseWithError(w, http.StatusInternalServerError, "Internal server error", toPayload("error", err.Error()))
		return
	}
	responseWithError(w, http.StatusInternalServerError, "Internal server error")
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case service.CodeTaskNotFound, service.CodeCategoryNotFound, service.CodeUserNotFound:
		return http.StatusNotFound
	case service.CodeInvalidCredentials:
		return http.StatusUnauthorized
	case service.CodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}
