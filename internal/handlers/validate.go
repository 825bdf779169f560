package handlers

import (
	"encoding/json"
	"mime"
	"net/http"

	"taskboard/internal/handlers/dto"
	"taskboard/internal/logger"
	"taskboard/internal/service"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

func checkContentType(r *http.Request, target string) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return false
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == target
}

// decodeRequest читает JSON-тело в req и проверяет его. При ошибке ответ уже записан.
func decodeRequest(w http.ResponseWriter, r *http.Request, req dto.Request) bool {
	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		logger.Warn("HTTP: Ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return false
	}

	if fields := req.Validate(); len(fields) > 0 {
		handleError(w, r, service.NewValidationError(fields...), "validate")
		return false
	}
	return true
}
