package handlers

import (
	"context"
	"net/http"
	"time"

	"taskboard/internal/logger"
)

const healthTimeout = 2 * time.Second

type HealthHandler struct {
	Storage HealthChecker
	Version string
}

func NewHealthHandler(storage HealthChecker, version string) HealthHandler {
	return HealthHandler{Storage: storage, Version: version}
}

func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	payload := []Payload{
		toPayload("service", "taskboard"),
		toPayload("version", h.Version),
		toPayload("timestamp", time.Now().UTC().Format(time.RFC3339)),
	}

	if err := h.Storage.HealthCheck(ctx); err != nil {
		logger.Error("HTTP: Хранилище недоступно", err)
		responseWithJSON(w, http.StatusServiceUnavailable, append(payload,
			toPayload("success", false),
			toPayload("status", "unavailable"),
		)...)
		return
	}

	responseWithJSON(w, http.StatusOK, append(payload,
		toPayload("success", true),
		toPayload("status", "ok"),
	)...)
}
