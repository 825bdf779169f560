package handlers

import (
	"encoding/json"
	"net/http"

	"taskboard/internal/logger"
)

type Payload struct {
	Key     string
	Payload any
}

func toPayload(key string, pl any) Payload {
	return Payload{Key: key, Payload: pl}
}

func toJSON(storage map[string]any, payload Payload) {
	storage[payload.Key] = payload.Payload
}

func responseWithJSON(w http.ResponseWriter, code int, payload ...Payload) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	storage := make(map[string]any, len(payload))
	for _, pl := range payload {
		toJSON(storage, pl)
	}
	if err := json.NewEncoder(w).Encode(storage); err != nil {
		logger.Error("HTTP: Ошибка записи ответа", err)
	}
}

// responseOK пишет конверт {success: true, message?, data?}.
func responseOK(w http.ResponseWriter, code int, message string, data any) {
	payload := []Payload{toPayload("success", true)}
	if message != "" {
		payload = append(payload, toPayload("message", message))
	}
	if data != nil {
		payload = append(payload, toPayload("data", data))
	}
	responseWithJSON(w, code, payload...)
}

func responseWithError(w http.ResponseWriter, code int, message string, extra ...Payload) {
	payload := append([]Payload{
		toPayload("success", false),
		toPayload("message", message),
	}, extra...)
	responseWithJSON(w, code, payload...)
}

// Обёртки для поля data.
type object map[string]any
