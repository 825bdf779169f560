package handlers

import (
	"net/http"
	"time"

	"taskboard/internal/handlers/dto"
	"taskboard/internal/logger"

	"go.uber.org/zap"
)

type AuthHandler struct {
	AuthService AuthService
}

func NewAuthHandler(authService AuthService) AuthHandler {
	return AuthHandler{AuthService: authService}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req dto.RegisterRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	session, err := h.AuthService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		handleError(w, r, err, "register")
		return
	}

	logger.Info("HTTP_OUT: Пользователь зарегистрирован",
		zap.String("user_id", session.User.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseOK(w, http.StatusCreated, "User registered successfully", object{
		"user":  session.User,
		"token": session.Token,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	session, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleError(w, r, err, "login")
		return
	}

	responseOK(w, http.StatusOK, "Login successful", object{
		"user":  session.User,
		"token": session.Token,
	})
}

// Logout ничего не хранит на сервере: клиент просто забывает токен.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if _, ok := caller(w, r); !ok {
		return
	}
	responseOK(w, http.StatusOK, "Logout successful", nil)
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	u, err := h.AuthService.Profile(r.Context(), id)
	if err != nil {
		handleError(w, r, err, "get_profile")
		return
	}
	responseOK(w, http.StatusOK, "", object{"user": u})
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	u, err := h.AuthService.UpdateProfile(r.Context(), id, req.Profile())
	if err != nil {
		handleError(w, r, err, "update_profile")
		return
	}
	responseOK(w, http.StatusOK, "Profile updated successfully", object{"user": u})
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if err := h.AuthService.ChangePassword(r.Context(), id, req.CurrentPassword, req.NewPassword); err != nil {
		handleError(w, r, err, "change_password")
		return
	}
	responseOK(w, http.StatusOK, "Password changed successfully", nil)
}
