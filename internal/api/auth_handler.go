package api

import (
	"encoding/json"
	"net/http"
	"time"

	"hosteria/internal/entities"
	apperrors "hosteria/internal/errors"
	"hosteria/internal/service"
)

const refreshCookieName = "refresh_token"

type AuthHandler struct {
	Service *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{Service: svc}
}

func setRefreshCookie(w http.ResponseWriter, token string, maxAge time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/api/auth",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req entities.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperrors.NewValidationError("Cuerpo de la solicitud inválido"))
		return
	}
	resp, refresh, err := h.Service.Login(req.Email, req.Clave)
	if err != nil {
		respondError(w, err)
		return
	}
	setRefreshCookie(w, refresh, 7*24*time.Hour)
	respondJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil {
		respondError(w, apperrors.ErrUnauthorized("Sesión expirada"))
		return
	}
	resp, err := h.Service.Refresh(cookie.Value)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	setRefreshCookie(w, "", -time.Second)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Sesión cerrada"})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req entities.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperrors.NewValidationError("Cuerpo de la solicitud inválido"))
		return
	}
	user, err := h.Service.Register(&req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	user, err := h.Service.Verify(r.URL.Query().Get("token"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}
