package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"foodbox-be/internal/user"
	"foodbox-be/internal/utils"
)

type otpRequestBody struct {
	Phone string `json:"phone"`
}

type otpVerifyBody struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

type refreshBody struct {
	RefreshToken string `json:"refreshToken"`
}

type verifyResponse struct {
	User   authUser        `json:"user"`
	Tokens *user.TokenPair `json:"tokens"`
}

type authUser struct {
	ID    string `json:"id"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

func (s *Server) handleRequestOTP(w http.ResponseWriter, r *http.Request) {
	var body otpRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.deps.Users.RequestOTP(r.Context(), body.Phone); err != nil {
		writeAuthError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

func (s *Server) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var body otpVerifyBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	u, tokens, err := s.deps.Users.VerifyOTP(r.Context(), body.Phone, body.Code)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, verifyResponse{
		User:   authUser{ID: u.ID, Phone: u.Phone, Role: string(u.Role)},
		Tokens: tokens,
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var body refreshBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	tokens, err := s.deps.Users.Refresh(r.Context(), body.RefreshToken)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, tokens)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	var body refreshBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.deps.Users.Logout(r.Context(), body.RefreshToken); err != nil {
		utils.WriteJSONError(w, "failed to log out", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrInvalidPhone):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, user.ErrInvalidCode),
		errors.Is(err, user.ErrCodeExpired),
		errors.Is(err, user.ErrInvalidToken):
		utils.WriteJSONError(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, user.ErrTooManyAttempts):
		utils.WriteJSONError(w, err.Error(), http.StatusTooManyRequests)
	default:
		utils.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}
