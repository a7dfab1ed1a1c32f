package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/equipecerta/credenciamento/internal/admin"
	"github.com/equipecerta/credenciamento/internal/auth"
	"github.com/equipecerta/credenciamento/internal/util"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	if err := util.RequireMinLen(req.Name, 2, "Nome deve ter no mínimo 2 caracteres"); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := util.ValidateEmail(req.Email); err != nil {
		WriteError(w, http.StatusBadRequest, "Email inválido")
		return
	}
	if err := util.ValidatePassword(req.Password); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	account, pair, err := h.admins.Register(r.Context(), admin.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, admin.ErrEmailExists) {
			WriteError(w, http.StatusConflict, "Email já cadastrado")
			return
		}
		writeInternalError(w, "admin.register", err)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]any{
		"message":       "Admin registrado com sucesso",
		"admin":         account,
		"token":         pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	if err := util.ValidateEmail(req.Email); err != nil {
		WriteError(w, http.StatusBadRequest, "Email inválido")
		return
	}
	if strings.TrimSpace(req.Password) == "" {
		WriteError(w, http.StatusBadRequest, "Senha é obrigatória")
		return
	}

	account, pair, err := h.admins.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, admin.ErrInvalidCredentials) {
			WriteError(w, http.StatusUnauthorized, "Credenciais inválidas")
			return
		}
		writeInternalError(w, "admin.login", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"message":       "Login realizado com sucesso",
		"admin":         account,
		"token":         pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	if strings.TrimSpace(req.RefreshToken) == "" {
		WriteError(w, http.StatusBadRequest, "Refresh token é obrigatório")
		return
	}

	pair, err := h.admins.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidRefresh) {
			WriteError(w, http.StatusUnauthorized, "Refresh token inválido ou expirado")
			return
		}
		writeInternalError(w, "admin.refresh", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"token":         pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	if strings.TrimSpace(req.RefreshToken) == "" {
		WriteError(w, http.StatusBadRequest, "Refresh token é obrigatório")
		return
	}

	if err := h.admins.Logout(r.Context(), req.RefreshToken); err != nil {
		writeInternalError(w, "admin.logout", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"message": "Logout realizado com sucesso"})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	account, err := h.admins.Me(r.Context(), adminIDFrom(r))
	if err != nil {
		if errors.Is(err, admin.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Admin não encontrado")
			return
		}
		writeInternalError(w, "admin.me", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"admin": account})
}
