package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/equipecerta/credenciamento/internal/staff"
	"github.com/equipecerta/credenciamento/internal/util"
)

type createStaffRequest struct {
	TeamID     int64   `json:"team_id"`
	PositionID int64   `json:"position_id"`
	Name       *string `json:"name"`
	CPF        *string `json:"cpf"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	CarPlate   *string `json:"car_plate"`
}

type updateStaffRequest struct {
	PositionID *int64  `json:"position_id"`
	Name       *string `json:"name"`
	CPF        *string `json:"cpf"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	CarPlate   *string `json:"car_plate"`
}

func (h *Handler) handleListStaff(w http.ResponseWriter, r *http.Request) {
	teamID, ok := queryID(r, "team_id")
	if !ok {
		WriteError(w, http.StatusBadRequest, "team_id inválido")
		return
	}
	positionID, ok := queryID(r, "position_id")
	if !ok {
		WriteError(w, http.StatusBadRequest, "position_id inválido")
		return
	}

	members, err := h.staff.List(r.Context(), actorFrom(r), teamID, positionID)
	if err != nil {
		h.staffError(w, "staff.list", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"staff": members, "total": len(members)})
}

func (h *Handler) handleCreateStaff(w http.ResponseWriter, r *http.Request) {
	var req createStaffRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	if req.TeamID <= 0 {
		WriteError(w, http.StatusBadRequest, "Team ID deve ser um número positivo")
		return
	}
	if req.PositionID <= 0 {
		WriteError(w, http.StatusBadRequest, "Position ID deve ser um número positivo")
		return
	}
	if req.Email != nil && strings.TrimSpace(*req.Email) != "" {
		if err := util.ValidateEmail(*req.Email); err != nil {
			WriteError(w, http.StatusBadRequest, "Email inválido")
			return
		}
	}

	created, err := h.staff.Create(r.Context(), actorFrom(r), staff.CreateInput{
		TeamID:     req.TeamID,
		PositionID: req.PositionID,
		Name:       req.Name,
		CPF:        req.CPF,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		CarPlate:   req.CarPlate,
	})
	if err != nil {
		h.staffError(w, "staff.create", err)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "Staff criado com sucesso",
		"staff":   created,
	})
}

func (h *Handler) handleGetStaff(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	found, err := h.staff.Get(r.Context(), actorFrom(r), id)
	if err != nil {
		h.staffError(w, "staff.get", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"staff": found})
}

func (h *Handler) handleUpdateStaff(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	var req updateStaffRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	if req.PositionID != nil && *req.PositionID <= 0 {
		WriteError(w, http.StatusBadRequest, "Position ID deve ser um número positivo")
		return
	}
	if req.Email != nil && strings.TrimSpace(*req.Email) != "" {
		if err := util.ValidateEmail(*req.Email); err != nil {
			WriteError(w, http.StatusBadRequest, "Email inválido")
			return
		}
	}

	updated, err := h.staff.Update(r.Context(), actorFrom(r), id, staff.Patch{
		PositionID: req.PositionID,
		Name:       req.Name,
		CPF:        req.CPF,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		CarPlate:   req.CarPlate,
	})
	if err != nil {
		h.staffError(w, "staff.update", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Staff atualizado com sucesso",
		"staff":   updated,
	})
}

func (h *Handler) handleDeleteStaff(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	if err := h.staff.Delete(r.Context(), actorFrom(r), id); err != nil {
		h.staffError(w, "staff.delete", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Staff deletado com sucesso",
		"id":      id,
	})
}

// queryID lê um parâmetro numérico opcional da query string.
func queryID(r *http.Request, name string) (*int64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, false
	}
	return &id, true
}

func (h *Handler) staffError(w http.ResponseWriter, label string, err error) {
	var missing staff.MissingFieldError
	switch {
	case errors.As(err, &missing):
		WriteError(w, http.StatusBadRequest, missing.Error())
	case errors.Is(err, staff.ErrTeamRequired):
		WriteError(w, http.StatusBadRequest, "team_id é obrigatório")
	case errors.Is(err, staff.ErrTeamMismatch):
		WriteError(w, http.StatusForbidden, "Time ID não corresponde ao team code")
	case errors.Is(err, staff.ErrTeamNotFound):
		WriteError(w, http.StatusNotFound, "Time não encontrado")
	case errors.Is(err, staff.ErrPositionNotFound):
		WriteError(w, http.StatusNotFound, "Posição não encontrada ou não pertence ao time")
	case errors.Is(err, staff.ErrNotFound):
		WriteError(w, http.StatusNotFound, "Staff não encontrado")
	case errors.Is(err, staff.ErrNothingToUpdate):
		WriteError(w, http.StatusBadRequest, "Nenhum campo para atualizar")
	default:
		writeInternalError(w, label, err)
	}
}
