package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/equipecerta/credenciamento/internal/position"
)

type createPositionRequest struct {
	TeamID         int64                         `json:"team_id"`
	Name           string                        `json:"name"`
	RequiredFields []position.RequiredFieldInput `json:"required_fields"`
}

type updatePositionRequest struct {
	Name           *string                        `json:"name"`
	RequiredFields *[]position.RequiredFieldInput `json:"required_fields"`
}

func (h *Handler) handleListPositions(w http.ResponseWriter, r *http.Request) {
	rawTeam := r.URL.Query().Get("team_id")
	if rawTeam == "" {
		WriteError(w, http.StatusBadRequest, "team_id é obrigatório")
		return
	}
	teamID, err := strconv.ParseInt(rawTeam, 10, 64)
	if err != nil || teamID <= 0 {
		WriteError(w, http.StatusBadRequest, "team_id é obrigatório")
		return
	}

	positions, err := h.positions.List(r.Context(), teamID, adminIDFrom(r))
	if err != nil {
		h.positionError(w, "positions.list", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"positions": positions, "total": len(positions)})
}

func (h *Handler) handleCreatePosition(w http.ResponseWriter, r *http.Request) {
	var req createPositionRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	if req.TeamID <= 0 {
		WriteError(w, http.StatusBadRequest, "Team ID deve ser um número positivo")
		return
	}
	if len(req.Name) < 2 {
		WriteError(w, http.StatusBadRequest, "Nome deve ter no mínimo 2 caracteres")
		return
	}

	created, err := h.positions.Create(r.Context(), adminIDFrom(r), position.CreateInput{
		TeamID:         req.TeamID,
		Name:           req.Name,
		RequiredFields: req.RequiredFields,
	})
	if err != nil {
		h.positionError(w, "positions.create", err)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]any{
		"message":  "Cargo criado com sucesso",
		"position": created,
	})
}

func (h *Handler) handleGetPosition(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	found, err := h.positions.Get(r.Context(), id, adminIDFrom(r))
	if err != nil {
		h.positionError(w, "positions.get", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"position": found})
}

func (h *Handler) handleUpdatePosition(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	var req updatePositionRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	if req.Name != nil && len(*req.Name) < 2 {
		WriteError(w, http.StatusBadRequest, "Nome deve ter no mínimo 2 caracteres")
		return
	}

	patch := position.Patch{Name: req.Name}
	if req.RequiredFields != nil {
		patch.RequiredFields = *req.RequiredFields
		patch.SetRequired = true
	}

	updated, err := h.positions.Update(r.Context(), id, adminIDFrom(r), patch)
	if err != nil {
		h.positionError(w, "positions.update", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"message":  "Cargo atualizado com sucesso",
		"position": updated,
	})
}

func (h *Handler) handleDeletePosition(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	if err := h.positions.Delete(r.Context(), id, adminIDFrom(r)); err != nil {
		h.positionError(w, "positions.delete", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Cargo deletado com sucesso",
		"id":      id,
	})
}

func (h *Handler) positionError(w http.ResponseWriter, label string, err error) {
	switch {
	case errors.Is(err, position.ErrTeamNotFound):
		WriteError(w, http.StatusNotFound, "Time não encontrado")
	case errors.Is(err, position.ErrNotFound):
		WriteError(w, http.StatusNotFound, "Cargo não encontrado")
	case errors.Is(err, position.ErrUnknownField):
		WriteError(w, http.StatusBadRequest, "Campo inexistente em required_fields")
	case errors.Is(err, position.ErrNothingToUpdate):
		WriteError(w, http.StatusBadRequest, "Nenhum campo para atualizar")
	default:
		writeInternalError(w, label, err)
	}
}
