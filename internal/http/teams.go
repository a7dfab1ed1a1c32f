package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/equipecerta/credenciamento/internal/team"
	"github.com/equipecerta/credenciamento/internal/util"
)

type createTeamRequest struct {
	EventID          int64   `json:"event_id"`
	Name             string  `json:"name"`
	ResponsibleName  *string `json:"responsible_name"`
	ResponsibleEmail *string `json:"responsible_email"`
}

type updateTeamRequest struct {
	Name             *string `json:"name"`
	ResponsibleName  *string `json:"responsible_name"`
	ResponsibleEmail *string `json:"responsible_email"`
}

func (h *Handler) handleListTeams(w http.ResponseWriter, r *http.Request) {
	eventIDStr := r.URL.Query().Get("event_id")
	if eventIDStr == "" {
		WriteError(w, http.StatusBadRequest, "Id do evento é obrigatório")
		return
	}
	eventID, err := strconv.ParseInt(eventIDStr, 10, 64)
	if err != nil || eventID <= 0 {
		WriteError(w, http.StatusBadRequest, "Id do evento é obrigatório")
		return
	}

	teams, err := h.teams.List(r.Context(), eventID, adminIDFrom(r))
	if err != nil {
		h.teamError(w, "teams.list", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"teams": teams, "total": len(teams)})
}

func (h *Handler) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	var req createTeamRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	if req.EventID <= 0 {
		WriteError(w, http.StatusBadRequest, "Event ID deve ser um número positivo")
		return
	}
	if err := util.RequireMinLen(req.Name, 2, "Nome deve ter no mínimo 2 caracteres"); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ResponsibleEmail != nil && strings.TrimSpace(*req.ResponsibleEmail) != "" {
		if err := util.ValidateEmail(*req.ResponsibleEmail); err != nil {
			WriteError(w, http.StatusBadRequest, "Email inválido")
			return
		}
	}

	created, err := h.teams.Create(r.Context(), adminIDFrom(r), team.CreateInput{
		EventID:          req.EventID,
		Name:             req.Name,
		ResponsibleName:  req.ResponsibleName,
		ResponsibleEmail: req.ResponsibleEmail,
	})
	if err != nil {
		h.teamError(w, "teams.create", err)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "Time criado com sucesso",
		"team":    created,
	})
}

func (h *Handler) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	found, err := h.teams.Get(r.Context(), id, adminIDFrom(r))
	if err != nil {
		h.teamError(w, "teams.get", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"team": found})
}

func (h *Handler) handleUpdateTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	var req updateTeamRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	if req.Name != nil {
		if err := util.RequireMinLen(*req.Name, 2, "Nome deve ter no mínimo 2 caracteres"); err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.ResponsibleEmail != nil && strings.TrimSpace(*req.ResponsibleEmail) != "" {
		if err := util.ValidateEmail(*req.ResponsibleEmail); err != nil {
			WriteError(w, http.StatusBadRequest, "Email inválido")
			return
		}
	}

	updated, err := h.teams.Update(r.Context(), id, adminIDFrom(r), team.Patch{
		Name:             req.Name,
		ResponsibleName:  req.ResponsibleName,
		ResponsibleEmail: req.ResponsibleEmail,
	})
	if err != nil {
		h.teamError(w, "teams.update", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Time atualizado com sucesso",
		"team":    updated,
	})
}

func (h *Handler) handleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	if err := h.teams.Delete(r.Context(), id, adminIDFrom(r)); err != nil {
		h.teamError(w, "teams.delete", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Time deletado com sucesso",
		"id":      id,
	})
}

// handleLookupTeam é a consulta pública usada pela página de
// autoatendimento do líder: devolve só a projeção mínima do time.
func (h *Handler) handleLookupTeam(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(chi.URLParam(r, "code"))
	if code == "" {
		WriteError(w, http.StatusBadRequest, "Team code é obrigatório")
		return
	}

	found, err := h.teams.Lookup(r.Context(), code)
	if err != nil {
		h.teamError(w, "teams.lookup", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"team": found})
}

func (h *Handler) teamError(w http.ResponseWriter, label string, err error) {
	switch {
	case errors.Is(err, team.ErrEventNotFound):
		WriteError(w, http.StatusNotFound, "Evento não encontrado")
	case errors.Is(err, team.ErrNotFound):
		WriteError(w, http.StatusNotFound, "Time não encontrado")
	case errors.Is(err, team.ErrNothingToUpdate):
		WriteError(w, http.StatusBadRequest, "Nenhum campo para atualizar")
	default:
		writeInternalError(w, label, err)
	}
}
