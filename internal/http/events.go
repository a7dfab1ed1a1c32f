package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/equipecerta/credenciamento/internal/event"
	"github.com/equipecerta/credenciamento/internal/util"
)

type createEventRequest struct {
	Name      string  `json:"name"`
	Location  *string `json:"location"`
	EventDate *string `json:"event_date"`
}

type updateEventRequest struct {
	Name      *string `json:"name"`
	Location  *string `json:"location"`
	EventDate *string `json:"event_date"`
}

func (h *Handler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.List(r.Context(), adminIDFrom(r))
	if err != nil {
		writeInternalError(w, "events.list", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"events": events, "total": len(events)})
}

func (h *Handler) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	if err := util.RequireMinLen(req.Name, 3, "Nome deve ter no mínimo 3 caracteres"); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	eventDate, _, ok := parseEventDate(req.EventDate)
	if !ok {
		WriteError(w, http.StatusBadRequest, "Data inválida")
		return
	}

	created, err := h.events.Create(r.Context(), adminIDFrom(r), event.CreateInput{
		Name:      req.Name,
		Location:  req.Location,
		EventDate: eventDate,
	})
	if err != nil {
		writeInternalError(w, "events.create", err)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "Evento criado com sucesso",
		"event":   created,
	})
}

func (h *Handler) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	found, err := h.events.Get(r.Context(), id, adminIDFrom(r))
	if err != nil {
		h.eventError(w, "events.get", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"event": found})
}

func (h *Handler) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	var req updateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	if req.Name != nil {
		if err := util.RequireMinLen(*req.Name, 3, "Nome deve ter no mínimo 3 caracteres"); err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	eventDate, setDate, ok := parseEventDate(req.EventDate)
	if !ok {
		WriteError(w, http.StatusBadRequest, "Data inválida")
		return
	}

	updated, err := h.events.Update(r.Context(), id, adminIDFrom(r), event.Patch{
		Name:         req.Name,
		Location:     req.Location,
		EventDate:    eventDate,
		SetEventDate: setDate,
	})
	if err != nil {
		h.eventError(w, "events.update", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Evento atualizado com sucesso",
		"event":   updated,
	})
}

func (h *Handler) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	if err := h.events.Delete(r.Context(), id, adminIDFrom(r)); err != nil {
		h.eventError(w, "events.delete", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Evento deletado com sucesso",
		"id":      id,
	})
}

func (h *Handler) eventError(w http.ResponseWriter, label string, err error) {
	switch {
	case errors.Is(err, event.ErrNotFound):
		WriteError(w, http.StatusNotFound, "Evento não encontrado")
	case errors.Is(err, event.ErrNothingToUpdate):
		WriteError(w, http.StatusBadRequest, "Nenhum campo para atualizar")
	default:
		writeInternalError(w, label, err)
	}
}

// parseEventDate aceita data simples ou RFC 3339; string vazia limpa a
// coluna. O segundo retorno indica presença da chave no corpo.
func parseEventDate(raw *string) (*time.Time, bool, bool) {
	if raw == nil {
		return nil, false, true
	}
	if *raw == "" {
		return nil, true, true
	}

	if t, err := time.Parse("2006-01-02", *raw); err == nil {
		return &t, true, true
	}
	if t, err := time.Parse(time.RFC3339, *raw); err == nil {
		return &t, true, true
	}
	return nil, false, false
}
