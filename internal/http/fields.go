package http

import (
	"errors"
	"net/http"

	"github.com/equipecerta/credenciamento/internal/field"
	"github.com/equipecerta/credenciamento/internal/util"
)

type createFieldRequest struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	FieldType string `json:"field_type"`
}

type updateFieldRequest struct {
	Label     *string `json:"label"`
	FieldType *string `json:"field_type"`
}

// handleListFields é público: formulários de autoatendimento consultam
// o catálogo sem credencial.
func (h *Handler) handleListFields(w http.ResponseWriter, r *http.Request) {
	fields, err := h.fields.List(r.Context())
	if err != nil {
		writeInternalError(w, "fields.list", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"fields": fields, "total": len(fields)})
}

func (h *Handler) handleCreateField(w http.ResponseWriter, r *http.Request) {
	var req createFieldRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	if err := util.ValidateFieldKey(req.Key); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Label) < 2 || len(req.Label) > 100 {
		WriteError(w, http.StatusBadRequest, "Label deve ter entre 2 e 100 caracteres")
		return
	}
	if !field.ValidType(req.FieldType) {
		WriteError(w, http.StatusBadRequest, "Tipo deve ser: text, email, number ou phone")
		return
	}

	created, err := h.fields.Create(r.Context(), field.CreateInput{
		Key:       req.Key,
		Label:     req.Label,
		FieldType: req.FieldType,
	})
	if err != nil {
		if errors.Is(err, field.ErrKeyExists) {
			WriteError(w, http.StatusConflict, "Key já existe")
			return
		}
		writeInternalError(w, "fields.create", err)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "Campo criado com sucesso",
		"field":   created,
	})
}

func (h *Handler) handleGetField(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	found, err := h.fields.Get(r.Context(), id)
	if err != nil {
		h.fieldError(w, "fields.get", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"field": found})
}

func (h *Handler) handleUpdateField(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	var req updateFieldRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	if req.Label != nil && (len(*req.Label) < 2 || len(*req.Label) > 100) {
		WriteError(w, http.StatusBadRequest, "Label deve ter entre 2 e 100 caracteres")
		return
	}
	if req.FieldType != nil && !field.ValidType(*req.FieldType) {
		WriteError(w, http.StatusBadRequest, "Tipo deve ser: text, email, number ou phone")
		return
	}

	updated, err := h.fields.Update(r.Context(), id, field.Patch{
		Label:     req.Label,
		FieldType: req.FieldType,
	})
	if err != nil {
		h.fieldError(w, "fields.update", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Campo atualizado com sucesso",
		"field":   updated,
	})
}

func (h *Handler) handleDeleteField(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	if err := h.fields.Delete(r.Context(), id); err != nil {
		h.fieldError(w, "fields.delete", err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Campo deletado com sucesso",
		"id":      id,
	})
}

func (h *Handler) fieldError(w http.ResponseWriter, label string, err error) {
	var inUse field.InUseError
	switch {
	case errors.As(err, &inUse):
		WriteError(w, http.StatusConflict, inUse.Error())
	case errors.Is(err, field.ErrNotFound):
		WriteError(w, http.StatusNotFound, "Campo não encontrado")
	case errors.Is(err, field.ErrNothingToUpdate):
		WriteError(w, http.StatusBadRequest, "Nenhum campo para atualizar")
	default:
		writeInternalError(w, label, err)
	}
}
