package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
)

// WriteJSON escreve o corpo de sucesso como JSON puro.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteError padroniza falhas no formato {"error": mensagem}.
func WriteError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeInternalError loga o erro real e expõe mensagem genérica.
func writeInternalError(w http.ResponseWriter, label string, err error) {
	log.Error().Err(err).Str("handler", label).Msg("erro não classificado")
	WriteError(w, http.StatusInternalServerError, "Erro interno")
}

// decodeJSON lê o corpo da requisição com campos livres preservados.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("corpo vazio")
	}
	return json.NewDecoder(r.Body).Decode(dst)
}
