package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Recover garante resposta sanitizada em caso de panic.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("panic recuperado")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "Erro interno"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
