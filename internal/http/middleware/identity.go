package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/equipecerta/credenciamento/internal/auth"
)

type contextKey string

const contextKeyIdentity contextKey = "identity"

// Kind distingue as duas credenciais aceitas no header Authorization.
type Kind int

const (
	// KindAdmin identifica um admin autenticado via JWT.
	KindAdmin Kind = iota + 1
	// KindTeamLeader identifica um líder de equipe autenticado via team_code.
	KindTeamLeader
)

// Identity é o resultado polimórfico da resolução de credenciais.
type Identity struct {
	Kind    Kind
	AdminID int64
	Email   string
	TeamID  int64
}

// ErrUnknownCode indica que o bearer não corresponde a nenhum team_code.
var ErrUnknownCode = errors.New("team code desconhecido")

// TeamCodeResolver resolve um team_code para o id do time correspondente.
type TeamCodeResolver interface {
	ResolveTeamCode(ctx context.Context, code string) (int64, error)
}

// ResolveIdentity tenta JWT de admin primeiro e, na falha, team_code.
// A prioridade garante que a identidade de admin vence quando ambas as
// credenciais poderiam casar. Sem credencial válida a requisição segue
// anônima; os guards decidem o 401.
func ResolveIdentity(jwtManager *auth.JWTManager, teams TeamCodeResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			if claims, err := jwtManager.ParseAndValidate(token); err == nil {
				if adminID, err := claims.AdminID(); err == nil {
					ident := Identity{Kind: KindAdmin, AdminID: adminID, Email: claims.Email}
					next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), ident)))
					return
				}
			}

			teamID, err := teams.ResolveTeamCode(r.Context(), token)
			if err != nil {
				if !errors.Is(err, ErrUnknownCode) {
					log.Error().Err(err).Msg("falha ao resolver team_code")
				}
				next.ServeHTTP(w, r)
				return
			}

			ident := Identity{Kind: KindTeamLeader, TeamID: teamID}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), ident)))
		})
	}
}

// RequireAdmin bloqueia requisições sem identidade de admin.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, ok := IdentityFrom(r.Context())
		if !ok || ident.Kind != KindAdmin {
			if bearerToken(r) == "" {
				writeAuthError(w, "Token não fornecido")
				return
			}
			writeAuthError(w, "Token inválido ou expirado")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireIdentity aceita admin ou líder de equipe.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFrom(r.Context()); !ok {
			writeAuthError(w, "Não autorizado")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithIdentity injeta a identidade resolvida no contexto.
func WithIdentity(ctx context.Context, ident Identity) context.Context {
	return context.WithValue(ctx, contextKeyIdentity, ident)
}

// IdentityFrom recupera a identidade do contexto, se houver.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(contextKeyIdentity).(Identity)
	return ident, ok
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
