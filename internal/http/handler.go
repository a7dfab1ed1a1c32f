package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/equipecerta/credenciamento/internal/admin"
	"github.com/equipecerta/credenciamento/internal/event"
	"github.com/equipecerta/credenciamento/internal/field"
	httpmiddleware "github.com/equipecerta/credenciamento/internal/http/middleware"
	"github.com/equipecerta/credenciamento/internal/position"
	"github.com/equipecerta/credenciamento/internal/staff"
	"github.com/equipecerta/credenciamento/internal/team"
)

// Handler agrega os serviços de domínio expostos pela API.
type Handler struct {
	admins    *admin.Service
	events    *event.Service
	teams     *team.Service
	fields    *field.Service
	positions *position.Service
	staff     *staff.Service
}

func NewHandler(admins *admin.Service, events *event.Service, teams *team.Service,
	fields *field.Service, positions *position.Service, staffSvc *staff.Service) *Handler {
	return &Handler{
		admins:    admins,
		events:    events,
		teams:     teams,
		fields:    fields,
		positions: positions,
		staff:     staffSvc,
	}
}

// urlID extrai o parâmetro {id} como int64.
func urlID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// adminIDFrom pressupõe guard RequireAdmin na rota.
func adminIDFrom(r *http.Request) int64 {
	ident, _ := httpmiddleware.IdentityFrom(r.Context())
	return ident.AdminID
}

// actorFrom converte a identidade resolvida no ator de staff.
func actorFrom(r *http.Request) staff.Actor {
	ident, _ := httpmiddleware.IdentityFrom(r.Context())
	if ident.Kind == httpmiddleware.KindAdmin {
		return staff.Actor{IsAdmin: true, AdminID: ident.AdminID}
	}
	return staff.Actor{TeamID: ident.TeamID}
}
