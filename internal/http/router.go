package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/equipecerta/credenciamento/internal/admin"
	"github.com/equipecerta/credenciamento/internal/auth"
	"github.com/equipecerta/credenciamento/internal/config"
	"github.com/equipecerta/credenciamento/internal/event"
	"github.com/equipecerta/credenciamento/internal/field"
	httpmiddleware "github.com/equipecerta/credenciamento/internal/http/middleware"
	"github.com/equipecerta/credenciamento/internal/position"
	"github.com/equipecerta/credenciamento/internal/staff"
	"github.com/equipecerta/credenciamento/internal/team"
)

// codeResolver adapta o repositório de times ao contrato do middleware
// de identidade.
type codeResolver struct {
	teams *team.Repository
}

func (c codeResolver) ResolveTeamCode(ctx context.Context, code string) (int64, error) {
	id, err := c.teams.ResolveCode(ctx, code)
	if errors.Is(err, team.ErrNotFound) {
		return 0, httpmiddleware.ErrUnknownCode
	}
	return id, err
}

// NewRouter monta serviços e rotas e devolve o roteador pronto.
func NewRouter(cfg *config.Config, pool *pgxpool.Pool, redisClient *redis.Client) http.Handler {
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTTL)

	adminRepo := admin.NewRepository(pool)
	adminService := admin.NewService(adminRepo, redisClient, jwtManager, cfg.JWTRefreshTTL)

	eventRepo := event.NewRepository(pool)
	eventService := event.NewService(eventRepo)

	teamRepo := team.NewRepository(pool)
	teamService := team.NewService(teamRepo)

	fieldRepo := field.NewRepository(pool)
	fieldService := field.NewService(fieldRepo, redisClient)

	positionRepo := position.NewRepository(pool)
	positionService := position.NewService(positionRepo)

	staffRepo := staff.NewRepository(pool)
	staffService := staff.NewService(staffRepo)

	h := NewHandler(adminService, eventService, teamService, fieldService, positionService, staffService)

	publicLimiter := httpmiddleware.NewRateLimiter(cfg.RateLimitPublic.RequestsPerSecond, cfg.RateLimitPublic.Burst)
	authLimiter := httpmiddleware.NewRateLimiter(cfg.RateLimitAuth.RequestsPerSecond, cfg.RateLimitAuth.Burst)

	return h.Routes(cfg, jwtManager, codeResolver{teams: teamRepo}, publicLimiter, authLimiter)
}

// Routes constrói a árvore de rotas sobre os serviços já montados.
// Separado de NewRouter para os testes injetarem stubs.
func (h *Handler) Routes(cfg *config.Config, jwtManager *auth.JWTManager, codes httpmiddleware.TeamCodeResolver,
	publicLimiter, authLimiter *httpmiddleware.RateLimiter) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(httpmiddleware.Logging)
	r.Use(httpmiddleware.Recover)
	r.Use(httpmiddleware.CORS(cfg.AllowOrigins))
	r.Use(httpmiddleware.ResolveIdentity(jwtManager, codes))

	r.Group(func(public chi.Router) {
		public.Use(httpmiddleware.IPRateLimit(publicLimiter))

		public.Get("/fields", h.handleListFields)
		public.Get("/fields/{id}", h.handleGetField)
		public.Get("/teams/code/{code}", h.handleLookupTeam)
	})

	r.Route("/admin", func(ar chi.Router) {
		ar.Group(func(open chi.Router) {
			open.Use(httpmiddleware.IPRateLimit(authLimiter))

			open.Post("/register", h.handleRegister)
			open.Post("/login", h.handleLogin)
			open.Post("/refresh", h.handleRefresh)
			open.Post("/logout", h.handleLogout)
		})

		ar.Group(func(priv chi.Router) {
			priv.Use(httpmiddleware.RequireAdmin)

			priv.Get("/me", h.handleMe)
		})
	})

	r.Group(func(priv chi.Router) {
		priv.Use(httpmiddleware.RequireAdmin)

		priv.Route("/events", func(er chi.Router) {
			er.Get("/", h.handleListEvents)
			er.Post("/", h.handleCreateEvent)
			er.Get("/{id}", h.handleGetEvent)
			er.Put("/{id}", h.handleUpdateEvent)
			er.Delete("/{id}", h.handleDeleteEvent)
		})

		priv.Route("/teams", func(tr chi.Router) {
			tr.Get("/", h.handleListTeams)
			tr.Post("/", h.handleCreateTeam)
			tr.Get("/{id}", h.handleGetTeam)
			tr.Put("/{id}", h.handleUpdateTeam)
			tr.Delete("/{id}", h.handleDeleteTeam)
		})

		priv.Post("/fields", h.handleCreateField)
		priv.Put("/fields/{id}", h.handleUpdateField)
		priv.Delete("/fields/{id}", h.handleDeleteField)

		priv.Route("/positions", func(pr chi.Router) {
			pr.Get("/", h.handleListPositions)
			pr.Post("/", h.handleCreatePosition)
			pr.Get("/{id}", h.handleGetPosition)
			pr.Put("/{id}", h.handleUpdatePosition)
			pr.Delete("/{id}", h.handleDeletePosition)
		})
	})

	r.Route("/staff", func(sr chi.Router) {
		sr.Use(httpmiddleware.RequireIdentity)

		sr.Get("/", h.handleListStaff)
		sr.Post("/", h.handleCreateStaff)
		sr.Get("/{id}", h.handleGetStaff)
		sr.Put("/{id}", h.handleUpdateStaff)
		sr.Delete("/{id}", h.handleDeleteStaff)
	})

	return r
}
