package admin

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/equipecerta/credenciamento/internal/auth"
)

// AccountRepository isola as consultas usadas pelo serviço.
type AccountRepository interface {
	Create(ctx context.Context, name, email, passwordHash string) (Admin, error)
	GetByEmail(ctx context.Context, email string) (Admin, string, error)
	GetByID(ctx context.Context, id int64) (Admin, error)
}

type redisCommander interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Service concentra registro, login e sessões de admin.
type Service struct {
	repo       AccountRepository
	sessions   redisCommander
	jwt        *auth.JWTManager
	refreshTTL time.Duration
}

func NewService(repo AccountRepository, sessions redisCommander, jwtManager *auth.JWTManager, refreshTTL time.Duration) *Service {
	return &Service{repo: repo, sessions: sessions, jwt: jwtManager, refreshTTL: refreshTTL}
}

// Register cria a conta e já emite tokens, como o login.
func (s *Service) Register(ctx context.Context, input RegisterInput) (Admin, TokenPair, error) {
	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return Admin{}, TokenPair{}, err
	}

	created, err := s.repo.Create(ctx, strings.TrimSpace(input.Name), strings.ToLower(strings.TrimSpace(input.Email)), hash)
	if err != nil {
		return Admin{}, TokenPair{}, err
	}

	pair, err := s.issueTokens(ctx, created)
	if err != nil {
		return Admin{}, TokenPair{}, err
	}

	return created, pair, nil
}

// Login verifica credenciais e emite novo par de tokens.
func (s *Service) Login(ctx context.Context, email, password string) (Admin, TokenPair, error) {
	account, hash, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Admin{}, TokenPair{}, ErrInvalidCredentials
		}
		return Admin{}, TokenPair{}, err
	}

	ok, err := auth.VerifyPassword(password, hash)
	if err != nil {
		return Admin{}, TokenPair{}, err
	}
	if !ok {
		return Admin{}, TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, account)
	if err != nil {
		return Admin{}, TokenPair{}, err
	}

	return account, pair, nil
}

// Refresh rotaciona a sessão: invalida o refresh atual e emite novo par.
func (s *Service) Refresh(ctx context.Context, rawRefresh string) (TokenPair, error) {
	key := auth.RefreshKey(auth.HashRefreshToken(rawRefresh))

	stored, err := s.sessions.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return TokenPair{}, auth.ErrInvalidRefresh
		}
		return TokenPair{}, err
	}

	adminID, err := strconv.ParseInt(stored, 10, 64)
	if err != nil {
		return TokenPair{}, auth.ErrInvalidRefresh
	}

	account, err := s.repo.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return TokenPair{}, auth.ErrInvalidRefresh
		}
		return TokenPair{}, err
	}

	if err := s.sessions.Del(ctx, key).Err(); err != nil {
		return TokenPair{}, err
	}

	return s.issueTokens(ctx, account)
}

// Logout revoga o refresh token informado.
func (s *Service) Logout(ctx context.Context, rawRefresh string) error {
	key := auth.RefreshKey(auth.HashRefreshToken(rawRefresh))
	return s.sessions.Del(ctx, key).Err()
}

// Me devolve o perfil do admin autenticado.
func (s *Service) Me(ctx context.Context, adminID int64) (Admin, error) {
	return s.repo.GetByID(ctx, adminID)
}

func (s *Service) issueTokens(ctx context.Context, account Admin) (TokenPair, error) {
	access, err := s.jwt.GenerateAccessToken(account.ID, account.Email)
	if err != nil {
		return TokenPair{}, err
	}

	raw, hashed, err := auth.GenerateRefreshToken()
	if err != nil {
		return TokenPair{}, err
	}

	key := auth.RefreshKey(hashed)
	if err := s.sessions.Set(ctx, key, strconv.FormatInt(account.ID, 10), s.refreshTTL).Err(); err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: access, RefreshToken: raw}, nil
}
