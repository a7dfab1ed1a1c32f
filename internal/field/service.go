package field

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	listCacheKey = "fields:list"
	listCacheTTL = 60 * time.Second
)

// FieldRepository isola as consultas usadas pelo serviço.
type FieldRepository interface {
	List(ctx context.Context) ([]Field, error)
	Create(ctx context.Context, input CreateInput) (Field, error)
	GetByID(ctx context.Context, id int64) (Field, error)
	Update(ctx context.Context, id int64, patch Patch) (Field, error)
	Delete(ctx context.Context, id int64) error
	CountReferences(ctx context.Context, fieldID int64) (int, error)
}

type redisCommander interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Service aplica as regras de catálogo global de campos. A listagem,
// pública e consultada a cada formulário, passa por cache curto.
type Service struct {
	repo  FieldRepository
	cache redisCommander
}

func NewService(repo FieldRepository, cache redisCommander) *Service {
	return &Service{repo: repo, cache: cache}
}

// List serve do cache quando possível; falhas de cache são ignoradas.
func (s *Service) List(ctx context.Context) ([]Field, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, listCacheKey).Bytes(); err == nil {
			var fields []Field
			if json.Unmarshal(data, &fields) == nil {
				return fields, nil
			}
		}
	}

	fields, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(fields); err == nil {
			_ = s.cache.Set(ctx, listCacheKey, payload, listCacheTTL).Err()
		}
	}

	return fields, nil
}

func (s *Service) Create(ctx context.Context, input CreateInput) (Field, error) {
	created, err := s.repo.Create(ctx, input)
	if err != nil {
		return Field{}, err
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Field, error) {
	return s.repo.GetByID(ctx, id)
}

// Update confere existência antes do patch (404 antes de 400).
func (s *Service) Update(ctx context.Context, id int64, patch Patch) (Field, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return Field{}, err
	}
	if patch.Empty() {
		return Field{}, ErrNothingToUpdate
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return Field{}, err
	}
	s.invalidate(ctx)
	return updated, nil
}

// Delete aplica a trava de referência: campo em uso não sai.
func (s *Service) Delete(ctx context.Context, id int64) error {
	count, err := s.repo.CountReferences(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return InUseError{Count: count}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, listCacheKey).Err()
	}
}
