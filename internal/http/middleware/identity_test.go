package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/equipecerta/credenciamento/internal/auth"
)

type stubResolver struct {
	codes map[string]int64
}

func (s stubResolver) ResolveTeamCode(_ context.Context, code string) (int64, error) {
	if id, ok := s.codes[code]; ok {
		return id, nil
	}
	return 0, ErrUnknownCode
}

func identityProbe(t *testing.T) (http.HandlerFunc, *Identity, *bool) {
	t.Helper()
	var captured Identity
	var found bool
	return func(w http.ResponseWriter, r *http.Request) {
		captured, found = IdentityFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}, &captured, &found
}

func TestResolveIdentityAdmin(t *testing.T) {
	jwtMgr := auth.NewJWTManager("0123456789abcdef0123456789abcdef", time.Hour)
	token, err := jwtMgr.GenerateAccessToken(7, "alice@x.com")
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	probe, ident, found := identityProbe(t)
	handler := ResolveIdentity(jwtMgr, stubResolver{})(probe)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !*found {
		t.Fatal("expected identity in context")
	}
	if ident.Kind != KindAdmin || ident.AdminID != 7 || ident.Email != "alice@x.com" {
		t.Fatalf("unexpected identity %+v", *ident)
	}
}

func TestResolveIdentityTeamCode(t *testing.T) {
	jwtMgr := auth.NewJWTManager("0123456789abcdef0123456789abcdef", time.Hour)
	resolver := stubResolver{codes: map[string]int64{"ABCDEFGH23": 31}}

	probe, ident, found := identityProbe(t)
	handler := ResolveIdentity(jwtMgr, resolver)(probe)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer ABCDEFGH23")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !*found {
		t.Fatal("expected identity in context")
	}
	if ident.Kind != KindTeamLeader || ident.TeamID != 31 {
		t.Fatalf("unexpected identity %+v", *ident)
	}
}

func TestResolveIdentityUnknownBearer(t *testing.T) {
	jwtMgr := auth.NewJWTManager("0123456789abcdef0123456789abcdef", time.Hour)

	probe, _, found := identityProbe(t)
	handler := ResolveIdentity(jwtMgr, stubResolver{})(probe)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer nada-disso")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if *found {
		t.Fatal("expected anonymous request to pass through without identity")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through got %d", rec.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireAdmin(next)

	t.Run("sem token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 got %d", rec.Code)
		}
	})

	t.Run("token nao resolvido", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer xyz")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 got %d", rec.Code)
		}
	})

	t.Run("lider de equipe barrado", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer ABCDEFGH23")
		req = req.WithContext(WithIdentity(req.Context(), Identity{Kind: KindTeamLeader, TeamID: 3}))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 got %d", rec.Code)
		}
	})

	t.Run("admin passa", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(WithIdentity(req.Context(), Identity{Kind: KindAdmin, AdminID: 1}))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 got %d", rec.Code)
		}
	})
}

func TestRequireIdentity(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireIdentity(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithIdentity(req.Context(), Identity{Kind: KindTeamLeader, TeamID: 9}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}
