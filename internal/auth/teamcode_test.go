package auth

import (
	"strings"
	"testing"
)

func TestGenerateTeamCode(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 50; i++ {
		code, err := GenerateTeamCode()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(code) != teamCodeLength {
			t.Fatalf("expected %d chars got %q", teamCodeLength, code)
		}
		for _, c := range code {
			if !strings.ContainsRune(teamCodeAlphabet, c) {
				t.Fatalf("char %q fora do alfabeto em %q", c, code)
			}
		}
		seen[code] = true
	}

	if len(seen) < 50 {
		t.Fatalf("códigos repetidos em 50 gerações: %d únicos", len(seen))
	}
}

func TestRefreshTokenHashing(t *testing.T) {
	raw, hashed, err := GenerateRefreshToken()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if raw == "" || hashed == "" {
		t.Fatal("expected non-empty token and hash")
	}
	if raw == hashed {
		t.Fatal("hash must differ from raw token")
	}
	if HashRefreshToken(raw) != hashed {
		t.Fatal("hash must be deterministic")
	}
	if !strings.HasPrefix(RefreshKey(hashed), "refresh:admin:") {
		t.Fatalf("unexpected key %q", RefreshKey(hashed))
	}
}
