package auth

import (
	"github.com/alexedwards/argon2id"
)

var params = &argon2id.Params{
	Memory:      64 * 1024, // 64 MB
	Iterations:  3,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

// HashPassword gera um hash Argon2id (os parâmetros ficam embutidos no hash).
func HashPassword(password string) (string, error) {
	return argon2id.CreateHash(password, params)
}

// VerifyPassword compara a senha com o hash Argon2id.
func VerifyPassword(password, encodedHash string) (bool, error) {
	return argon2id.ComparePasswordAndHash(password, encodedHash)
}
