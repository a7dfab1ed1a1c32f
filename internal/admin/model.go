package admin

import (
	"errors"
	"time"
)

var (
	// ErrEmailExists indica tentativa de registro com e-mail já cadastrado.
	ErrEmailExists = errors.New("email já cadastrado")
	// ErrInvalidCredentials indica falha na autenticação.
	ErrInvalidCredentials = errors.New("credenciais inválidas")
	// ErrNotFound indica admin inexistente.
	ErrNotFound = errors.New("admin não encontrado")
)

// Admin representa o dono de eventos na plataforma.
type Admin struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterInput contém os campos necessários para criar um admin.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// TokenPair agrupa o token de acesso e o refresh token emitidos juntos.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
