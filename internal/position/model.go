package position

import (
	"errors"
	"time"
)

var (
	// ErrNotFound cobre cargo inexistente ou fora do escopo do admin.
	ErrNotFound = errors.New("cargo não encontrado")
	// ErrTeamNotFound cobre time inexistente ou de outro admin.
	ErrTeamNotFound = errors.New("time não encontrado")
	// ErrNothingToUpdate indica patch sem nenhum campo.
	ErrNothingToUpdate = errors.New("nenhum campo para atualizar")
	// ErrUnknownField indica field_id inexistente na lista de exigências.
	ErrUnknownField = errors.New("field_id inválido")
)

// Position é um cargo de um time, com as exigências de campos anexadas.
type Position struct {
	ID             int64           `json:"id"`
	TeamID         int64           `json:"team_id"`
	Name           string          `json:"name"`
	CreatedAt      time.Time       `json:"created_at"`
	RequiredFields []RequiredField `json:"required_fields"`
}

// RequiredField é a linha da junção cargo×campo com os dados do campo.
type RequiredField struct {
	FieldID    int64  `json:"field_id"`
	FieldKey   string `json:"field_key"`
	FieldLabel string `json:"field_label"`
	FieldType  string `json:"field_type"`
	Required   bool   `json:"required"`
}

// RequiredFieldInput é a forma aceita no corpo de criação/atualização.
type RequiredFieldInput struct {
	FieldID  int64 `json:"field_id"`
	Required bool  `json:"required"`
}

// CreateInput contém os campos de criação de cargo.
type CreateInput struct {
	TeamID         int64
	Name           string
	RequiredFields []RequiredFieldInput
}

// Patch descreve atualização parcial. RequiredFields presente substitui
// o conjunto inteiro da junção (delete-all e reinsere).
type Patch struct {
	Name           *string
	RequiredFields []RequiredFieldInput
	SetRequired    bool
}

// Empty informa se o patch não altera nada.
func (p Patch) Empty() bool {
	return p.Name == nil && !p.SetRequired
}
