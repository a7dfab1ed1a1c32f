package field

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound indica campo inexistente.
	ErrNotFound = errors.New("campo não encontrado")
	// ErrKeyExists indica key duplicada.
	ErrKeyExists = errors.New("key já existe")
	// ErrNothingToUpdate indica patch sem nenhum campo.
	ErrNothingToUpdate = errors.New("nenhum campo para atualizar")
)

// InUseError bloqueia a exclusão de um campo referenciado por cargos.
type InUseError struct {
	Count int
}

func (e InUseError) Error() string {
	return fmt.Sprintf("Campo está sendo usado em %d cargo(s). Remova as referências antes de deletar.", e.Count)
}

// FieldTypes enumera os tipos aceitos.
var FieldTypes = []string{"text", "email", "number", "phone"}

// ValidType informa se o tipo está na enumeração.
func ValidType(t string) bool {
	for _, v := range FieldTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Field é a definição global de um campo de formulário, reutilizável
// entre cargos de qualquer time.
type Field struct {
	ID        int64     `json:"id"`
	Key       string    `json:"key"`
	Label     string    `json:"label"`
	FieldType string    `json:"field_type"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateInput contém os campos de criação.
type CreateInput struct {
	Key       string
	Label     string
	FieldType string
}

// Patch descreve atualização parcial; a key é imutável para preservar
// a integridade das validações já configuradas.
type Patch struct {
	Label     *string
	FieldType *string
}

// Empty informa se o patch não altera nada.
func (p Patch) Empty() bool {
	return p.Label == nil && p.FieldType == nil
}
