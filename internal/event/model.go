package event

import (
	"errors"
	"time"
)

var (
	// ErrNotFound cobre tanto evento inexistente quanto evento de outro admin.
	ErrNotFound = errors.New("evento não encontrado")
	// ErrNothingToUpdate indica patch sem nenhum campo.
	ErrNothingToUpdate = errors.New("nenhum campo para atualizar")
)

// Event representa um evento pertencente a um admin.
type Event struct {
	ID        int64      `json:"id"`
	AdminID   int64      `json:"admin_id"`
	Name      string     `json:"name"`
	Location  *string    `json:"location"`
	EventDate *time.Time `json:"event_date"`
	CreatedAt time.Time  `json:"created_at"`
}

// CreateInput contém os campos de criação de evento.
type CreateInput struct {
	Name      string
	Location  *string
	EventDate *time.Time
}

// Patch descreve uma atualização parcial. Ponteiro nil significa
// "não alterar"; SetEventDate distingue limpar de omitir a data.
type Patch struct {
	Name         *string
	Location     *string
	EventDate    *time.Time
	SetEventDate bool
}

// Empty informa se o patch não altera nada.
func (p Patch) Empty() bool {
	return p.Name == nil && p.Location == nil && !p.SetEventDate
}
