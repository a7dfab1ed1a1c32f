package team

import (
	"errors"
	"time"
)

var (
	// ErrNotFound cobre time inexistente ou de outro admin.
	ErrNotFound = errors.New("time não encontrado")
	// ErrEventNotFound cobre evento inexistente ou de outro admin.
	ErrEventNotFound = errors.New("evento não encontrado")
	// ErrNothingToUpdate indica patch sem nenhum campo.
	ErrNothingToUpdate = errors.New("nenhum campo para atualizar")
	// ErrCodeTaken indica colisão do código gerado; o serviço tenta de novo.
	ErrCodeTaken = errors.New("team code já utilizado")
)

// Team representa uma equipe dentro de um evento. TeamCode é o segredo
// de autorização dos líderes de equipe.
type Team struct {
	ID               int64     `json:"id"`
	EventID          int64     `json:"event_id"`
	Name             string    `json:"name"`
	ResponsibleName  *string   `json:"responsible_name"`
	ResponsibleEmail *string   `json:"responsible_email"`
	TeamCode         string    `json:"team_code"`
	CreatedAt        time.Time `json:"created_at"`
}

// PublicTeam é a projeção exposta na consulta pública por código:
// sem contatos e sem eco do próprio código.
type PublicTeam struct {
	ID      int64  `json:"id"`
	EventID int64  `json:"event_id"`
	Name    string `json:"name"`
}

// CreateInput contém os campos de criação de time.
type CreateInput struct {
	EventID          int64
	Name             string
	ResponsibleName  *string
	ResponsibleEmail *string
}

// Patch descreve atualização parcial; team_code e event_id são imutáveis.
type Patch struct {
	Name             *string
	ResponsibleName  *string
	ResponsibleEmail *string
}

// Empty informa se o patch não altera nada.
func (p Patch) Empty() bool {
	return p.Name == nil && p.ResponsibleName == nil && p.ResponsibleEmail == nil
}
