package staff

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound cobre staff inexistente ou fora do escopo do chamador.
	ErrNotFound = errors.New("staff não encontrado")
	// ErrTeamNotFound cobre time inexistente ou de outro admin.
	ErrTeamNotFound = errors.New("time não encontrado")
	// ErrPositionNotFound cobre posição inexistente ou de outro time.
	ErrPositionNotFound = errors.New("posição não encontrada ou não pertence ao time")
	// ErrTeamMismatch indica team_id do corpo diferente do time do código.
	ErrTeamMismatch = errors.New("time id não corresponde ao team code")
	// ErrTeamRequired indica listagem de admin sem team_id.
	ErrTeamRequired = errors.New("team_id é obrigatório")
	// ErrNothingToUpdate indica patch sem nenhum campo.
	ErrNothingToUpdate = errors.New("nenhum campo para atualizar")
)

// MissingFieldError aborta a escrita nomeando o campo exigido ausente.
type MissingFieldError struct {
	Key string
}

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("Campo obrigatório ausente: %s", e.Key)
}

// Staff é uma pessoa credenciada em um time e posição.
type Staff struct {
	ID         int64     `json:"id"`
	TeamID     int64     `json:"team_id"`
	PositionID int64     `json:"position_id"`
	Name       *string   `json:"name"`
	CPF        *string   `json:"cpf"`
	Email      *string   `json:"email"`
	Phone      *string   `json:"phone"`
	Address    *string   `json:"address"`
	CarPlate   *string   `json:"car_plate"`
	CreatedAt  time.Time `json:"created_at"`
}

// fieldValue devolve o valor armazenado sob a key de um campo global.
func (s Staff) fieldValue(key string) *string {
	switch key {
	case "name":
		return s.Name
	case "cpf":
		return s.CPF
	case "email":
		return s.Email
	case "phone":
		return s.Phone
	case "address":
		return s.Address
	case "car_plate":
		return s.CarPlate
	}
	return nil
}

// Actor identifica quem executa a operação: admin (isento da validação
// de campos exigidos) ou líder de equipe restrito ao próprio time.
type Actor struct {
	IsAdmin bool
	AdminID int64
	TeamID  int64
}

// CreateInput contém os campos de criação de staff.
type CreateInput struct {
	TeamID     int64
	PositionID int64
	Name       *string
	CPF        *string
	Email      *string
	Phone      *string
	Address    *string
	CarPlate   *string
}

func (in CreateInput) fieldValue(key string) *string {
	switch key {
	case "name":
		return in.Name
	case "cpf":
		return in.CPF
	case "email":
		return in.Email
	case "phone":
		return in.Phone
	case "address":
		return in.Address
	case "car_plate":
		return in.CarPlate
	}
	return nil
}

// Patch descreve atualização parcial; "" nos contatos vira NULL.
type Patch struct {
	PositionID *int64
	Name       *string
	CPF        *string
	Email      *string
	Phone      *string
	Address    *string
	CarPlate   *string
}

// Empty informa se o patch não altera nada.
func (p Patch) Empty() bool {
	return p.PositionID == nil && p.Name == nil && p.CPF == nil && p.Email == nil &&
		p.Phone == nil && p.Address == nil && p.CarPlate == nil
}

func (p Patch) fieldValue(key string) (*string, bool) {
	switch key {
	case "name":
		return p.Name, p.Name != nil
	case "cpf":
		return p.CPF, p.CPF != nil
	case "email":
		return p.Email, p.Email != nil
	case "phone":
		return p.Phone, p.Phone != nil
	case "address":
		return p.Address, p.Address != nil
	case "car_plate":
		return p.CarPlate, p.CarPlate != nil
	}
	return nil, false
}

// RequiredKey é a exigência de um campo para uma posição.
type RequiredKey struct {
	Key      string
	Required bool
}
