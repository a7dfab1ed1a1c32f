package util

import (
	"errors"
	"net/mail"
	"regexp"
	"strings"
)

var fieldKeyPattern = regexp.MustCompile(`^[a-z_]+$`)

// ValidateEmail retorna erro para e-mails inválidos.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("email obrigatório")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errors.New("Email inválido")
	}
	return nil
}

// ValidatePassword verifica requisitos mínimos de senha.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return errors.New("Senha deve ter no mínimo 6 caracteres")
	}
	return nil
}

// RequireMinLen garante string com tamanho mínimo após trim.
func RequireMinLen(value string, min int, message string) error {
	if len(strings.TrimSpace(value)) < min {
		return errors.New(message)
	}
	return nil
}

// ValidateFieldKey aceita apenas letras minúsculas e underscore, 2 a 50 chars.
func ValidateFieldKey(key string) error {
	if len(key) < 2 || len(key) > 50 {
		return errors.New("Key deve ter entre 2 e 50 caracteres")
	}
	if !fieldKeyPattern.MatchString(key) {
		return errors.New("Key deve conter apenas letras minúsculas e underscore")
	}
	return nil
}
