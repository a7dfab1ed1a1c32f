package auth

import (
	"crypto/rand"
)

// Alfabeto sem caracteres ambíguos (0/O, 1/I).
const teamCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const teamCodeLength = 10

// GenerateTeamCode cria o código de acesso compartilhado de um time.
// O código funciona como segredo de autorização para líderes de equipe.
func GenerateTeamCode() (string, error) {
	buf := make([]byte, teamCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	for i, b := range buf {
		buf[i] = teamCodeAlphabet[int(b)%len(teamCodeAlphabet)]
	}

	return string(buf), nil
}
