package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/equipecerta/credenciamento/internal/auth"
)

// Gera o hash argon2id de uma senha para inserção manual de admins.
// Sem argumento a senha é lida da entrada padrão, evitando que ela
// fique no histórico do shell.
func main() {
	password, err := readPassword()
	if err != nil {
		fmt.Fprintf(os.Stderr, "hashpass: %v\n", err)
		os.Exit(1)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hashpass: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(hash)
}

func readPassword() (string, error) {
	if len(os.Args) > 1 {
		return os.Args[1], nil
	}

	fmt.Fprint(os.Stderr, "senha: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("lendo senha: %w", err)
	}

	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", fmt.Errorf("senha vazia")
	}
	return password, nil
}
