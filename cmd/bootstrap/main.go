package main

import (
	"context"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/equipecerta/credenciamento/internal/admin"
	"github.com/equipecerta/credenciamento/internal/auth"
	"github.com/equipecerta/credenciamento/internal/db"
	"github.com/equipecerta/credenciamento/internal/util"
)

// bootstrap cria o primeiro admin direto no banco, sem passar pela API.
func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	var (
		name     = flag.String("name", "", "nome do admin")
		email    = flag.String("email", "", "email do admin")
		password = flag.String("password", "", "senha do admin")
	)
	flag.Parse()

	if *name == "" || *email == "" || *password == "" {
		log.Fatal().Msg("uso: bootstrap --name \"Fulano\" --email fulano@exemplo.com --password segredo")
	}
	if err := util.ValidateEmail(*email); err != nil {
		log.Fatal().Err(err).Msg("email inválido")
	}
	if err := util.ValidatePassword(*password); err != nil {
		log.Fatal().Err(err).Msg("senha inválida")
	}

	_ = godotenv.Load()

	dsn := strings.TrimSpace(os.Getenv("DB_DSN"))
	if dsn == "" {
		log.Fatal().Msg("defina DB_DSN")
	}

	ctx := context.Background()

	pool, err := db.NewPool(ctx, dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("não foi possível conectar ao banco")
	}
	defer pool.Close()

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatal().Err(err).Msg("falha ao gerar hash")
	}

	repo := admin.NewRepository(pool)
	created, err := repo.Create(ctx, strings.TrimSpace(*name), strings.ToLower(strings.TrimSpace(*email)), hash)
	if err != nil {
		log.Fatal().Err(err).Msg("falha ao criar admin")
	}

	log.Info().Int64("id", created.ID).Str("email", created.Email).Msg("admin criado")
}
