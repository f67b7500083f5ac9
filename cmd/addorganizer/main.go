// Command addorganizer provisions an organizer account.  There is no
// self-registration endpoint; operators run this against the same database
// the server uses.
//
//	addorganizer -email owner@example.com -password secret
package main

import (
	"context"
	"flag"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/event-rsvp/internal/config"
	"github.com/iliyamo/event-rsvp/internal/database"
	"github.com/iliyamo/event-rsvp/internal/repository"
)

func main() {
	email := flag.String("email", "", "organizer email")
	password := flag.String("password", "", "organizer password")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal().Msg("both -email and -password are required")
	}

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("database connect failed")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id := uuid.NewString()
	users := repository.NewUserRepo(db)
	if err := users.Create(ctx, id, *email, *password, cfg.BcryptCost); err != nil {
		if err == repository.ErrEmailExists {
			log.Fatal().Str("email", *email).Msg("an account with this email already exists")
		}
		log.Fatal().Err(err).Msg("create organizer failed")
	}
	log.Info().Str("id", id).Str("email", *email).Msg("organizer created")
}
