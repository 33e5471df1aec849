package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/taskhive-dev/taskhive/db"
	"github.com/taskhive-dev/taskhive/internal/auth"
	"github.com/taskhive-dev/taskhive/internal/config"
	"github.com/taskhive-dev/taskhive/internal/handlers"
	"github.com/taskhive-dev/taskhive/internal/router"
	"github.com/taskhive-dev/taskhive/internal/store/mongostore"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on process environment")
	}

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	database, err := db.Connect(ctx, cfg.MongoURI, cfg.DBName)

	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Connected to MongoDB")

	st := mongostore.New(database)

	if err := st.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}

	guard, err := auth.NewGuard(cfg.JWTSecret, auth.TokenTTL)

	if err != nil {
		log.Fatalf("Failed to initialize auth guard: %v", err)
	}

	h := handlers.New(guard, st.Users, st.Tasks, st.Projects, cfg.SaltRounds)

	r := router.NewRouter(h, cfg.CORSOrigins())

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
