package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/xlance-app/xlance-backend/internal/config"
	"github.com/xlance-app/xlance-backend/internal/db"
	"github.com/xlance-app/xlance-backend/internal/model"
	"github.com/xlance-app/xlance-backend/internal/server"
)

var (
	gitSHA    = "dev"
	buildTime = "unknown"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	srv := server.New(nil, cfg, gitSHA, buildTime)
	addr := ":" + cfg.Port

	errCh := make(chan error, 1)

	go func() {
		log.Printf("starting server on %s", addr)
		errCh <- srv.Start(addr)
	}()

	// Connect in the background so a slow Cloud SQL socket does not hold up
	// the health endpoint.
	go func() {
		conn, err := db.Connect(cfg)
		if err != nil {
			log.Printf("db connect error: %v", err)
			return
		}
		if err := conn.AutoMigrate(
			&model.UserProfile{},
			&model.Gig{},
			&model.Order{},
			&model.Conversation{},
			&model.ConversationState{},
			&model.Message{},
			&model.Notification{},
			&model.EarningsBalance{},
			&model.Category{},
		); err != nil {
			log.Printf("auto migrate error: %v", err)
		}
		srv.SetDB(conn)
		log.Printf("database ready")
	}()

	if err := <-errCh; err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
