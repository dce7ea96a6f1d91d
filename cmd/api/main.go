package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/sproutly/sprout-backend/internal/config"
	"github.com/sproutly/sprout-backend/internal/db"
	"github.com/sproutly/sprout-backend/internal/model"
	"github.com/sproutly/sprout-backend/internal/server"
)

var (
	gitSHA    = os.Getenv("GIT_SHA")
	buildTime = os.Getenv("BUILD_TIME")
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	conn, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	if err := conn.AutoMigrate(&model.User{}, &model.Habit{}, &model.HabitCompletion{}); err != nil {
		log.Fatalf("auto migrate error: %v", err)
	}

	srv := server.New(conn, cfg, gitSHA, buildTime)

	addr := ":" + cfg.Port
	log.Printf("starting server on %s", addr)
	if err := srv.Start(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
