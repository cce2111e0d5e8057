package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/Wardmisp/Bingo/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, reading environment variables")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("[FATAL] DATABASE_URL is required")
	}

	if _, err := config.SetupDatabase(dsn); err != nil {
		log.Fatalf("[FATAL] Migration failed: %v", err)
	}
	log.Println("✅ Database migration completed successfully")
}
