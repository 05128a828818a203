package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	MongoURI string
	DBName   string
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := Config{
		Port:     os.Getenv("PORT"),
		MongoURI: os.Getenv("MONGO_URI"),
		DBName:   os.Getenv("DB_NAME"),
	}

	if cfg.Port == "" {
		cfg.Port = "8000"
	}
	if cfg.MongoURI == "" {
		log.Fatal("MONGO_URI is required")
	}
	if cfg.DBName == "" {
		cfg.DBName = "bibliotheca"
	}

	return cfg
}
