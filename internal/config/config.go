package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI      string
	DBName        string
	SessionSecret string
	SessionTTL    time.Duration
	UploadDir     string
	Port          string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:      getEnvOrDefault("MONGO_URI", "mongodb://127.0.0.1:27017"),
		DBName:        getEnvOrDefault("DB_NAME", "wanderlust"),
		SessionSecret: getEnvOrDefault("SESSION_SECRET", ""),
		SessionTTL:    getDurationEnv("SESSION_TTL_DAYS", 7, 24*time.Hour),
		UploadDir:     getEnvOrDefault("UPLOAD_DIR", "public/uploads"),
		Port:          getEnvOrDefault("PORT", "8080"),
	}
	if AppEnv.SessionSecret == "" {
		log.Fatal("SESSION_SECRET is required")
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}
