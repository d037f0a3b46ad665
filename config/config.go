package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	AppEnv                    string
	AppPort                   string
	AllowedOrigins            string
	NatsURL                   string
	DBDriver                  string
	DBHost                    string
	DBPort                    string
	DBUser                    string
	DBPassword                string
	DBName                    string
	DBPath                    string
	DBMaxIdleConns            int
	DBMaxOpenConns            int
	JWTSecret                 string
	JWTExpirationHours        int
	JWTRefreshExpirationHours int
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("%s not set, defaulting to %s", key, defaultValue)
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Invalid integer value for %s, defaulting to %d", key, defaultValue)
	}
	return defaultValue
}

func Load() Config {
	log.Println("Loading configuration...")

	return Config{
		AppEnv:                    getEnv("APP_ENV", "development"),
		AppPort:                   getEnv("APP_PORT", "8080"),
		AllowedOrigins:            getEnv("ALLOWED_ORIGINS", "*"),
		NatsURL:                   getEnv("NATS_URL", "nats://localhost:4222"),
		DBDriver:                  getEnv("DB_DRIVER", "postgres"),
		DBHost:                    getEnv("DB_HOST", "localhost"),
		DBPort:                    getEnv("DB_PORT", "5432"),
		DBUser:                    getEnv("DB_USER", "tasknest"),
		DBPassword:                getEnv("DB_PASSWORD", "tasknest"),
		DBName:                    getEnv("DB_NAME", "tasknest"),
		DBPath:                    getEnv("DB_PATH", "tasknest.db"),
		DBMaxIdleConns:            getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
		DBMaxOpenConns:            getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
		JWTSecret:                 getEnv("JWT_SECRET", "your-super-secret-key-change-this-in-production"),
		JWTExpirationHours:        getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
		JWTRefreshExpirationHours: getEnvAsInt("JWT_REFRESH_EXPIRATION_HOURS", 168),
	}
}
