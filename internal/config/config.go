package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	MongoURI        string
	MongoDB         string
	JWTSecret       string
	AccessTTLDays   int
	RedisAddr       string
	RateLimitPerMin int
	RabbitURL       string
	Dev             bool
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return Config{
		Port:            getenv("APP_PORT", "8080"),
		MongoURI:        getenv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:         getenv("MONGO_DB", "movie_catalog"),
		JWTSecret:       getenv("JWT_SECRET", "default_secret_key"),
		AccessTTLDays:   atoi(getenv("ACCESS_TTL_DAYS", "7")),
		RedisAddr:       getenv("REDIS_ADDR", ""),
		RateLimitPerMin: atoi(getenv("RATE_LIMIT_PER_MIN", "30")),
		RabbitURL:       getenv("RABBIT_URL", ""),
		Dev:             getenv("APP_ENV", "dev") != "prod",
	}
}

func atoi(s string) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return 0
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
