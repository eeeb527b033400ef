package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	CartStoreSQLite = "sqlite"
	CartStoreRedis  = "redis"
	CartStoreMemory = "memory"
)

type Config struct {
	Port      string
	DBDSN     string
	LogFile   string
	LogLevel  string
	BodyLimit int

	CartStore string
	CartTTL   time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	NATSURL string

	CookieSecure  bool
	AdminEmail    string
	AdminPassword string
}

// Load reads the environment, after merging an optional .env file from the
// working directory. Variables already set win over the file.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[config] .env ignored: %v", err)
	}

	cfg := Config{
		Port:      getenv("PORT", "8080"),
		DBDSN:     getenv("DB_DSN", "lrkr.db"), // sqlite file in project root
		LogFile:   getenv("LOG_FILE", "./lrkr.log"),
		LogLevel:  strings.ToLower(getenv("LOG_LEVEL", "info")),
		BodyLimit: atoienv("BODY_LIMIT_BYTES", 1<<20),

		CartStore: strings.ToLower(getenv("CART_STORE", CartStoreSQLite)),
		CartTTL:   time.Duration(atoienv("CART_TTL_HOURS", 720)) * time.Hour,

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       atoienv("REDIS_DB", 0),

		NATSURL: os.Getenv("NATS_URL"),

		CookieSecure:  boolenv("COOKIE_SECURE", false),
		AdminEmail:    getenv("ADMIN_EMAIL", "admin@lrkr.test"),
		AdminPassword: getenv("ADMIN_PASSWORD", "Passw0rd!"),
	}
	switch cfg.CartStore {
	case CartStoreSQLite, CartStoreRedis, CartStoreMemory:
	default:
		log.Printf("[config] unknown CART_STORE=%q, using %s", cfg.CartStore, CartStoreSQLite)
		cfg.CartStore = CartStoreSQLite
	}

	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s CART_STORE=%s NATS=%t",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.CartStore, cfg.NATSURL != "")
	return cfg
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		log.Printf("[config] bad %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

func boolenv(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
