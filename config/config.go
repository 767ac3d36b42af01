package config

import (
	"os"
	"strconv"
)

// Config holds everything read from the environment at startup.
type Config struct {
	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	RedisAddr string

	JWTSecret string

	Port int
}

// Load reads configuration from environment variables, falling back to
// development defaults.
func Load() *Config {
	port, err := strconv.Atoi(getEnv("PORT", "5000"))
	if err != nil {
		port = 5000
	}

	return &Config{
		DBHost:    getEnv("MYSQL_HOST", "localhost"),
		DBPort:    getEnv("MYSQL_PORT", "3306"),
		DBUser:    getEnv("MYSQL_USER", "root"),
		DBPass:    getEnv("MYSQL_PASSWORD", ""),
		DBName:    getEnv("MYSQL_DATABASE", "library"),
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		JWTSecret: getEnv("JWT_SECRET", "verysecretkey"),
		Port:      port,
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}
