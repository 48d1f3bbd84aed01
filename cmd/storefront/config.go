package main

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	HTTPPort            string
	StorageBackend      string
	RedisAddr           string
	RedisPassword       string
	MongoURI            string
	MongoDBName         string
	SQLitePath          string
	CatalogSource       string
	CatalogURL          string
	CatalogToken        string
	CatalogRefreshToken string
	KafkaBrokers        []string
	LogLevel            string
	LogFormat           string
	TraceExporter       string
	RequestTimeout      time.Duration
	ShutdownTimeout     time.Duration
	MaxRequestBodySize  int64
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:            getEnv("HTTP_PORT", "8080"),
		StorageBackend:      getEnv("STORAGE_BACKEND", "memory"),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		MongoURI:            getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:         getEnv("MONGO_DB_NAME", "healthshop"),
		SQLitePath:          getEnv("SQLITE_PATH", "healthshop.db"),
		CatalogSource:       getEnv("CATALOG_SOURCE", "sqlite"),
		CatalogURL:          getEnv("CATALOG_URL", "https://dummyjson.com"),
		CatalogToken:        getEnv("CATALOG_TOKEN", ""),
		CatalogRefreshToken: getEnv("CATALOG_REFRESH_TOKEN", ""),
		KafkaBrokers:        splitList(getEnv("KAFKA_BROKERS", "")),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "json"),
		TraceExporter:       getEnv("TRACE_EXPORTER", "none"),
		RequestTimeout:      getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout:     getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		MaxRequestBodySize:  1 << 20, // 1MB
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
