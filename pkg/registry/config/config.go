// Package config loads the process settings from the environment into an
// explicit struct that gets passed to the assembly in main. Nothing below
// the assembly reads ambient environment state.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/antiquarium-museum/artifact-register/pkg/registry/services"
)

type Settings struct {
	Port string

	DatabaseURL string

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	CacheKeyPrefix string
	CacheTTL       time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	MuseumAPIBase  string
	CatalogAPIBase string

	PublishPolicy services.PublishPolicy
}

// Load reads the settings from the environment. Only the database and the
// two API base URLs are mandatory; everything else has a default.
func Load() (Settings, error) {
	s := Settings{
		Port:           getenv("PORT", "1337"),
		RedisAddr:      getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		CacheKeyPrefix: getenv("CACHE_KEY_PREFIX", "artifacts:"),
		KafkaTopic:     getenv("KAFKA_TOPIC", "new_artifacts"),
		MuseumAPIBase:  os.Getenv("MUSEUM_API_BASE"),
		CatalogAPIBase: os.Getenv("CATALOG_API_BASE"),
	}

	s.DatabaseURL = "postgres://" +
		os.Getenv("DB_USERNAME") + ":" +
		os.Getenv("DB_PASSWORD") + "@" +
		os.Getenv("DB_HOSTNAME") + "/" +
		os.Getenv("DB_DBNAME")
	if os.Getenv("DB_HOSTNAME") == "" {
		return Settings{}, fmt.Errorf("missing DB_HOSTNAME")
	}
	if s.MuseumAPIBase == "" {
		return Settings{}, fmt.Errorf("missing MUSEUM_API_BASE")
	}
	if s.CatalogAPIBase == "" {
		return Settings{}, fmt.Errorf("missing CATALOG_API_BASE")
	}

	redisDB, err := strconv.Atoi(getenv("REDIS_DB", "0"))
	if err != nil {
		return Settings{}, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	s.RedisDB = redisDB

	ttlSeconds, err := strconv.Atoi(getenv("CACHE_TTL_SECONDS", "3600"))
	if err != nil {
		return Settings{}, fmt.Errorf("invalid CACHE_TTL_SECONDS: %w", err)
	}
	s.CacheTTL = time.Duration(ttlSeconds) * time.Second

	s.KafkaBrokers = strings.Split(getenv("KAFKA_BROKERS", "localhost:9092"), ",")

	switch policy := services.PublishPolicy(getenv("PUBLISH_FAILURE_POLICY", "continue")); policy {
	case services.PublishContinue, services.PublishFatal:
		s.PublishPolicy = policy
	default:
		return Settings{}, fmt.Errorf("invalid PUBLISH_FAILURE_POLICY %q", policy)
	}

	return s, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
