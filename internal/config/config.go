package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        int
	NatsURL     string
	NatsToken   string
	DatabaseURL string
	LogLevel    string
	APIToken    string

	// Engine tunables. Durations are expressed in the unit their env var
	// names; zero or negative values fall back to engine defaults.
	MemoryWindowHours      int
	HistoryLimit           int
	StressRepeatCount      int
	EvolutionRepeatCount   int
	PendingTTLMinutes      int
	DuplicateWindowMinutes int
}

func Load() Config {
	return Config{
		Port:        envInt("BRAIN_PORT", 8780),
		NatsURL:     envStr("NATS_URL", ""),
		NatsToken:   envStr("NATS_TOKEN", ""),
		DatabaseURL: envStr("DATABASE_URL", ""),
		LogLevel:    envStr("LOG_LEVEL", "info"),
		APIToken:    envStr("BRAIN_API_TOKEN", ""),

		MemoryWindowHours:      envInt("BRAIN_MEMORY_WINDOW_HOURS", 48),
		HistoryLimit:           envInt("BRAIN_HISTORY_LIMIT", 10),
		StressRepeatCount:      envInt("BRAIN_STRESS_REPEAT_COUNT", 3),
		EvolutionRepeatCount:   envInt("BRAIN_EVOLUTION_REPEAT_COUNT", 2),
		PendingTTLMinutes:      envInt("BRAIN_PENDING_TTL_MINUTES", 15),
		DuplicateWindowMinutes: envInt("BRAIN_DUPLICATE_WINDOW_MINUTES", 2),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
