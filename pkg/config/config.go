package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings for the dashboard service.
type Config struct {
	// HTTP server
	HTTPAddr        string
	ShutdownTimeout time.Duration

	// Simulation
	TickInterval time.Duration
	MaxSamples   int
	RandomSeed   uint64

	// Cost estimation
	EnergyRateUSDPerKWh float64
}

// Load reads configuration from the environment, optionally seeded from a
// .env file, and fills in defaults for anything unset.
func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		HTTPAddr:        getEnv("HTTP_ADDR", ":8090"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 5*time.Second),

		TickInterval: getEnvDuration("TICK_INTERVAL", time.Second),
		MaxSamples:   getEnvInt("MAX_SAMPLES", 100),
		RandomSeed:   getEnvUint("RANDOM_SEED", 0),

		EnergyRateUSDPerKWh: getEnvFloat("ENERGY_RATE_USD_KWH", 0.12),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: failed to parse %s as int, using default: %v", key, err)
		return defaultValue
	}
	return intValue
}

func getEnvUint(key string, defaultValue uint64) uint64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	uintValue, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		log.Printf("Warning: failed to parse %s as uint, using default: %v", key, err)
		return defaultValue
	}
	return uintValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Warning: failed to parse %s as float, using default: %v", key, err)
		return defaultValue
	}
	return floatValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: failed to parse %s as duration, using default: %v", key, err)
		return defaultValue
	}
	return d
}
