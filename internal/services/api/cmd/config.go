package main

import (
	"os"
	"strconv"
)

type Config struct {
	Port        string
	ClimatePath string // optional override of the built-in table
	CORSOrigins string // comma-separated; * by default

	MaxSystemVoltageV float64
	MaxInputCurrentA  float64

	// External explanation service (optional)
	ExplanationURL       string
	ExplanationTimeoutMs int
	BreakerFails         int
	BreakerOpenMs        int

	// External weather service, for historical irradiation (optional)
	WeatherURL       string
	WeatherAPIKey    string
	WeatherTimeoutMs int

	// External auth/document store (optional)
	ProjectStoreURL       string
	ProjectStoreAPIKey    string
	ProjectStoreTimeoutMs int
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getenvFloat(k string, d float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return d
}

func loadConfig() Config {
	return Config{
		Port:        getenv("PORT", "8080"),
		ClimatePath: getenv("CLIMATE_PATH", ""),
		CORSOrigins: getenv("CORS_ORIGINS", "*"),

		MaxSystemVoltageV: getenvFloat("MAX_SYSTEM_VOLTAGE_V", 1000),
		MaxInputCurrentA:  getenvFloat("MAX_INPUT_CURRENT_A", 150),

		ExplanationURL:       getenv("EXPLANATION_URL", ""),
		ExplanationTimeoutMs: getenvInt("EXPLANATION_TIMEOUT_MS", 3000),
		BreakerFails:         getenvInt("BREAKER_FAILS", 3),
		BreakerOpenMs:        getenvInt("BREAKER_OPEN_MS", 30000),

		WeatherURL:       getenv("WEATHER_URL", ""),
		WeatherAPIKey:    getenv("WEATHER_API_KEY", ""),
		WeatherTimeoutMs: getenvInt("WEATHER_TIMEOUT_MS", 3000),

		ProjectStoreURL:       getenv("PROJECT_STORE_URL", ""),
		ProjectStoreAPIKey:    getenv("PROJECT_STORE_API_KEY", ""),
		ProjectStoreTimeoutMs: getenvInt("PROJECT_STORE_TIMEOUT_MS", 5000),
	}
}
