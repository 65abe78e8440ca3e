package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/shamsdash/shams/internal/model"
	"github.com/shamsdash/shams/internal/services/simulator"
	"github.com/shamsdash/shams/internal/services/weather"
	"github.com/shamsdash/shams/pkg/mqtt"
)

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	climate := model.DefaultClimate()
	if p := env("CLIMATE_PATH", ""); p != "" {
		loaded, err := model.LoadClimate(p)
		if err != nil {
			log.Fatalf("load climate table: %v", err)
		}
		climate = loaded
	}

	sites, err := simulator.LoadSites(env("SITES_PATH", "config/sites.json"))
	if err != nil {
		log.Fatalf("load sites: %v", err)
	}

	wclient := weather.NewHTTPClient(
		env("WEATHER_URL", "https://api.openweathermap.org"),
		env("WEATHER_API_KEY", ""),
		time.Duration(envInt("WEATHER_TIMEOUT_MS", 3000))*time.Millisecond,
	)

	mqCfg := &mqtt.BrokerConfig{
		Host:     env("MQTT_HOST", "localhost"),
		Port:     envInt("MQTT_PORT", 1883),
		User:     env("MQTT_USER", ""),
		Password: env("MQTT_PASS", ""),
		ClientID: env("MQTT_CLIENT_ID", "shams-simulator"),
	}
	mqClient, err := mqtt.NewConn(mqCfg, ctx)
	if err != nil {
		log.Fatalf("mqtt connect failed: %v", err)
	}
	publisher := mqtt.NewPublisher(mqClient)

	sim, err := simulator.New(
		wclient,
		publisher,
		climate,
		sites,
		env("SIMULATION_SCHEDULE", "@every 5m"),
		env("TELEMETRY_TOPIC", "telemetry/production/{site}"),
	)
	if err != nil {
		log.Fatalf("simulator init: %v", err)
	}

	if err := sim.Start(ctx); err != nil {
		log.Fatalf("simulator: %v", err)
	}
}
