package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/joho/godotenv"

	"github.com/shamsdash/shams/internal/services/persistence"
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

	mqCfg := &mqtt.BrokerConfig{
		Host:     env("MQTT_HOST", "localhost"),
		Port:     envInt("MQTT_PORT", 1883),
		User:     env("MQTT_USER", ""),
		Password: env("MQTT_PASS", ""),
		ClientID: env("MQTT_CLIENT_ID", "shams-persistence"),
	}
	mqClient, err := mqtt.NewConn(mqCfg, ctx)
	if err != nil {
		log.Fatalf("mqtt connect failed: %v", err)
	}
	consumer := mqtt.NewConsumer(mqClient, env("TELEMETRY_TOPIC", "telemetry/production/#"), nil)

	influxCfg := persistence.InfluxConfig{
		URL:         env("INFLUX_URL", "http://localhost:8086"),
		Token:       env("INFLUX_TOKEN", ""),
		Org:         env("INFLUX_ORG", "shams"),
		Bucket:      env("INFLUX_BUCKET", "telemetry"),
		Measurement: env("MEASUREMENT", "pv_output"),
	}
	influxClient := influxdb2.NewClient(influxCfg.URL, influxCfg.Token)
	defer influxClient.Close()

	svc, err := persistence.NewService(consumer, influxClient, influxCfg)
	if err != nil {
		log.Fatalf("persistence init: %v", err)
	}

	go func() {
		addr := ":" + env("PORT", "8081")
		log.Printf("persistence api listening on %s", addr)
		log.Fatal(http.ListenAndServe(addr, persistence.NewHTTPMux(svc)))
	}()

	svc.Start(ctx)
}
