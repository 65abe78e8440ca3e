package main

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/shamsdash/shams/internal/model"
	"github.com/shamsdash/shams/internal/services/api"
	"github.com/shamsdash/shams/internal/services/explanation"
	"github.com/shamsdash/shams/internal/services/projects"
	"github.com/shamsdash/shams/internal/services/weather"
)

func main() {
	_ = godotenv.Load()
	cfg := loadConfig()

	climate := model.DefaultClimate()
	if cfg.ClimatePath != "" {
		loaded, err := model.LoadClimate(cfg.ClimatePath)
		if err != nil {
			log.Fatalf("load climate table: %v", err)
		}
		climate = loaded
		log.Printf("climate table loaded from %s (%d locations)", cfg.ClimatePath, len(climate))
	}

	apiCfg := api.Config{
		Climate: climate,
		Limits: model.EquipmentLimits{
			MaxSystemVoltageV: cfg.MaxSystemVoltageV,
			MaxInputCurrentA:  cfg.MaxInputCurrentA,
		},
		ExplainTimeout: time.Duration(cfg.ExplanationTimeoutMs) * time.Millisecond,
	}
	if cfg.ExplanationURL != "" {
		apiCfg.Explainer = explanation.NewHTTPProvider(
			cfg.ExplanationURL,
			time.Duration(cfg.ExplanationTimeoutMs)*time.Millisecond,
			uint32(cfg.BreakerFails),
			time.Duration(cfg.BreakerOpenMs)*time.Millisecond,
		)
	}
	if cfg.WeatherURL != "" {
		apiCfg.History = weather.NewHTTPClient(cfg.WeatherURL, cfg.WeatherAPIKey, time.Duration(cfg.WeatherTimeoutMs)*time.Millisecond)
	}
	if cfg.ProjectStoreURL != "" {
		apiCfg.Projects = projects.NewClient(cfg.ProjectStoreURL, cfg.ProjectStoreAPIKey, time.Duration(cfg.ProjectStoreTimeoutMs)*time.Millisecond)
	}

	srv, err := api.New(apiCfg)
	if err != nil {
		log.Fatalf("api init: %v", err)
	}

	c := cors.New(cors.Options{
		AllowedOrigins: strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	addr := ":" + cfg.Port
	log.Printf("calculator api listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, c.Handler(srv.Routes())))
}
