// Package api is the dashboard-facing calculator service. Each route mirrors
// one page of the dashboard; the numeric result is always computed locally
// and the narrative is best-effort enrichment.
package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shamsdash/shams/internal/model"
	"github.com/shamsdash/shams/internal/services/explanation"
	"github.com/shamsdash/shams/internal/services/projects"
)

// HistoricalSource supplies the 12-entry historical monthly irradiation
// series (Wh/m²/day) for a coordinate. Satisfied by weather.HTTPClient.
type HistoricalSource interface {
	HistoricalMonthly(ctx context.Context, lat, lon float64) ([]float64, error)
}

type Config struct {
	Climate model.ClimateTable
	Limits  model.EquipmentLimits

	Explainer explanation.Provider // optional; template fallback when nil
	Projects  *projects.Client     // optional; project routes fail closed when nil
	History   HistoricalSource     // optional; enables source=history on /calc/financial

	ExplainTimeout time.Duration
	Logger         *log.Logger
}

type API struct {
	cfg      Config
	metrics  *metrics
	registry *prometheus.Registry
}

func New(cfg Config) (*API, error) {
	if cfg.Climate == nil {
		cfg.Climate = model.DefaultClimate()
	}
	if err := cfg.Climate.Validate(); err != nil {
		return nil, err
	}
	if (cfg.Limits == model.EquipmentLimits{}) {
		cfg.Limits = model.DefaultEquipmentLimits()
	}
	if cfg.ExplainTimeout <= 0 {
		cfg.ExplainTimeout = 3 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	reg := prometheus.NewRegistry()
	return &API{cfg: cfg, metrics: newMetrics(reg), registry: reg}, nil
}

func (a *API) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("ok")) })
	mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))

	mux.HandleFunc("/calc/financial", a.handleFinancial)
	mux.HandleFunc("/calc/panels", a.handlePanels)
	mux.HandleFunc("/calc/strings", a.handleStrings)
	mux.HandleFunc("/calc/wire", a.handleWire)
	mux.HandleFunc("/calc/area", a.handleArea)

	mux.HandleFunc("/auth/signup", a.handleSignUp)
	mux.HandleFunc("/auth/signin", a.handleSignIn)
	mux.HandleFunc("/auth/signout", a.handleSignOut)
	mux.HandleFunc("/projects", a.handleProjects)
	mux.HandleFunc("/projects/", a.handleProjectByID)

	return mux
}

// explain narrates a finished numeric result. Provider failures are logged,
// counted and replaced by the fixed template; they never touch the numbers.
func (a *API) explain(ctx context.Context, f explanation.Facts) string {
	if a.cfg.Explainer == nil {
		return explanation.FallbackText(f)
	}
	ectx, cancel := context.WithTimeout(ctx, a.cfg.ExplainTimeout)
	defer cancel()

	text, err := a.cfg.Explainer.Explain(ectx, f)
	if err != nil {
		a.cfg.Logger.Printf("api: explanation fallback for %s: %v", f.Calculator, err)
		a.metrics.fallbacks.Inc()
		return explanation.FallbackText(f)
	}
	return text
}
