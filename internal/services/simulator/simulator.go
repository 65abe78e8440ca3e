// Package simulator drives the live performance view: on a fixed schedule it
// pulls current weather for every monitored site, derives an irradiance
// proxy, estimates the array's momentary output and publishes the sample as
// telemetry.
package simulator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sony/gobreaker"

	"github.com/shamsdash/shams/internal/model"
	"github.com/shamsdash/shams/internal/services/weather"
	"github.com/shamsdash/shams/pkg/mqtt"
)

// WeatherClient provides current conditions for a coordinate. Satisfied by
// weather.HTTPClient.
type WeatherClient interface {
	Report(ctx context.Context, lat, lon float64) (*weather.Report, error)
}

// Site is one monitored installation.
type Site struct {
	ID       string           `json:"id"`
	Location model.Location   `json:"location"`
	Spec     model.SystemSpec `json:"spec"`
}

type Simulator struct {
	wclient   WeatherClient
	publisher mqtt.IPublisher
	climate   model.ClimateTable
	sites     []Site
	schedule  string
	topicTmpl string
	breaker   *gobreaker.CircuitBreaker
}

func New(wc WeatherClient, pub mqtt.IPublisher, climate model.ClimateTable, sites []Site, schedule, topicTmpl string) (*Simulator, error) {
	if wc == nil {
		return nil, errors.New("weather client is nil")
	}
	if pub == nil {
		return nil, errors.New("publisher is nil")
	}
	if len(sites) == 0 {
		return nil, errors.New("no sites configured")
	}
	if strings.TrimSpace(schedule) == "" {
		schedule = "@every 5m"
	}
	if strings.TrimSpace(topicTmpl) == "" {
		topicTmpl = "telemetry/production/{site}"
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "weather-service",
		Timeout: time.Minute,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= 3
		},
	})
	return &Simulator{
		wclient:   wc,
		publisher: pub,
		climate:   climate,
		sites:     sites,
		schedule:  schedule,
		topicTmpl: topicTmpl,
		breaker:   cb,
	}, nil
}

// Start schedules the simulation loop and blocks until ctx is cancelled.
func (s *Simulator) Start(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(s.schedule, func() {
		if err := s.RunOnce(ctx); err != nil {
			log.Printf("simulator: tick error: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("bad schedule %q: %w", s.schedule, err)
	}
	c.Start()
	log.Printf("simulator: scheduled %q for %d sites", s.schedule, len(s.sites))

	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}

// RunOnce simulates every site once. A weather failure skips the site with a
// logged typed error; zeros are never published in its place.
func (s *Simulator) RunOnce(ctx context.Context) error {
	var firstErr error
	for _, site := range s.sites {
		entry, ok := s.climate.Lookup(site.Location)
		if !ok {
			log.Printf("simulator: site %s has unknown location %q, skipping", site.ID, site.Location)
			continue
		}

		tctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		res, err := s.breaker.Execute(func() (any, error) {
			return s.wclient.Report(tctx, entry.Latitude, entry.Longitude)
		})
		cancel()
		if err != nil {
			log.Printf("simulator: weather for %s: %v", site.ID, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		rep := res.(*weather.Report)

		reading := model.ProductionReading{
			SiteID:        site.ID,
			Location:      site.Location,
			EstimatedKw:   EstimateOutput(site.Spec, rep.Current),
			CloudCoverPct: rep.Current.CloudCoverPct,
			UVIndex:       rep.Current.UVIndex,
			Timestamp:     time.Now().UTC(),
		}
		payload, _ := json.Marshal(reading)
		topic := strings.ReplaceAll(s.topicTmpl, "{site}", site.ID)
		if err := s.publisher.Publish(topic, 1, payload); err != nil {
			log.Printf("simulator: publish %s: %v", topic, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		log.Printf("simulator: %s est=%.2fkW clouds=%.0f%% uv=%.1f", site.ID, reading.EstimatedKw, reading.CloudCoverPct, reading.UVIndex)
	}
	return firstErr
}

// IrradianceProxy maps sky conditions to a 0..1 fraction of clear-sky
// output. Cloud cover dominates; UV lifts the floor on hazy days.
func IrradianceProxy(c weather.Conditions) float64 {
	clear := clamp01(1 - c.CloudCoverPct/100)
	uv := clamp01(c.UVIndex / 11)
	return clamp01(0.7*clear + 0.3*uv)
}

// EstimateOutput is the momentary AC output estimate for one array.
func EstimateOutput(spec model.SystemSpec, c weather.Conditions) float64 {
	loss := spec.SystemLossPercent
	if loss < 0 {
		loss = 0
	}
	if loss > 99 {
		loss = 99
	}
	return spec.SizeKw * IrradianceProxy(c) * (1 - loss/100)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// LoadSites reads the monitored installations from a JSON file.
func LoadSites(path string) ([]Site, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sites []Site
	if err := json.Unmarshal(raw, &sites); err != nil {
		return nil, fmt.Errorf("parse sites: %w", err)
	}
	for i, s := range sites {
		if s.ID == "" {
			return nil, fmt.Errorf("site %d has no id", i)
		}
		if s.Spec.SizeKw <= 0 {
			return nil, fmt.Errorf("site %s has non-positive size", s.ID)
		}
	}
	return sites, nil
}
