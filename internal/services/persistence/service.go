// Package persistence stores simulated production telemetry in InfluxDB and
// serves recent readings to the dashboard, with an in-memory last-value
// cache as fallback.
package persistence

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/shamsdash/shams/internal/model"
	"github.com/shamsdash/shams/pkg/dedup"
	"github.com/shamsdash/shams/pkg/mqtt"
)

type InfluxConfig struct {
	URL         string
	Token       string
	Org         string
	Bucket      string
	Measurement string
}

type Service struct {
	consumer    mqtt.IConsumer
	writeAPI    api.WriteAPIBlocking
	queryAPI    api.QueryAPI
	bucket      string
	measurement string
	deduper     *dedup.Deduper

	mu     sync.RWMutex
	latest map[string]model.ProductionReading // by site id
}

func NewService(consumer mqtt.IConsumer, client influxdb2.Client, cfg InfluxConfig) (*Service, error) {
	if cfg.URL == "" || cfg.Org == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("influx config incomplete")
	}
	measurement := cfg.Measurement
	if measurement == "" {
		measurement = "pv_output"
	}
	return &Service{
		consumer:    consumer,
		writeAPI:    client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		queryAPI:    client.QueryAPI(cfg.Org),
		bucket:      cfg.Bucket,
		measurement: sanitizeMeasurement(measurement),
		deduper:     dedup.New(10*time.Minute, 20000),
		latest:      make(map[string]model.ProductionReading),
	}, nil
}

// Start consumes telemetry until ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	s.consumer.SetHandler(func(topic string, msg paho.Message) error {
		// Drop QoS1 redeliveries before unmarshalling.
		h := sha256.Sum256(msg.Payload())
		if !s.deduper.ShouldProcess(hex.EncodeToString(h[:])) {
			return nil
		}
		return s.ingest(ctx, msg.Payload())
	})
	s.consumer.ConsumeMessage(ctx)
}

func (s *Service) ingest(ctx context.Context, payload []byte) error {
	var r model.ProductionReading
	if err := json.Unmarshal(payload, &r); err != nil {
		log.Printf("persistence: invalid telemetry payload: %v", err)
		return nil // do not block the stream
	}
	if r.SiteID == "" {
		log.Printf("persistence: telemetry without site id, dropped")
		return nil
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}

	s.mu.Lock()
	if prev, ok := s.latest[r.SiteID]; !ok || r.Timestamp.After(prev.Timestamp) {
		s.latest[r.SiteID] = r
	}
	s.mu.Unlock()

	tags := map[string]string{
		"site_id":  r.SiteID,
		"location": string(r.Location),
	}
	fields := map[string]interface{}{
		"estimated_kw":    r.EstimatedKw,
		"cloud_cover_pct": r.CloudCoverPct,
		"uv_index":        r.UVIndex,
	}
	point := influxdb2.NewPoint(s.measurement, tags, fields, r.Timestamp)
	if err := s.writeAPI.WritePoint(ctx, point); err != nil {
		log.Printf("persistence: write error: %v", err)
		return err
	}
	log.Printf("persistence: wrote %s site=%s est=%.2fkW", s.measurement, r.SiteID, r.EstimatedKw)
	return nil
}

// LatestCache returns the last reading per site, sorted by site id.
func (s *Service) LatestCache() []model.ProductionReading {
	s.mu.RLock()
	out := make([]model.ProductionReading, 0, len(s.latest))
	for _, r := range s.latest {
		out = append(out, r)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].SiteID < out[j].SiteID })
	return out
}

// QueryRecentFromInflux returns the last reading per site within the window.
func (s *Service) QueryRecentFromInflux(ctx context.Context, minutes int) ([]model.ProductionReading, error) {
	q := fmt.Sprintf(`from(bucket: %q)
  |> range(start: -%dm)
  |> filter(fn: (r) => r._measurement == %q)
  |> last()`, s.bucket, minutes, s.measurement)

	res, err := s.queryAPI.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	bySite := make(map[string]*model.ProductionReading)
	for res.Next() {
		rec := res.Record()
		site, _ := rec.ValueByKey("site_id").(string)
		if site == "" {
			continue
		}
		r, ok := bySite[site]
		if !ok {
			loc, _ := rec.ValueByKey("location").(string)
			r = &model.ProductionReading{SiteID: site, Location: model.Location(loc), Timestamp: rec.Time()}
			bySite[site] = r
		}
		v, _ := rec.Value().(float64)
		switch rec.Field() {
		case "estimated_kw":
			r.EstimatedKw = v
		case "cloud_cover_pct":
			r.CloudCoverPct = v
		case "uv_index":
			r.UVIndex = v
		}
	}
	if res.Err() != nil {
		return nil, res.Err()
	}

	out := make([]model.ProductionReading, 0, len(bySite))
	for _, r := range bySite {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SiteID < out[j].SiteID })
	return out, nil
}

func sanitizeMeasurement(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '_', r == ':', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
