package persistence

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// NewHTTPMux serves recent readings to the dashboard.
//
// GET /readings/recent
//   source=auto|influx|cache  (default auto: try Influx, fall back to cache)
//   minutes=<int>             (Influx window, default 1440 = 24h)
func NewHTTPMux(svc *Service) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("ok")) })

	mux.HandleFunc("/readings/recent", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		source := strings.ToLower(q.Get("source"))
		if source == "" {
			source = "auto"
		}
		minutes := 60 * 24
		if s := q.Get("minutes"); s != "" {
			if n, err := strconv.Atoi(s); err == nil && n > 0 {
				minutes = n
			}
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		used := ""
		list := svc.LatestCache()
		if source == "influx" || source == "auto" {
			if fromInflux, err := svc.QueryRecentFromInflux(ctx, minutes); err == nil && len(fromInflux) > 0 {
				list = fromInflux
				used = "influx"
			}
		}
		if used == "" {
			used = "cache"
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Readings-Source", used)
		_ = json.NewEncoder(w).Encode(list)
	})

	return mux
}
