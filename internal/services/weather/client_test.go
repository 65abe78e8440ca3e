package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/conditions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("appid") != "k" {
			t.Errorf("missing api key in query")
		}
		_, _ = w.Write([]byte(`{
			"current":{"temperature":31.5,"cloud_cover_percent":20,"uv_index":8},
			"forecast":{"temperature":33,"cloud_cover_percent":5,"uv_index":9}
		}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "k", time.Second)
	rep, err := c.Report(context.Background(), 31.95, 35.91)
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if rep.Current.CloudCoverPct != 20 || rep.Current.UVIndex != 8 {
		t.Errorf("current = %+v", rep.Current)
	}
	if rep.Forecast.Temperature != 33 {
		t.Errorf("forecast = %+v", rep.Forecast)
	}
}

func TestReport_MissingKey(t *testing.T) {
	c := NewHTTPClient("http://weather.invalid", "", time.Second)
	if _, err := c.Report(context.Background(), 0, 0); !errors.Is(err, ErrExternalService) {
		t.Errorf("err = %v, want ErrExternalService", err)
	}
}

func TestReport_ServerErrorIsTyped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "k", time.Second)
	if _, err := c.Report(context.Background(), 0, 0); !errors.Is(err, ErrExternalService) {
		t.Errorf("err = %v, want ErrExternalService", err)
	}
}

func TestReport_RetriesTransientFailure(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"current":{"uv_index":5},"forecast":{}}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "k", time.Second)
	rep, err := c.Report(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("Report failed after retry: %v", err)
	}
	if hits != 2 {
		t.Errorf("hits = %d, want 2 (one retry)", hits)
	}
	if rep.Current.UVIndex != 5 {
		t.Errorf("current = %+v", rep.Current)
	}
}

func TestHistoricalMonthly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"monthly":[3200,4000,5100,6300,7300,8200,8000,7400,6300,4800,3500,3000]}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "k", time.Second)
	got, err := c.HistoricalMonthly(context.Background(), 31.95, 35.91)
	if err != nil {
		t.Fatalf("HistoricalMonthly failed: %v", err)
	}
	if len(got) != 12 || got[0] != 3200 {
		t.Errorf("monthly = %v", got)
	}
}

func TestHistoricalMonthly_WrongLength(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"monthly":[1,2,3]}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "k", time.Second)
	if _, err := c.HistoricalMonthly(context.Background(), 0, 0); !errors.Is(err, ErrExternalService) {
		t.Errorf("err = %v, want ErrExternalService", err)
	}
}
