package projects

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shamsdash/shams/internal/model"
)

func TestSaveProject_FillsIDAndTimestamp(t *testing.T) {
	var received model.ProjectRecord
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("authorization = %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decode: %v", err)
		}
		_ = json.NewEncoder(w).Encode(received)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second)
	out, err := c.SaveProject(context.Background(), "tok", model.ProjectRecord{
		Name:    "rooftop 5kw",
		OwnerID: "u1",
		Design:  json.RawMessage(`{"size_kw":5}`),
	})
	if err != nil {
		t.Fatalf("SaveProject failed: %v", err)
	}
	if out.ID == "" {
		t.Error("record left the process without an id")
	}
	if out.CreatedAt.IsZero() {
		t.Error("record left the process without a timestamp")
	}
	if received.Name != "rooftop 5kw" {
		t.Errorf("name = %q", received.Name)
	}
}

func TestListProjects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s", r.Method)
		}
		_, _ = w.Write([]byte(`[{"id":"p1","name":"home","owner_id":"u1"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second)
	list, err := c.ListProjects(context.Background(), "tok")
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if len(list) != 1 || list[0].ID != "p1" {
		t.Errorf("list = %+v", list)
	}
}

func TestDeleteProject_FailureIsTyped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second)
	if err := c.DeleteProject(context.Background(), "tok", "p1"); !errors.Is(err, ErrPersistence) {
		t.Errorf("err = %v, want ErrPersistence", err)
	}
}

func TestSignIn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/auth/signin" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"token":"tok","user_id":"u1"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second)
	s, err := c.SignIn(context.Background(), "a@b.jo", "secret")
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if s.Token != "tok" || s.UserID != "u1" {
		t.Errorf("session = %+v", s)
	}
}
