package httpclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tranvictor/nftmeta/httpclient"
)

func TestGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("accept header: got %q", r.Header.Get("Accept"))
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	c := httpclient.NewClient(5 * time.Second)
	body, status, err := c.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("get: %s", err)
	}
	if status != 200 {
		t.Errorf("status: got %d", status)
	}
	if string(body) != `{"ok":true}` {
		t.Errorf("body: got %q", body)
	}
}

func TestGetNon2xxIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := httpclient.NewClient(5 * time.Second)
	_, status, err := c.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("a 429 is a status, not a transport error: %s", err)
	}
	if status != 429 {
		t.Errorf("status: got %d", status)
	}
}

func TestGetCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := httpclient.NewClient(5 * time.Second)
	if _, _, err := c.Get(ctx, server.URL); err == nil {
		t.Fatalf("expected an error for a cancelled context")
	}
}
