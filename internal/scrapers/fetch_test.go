package scrapers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetchDocument(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, "<html>page body</html>")
	}))
	defer srv.Close()

	c := NewFetchClient(5*time.Second, "test-agent/1.0")
	doc, err := c.FetchDocument(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FetchDocument: %v", err)
	}
	if doc != "<html>page body</html>" {
		t.Errorf("body = %q", doc)
	}
	if gotUA != "test-agent/1.0" {
		t.Errorf("user agent = %q", gotUA)
	}
}

func TestFetchDocument_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	c := NewFetchClient(5*time.Second, "test-agent/1.0")
	_, err := c.FetchDocument(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected error for 410 response")
	}
	if !strings.Contains(err.Error(), "410") {
		t.Errorf("error should carry the status code: %v", err)
	}
}

func TestFetchDocument_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewFetchClient(5*time.Second, "test-agent/1.0")
	if _, err := c.FetchDocument(ctx, srv.URL); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
