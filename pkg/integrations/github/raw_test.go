package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matzehuels/deptree/pkg/cache"
	"github.com/matzehuels/deptree/pkg/integrations"
)

func TestRawURL(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "repository",
			source: "https://github.com/tokio-rs/tokio",
			want:   "https://raw.githubusercontent.com/tokio-rs/tokio/master/Cargo.toml",
		},
		{
			name:   "trailing slash",
			source: "https://github.com/tokio-rs/tokio/",
			want:   "https://raw.githubusercontent.com/tokio-rs/tokio/master/Cargo.toml",
		},
		{
			name:   "git suffix",
			source: "https://github.com/tokio-rs/tokio.git",
			want:   "https://github.com/tokio-rs/tokio/master/Cargo.toml",
		},
		{
			name:   "raw url",
			source: "https://raw.githubusercontent.com/o/r/main/Cargo.toml",
			want:   "https://raw.githubusercontent.com/o/r/main/Cargo.toml",
		},
		{
			name:   "direct manifest url",
			source: "http://localhost:8080/crates/app/Cargo.toml",
			want:   "http://localhost:8080/crates/app/Cargo.toml",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RawURL(tt.source); got != tt.want {
				t.Errorf("RawURL(%q) = %q, want %q", tt.source, got, tt.want)
			}
		})
	}
}

func TestFetchManifest(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if r.URL.Path != "/app/Cargo.toml" {
			http.NotFound(w, r)
			return
		}
		if ua := r.Header.Get("User-Agent"); ua != integrations.UserAgent {
			t.Errorf("User-Agent = %q, want %q", ua, integrations.UserAgent)
		}
		w.Write([]byte("[dependencies]\nserde = \"1\"\n"))
	}))
	defer server.Close()

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c := NewClient(fc, time.Hour)

	for range 2 {
		data, err := c.FetchManifest(context.Background(), server.URL+"/app/Cargo.toml", false)
		if err != nil {
			t.Fatalf("FetchManifest() error = %v", err)
		}
		if string(data) != "[dependencies]\nserde = \"1\"\n" {
			t.Errorf("FetchManifest() = %q", data)
		}
	}
	if hits != 1 {
		t.Errorf("server hits = %d, want 1 (second fetch cached)", hits)
	}

	_, err = c.FetchManifest(context.Background(), server.URL+"/missing/Cargo.toml", false)
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("FetchManifest(missing) error = %v, want ErrNotFound", err)
	}
}
