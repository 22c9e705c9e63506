package md2docx

// Notes:
// - Real network hosts are never contacted; httptest servers stand in.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestHTTPFetcher_Fetch - Downloads
// ---------------------------------------------------------------------------

func TestHTTPFetcher_Fetch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.png":
			_, _ = w.Write([]byte("\x89PNG data"))
		case "/headers":
			_, _ = w.Write([]byte(r.Header.Get("User-Agent") + "|" + r.Header.Get("Accept") + "|" +
				r.Header.Get("Referer") + "|" + r.Header.Get("Accept-Language")))
		case "/moved.png":
			w.WriteHeader(http.StatusMultipleChoices)
			_, _ = w.Write([]byte("<html>choose</html>"))
		case "/forbidden.png":
			http.Error(w, "no", http.StatusForbidden)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	tests := []struct {
		name     string
		opts     FetchOptions
		path     string
		want     string
		wantErr  string
		wantFile bool
	}{
		{
			name:     "writes body",
			path:     "/ok.png",
			want:     "\x89PNG data",
			wantFile: true,
		},
		{
			name:     "default headers",
			path:     "/headers",
			want:     DefaultUserAgent + "|" + DefaultAccept + "||" + DefaultAcceptLanguage,
			wantFile: true,
		},
		{
			name:     "custom headers",
			opts:     FetchOptions{UserAgent: "ua", Accept: "image/png", Referer: "https://book.example", AcceptLanguage: "fr"},
			path:     "/headers",
			want:     "ua|image/png|https://book.example|fr",
			wantFile: true,
		},
		{
			name:    "not found",
			path:    "/missing.png",
			wantErr: "HTTP Error 404: Not Found",
		},
		{
			name:    "unresolved redirect",
			path:    "/moved.png",
			wantErr: "HTTP Error 300: Multiple Choices",
		},
		{
			name:    "forbidden",
			path:    "/forbidden.png",
			wantErr: "HTTP Error 403: Forbidden",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dst := filepath.Join(t.TempDir(), "01-1.png")
			err := NewHTTPFetcher(tt.opts).Fetch(context.Background(), srv.URL+tt.path, dst)

			if tt.wantErr != "" {
				if !errors.Is(err, ErrDownload) || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Fetch() error = %v, want %q", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("Fetch() unexpected error: %v", err)
			}

			got, readErr := os.ReadFile(dst)
			if tt.wantFile != (readErr == nil) {
				t.Fatalf("file exists = %v, want %v", readErr == nil, tt.wantFile)
			}
			if tt.wantFile && string(got) != tt.want {
				t.Errorf("content = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHTTPFetcher_TLS(t *testing.T) {
	t.Parallel()

	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("png"))
	}))
	t.Cleanup(srv.Close)

	t.Run("insecure accepts self-signed", func(t *testing.T) {
		t.Parallel()

		f := NewHTTPFetcher(FetchOptions{InsecureSkipVerify: true})
		if !f.Insecure() {
			t.Error("Insecure() = false")
		}
		if err := f.Fetch(context.Background(), srv.URL+"/a.png", filepath.Join(t.TempDir(), "a.png")); err != nil {
			t.Errorf("Fetch() unexpected error: %v", err)
		}
	})

	t.Run("strict rejects self-signed", func(t *testing.T) {
		t.Parallel()

		f := NewHTTPFetcher(FetchOptions{})
		if f.Insecure() {
			t.Error("Insecure() = true")
		}
		dst := filepath.Join(t.TempDir(), "a.png")
		if err := f.Fetch(context.Background(), srv.URL+"/a.png", dst); !errors.Is(err, ErrDownload) {
			t.Errorf("Fetch() error = %v, want ErrDownload", err)
		}
		if _, err := os.Stat(dst); !os.IsNotExist(err) {
			t.Error("destination should not exist")
		}
	})
}

func TestHTTPFetcher_Timeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	f := NewHTTPFetcher(FetchOptions{Timeout: 50 * time.Millisecond})
	err := f.Fetch(context.Background(), srv.URL+"/slow.png", filepath.Join(t.TempDir(), "a.png"))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Fetch() error = %v, want DeadlineExceeded", err)
	}
}

func TestHTTPFetcher_BadURL(t *testing.T) {
	t.Parallel()

	err := NewHTTPFetcher(FetchOptions{}).Fetch(context.Background(), "http://[::1", filepath.Join(t.TempDir(), "a.png"))
	if !errors.Is(err, ErrDownload) {
		t.Errorf("Fetch() error = %v, want ErrDownload", err)
	}
}
