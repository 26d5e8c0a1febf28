package fetch

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFetchLocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photos.json")
	if err := os.WriteFile(path, []byte(`{"photos":[]}`), 0644); err != nil {
		t.Fatalf("write test file: %v", err)
	}

	f := New()
	data, err := f.Fetch(path)
	if err != nil {
		t.Fatalf("Fetch(%s) error: %v", path, err)
	}
	if string(data) != `{"photos":[]}` {
		t.Errorf("Fetch returned %q", data)
	}
}

func TestFetchMissingFile(t *testing.T) {
	f := New()
	if _, err := f.Fetch(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Fetch of missing file returned nil error")
	}
}

func TestFetchHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/full/a.jpg" {
			w.Write([]byte("image-bytes"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := New()
	data, err := f.Fetch(srv.URL + "/full/a.jpg")
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Errorf("Fetch returned %q", data)
	}

	_, err = f.Fetch(srv.URL + "/full/missing.jpg")
	if err == nil {
		t.Fatal("Fetch of 404 resource returned nil error")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("error %q does not mention status", err)
	}
}

func TestIsRemote(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"http://example.com/photos.json", true},
		{"https://example.com/photos.json", true},
		{"/var/photos/photos.json", false},
		{"photos.json", false},
	}
	for _, test := range tests {
		if got := IsRemote(test.src); got != test.want {
			t.Errorf("IsRemote(%q) = %v; want %v", test.src, got, test.want)
		}
	}
}
