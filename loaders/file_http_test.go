package loaders

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestDetectKind(t *testing.T) {
	cases := []struct {
		ref  string
		data string
		want Kind
	}{
		{"page.html", "", KindHTML},
		{"notes.md", "", KindMarkdown},
		{"README.markdown", "", KindMarkdown},
		{"https://example.com/doc.md?raw=1", "", KindMarkdown},
		{"unknown.txt", "<!DOCTYPE html><html></html>", KindHTML},
		{"unknown.txt", "  <div>hi</div>", KindHTML},
		{"unknown.txt", "# Heading\n\nbody", KindMarkdown},
	}
	for _, c := range cases {
		if got := detectKind(c.ref, []byte(c.data)); got != c.want {
			t.Errorf("detectKind(%q, %q) = %s, want %s", c.ref, c.data, got, c.want)
		}
	}
}

func TestKindFromContentType(t *testing.T) {
	if got := kindFromContentType("text/html; charset=utf-8"); got != KindHTML {
		t.Errorf("text/html = %v", got)
	}
	if got := kindFromContentType("text/markdown"); got != KindMarkdown {
		t.Errorf("text/markdown = %v", got)
	}
	if got := kindFromContentType(""); got != kindUnknown {
		t.Errorf("empty header = %v, want unknown", got)
	}
}

func TestLoad_LocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte("# Title\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var f FileHTTP
	src, err := f.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if src.Kind != KindMarkdown {
		t.Errorf("kind = %s, want markdown", src.Kind)
	}
	if string(src.Data) != "# Title\n" {
		t.Errorf("data = %q", src.Data)
	}
}

func TestLoad_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body>hi</body></html>"))
	}))
	defer server.Close()

	f := FileHTTP{Client: server.Client()}
	src, err := f.Load(server.URL)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if src.Kind != KindHTML {
		t.Errorf("kind = %s, want html", src.Kind)
	}
}

func TestLoad_HTTPErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	f := FileHTTP{Client: server.Client()}
	if _, err := f.Load(server.URL); err == nil {
		t.Fatal("expected an error for a 404 response")
	}
}

func TestLoad_EmptyRef(t *testing.T) {
	var f FileHTTP
	if _, err := f.Load(""); err != ErrEmptyRef {
		t.Errorf("err = %v, want ErrEmptyRef", err)
	}
}
