// Package loaders fetches documents for annotation from local files or
// HTTP(S) URLs and classifies them for indexing.
package loaders

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptyRef is returned when Load is called with an empty reference.
var ErrEmptyRef = errors.New("empty document reference")

// Kind tells how loaded content should be indexed.
type Kind int

const (
	// KindHTML documents are parsed into a DOM tree and indexed with
	// nuggetmark.BuildIndex.
	KindHTML Kind = iota
	// KindMarkdown documents are indexed with nuggetmark.BuildMarkdownIndex.
	KindMarkdown
	// kindUnknown is internal to Content-Type mapping.
	kindUnknown Kind = -1
)

func (k Kind) String() string {
	if k == KindMarkdown {
		return "markdown"
	}
	return "html"
}

// Source is one loaded document.
type Source struct {
	Ref  string
	Kind Kind
	Data []byte
}

// FileHTTP loads documents from local paths or http(s) URLs, classifying
// them as HTML or markdown by extension, Content-Type, and finally content
// sniffing.
type FileHTTP struct {
	// Client is used for HTTP(S) requests; if nil, http.DefaultClient is used.
	Client *http.Client
}

// Load fetches the referenced document.
func (f *FileHTTP) Load(ref string) (*Source, error) {
	if ref == "" {
		return nil, ErrEmptyRef
	}
	if isHTTPURL(ref) {
		return f.loadFromWeb(ref)
	}
	return f.loadFromFile(ref)
}

func (f *FileHTTP) loadFromWeb(url string) (src *Source, err error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %q: %w", url, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close response body: %w", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %q: unexpected status %d", url, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	kind := kindFromContentType(resp.Header.Get("Content-Type"))
	if kind == kindUnknown {
		kind = detectKind(url, data)
	}
	return &Source{Ref: url, Kind: kind, Data: data}, nil
}

func (f *FileHTTP) loadFromFile(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read local file: %w", err)
	}
	return &Source{Ref: path, Kind: detectKind(path, data), Data: data}, nil
}

func isHTTPURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// kindFromContentType maps a Content-Type header to a Kind, or kindUnknown
// when the header is absent or unhelpful.
func kindFromContentType(contentType string) Kind {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return kindUnknown
	}
	switch mediaType {
	case "text/html", "application/xhtml+xml":
		return KindHTML
	case "text/markdown", "text/x-markdown":
		return KindMarkdown
	default:
		return kindUnknown
	}
}

// detectKind classifies by extension first and falls back to sniffing: a
// document whose first non-blank character opens a tag is treated as HTML,
// anything else as markdown.
func detectKind(ref string, data []byte) Kind {
	switch strings.ToLower(filepath.Ext(stripQuery(ref))) {
	case ".md", ".markdown", ".mdown":
		return KindMarkdown
	case ".html", ".htm", ".xhtml":
		return KindHTML
	}
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "<") {
		return KindHTML
	}
	return KindMarkdown
}

func stripQuery(ref string) string {
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		return ref[:i]
	}
	return ref
}
