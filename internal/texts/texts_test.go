package texts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedCorpus(t *testing.T) {
	got, err := Embedded().Load(context.Background())
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}
	if len(got) == 0 {
		t.Fatalf("expected embedded passages")
	}
	for _, text := range got {
		if text.Body == "" {
			t.Fatalf("expected non-empty body for %s", text.ID)
		}
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestFileYAML(t *testing.T) {
	path := writeFile(t, "texts.yaml", "- id: a\n  title: A\n  genre: g\n  body: hello\n  difficulty: 2\n")
	got, err := File(path).Load(context.Background())
	if err != nil {
		t.Fatalf("load yaml: %v", err)
	}
	if len(got) != 1 || got[0].Body != "hello" {
		t.Fatalf("unexpected texts: %+v", got)
	}
	if got[0].Difficulty == nil || *got[0].Difficulty != 2 {
		t.Fatalf("expected difficulty 2, got %v", got[0].Difficulty)
	}
}

func TestFileJSON(t *testing.T) {
	path := writeFile(t, "texts.json", `[{"id":"a","title":"A","genre":"g","body":"hi"}]`)
	got, err := File(path).Load(context.Background())
	if err != nil {
		t.Fatalf("load json: %v", err)
	}
	if len(got) != 1 || got[0].Difficulty != nil {
		t.Fatalf("unexpected texts: %+v", got)
	}
}

func TestFileRejectsEmptyBody(t *testing.T) {
	path := writeFile(t, "texts.json", `[{"id":"a","body":""}]`)
	_, err := File(path).Load(context.Background())
	if err == nil || !strings.Contains(err.Error(), "empty body") {
		t.Fatalf("expected empty body error, got %v", err)
	}
}

func TestFileRejectsUnknownExtension(t *testing.T) {
	path := writeFile(t, "texts.txt", "hello")
	if _, err := File(path).Load(context.Background()); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func TestValidateDuplicateID(t *testing.T) {
	path := writeFile(t, "texts.json", `[{"id":"a","body":"x"},{"id":"a","body":"y"}]`)
	if _, err := File(path).Load(context.Background()); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write([]byte("- id: remote\n  body: fetched\n"))
	}))
	defer srv.Close()

	got, err := HTTP(srv.URL + "/texts").Load(context.Background())
	if err != nil {
		t.Fatalf("load http: %v", err)
	}
	if len(got) != 1 || got[0].ID != "remote" {
		t.Fatalf("unexpected texts: %+v", got)
	}
	if _, err := HTTP(srv.URL + "/missing").Load(context.Background()); err == nil {
		t.Fatalf("expected status error")
	}
}

func TestHTTPRejectsOversizedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"big","body":"` + strings.Repeat("x", 256) + `"}]`))
	}))
	defer srv.Close()

	prev := maxCorpusBytes
	maxCorpusBytes = 64
	defer func() { maxCorpusBytes = prev }()

	if _, err := HTTP(srv.URL + "/texts.json").Load(context.Background()); err == nil {
		t.Fatalf("expected oversized body to be rejected")
	}
}

func TestFromSource(t *testing.T) {
	path := writeFile(t, "texts.json", `[{"id":"a","body":"x"}]`)
	got, err := FromSource(path).Load(context.Background())
	if err != nil || len(got) != 1 {
		t.Fatalf("expected file source, got %v %v", got, err)
	}
	got, err = FromSource("").Load(context.Background())
	if err != nil || len(got) == 0 {
		t.Fatalf("expected embedded source, got %v", err)
	}
}
