// Package texts loads the passage corpus.
package texts

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/scripttyper/internal/model"
)

//go:embed data/texts.json
var embeddedCorpus []byte

const httpTimeout = 30 * time.Second

// maxCorpusBytes caps a remote corpus body.
var maxCorpusBytes int64 = 8 << 20

// Provider loads passages.
type Provider interface {
	Load(ctx context.Context) ([]model.Text, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context) ([]model.Text, error)

// Load calls f.
func (f ProviderFunc) Load(ctx context.Context) ([]model.Text, error) {
	return f(ctx)
}

type format int

const (
	formatJSON format = iota
	formatYAML
)

// Embedded returns the corpus compiled into the binary.
func Embedded() Provider {
	return ProviderFunc(func(context.Context) ([]model.Text, error) {
		return parse(embeddedCorpus, formatJSON)
	})
}

// File reads a corpus from a .json, .yaml or .yml file.
func File(path string) Provider {
	return ProviderFunc(func(context.Context) ([]model.Text, error) {
		f, err := formatFor(path)
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read texts: %w", err)
		}
		return parse(data, f)
	})
}

// HTTP fetches a corpus from url. YAML is detected by extension or
// content type, anything else is decoded as JSON.
func HTTP(url string) Provider {
	return ProviderFunc(func(ctx context.Context) ([]model.Text, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		client := &http.Client{Timeout: httpTimeout}
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("request failed: %w", err)
		}
		defer func() {
			_ = resp.Body.Close()
		}()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected texts status: %s", resp.Status)
		}
		data, err := io.ReadAll(io.LimitReader(resp.Body, maxCorpusBytes+1))
		if err != nil {
			return nil, fmt.Errorf("failed to read texts: %w", err)
		}
		if int64(len(data)) > maxCorpusBytes {
			return nil, fmt.Errorf("texts body exceeds %d bytes", maxCorpusBytes)
		}
		f := formatJSON
		if ff, err := formatFor(url); err == nil {
			f = ff
		}
		if strings.Contains(resp.Header.Get("Content-Type"), "yaml") {
			f = formatYAML
		}
		return parse(data, f)
	})
}

// FromSource picks a provider: empty means embedded, http(s) URLs are
// fetched, anything else is a file path.
func FromSource(source string) Provider {
	switch {
	case source == "":
		return Embedded()
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return HTTP(source)
	default:
		return File(source)
	}
}

func formatFor(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	default:
		return 0, fmt.Errorf("unsupported texts format %q", filepath.Ext(path))
	}
}

func parse(data []byte, f format) ([]model.Text, error) {
	var out []model.Text
	var err error
	if f == formatYAML {
		err = yaml.Unmarshal(data, &out)
	} else {
		err = json.Unmarshal(data, &out)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode texts: %w", err)
	}
	if err := Validate(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Validate rejects passages without an id or body and duplicate ids.
func Validate(texts []model.Text) error {
	seen := make(map[string]struct{}, len(texts))
	for i, t := range texts {
		if strings.TrimSpace(t.ID) == "" {
			return fmt.Errorf("text %d: missing id", i)
		}
		if t.Body == "" {
			return fmt.Errorf("text %q: empty body", t.ID)
		}
		if _, ok := seen[t.ID]; ok {
			return fmt.Errorf("text %q: duplicate id", t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}
