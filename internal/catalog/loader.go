package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/khanglvm/liftsearch/internal/text"
	"github.com/khanglvm/liftsearch/internal/version"
)

const (
	// DefaultTimeout bounds the one-time catalog fetch.
	DefaultTimeout = 10 * time.Second

	previewBytes = 200
	maxBodyBytes = 16 << 20
)

// rawExercise is one object entry in an external catalog document.
type rawExercise struct {
	ID               string   `json:"id,omitempty" yaml:"id,omitempty"`
	Name             string   `json:"name,omitempty" yaml:"name,omitempty"`
	BodyPart         string   `json:"bodyPart,omitempty" yaml:"bodyPart,omitempty"`
	Target           string   `json:"target,omitempty" yaml:"target,omitempty"`
	PrimaryMuscles   []string `json:"primaryMuscles,omitempty" yaml:"primaryMuscles,omitempty"`
	SecondaryMuscles []string `json:"secondaryMuscles,omitempty" yaml:"secondaryMuscles,omitempty"`
	Equipment        string   `json:"equipment,omitempty" yaml:"equipment,omitempty"`
	Category         string   `json:"category,omitempty" yaml:"category,omitempty"`
	Aliases          []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Instructions     []string `json:"instructions,omitempty" yaml:"instructions,omitempty"`
	Force            string   `json:"force,omitempty" yaml:"force,omitempty"`
	Mechanic         string   `json:"mechanic,omitempty" yaml:"mechanic,omitempty"`
	Level            string   `json:"level,omitempty" yaml:"level,omitempty"`
	Anchor           bool     `json:"anchor,omitempty" yaml:"anchor,omitempty"`
}

// Loader fetches the System catalog once and caches it.
//
// Source is an http(s) URL, a local .json/.yaml/.yml file, or empty for
// the built-in list. Load never fails: every fault is logged and replaced
// by the built-in list.
type Loader struct {
	Source string
	Client *http.Client

	once      sync.Once
	exercises []Exercise
}

// NewLoader creates a loader for source with the given fetch timeout.
func NewLoader(source string, timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Loader{
		Source: source,
		Client: &http.Client{Timeout: timeout},
	}
}

// Load returns the System catalog, fetching it on first call.
func (l *Loader) Load(ctx context.Context) []Exercise {
	l.once.Do(func() {
		l.exercises = l.load(ctx)
	})
	return l.exercises
}

func (l *Loader) load(ctx context.Context) []Exercise {
	source := strings.TrimSpace(l.Source)
	if source == "" {
		return Fallback()
	}

	var (
		exercises []Exercise
		err       error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		exercises, err = l.fetch(ctx, source)
	} else {
		exercises, err = loadFile(source)
	}

	if err != nil {
		log.Printf("Warning: %v, using built-in catalog", err)
		return Fallback()
	}
	if len(exercises) == 0 {
		log.Printf("Warning: catalog %s is empty, using built-in catalog", source)
		return Fallback()
	}
	return exercises
}

// fetchError carries the diagnostic detail of a failed catalog fetch.
type fetchError struct {
	URL         string
	Status      int
	ContentType string
	Preview     string
	Err         error
}

func (e *fetchError) Error() string {
	return fmt.Sprintf("catalog fetch failed (url=%s status=%d content-type=%q preview=%q): %v",
		e.URL, e.Status, e.ContentType, e.Preview, e.Err)
}

func (e *fetchError) Unwrap() error {
	return e.Err
}

func (l *Loader) fetch(ctx context.Context, url string) ([]Exercise, error) {
	client := l.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &fetchError{URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := client.Do(req)
	if err != nil {
		return nil, &fetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	contentType := resp.Header.Get("Content-Type")
	diag := &fetchError{
		URL:         url,
		Status:      resp.StatusCode,
		ContentType: contentType,
		Preview:     preview(body),
	}
	if err != nil {
		diag.Err = fmt.Errorf("failed to read body: %w", err)
		return nil, diag
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		diag.Err = fmt.Errorf("unexpected status")
		return nil, diag
	}
	if !strings.Contains(strings.ToLower(contentType), "json") {
		diag.Err = fmt.Errorf("unexpected content type")
		return nil, diag
	}

	exercises, err := decodeJSON(body)
	if err != nil {
		diag.Err = err
		return nil, diag
	}
	return exercises, nil
}

func preview(body []byte) string {
	if len(body) > previewBytes {
		body = body[:previewBytes]
	}
	return string(body)
}

func loadFile(path string) ([]Exercise, error) {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		exercises, err := decodeYAML(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
		}
		return exercises, nil
	default:
		exercises, err := decodeJSON(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
		}
		return exercises, nil
	}
}

// decodeJSON accepts an array of names or an array of objects.
func decodeJSON(data []byte) ([]Exercise, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("invalid catalog JSON: %w", err)
	}

	raws := make([]rawExercise, 0, len(items))
	for i, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) > 0 && item[0] == '"' {
			var name string
			if err := json.Unmarshal(item, &name); err != nil {
				return nil, fmt.Errorf("invalid entry %d: %w", i, err)
			}
			raws = append(raws, rawExercise{Name: name})
			continue
		}

		var raw rawExercise
		if err := json.Unmarshal(item, &raw); err != nil {
			return nil, fmt.Errorf("invalid entry %d: %w", i, err)
		}
		raws = append(raws, raw)
	}

	return build(raws), nil
}

// decodeYAML accepts the same shapes as decodeJSON.
func decodeYAML(data []byte) ([]Exercise, error) {
	var nodes []yaml.Node
	if err := yaml.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("invalid catalog YAML: %w", err)
	}

	raws := make([]rawExercise, 0, len(nodes))
	for i := range nodes {
		node := &nodes[i]
		if node.Kind == yaml.ScalarNode {
			raws = append(raws, rawExercise{Name: node.Value})
			continue
		}

		var raw rawExercise
		if err := node.Decode(&raw); err != nil {
			return nil, fmt.Errorf("invalid entry %d: %w", i, err)
		}
		raws = append(raws, raw)
	}

	return build(raws), nil
}

// build converts raw entries into System exercises, dropping nameless
// entries and assigning ids where the source omits them.
func build(raws []rawExercise) []Exercise {
	out := make([]Exercise, 0, len(raws))
	used := make(map[string]int, len(raws))

	for _, raw := range raws {
		name := strings.TrimSpace(raw.Name)
		if name == "" {
			continue
		}

		id := strings.TrimSpace(raw.ID)
		if id == "" {
			id = "sys-" + slug(name)
		}
		if n := used[id]; n > 0 {
			used[id] = n + 1
			id = fmt.Sprintf("%s-%d", id, n+1)
		} else {
			used[id] = 1
		}

		out = append(out, NewSystem(id, name, raw.Aliases, Tags{
			PrimaryMuscles:   raw.PrimaryMuscles,
			SecondaryMuscles: raw.SecondaryMuscles,
			Equipment:        raw.Equipment,
			Force:            raw.Force,
			Mechanic:         raw.Mechanic,
			Category:         raw.Category,
			Level:            raw.Level,
		}, raw.Anchor, SystemFields{
			Target:       raw.Target,
			BodyPart:     raw.BodyPart,
			Instructions: raw.Instructions,
		}))
	}

	return out
}

// slug turns a display name into an id fragment.
func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range text.Normalize(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
