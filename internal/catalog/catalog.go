// Package catalog ships the default exercise catalog and parses custom
// catalog files in the same YAML shape:
//
//	exercises:
//	  - name: Plank
//	    category: Core
//	    instructions: Hold plank position, keep core tight
//	    video_url: https://example.com/plank
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Entry is one exercise of a catalog file.
type Entry struct {
	Name         string `yaml:"name"`
	Category     string `yaml:"category"`
	Instructions string `yaml:"instructions,omitempty"`
	VideoURL     string `yaml:"video_url,omitempty"`
}

type file struct {
	Exercises []Entry `yaml:"exercises"`
}

// Default returns the built-in catalog.
func Default() []Entry {
	entries, err := Load(bytes.NewReader(defaultCatalog))
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded catalog is invalid: %v", err))
	}
	return entries
}

// Load parses a catalog from r. Every entry needs a name and a category,
// and names must be unique ignoring case.
func Load(r io.Reader) ([]Entry, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("catalog: empty document")
		}
		return nil, fmt.Errorf("catalog: %w", err)
	}

	seen := make(map[string]int, len(f.Exercises))
	for i := range f.Exercises {
		e := &f.Exercises[i]
		e.Name = strings.TrimSpace(e.Name)
		e.Category = strings.TrimSpace(e.Category)
		if e.Name == "" || e.Category == "" {
			return nil, fmt.Errorf("catalog: entry %d: name and category are required", i)
		}
		key := strings.ToLower(e.Name)
		if prev, dup := seen[key]; dup {
			return nil, fmt.Errorf("catalog: entry %d: %q repeats entry %d", i, e.Name, prev)
		}
		seen[key] = i
	}
	return f.Exercises, nil
}
