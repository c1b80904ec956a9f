// Package prompts ships a small set of example prompts for trying out a
// freshly converted model.
package prompts

import (
	_ "embed"
	"encoding/json"
	"sort"
	"sync"
)

//go:embed prompts.json
var promptsJSON []byte

var (
	once    sync.Once
	presets map[string]string
)

func load() {
	once.Do(func() {
		presets = make(map[string]string)
		_ = json.Unmarshal(promptsJSON, &presets)
	})
}

// Names returns the available preset names, sorted.
func Names() []string {
	load()
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the prompt text for name, or "" if unknown.
func Get(name string) string {
	load()
	return presets[name]
}
