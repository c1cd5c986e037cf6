package presets

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type documentFile struct {
	Presets map[string]Preset `json:"presets" yaml:"presets"`
}

// LoadFS walks fsys and parses every JSON/YAML presets document. A nil fsys
// or a tree without documents yields an empty store. Preset names must be
// unique across files.
func LoadFS(fsys fs.FS) (*Store, error) {
	store, _ := NewStore()
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isPresetFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("presets: read %s: %w", path, err)
		}
		return loadDocument(store, data, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// LoadFile parses a single presets document.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("presets: read %s: %w", path, err)
	}
	store, _ := NewStore()
	if err := loadDocument(store, data, path); err != nil {
		return nil, err
	}
	return store, nil
}

func loadDocument(store *Store, data []byte, source string) error {
	doc, err := parseDocument(data, source)
	if err != nil {
		return err
	}
	for name, p := range doc.Presets {
		id := strings.TrimSpace(name)
		if id == "" {
			return fmt.Errorf("presets: file %s defines a preset with an empty name", source)
		}
		p.Name = id
		if err := store.add(p, source); err != nil {
			return err
		}
	}
	return nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("presets: file %s is empty", source)
	}
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	return documentFile{}, fmt.Errorf("presets: parse %s: invalid JSON or YAML", source)
}

func isPresetFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
