package vocabulary

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Format is the serialization of a catalog source.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension; anything but .yml/.yaml is JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Loader reads catalogs from a filesystem.
type Loader struct {
	fs afero.Fs
}

func NewLoader(fs afero.Fs) *Loader {
	return &Loader{fs: fs}
}

// LoadFile reads and normalizes the catalog stored at path.
func (l *Loader) LoadFile(path string) (*Catalog, error) {
	contents, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("afero.ReadFile(%s) > %w", path, err)
	}
	raws, err := DecodeRawWords(contents, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("DecodeRawWords(%s) > %w", path, err)
	}
	return NewCatalogFromRaw(raws), nil
}

// DecodeRawWords decodes a top-level sequence of records.
// Elements that are not objects become empty records so the length is preserved.
func DecodeRawWords(contents []byte, format Format) ([]RawWord, error) {
	var items []any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(contents, &items); err != nil {
			return nil, fmt.Errorf("yaml.Unmarshal > %w", err)
		}
	default:
		if err := json.Unmarshal(contents, &items); err != nil {
			return nil, fmt.Errorf("json.Unmarshal > %w", err)
		}
	}

	raws := make([]RawWord, len(items))
	for i, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			raws[i] = RawWord{}
			continue
		}
		raws[i] = RawWord(fields)
	}
	return raws, nil
}
