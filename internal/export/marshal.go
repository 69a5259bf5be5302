package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is an output encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatYAML, "yml":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Marshal encodes v in the given format.
func Marshal(v any, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(v, "", "  ")
	case FormatYAML:
		return yaml.Marshal(v)
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// FileName returns the output file name for a namespace.
func FileName(ns *Namespace, format Format) string {
	base := ns.Prefix
	if base == "" {
		base = "ns" + strconv.Itoa(ns.ID)
	}

	return base + "." + string(format)
}

// WriteDir writes one file per namespace into dir and returns the paths.
func WriteDir(model *Model, dir string, format Format) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	var paths []string

	for i := range model.Namespaces {
		ns := &model.Namespaces[i]

		data, err := Marshal(ns, format)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal namespace %s: %w", ns.URI, err)
		}

		path := filepath.Join(dir, FileName(ns, format))
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}

		paths = append(paths, path)
	}

	return paths, nil
}
