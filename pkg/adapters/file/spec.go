package file

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-json"
	"github.com/mitchellh/mapstructure"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Document is the top level of a definition file.
type Document struct {
	Commands []NodeSpec `json:"commands" mapstructure:"commands"`
}

// NodeSpec declares one node and its subtree.
type NodeSpec struct {
	Name        string     `json:"name" mapstructure:"name"`
	Description string     `json:"description,omitempty" mapstructure:"description"`
	Type        string     `json:"type,omitempty" mapstructure:"type"`
	Requires    string     `json:"requires,omitempty" mapstructure:"requires"`
	Executes    string     `json:"executes,omitempty" mapstructure:"executes"`
	Suggests    string     `json:"suggests,omitempty" mapstructure:"suggests"`
	Redirect    *string    `json:"redirect,omitempty" mapstructure:"redirect"`
	Aliases     []string   `json:"aliases,omitempty" mapstructure:"aliases"`
	Children    []NodeSpec `json:"children,omitempty" mapstructure:"children"`
}

// Decode parses a definition document. format is a file extension such as ".yaml".
func Decode(data []byte, format string) (*Document, error) {
	raw := make(map[string]any)

	switch strings.ToLower(format) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
	case ".json", ".jsonc":
		// Strip comments and trailing commas before decoding
		if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
			return nil, fmt.Errorf("failed to parse json: %w", err)
		}
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to parse toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported definition format %q", format)
	}

	var doc Document
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &doc,
		ErrorUnused: true,
		TagName:     "mapstructure",
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid definition: %w", err)
	}
	return &doc, nil
}

// Format returns the format key for a definition path.
func Format(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
