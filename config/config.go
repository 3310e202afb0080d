// Package config decodes the JSON tokenizer settings schema: dictionary
// paths, the character definition file, and the ordered plugin lists for
// each of the four plugin kinds. Building the actual plugin instances
// happens in the plugin registry (package plugin); this package owns only
// decoding and path resolution.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/wakachi-nlp/wakachi/werror"
)

// PluginSettings is one entry of a plugin-kind array: a discriminating
// "class" field plus whatever settings that class's constructor needs,
// kept as the original raw JSON object so the plugin registry can decode
// it into its own settings struct.
type PluginSettings struct {
	Class    string
	Settings json.RawMessage
}

func (p *PluginSettings) UnmarshalJSON(data []byte) error {
	var head struct {
		Class string `json:"class"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return werror.Config("config: plugin settings: %v", err)
	}
	if head.Class == "" {
		return werror.Config("config: plugin settings missing required \"class\" field")
	}
	p.Class = head.Class
	p.Settings = append(json.RawMessage(nil), data...)
	return nil
}

// Config is the JSON tokenizer settings schema. Relative paths in
// SystemDict, UserDict, and CharacterDefinitionFile are resolved against
// the directory the config file itself lives in (see ResolvePath).
type Config struct {
	SystemDict              string           `json:"systemDict"`
	UserDict                []string         `json:"userDict"`
	CharacterDefinitionFile string           `json:"characterDefinitionFile"`

	InputTextPlugin          []PluginSettings `json:"inputTextPlugin"`
	OovProviderPlugin        []PluginSettings `json:"oovProviderPlugin"`
	PathRewritePlugin        []PluginSettings `json:"pathRewritePlugin"`
	EditConnectionCostPlugin []PluginSettings `json:"editConnectionCostPlugin"`

	EnableDefaultCompoundParticles bool `json:"enableDefaultCompoundParticles"`

	baseDir string
}

// Load reads and decodes a config file at path. Relative dictionary/
// character-definition paths inside it resolve against path's own
// directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, werror.IO(err, "config: reading %s", path)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, werror.Config("config: decoding %s: %v", path, err)
	}
	cfg.baseDir = filepath.Dir(path)
	return &cfg, nil
}

// Parse decodes data as a Config without a path anchor; relative paths
// resolve against the current working directory (baseDir left empty).
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, werror.Config("config: decoding: %v", err)
	}
	return &cfg, nil
}

// ResolvePath anchors a possibly-relative path from the config against the
// config file's own directory, falling back to p unresolved (interpreted
// relative to the process's working directory by the OS) when no config
// file directory is known.
func (c *Config) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || c.baseDir == "" {
		return p
	}
	return filepath.Join(c.baseDir, p)
}
