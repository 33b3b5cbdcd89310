package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = ".archdocs.yml"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (ARCHDOCS_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: ARCHDOCS_OUTPUT_DIR -> output_dir, etc.
	if err := k.Load(env.Provider("ARCHDOCS_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "ARCHDOCS_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// MarshalYAML writes session_ttl as a duration string such as "30m0s"
// rather than integer nanoseconds.
func (c Config) MarshalYAML() (any, error) {
	type plain Config
	var n yamlv3.Node
	if err := n.Encode(plain(c)); err != nil {
		return nil, err
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == "session_ttl" {
			n.Content[i+1].SetString(c.SessionTTL.String())
		}
	}
	return &n, nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("title is required")
	}

	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Port)
	}

	if c.HighlightStyle != "" && !ValidHighlightStyle(c.HighlightStyle) {
		return fmt.Errorf("unknown highlight_style %q", c.HighlightStyle)
	}

	if c.SessionTTL < 0 {
		return fmt.Errorf("session_ttl must be non-negative")
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative")
	}

	return nil
}

// ValidHighlightStyle reports whether name is a registered chroma style.
func ValidHighlightStyle(name string) bool {
	_, ok := styles.Registry[name]
	return ok
}
