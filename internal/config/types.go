package config

import "time"

// Config is the top-level archdocs configuration, corresponding to .archdocs.yml.
type Config struct {
	Title string `yaml:"title" koanf:"title"`
	// ContentDir holds the YAML page definitions. Empty serves the
	// built-in pages.
	ContentDir      string        `yaml:"content_dir" koanf:"content_dir"`
	Include         []string      `yaml:"include" koanf:"include"`
	Exclude         []string      `yaml:"exclude" koanf:"exclude"`
	Home            string        `yaml:"home" koanf:"home"`
	OutputDir       string        `yaml:"output_dir" koanf:"output_dir"`
	Port            int           `yaml:"port" koanf:"port"`
	HighlightStyle  string        `yaml:"highlight_style" koanf:"highlight_style"`
	Watch           bool          `yaml:"watch" koanf:"watch"`
	SessionTTL      time.Duration `yaml:"session_ttl" koanf:"session_ttl"`
	AllowAllOrigins bool          `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	Workers         int           `yaml:"workers" koanf:"workers"`
}
