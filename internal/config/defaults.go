package config

import "time"

// DefaultExcludes are glob patterns skipped when scanning the content dir.
var DefaultExcludes = []string{
	".git/**",
	"node_modules/**",
	"**/_*.yaml",
	"**/_*.yml",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Title:          "Architecture Docs",
		Include:        []string{"**/*.yaml", "**/*.yml"},
		Exclude:        DefaultExcludes,
		Home:           "overview",
		OutputDir:      "site",
		Port:           8080,
		HighlightStyle: "github",
		SessionTTL:     30 * time.Minute,
		Workers:        4,
	}
}
