package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// highlightChoices are the styles offered by the wizard; any chroma style
// can be set in the file directly.
var highlightChoices = []string{"github", "monokai", "dracula", "solarized-light", "nord"}

// detectContentDir returns the first conventional content directory that
// exists in the working directory.
func detectContentDir() string {
	for _, dir := range []string{"content", "docs/pages", "pages"} {
		matches, _ := filepath.Glob(filepath.Join(dir, "*.yaml"))
		if len(matches) > 0 {
			return dir
		}
	}
	return ""
}

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to archdocs! Let's configure your site.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Site title.
	titlePrompt := promptui.Prompt{
		Label:   "Site title",
		Default: cfg.Title,
	}
	title, err := titlePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("title: %w", err)
	}
	cfg.Title = strings.TrimSpace(title)

	// 2. Content directory.
	detected := detectContentDir()
	if detected != "" {
		fmt.Printf("Found page definitions in %s\n\n", detected)
	}
	contentPrompt := promptui.Prompt{
		Label:   "Content directory (leave blank for the built-in pages)",
		Default: detected,
	}
	contentDir, err := contentPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	cfg.ContentDir = strings.TrimSpace(contentDir)

	// 3. Home page.
	homePrompt := promptui.Prompt{
		Label:   "Home page id",
		Default: cfg.Home,
	}
	home, err := homePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("home page: %w", err)
	}
	cfg.Home = strings.TrimSpace(home)

	// 4. Output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for the static site",
		Default: cfg.OutputDir,
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}
	cfg.OutputDir = outputDir

	// 5. Port.
	portPrompt := promptui.Prompt{
		Label:    "Preview server port",
		Default:  strconv.Itoa(cfg.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(strings.TrimSpace(portStr))

	// 6. Code highlighting.
	stylePrompt := promptui.Select{
		Label: "Code highlight style",
		Items: highlightChoices,
	}
	_, style, err := stylePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("highlight style: %w", err)
	}
	cfg.HighlightStyle = style

	// 7. Extra exclude patterns.
	if cfg.ContentDir != "" {
		excludePrompt := promptui.Prompt{
			Label:   "Extra exclude patterns (comma-separated, leave blank for defaults)",
			Default: "",
		}
		excludeStr, err := excludePrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("exclude patterns: %w", err)
		}
		if excludeStr != "" {
			cfg.Exclude = append(append([]string(nil), DefaultExcludes...), splitAndTrim(excludeStr)...)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.ContentDir != "" {
		if _, err := os.Stat(cfg.ContentDir); os.IsNotExist(err) {
			fmt.Printf("\nNote: %s does not exist yet; create it before running archdocs serve.\n", cfg.ContentDir)
		}
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("port must be a number between 1 and 65535")
	}
	return nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
