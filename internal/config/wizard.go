package config

import (
	"fmt"
	"path/filepath"

	"github.com/manifoldco/promptui"
)

// siteGenerators maps marker files to a static-site generator and the
// directory it builds into.
var siteGenerators = map[string]struct {
	Name    string
	SiteDir string
}{
	"_config.yml":    {Name: "Jekyll", SiteDir: "_site"},
	"mkdocs.yml":     {Name: "MkDocs", SiteDir: "site"},
	"hugo.toml":      {Name: "Hugo", SiteDir: "public"},
	"config.toml":    {Name: "Hugo", SiteDir: "public"},
	"docusaurus.*":   {Name: "Docusaurus", SiteDir: "build"},
	"astro.config.*": {Name: "Astro", SiteDir: "dist"},
}

// detectSiteGenerator checks the current directory for well-known generator configs.
func detectSiteGenerator() (name string, siteDir string) {
	for marker, info := range siteGenerators {
		matches, _ := filepath.Glob(marker)
		if len(matches) > 0 {
			return info.Name, info.SiteDir
		}
	}
	return "", "_site"
}

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to copybtn! Let's configure your site.")
	fmt.Println()

	cfg := DefaultConfig()

	generator, siteDir := detectSiteGenerator()
	if generator != "" {
		fmt.Printf("Detected site generator: %s\n\n", generator)
	}

	// 1. Built site directory.
	sitePrompt := promptui.Prompt{
		Label:   "Directory holding the built HTML site",
		Default: siteDir,
	}
	site, err := sitePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site dir: %w", err)
	}
	cfg.SiteDir = site
	cfg.OutputDir = site

	// 2. Code block selector.
	selectorPrompt := promptui.Prompt{
		Label:   "Code block selector",
		Default: cfg.Selector,
		Validate: func(s string) error {
			probe := *cfg
			probe.Selector = s
			return probe.Validate()
		},
	}
	cfg.Selector, err = selectorPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("selector: %w", err)
	}

	// 3. Button glyphs.
	glyphPrompt := promptui.Select{
		Label: "Button content",
		Items: []string{
			"fontawesome - clipboard / check icons (needs Font Awesome on the page)",
			"text        - plain Copy / Copied labels",
		},
	}
	glyphIdx, _, err := glyphPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("glyph selection: %w", err)
	}
	cfg.Glyphs = []GlyphSet{GlyphsFontAwesome, GlyphsText}[glyphIdx]

	// 4. Extra exclude patterns.
	excludePrompt := promptui.Prompt{
		Label:   "Exclude patterns (comma-separated, leave blank for none)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	cfg.Exclude = splitAndTrim(excludeStr)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Save(path); err != nil {
		return nil, err
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}
