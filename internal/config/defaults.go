package config

// glyphPresets maps each glyph set to its idle and confirmed button content.
var glyphPresets = map[GlyphSet][2]string{
	GlyphsFontAwesome: {"<i class='fas fa-clipboard'></i>", "<i class='fas fa-check'></i>"},
	GlyphsText:        {"Copy", "Copied"},
}

// DefaultInclude selects the pages processed by inject.
var DefaultInclude = []string{"**/*.html", "**/*.htm"}

// DefaultConfig returns a Config matching rouge-highlighted Jekyll output.
func DefaultConfig() *Config {
	return &Config{
		Selector:      "pre.highlight > code",
		TextSelector:  ".rouge-code",
		ButtonClass:   "copy-btn",
		Glyphs:        GlyphsFontAwesome,
		RevertAfterMS: 2000,
		SiteDir:       "_site",
		DocsDir:       "docs",
		OutputDir:     "_site",
		Include:       append([]string(nil), DefaultInclude...),
		Style:         "github",
		LogLevel:      "info",
	}
}
