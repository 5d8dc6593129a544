package config

// GlyphSet selects the built-in button contents.
type GlyphSet string

const (
	// GlyphsFontAwesome shows the Font Awesome clipboard and check icons.
	GlyphsFontAwesome GlyphSet = "fontawesome"
	// GlyphsText shows plain "Copy" / "Copied" labels.
	GlyphsText GlyphSet = "text"
)

// Config is the top-level copybtn configuration, corresponding to .copybtn.yml.
type Config struct {
	Selector      string   `yaml:"selector" koanf:"selector"`
	TextSelector  string   `yaml:"text_selector" koanf:"text_selector"`
	ButtonClass   string   `yaml:"button_class" koanf:"button_class"`
	Glyphs        GlyphSet `yaml:"glyphs" koanf:"glyphs"`
	IdleHTML      string   `yaml:"idle_html,omitempty" koanf:"idle_html"`
	ConfirmedHTML string   `yaml:"confirmed_html,omitempty" koanf:"confirmed_html"`
	RevertAfterMS int      `yaml:"revert_after_ms" koanf:"revert_after_ms"`
	SiteDir       string   `yaml:"site_dir" koanf:"site_dir"`
	DocsDir       string   `yaml:"docs_dir" koanf:"docs_dir"`
	OutputDir     string   `yaml:"output_dir" koanf:"output_dir"`
	Include       []string `yaml:"include" koanf:"include"`
	Exclude       []string `yaml:"exclude" koanf:"exclude"`
	Style         string   `yaml:"style" koanf:"style"`
	LogLevel      string   `yaml:"log_level" koanf:"log_level"`
}
