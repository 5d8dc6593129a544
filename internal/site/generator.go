package site

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ziadkadry99/copybtn/internal/copybutton"
	"github.com/ziadkadry99/copybtn/internal/dom"
	"github.com/ziadkadry99/copybtn/internal/walker"
)

// HighlightCSSName is the stylesheet holding the chroma token classes.
const HighlightCSSName = "highlight.css"

// Generator converts a directory of Markdown files into highlighted HTML
// pages carrying copy buttons.
type Generator struct {
	DocsDir   string
	OutputDir string
	Title     string
	// Style is the chroma style used for highlight.css.
	Style string
	// Options configures the buttons. The block and text selectors are
	// always the rouge defaults, since the generator emits rouge markup.
	Options copybutton.Options
	Logger  *slog.Logger
}

// NewGenerator creates a Generator with the given directories.
func NewGenerator(docsDir, outputDir, title string) *Generator {
	return &Generator{
		DocsDir:   docsDir,
		OutputDir: outputDir,
		Title:     title,
		Style:     "github",
	}
}

// pageData holds the data passed to the HTML template for each page.
type pageData struct {
	Title     string
	SiteTitle string
	Content   template.HTML
	BasePath  string
}

// Generate builds every page and writes the assets. Returns the number of pages generated.
func (g *Generator) Generate() (int, error) {
	log := g.Logger
	if log == nil {
		log = slog.Default()
	}

	files, err := walker.Walk(walker.WalkerConfig{RootDir: g.DocsDir, Extensions: []string{".md"}})
	if err != nil {
		return 0, fmt.Errorf("walking docs dir: %w", err)
	}
	if len(files) == 0 {
		return 0, fmt.Errorf("no markdown files found in %s", g.DocsDir)
	}

	opts := g.Options
	opts.Selector = copybutton.DefaultSelector
	opts.TextSelector = copybutton.DefaultTextSelector
	if _, err := copybutton.New(opts); err != nil {
		return 0, fmt.Errorf("invalid copy button options: %w", err)
	}

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return 0, err
	}

	// Write static assets.
	if err := g.writeHighlightCSS(); err != nil {
		return 0, err
	}
	if err := writeAssets(g.OutputDir, opts); err != nil {
		return 0, err
	}

	// Initialize goldmark with extensions.
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(g.style()),
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	// Parse page template.
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return 0, fmt.Errorf("parsing page template: %w", err)
	}

	for _, f := range files {
		n, err := g.renderPage(md, tmpl, opts, f)
		if err != nil {
			return 0, fmt.Errorf("rendering %s: %w", f.RelPath, err)
		}
		log.Debug("page rendered", "page", f.RelPath, "buttons", n)
	}

	log.Info("site generated", "docs", g.DocsDir, "output", g.OutputDir, "pages", len(files))
	return len(files), nil
}

func (g *Generator) style() string {
	if g.Style == "" {
		return "github"
	}
	return g.Style
}

// writeHighlightCSS writes the chroma classes for the configured style.
func (g *Generator) writeHighlightCSS() error {
	var css bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&css, styles.Get(g.style())); err != nil {
		return fmt.Errorf("generating highlight css: %w", err)
	}
	return os.WriteFile(filepath.Join(g.OutputDir, HighlightCSSName), css.Bytes(), 0o644)
}

// renderPage converts a single markdown file to an HTML page and returns the
// number of copy buttons it received.
func (g *Generator) renderPage(md goldmark.Markdown, tmpl *template.Template, opts copybutton.Options, f walker.FileInfo) (int, error) {
	content, err := os.ReadFile(f.Path)
	if err != nil {
		return 0, err
	}

	// Convert markdown to HTML.
	var htmlBuf bytes.Buffer
	if err := md.Convert(content, &htmlBuf); err != nil {
		return 0, fmt.Errorf("converting markdown: %w", err)
	}

	htmlRelPath := mdPathToHTML(f.RelPath)
	base := basePath(htmlRelPath)

	var page bytes.Buffer
	if err := tmpl.Execute(&page, pageData{
		Title:     extractTitle(string(content), f.RelPath),
		SiteTitle: g.Title,
		Content:   template.HTML(htmlBuf.String()),
		BasePath:  base,
	}); err != nil {
		return 0, fmt.Errorf("executing page template: %w", err)
	}

	doc, err := dom.Parse(&page)
	if err != nil {
		return 0, err
	}
	rewriteMDLinks(doc)
	normalizeCodeBlocks(doc)

	in, err := copybutton.New(opts)
	if err != nil {
		return 0, err
	}
	buttons := in.Initialize(doc)
	linkAssets(doc, base)

	outPath := filepath.Join(g.OutputDir, filepath.FromSlash(htmlRelPath))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return 0, err
	}
	out, err := os.Create(outPath)
	if err != nil {
		return 0, err
	}
	defer out.Close()

	if err := dom.Render(out, doc); err != nil {
		return 0, err
	}
	return len(buttons), nil
}

// extractTitle pulls the first # heading from markdown content, or falls back to the filename.
func extractTitle(content, relPath string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimPrefix(line, "# ")
		}
	}
	return strings.TrimSuffix(filepath.Base(relPath), ".md")
}
