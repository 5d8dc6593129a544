package site

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/ziadkadry99/copybtn/internal/copybutton"
)

const (
	// ScriptName is the file name of the browser script binding the buttons.
	ScriptName = "copy-button.js"
	// StyleName is the file name of the button stylesheet.
	StyleName = "copy-button.css"
)

var scriptTmpl = template.Must(template.New("script").Parse(scriptTemplate))

// Assets renders the browser script and stylesheet for the given options,
// keyed by file name.
func Assets(opts copybutton.Options) (map[string][]byte, error) {
	data := struct {
		IdleHTML      string
		ConfirmedHTML string
		TextSelector  string
		ClassName     string
		RevertMS      int64
	}{
		IdleHTML:      opts.IdleHTML,
		ConfirmedHTML: opts.ConfirmedHTML,
		TextSelector:  opts.TextSelector,
		ClassName:     opts.ClassName,
		RevertMS:      opts.RevertAfter.Milliseconds(),
	}
	if data.IdleHTML == "" {
		data.IdleHTML = copybutton.IdleGlyph
	}
	if data.ConfirmedHTML == "" {
		data.ConfirmedHTML = copybutton.ConfirmedGlyph
	}
	if data.TextSelector == "" {
		data.TextSelector = copybutton.DefaultTextSelector
	}
	if data.ClassName == "" {
		data.ClassName = copybutton.DefaultClassName
	}
	if data.RevertMS <= 0 {
		data.RevertMS = copybutton.DefaultRevertAfter.Milliseconds()
	}

	var js bytes.Buffer
	if err := scriptTmpl.Execute(&js, data); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", ScriptName, err)
	}
	return map[string][]byte{
		ScriptName: js.Bytes(),
		StyleName:  []byte(cssContent),
	}, nil
}

// writeAssets writes every asset into dir.
func writeAssets(dir string, opts copybutton.Options) error {
	assets, err := Assets(opts)
	if err != nil {
		return err
	}
	for name, data := range assets {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}
	return nil
}
