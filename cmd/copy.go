package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/copybtn/internal/clipboard"
	"github.com/ziadkadry99/copybtn/internal/copybutton"
	"github.com/ziadkadry99/copybtn/internal/dom"
)

var copyCmd = &cobra.Command{
	Use:   "copy <page.html>",
	Short: "Copy one code block of a page to the clipboard",
	Long: `Finds the code blocks of an HTML page the same way the browser script
does and clicks the button of block N (see "copybtn list"), copying its
text to the system clipboard.`,
	Args: cobra.ExactArgs(1),
	RunE: runCopy,
}

func init() {
	copyCmd.Flags().IntP("block", "b", 0, "index of the code block to copy")
	copyCmd.Flags().Bool("stdout", false, "print the block text instead of using the clipboard")
	copyCmd.Flags().Duration("timeout", 5*time.Second, "give up on the clipboard after this long")
	rootCmd.AddCommand(copyCmd)
}

func runCopy(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	index, _ := cmd.Flags().GetInt("block")
	toStdout, _ := cmd.Flags().GetBool("stdout")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	opts := injectorOptions(cfg, logger)
	if toStdout {
		opts.Clipboard = clipboard.NewStream(cmd.OutOrStdout())
	} else {
		opts.Clipboard = clipboard.NewSystem()
	}
	in, buttons, err := loadPage(args[0], opts)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(buttons) {
		return fmt.Errorf("block %d out of range: %s has %d code blocks", index, args[0], len(buttons))
	}
	b := buttons[index]
	if _, ok := in.Text(b); !ok {
		return fmt.Errorf("block %d has no text node matching %q", index, cfg.TextSelector)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()
	<-in.Click(ctx, b)

	// The button itself never reports failures; the command does.
	if in.State(b) != copybutton.Confirmed {
		return fmt.Errorf("copying block %d failed (run with --verbose for details)", index)
	}
	if !toStdout {
		text, _ := in.Text(b)
		fmt.Fprintf(cmd.ErrOrStderr(), "Copied block %d (%d bytes) to the clipboard\n", index, len(text))
	}
	return nil
}

// loadPage parses an HTML file and injects its buttons.
func loadPage(path string, opts copybutton.Options) (*copybutton.Injector, []*copybutton.Button, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	doc, err := dom.Parse(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	in, err := copybutton.New(opts)
	if err != nil {
		return nil, nil, err
	}
	return in, in.Initialize(doc), nil
}
