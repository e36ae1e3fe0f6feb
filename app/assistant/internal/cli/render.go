package cli

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

var (
	rendererOnce sync.Once
	renderer     *glamour.TermRenderer
)

// renderMarkdown falls back to the raw text when no renderer can be built
func renderMarkdown(text string) string {
	rendererOnce.Do(func() {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
		if err == nil {
			renderer = r
		}
	})
	if renderer == nil {
		return text
	}
	out, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return out
}

func stdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// display renders markdown only on a terminal so piped output stays plain
func display(text string) {
	if stdoutTTY() {
		fmt.Print(renderMarkdown(text))
		return
	}
	fmt.Println(text)
}
