package cmd

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Color modes accepted by the --color flag.
const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

// keywords that begin a ninja statement.
var keywords = []string{"build", "default", "include", "pool", "rule", "subninja"}

type highlighter struct {
	keyword lipgloss.Style
	name    lipgloss.Style
	binding lipgloss.Style
}

// newHighlighter returns a highlighter for output written to w, or nil if
// output should not be colored.
func newHighlighter(w io.Writer, mode string) *highlighter {
	r := lipgloss.NewRenderer(w)

	switch mode {
	case colorNever:
		return nil
	case colorAlways:
		r.SetColorProfile(termenv.ANSI256)
	default:
		if !isTerminal(w) {
			return nil
		}
	}

	return &highlighter{
		keyword: r.NewStyle().Bold(true).Foreground(lipgloss.Color("5")),
		name:    r.NewStyle().Foreground(lipgloss.Color("4")),
		binding: r.NewStyle().Foreground(lipgloss.Color("6")),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// highlight colors statement keywords, rule and pool names, and binding
// names in rendered ninja text. A nil highlighter returns text unchanged.
func (h *highlighter) highlight(text string) string {
	if h == nil {
		return text
	}

	lines := strings.SplitAfter(text, "\n")

	var sb strings.Builder

	for _, line := range lines {
		sb.WriteString(h.line(line))
	}

	return sb.String()
}

func (h *highlighter) line(line string) string {
	body := strings.TrimSuffix(line, "\n")
	nl := line[len(body):]

	indent := body[:len(body)-len(strings.TrimLeft(body, " "))]
	rest := body[len(indent):]

	for _, kw := range keywords {
		after, ok := strings.CutPrefix(rest, kw+" ")
		if !ok || indent != "" {
			continue
		}

		if kw == "rule" || kw == "pool" {
			after = h.name.Render(after)
		}

		return h.keyword.Render(kw) + " " + after + nl
	}

	if name, value, ok := strings.Cut(rest, " = "); ok && !strings.ContainsAny(name, " $") {
		return indent + h.binding.Render(name) + " = " + value + nl
	}

	return line
}
