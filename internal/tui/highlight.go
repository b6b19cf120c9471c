package tui

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlighter colours text previews for a 256-colour terminal
type Highlighter struct {
	style     *chroma.Style
	formatter chroma.Formatter
}

// NewHighlighter uses the named chroma style, falling back to chroma's
// default when the name is unknown
func NewHighlighter(styleName string) *Highlighter {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}
	return &Highlighter{style: style, formatter: formatter}
}

// Highlight returns lines coloured by the lexer matching path. Lines come
// back unchanged when no lexer applies or formatting fails; the number of
// lines never changes.
func (h *Highlighter) Highlight(path string, lines []string) []string {
	if h == nil || len(lines) == 0 {
		return lines
	}
	text := strings.Join(lines, "\n")

	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil {
		lexer = lexers.Analyse(text)
	}
	if lexer == nil {
		return lines
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return lines
	}
	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return lines
	}

	// Lexers may append a final newline
	out := strings.Split(buf.String(), "\n")
	if len(out) < len(lines) {
		return lines
	}
	return out[:len(lines)]
}
