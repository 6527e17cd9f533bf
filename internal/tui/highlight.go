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

const defaultChromaStyleName = "catppuccin-mocha"

// Highlight applies terminal syntax highlighting to source, picking the
// lexer from filename. It returns source unchanged when no lexer matches
// or highlighting fails.
func Highlight(source, filename string) string {
	return highlightWith(source, filename, activeTheme.ChromaStyleName)
}

func highlightWith(source, filename, styleName string) string {
	lexer := detectLexer(filename)
	if lexer == nil {
		return source
	}
	lexer = chroma.Coalesce(lexer)

	if styleName == "" {
		styleName = defaultChromaStyleName
	}
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return source
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return source
	}

	result := buf.String()
	if !strings.HasSuffix(source, "\n") {
		result = strings.TrimRight(result, "\n")
	}
	return result
}

// detectLexer finds the chroma lexer for filename, falling back to the
// bare extension as a lexer name ("x.json" -> "json").
func detectLexer(filename string) chroma.Lexer {
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "" || name == "." || name == "/" {
		return nil
	}
	if lexer := lexers.Match(name); lexer != nil {
		return lexer
	}
	if ext := strings.TrimPrefix(filepath.Ext(name), "."); ext != "" {
		return lexers.Get(ext)
	}
	return nil
}
