// Package markdown locates fenced code blocks in Markdown documents using
// goldmark, so their contents can be tokenized with the grammar named by
// the fence info string.
package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Fence is one fenced code block: the byte range of its body (the lines
// between the fence markers) and the language tag from the info string.
type Fence struct {
	// Language is the first word of the info string, lowercased.
	// Empty for untagged fences.
	Language string

	// StartOffset is the byte index of the first body byte (inclusive).
	StartOffset int

	// EndOffset is the byte index just after the last body byte (exclusive).
	EndOffset int
}

// Len returns the body length in bytes.
func (f Fence) Len() int {
	return f.EndOffset - f.StartOffset
}

// ExtractFences parses content as CommonMark and returns all fenced code
// blocks in document order. Fences with empty bodies are included with a
// zero-length range.
func ExtractFences(content []byte) []Fence {
	md := goldmark.New()
	reader := text.NewReader(content)
	doc := md.Parser().Parse(reader, parser.WithContext(parser.NewContext()))

	var fences []Fence

	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		fcb, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		fence := Fence{Language: fenceLanguage(fcb, content)}

		lines := fcb.Lines()
		if lines.Len() > 0 {
			fence.StartOffset = lines.At(0).Start
			fence.EndOffset = lines.At(lines.Len() - 1).Stop
		}

		fences = append(fences, fence)
		return ast.WalkContinue, nil
	})

	return fences
}

func fenceLanguage(fcb *ast.FencedCodeBlock, content []byte) string {
	if fcb.Info == nil {
		return ""
	}
	info := strings.TrimSpace(string(fcb.Info.Segment.Value(content)))
	if info == "" {
		return ""
	}
	if idx := strings.IndexAny(info, " \t"); idx >= 0 {
		info = info[:idx]
	}
	return strings.ToLower(info)
}
