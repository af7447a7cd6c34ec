package blocks

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// RenderMarkdown renders the document as a Markdown body. Empty blocks are
// skipped.
func RenderMarkdown(d Document) string {
	parts := make([]string, 0, len(d.blocks))
	for _, b := range d.blocks {
		if b.IsEmpty() {
			continue
		}
		parts = append(parts, renderBlock(b))
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "\n\n") + "\n"
}

func renderBlock(b Block) string {
	if level := b.Style.headingLevel(); level > 0 {
		return strings.Repeat("#", level) + " " + b.Content
	}
	switch b.Style {
	case Quote:
		lines := strings.Split(b.Content, "\n")
		for i, l := range lines {
			lines[i] = "> " + l
		}
		return strings.Join(lines, "\n")
	case Code:
		return "```\n" + b.Content + "\n```"
	case Bullet:
		lines := make([]string, len(b.Points))
		for i, p := range b.Points {
			lines[i] = "- " + p
		}
		return strings.Join(lines, "\n")
	case Enumerate:
		lines := make([]string, len(b.Points))
		for i, p := range b.Points {
			lines[i] = fmt.Sprintf("%d. %s", i+1, p)
		}
		return strings.Join(lines, "\n")
	case Caption:
		return "*" + b.Content + "*"
	}
	return b.Content
}

// ParseMarkdown imports a Markdown body as blocks. Constructs without a block
// style (thematic breaks, raw HTML) are dropped. An empty body yields New().
func ParseMarkdown(src []byte) (Document, error) {
	root := goldmark.New().Parser().Parse(text.NewReader(src))

	var bs []Block
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch n := n.(type) {
		case *ast.Heading:
			bs = append(bs, Block{Style: headingStyle(n.Level), Content: inlineText(n, src)})
		case *ast.Paragraph:
			if isCaption(n) {
				bs = append(bs, Block{Style: Caption, Content: inlineText(n.FirstChild(), src)})
				continue
			}
			bs = append(bs, Block{Style: Text, Content: inlineText(n, src)})
		case *ast.Blockquote:
			bs = append(bs, Block{Style: Quote, Content: childrenText(n, src)})
		case *ast.FencedCodeBlock:
			bs = append(bs, Block{Style: Code, Content: codeText(n, src)})
		case *ast.CodeBlock:
			bs = append(bs, Block{Style: Code, Content: codeText(n, src)})
		case *ast.List:
			b := Block{Style: Bullet}
			if n.IsOrdered() {
				b.Style = Enumerate
			}
			for item := n.FirstChild(); item != nil; item = item.NextSibling() {
				b.Points = append(b.Points, childrenText(item, src))
			}
			bs = append(bs, b)
		}
	}
	if len(bs) == 0 {
		return New(), nil
	}
	return FromBlocks(bs)
}

func headingStyle(level int) Style {
	switch {
	case level <= 1:
		return H1
	case level == 2:
		return H2
	case level == 3:
		return H3
	}
	return H4
}

// isCaption matches a paragraph that is one single-emphasis run.
func isCaption(p *ast.Paragraph) bool {
	em, ok := p.FirstChild().(*ast.Emphasis)
	return ok && em.Level == 1 && em.NextSibling() == nil
}

func childrenText(n ast.Node, src []byte) string {
	var parts []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		parts = append(parts, inlineText(c, src))
	}
	return strings.Join(parts, "\n")
}

func inlineText(n ast.Node, src []byte) string {
	var sb strings.Builder
	writeInline(&sb, n, src)
	return strings.TrimRight(sb.String(), "\n")
}

func writeInline(sb *strings.Builder, n ast.Node, src []byte) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			sb.Write(c.Segment.Value(src))
			if c.SoftLineBreak() || c.HardLineBreak() {
				sb.WriteByte('\n')
			}
		case *ast.String:
			sb.Write(c.Value)
		default:
			writeInline(sb, c, src)
		}
	}
}

func codeText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
