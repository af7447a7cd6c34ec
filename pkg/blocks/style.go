package blocks

import (
	"errors"
	"fmt"
)

// Style is the closed set of tags a block can carry.
type Style string

const (
	H1        Style = "h1"
	H2        Style = "h2"
	H3        Style = "h3"
	H4        Style = "h4"
	Text      Style = "text"
	Quote     Style = "quote"
	Code      Style = "code"
	Bullet    Style = "bullet"
	Enumerate Style = "enumerate"
	Caption   Style = "caption"
)

var ErrUnknownStyle = errors.New("unknown block style")

// StyleInfo describes how a style is rendered and edited.
type StyleInfo struct {
	Style       Style  `json:"style"`
	Label       string `json:"label"`
	Class       string `json:"class"`
	List        bool   `json:"list"`
	Placeholder string `json:"placeholder"`
}

// menu order
var styleOrder = []Style{H1, H2, H3, H4, Text, Quote, Code, Bullet, Enumerate, Caption}

var styleTable = map[Style]StyleInfo{
	H1:        {Style: H1, Label: "Heading 1", Class: "block-h1", Placeholder: "Heading 1"},
	H2:        {Style: H2, Label: "Heading 2", Class: "block-h2", Placeholder: "Heading 2"},
	H3:        {Style: H3, Label: "Heading 3", Class: "block-h3", Placeholder: "Heading 3"},
	H4:        {Style: H4, Label: "Heading 4", Class: "block-h4", Placeholder: "Heading 4"},
	Text:      {Style: Text, Label: "Text", Class: "block-text", Placeholder: "Start writing..."},
	Quote:     {Style: Quote, Label: "Quote", Class: "block-quote", Placeholder: "Quote"},
	Code:      {Style: Code, Label: "Code", Class: "block-code", Placeholder: "Write code..."},
	Bullet:    {Style: Bullet, Label: "Bulleted list", Class: "block-bullet", List: true, Placeholder: "List item"},
	Enumerate: {Style: Enumerate, Label: "Numbered list", Class: "block-enumerate", List: true, Placeholder: "List item"},
	Caption:   {Style: Caption, Label: "Caption", Class: "block-caption", Placeholder: "Caption"},
}

// ParseStyle returns the Style for tag, or ErrUnknownStyle.
func ParseStyle(tag string) (Style, error) {
	s := Style(tag)
	if _, ok := styleTable[s]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStyle, tag)
	}
	return s, nil
}

// Styles returns the style table in menu order.
func Styles() []StyleInfo {
	out := make([]StyleInfo, 0, len(styleOrder))
	for _, s := range styleOrder {
		out = append(out, styleTable[s])
	}
	return out
}

func (s Style) Valid() bool {
	_, ok := styleTable[s]
	return ok
}

// IsList reports whether blocks of this style carry points instead of content.
func (s Style) IsList() bool {
	return styleTable[s].List
}

// Info panics on a style outside the table.
func (s Style) Info() StyleInfo {
	info, ok := styleTable[s]
	if !ok {
		panic(fmt.Sprintf("blocks: %v: %q", ErrUnknownStyle, string(s)))
	}
	return info
}

// headingLevel returns 1-4 for heading styles and 0 otherwise.
func (s Style) headingLevel() int {
	switch s {
	case H1:
		return 1
	case H2:
		return 2
	case H3:
		return 3
	case H4:
		return 4
	}
	return 0
}
