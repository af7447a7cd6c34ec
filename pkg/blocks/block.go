package blocks

// Block is one unit of article content. Content is the payload of non-list
// styles, Points the payload of list styles; the other field is ignored.
//
// Points slices are never written in place once they belong to a Document.
type Block struct {
	Serial  int
	Style   Style
	Content string
	Points  []string
}

// NewBlock returns an empty block of the given style.
func NewBlock(style Style) Block {
	b := Block{Style: style}
	if style.IsList() {
		b.Points = []string{""}
	}
	return b
}

// withStyle applies the style transition rule: leaving a list style drops the
// points, entering one seeds a single empty point. Content is kept as is.
func (b Block) withStyle(style Style) Block {
	b.Style = style
	if !style.IsList() {
		b.Points = nil
		return b
	}
	if len(b.Points) == 0 {
		b.Points = []string{""}
	}
	return b
}

// normalize enforces the payload invariant on a block from outside input.
func (b Block) normalize() Block {
	if b.Style.IsList() {
		b.Content = ""
		if len(b.Points) == 0 {
			b.Points = []string{""}
		} else {
			b.Points = append([]string(nil), b.Points...)
		}
		return b
	}
	b.Points = nil
	return b
}

// Clone returns a copy that shares no memory with b.
func (b Block) Clone() Block {
	if b.Points != nil {
		b.Points = append([]string(nil), b.Points...)
	}
	return b
}

// IsEmpty reports whether the active payload holds no text.
func (b Block) IsEmpty() bool {
	if b.Style.IsList() {
		for _, p := range b.Points {
			if p != "" {
				return false
			}
		}
		return true
	}
	return b.Content == ""
}
