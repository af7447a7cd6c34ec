package blocks

import (
	"errors"
	"fmt"
)

// Field names accepted by UpdateField.
type Field string

const (
	FieldContent Field = "content"
	FieldStyle   Field = "style"
)

var ErrUnknownField = errors.New("unknown block field")

// Document is an ordered, immutable block sequence. Every operation returns a
// new Document and leaves the receiver untouched, so older values can be kept
// for undo or previews.
//
// Indices out of range are programming errors and panic; callers that take
// indices from user input check them with ValidIndex first.
type Document struct {
	blocks []Block
}

// New returns the document an empty editor opens with: one empty text block.
func New() Document {
	return Document{blocks: renumber([]Block{NewBlock(Text)})}
}

// FromBlocks builds a document from blocks in the given order. Styles are
// checked, payloads normalized and serials recomputed.
func FromBlocks(bs []Block) (Document, error) {
	out := make([]Block, len(bs))
	for i, b := range bs {
		if !b.Style.Valid() {
			return Document{}, fmt.Errorf("block %d: %w: %q", i, ErrUnknownStyle, string(b.Style))
		}
		out[i] = b.normalize()
	}
	return Document{blocks: renumber(out)}, nil
}

func (d Document) Len() int { return len(d.blocks) }

func (d Document) ValidIndex(i int) bool { return i >= 0 && i < len(d.blocks) }

// Block returns a copy of the block at i.
func (d Document) Block(i int) Block {
	d.mustIndex(i)
	return d.blocks[i].Clone()
}

// Blocks returns a deep copy of the sequence.
func (d Document) Blocks() []Block {
	out := make([]Block, len(d.blocks))
	for i, b := range d.blocks {
		out[i] = b.Clone()
	}
	return out
}

// InsertAt inserts an empty text block at i, clamped to [0, Len()].
func (d Document) InsertAt(i int) Document {
	i = clamp(i, 0, len(d.blocks))
	out := make([]Block, 0, len(d.blocks)+1)
	out = append(out, d.blocks[:i]...)
	out = append(out, NewBlock(Text))
	out = append(out, d.blocks[i:]...)
	return Document{blocks: renumber(out)}
}

// Append inserts an empty text block at the end.
func (d Document) Append() Document {
	return d.InsertAt(len(d.blocks))
}

// DeleteAt removes the block at i. Deleting the last remaining block is
// allowed and leaves an empty document.
func (d Document) DeleteAt(i int) Document {
	d.mustIndex(i)
	out := make([]Block, 0, len(d.blocks)-1)
	out = append(out, d.blocks[:i]...)
	out = append(out, d.blocks[i+1:]...)
	return Document{blocks: renumber(out)}
}

// MoveTo moves the block at from so that it ends up at index to.
func (d Document) MoveTo(from, to int) Document {
	d.mustIndex(from)
	d.mustIndex(to)
	if from == to {
		return d
	}
	moved := d.blocks[from]
	rest := make([]Block, 0, len(d.blocks))
	rest = append(rest, d.blocks[:from]...)
	rest = append(rest, d.blocks[from+1:]...)

	out := make([]Block, 0, len(d.blocks))
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)
	return Document{blocks: renumber(out)}
}

// SetContent replaces the content of the block at i.
func (d Document) SetContent(i int, content string) Document {
	return d.replace(i, func(b Block) Block {
		b.Content = content
		return b
	})
}

// SetStyle switches the block at i to style, seeding or dropping points.
func (d Document) SetStyle(i int, style Style) Document {
	if !style.Valid() {
		panic(fmt.Sprintf("blocks: %v: %q", ErrUnknownStyle, string(style)))
	}
	return d.replace(i, func(b Block) Block { return b.withStyle(style) })
}

// UpdateField sets content or style on the block at i from a raw value.
func (d Document) UpdateField(i int, field Field, value string) (Document, error) {
	switch field {
	case FieldContent:
		return d.SetContent(i, value), nil
	case FieldStyle:
		style, err := ParseStyle(value)
		if err != nil {
			return d, err
		}
		return d.SetStyle(i, style), nil
	}
	return d, fmt.Errorf("%w: %q", ErrUnknownField, string(field))
}

func (d Document) replace(i int, fn func(Block) Block) Document {
	d.mustIndex(i)
	out := make([]Block, len(d.blocks))
	copy(out, d.blocks)
	out[i] = fn(out[i])
	return Document{blocks: out}
}

func (d Document) mustIndex(i int) {
	if !d.ValidIndex(i) {
		panic(fmt.Sprintf("blocks: index %d out of range [0,%d)", i, len(d.blocks)))
	}
}

func renumber(bs []Block) []Block {
	for i := range bs {
		bs[i].Serial = i + 1
	}
	return bs
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
