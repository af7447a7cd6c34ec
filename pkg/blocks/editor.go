package blocks

import (
	"slices"
	"unicode/utf8"
)

// NoPoint marks a focus inside a non-list block.
const NoPoint = -1

const DefaultHistoryLimit = 100

// Focus names the field the caret belongs in after an edit. Block is -1 when
// the document is empty. Caret counts runes from the start of the field.
type Focus struct {
	Block int `json:"block"`
	Point int `json:"point"`
	Caret int `json:"caret"`
}

const (
	KeyEnter     = "Enter"
	KeyBackspace = "Backspace"
)

// KeyEvent is a key press inside block Block, and inside point Point when the
// block is a list.
type KeyEvent struct {
	Key   string `json:"key"`
	Block int    `json:"block"`
	Point int    `json:"point"`
	Shift bool   `json:"shift"`
	Ctrl  bool   `json:"ctrl"`
	Alt   bool   `json:"alt"`
	Meta  bool   `json:"meta"`
}

func (e KeyEvent) modified() bool { return e.Shift || e.Ctrl || e.Alt || e.Meta }

// Editor holds one editing session: the current document, the focus handle,
// the drag gesture and the undo history. It is not safe for concurrent use.
type Editor struct {
	doc   Document
	focus Focus
	drag  DragState
	undo  []Document
	redo  []Document
	limit int

	// OnFocus, when set, is called with the new focus after every change.
	OnFocus func(Focus)
}

func NewEditor(doc Document) *Editor {
	e := &Editor{doc: doc, limit: DefaultHistoryLimit}
	e.focus = e.startOf(0)
	return e
}

// SetHistoryLimit bounds the undo stack; n <= 0 disables history.
func (e *Editor) SetHistoryLimit(n int) {
	e.limit = n
	e.trim()
}

func (e *Editor) Document() Document { return e.doc }

func (e *Editor) Focus() Focus { return e.focus }

func (e *Editor) DragHighlighted() bool { return e.drag.Highlighted() }

func (e *Editor) CanUndo() bool { return len(e.undo) > 0 }

func (e *Editor) CanRedo() bool { return len(e.redo) > 0 }

func (e *Editor) InsertAt(i int) {
	i = clamp(i, 0, e.doc.Len())
	e.commit(e.doc.InsertAt(i), Focus{Block: i, Point: NoPoint})
}

func (e *Editor) Append() { e.InsertAt(e.doc.Len()) }

func (e *Editor) DeleteAt(i int) {
	next := e.doc.DeleteAt(i)
	e.commit(next, endOfPrevious(next, i))
}

func (e *Editor) MoveTo(from, to int) {
	next := e.doc.MoveTo(from, to)
	e.commit(next, startOf(next, to))
}

func (e *Editor) UpdateField(i int, field Field, value string) error {
	next, err := e.doc.UpdateField(i, field, value)
	if err != nil {
		return err
	}
	e.commit(next, endOf(next, i))
	return nil
}

func (e *Editor) AddPoint(i, at int) {
	points := len(e.doc.blocks[i].Points)
	if at < 0 || at > points {
		at = points
	}
	e.commit(e.doc.AddPoint(i, at), Focus{Block: i, Point: at})
}

func (e *Editor) UpdatePoint(i, p int, value string) {
	e.commit(e.doc.UpdatePoint(i, p, value), Focus{Block: i, Point: p, Caret: utf8.RuneCountInString(value)})
}

func (e *Editor) RemovePoint(i, p int) {
	next := e.doc.RemovePoint(i, p)
	e.commit(next, endOfPoint(next, i, p-1))
}

// SplitOnEnter opens a new text block after i and focuses it.
func (e *Editor) SplitOnEnter(i int) {
	e.doc.mustIndex(i)
	e.InsertAt(i + 1)
}

// MergeOnBackspace deletes the empty non-list block i and focuses the end of
// the block before it. The last remaining block is never removed.
func (e *Editor) MergeOnBackspace(i int) bool {
	b := e.doc.blocks[i]
	if e.doc.Len() <= 1 || b.Style.IsList() || b.Content != "" {
		return false
	}
	e.DeleteAt(i)
	return true
}

// PointEnter opens an empty point right after a non-empty point p.
func (e *Editor) PointEnter(i, p int) bool {
	if !e.doc.ValidPoint(i, p) || e.doc.blocks[i].Points[p] == "" {
		return false
	}
	e.AddPoint(i, p+1)
	return true
}

// PointBackspace handles Backspace in the empty point p. A lone empty point
// takes its whole list block with it; when that block is the only one, it
// turns back into an empty text block.
func (e *Editor) PointBackspace(i, p int) bool {
	if !e.doc.ValidPoint(i, p) {
		return false
	}
	points := e.doc.blocks[i].Points
	if points[p] != "" {
		return false
	}
	switch {
	case len(points) > 1:
		e.RemovePoint(i, p)
	case e.doc.Len() > 1:
		e.DeleteAt(i)
	default:
		e.commit(e.doc.SetStyle(i, Text), Focus{Block: i, Point: NoPoint})
	}
	return true
}

// HandleKey applies the keyboard rules and reports whether the event was
// consumed. Unconsumed events keep their default behaviour in the UI.
func (e *Editor) HandleKey(ev KeyEvent) bool {
	if ev.modified() || !e.doc.ValidIndex(ev.Block) {
		return false
	}
	list := e.doc.blocks[ev.Block].Style.IsList()
	switch {
	case ev.Key == KeyEnter && list:
		return e.PointEnter(ev.Block, ev.Point)
	case ev.Key == KeyEnter:
		e.SplitOnEnter(ev.Block)
		return true
	case ev.Key == KeyBackspace && list:
		return e.PointBackspace(ev.Block, ev.Point)
	case ev.Key == KeyBackspace:
		return e.MergeOnBackspace(ev.Block)
	}
	return false
}

func (e *Editor) DragStart(i int) {
	e.doc.mustIndex(i)
	e.drag.Start(i)
}

func (e *Editor) DragEnter() { e.drag.Enter() }

func (e *Editor) DragLeave() { e.drag.Leave() }

// DragOver exists for symmetry with the UI events; it never changes state.
func (e *Editor) DragOver() {}

// DragSource returns the index of the block being dragged, if any.
func (e *Editor) DragSource() (int, bool) {
	if !e.drag.Active() {
		return 0, false
	}
	return e.drag.Source(), true
}

// Drop moves the dragged block to target. It returns false when no drag is in
// progress or the block is dropped onto itself. Any edit made between
// DragStart and Drop cancels the drag.
func (e *Editor) Drop(target int) bool {
	source, active := e.drag.finish()
	if !active || source == target || !e.doc.ValidIndex(source) {
		return false
	}
	e.MoveTo(source, target)
	return true
}

func (e *Editor) Undo() bool {
	if len(e.undo) == 0 {
		return false
	}
	prev := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]
	e.redo = append(e.redo, e.doc)
	e.restore(prev)
	return true
}

func (e *Editor) Redo() bool {
	if len(e.redo) == 0 {
		return false
	}
	next := e.redo[len(e.redo)-1]
	e.redo = e.redo[:len(e.redo)-1]
	e.undo = append(e.undo, e.doc)
	e.restore(next)
	return true
}

func (e *Editor) restore(doc Document) {
	e.doc = doc
	e.drag = DragState{}
	e.setFocus(e.startOf(e.focus.Block))
}

func (e *Editor) commit(next Document, focus Focus) {
	if !sameDocument(e.doc, next) {
		e.drag = DragState{}
		if e.limit > 0 {
			e.undo = append(e.undo, e.doc)
			e.redo = nil
			e.trim()
		}
	}
	e.doc = next
	e.setFocus(focus)
}

func (e *Editor) trim() {
	if e.limit <= 0 {
		e.undo = nil
		e.redo = nil
		return
	}
	if over := len(e.undo) - e.limit; over > 0 {
		e.undo = append([]Document(nil), e.undo[over:]...)
	}
}

func (e *Editor) setFocus(f Focus) {
	e.focus = f
	if e.OnFocus != nil {
		e.OnFocus(f)
	}
}

func (e *Editor) startOf(i int) Focus {
	return startOf(e.doc, clamp(i, 0, e.doc.Len()-1))
}

func startOf(d Document, i int) Focus {
	if !d.ValidIndex(i) {
		return Focus{Block: -1, Point: NoPoint}
	}
	if d.blocks[i].Style.IsList() {
		return Focus{Block: i, Point: 0}
	}
	return Focus{Block: i, Point: NoPoint}
}

// endOf places the caret at the end of block i, in its last point for lists.
func endOf(d Document, i int) Focus {
	if !d.ValidIndex(i) {
		return Focus{Block: -1, Point: NoPoint}
	}
	b := d.blocks[i]
	if b.Style.IsList() {
		last := len(b.Points) - 1
		return Focus{Block: i, Point: last, Caret: utf8.RuneCountInString(b.Points[last])}
	}
	return Focus{Block: i, Point: NoPoint, Caret: utf8.RuneCountInString(b.Content)}
}

// endOfPrevious is the focus after block i was removed: the end of the block
// before it, or the start of the new first block.
func endOfPrevious(d Document, i int) Focus {
	if i > 0 {
		return endOf(d, i-1)
	}
	return startOf(d, 0)
}

func endOfPoint(d Document, i, p int) Focus {
	if p < 0 {
		return Focus{Block: i, Point: 0}
	}
	return Focus{Block: i, Point: p, Caret: utf8.RuneCountInString(d.blocks[i].Points[p])}
}

func sameDocument(a, b Document) bool {
	if len(a.blocks) != len(b.blocks) {
		return false
	}
	if len(a.blocks) == 0 || &a.blocks[0] == &b.blocks[0] {
		return true
	}
	return slices.EqualFunc(a.blocks, b.blocks, sameBlock)
}

func sameBlock(a, b Block) bool {
	return a.Serial == b.Serial && a.Style == b.Style && a.Content == b.Content &&
		slices.Equal(a.Points, b.Points)
}
