package models

import "reko-cms/pkg/blocks"

// EditorOp is one UI event posted to an editor session. Which of the index
// fields matter depends on Op. For add_point, Point is the insertion index
// and -1 appends.
type EditorOp struct {
	Op    string           `json:"op" validate:"required,oneof=insert delete move update add_point update_point remove_point key drag_start drag_enter drag_leave drag_over drop undo redo"`
	Block int              `json:"block"`
	Point int              `json:"point"`
	To    int              `json:"to"`
	Field string           `json:"field,omitempty"`
	Value string           `json:"value,omitempty"`
	Key   *blocks.KeyEvent `json:"key,omitempty" validate:"required_if=Op key"`
}

// EditorState is what the UI re-renders from after each op.
type EditorState struct {
	ID            string          `json:"id"`
	Slug          string          `json:"slug,omitempty"`
	Content       blocks.Document `json:"content"`
	Focus         blocks.Focus    `json:"focus"`
	Handled       bool            `json:"handled"`
	CanUndo       bool            `json:"can_undo"`
	CanRedo       bool            `json:"can_redo"`
	DragHighlight bool            `json:"drag_highlight"`
}

// OpenEditorRequest starts a session on an existing article, or on a new
// draft when Slug is empty.
type OpenEditorRequest struct {
	Slug string `json:"slug"`
}

// SaveEditorRequest carries the article fields that live next to the block
// sequence.
type SaveEditorRequest struct {
	Slug          string   `json:"slug"`
	Title         string   `json:"title"`
	CategoryID    string   `json:"category_id"`
	Topics        []string `json:"topics"`
	FeaturedImage string   `json:"featured_image"`
	Format        string   `json:"format"`
}
