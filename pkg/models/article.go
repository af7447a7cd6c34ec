package models

import "reko-cms/pkg/blocks"

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Article is a content file in the repository. Content is the block
// sequence; the Markdown body of the file is rendered from it.
type Article struct {
	Slug          string                 `json:"slug" validate:"required,slug"`
	Title         string                 `json:"title" validate:"required,max=200"`
	Status        string                 `json:"status" validate:"oneof=draft published"`
	CategoryID    string                 `json:"category_id,omitempty" validate:"max=64"`
	Topics        []string               `json:"topics,omitempty" validate:"max=10,dive,required,max=40"`
	FeaturedImage string                 `json:"featured_image,omitempty" validate:"omitempty,uri|startswith=/"`
	Content       blocks.Document        `json:"content"`
	Format        string                 `json:"format,omitempty" validate:"omitempty,oneof=yaml toml json"`
	Extra         map[string]interface{} `json:"extra,omitempty"` // front matter keys Reko does not own
	IsDirty       bool                   `json:"is_dirty"`
}

// ArticleSummary is one row of the article list.
type ArticleSummary struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Status  string `json:"status"`
	IsDirty bool   `json:"is_dirty"`
}
