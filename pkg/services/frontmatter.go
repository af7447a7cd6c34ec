package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"reko-cms/pkg/blocks"
	"reko-cms/pkg/models"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Front matter keys owned by Reko. Anything else is carried in Article.Extra.
const (
	keyTitle         = "title"
	keyStatus        = "status"
	keyDraft         = "draft"
	keyCategory      = "category_id"
	keyTopics        = "topics"
	keyFeaturedImage = "featured_image"
	keyBlocks        = "blocks"
	keyLastmod       = "lastmod"
)

func ParseFrontMatter(content []byte) (map[string]interface{}, string, string, error) {
	str := normalizeLineEndings(string(content))
	// Check for YAML (---)
	if strings.HasPrefix(str, "---\n") {
		parts := strings.SplitN(str, "---\n", 3) // "", FM, Body
		if len(parts) == 3 {
			var fm map[string]interface{}
			if err := yaml.Unmarshal([]byte(parts[1]), &fm); err == nil {
				return fm, strings.TrimSpace(parts[2]), "yaml", nil
			}
		}
	}
	// Check for TOML (+++)
	if strings.HasPrefix(str, "+++\n") {
		parts := strings.SplitN(str, "+++\n", 3)
		if len(parts) == 3 {
			var fm map[string]interface{}
			if err := toml.Unmarshal([]byte(parts[1]), &fm); err == nil {
				return fm, strings.TrimSpace(parts[2]), "toml", nil
			}
		}
	}
	// Check for JSON ({)
	if strings.HasPrefix(strings.TrimSpace(str), "{") {
		var fm map[string]interface{}
		if err := json.Unmarshal(content, &fm); err == nil {
			return fm, "", "json", nil
		}
	}

	return nil, "", "", fmt.Errorf("unknown format")
}

func ConstructFileContent(fm map[string]interface{}, body string, format string) ([]byte, error) {
	normalizedFM := sanitizeFrontMatter(fm)
	if normalizedFM == nil {
		normalizedFM = map[string]interface{}{}
	}

	var buf bytes.Buffer
	switch format {
	case "yaml":
		buf.WriteString("---\n")
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(normalizedFM); err != nil {
			return nil, err
		}
		buf.WriteString("---\n")
	case "toml":
		buf.WriteString("+++\n")
		enc := toml.NewEncoder(&buf)
		if err := enc.Encode(normalizedFM); err != nil {
			return nil, err
		}
		buf.WriteString("+++\n")
	case "json":
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(normalizedFM); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	if body != "" {
		buf.WriteString("\n")
		buf.WriteString(strings.TrimRight(body, "\n"))
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// DecodeArticle builds an article from a content file. Saved block sequences
// are loaded strictly; a file without one has its Markdown body imported.
func DecodeArticle(slug string, content []byte) (*models.Article, error) {
	fm, body, format, err := ParseFrontMatter(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidArticle, slug, err)
	}
	fm = sanitizeFrontMatter(fm)

	art := &models.Article{
		Slug:   slug,
		Format: format,
		Status: models.StatusDraft,
		Extra:  map[string]interface{}{},
	}
	for k, v := range fm {
		switch k {
		case keyTitle:
			art.Title = fmt.Sprint(v)
		case keyStatus:
			art.Status = fmt.Sprint(v)
		case keyCategory:
			art.CategoryID = fmt.Sprint(v)
		case keyFeaturedImage:
			art.FeaturedImage = fmt.Sprint(v)
		case keyTopics:
			art.Topics = toStrings(v)
		case keyBlocks:
		default:
			art.Extra[k] = v
		}
	}
	if _, ok := fm[keyStatus]; !ok {
		if draft, ok := fm[keyDraft].(bool); ok && !draft {
			art.Status = models.StatusPublished
		}
	}
	delete(art.Extra, keyDraft)

	switch raw, ok := fm[keyBlocks]; {
	case ok:
		art.Content, err = blocks.DecodeRecords(canonicalizeValueForJSON(raw))
	case body != "":
		art.Content, err = blocks.ParseMarkdown([]byte(body))
	default:
		art.Content = blocks.New()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidArticle, slug, err)
	}
	return art, nil
}

// EncodeArticle renders an article as a content file in its format. The
// Markdown body is rendered from the blocks.
func EncodeArticle(art *models.Article) ([]byte, error) {
	fm := make(map[string]interface{}, len(art.Extra)+8)
	for k, v := range art.Extra {
		fm[k] = v
	}
	fm[keyTitle] = art.Title
	fm[keyStatus] = art.Status
	fm[keyDraft] = art.Status != models.StatusPublished
	if art.CategoryID != "" {
		fm[keyCategory] = art.CategoryID
	}
	if len(art.Topics) > 0 {
		fm[keyTopics] = art.Topics
	}
	if art.FeaturedImage != "" {
		fm[keyFeaturedImage] = art.FeaturedImage
	}
	fm[keyBlocks] = art.Content.Records()

	format := art.Format
	if format == "" {
		format = "yaml"
	}
	return ConstructFileContent(fm, blocks.RenderMarkdown(art.Content), format)
}

func sanitizeFrontMatter(fm map[string]interface{}) map[string]interface{} {
	if fm == nil {
		return nil
	}
	sanitized := make(map[string]interface{}, len(fm))
	for k, v := range fm {
		sanitized[k] = sanitizeFrontMatterValue(v)
	}
	return sanitized
}

func sanitizeFrontMatterValue(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		return sanitizeFrontMatter(v)
	case map[interface{}]interface{}:
		normalized := make(map[string]interface{}, len(v))
		for key, inner := range v {
			normalized[fmt.Sprint(key)] = sanitizeFrontMatterValue(inner)
		}
		return normalized
	case []interface{}:
		slice := make([]interface{}, len(v))
		for i := range v {
			slice[i] = sanitizeFrontMatterValue(v[i])
		}
		return slice
	case []map[string]interface{}:
		slice := make([]interface{}, len(v))
		for i := range v {
			slice[i] = sanitizeFrontMatter(v[i])
		}
		return slice
	default:
		return v
	}
}

func canonicalizeValueForJSON(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		canonical := make(map[string]interface{}, len(v))
		for key, inner := range v {
			canonical[key] = canonicalizeValueForJSON(inner)
		}
		return canonical
	case map[interface{}]interface{}:
		normalized := make(map[string]interface{}, len(v))
		for key, inner := range v {
			normalized[fmt.Sprint(key)] = canonicalizeValueForJSON(inner)
		}
		return normalized
	case []interface{}:
		slice := make([]interface{}, len(v))
		for i := range v {
			slice[i] = canonicalizeValueForJSON(v[i])
		}
		return slice
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	default:
		return v
	}
}

func toStrings(v interface{}) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []interface{}:
		out := make([]string, 0, len(list))
		for _, item := range list {
			out = append(out, fmt.Sprint(item))
		}
		return out
	case nil:
		return nil
	default:
		return []string{fmt.Sprint(list)}
	}
}

func normalizeLineEndings(input string) string {
	return strings.ReplaceAll(input, "\r\n", "\n")
}
