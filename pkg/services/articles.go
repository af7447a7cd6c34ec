package services

import (
	"errors"
	"fmt"
	"os"
	"time"

	"reko-cms/pkg/blocks"
	"reko-cms/pkg/config"
	"reko-cms/pkg/logger"
	"reko-cms/pkg/models"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNotFound       = errors.New("article not found")
	ErrExists         = errors.New("article already exists")
	ErrInvalidSlug    = errors.New("invalid slug")
	ErrInvalidArticle = errors.New("invalid article")
)

var (
	log      = logger.Nop()
	validate = newValidator()
)

// SetLogger installs the logger used by the services package.
func SetLogger(l *logger.Logger) {
	log = l.With("component", "services")
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return ValidSlug(fl.Field().String())
	})
	return v
}

// ValidateArticle checks the article fields before anything is written.
func ValidateArticle(art *models.Article) error {
	if err := validate.Struct(art); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArticle, err)
	}
	return nil
}

func LoadArticle(slug string) (*models.Article, error) {
	content, err := readArticleFile(slug)
	if err != nil {
		return nil, err
	}
	art, err := DecodeArticle(slug, content)
	if err != nil {
		log.Warn("Rejected article on load", "slug", slug, "error", err)
		return nil, err
	}
	if dirty, err := getGitDirtyFiles(config.RepoPath); err == nil {
		art.IsDirty = dirty[config.ContentDir+"/"+slug+".md"]
	}
	return art, nil
}

// SaveArticle validates and writes the article, replacing any existing file.
func SaveArticle(art *models.Article) error {
	if art.Format == "" {
		art.Format = config.DefaultFormat
	}
	if art.Status == "" {
		art.Status = models.StatusDraft
	}
	if err := ValidateArticle(art); err != nil {
		return err
	}
	if art.Extra == nil {
		art.Extra = map[string]interface{}{}
	}
	art.Extra[keyLastmod] = time.Now().UTC().Format(time.RFC3339)
	content, err := EncodeArticle(art)
	if err != nil {
		return fmt.Errorf("encode %s: %w", art.Slug, err)
	}
	if err := writeArticleFile(art.Slug, content); err != nil {
		log.Error("Failed to write article", "slug", art.Slug, "error", err)
		return err
	}
	InvalidateCache()
	log.Info("Saved article", "slug", art.Slug, "status", art.Status, "blocks", art.Content.Len())
	return nil
}

// CreateArticle writes a new draft with an empty document. It fails with
// ErrExists when the slug is taken.
func CreateArticle(slug, title string) (*models.Article, error) {
	if _, err := readArticleFile(slug); err == nil {
		return nil, ErrExists
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	art := &models.Article{
		Slug:    slug,
		Title:   title,
		Status:  models.StatusDraft,
		Content: blocks.New(),
	}
	if err := SaveArticle(art); err != nil {
		return nil, err
	}
	return art, nil
}

func DeleteArticle(slug string) error {
	path := articlePath(slug)
	if path == "" {
		return ErrInvalidSlug
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return err
	}
	InvalidateCache()
	log.Info("Deleted article", "slug", slug)
	return nil
}
