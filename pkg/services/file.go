package services

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"reko-cms/pkg/config"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:[-_/][a-z0-9]+)*$`)

func SafeJoin(root, sub, target string) string {
	cleanTarget := filepath.Clean(target)
	if strings.Contains(cleanTarget, "..") || filepath.IsAbs(cleanTarget) {
		return ""
	}
	return filepath.Join(root, sub, cleanTarget)
}

// ValidSlug reports whether slug can name a content file.
func ValidSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}

func articlePath(slug string) string {
	if !ValidSlug(slug) {
		return ""
	}
	return SafeJoin(config.RepoPath, config.ContentDir, slug+".md")
}

func readArticleFile(slug string) ([]byte, error) {
	path := articlePath(slug)
	if path == "" {
		return nil, ErrInvalidSlug
	}
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	return content, err
}

func writeArticleFile(slug string, content []byte) error {
	path := articlePath(slug)
	if path == "" {
		return ErrInvalidSlug
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, content, 0644)
}
